package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/chunkctl/internal/adapters/driving/watch"
	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driving"
	"github.com/custodia-labs/chunkctl/internal/logger"
)

// defaultRefreshWait bounds how long edit waits for the delayed refresh.
const defaultRefreshWait = 10 * time.Second

var (
	editFile        string
	editContent     string
	editFromFile    string
	editWatch       bool
	editAppend      bool
	editNoRefresh   bool
	editRefreshWait time.Duration
)

var editCmd = &cobra.Command{
	Use:   "edit <point-id>",
	Short: "Overwrite or append to a chunk",
	Long: `Replace the content of one chunk, or append to it with --append.

The new content is taken from --content, from --from-file, or from stdin
when it is not a terminal. The backend checks that the chunk belongs to
--file before writing.

After a successful edit the document is browsed again and the refreshed
chunk count is printed. Use --no-refresh to skip the wait.

With --from-file and --watch the file is submitted again on every save
until interrupted.`,
	Example: `  chunkctl edit 42 --file report.pdf --content "corrected text"
  cat fixed.txt | chunkctl edit 42 --file report.pdf
  chunkctl edit 42 --file report.pdf --from-file chunk.txt --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	flags := editCmd.Flags()
	flags.StringVar(&editFile, "file", "", "document the chunk belongs to")
	flags.StringVarP(&editContent, "content", "c", "", "new chunk content")
	flags.StringVar(&editFromFile, "from-file", "", "read the new content from a file")
	flags.BoolVarP(&editWatch, "watch", "w", false, "resubmit --from-file on every save")
	flags.BoolVar(&editAppend, "append", false, "append to the chunk instead of replacing it")
	flags.BoolVar(&editNoRefresh, "no-refresh", false, "do not wait for the refreshed browse")
	flags.DurationVar(&editRefreshWait, "refresh-timeout", defaultRefreshWait, "how long to wait for the refresh")
	editCmd.MarkFlagsMutuallyExclusive("content", "from-file")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if session == nil {
		return errSessionNotConfigured
	}
	if editWatch && editFromFile == "" {
		return fmt.Errorf("%w: --watch requires --from-file", domain.ErrInvalidInput)
	}

	action := domain.ActionOverwrite
	if editAppend {
		action = domain.ActionAppend
	}
	session.SetFileName(editFile)
	session.SetEditID(domain.PointID(args[0]))
	session.SetEditAction(action)

	if editWatch {
		return runEditWatch(cmd, session)
	}

	content, err := editContentFrom(cmd)
	if err != nil {
		return err
	}
	session.SetEditContent(content)

	status, err := session.SubmitOverwrite(cmd.Context())
	if err != nil {
		return overwriteError(status, err)
	}
	cmd.Println(status.Message)

	if editNoRefresh {
		return nil
	}
	awaitRefresh(cmd, session, editRefreshWait)
	return nil
}

// editContentFrom resolves the new content from the flags or stdin.
func editContentFrom(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("content") {
		return editContent, nil
	}
	if editFromFile != "" {
		data, err := os.ReadFile(editFromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", editFromFile, err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("%w: no content given; use --content, --from-file or pipe it on stdin",
			domain.ErrEditIncomplete)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return trimFinalNewline(string(data)), nil
}

// overwriteError renders a failed submission as the status line text.
func overwriteError(status domain.Status, err error) error {
	msg := status.Message
	if status.Kind != domain.StatusError || msg == "" {
		msg = domain.OverwriteFailureMessage(err)
	}
	return &operatorError{msg: msg, err: err}
}

// awaitRefresh waits for the delayed browse that follows a successful edit.
func awaitRefresh(cmd *cobra.Command, observer driving.SessionObserver, wait time.Duration) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case ev := <-observer.Refreshes():
		printRefresh(cmd, ev)
	case <-timer.C:
		logger.Debug("No refresh within %s", wait)
	case <-cmd.Context().Done():
	}
}

func printRefresh(cmd *cobra.Command, ev driving.RefreshEvent) {
	if ev.Err != nil {
		if errors.Is(ev.Err, domain.ErrStaleResponse) {
			return
		}
		cmd.PrintErrln("Refresh failed: " + domain.BrowseFailureMessage(ev.Err))
		return
	}
	cmd.Printf("Refreshed %s: %d chunks\n", ev.Result.FileName, len(ev.Result.Chunks))
}

// runEditWatch submits the file once, then again on every save.
func runEditWatch(cmd *cobra.Command, editor driving.Session) error {
	w, err := watch.New(editor, watch.Config{Path: editFromFile})
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	printResult := func(res watch.Result) {
		if res.Err != nil {
			cmd.PrintErrln(overwriteError(res.Status, res.Err).Error())
			return
		}
		cmd.Println(res.Status.Message)
	}
	printResult(w.Submit(ctx))

	results := make(chan watch.Result)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, results)
	}()
	cmd.PrintErrf("Watching %s (ctrl+c to stop)\n", w.Path())

	for {
		select {
		case res := <-results:
			printResult(res)
		case ev := <-editor.Refreshes():
			printRefresh(cmd, ev)
		case err := <-done:
			return err
		}
	}
}
