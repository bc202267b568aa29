package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/textsafe"
)

var filesWithPlaceholder bool

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List document filenames",
	Long: `List the names of every document in the chunk store, sorted.

The count is written to stderr so the names can be piped.`,
	Args: cobra.NoArgs,
	RunE: runFiles,
}

func init() {
	filesCmd.Flags().BoolVar(&filesWithPlaceholder, "with-placeholder", false,
		"include the selection placeholder as the first line")
	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, _ []string) error {
	if session == nil {
		return errSessionNotConfigured
	}

	dir, err := session.ListFilenames(cmd.Context())
	if err != nil {
		return &operatorError{msg: domain.DirectoryFailureMessage(err), err: err}
	}

	names := dir.Names
	if filesWithPlaceholder {
		names = dir.Options()
	}
	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintln(out, textsafe.Line(name))
	}
	cmd.PrintErrf("%d files\n", dir.Len())
	return nil
}
