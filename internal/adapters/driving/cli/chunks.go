package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
)

var chunksFormat string

var chunksCmd = &cobra.Command{
	Use:   "chunks <file>",
	Short: "Show the chunks of a document",
	Long: `Fetch and print every chunk the backend holds for a document.

Formats:
  table  - point id and content, one row per chunk (default)
  plain  - id line followed by the content
  json   - array of {point_id, content, file_name}`,
	Args: cobra.ExactArgs(1),
	RunE: runChunks,
}

func init() {
	chunksCmd.Flags().StringVarP(&chunksFormat, "format", "f", formatTable, "output format: table, json or plain")
	rootCmd.AddCommand(chunksCmd)
}

func runChunks(cmd *cobra.Command, args []string) error {
	if session == nil {
		return errSessionNotConfigured
	}
	if chunksFormat != formatTable && chunksFormat != formatJSON && chunksFormat != formatPlain {
		return renderChunks(cmd.OutOrStdout(), nil, chunksFormat)
	}

	result, err := session.Browse(cmd.Context(), args[0])
	if err != nil {
		msg := result.Area.Message
		if result.Area.Phase != domain.ResultsFailed || msg == "" {
			msg = domain.BrowseFailureMessage(err)
		}
		return &operatorError{msg: msg, err: err}
	}

	if result.Area.Phase == domain.ResultsEmpty && chunksFormat != formatJSON {
		fmt.Fprintln(cmd.OutOrStdout(), result.Area.Message)
		return nil
	}
	if err := renderChunks(cmd.OutOrStdout(), result.Chunks, chunksFormat); err != nil {
		return err
	}
	if hint := result.Area.MoreHint(); hint != "" {
		cmd.PrintErrln(hint)
	}
	return nil
}
