package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunkctl/internal/core/services"
)

var (
	snapshotOut         string
	snapshotConcurrency int
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save every document's chunks as JSON",
	Long: `Fetch the chunks of every document and write them as one JSON document.

Documents are fetched concurrently, at most --concurrency at a time, and
written in filename order. The first failure aborts the snapshot.`,
	Example: `  chunkctl snapshot --out before.json
  chunkctl snapshot --concurrency 8 | jq '.documents[].file_name'`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "", "write to a file instead of stdout")
	snapshotCmd.Flags().IntVar(&snapshotConcurrency, "concurrency", services.DefaultSnapshotConcurrency,
		"maximum documents fetched at once")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	if snapshotService == nil {
		return errSnapshotNotConfigured
	}

	snap, err := snapshotService.Take(cmd.Context(), snapshotConcurrency)
	if err != nil {
		return fmt.Errorf("failed to take snapshot: %w", err)
	}

	if snapshotOut == "" {
		if err := writeJSON(cmd.OutOrStdout(), toSnapshotJSON(snap)); err != nil {
			return err
		}
	} else {
		var buf bytes.Buffer
		if err := writeJSON(&buf, toSnapshotJSON(snap)); err != nil {
			return err
		}
		if err := os.WriteFile(snapshotOut, buf.Bytes(), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", snapshotOut, err)
		}
	}

	cmd.PrintErrf("Snapshot of %d documents, %d chunks\n", len(snap.Documents), snap.ChunkCount())
	return nil
}
