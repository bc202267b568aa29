package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/textsafe"
)

// Output formats for chunk listings.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatPlain = "plain"
)

// contentWidthMax wraps long chunk content in table cells.
const contentWidthMax = 80

type chunkJSON struct {
	PointID  string `json:"point_id"`
	Content  string `json:"content"`
	FileName string `json:"file_name,omitempty"`
}

type documentJSON struct {
	FileName string      `json:"file_name"`
	HasMore  bool        `json:"has_more,omitempty"`
	Chunks   []chunkJSON `json:"chunks"`
}

type snapshotJSON struct {
	TakenAt   time.Time      `json:"taken_at"`
	Documents []documentJSON `json:"documents"`
}

func toChunkJSON(chunks []domain.Chunk) []chunkJSON {
	out := make([]chunkJSON, len(chunks))
	for i, c := range chunks {
		out[i] = chunkJSON{PointID: c.ID.String(), Content: c.Content, FileName: c.FileName}
	}
	return out
}

func toSnapshotJSON(s *domain.Snapshot) snapshotJSON {
	out := snapshotJSON{TakenAt: s.TakenAt, Documents: make([]documentJSON, len(s.Documents))}
	for i, doc := range s.Documents {
		out.Documents[i] = documentJSON{
			FileName: doc.FileName,
			HasMore:  doc.HasMore,
			Chunks:   toChunkJSON(doc.Chunks),
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// renderChunks writes chunks in format. JSON output is the raw content;
// table and plain output are made inert.
func renderChunks(w io.Writer, chunks []domain.Chunk, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, toChunkJSON(chunks))
	case formatPlain:
		for i, c := range chunks {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, textsafe.Line(c.Label()))
			fmt.Fprintln(w, textsafe.Inert(c.DisplayContent()))
		}
		return nil
	case formatTable, "":
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: contentWidthMax}})
		t.AppendHeader(table.Row{"Point ID", "Content"})
		for _, c := range chunks {
			t.AppendRow(table.Row{textsafe.Line(c.ID.String()), textsafe.Inert(c.DisplayContent())})
		}
		t.Render()
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q (want table, json or plain)", domain.ErrInvalidInput, format)
	}
}

// renderHistory writes edit records as a table.
func renderHistory(w io.Writer, records []domain.EditRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Time", "Point ID", "File", "Action", "Outcome", "Message"})
	for _, r := range records {
		t.AppendRow(table.Row{
			r.SubmittedAt.Local().Format(time.DateTime),
			textsafe.Line(r.PointID.String()),
			textsafe.Line(r.FileName),
			r.Action,
			r.Outcome,
			textsafe.Truncate(textsafe.Line(r.Message), 60),
		})
	}
	t.Render()
}

// trimFinalNewline drops the newline a shell pipe or editor adds.
func trimFinalNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
