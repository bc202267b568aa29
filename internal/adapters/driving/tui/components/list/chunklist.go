// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/textsafe"
)

// previewLines is the number of content lines shown per chunk.
const previewLines = 3

// ChunkList displays chunks in a navigable list.
// Chunk content is rendered as inert text.
type ChunkList struct {
	chunks   []domain.Chunk
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewChunkList creates a new chunk list component.
func NewChunkList(s *styles.Styles) *ChunkList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ChunkList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the chunk list.
func (r *ChunkList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ChunkList) Update(msg tea.Msg) (*ChunkList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the chunk list.
func (r *ChunkList) View() string {
	if len(r.chunks) == 0 {
		return r.styles.Muted.Render(domain.MsgNoChunks)
	}

	lines := make([]string, 0, len(r.chunks)*(previewLines+1))

	// Each chunk takes a label line, its preview and a blank line.
	visibleCount := r.height / (previewLines + 2)
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.chunks) {
		end = len(r.chunks)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderChunk(i, r.chunks[i]), "")
	}

	if len(r.chunks) > visibleCount {
		lines = append(lines, r.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", start+1, end, len(r.chunks))))
	}

	return strings.Join(lines, "\n")
}

// renderChunk formats a single chunk: its label and a content preview.
func (r *ChunkList) renderChunk(index int, c domain.Chunk) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	label := textsafe.Line(c.Label())
	var labelLine string
	if index == r.selected {
		labelLine = r.styles.Selected.Render(indicator + label)
	} else {
		labelLine = r.styles.Normal.Render(indicator + label)
	}

	maxLen := r.width - 6
	if maxLen < 20 {
		maxLen = 20
	}

	content := strings.Split(textsafe.Inert(c.DisplayContent()), "\n")
	more := len(content) > previewLines
	if more {
		content = content[:previewLines]
	}

	preview := make([]string, len(content))
	for i, line := range content {
		preview[i] = r.styles.Muted.Render("    " + textsafe.Truncate(textsafe.Line(line), maxLen))
	}
	if more {
		preview[len(preview)-1] += r.styles.Muted.Render(" …")
	}

	return labelLine + "\n" + strings.Join(preview, "\n")
}

// SetChunks updates the chunk list and resets the selection.
func (r *ChunkList) SetChunks(chunks []domain.Chunk) {
	r.chunks = chunks
	r.selected = 0
}

// Chunks returns the current chunks.
func (r *ChunkList) Chunks() []domain.Chunk {
	return r.chunks
}

// Selected returns the index of the selected chunk.
func (r *ChunkList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ChunkList) SetSelected(index int) {
	if index >= 0 && index < len(r.chunks) {
		r.selected = index
	}
}

// SelectedChunk returns the currently selected chunk, or nil if none.
func (r *ChunkList) SelectedChunk() *domain.Chunk {
	if len(r.chunks) == 0 || r.selected < 0 || r.selected >= len(r.chunks) {
		return nil
	}
	return &r.chunks[r.selected]
}

// MoveUp moves selection up.
func (r *ChunkList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ChunkList) MoveDown() {
	if r.selected < len(r.chunks)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ChunkList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of chunks.
func (r *ChunkList) Count() int {
	return len(r.chunks)
}

// IsEmpty returns whether the list is empty.
func (r *ChunkList) IsEmpty() bool {
	return len(r.chunks) == 0
}
