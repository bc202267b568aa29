// Package editor provides the chunk edit form for the TUI.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chunkctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driving"
	"github.com/custodia-labs/chunkctl/internal/textsafe"
)

// Field identifies the focused form field.
type Field int

const (
	FieldID Field = iota
	FieldContent
)

// View is the edit form: point id, content, action and status line.
// Field edits are pushed to the editor port as they happen.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar
	idField   *input.Field
	content   *input.Area

	editor   driving.ChunkEditor
	observer driving.SessionObserver
	ctx      context.Context

	focus  Field
	action domain.EditAction
	status domain.Status

	// syncedID and syncedContent are the values last pushed to the editor.
	syncedID      string
	syncedContent string

	width  int
	height int
}

// NewView creates a new editor view. observer may be nil; it is used to
// show which document an edit will be submitted against.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	editor driving.ChunkEditor,
	observer driving.SessionObserver,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.EditorHelp())

	action := domain.ActionOverwrite
	if observer != nil {
		if a := observer.State().EditingAction; a.IsValid() {
			action = a
		}
	}

	return &View{
		styles:    s,
		keymap:    km,
		statusbar: bar,
		idField:   input.NewField(s, "Point ID", "chunk id"),
		content:   input.NewArea(s, "Content", "new chunk text"),
		editor:    editor,
		observer:  observer,
		ctx:       context.Background(),
		action:    action,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load fills the form from a displayed chunk and focuses the content.
func (v *View) Load(chunk domain.Chunk) tea.Cmd {
	if v.editor != nil {
		v.editor.PrepareEdit(chunk.ID, chunk.Content)
	}
	v.idField.SetValue(chunk.ID.String())
	v.content.SetValue(chunk.Content)
	v.syncedID = chunk.ID.String()
	v.syncedContent = chunk.Content
	v.setStatus(domain.Status{})
	return v.setFocus(FieldContent)
}

// Clear empties the form and focuses the point id.
func (v *View) Clear() tea.Cmd {
	v.idField.Reset()
	v.content.Reset()
	v.sync()
	v.setStatus(domain.Status{})
	return v.setFocus(FieldID)
}

// Update handles messages for the editor view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.OverwriteCompleted:
		v.handleCompleted(msg)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v.forward(msg)
}

func (v *View) handleCompleted(msg messages.OverwriteCompleted) {
	if errors.Is(msg.Err, domain.ErrStaleResponse) {
		return
	}
	st := msg.Status
	if msg.Err != nil && st.Kind != domain.StatusError {
		st = domain.Status{Kind: domain.StatusError, Message: domain.OverwriteFailureMessage(msg.Err)}
	}
	v.setStatus(st)
}

// handleKeyMsg handles key presses. Unbound keys go to the focused field.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	km := v.keymap
	key := msg.String()
	switch {
	case keymap.Matches(key, km.Back):
		v.sync()
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewChunks} }
	case keymap.Matches(key, km.NextField), keymap.Matches(key, km.PrevField):
		if v.focus == FieldID {
			return v, v.setFocus(FieldContent)
		}
		return v, v.setFocus(FieldID)
	case keymap.Matches(key, km.ToggleAction):
		v.toggleAction()
		return v, nil
	case keymap.Matches(key, km.Submit):
		return v, v.submit()
	}
	return v.forward(msg)
}

// forward passes msg to the focused field and pushes any change.
func (v *View) forward(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	if v.focus == FieldID {
		v.idField, cmd = v.idField.Update(msg)
	} else {
		v.content, cmd = v.content.Update(msg)
	}
	v.sync()
	return v, cmd
}

// sync pushes field values that changed since the last push.
func (v *View) sync() {
	if v.editor == nil {
		return
	}
	if id := strings.TrimSpace(v.idField.Value()); id != v.syncedID {
		v.editor.SetEditID(domain.PointID(id))
		v.syncedID = id
	}
	if content := v.content.Value(); content != v.syncedContent {
		v.editor.SetEditContent(content)
		v.syncedContent = content
	}
}

func (v *View) toggleAction() {
	if v.action == domain.ActionAppend {
		v.action = domain.ActionOverwrite
	} else {
		v.action = domain.ActionAppend
	}
	if v.editor != nil {
		v.editor.SetEditAction(v.action)
	}
}

// submit shows the pending status and returns a command posting the form.
func (v *View) submit() tea.Cmd {
	v.sync()
	if v.editor == nil {
		v.setStatus(domain.Status{Kind: domain.StatusError, Message: domain.OverwriteFailureMessage(domain.ErrNotImplemented)})
		return nil
	}
	v.setStatus(domain.Status{Kind: domain.StatusPending, Message: domain.MsgSaving})

	editor := v.editor
	ctx := v.ctx
	return func() tea.Msg {
		st, err := editor.SubmitOverwrite(ctx)
		return messages.OverwriteCompleted{Status: st, Err: err}
	}
}

func (v *View) setFocus(f Field) tea.Cmd {
	v.focus = f
	if f == FieldID {
		v.content.Blur()
		return v.idField.Focus()
	}
	v.idField.Blur()
	return v.content.Focus()
}

func (v *View) setStatus(st domain.Status) {
	v.status = st
	v.statusbar.Clear()
	switch st.Kind {
	case domain.StatusPending:
		v.statusbar.SetState(status.StateLoading)
	case domain.StatusSuccess:
		v.statusbar.SetState(status.StateSuccess)
	case domain.StatusError:
		v.statusbar.SetState(status.StateError)
	case domain.StatusNone:
	}
	v.statusbar.SetMessage(st.Message)
}

// target returns the document an edit would be submitted against.
func (v *View) target() string {
	if v.observer == nil {
		return ""
	}
	st := v.observer.State()
	if st.EditingFile != "" {
		return st.EditingFile
	}
	return st.SelectedFile
}

// View renders the editor view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Edit Chunk"))
	b.WriteString("\n\n")

	if target := v.target(); target != "" {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("File: %s", textsafe.Line(target))))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Action: %s", v.action)))
	b.WriteString("\n\n")

	b.WriteString(v.idField.View())
	b.WriteString("\n\n")
	b.WriteString(v.content.View())
	b.WriteString("\n\n")

	if v.status.Message != "" {
		b.WriteString(v.styles.Status(v.status.Kind).Render(textsafe.Inert(v.status.Message)))
		b.WriteString("\n\n")
	}

	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.idField.SetWidth(width)
	v.content.SetDimensions(width, height-16)
	v.statusbar.SetWidth(width)
}

// Focus returns the focused field.
func (v *View) Focus() Field {
	return v.focus
}

// Action returns the selected edit action.
func (v *View) Action() domain.EditAction {
	return v.action
}

// Status returns the last status.
func (v *View) Status() domain.Status {
	return v.status
}

// ID returns the point id field value.
func (v *View) ID() string {
	return v.idField.Value()
}

// Content returns the content field value.
func (v *View) Content() string {
	return v.content.Value()
}
