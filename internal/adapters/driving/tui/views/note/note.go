// Package note provides the single note view for the TUI.
package note

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/norka/internal/adapters/driving/tui/commands"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/norka/internal/core/domain"
	"github.com/custodia-labs/norka/internal/core/ports/driving"
)

// header lines above the viewport
const headerHeight = 4

// View shows one note with a scrollable body.
type View struct {
	ctx      context.Context
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	service  driving.DocumentService
	viewport viewport.Model

	id      int64
	note    *domain.Document
	loading bool
	err     error
	width   int
	height  int
}

// NewView creates a new note view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		ctx:      context.Background(),
		styles:   s,
		keymap:   km,
		service:  service,
		viewport: viewport.New(80, 20),
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Open starts loading the note with the given ID.
func (v *View) Open(id int64) tea.Cmd {
	v.id = id
	v.note = nil
	v.err = nil
	v.viewport.SetContent("")
	v.viewport.GotoTop()
	return v.Reload()
}

// Reload fetches the open note again.
func (v *View) Reload() tea.Cmd {
	if v.id == 0 {
		return nil
	}
	v.loading = true
	return commands.LoadNote(v.ctx, v.service, v.id)
}

// Update handles messages for the note view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.NoteLoaded:
		v.loading = false
		if msg.Err != nil {
			v.note = nil
			v.err = msg.Err
			return v, nil
		}
		if msg.Note == nil || msg.Note.ID != v.id {
			return v, nil
		}
		v.err = nil
		v.note = msg.Note
		v.viewport.SetContent(v.renderBody())
		return v, nil

	case messages.NoteChanged:
		if msg.Err != nil || msg.ID != v.id {
			return v, nil
		}
		if msg.Action == messages.ActionDeleted {
			return v, v.back()
		}
		return v, v.Reload()
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back), key.Matches(msg, v.keymap.Quit) && msg.Type != tea.KeyCtrlC:
		return v, v.back()
	case key.Matches(msg, v.keymap.Archive):
		if v.note != nil {
			return v, commands.ToggleArchive(v.ctx, v.service, *v.note)
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *View) back() tea.Cmd {
	v.id = 0
	v.note = nil
	v.err = nil
	return func() tea.Msg {
		return messages.ViewChanged{View: messages.ViewNotes}
	}
}

func (v *View) renderBody() string {
	if v.note == nil {
		return ""
	}
	if !v.note.HasContent() {
		return v.styles.Muted.Render("(no content)")
	}
	if v.note.Text() == "" {
		return v.styles.Muted.Render("(empty)")
	}
	return v.note.Text()
}

// View renders the note view.
func (v *View) View() string {
	var b strings.Builder

	switch {
	case errors.Is(v.err, domain.ErrNotFound):
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Note %d no longer exists.", v.id)))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		return b.String()
	case v.note == nil:
		b.WriteString(v.styles.Muted.Render("Loading note..."))
		return b.String()
	}

	title := v.note.Title
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(v.styles.Title.Render(title))
	if v.note.Archived {
		b.WriteString(" ")
		b.WriteString(v.styles.Archived.Render("[archived]"))
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Note %d", v.note.ID)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Content.Render(v.viewport.View()))

	return b.String()
}

// Note returns the loaded note, if any.
func (v *View) Note() *domain.Document {
	return v.note
}

// ID returns the ID of the open note, or 0 when none is open.
func (v *View) ID() int64 {
	return v.id
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	// border and padding of the content frame
	v.viewport.Width = max(width-3, 10)
	v.viewport.Height = max(height-headerHeight-1, 1)
}
