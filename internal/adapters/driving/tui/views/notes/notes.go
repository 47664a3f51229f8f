// Package notes provides the note list view for the TUI.
package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/norka/internal/adapters/driving/tui/commands"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/norka/internal/core/domain"
	"github.com/custodia-labs/norka/internal/core/ports/driving"
)

// View lists notes and lets the user filter, archive and delete them.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.DocumentService
	filter  *input.FilterInput

	notes         []domain.Document
	selected      int
	scrollOffset  int
	showArchived  bool
	confirmDelete bool
	loading       bool
	err           error
	width         int
	height        int
}

// NewView creates a new notes view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		service: service,
		filter:  input.NewFilterInput(s),
		notes:   []domain.Document{},
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Load reads the listing for the current filter and archive toggle.
func (v *View) Load() tea.Cmd {
	v.loading = true
	return commands.LoadNotes(v.ctx, v.service, v.filter.Value(), v.showArchived)
}

// Update handles messages for the notes view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch {
		case v.filter.Focused():
			return v.handleFilterKey(msg)
		case v.confirmDelete:
			return v.handleConfirmKey(msg)
		default:
			return v.handleKeyMsg(msg)
		}

	case messages.NotesLoaded:
		// a reply for an older filter is stale
		if msg.Query != v.filter.Value() {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.setNotes(msg.Notes)
		return v, nil

	case messages.NoteChanged:
		if msg.Err != nil {
			return v, nil
		}
		return v, v.Load()
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case key.Matches(msg, v.keymap.Down):
		if v.selected < len(v.notes)-1 {
			v.selected++
			v.adjustScroll()
		}
	case key.Matches(msg, v.keymap.Open):
		if note, ok := v.Selected(); ok {
			id := note.ID
			return v, func() tea.Msg { return messages.NoteSelected{ID: id} }
		}
	case key.Matches(msg, v.keymap.Filter):
		return v, v.filter.Focus()
	case key.Matches(msg, v.keymap.ShowArchived):
		v.showArchived = !v.showArchived
		return v, v.Load()
	case key.Matches(msg, v.keymap.Archive):
		if note, ok := v.Selected(); ok {
			return v, commands.ToggleArchive(v.ctx, v.service, note)
		}
	case key.Matches(msg, v.keymap.Delete):
		if _, ok := v.Selected(); ok {
			v.confirmDelete = true
		}
	case key.Matches(msg, v.keymap.Back):
		if v.filter.Value() != "" {
			v.filter.Reset()
			return v, v.Load()
		}
	case key.Matches(msg, v.keymap.Reload):
		return v, v.Load()
	}
	return v, nil
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filter.Blur()
		v.filter.Reset()
		return v, v.Load()
	case tea.KeyEnter:
		v.filter.Blur()
		return v, nil
	case tea.KeyUp, tea.KeyDown:
		v.filter.Blur()
		return v.handleKeyMsg(msg)
	}

	before := v.filter.Value()
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	if v.filter.Value() == before {
		return v, cmd
	}
	return v, tea.Batch(cmd, v.Load())
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.confirmDelete = false
	if !key.Matches(msg, v.keymap.Confirm) {
		return v, nil
	}
	note, ok := v.Selected()
	if !ok {
		return v, nil
	}
	return v, commands.DeleteNote(v.ctx, v.service, note.ID)
}

// setNotes replaces the listing, keeping the cursor on the same note when it
// is still present.
func (v *View) setNotes(notes []domain.Document) {
	var current int64
	if note, ok := v.Selected(); ok {
		current = note.ID
	}

	v.notes = notes
	if v.notes == nil {
		v.notes = []domain.Document{}
	}

	v.selected = min(v.selected, max(len(v.notes)-1, 0))
	for i, note := range v.notes {
		if note.ID == current {
			v.selected = i
			break
		}
	}
	v.adjustScroll()
}

// adjustScroll keeps the selected note visible.
func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleItemCount returns the number of notes that fit on screen.
func (v *View) visibleItemCount() int {
	// title, filter, blank lines and the status bar
	const reserved = 7
	return max(v.height-reserved, 1)
}

// View renders the notes view.
func (v *View) View() string {
	var b strings.Builder

	title := "Notes"
	if v.showArchived {
		title = "All notes"
	}
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("%s (%d)", title, len(v.notes))))
	b.WriteString("\n\n")

	if v.filter.Focused() || v.filter.Value() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n\n")
	}

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.loading && len(v.notes) == 0:
		b.WriteString(v.styles.Muted.Render("Loading notes..."))
	case len(v.notes) == 0 && v.filter.Value() != "":
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("No notes match %q.", v.filter.Value())))
	case len(v.notes) == 0:
		b.WriteString(v.styles.Muted.Render("No notes."))
	default:
		v.renderList(&b)
	}

	return b.String()
}

func (v *View) renderList(b *strings.Builder) {
	visible := v.visibleItemCount()
	end := min(v.scrollOffset+visible, len(v.notes))
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderNote(i, v.notes[i]))
		b.WriteString("\n")
	}

	if len(v.notes) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1, end, len(v.notes))))
	}
}

func (v *View) renderNote(index int, note domain.Document) string {
	title := truncate(note.Title, max(v.width-20, 10))
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%4d  %s", note.ID, title)

	if index == v.selected {
		if note.Archived {
			line += " [archived]"
		}
		return v.styles.Selected.Render("> " + line)
	}
	if note.Archived {
		return "  " + v.styles.Archived.Render(line+" [archived]")
	}
	return "  " + v.styles.Normal.Render(line)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// Selected returns the note under the cursor.
func (v *View) Selected() (domain.Document, bool) {
	if v.selected < 0 || v.selected >= len(v.notes) {
		return domain.Document{}, false
	}
	return v.notes[v.selected], true
}

// Notes returns the current listing.
func (v *View) Notes() []domain.Document {
	return v.notes
}

// Filtering reports whether the filter input has focus.
func (v *View) Filtering() bool {
	return v.filter.Focused()
}

// Query returns the current filter text.
func (v *View) Query() string {
	return v.filter.Value()
}

// ConfirmingDelete reports whether a deletion awaits confirmation.
func (v *View) ConfirmingDelete() bool {
	return v.confirmDelete
}

// ShowArchived reports whether archived notes are listed.
func (v *View) ShowArchived() bool {
	return v.showArchived
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.filter.SetWidth(width)
	v.adjustScroll()
}
