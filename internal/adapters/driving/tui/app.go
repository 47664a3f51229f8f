package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/norka/internal/adapters/driving/tui/commands"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/views/note"
	"github.com/custodia-labs/norka/internal/adapters/driving/tui/views/notes"
)

// App is the root Bubbletea model. It routes messages to the active view and
// keeps the listing in step with the backing file.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	notesView *notes.View
	noteView  *note.View
	statusBar *status.Bar

	currentView messages.ViewType

	// changes is the watcher feed, nil until the watcher has started.
	changes <-chan struct{}

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		notesView:   notes.NewView(s, km, ports.Document),
		noteView:    note.NewView(s, km, ports.Document),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewNotes,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.notesView.SetContext(ctx)
	a.noteView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.statusBar.SetState(status.StateLoading)
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("norka"),
		a.notesView.Load(),
		commands.WatchStore(a.ctx, a.ports.Watcher),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewNote {
			a.noteView, cmd = a.noteView.Update(msg)
			return a, cmd
		}
		if msg.String() == "q" && !a.notesView.Filtering() && !a.notesView.ConfirmingDelete() {
			return a, tea.Quit
		}
		wasConfirming := a.notesView.ConfirmingDelete()
		a.notesView, cmd = a.notesView.Update(msg)
		a.syncConfirm(wasConfirming)
		return a, cmd

	case messages.NotesLoaded:
		a.notesView, cmd = a.notesView.Update(msg)
		if err := a.notesView.Err(); err != nil {
			a.statusBar.Show(status.StateError, err.Error())
		} else if a.statusBar.State() == status.StateLoading || a.statusBar.State() == status.StateError {
			a.statusBar.Clear()
		}
		a.statusBar.SetNoteCount(len(a.notesView.Notes()))
		return a, cmd

	case messages.NoteSelected:
		a.switchTo(messages.ViewNote)
		return a, a.noteView.Open(msg.ID)

	case messages.NoteLoaded:
		a.noteView, cmd = a.noteView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.switchTo(msg.View)
		if msg.View == messages.ViewNotes {
			return a, a.notesView.Load()
		}
		return a, nil

	case messages.NoteChanged:
		if msg.Err != nil {
			a.statusBar.Show(status.StateError, msg.Err.Error())
		} else {
			a.statusBar.Show(status.StateDone, fmt.Sprintf("%s note %d", msg.Action, msg.ID))
		}
		a.notesView, cmd = a.notesView.Update(msg)
		if a.currentView != messages.ViewNote {
			return a, cmd
		}
		var noteCmd tea.Cmd
		a.noteView, noteCmd = a.noteView.Update(msg)
		return a, tea.Batch(cmd, noteCmd)

	case messages.WatchStarted:
		if msg.Err != nil {
			a.statusBar.Show(status.StateError, "watching for changes: "+msg.Err.Error())
			return a, nil
		}
		a.changes = msg.Changes
		return a, commands.WaitForChange(a.changes)

	case messages.StoreChanged:
		cmds := []tea.Cmd{a.notesView.Load(), commands.WaitForChange(a.changes)}
		if a.currentView == messages.ViewNote {
			cmds = append(cmds, a.noteView.Reload())
		}
		return a, tea.Batch(cmds...)
	}

	if a.currentView == messages.ViewNote {
		a.noteView, cmd = a.noteView.Update(msg)
	}
	return a, cmd
}

// syncConfirm mirrors a pending deletion in the status bar.
func (a *App) syncConfirm(wasConfirming bool) {
	switch {
	case a.notesView.ConfirmingDelete():
		selected, _ := a.notesView.Selected()
		a.statusBar.Show(status.StateConfirm, fmt.Sprintf("Delete note %d? (y/n)", selected.ID))
	case wasConfirming:
		a.statusBar.Clear()
	}
}

func (a *App) switchTo(view messages.ViewType) {
	a.currentView = view
	a.statusBar.Clear()
	if view == messages.ViewNote {
		a.statusBar.SetHints(a.keymap.NoteHelp())
		return
	}
	a.statusBar.SetHints(a.keymap.ListHelp())
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	body := a.notesView.View()
	if a.currentView == messages.ViewNote {
		body = a.noteView.View()
	}
	return body + "\n\n" + a.statusBar.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SetDimensions sets the terminal dimensions on the app and its views.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// the status bar and its spacing
	viewHeight := max(height-2, 1)
	a.notesView.SetDimensions(width, viewHeight)
	a.noteView.SetDimensions(width, viewHeight)
	a.statusBar.SetWidth(width)
}
