// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/norka/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewNotes is the note list.
	ViewNotes ViewType = iota
	// ViewNote shows a single note.
	ViewNote
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// NotesLoaded carries a listing back to the notes view.
// Query is the filter text the listing was produced for.
type NotesLoaded struct {
	Query string
	Notes []domain.Document
	Err   error
}

// NoteSelected is sent when a note is opened from the list.
type NoteSelected struct {
	ID int64
}

// NoteLoaded carries a single note back to the note view.
type NoteLoaded struct {
	Note *domain.Document
	Err  error
}

// NoteChanged reports the outcome of archiving, restoring or deleting a note.
type NoteChanged struct {
	ID     int64
	Action Action
	Err    error
}

// Action names a change made to a note.
type Action string

// Note actions.
const (
	ActionArchived Action = "Archived"
	ActionRestored Action = "Restored"
	ActionDeleted  Action = "Deleted"
)

// WatchStarted carries the change feed once the watcher is running.
type WatchStarted struct {
	Changes <-chan struct{}
	Err     error
}

// StoreChanged is sent when the backing file was modified, possibly by
// another process.
type StoreChanged struct{}
