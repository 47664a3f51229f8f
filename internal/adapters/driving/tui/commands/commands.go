// Package commands builds the Bubbletea commands that reach the document
// service and the change watcher. Each command runs off the UI goroutine and
// reports back through a message from the messages package.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/norka/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/norka/internal/core/domain"
	"github.com/custodia-labs/norka/internal/core/ports/driven"
	"github.com/custodia-labs/norka/internal/core/ports/driving"
)

// LoadNotes lists notes. A non-empty query searches titles instead, which
// always includes archived notes.
func LoadNotes(ctx context.Context, svc driving.DocumentService, query string, includeArchived bool) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return messages.NotesLoaded{Query: query, Err: domain.ErrStoreUnavailable}
		}

		var (
			notes []domain.Document
			err   error
		)
		if query != "" {
			notes, err = svc.Find(ctx, query)
		} else {
			notes, err = svc.List(ctx, includeArchived)
		}
		return messages.NotesLoaded{Query: query, Notes: notes, Err: err}
	}
}

// LoadNote fetches a single note.
func LoadNote(ctx context.Context, svc driving.DocumentService, id int64) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return messages.NoteLoaded{Err: domain.ErrStoreUnavailable}
		}
		note, err := svc.Get(ctx, id)
		return messages.NoteLoaded{Note: note, Err: err}
	}
}

// ToggleArchive archives an active note or restores an archived one.
func ToggleArchive(ctx context.Context, svc driving.DocumentService, note domain.Document) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return messages.NoteChanged{ID: note.ID, Err: domain.ErrStoreUnavailable}
		}
		if note.Archived {
			return messages.NoteChanged{
				ID:     note.ID,
				Action: messages.ActionRestored,
				Err:    svc.Unarchive(ctx, note.ID),
			}
		}
		return messages.NoteChanged{
			ID:     note.ID,
			Action: messages.ActionArchived,
			Err:    svc.Archive(ctx, note.ID),
		}
	}
}

// DeleteNote permanently removes a note.
func DeleteNote(ctx context.Context, svc driving.DocumentService, id int64) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return messages.NoteChanged{ID: id, Err: domain.ErrStoreUnavailable}
		}
		return messages.NoteChanged{
			ID:     id,
			Action: messages.ActionDeleted,
			Err:    svc.Delete(ctx, id),
		}
	}
}

// WatchStore starts the change watcher. It returns nil when there is no
// watcher to start.
func WatchStore(ctx context.Context, w driven.ChangeWatcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		changes, err := w.Watch(ctx)
		return messages.WatchStarted{Changes: changes, Err: err}
	}
}

// WaitForChange blocks until the next change arrives. It yields no message
// once the feed is closed.
func WaitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return messages.StoreChanged{}
	}
}
