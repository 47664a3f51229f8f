package driving

import (
	"context"

	"github.com/custodia-labs/norka/internal/core/domain"
)

// DocumentService manages notes.
type DocumentService interface {
	// List returns notes, including archived ones if requested.
	List(ctx context.Context, includeArchived bool) ([]domain.Document, error)

	// Count returns the number of notes, including archived ones if requested.
	Count(ctx context.Context, includeArchived bool) (int, error)

	// Get retrieves a note by ID.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// Create stores a new note and returns it with its assigned ID.
	Create(ctx context.Context, title string, content *string) (*domain.Document, error)

	// Save overwrites a note's title, content and archived flag.
	Save(ctx context.Context, doc domain.Document) error

	// Update applies a partial update to a note.
	Update(ctx context.Context, id int64, upd domain.DocumentUpdate) error

	// Archive hides a note from default listings.
	Archive(ctx context.Context, id int64) error

	// Unarchive returns an archived note to the active list.
	Unarchive(ctx context.Context, id int64) error

	// Delete permanently removes a note.
	Delete(ctx context.Context, id int64) error

	// Find searches note titles.
	Find(ctx context.Context, text string) ([]domain.Document, error)
}
