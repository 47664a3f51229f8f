package driven

import (
	"context"

	"github.com/custodia-labs/norka/internal/core/domain"
)

// DocumentStore persists notes.
// Backed by a single SQLite file in production.
//
// Every mutating call has committed by the time it returns nil.
// Implementations report write failures wrapped in domain.ErrWrite and read
// failures wrapped in domain.ErrQuery, and log each one once where it occurs.
type DocumentStore interface {
	// Count returns the number of documents, excluding archived ones
	// unless includeArchived is set.
	Count(ctx context.Context, includeArchived bool) (int, error)

	// Create inserts a document and returns its newly assigned ID.
	// Any ID set on doc is ignored.
	Create(ctx context.Context, doc domain.Document) (int64, error)

	// All returns documents in insertion order, excluding archived ones
	// unless includeArchived is set.
	All(ctx context.Context, includeArchived bool) ([]domain.Document, error)

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// Save overwrites title, content and archived of the document with doc.ID.
	// Saving an unknown ID writes nothing and is not an error.
	Save(ctx context.Context, doc domain.Document) error

	// Update writes only the fields set in upd.
	// Returns domain.ErrInvalidInput for an empty update.
	// Updating an unknown ID writes nothing and is not an error.
	Update(ctx context.Context, id int64, upd domain.DocumentUpdate) error

	// Delete permanently removes a document.
	// Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id int64) error

	// Find returns documents whose title contains searchText, ignoring case.
	// Active documents come before archived ones.
	Find(ctx context.Context, searchText string) ([]domain.Document, error)

	// Close releases the underlying database handle.
	Close() error
}
