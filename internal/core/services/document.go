package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/norka/internal/core/domain"
	"github.com/custodia-labs/norka/internal/core/ports/driven"
	"github.com/custodia-labs/norka/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages notes on top of a DocumentStore.
// Store errors are returned as-is; the store has already logged them.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{docStore: docStore}
}

// List returns notes in creation order.
func (s *DocumentService) List(ctx context.Context, includeArchived bool) ([]domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.docStore.All(ctx, includeArchived)
}

// Count returns the number of notes.
func (s *DocumentService) Count(ctx context.Context, includeArchived bool) (int, error) {
	if s.docStore == nil {
		return 0, domain.ErrStoreUnavailable
	}
	return s.docStore.Count(ctx, includeArchived)
}

// Get retrieves a note by ID.
func (s *DocumentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.docStore.Get(ctx, id)
}

// Create stores a new active note and returns it with its ID.
func (s *DocumentService) Create(ctx context.Context, title string, content *string) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrStoreUnavailable
	}

	doc := domain.Document{Title: title, Content: content}
	id, err := s.docStore.Create(ctx, doc)
	if err != nil {
		return nil, err
	}

	doc.ID = id
	return &doc, nil
}

// Save overwrites a note. Returns domain.ErrNotFound for an unknown ID.
func (s *DocumentService) Save(ctx context.Context, doc domain.Document) error {
	if s.docStore == nil {
		return domain.ErrStoreUnavailable
	}
	if doc.ID <= 0 {
		return fmt.Errorf("%w: document has no id", domain.ErrInvalidInput)
	}
	if err := s.mustExist(ctx, doc.ID); err != nil {
		return err
	}
	return s.docStore.Save(ctx, doc)
}

// Update applies a partial update. Returns domain.ErrNotFound for an
// unknown ID.
func (s *DocumentService) Update(ctx context.Context, id int64, upd domain.DocumentUpdate) error {
	if s.docStore == nil {
		return domain.ErrStoreUnavailable
	}
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}
	return s.docStore.Update(ctx, id, upd)
}

// mustExist reports domain.ErrNotFound for an unknown ID.
// Stores ignore writes to missing rows.
func (s *DocumentService) mustExist(ctx context.Context, id int64) error {
	_, err := s.docStore.Get(ctx, id)
	return err
}

// Archive hides a note from default listings and counts.
func (s *DocumentService) Archive(ctx context.Context, id int64) error {
	return s.Update(ctx, id, domain.DocumentUpdate{}.WithArchived(true))
}

// Unarchive makes an archived note active again.
func (s *DocumentService) Unarchive(ctx context.Context, id int64) error {
	return s.Update(ctx, id, domain.DocumentUpdate{}.WithArchived(false))
}

// Delete permanently removes a note.
func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	if s.docStore == nil {
		return domain.ErrStoreUnavailable
	}
	return s.docStore.Delete(ctx, id)
}

// Find searches note titles, ignoring case. Archived notes sort last.
func (s *DocumentService) Find(ctx context.Context, text string) ([]domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.docStore.Find(ctx, text)
}
