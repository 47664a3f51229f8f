package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/norka/internal/core/domain"
	"github.com/custodia-labs/norka/internal/core/ports/driven"
	"github.com/custodia-labs/norka/internal/textfold"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// IDs increase monotonically and are never reused, even after Delete.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[int64]domain.Document
	lastID    int64
	closed    bool
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[int64]domain.Document),
	}
}

// Count returns the number of documents.
func (s *DocumentStore) Count(_ context.Context, includeArchived bool) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	n := 0
	for _, doc := range s.documents {
		if includeArchived || !doc.Archived {
			n++
		}
	}
	return n, nil
}

// Create stores a copy of doc under a new ID.
func (s *DocumentStore) Create(_ context.Context, doc domain.Document) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, fmt.Errorf("%w: store closed", domain.ErrWrite)
	}

	s.lastID++
	doc.ID = s.lastID
	s.documents[doc.ID] = clone(doc)
	return doc.ID, nil
}

// All returns documents ordered by ID.
func (s *DocumentStore) All(_ context.Context, includeArchived bool) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	return s.collect(func(doc domain.Document) bool {
		return includeArchived || !doc.Archived
	}, byID), nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id int64) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	doc, ok := s.documents[id]
	if !ok {
		return nil, fmt.Errorf("%w: document %d", domain.ErrNotFound, id)
	}
	out := clone(doc)
	return &out, nil
}

// Save overwrites the document with doc.ID. Unknown IDs are ignored.
func (s *DocumentStore) Save(_ context.Context, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("%w: store closed", domain.ErrWrite)
	}

	if _, ok := s.documents[doc.ID]; !ok {
		return nil
	}
	s.documents[doc.ID] = clone(doc)
	return nil
}

// Update applies a partial update. Unknown IDs are ignored.
func (s *DocumentStore) Update(_ context.Context, id int64, upd domain.DocumentUpdate) error {
	if upd.IsEmpty() {
		return fmt.Errorf("%w: update has no fields", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("%w: store closed", domain.ErrWrite)
	}

	doc, ok := s.documents[id]
	if !ok {
		return nil
	}
	s.documents[id] = clone(upd.Apply(doc))
	return nil
}

// Delete removes a document. Unknown IDs are ignored.
func (s *DocumentStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("%w: store closed", domain.ErrWrite)
	}

	delete(s.documents, id)
	return nil
}

// Find returns documents whose title contains text, ignoring case.
// Active documents come first, then by ID.
func (s *DocumentStore) Find(_ context.Context, text string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	return s.collect(func(doc domain.Document) bool {
		return textfold.Contains(doc.Title, text)
	}, activeFirst), nil
}

// Close marks the store closed. Later calls fail like a closed database.
func (s *DocumentStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *DocumentStore) checkOpen() error {
	if s.closed {
		return fmt.Errorf("%w: store closed", domain.ErrQuery)
	}
	return nil
}

// collect must be called with the lock held.
func (s *DocumentStore) collect(keep func(domain.Document) bool, less func(a, b domain.Document) bool) []domain.Document {
	docs := []domain.Document{}
	for _, doc := range s.documents {
		if keep(doc) {
			docs = append(docs, clone(doc))
		}
	}
	sort.Slice(docs, func(i, j int) bool { return less(docs[i], docs[j]) })
	return docs
}

func byID(a, b domain.Document) bool {
	return a.ID < b.ID
}

func activeFirst(a, b domain.Document) bool {
	if a.Archived != b.Archived {
		return !a.Archived
	}
	return a.ID < b.ID
}

// clone detaches the content pointer so callers cannot mutate stored state.
func clone(doc domain.Document) domain.Document {
	if doc.Content != nil {
		c := *doc.Content
		doc.Content = &c
	}
	return doc
}
