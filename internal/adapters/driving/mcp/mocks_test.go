package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/norka/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/norka/internal/core/domain"
	"github.com/custodia-labs/norka/internal/core/services"
)

// mockDocumentService is a mock implementation of driving.DocumentService
// that fails every call with err.
type mockDocumentService struct {
	err error
}

func (m *mockDocumentService) List(_ context.Context, _ bool) ([]domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) Count(_ context.Context, _ bool) (int, error) {
	return 0, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ int64) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) Create(_ context.Context, _ string, _ *string) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) Save(_ context.Context, _ domain.Document) error {
	return m.err
}

func (m *mockDocumentService) Update(_ context.Context, _ int64, _ domain.DocumentUpdate) error {
	return m.err
}

func (m *mockDocumentService) Archive(_ context.Context, _ int64) error {
	return m.err
}

func (m *mockDocumentService) Unarchive(_ context.Context, _ int64) error {
	return m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ int64) error {
	return m.err
}

func (m *mockDocumentService) Find(_ context.Context, _ string) ([]domain.Document, error) {
	return nil, m.err
}

// newTestServer returns a server over an in-memory store seeded with notes.
func newTestServer(t *testing.T, seed ...domain.Document) (*Server, *services.DocumentService) {
	t.Helper()

	store := memory.NewDocumentStore()
	for _, doc := range seed {
		_, err := store.Create(context.Background(), doc)
		require.NoError(t, err)
	}

	svc := services.NewDocumentService(store)
	server, err := NewServer(&Ports{Document: svc})
	require.NoError(t, err)
	return server, svc
}
