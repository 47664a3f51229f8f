package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/norka/internal/core/domain"
)

func TestServer_handleListNotes(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t,
		domain.Document{Title: "active"},
		domain.Document{Title: "old", Archived: true},
	)

	_, output, err := server.handleListNotes(ctx, nil, ListNotesInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, output.Count)
	assert.Equal(t, "active", output.Notes[0].Title)

	_, output, err = server.handleListNotes(ctx, nil, ListNotesInput{IncludeArchived: true})
	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)
	assert.True(t, output.Notes[1].Archived)
}

func TestServer_handleGetNote(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t, domain.NewDocument("Recipe", "pancakes"))

	_, output, err := server.handleGetNote(ctx, nil, NoteIDInput{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), output.ID)
	assert.Equal(t, "Recipe", output.Title)
	require.NotNil(t, output.Content)
	assert.Equal(t, "pancakes", *output.Content)

	_, _, err = server.handleGetNote(ctx, nil, NoteIDInput{ID: 9})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_handleFindNotes(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t,
		domain.Document{Title: "Shopping List", Archived: true},
		domain.Document{Title: "Wish list"},
		domain.Document{Title: "Recipe"},
	)

	_, output, err := server.handleFindNotes(ctx, nil, FindNotesInput{Text: "LIST"})
	require.NoError(t, err)
	require.Equal(t, 2, output.Count)
	assert.Equal(t, "Wish list", output.Notes[0].Title)
	assert.Equal(t, "Shopping List", output.Notes[1].Title)
}

func TestServer_handleCreateNote(t *testing.T) {
	ctx := context.Background()
	server, svc := newTestServer(t)

	_, output, err := server.handleCreateNote(ctx, nil, CreateNoteInput{Title: "New", Content: domain.StringPtr("body")})
	require.NoError(t, err)
	assert.Positive(t, output.ID)

	doc, err := svc.Get(ctx, output.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", doc.Title)
	assert.Equal(t, "body", doc.Text())
}

func TestServer_handleUpdateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("archives and renames", func(t *testing.T) {
		server, _ := newTestServer(t, domain.NewDocument("draft", "text"))
		archived := true

		_, output, err := server.handleUpdateNote(ctx, nil, UpdateNoteInput{
			ID:       1,
			Title:    domain.StringPtr("final"),
			Archived: &archived,
		})
		require.NoError(t, err)
		assert.Equal(t, "final", output.Title)
		assert.True(t, output.Archived)
		require.NotNil(t, output.Content)
		assert.Equal(t, "text", *output.Content)
	})

	t.Run("clears content", func(t *testing.T) {
		server, _ := newTestServer(t, domain.NewDocument("draft", "text"))

		_, output, err := server.handleUpdateNote(ctx, nil, UpdateNoteInput{ID: 1, ClearContent: true})
		require.NoError(t, err)
		assert.Nil(t, output.Content)
	})

	t.Run("empty update is invalid", func(t *testing.T) {
		server, _ := newTestServer(t, domain.NewDocument("draft", "text"))

		_, _, err := server.handleUpdateNote(ctx, nil, UpdateNoteInput{ID: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("content and clear_content conflict", func(t *testing.T) {
		server, _ := newTestServer(t, domain.NewDocument("draft", "text"))

		_, _, err := server.handleUpdateNote(ctx, nil, UpdateNoteInput{
			ID: 1, Content: domain.StringPtr("x"), ClearContent: true,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing note", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, _, err := server.handleUpdateNote(ctx, nil, UpdateNoteInput{ID: 5, Title: domain.StringPtr("x")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleDeleteNote(t *testing.T) {
	ctx := context.Background()
	server, svc := newTestServer(t, domain.NewDocument("gone", ""))

	_, output, err := server.handleDeleteNote(ctx, nil, NoteIDInput{ID: 1})
	require.NoError(t, err)
	assert.True(t, output.Deleted)

	_, err = svc.Get(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_ToolsPropagateErrors(t *testing.T) {
	ctx := context.Background()
	failure := errors.New("query failed")
	server, err := NewServer(&Ports{Document: &mockDocumentService{err: failure}})
	require.NoError(t, err)

	_, _, err = server.handleListNotes(ctx, nil, ListNotesInput{})
	assert.ErrorIs(t, err, failure)

	_, _, err = server.handleFindNotes(ctx, nil, FindNotesInput{Text: "x"})
	assert.ErrorIs(t, err, failure)

	_, _, err = server.handleCreateNote(ctx, nil, CreateNoteInput{Title: "x"})
	assert.ErrorIs(t, err, failure)

	_, _, err = server.handleDeleteNote(ctx, nil, NoteIDInput{ID: 1})
	assert.ErrorIs(t, err, failure)
}
