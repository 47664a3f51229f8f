package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/norka/internal/core/domain"
)

// ==================== Count Tests ====================

func TestStore_Count_Empty(t *testing.T) {
	store := setupTestStore(t)

	n, err := store.Count(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = store.Count(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStore_Count_ExcludesArchived(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	createDoc(t, store, "a", nil, false)
	createDoc(t, store, "b", nil, true)
	createDoc(t, store, "c", nil, false)

	active, err := store.Count(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, active)

	total, err := store.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

// ==================== Create Tests ====================

func TestStore_Create_AssignsIncreasingIDs(t *testing.T) {
	store := setupTestStore(t)

	first := createDoc(t, store, "one", nil, false)
	second := createDoc(t, store, "two", nil, false)

	assert.Positive(t, first)
	assert.Greater(t, second, first)
}

func TestStore_Create_IgnoresCallerID(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	id, err := store.Create(ctx, domain.Document{ID: 999, Title: "mine"})
	require.NoError(t, err)
	assert.NotEqual(t, int64(999), id)

	_, err = store.Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Create_IDsNotReused(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	id := createDoc(t, store, "gone", nil, false)
	require.NoError(t, store.Delete(ctx, id))

	next := createDoc(t, store, "next", nil, false)
	assert.Greater(t, next, id)
}

func TestStore_Create_PreservesContentAndFlags(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	tests := []struct {
		name     string
		title    string
		content  *string
		archived bool
	}{
		{name: "nil content", title: "no body"},
		{name: "empty content", title: "empty body", content: domain.StringPtr("")},
		{name: "empty title", title: "", content: domain.StringPtr("x")},
		{name: "archived", title: "old", content: domain.StringPtr("y"), archived: true},
		{name: "unicode", title: "Ärger über Öl", content: domain.StringPtr("日本語")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := createDoc(t, store, tt.title, tt.content, tt.archived)

			doc, err := store.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, id, doc.ID)
			assert.Equal(t, tt.title, doc.Title)
			assert.Equal(t, tt.content, doc.Content)
			assert.Equal(t, tt.archived, doc.Archived)
		})
	}
}

// ==================== All Tests ====================

func TestStore_All_Empty(t *testing.T) {
	store := setupTestStore(t)

	docs, err := store.All(context.Background(), true)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestStore_All_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	createDoc(t, store, "first", nil, false)
	createDoc(t, store, "second", nil, true)
	createDoc(t, store, "third", nil, false)

	active, err := store.All(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "third"}, titles(active))

	all, err := store.All(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, titles(all))
}

func TestStore_All_ReturnsSnapshots(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	id := createDoc(t, store, "stable", domain.StringPtr("body"), false)

	docs, err := store.All(ctx, false)
	require.NoError(t, err)
	docs[0].Title = "changed locally"
	*docs[0].Content = "changed locally"

	doc, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "stable", doc.Title)
	assert.Equal(t, "body", doc.Text())
}

// ==================== Get Tests ====================

func TestStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)

	doc, err := store.Get(context.Background(), 42)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrQuery)
}

func TestStore_Get_ArchivedAddressable(t *testing.T) {
	store := setupTestStore(t)
	id := createDoc(t, store, "hidden", nil, true)

	doc, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, doc.Archived)
	assert.Equal(t, domain.StateArchived, doc.State())
}

// ==================== Save Tests ====================

func TestStore_Save_OverwritesAllFields(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	id := createDoc(t, store, "draft", domain.StringPtr("v1"), false)

	err := store.Save(ctx, domain.Document{ID: id, Title: "final", Content: nil, Archived: true})
	require.NoError(t, err)

	doc, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "final", doc.Title)
	assert.Nil(t, doc.Content)
	assert.True(t, doc.Archived)
}

func TestStore_Save_TouchesOnlyTarget(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	a := createDoc(t, store, "a", nil, false)
	b := createDoc(t, store, "b", nil, false)

	require.NoError(t, store.Save(ctx, domain.Document{ID: a, Title: "a2"}))

	doc, err := store.Get(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "b", doc.Title)
}

func TestStore_Save_MissingIDIsNoop(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	err := store.Save(ctx, domain.Document{ID: 7, Title: "ghost"})
	require.NoError(t, err)

	_, err = store.Get(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, err := store.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// ==================== Update Tests ====================

func TestStore_Update_PartialFields(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	id := createDoc(t, store, "title", domain.StringPtr("body"), false)

	require.NoError(t, store.Update(ctx, id, domain.DocumentUpdate{}.WithTitle("renamed")))

	doc, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", doc.Title)
	assert.Equal(t, "body", doc.Text())
	assert.False(t, doc.Archived)

	require.NoError(t, store.Update(ctx, id, domain.DocumentUpdate{}.WithArchived(true).WithContent(nil)))

	doc, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", doc.Title)
	assert.Nil(t, doc.Content)
	assert.True(t, doc.Archived)
}

func TestStore_Update_ArchiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	id := createDoc(t, store, "toggle", nil, false)

	require.NoError(t, store.Update(ctx, id, domain.DocumentUpdate{}.WithArchived(true)))
	n, err := store.Count(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, store.Update(ctx, id, domain.DocumentUpdate{}.WithArchived(false)))
	n, err = store.Count(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_Update_Empty(t *testing.T) {
	store := setupTestStore(t)
	id := createDoc(t, store, "x", nil, false)

	err := store.Update(context.Background(), id, domain.DocumentUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_Update_MissingIDIsNoop(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	id := createDoc(t, store, "kept", nil, false)

	require.NoError(t, store.Update(ctx, 999, domain.DocumentUpdate{}.WithArchived(true)))

	_, err := store.Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	doc, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, doc.Archived)
}

func TestUpdateQuery(t *testing.T) {
	tests := []struct {
		name     string
		upd      domain.DocumentUpdate
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "title",
			upd:      domain.DocumentUpdate{}.WithTitle("t"),
			wantSQL:  "UPDATE documents SET title = ? WHERE id = ?",
			wantArgs: []any{"t", int64(5)},
		},
		{
			name:     "clear content",
			upd:      domain.DocumentUpdate{}.WithContent(nil),
			wantSQL:  "UPDATE documents SET content = ? WHERE id = ?",
			wantArgs: []any{nil, int64(5)},
		},
		{
			name:     "all fields",
			upd:      domain.DocumentUpdate{}.WithArchived(true).WithContent(domain.StringPtr("c")).WithTitle("t"),
			wantSQL:  "UPDATE documents SET title = ?, content = ?, archived = ? WHERE id = ?",
			wantArgs: []any{"t", "c", int64(1), int64(5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := updateQuery(5, tt.upd)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

// ==================== Delete Tests ====================

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	id := createDoc(t, store, "doomed", nil, true)

	require.NoError(t, store.Delete(ctx, id))

	_, err := store.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, err := store.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStore_Delete_MissingIDSucceeds(t *testing.T) {
	store := setupTestStore(t)
	assert.NoError(t, store.Delete(context.Background(), 12345))
}

// ==================== Find Tests ====================

func TestStore_Find(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	createDoc(t, store, "Grocery run", domain.StringPtr("milk"), true)
	createDoc(t, store, "grocery LIST", nil, false)
	createDoc(t, store, "Taxes", domain.StringPtr("grocery receipts"), false)
	createDoc(t, store, "100% done", nil, false)
	createDoc(t, store, "snake_case notes", nil, false)
	createDoc(t, store, "Ärger", nil, false)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "case insensitive, active first", text: "GROCERY", want: []string{"grocery LIST", "Grocery run"}},
		{name: "title only", text: "receipts", want: []string{}},
		{name: "percent is literal", text: "%", want: []string{"100% done"}},
		{name: "underscore is literal", text: "_", want: []string{"snake_case notes"}},
		{name: "unicode folding", text: "ärger", want: []string{"Ärger"}},
		{name: "no match", text: "zzz", want: []string{}},
		{
			name: "empty matches everything",
			text: "",
			want: []string{"grocery LIST", "Taxes", "100% done", "snake_case notes", "Ärger", "Grocery run"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := store.Find(ctx, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(docs))
		})
	}
}

// ==================== Scenario Tests ====================

func TestStore_ShoppingListScenario(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	shopping := createDoc(t, store, "Shopping List", domain.StringPtr("eggs, milk"), false)
	recipe := createDoc(t, store, "Recipe", domain.StringPtr("pancakes"), false)

	n, err := store.Count(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, store.Update(ctx, shopping, domain.DocumentUpdate{}.WithArchived(true)))

	n, err = store.Count(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	found, err := store.Find(ctx, "list")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, shopping, found[0].ID)
	assert.True(t, found[0].Archived)

	require.NoError(t, store.Delete(ctx, recipe))

	active, err := store.All(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestStore_DurableAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(Config{DataDir: dir})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		createDoc(t, store, fmt.Sprintf("note %d", i), nil, i%2 == 0)
	}
	require.NoError(t, store.Close())

	reopened, err := NewStore(Config{DataDir: dir})
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = reopened.Count(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
