package sqlite

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/custodia-labs/norka/internal/core/domain"
)

var errDisk = errors.New("disk I/O error")

// setupMockStore wires a Store to go-sqlmock and an observed logger.
func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock, *observer.ObservedLogs) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	store := &Store{db: db, path: "mock.db", log: zap.New(core)}

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return store, mock, logs
}

func errorEntries(logs *observer.ObservedLogs) int {
	return logs.FilterLevelExact(zapcore.ErrorLevel).Len()
}

func TestStore_Create_WriteFailureLoggedOnce(t *testing.T) {
	store, mock, logs := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO documents")).
		WithArgs("title", "body", int64(0)).
		WillReturnError(errDisk)

	_, err := store.Create(context.Background(), domain.NewDocument("title", "body"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWrite)
	assert.ErrorIs(t, err, errDisk)
	assert.Equal(t, 1, errorEntries(logs))
}

func TestStore_Save_WriteFailureLoggedOnce(t *testing.T) {
	store, mock, logs := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET title = ?, content = ?, archived = ?")).
		WithArgs("t", nil, int64(1), int64(4)).
		WillReturnError(errDisk)

	err := store.Save(context.Background(), domain.Document{ID: 4, Title: "t", Archived: true})
	assert.ErrorIs(t, err, domain.ErrWrite)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, errorEntries(logs))

	entry := logs.FilterLevelExact(zapcore.ErrorLevel).All()[0]
	assert.Equal(t, "saving document failed", entry.Message)
	assert.Equal(t, int64(4), entry.ContextMap()["id"])
}

func TestStore_Save_MissingIDNotAnError(t *testing.T) {
	store, mock, logs := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Save(context.Background(), domain.Document{ID: 9, Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, 0, errorEntries(logs))
}

func TestStore_Update_MissingIDNotAnError(t *testing.T) {
	store, mock, logs := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET archived = ? WHERE id = ?")).
		WithArgs(int64(1), int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Update(context.Background(), 999, domain.DocumentUpdate{}.WithArchived(true))
	require.NoError(t, err)
	assert.Equal(t, 0, errorEntries(logs))
}

func TestStore_Save_RowsAffectedFailure(t *testing.T) {
	store, mock, logs := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET")).
		WillReturnResult(sqlmock.NewErrorResult(errDisk))

	err := store.Save(context.Background(), domain.Document{ID: 9, Title: "t"})
	assert.ErrorIs(t, err, domain.ErrWrite)
	assert.Equal(t, 1, errorEntries(logs))
}

func TestStore_Update_WriteFailureLoggedOnce(t *testing.T) {
	store, mock, logs := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET archived = ? WHERE id = ?")).
		WithArgs(int64(1), int64(2)).
		WillReturnError(errDisk)

	err := store.Update(context.Background(), 2, domain.DocumentUpdate{}.WithArchived(true))
	assert.ErrorIs(t, err, domain.ErrWrite)
	assert.Equal(t, 1, errorEntries(logs))
}

func TestStore_Update_EmptyRunsNoSQL(t *testing.T) {
	store, _, logs := setupMockStore(t)

	err := store.Update(context.Background(), 2, domain.DocumentUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, errorEntries(logs))
}

func TestStore_Delete_WriteFailureLoggedOnce(t *testing.T) {
	store, mock, logs := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnError(errDisk)

	err := store.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrWrite)
	assert.Equal(t, 1, errorEntries(logs))
}

func TestStore_Count_QueryFailure(t *testing.T) {
	store, mock, logs := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM documents WHERE archived = 0")).
		WillReturnError(errDisk)

	n, err := store.Count(context.Background(), false)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, domain.ErrQuery)
	assert.Equal(t, 1, errorEntries(logs))
}

func TestStore_All_QueryFailure(t *testing.T) {
	store, mock, logs := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, content, archived FROM documents ORDER BY id")).
		WillReturnError(errDisk)

	docs, err := store.All(context.Background(), true)
	assert.Nil(t, docs)
	assert.ErrorIs(t, err, domain.ErrQuery)
	assert.Equal(t, 1, errorEntries(logs))
}

func TestStore_All_RowIterationFailure(t *testing.T) {
	store, mock, logs := setupMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "title", "content", "archived"}).
		AddRow(int64(1), "ok", nil, int64(0)).
		AddRow(int64(2), "broken", nil, int64(0)).
		RowError(1, errDisk)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, content, archived FROM documents")).
		WillReturnRows(rows)

	_, err := store.All(context.Background(), false)
	assert.ErrorIs(t, err, domain.ErrQuery)
	assert.Equal(t, 1, errorEntries(logs))
}

func TestStore_Get_QueryFailure(t *testing.T) {
	store, mock, logs := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, content, archived FROM documents WHERE id = ?")).
		WithArgs(int64(1)).
		WillReturnError(errDisk)

	_, err := store.Get(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrQuery)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, errorEntries(logs))
}

func TestStore_Find_UsesEscapedFoldedPattern(t *testing.T) {
	store, mock, _ := setupMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "title", "content", "archived"}).
		AddRow(int64(3), "50% OFF", "sale", int64(0))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE norka_fold(title) LIKE ? ESCAPE '\\' ORDER BY archived ASC, id ASC")).
		WithArgs(`%50\% off%`).
		WillReturnRows(rows)

	docs, err := store.Find(context.Background(), "50% OFF")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "sale", docs[0].Text())
}

func TestStore_Find_QueryFailure(t *testing.T) {
	store, mock, logs := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("norka_fold(title)")).WillReturnError(errDisk)

	_, err := store.Find(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrQuery)
	assert.Equal(t, 1, errorEntries(logs))
}

func TestStore_Init_SchemaFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	store := &Store{path: "mock.db", log: zap.New(core)}

	mock.ExpectPing()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS `documents`")).WillReturnError(errDisk)

	err = store.init(context.Background(), db)
	assert.ErrorIs(t, err, domain.ErrStoreInit)
	assert.ErrorIs(t, err, errDisk)
	assert.Nil(t, store.db)
	assert.Equal(t, 1, errorEntries(logs))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Init_PingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	store := &Store{path: "mock.db", log: zap.NewNop()}
	mock.ExpectPing().WillReturnError(errDisk)

	err = store.init(context.Background(), db)
	assert.ErrorIs(t, err, domain.ErrStoreInit)
	assert.Contains(t, err.Error(), "opening database")
}
