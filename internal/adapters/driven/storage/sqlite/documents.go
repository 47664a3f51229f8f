package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/custodia-labs/norka/internal/core/domain"
	"github.com/custodia-labs/norka/internal/textfold"
)

const selectDocuments = "SELECT id, title, content, archived FROM documents"

// Count returns the number of documents.
func (s *Store) Count(ctx context.Context, includeArchived bool) (int, error) {
	query := "SELECT COUNT(1) FROM documents"
	if !includeArchived {
		query += " WHERE archived = 0"
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, s.queryFailed("counting documents", err)
	}
	return count, nil
}

// Create inserts a document and returns its ID.
// The ID comes back from the INSERT itself, so no other statement can
// observe the row without it.
func (s *Store) Create(ctx context.Context, doc domain.Document) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO documents (title, content, archived)
		VALUES (?, ?, ?)
		RETURNING id
	`, doc.Title, textArg(doc.Content), boolArg(doc.Archived)).Scan(&id)
	if err != nil {
		return 0, s.writeFailed("creating document", 0, err)
	}

	s.log.Debug("document created", zap.Int64("id", id))
	return id, nil
}

// All returns documents in insertion order.
func (s *Store) All(ctx context.Context, includeArchived bool) ([]domain.Document, error) {
	query := selectDocuments
	if !includeArchived {
		query += " WHERE archived = 0"
	}
	query += " ORDER BY id"

	return s.queryDocuments(ctx, "listing documents", query)
}

// Get retrieves a document by ID.
func (s *Store) Get(ctx context.Context, id int64) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, selectDocuments+" WHERE id = ?", id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: document %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, s.queryFailed("getting document", err)
	}
	return doc, nil
}

// Save overwrites title, content and archived of the document with doc.ID.
// An ID with no row writes nothing and is not an error.
func (s *Store) Save(ctx context.Context, doc domain.Document) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents SET title = ?, content = ?, archived = ?
		WHERE id = ?
	`, doc.Title, textArg(doc.Content), boolArg(doc.Archived), doc.ID)
	if err != nil {
		return s.writeFailed("saving document", doc.ID, err)
	}
	return s.checkAffected(res, "saving document", doc.ID)
}

// Update writes the fields set in upd.
// Column names come from the closed domain.Field set, never from input.
// As with Save, an ID with no row is not an error.
func (s *Store) Update(ctx context.Context, id int64, upd domain.DocumentUpdate) error {
	query, args, err := updateQuery(id, upd)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return s.writeFailed("updating document", id, err)
	}
	return s.checkAffected(res, "updating document", id)
}

// Delete permanently removes a document. Unknown IDs are ignored.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return s.writeFailed("deleting document", id, err)
	}

	s.log.Debug("document deleted", zap.Int64("id", id))
	return nil
}

// Find returns documents whose title contains text, ignoring case.
// Wildcards in text match literally. Active documents sort first.
func (s *Store) Find(ctx context.Context, text string) ([]domain.Document, error) {
	query := selectDocuments + " WHERE " + foldFunction + `(title) LIKE ? ESCAPE '\'` +
		" ORDER BY archived ASC, id ASC"

	return s.queryDocuments(ctx, "finding documents", query, textfold.LikePattern(text))
}

// updateQuery builds the UPDATE statement for a partial update.
func updateQuery(id int64, upd domain.DocumentUpdate) (string, []any, error) {
	fields := upd.Fields()
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("%w: update has no fields", domain.ErrInvalidInput)
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, field := range fields {
		switch field {
		case domain.FieldTitle:
			title, _ := upd.Title()
			sets = append(sets, "title = ?")
			args = append(args, title)
		case domain.FieldContent:
			content, _ := upd.Content()
			sets = append(sets, "content = ?")
			args = append(args, textArg(content))
		case domain.FieldArchived:
			archived, _ := upd.Archived()
			sets = append(sets, "archived = ?")
			args = append(args, boolArg(archived))
		default:
			return "", nil, fmt.Errorf("%w: %q", domain.ErrUnknownField, field.String())
		}
	}
	args = append(args, id)

	return "UPDATE documents SET " + strings.Join(sets, ", ") + " WHERE id = ?", args, nil
}

// queryDocuments runs a SELECT over the documents columns.
func (s *Store) queryDocuments(ctx context.Context, op, query string, args ...any) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.queryFailed(op, err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, s.queryFailed(op, err)
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, s.queryFailed(op, err)
	}

	return docs, nil
}

// checkAffected surfaces a driver failure reading the affected row count.
// An UPDATE that matched nothing is only noted at debug level.
func (s *Store) checkAffected(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return s.writeFailed(op, id, err)
	}
	if n == 0 {
		s.log.Debug(op+": no such document, nothing written", zap.Int64("id", id))
	}
	return nil
}

// writeFailed logs a failed write and wraps it in domain.ErrWrite.
// This is the only place write failures are logged.
func (s *Store) writeFailed(op string, id int64, err error) error {
	s.log.Error(op+" failed", zap.Int64("id", id), zap.Error(err))
	return fmt.Errorf("%w: %s: %w", domain.ErrWrite, op, err)
}

// queryFailed logs a failed read and wraps it in domain.ErrQuery.
func (s *Store) queryFailed(op string, err error) error {
	s.log.Error(op+" failed", zap.Error(err))
	return fmt.Errorf("%w: %s: %w", domain.ErrQuery, op, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var content sql.NullString
	var archived int64
	if err := row.Scan(&doc.ID, &doc.Title, &content, &archived); err != nil {
		return nil, err
	}

	if content.Valid {
		doc.Content = &content.String
	}
	doc.Archived = archived != 0
	return &doc, nil
}

// textArg maps an optional string onto a nullable TEXT parameter.
func textArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// boolArg stores booleans as 0/1 like existing files do.
func boolArg(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
