package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Field identifies one of the updatable document columns.
type Field string

// Updatable fields. This set is closed; IDs are never updatable.
const (
	FieldTitle    Field = "title"
	FieldContent  Field = "content"
	FieldArchived Field = "archived"
)

// Fields returns every updatable field in column order.
func Fields() []Field {
	return []Field{FieldTitle, FieldContent, FieldArchived}
}

// IsValid returns true if the field is updatable.
func (f Field) IsValid() bool {
	switch f {
	case FieldTitle, FieldContent, FieldArchived:
		return true
	default:
		return false
	}
}

// String returns the column name.
func (f Field) String() string {
	return string(f)
}

// ParseField maps a user supplied field name onto a Field.
// Matching ignores case and surrounding whitespace.
func ParseField(name string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// DocumentUpdate is a partial update of a document.
// Only fields that were set are written; the zero value updates nothing.
// Builder methods return a copy, so a base update can be shared safely.
type DocumentUpdate struct {
	title      *string
	content    *string
	contentSet bool
	archived   *bool
}

// WithTitle sets the title.
func (u DocumentUpdate) WithTitle(title string) DocumentUpdate {
	u.title = &title
	return u
}

// WithContent sets the content. A nil content clears the column.
func (u DocumentUpdate) WithContent(content *string) DocumentUpdate {
	if content != nil {
		c := *content
		content = &c
	}
	u.content = content
	u.contentSet = true
	return u
}

// WithArchived sets the archived flag.
func (u DocumentUpdate) WithArchived(archived bool) DocumentUpdate {
	u.archived = &archived
	return u
}

// Set parses a raw string value for the given field.
// Archived accepts anything strconv.ParseBool does.
func (u DocumentUpdate) Set(field Field, raw string) (DocumentUpdate, error) {
	switch field {
	case FieldTitle:
		return u.WithTitle(raw), nil
	case FieldContent:
		return u.WithContent(&raw), nil
	case FieldArchived:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return u, fmt.Errorf("%w: archived must be a boolean, got %q", ErrInvalidInput, raw)
		}
		return u.WithArchived(b), nil
	default:
		return u, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
}

// Title returns the new title and whether it was set.
func (u DocumentUpdate) Title() (string, bool) {
	if u.title == nil {
		return "", false
	}
	return *u.title, true
}

// Content returns the new content and whether it was set.
func (u DocumentUpdate) Content() (*string, bool) {
	return u.content, u.contentSet
}

// Archived returns the new archived flag and whether it was set.
func (u DocumentUpdate) Archived() (bool, bool) {
	if u.archived == nil {
		return false, false
	}
	return *u.archived, true
}

// Fields returns the fields this update writes, in column order.
func (u DocumentUpdate) Fields() []Field {
	var fields []Field
	if u.title != nil {
		fields = append(fields, FieldTitle)
	}
	if u.contentSet {
		fields = append(fields, FieldContent)
	}
	if u.archived != nil {
		fields = append(fields, FieldArchived)
	}
	return fields
}

// IsEmpty returns true if the update writes nothing.
func (u DocumentUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}

// Apply returns doc with the update's fields written over it.
func (u DocumentUpdate) Apply(doc Document) Document {
	if title, ok := u.Title(); ok {
		doc.Title = title
	}
	if content, ok := u.Content(); ok {
		doc.Content = content
	}
	if archived, ok := u.Archived(); ok {
		doc.Archived = archived
	}
	return doc
}
