package domain

// Document represents a single note.
// Values handed out by stores are snapshots; changes must be written back
// through the store to be persisted.
type Document struct {
	// ID is assigned by the store on creation and never changes.
	// Stores ignore any ID set by the caller on Create.
	ID int64

	// Title is required. It may be empty but is never NULL.
	Title string

	// Content is the note body. Nil means the note has no content at all,
	// which is distinct from an empty body.
	Content *string

	// Archived hides the note from default listings and counts.
	Archived bool
}

// NewDocument creates an unsaved, active document with the given title and content.
func NewDocument(title, content string) Document {
	return Document{
		Title:   title,
		Content: &content,
	}
}

// Text returns the content, or an empty string when the document has none.
func (d Document) Text() string {
	if d.Content == nil {
		return ""
	}
	return *d.Content
}

// HasContent reports whether the content column is set (possibly to an empty string).
func (d Document) HasContent() bool {
	return d.Content != nil
}

// State returns the lifecycle state of a stored document.
func (d Document) State() DocumentState {
	if d.Archived {
		return StateArchived
	}
	return StateActive
}

// DocumentState is the visible lifecycle state of a document.
// Deleted documents have no state; they no longer exist.
type DocumentState string

// Document states.
const (
	StateActive   DocumentState = "active"
	StateArchived DocumentState = "archived"
)

// String returns the string representation.
func (s DocumentState) String() string {
	return string(s)
}

// StringPtr returns a pointer to s. Handy for building Content values.
func StringPtr(s string) *string {
	return &s
}
