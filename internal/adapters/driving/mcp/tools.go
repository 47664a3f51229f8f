package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/norka/internal/core/domain"
)

// NoteOutput is a single note as returned by the tools.
type NoteOutput struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Content  *string `json:"content,omitempty"`
	Archived bool    `json:"archived"`
}

// NotesOutput is a list of notes.
type NotesOutput struct {
	Notes []NoteOutput `json:"notes"`
	Count int          `json:"count"`
}

// ListNotesInput is the input schema for list_notes.
type ListNotesInput struct {
	IncludeArchived bool `json:"include_archived,omitempty" jsonschema:"also return archived notes"`
}

// NoteIDInput identifies a single note.
type NoteIDInput struct {
	ID int64 `json:"id" jsonschema:"the note id"`
}

// FindNotesInput is the input schema for find_notes.
type FindNotesInput struct {
	Text string `json:"text" jsonschema:"text to look for in note titles, case-insensitive"`
}

// CreateNoteInput is the input schema for create_note.
type CreateNoteInput struct {
	Title   string  `json:"title" jsonschema:"the note title"`
	Content *string `json:"content,omitempty" jsonschema:"the note body"`
}

// UpdateNoteInput is the input schema for update_note.
// Only the fields that are present are changed.
type UpdateNoteInput struct {
	ID           int64   `json:"id" jsonschema:"the note id"`
	Title        *string `json:"title,omitempty" jsonschema:"new title"`
	Content      *string `json:"content,omitempty" jsonschema:"new body"`
	ClearContent bool    `json:"clear_content,omitempty" jsonschema:"remove the body entirely"`
	Archived     *bool   `json:"archived,omitempty" jsonschema:"archive (true) or restore (false) the note"`
}

// DeleteNoteOutput confirms a deletion.
type DeleteNoteOutput struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_notes",
		Description: "List notes in creation order",
	}, s.handleListNotes)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_note",
		Description: "Get a note with its content",
	}, s.handleGetNote)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_notes",
		Description: "Find notes whose title contains the given text; archived notes are listed last",
	}, s.handleFindNotes)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_note",
		Description: "Create a new note",
	}, s.handleCreateNote)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_note",
		Description: "Change the title, content or archived flag of a note",
	}, s.handleUpdateNote)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_note",
		Description: "Permanently delete a note",
	}, s.handleDeleteNote)
}

func (s *Server) handleListNotes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListNotesInput,
) (*mcp.CallToolResult, NotesOutput, error) {
	docs, err := s.ports.Document.List(ctx, input.IncludeArchived)
	if err != nil {
		return nil, NotesOutput{}, err
	}
	return nil, toNotesOutput(docs), nil
}

func (s *Server) handleGetNote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NoteIDInput,
) (*mcp.CallToolResult, NoteOutput, error) {
	doc, err := s.ports.Document.Get(ctx, input.ID)
	if err != nil {
		return nil, NoteOutput{}, err
	}
	return nil, toNoteOutput(*doc), nil
}

func (s *Server) handleFindNotes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindNotesInput,
) (*mcp.CallToolResult, NotesOutput, error) {
	docs, err := s.ports.Document.Find(ctx, input.Text)
	if err != nil {
		return nil, NotesOutput{}, err
	}
	return nil, toNotesOutput(docs), nil
}

func (s *Server) handleCreateNote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateNoteInput,
) (*mcp.CallToolResult, NoteOutput, error) {
	doc, err := s.ports.Document.Create(ctx, input.Title, input.Content)
	if err != nil {
		return nil, NoteOutput{}, err
	}
	return nil, toNoteOutput(*doc), nil
}

func (s *Server) handleUpdateNote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateNoteInput,
) (*mcp.CallToolResult, NoteOutput, error) {
	upd, err := buildUpdate(input)
	if err != nil {
		return nil, NoteOutput{}, err
	}

	if err := s.ports.Document.Update(ctx, input.ID, upd); err != nil {
		return nil, NoteOutput{}, err
	}

	doc, err := s.ports.Document.Get(ctx, input.ID)
	if err != nil {
		return nil, NoteOutput{}, err
	}
	return nil, toNoteOutput(*doc), nil
}

func (s *Server) handleDeleteNote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NoteIDInput,
) (*mcp.CallToolResult, DeleteNoteOutput, error) {
	if err := s.ports.Document.Delete(ctx, input.ID); err != nil {
		return nil, DeleteNoteOutput{}, err
	}
	return nil, DeleteNoteOutput{ID: input.ID, Deleted: true}, nil
}

// buildUpdate maps tool input onto a partial update.
func buildUpdate(input UpdateNoteInput) (domain.DocumentUpdate, error) {
	var upd domain.DocumentUpdate

	if input.ClearContent && input.Content != nil {
		return upd, fmt.Errorf("%w: content and clear_content are mutually exclusive", domain.ErrInvalidInput)
	}

	if input.Title != nil {
		upd = upd.WithTitle(*input.Title)
	}
	if input.Content != nil {
		upd = upd.WithContent(input.Content)
	}
	if input.ClearContent {
		upd = upd.WithContent(nil)
	}
	if input.Archived != nil {
		upd = upd.WithArchived(*input.Archived)
	}

	if upd.IsEmpty() {
		return upd, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	return upd, nil
}

func toNoteOutput(doc domain.Document) NoteOutput {
	return NoteOutput{
		ID:       doc.ID,
		Title:    doc.Title,
		Content:  doc.Content,
		Archived: doc.Archived,
	}
}

func toNotesOutput(docs []domain.Document) NotesOutput {
	out := NotesOutput{
		Notes: make([]NoteOutput, len(docs)),
		Count: len(docs),
	}
	for i := range docs {
		out.Notes[i] = toNoteOutput(docs[i])
	}
	return out
}
