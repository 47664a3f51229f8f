package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/norka/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Norka resources.
	uriScheme = "norka://"

	notesURI = uriScheme + "notes"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         notesURI,
		Name:        "notes",
		Description: "All notes, including archived ones, without content",
		MIMEType:    "application/json",
	}, s.handleNotesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: notesURI + "/{id}",
		Name:        "note",
		Description: "Title and content of a single note",
		MIMEType:    "text/plain",
	}, s.handleNoteResource)
}

// noteInfo is the per-note entry of the notes resource.
type noteInfo struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Archived bool   `json:"archived"`
	URI      string `json:"uri"`
}

// handleNotesResource returns every note without content.
func (s *Server) handleNotesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.ports.Document.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	infos := make([]noteInfo, len(docs))
	for i := range docs {
		infos[i] = noteInfo{
			ID:       docs[i].ID,
			Title:    docs[i].Title,
			Archived: docs[i].Archived,
			URI:      noteURI(docs[i].ID),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling notes: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleNoteResource returns a single note as text.
func (s *Server) handleNoteResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractNoteID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Document.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting note: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     renderNote(*doc),
		}},
	}, nil
}

// renderNote formats a note as its title, a blank line and the content.
func renderNote(doc domain.Document) string {
	var b strings.Builder
	b.WriteString(doc.Title)
	if doc.Archived {
		b.WriteString(" (archived)")
	}
	b.WriteString("\n")
	if doc.HasContent() {
		b.WriteString("\n")
		b.WriteString(doc.Text())
	}
	return b.String()
}

func noteURI(id int64) string {
	return notesURI + "/" + strconv.FormatInt(id, 10)
}

// extractNoteID extracts the note ID from a URI like norka://notes/{id}.
func extractNoteID(uri string) (int64, bool) {
	const prefix = notesURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
