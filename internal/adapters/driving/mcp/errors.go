// Package mcp provides an MCP (Model Context Protocol) server adapter for Norka.
// It lets AI assistants read, search and edit notes in the local store.
package mcp

import "errors"

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")
