package mcp

import (
	"github.com/custodia-labs/norka/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Document manages notes.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
