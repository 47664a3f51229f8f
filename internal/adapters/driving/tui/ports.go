// Package tui provides an interactive terminal user interface for browsing notes.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/norka/internal/core/ports/driven"
	"github.com/custodia-labs/norka/internal/core/ports/driving"
)

// Ports aggregates the interfaces required by the TUI.
type Ports struct {
	// Document manages notes.
	Document driving.DocumentService

	// Watcher reports changes to the backing file. Optional; without it the
	// listing only refreshes after the TUI's own changes or a manual reload.
	Watcher driven.ChangeWatcher
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
