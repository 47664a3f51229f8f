package tui

import "errors"

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("tui: document service is required")

// ErrInvalidPorts is returned when the ports aggregate itself is missing.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
