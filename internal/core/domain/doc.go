// Package domain defines the core business entities for Norka.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A single note with title, optional content and archived flag
//   - DocumentUpdate: A partial update over the fixed set of note fields
//   - Settings: Effective runtime configuration for the store and logger
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
