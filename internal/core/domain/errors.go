package domain

import "errors"

// Domain errors represent business logic failures.
// Store adapters wrap infrastructure errors with one of these so callers can
// tell the failure classes apart with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownField indicates a field name outside the updatable set.
	ErrUnknownField = errors.New("unknown document field")

	// Storage Errors.

	// ErrStoreInit indicates the data directory or database could not be
	// created or opened. The store is unusable after this error.
	ErrStoreInit = errors.New("store initialisation failed")

	// ErrWrite indicates an insert, update or delete failed in the database.
	ErrWrite = errors.New("write failed")

	// ErrQuery indicates a read failed in the database.
	// An empty result is never reported as ErrQuery.
	ErrQuery = errors.New("query failed")

	// ErrStoreUnavailable indicates no document store has been configured.
	ErrStoreUnavailable = errors.New("document store unavailable")
)
