// Package schema embeds the SQL schema for the SQLite store.
package schema

import _ "embed"

// Documents creates the documents table if it does not exist.
// The statement is idempotent and matches the on-disk format used by
// existing Norka storage files, so it must not change.
//
//go:embed documents.sql
var Documents string
