// Package sqlite provides the SQLite-based implementation of driven.DocumentStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The store owns exactly one table, documents, created with
// CREATE TABLE IF NOT EXISTS on every open. There is no migrations table:
// the file layout is shared with existing Norka installs and is kept as is.
//
// # Data Location
//
// By default, the database is stored at $XDG_DATA_HOME/norka/storage.db
// (~/.local/share/norka/storage.db when XDG_DATA_HOME is unset).
//
// # Concurrency
//
// The store holds a single connection. Each statement runs in autocommit
// mode, so every successful write is committed before the call returns.
// Callers are expected to use the store from one logical owner; SQLite
// serialises access from other processes.
package sqlite
