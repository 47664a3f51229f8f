// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Note persistence (SQLite, or in-memory for tests)
//   - ConfigStore: Application configuration (TOML file)
//
// # Optional Interfaces
//
//   - ChangeWatcher: Notifies when the database file changes on disk.
//     Without it, views only refresh after their own writes.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
