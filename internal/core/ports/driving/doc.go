// Package driving defines the interfaces the CLI, TUI and MCP server use to
// reach core services. They are the "driving" ports of the hexagon.
//
// Implementations live in internal/core/services.
package driving
