// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration in config.toml
//   - LoadDotEnv: optional .env file feeding the process environment
package file
