// Command norka keeps notes in a local SQLite file.
package main

import (
	"os"

	"github.com/custodia-labs/norka/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
