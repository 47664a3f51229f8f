package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/norka/internal/adapters/driving/tui"
	"github.com/custodia-labs/norka/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Browse, find, archive and delete notes in a terminal UI.

The list refreshes by itself when the note database changes, including
changes made by another norka process.

Controls:
  ↑/k, ↓/j - Navigate notes
  Enter    - Open note
  /        - Find by title
  Tab      - Show or hide archived notes
  a        - Archive or restore
  d        - Delete
  Esc      - Back
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in TUI: %v\n%s", r, debug.Stack())
		}
	}()

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	app, err := tui.NewApp(&tui.Ports{
		Document: documentService,
		Watcher:  changeWatcher,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app.WithContext(cmd.Context()), nil
}
