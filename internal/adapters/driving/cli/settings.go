package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/norka/internal/core/domain"
	"github.com/custodia-labs/norka/internal/core/ports/driving"
	"github.com/custodia-labs/norka/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Environment variables NORKA_DATA_DIR and NORKA_VERBOSE, and the --data-dir
and --verbose flags, take precedence over the file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a setting in config.toml.

Keys:
  ` + strings.Join(services.Keys(), "\n  ") + `

Negative values must follow --, as in: norka settings set -- storage.busy_timeout_ms -1`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	skipStore(settingsCmd)
	skipStore(settingsShowCmd)
	skipStore(settingsSetCmd)

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	overrides := driving.SettingsOverrides{DataDir: dataDir}
	if cmd.Flags().Changed("verbose") {
		overrides.Verbose = &verbose
	}

	settings, err := settingsService.Resolve(overrides)
	if err != nil {
		return fmt.Errorf("failed to resolve settings: %w", err)
	}

	dir := settings.DataDir
	if dir == "" {
		dir = "(platform default)"
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Println("[Storage]")
	cmd.Printf("  Data directory: %s\n", dir)
	cmd.Printf("  File name:      %s\n", settings.FileName)
	cmd.Printf("  Journal mode:   %s\n", settings.JournalMode)
	cmd.Printf("  Busy timeout:   %dms\n", settings.BusyTimeoutMS)
	cmd.Println()
	cmd.Println("[Log]")
	cmd.Printf("  Verbose: %t\n", settings.Verbose)
	cmd.Printf("  Format:  %s\n", settings.LogFormat)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}
