// Package cli implements the norka command line.
//
// The root command is also the composition root: before a command runs it
// resolves settings, configures logging and opens the document store.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/norka/internal/adapters/driven/config/file"
	"github.com/custodia-labs/norka/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/norka/internal/adapters/driven/watch"
	"github.com/custodia-labs/norka/internal/core/domain"
	"github.com/custodia-labs/norka/internal/core/ports/driven"
	"github.com/custodia-labs/norka/internal/core/ports/driving"
	"github.com/custodia-labs/norka/internal/core/services"
	"github.com/custodia-labs/norka/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	dataDir   string
	configDir string
)

// Services used by the commands. They are wired by PersistentPreRunE.
var (
	documentService driving.DocumentService
	settingsService driving.SettingsService
	changeWatcher   driven.ChangeWatcher
	storePath       string
	closers         []func() error
)

// annotationNoStore marks commands that run without opening the database.
const annotationNoStore = "norka/no-store"

// wire builds the services for cmd. Tests replace it to inject fakes.
var wire = wireServices

var rootCmd = &cobra.Command{
	Use:   "norka",
	Short: "Local note keeping",
	Long: `Norka keeps notes in a single SQLite file on your machine.

Notes have a title and optional content and can be archived, restored,
searched by title and deleted. The same store is available as a terminal
UI and as an MCP server for AI assistants.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return wire(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the note database")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory holding config.toml and .env")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases anything it opened.
func Execute() error {
	defer closeAll()
	// cmd.Print* writes to stderr unless an output is set
	rootCmd.SetOut(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func wireServices(cmd *cobra.Command) error {
	cfgStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	envFile := filepath.Join(filepath.Dir(cfgStore.Path()), file.DotEnvFileName)
	if _, err := file.LoadDotEnv(envFile); err != nil {
		return err
	}

	settingsService = services.NewSettingsService(cfgStore, nil)

	overrides := driving.SettingsOverrides{DataDir: dataDir}
	if cmd.Flags().Changed("verbose") {
		overrides.Verbose = &verbose
	}

	settings, err := settingsService.Resolve(overrides)
	if err != nil {
		return err
	}

	logger.SetJSON(settings.LogFormat == domain.LogFormatJSON)
	logger.SetVerbose(settings.Verbose)
	logger.Section("Settings")
	logger.Debug("config file: %s", cfgStore.Path())

	if cmd.Annotations[annotationNoStore] != "" {
		return nil
	}

	logger.Section("Storage")
	store, err := sqlite.NewStore(sqlite.ConfigFromSettings(settings))
	if err != nil {
		return err
	}
	closers = append(closers, store.Close)

	documentService = services.NewDocumentService(store)
	changeWatcher = watch.NewFileWatcher(store.Path())
	storePath = store.Path()
	return nil
}

func closeAll() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warn("close: %v", err)
		}
	}
	closers = nil
}

// skipStore marks cmd as not needing the database.
func skipStore(cmd *cobra.Command) {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationNoStore] = "true"
}

// errServiceNotConfigured is returned when a command runs without a store.
var errServiceNotConfigured = errors.New("document service not configured")
