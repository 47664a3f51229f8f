package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/norka/internal/core/domain"
	"github.com/custodia-labs/norka/internal/core/ports/driven"
	"github.com/custodia-labs/norka/internal/core/ports/driving"
	"github.com/custodia-labs/norka/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyDataDir       = "storage.data_dir"
	KeyFileName      = "storage.file_name"
	KeyJournalMode   = "storage.journal_mode"
	KeyBusyTimeoutMS = "storage.busy_timeout_ms"
	KeyVerbose       = "log.verbose"
	KeyLogFormat     = "log.format"
)

// Environment variables that override the config file.
const (
	EnvDataDir = "NORKA_DATA_DIR"
	EnvVerbose = "NORKA_VERBOSE"
)

// Keys returns every settable config key.
func Keys() []string {
	return []string{KeyDataDir, KeyFileName, KeyJournalMode, KeyBusyTimeoutMS, KeyVerbose, KeyLogFormat}
}

// LookupEnv reads an environment variable.
type LookupEnv func(key string) (string, bool)

// SettingsService resolves settings from flags, environment and config.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   LookupEnv
}

// NewSettingsService creates a new settings service.
// A nil lookupEnv reads the process environment.
func NewSettingsService(configStore driven.ConfigStore, lookupEnv LookupEnv) *SettingsService {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   lookupEnv,
	}
}

// Resolve returns the effective settings.
// Precedence is overrides, then environment, then config file, then defaults.
// Unrecognised config values fall back to defaults with a warning; a
// malformed environment value is an error.
func (s *SettingsService) Resolve(overrides driving.SettingsOverrides) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if s.configStore != nil {
		s.applyConfig(&settings)
	}

	if dir, ok := s.lookupEnv(EnvDataDir); ok && strings.TrimSpace(dir) != "" {
		settings.DataDir = strings.TrimSpace(dir)
	}
	if raw, ok := s.lookupEnv(EnvVerbose); ok && strings.TrimSpace(raw) != "" {
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return settings, fmt.Errorf("%w: %s must be a boolean, got %q", domain.ErrInvalidInput, EnvVerbose, raw)
		}
		settings.Verbose = v
	}

	if overrides.DataDir != "" {
		settings.DataDir = overrides.DataDir
	}
	if overrides.Verbose != nil {
		settings.Verbose = *overrides.Verbose
	}

	return settings, nil
}

func (s *SettingsService) applyConfig(settings *domain.Settings) {
	if dir := s.configStore.GetString(KeyDataDir); dir != "" {
		settings.DataDir = dir
	}
	if name := s.configStore.GetString(KeyFileName); name != "" {
		settings.FileName = name
	}
	if raw := s.configStore.GetString(KeyJournalMode); raw != "" {
		if mode, ok := domain.ParseJournalMode(raw); ok {
			settings.JournalMode = mode
		} else {
			logger.Warn("ignoring unknown %s %q", KeyJournalMode, raw)
		}
	}
	if ms := s.configStore.GetInt(KeyBusyTimeoutMS); ms > 0 {
		settings.BusyTimeoutMS = ms
	}
	settings.Verbose = s.configStore.GetBool(KeyVerbose)
	if raw := s.configStore.GetString(KeyLogFormat); raw != "" {
		if format := domain.LogFormat(strings.ToLower(raw)); format.IsValid() {
			settings.LogFormat = format
		} else {
			logger.Warn("ignoring unknown %s %q", KeyLogFormat, raw)
		}
	}
}

// Set validates value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return fmt.Errorf("%w: no config store", domain.ErrInvalidInput)
	}

	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// parseSetting converts a raw string into the type stored for key.
func parseSetting(key, value string) (any, error) {
	value = strings.TrimSpace(value)

	switch key {
	case KeyDataDir, KeyFileName:
		return value, nil
	case KeyJournalMode:
		mode, ok := domain.ParseJournalMode(value)
		if !ok {
			return nil, fmt.Errorf("%w: unknown journal mode %q", domain.ErrInvalidInput, value)
		}
		return string(mode), nil
	case KeyBusyTimeoutMS:
		ms, err := strconv.Atoi(value)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return ms, nil
	case KeyVerbose:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a boolean", domain.ErrInvalidInput, key)
		}
		return v, nil
	case KeyLogFormat:
		format := domain.LogFormat(strings.ToLower(value))
		if !format.IsValid() {
			return nil, fmt.Errorf("%w: unknown log format %q", domain.ErrInvalidInput, value)
		}
		return string(format), nil
	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}
