package driving

import "github.com/custodia-labs/norka/internal/core/domain"

// SettingsOverrides carries values given explicitly on the command line.
// Empty or nil fields do not override anything.
type SettingsOverrides struct {
	DataDir string
	Verbose *bool
}

// SettingsService resolves the effective application settings.
type SettingsService interface {
	// Resolve merges overrides, environment, config file and defaults.
	Resolve(overrides SettingsOverrides) (domain.Settings, error)

	// Set persists a single setting to the config file.
	Set(key string, value string) error
}
