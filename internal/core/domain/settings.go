package domain

import "strings"

// DefaultFileName is the database file name inside the data directory.
const DefaultFileName = "storage.db"

// DefaultBusyTimeoutMS is how long SQLite waits on a locked database.
const DefaultBusyTimeoutMS = 5000

// JournalMode is the SQLite journal mode applied when opening the store.
type JournalMode string

// Supported journal modes. JournalModeDefault leaves the file untouched.
const (
	JournalModeDefault  JournalMode = ""
	JournalModeDelete   JournalMode = "delete"
	JournalModeTruncate JournalMode = "truncate"
	JournalModePersist  JournalMode = "persist"
	JournalModeWAL      JournalMode = "wal"
)

// ParseJournalMode normalises a configured journal mode.
func ParseJournalMode(s string) (JournalMode, bool) {
	m := JournalMode(strings.ToLower(strings.TrimSpace(s)))
	return m, m.IsValid()
}

// IsValid returns true if the journal mode is recognised.
func (m JournalMode) IsValid() bool {
	switch m {
	case JournalModeDefault, JournalModeDelete, JournalModeTruncate, JournalModePersist, JournalModeWAL:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m JournalMode) String() string {
	if m == JournalModeDefault {
		return "default"
	}
	return string(m)
}

// LogFormat selects the log encoder.
type LogFormat string

// Available log formats.
const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// IsValid returns true if the log format is recognised.
func (f LogFormat) IsValid() bool {
	return f == LogFormatConsole || f == LogFormatJSON
}

// Settings is the effective configuration after flags, environment and the
// config file have been merged.
type Settings struct {
	// DataDir is the base directory holding the database file.
	DataDir string

	// FileName is the database file name inside DataDir.
	FileName string

	// JournalMode is applied on open unless it is JournalModeDefault.
	JournalMode JournalMode

	// BusyTimeoutMS is the SQLite busy timeout in milliseconds.
	BusyTimeoutMS int

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat selects console or JSON log output.
	LogFormat LogFormat
}

// DefaultSettings returns settings with defaults applied.
// DataDir is left empty; it is resolved per platform.
func DefaultSettings() Settings {
	return Settings{
		FileName:      DefaultFileName,
		JournalMode:   JournalModeDefault,
		BusyTimeoutMS: DefaultBusyTimeoutMS,
		LogFormat:     LogFormatConsole,
	}
}
