package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/norka/internal/adapters/driven/datadir"
	"github.com/custodia-labs/norka/internal/adapters/driven/storage/sqlite/schema"
	"github.com/custodia-labs/norka/internal/core/domain"
	"github.com/custodia-labs/norka/internal/core/ports/driven"
	"github.com/custodia-labs/norka/internal/logger"
)

// Config describes where the store lives and how the connection is tuned.
type Config struct {
	// DataDir is the base directory. If empty, the platform data
	// directory is used (see package datadir).
	DataDir string

	// FileName is the database file inside DataDir. Defaults to storage.db.
	FileName string

	// JournalMode is applied on open unless it is the default.
	JournalMode domain.JournalMode

	// BusyTimeoutMS is the SQLite busy timeout. Zero uses the default.
	BusyTimeoutMS int
}

// ConfigFromSettings builds a store config from resolved settings.
func ConfigFromSettings(s domain.Settings) Config {
	return Config{
		DataDir:       s.DataDir,
		FileName:      s.FileName,
		JournalMode:   s.JournalMode,
		BusyTimeoutMS: s.BusyTimeoutMS,
	}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger that receives setup messages and failures.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Store is the SQLite-backed document store.
type Store struct {
	db   *sql.DB
	path string
	log  *zap.Logger
}

var _ driven.DocumentStore = (*Store)(nil)

// NewStore creates the data directory if needed, opens or creates the
// database file and ensures the schema exists.
// Any failure is wrapped in domain.ErrStoreInit; there is no fallback.
func NewStore(cfg Config, opts ...Option) (*Store, error) {
	s := &Store{log: logger.Named("storage")}
	for _, opt := range opts {
		opt(s)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dir, err := datadir.Resolve(datadir.AppName)
		if err != nil {
			s.log.Error("resolving data directory failed", zap.Error(err))
			return nil, fmt.Errorf("%w: resolving data directory: %w", domain.ErrStoreInit, err)
		}
		dataDir = dir
	}

	created, err := ensureDir(dataDir)
	if err != nil {
		s.log.Error("creating storage folder failed", zap.String("path", dataDir), zap.Error(err))
		return nil, fmt.Errorf("%w: creating data directory: %w", domain.ErrStoreInit, err)
	}
	if created {
		s.log.Info("storage folder created", zap.String("path", dataDir))
	}

	fileName := cfg.FileName
	if fileName == "" {
		fileName = domain.DefaultFileName
	}
	s.path = filepath.Join(dataDir, fileName)
	s.log.Debug("storage located", zap.String("path", s.path))

	if err := registerFunctions(); err != nil {
		return nil, fmt.Errorf("%w: registering functions: %w", domain.ErrStoreInit, err)
	}

	db, err := sql.Open("sqlite", s.path+dsnParams(cfg))
	if err != nil {
		s.log.Error("opening database failed", zap.String("path", s.path), zap.Error(err))
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrStoreInit, err)
	}

	// One connection: statements are serialised and pragmas stick.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := s.init(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// init verifies the connection and creates the schema.
func (s *Store) init(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		s.log.Error("opening database failed", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("%w: opening database: %w", domain.ErrStoreInit, err)
	}

	if _, err := db.ExecContext(ctx, schema.Documents); err != nil {
		s.log.Error("creating schema failed", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("%w: creating schema: %w", domain.ErrStoreInit, err)
	}

	s.db = db
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ensureDir creates dir if it is missing and reports whether it did.
func ensureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s is not a directory", dir)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return false, err
	}
	return true, nil
}

// dsnParams builds the connection pragmas.
// synchronous(FULL) makes every autocommit write durable before it returns.
func dsnParams(cfg Config) string {
	timeout := cfg.BusyTimeoutMS
	if timeout <= 0 {
		timeout = domain.DefaultBusyTimeoutMS
	}

	params := []string{
		fmt.Sprintf("_pragma=busy_timeout(%d)", timeout),
		"_pragma=synchronous(FULL)",
	}
	if cfg.JournalMode != domain.JournalModeDefault && cfg.JournalMode.IsValid() {
		params = append(params, fmt.Sprintf("_pragma=journal_mode(%s)", strings.ToUpper(string(cfg.JournalMode))))
	}

	return "?" + strings.Join(params, "&")
}
