// Package sqlite implements the SQLite storage backend for the watchlist.
// The movies table in DataDir/watchlist.db is the source of truth; JSON Lines
// files are only produced and consumed by Export and Import.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/watchlist/pkg/types"
)

// DatabaseFile is the SQLite file name created inside DataDir.
const DatabaseFile = "watchlist.db"

// Compile-time interface check: Backend must implement Watchlist.
var _ types.Watchlist = (*Backend)(nil)

// Backend implements the Watchlist interface using SQLite. Reads hold the
// read lock and writes hold the write lock for the whole transaction, so no
// reader observes a partially written record.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   zerolog.Logger

	// now is the clock used for created_at stamps and the year bound.
	now func() time.Time
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(logger zerolog.Logger) *Backend {
	return &Backend{
		logger: logger.With().Str("component", "store").Logger(),
		now:    time.Now,
	}
}

// Attach opens DataDir/watchlist.db, creating the directory and the file if
// needed, then runs Initialize. The database is never recreated: existing
// records survive across processes.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	config = config.Normalize()
	if err := config.Validate(); err != nil {
		return initErr("validate config", err)
	}

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return initErr("create data dir", err)
	}

	dbPath := config.DatabasePath(DatabaseFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return initErr("open database", err)
	}
	// A single connection serializes statements at the driver level and
	// keeps per-connection pragmas in effect.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return initErr("open database", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return initErr("configure database", err)
	}

	b.db = db
	if err := b.initializeLocked(); err != nil {
		db.Close()
		b.db = nil
		b.logger.Error().Err(err).Str("path", dbPath).Msg("initialization failed")
		return err
	}

	b.config = config
	b.attached = true

	b.logger.Debug().Str("path", dbPath).Msg("attached")
	return nil
}

// Detach releases all resources held by the backend. After Detach, all
// operations fail with ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.logger.Debug().Msg("detached")
	return nil
}

// Initialize creates the schema if absent and seeds the sample movies when
// the table is empty. It is safe to call on every start.
func (b *Backend) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return initErr("initialize", types.ErrDetached)
	}
	return b.initializeLocked()
}

// initializeLocked runs the schema and seed steps. The caller must hold the
// write lock and b.db must be open.
func (b *Backend) initializeLocked() error {
	for _, ddl := range schemaDDL {
		if _, err := b.db.Exec(ddl); err != nil {
			return initErr("create schema", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := b.db.Exec(ddl); err != nil {
			return initErr("create index", err)
		}
	}

	seeded, err := seedSampleMovies(b.db, b.now())
	if err != nil {
		return initErr("seed sample movies", err)
	}
	if seeded > 0 {
		b.logger.Info().Int("count", seeded).Msg("seeded sample movies")
	}
	return nil
}

// DataDir returns the directory holding the database file. Empty when
// detached.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return ""
	}
	return b.config.DataDir
}

func initErr(op string, err error) error {
	return &types.StorageError{Kind: types.ErrInitialization, Op: op, Err: err}
}

func readErr(op string, err error) error {
	return &types.StorageError{Kind: types.ErrStorageRead, Op: op, Err: err}
}

func writeErr(op string, err error) error {
	return &types.StorageError{Kind: types.ErrStorageWrite, Op: op, Err: err}
}

// notFound wraps ErrNotFound with the movie ID.
func notFound(id int64) error {
	return fmt.Errorf("movie %d: %w", id, types.ErrNotFound)
}
