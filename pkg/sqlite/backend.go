// Package sqlite provides the public API for the SQLite watchlist backend.
// It exposes the factory while keeping implementation details internal.
package sqlite

import (
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/watchlist/internal/sqlite"
	"github.com/mesh-intelligence/watchlist/pkg/types"
)

// DatabaseFile is the SQLite file created inside Config.DataDir.
const DatabaseFile = sqlite.DatabaseFile

// NewBackend creates a new SQLite backend instance that logs through logger.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	wl := sqlite.NewBackend(zerolog.Nop())
//	err := wl.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".watchlist-db",
//	})
//	defer wl.Detach()
func NewBackend(logger zerolog.Logger) types.Watchlist {
	return sqlite.NewBackend(logger)
}
