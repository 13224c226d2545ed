package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/watchlist/pkg/types"
)

// newTestBackend attaches a backend to a fresh temp directory using the real
// clock. The backend is detached on cleanup.
func newTestBackend(t *testing.T) (*Backend, string) {
	t.Helper()
	return newTestBackendAt(t, time.Time{})
}

// newTestBackendAt is newTestBackend with a fixed clock; a zero now keeps
// the real clock.
func newTestBackendAt(t *testing.T, now time.Time) (*Backend, string) {
	t.Helper()

	dataDir := t.TempDir()
	b := NewBackend(zerolog.Nop())
	if !now.IsZero() {
		b.now = func() time.Time { return now }
	}
	require.NoError(t, b.Attach(sqliteConfig(dataDir)))
	t.Cleanup(func() { b.Detach() })
	return b, dataDir
}

func sqliteConfig(dataDir string) types.Config {
	return types.Config{Backend: types.BackendSQLite, DataDir: dataDir}
}

func TestBackend_Attach(t *testing.T) {
	b, dataDir := newTestBackend(t)

	_, err := os.Stat(filepath.Join(dataDir, DatabaseFile))
	assert.NoError(t, err, "watchlist.db should be created")
	assert.Equal(t, dataDir, b.DataDir())

	err = b.Attach(sqliteConfig(dataDir))
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")

	b := NewBackend(zerolog.Nop())
	require.NoError(t, b.Attach(sqliteConfig(dataDir)))
	defer b.Detach()

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBackend_AttachFailures(t *testing.T) {
	tests := []struct {
		name    string
		config  func(t *testing.T) types.Config
		wantErr error
	}{
		{
			name: "empty backend",
			config: func(t *testing.T) types.Config {
				return types.Config{DataDir: t.TempDir()}
			},
			wantErr: types.ErrBackendEmpty,
		},
		{
			name: "unknown backend",
			config: func(t *testing.T) types.Config {
				return types.Config{Backend: "postgres", DataDir: t.TempDir()}
			},
			wantErr: types.ErrBackendUnknown,
		},
		{
			name: "data dir is a regular file",
			config: func(t *testing.T) types.Config {
				path := filepath.Join(t.TempDir(), "file")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
				return sqliteConfig(path)
			},
		},
		{
			name: "database path is a directory",
			config: func(t *testing.T) types.Config {
				dir := t.TempDir()
				require.NoError(t, os.Mkdir(filepath.Join(dir, DatabaseFile), 0o755))
				return sqliteConfig(dir)
			},
		},
		{
			name: "database file is not sqlite",
			config: func(t *testing.T) types.Config {
				dir := t.TempDir()
				garbage := make([]byte, 4096)
				for i := range garbage {
					garbage[i] = 'x'
				}
				require.NoError(t, os.WriteFile(filepath.Join(dir, DatabaseFile), garbage, 0o644))
				return sqliteConfig(dir)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend(zerolog.Nop())
			err := b.Attach(tt.config(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInitialization)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			// A failed attach leaves the backend detached.
			_, err = b.List()
			assert.ErrorIs(t, err, types.ErrDetached)
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend(zerolog.Nop())
	require.NoError(t, b.Attach(sqliteConfig(t.TempDir())))

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second Detach should not error")
	assert.Empty(t, b.DataDir())

	_, err := b.List()
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.ErrorIs(t, err, types.ErrStorageRead)

	_, err = b.Get(1)
	assert.ErrorIs(t, err, types.ErrStorageRead)

	_, err = b.Insert(types.MovieInput{Title: "Heat"})
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.ErrorIs(t, err, types.ErrStorageWrite)

	assert.ErrorIs(t, b.Update(1, types.MovieInput{Title: "Heat"}), types.ErrStorageWrite)
	_, err = b.ToggleWatched(1)
	assert.ErrorIs(t, err, types.ErrStorageWrite)
	assert.ErrorIs(t, b.Delete(1), types.ErrStorageWrite)
	assert.ErrorIs(t, b.Initialize(), types.ErrInitialization)
}

func TestBackend_InitializeIsIdempotent(t *testing.T) {
	b, _ := newTestBackend(t)

	require.NoError(t, b.Initialize())
	require.NoError(t, b.Initialize())

	movies, err := b.List()
	require.NoError(t, err)
	assert.Len(t, movies, len(sampleMovies), "seed must not be duplicated")
}

func TestBackend_ReattachKeepsRecords(t *testing.T) {
	dataDir := t.TempDir()

	first := NewBackend(zerolog.Nop())
	require.NoError(t, first.Attach(sqliteConfig(dataDir)))
	added, err := first.Insert(types.MovieInput{Title: "Heat", Year: types.IntPtr(1995)})
	require.NoError(t, err)
	require.NoError(t, first.Detach())

	second := NewBackend(zerolog.Nop())
	require.NoError(t, second.Attach(sqliteConfig(dataDir)))
	defer second.Detach()

	movies, err := second.List()
	require.NoError(t, err)
	assert.Len(t, movies, len(sampleMovies)+1)

	got, err := second.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, *added, *got)
}

func TestBackend_AttachNormalizesConfig(t *testing.T) {
	dataDir := t.TempDir()

	b := NewBackend(zerolog.Nop())
	require.NoError(t, b.Attach(types.Config{Backend: " SQLite ", DataDir: dataDir + "/./"}))
	defer b.Detach()

	assert.Equal(t, dataDir, b.DataDir())
	_, err := os.Stat(filepath.Join(dataDir, DatabaseFile))
	assert.NoError(t, err)
}
