package types

import (
	"errors"
	"path/filepath"
	"strings"
)

// Config holds backend selection and parameters for Watchlist.Attach.
// An empty DataDir means the current directory.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDataDirInvalid = errors.New("invalid data directory")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Normalize returns a copy with the backend name trimmed and lower-cased and
// DataDir cleaned. An empty DataDir becomes ".".
func (c Config) Normalize() Config {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = "."
	} else {
		c.DataDir = filepath.Clean(c.DataDir)
	}
	return c
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if strings.ContainsRune(c.DataDir, 0) {
		return ErrDataDirInvalid
	}
	return nil
}

// DatabasePath joins DataDir and the backend's file name.
func (c Config) DatabasePath(file string) string {
	return filepath.Join(c.Normalize().DataDir, file)
}
