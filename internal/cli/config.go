// Config loading for the watchlist CLI.

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/validate"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/watchlist/internal/logging"
	"github.com/mesh-intelligence/watchlist/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyLogLevel = "log_level"

	envLogLevel = "WATCHLIST_LOG_LEVEL"
)

// errInvalidConfig is returned when config.yaml decodes but fails validation.
var errInvalidConfig = errors.New("invalid config")

// configHeader is prepended to the generated config.yaml.
const configHeader = `# Watchlist CLI configuration.
# data_dir is optional; --data-dir and WATCHLIST_DATA_DIR override it.
`

// settings is the decoded content of config.yaml.
type settings struct {
	Backend  string `mapstructure:"backend" yaml:"backend" validate:"required|in:sqlite"`
	DataDir  string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level" validate:"in:trace,debug,info,warn,error,fatal,panic,disabled"`
}

// defaultSettings are written on first run.
func defaultSettings() settings {
	return settings{
		Backend:  types.BackendSQLite,
		LogLevel: logging.DefaultLevel,
	}
}

// loadSettings reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. WATCHLIST_LOG_LEVEL
// overrides log_level.
func loadSettings(configDir string) (settings, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return settings{}, sysErr(fmt.Errorf("create config dir: %w", err))
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt)); err != nil {
		return settings{}, sysErr(fmt.Errorf("write default config: %w", err))
	}

	def := defaultSettings()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.BindEnv(cfgKeyLogLevel, envLogLevel); err != nil {
		return settings{}, fmt.Errorf("bind %s: %w", envLogLevel, err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	s.Backend = strings.TrimSpace(s.Backend)
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))

	if err := validateSettings(&s); err != nil {
		return settings{}, err
	}
	return s, nil
}

// validateSettings checks the decoded settings against their struct tags.
func validateSettings(s *settings) error {
	v := validate.Struct(s)
	if !v.Validate() {
		return fmt.Errorf("%w: %s: %s", errInvalidConfig, configFileExt, v.Errors.One())
	}
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. An existing file is left alone.
func writeConfigIfMissing(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	def := defaultSettings()
	data, err := yaml.Marshal(&def)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}
