package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPlatform swaps the platform hooks for the duration of a test.
func withPlatform(t *testing.T, home, userConfig, cwd func() (string, error)) {
	t.Helper()
	saved := platformDir
	t.Cleanup(func() { platformDir = saved })
	if home != nil {
		platformDir.homeDir = home
	}
	if userConfig != nil {
		platformDir.userConfigDir = userConfig
	}
	if cwd != nil {
		platformDir.getwd = cwd
	}
}

func fixed(dir string) func() (string, error) {
	return func() (string, error) { return dir, nil }
}

func failing(err error) func() (string, error) {
	return func() (string, error) { return "", err }
}

func TestDefaultConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/watchlist", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		withPlatform(t, fixed("/home/viewer"), nil, nil)

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/viewer/.config/watchlist", got)
	})

	t.Run("home lookup failure", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		boom := errors.New("no home")
		withPlatform(t, failing(boom), nil, nil)

		_, err := DefaultConfigDir()
		assert.ErrorIs(t, err, boom)
	})
}

func TestDefaultConfigDir_Darwin(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("darwin-only test")
	}

	withPlatform(t, nil, fixed("/Users/viewer/Library/Application Support"), nil)
	got, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/Users/viewer/Library/Application Support/watchlist", got)
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{"flag wins over env", "/explicit/config", "/env/config", "/explicit/config"},
		{"env wins when flag empty", "", "/env/config", "/env/config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("platform default when both empty", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, AppName, filepath.Base(got))
	})
}

func TestResolveDataDir(t *testing.T) {
	withPlatform(t, nil, nil, fixed("/work/movies"))

	tests := []struct {
		name        string
		flag        string
		configValue string
		envVal      string
		want        string
	}{
		{"flag wins over all", "/flag/data", "/config/data", "/env/data", "/flag/data"},
		{"config.yaml wins over env", "", "/config/data", "/env/data", "/config/data"},
		{"env wins when flag and config empty", "", "", "/env/data", "/env/data"},
		{"CWD default when all empty", "", "", "", "/work/movies/" + DefaultDataDirName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDir_GetwdFailure(t *testing.T) {
	boom := errors.New("cwd removed")
	withPlatform(t, nil, nil, failing(boom))
	t.Setenv(EnvDataDir, "")

	_, err := ResolveDataDir("", "")
	assert.ErrorIs(t, err, boom)
}

func TestResolve_RelativeBecomesAbsolute(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	t.Run("config flag", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		got, err := ResolveConfigDir("relative/path")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cwd, "relative/path"), got)
	})

	t.Run("config env", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "relative/env")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("data config value", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		got, err := ResolveDataDir("", "relative/config")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cwd, "relative/config"), got)
	})
}
