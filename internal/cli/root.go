// Package cli implements the watchlist command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/watchlist/internal/logging"
	"github.com/mesh-intelligence/watchlist/internal/paths"
	"github.com/mesh-intelligence/watchlist/pkg/types"
	"github.com/mesh-intelligence/watchlist/pkg/watchlist"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	flags     rootFlags
	configDir string
	settings  settings
	logger    zerolog.Logger
}

// NewRootCmd creates the top-level "watchlist" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:     "watchlist",
		Short:   "A personal movie watchlist",
		Long:    "Watchlist keeps track of movies you want to see, the ones you have\nseen, and how you rated them. Records live in a local SQLite file.",
		Version: watchlist.Version,
		// Errors are printed once by Execute.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/watchlist)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level (default from config.yaml, then "+logging.DefaultLevel+")")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newToggleCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)

	return root
}

// setup resolves the config directory, loads config.yaml, and builds the
// logger. The version command needs none of it.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}

	s, err := loadSettings(configDir)
	if err != nil {
		return err
	}

	level := a.flags.logLevel
	if level == "" {
		level = s.LogLevel
	}
	logger, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.configDir = configDir
	a.settings = s
	a.logger = logger
	return nil
}

// Execute runs the root command against os.Args, prints any error to
// stderr, and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return exitCode(err)
}

// systemError marks failures of the environment rather than of user input.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }

func (e *systemError) Unwrap() error { return e.err }

func sysErr(err error) error {
	return &systemError{err: err}
}

// exitCode maps an error to a process exit code. Storage failures and
// environment failures are system errors; everything else, including
// validation, unknown IDs, and flag misuse, is a user error.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *systemError
	if errors.As(err, &se) || types.IsStorage(err) {
		return exitSysError
	}
	return exitUserError
}
