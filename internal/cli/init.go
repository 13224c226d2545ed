package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize watchlist storage",
		Long: "Create the configuration and data directories, then create the movie table.\n" +
			"An empty table is seeded with a few sample movies. Running init again is safe.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wl, dataDir, err := a.openWatchlist()
			if err != nil {
				return err
			}
			defer wl.Detach()

			counts, err := reload(wl)
			if err != nil {
				return err
			}

			out := struct {
				ConfigDir string `json:"config_dir"`
				DataDir   string `json:"data_dir"`
				Total     int    `json:"total"`
			}{a.configDir, dataDir, counts.Total}

			return a.emit(cmd, out, func(w io.Writer) {
				fmt.Fprintln(w, "Watchlist initialized")
				fmt.Fprintln(w, "  config:", a.configDir)
				fmt.Fprintln(w, "  data:  ", dataDir)
				printCounts(w, counts)
			})
		},
	}
}
