package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/watchlist/pkg/query"
	"github.com/mesh-intelligence/watchlist/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	var (
		status string
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movies, optionally filtered",
		Long: `List shows the watchlist. --status keeps only watched or unwatched movies;
--search keeps movies whose title contains the text, ignoring case. Both
filters combine.

Example:
  watchlist list
  watchlist list --status unwatched
  watchlist list --search dune`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := types.ParseStatusFilter(status)
			if err != nil {
				return err
			}

			return a.withWatchlist(func(wl types.Watchlist) error {
				movies, err := wl.List()
				if err != nil {
					return err
				}
				shown := query.Apply(movies, filter, search)

				return a.emit(cmd, shown, func(w io.Writer) {
					if len(shown) == 0 {
						fmt.Fprintln(w, "No movies match.")
					} else {
						printMovies(w, shown)
					}
					fmt.Fprintf(w, "\nShowing %d of %d\n", len(shown), len(movies))
				})
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", string(types.FilterAll), "filter by watch status: all, watched, unwatched")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive title substring")
	return cmd
}
