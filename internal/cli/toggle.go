package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/watchlist/pkg/types"
)

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a movie between watched and unwatched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return a.withWatchlist(func(wl types.Watchlist) error {
				status, err := wl.ToggleWatched(id)
				if err != nil {
					return err
				}
				m, err := wl.Get(id)
				if err != nil {
					return err
				}
				counts, err := reload(wl)
				if err != nil {
					return err
				}

				return a.emit(cmd, mutationResult{Action: "toggled", Movie: m, Counts: counts}, func(w io.Writer) {
					fmt.Fprintf(w, "Marked %q as %s\n", m.Title, status)
					printCounts(w, counts)
				})
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a movie permanently",
		Long: `Delete removes a movie. Deleting an ID that does not exist succeeds and
changes nothing.

An empty watchlist is seeded with the sample movies when it is opened, so
deleting every movie brings the samples back on the next command.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return a.withWatchlist(func(wl types.Watchlist) error {
				if err := wl.Delete(id); err != nil {
					return err
				}
				counts, err := reload(wl)
				if err != nil {
					return err
				}

				return a.emit(cmd, mutationResult{Action: "deleted", ID: id, Counts: counts}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted movie %d\n", id)
					printCounts(w, counts)
				})
			})
		},
	}
}
