package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/watchlist/pkg/types"
)

var errNoChanges = errors.New("nothing to change: pass --title, --year, --rating, --clear-year, or --clear-rating")

func newEditCmd(a *app) *cobra.Command {
	var (
		title       string
		year        int
		rating      int
		clearYear   bool
		clearRating bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a movie's title, year, or rating",
		Long: `Edit overwrites the given fields of a movie and keeps the rest. The watch
status and the date it was added never change.

Example:
  watchlist edit 4 --rating 4
  watchlist edit 4 --title "Heat (Director's Cut)" --clear-year`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			f := cmd.Flags()
			if !f.Changed("title") && !f.Changed("year") && !f.Changed("rating") && !clearYear && !clearRating {
				return errNoChanges
			}

			return a.withWatchlist(func(wl types.Watchlist) error {
				m, err := wl.Get(id)
				if err != nil {
					return err
				}

				in := types.MovieInput{Title: m.Title, Year: m.Year, Rating: m.Rating}
				if f.Changed("title") {
					in.Title = title
				}
				switch {
				case clearYear:
					in.Year = nil
				case f.Changed("year"):
					in.Year = types.IntPtr(year)
				}
				switch {
				case clearRating:
					in.Rating = nil
				case f.Changed("rating"):
					in.Rating = types.IntPtr(rating)
				}

				if err := wl.Update(id, in); err != nil {
					return err
				}
				updated, err := wl.Get(id)
				if err != nil {
					return err
				}
				counts, err := reload(wl)
				if err != nil {
					return err
				}

				return a.emit(cmd, mutationResult{Action: "updated", Movie: updated, Counts: counts}, func(w io.Writer) {
					fmt.Fprintf(w, "Updated movie %d\n", id)
					printMovie(w, updated)
					printCounts(w, counts)
				})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "new title")
	f.IntVar(&year, "year", 0, "new release year")
	f.IntVar(&rating, "rating", 0, "new rating")
	f.BoolVar(&clearYear, "clear-year", false, "remove the release year")
	f.BoolVar(&clearRating, "clear-rating", false, "remove the rating")
	cmd.MarkFlagsMutuallyExclusive("year", "clear-year")
	cmd.MarkFlagsMutuallyExclusive("rating", "clear-rating")
	return cmd
}
