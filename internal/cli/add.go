package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/watchlist/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		title  string
		year   int
		rating int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a movie to the watchlist",
		Long: `Add stores a new unwatched movie. Year and rating are optional.

Example:
  watchlist add --title "Heat" --year 1995
  watchlist add --title "Arrival" --rating 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := types.MovieInput{Title: title}
			if cmd.Flags().Changed("year") {
				in.Year = types.IntPtr(year)
			}
			if cmd.Flags().Changed("rating") {
				in.Rating = types.IntPtr(rating)
			}

			return a.withWatchlist(func(wl types.Watchlist) error {
				m, err := wl.Insert(in)
				if err != nil {
					return err
				}
				counts, err := reload(wl)
				if err != nil {
					return err
				}

				return a.emit(cmd, mutationResult{Action: "added", Movie: m, Counts: counts}, func(w io.Writer) {
					fmt.Fprintf(w, "Added movie %d: %s\n", m.ID, m.Title)
					printCounts(w, counts)
				})
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "movie title (required)")
	cmd.Flags().IntVar(&year, "year", 0, fmt.Sprintf("release year, %d or later", types.MinYear))
	cmd.Flags().IntVar(&rating, "rating", 0, fmt.Sprintf("rating from %d to %d", types.MinRating, types.MaxRating))
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return a.withWatchlist(func(wl types.Watchlist) error {
				m, err := wl.Get(id)
				if err != nil {
					return err
				}
				return a.emit(cmd, m, func(w io.Writer) {
					printMovie(w, m)
				})
			})
		},
	}
}
