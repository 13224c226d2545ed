// Shared helpers for watchlist CLI commands.

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/watchlist/internal/paths"
	"github.com/mesh-intelligence/watchlist/pkg/query"
	"github.com/mesh-intelligence/watchlist/pkg/sqlite"
	"github.com/mesh-intelligence/watchlist/pkg/types"
)

// openWatchlist resolves the data directory and attaches a backend. The
// returned directory is absolute. The caller must Detach.
func (a *app) openWatchlist() (types.Watchlist, string, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.settings.DataDir)
	if err != nil {
		return nil, "", sysErr(fmt.Errorf("resolve data dir: %w", err))
	}

	wl := sqlite.NewBackend(a.logger)
	if err := wl.Attach(types.Config{Backend: a.settings.Backend, DataDir: dataDir}); err != nil {
		return nil, "", err
	}
	return wl, dataDir, nil
}

// withWatchlist attaches, runs fn, and detaches.
func (a *app) withWatchlist(fn func(wl types.Watchlist) error) error {
	wl, _, err := a.openWatchlist()
	if err != nil {
		return err
	}
	defer func() {
		if err := wl.Detach(); err != nil {
			a.logger.Warn().Err(err).Msg("detach failed")
		}
	}()
	return fn(wl)
}

// parseID converts a command argument to a movie ID.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w %q (must be a positive integer)", types.ErrInvalidID, arg)
	}
	return id, nil
}

// reload re-reads the full record set after a mutation and returns the
// per-status totals.
func reload(wl types.Watchlist) (query.Counts, error) {
	movies, err := wl.List()
	if err != nil {
		return query.Counts{}, err
	}
	return query.Count(movies), nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// emit writes obj in JSON mode, otherwise the text produced by text.
func (a *app) emit(cmd *cobra.Command, obj any, text func(w io.Writer)) error {
	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), obj)
	}
	text(cmd.OutOrStdout())
	return nil
}

// printMovies renders movies as an aligned table.
func printMovies(w io.Writer, movies []types.Movie) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tSTATUS\tRATING")
	fmt.Fprintln(tw, "--\t-----\t----\t------\t------")
	for _, m := range movies {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", m.ID, m.Title, formatYear(m.Year), m.Status, formatRating(m.Rating))
	}
	tw.Flush()
}

// printMovie renders one movie as labelled lines.
func printMovie(w io.Writer, m *types.Movie) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", m.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", m.Title)
	fmt.Fprintf(tw, "Year:\t%s\n", formatYear(m.Year))
	fmt.Fprintf(tw, "Status:\t%s\n", m.Status)
	fmt.Fprintf(tw, "Rating:\t%s\n", formatRating(m.Rating))
	fmt.Fprintf(tw, "Added:\t%s\n", m.Created().Local().Format(time.DateTime))
	tw.Flush()
}

// printCounts writes the totals line shown after every mutation.
func printCounts(w io.Writer, c query.Counts) {
	fmt.Fprintf(w, "Total: %d (%d watched, %d unwatched)\n", c.Total, c.Watched, c.Unwatched)
}

func formatYear(year *int) string {
	if year == nil {
		return "-"
	}
	return strconv.Itoa(*year)
}

func formatRating(rating *int) string {
	if rating == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d", *rating, types.MaxRating)
}

// mutationResult is the JSON shape printed by commands that change records.
type mutationResult struct {
	Action string       `json:"action"`
	Movie  *types.Movie `json:"movie,omitempty"`
	ID     int64        `json:"id,omitempty"`
	Counts query.Counts `json:"counts"`
}
