// Package query derives the display list of a watchlist from the full record
// set: a status filter followed by a case-insensitive title search. It does
// no I/O and never mutates its input.
package query

import (
	"strings"

	"github.com/mesh-intelligence/watchlist/pkg/types"
)

// Apply returns the records that pass status and whose title contains the
// trimmed search text, ignoring case. An empty search keeps every record that
// passes status. Relative input order is preserved and the result is never
// nil.
func Apply(movies []types.Movie, status types.StatusFilter, search string) []types.Movie {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]types.Movie, 0, len(movies))
	for _, m := range movies {
		if !status.Matches(m.Status) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(m.Title), needle) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Counts tallies records by watch status.
type Counts struct {
	Total     int `json:"total"`
	Watched   int `json:"watched"`
	Unwatched int `json:"unwatched"`
}

// Count returns the per-status totals of movies.
func Count(movies []types.Movie) Counts {
	c := Counts{Total: len(movies)}
	for _, m := range movies {
		if m.Status == types.Watched {
			c.Watched++
		} else {
			c.Unwatched++
		}
	}
	return c
}
