package types

import (
	"fmt"
	"strings"
)

// StatusFilter selects movies by watch status in list views.
type StatusFilter string

// Status filters.
const (
	FilterAll       StatusFilter = "all"
	FilterWatched   StatusFilter = "watched"
	FilterUnwatched StatusFilter = "unwatched"
)

// StatusFilters lists the recognized filters in display order.
var StatusFilters = []StatusFilter{FilterAll, FilterWatched, FilterUnwatched}

// ParseStatusFilter converts user text to a StatusFilter. Matching is
// case-insensitive and an empty string means FilterAll.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterWatched, FilterUnwatched:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (valid: all, watched, unwatched)", ErrInvalidStatusFilter, s)
	}
}

// Matches reports whether status passes the filter. Unrecognized filters
// match everything.
func (f StatusFilter) Matches(status WatchStatus) bool {
	switch f {
	case FilterWatched:
		return status == Watched
	case FilterUnwatched:
		return status == Unwatched
	default:
		return true
	}
}
