package types

import (
	"strings"
	"time"
)

// Bounds for the optional movie fields.
const (
	MinYear   = 1900
	MinRating = 1
	MaxRating = 5
)

// WatchStatus records whether a movie has been watched. It is stored as 0 or
// 1 and only converted at the storage and export boundaries.
type WatchStatus int

// Watch statuses.
const (
	Unwatched WatchStatus = 0
	Watched   WatchStatus = 1
)

// String returns "watched" or "unwatched".
func (s WatchStatus) String() string {
	if s == Watched {
		return "watched"
	}
	return "unwatched"
}

// Toggle returns the opposite status.
func (s WatchStatus) Toggle() WatchStatus {
	if s == Watched {
		return Unwatched
	}
	return Watched
}

// WatchStatusFromInt converts a stored 0/1 value. Any non-zero value is
// treated as Watched.
func WatchStatusFromInt(v int64) WatchStatus {
	if v != 0 {
		return Watched
	}
	return Unwatched
}

// Movie is a single watchlist record.
type Movie struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	Year      *int        `json:"year"`
	Status    WatchStatus `json:"watched"`
	Rating    *int        `json:"rating"`
	CreatedAt int64       `json:"created_at"` // epoch milliseconds
}

// IsWatched reports whether the movie has been watched.
func (m *Movie) IsWatched() bool {
	return m.Status == Watched
}

// Created returns CreatedAt as a time.Time.
func (m *Movie) Created() time.Time {
	return time.UnixMilli(m.CreatedAt)
}

// MovieInput carries the user-editable fields for Insert and Update.
// Year and Rating are nil when absent.
type MovieInput struct {
	Title  string
	Year   *int
	Rating *int
}

// Normalize returns a copy with the title trimmed of surrounding whitespace.
func (in MovieInput) Normalize() MovieInput {
	in.Title = strings.TrimSpace(in.Title)
	return in
}

// Validate checks the input against the field bounds. The year upper bound is
// the calendar year of now. It returns a *ValidationError for the first
// failing field.
func (in MovieInput) Validate(now time.Time) error {
	if err := ValidateTitle(in.Title); err != nil {
		return err
	}
	if in.Year != nil {
		if err := ValidateYear(*in.Year, now); err != nil {
			return err
		}
	}
	if in.Rating != nil {
		if err := ValidateRating(*in.Rating); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTitle rejects titles that are empty after trimming.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Err: ErrInvalidTitle}
	}
	return nil
}

// ValidateYear accepts MinYear through the calendar year of now, inclusive.
func ValidateYear(year int, now time.Time) error {
	maxYear := now.Year()
	if year < MinYear || year > maxYear {
		return &ValidationError{Field: "year", Value: year, Min: MinYear, Max: maxYear, Err: ErrInvalidYear}
	}
	return nil
}

// ValidateRating accepts MinRating through MaxRating, inclusive.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return &ValidationError{Field: "rating", Value: rating, Min: MinRating, Max: MaxRating, Err: ErrInvalidRating}
	}
	return nil
}

// IntPtr returns a pointer to v. Handy for building MovieInput literals.
func IntPtr(v int) *int {
	return &v
}
