package types

import (
	"errors"
	"fmt"
)

// Lifecycle errors.
var (
	ErrDetached        = errors.New("watchlist is detached")
	ErrAlreadyAttached = errors.New("watchlist is already attached")
)

// Record errors.
var (
	ErrNotFound            = errors.New("movie not found")
	ErrInvalidID           = errors.New("invalid movie ID")
	ErrInvalidStatusFilter = errors.New("invalid status filter")
)

// Validation causes carried by ValidationError.
var (
	ErrInvalidTitle  = errors.New("title must not be empty")
	ErrInvalidYear   = errors.New("year out of range")
	ErrInvalidRating = errors.New("rating out of range")
)

// Storage error kinds carried by StorageError.
var (
	ErrInitialization = errors.New("storage initialization failed")
	ErrStorageRead    = errors.New("storage read failed")
	ErrStorageWrite   = errors.New("storage write failed")
)

// ValidationError reports a movie field that failed validation. Err is one of
// ErrInvalidTitle, ErrInvalidYear, or ErrInvalidRating. Min and Max carry the
// accepted range for bounded fields so callers can render a specific message.
type ValidationError struct {
	Field string
	Value int
	Min   int
	Max   int
	Err   error
}

func (e *ValidationError) Error() string {
	switch e.Err {
	case ErrInvalidTitle:
		return "title: must not be empty"
	default:
		return fmt.Sprintf("%s: %d is out of range, must be between %d and %d", e.Field, e.Value, e.Min, e.Max)
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }

// StorageError reports a failure of the durable layer. Kind is one of
// ErrInitialization, ErrStorageRead, or ErrStorageWrite; errors.Is matches
// both Kind and the underlying cause.
type StorageError struct {
	Kind error
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{e.Kind, e.Err} }

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err carries a *StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
