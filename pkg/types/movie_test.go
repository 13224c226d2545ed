package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateYear(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		year    int
		wantErr bool
	}{
		{name: "lower bound accepted", year: 1900},
		{name: "current year accepted", year: 2026},
		{name: "mid range accepted", year: 2010},
		{name: "below lower bound rejected", year: 1899, wantErr: true},
		{name: "next year rejected", year: 2027, wantErr: true},
		{name: "zero rejected", year: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateYear(tt.year, now)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidYear)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "year", ve.Field)
			assert.Equal(t, 1900, ve.Min)
			assert.Equal(t, 2026, ve.Max)
		})
	}
}

func TestValidateRating(t *testing.T) {
	tests := []struct {
		rating  int
		wantErr bool
	}{
		{rating: 0, wantErr: true},
		{rating: 1},
		{rating: 3},
		{rating: 5},
		{rating: 6, wantErr: true},
		{rating: -1, wantErr: true},
	}

	for _, tt := range tests {
		err := ValidateRating(tt.rating)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", tt.rating)
			assert.True(t, IsValidation(err))
		} else {
			assert.NoError(t, err, "rating %d", tt.rating)
		}
	}
}

func TestMovieInputValidate(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   MovieInput
		wantErr error
	}{
		{
			name:  "title only",
			input: MovieInput{Title: "Heat"},
		},
		{
			name:  "all fields",
			input: MovieInput{Title: "Heat", Year: IntPtr(1995), Rating: IntPtr(5)},
		},
		{
			name:    "empty title",
			input:   MovieInput{Title: ""},
			wantErr: ErrInvalidTitle,
		},
		{
			name:    "whitespace title",
			input:   MovieInput{Title: " \t\n "},
			wantErr: ErrInvalidTitle,
		},
		{
			name:    "title checked before year",
			input:   MovieInput{Title: " ", Year: IntPtr(1800)},
			wantErr: ErrInvalidTitle,
		},
		{
			name:    "bad year",
			input:   MovieInput{Title: "Heat", Year: IntPtr(2027)},
			wantErr: ErrInvalidYear,
		},
		{
			name:    "bad rating",
			input:   MovieInput{Title: "Heat", Rating: IntPtr(0)},
			wantErr: ErrInvalidRating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate(now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMovieInputNormalize(t *testing.T) {
	in := MovieInput{Title: "  Dune  ", Year: IntPtr(2021)}
	got := in.Normalize()

	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "  Dune  ", in.Title, "original must not change")
	assert.Same(t, in.Year, got.Year)
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "title: must not be empty", ValidateTitle("").Error())
	assert.Equal(t, "rating: 9 is out of range, must be between 1 and 5", ValidateRating(9).Error())
}

func TestWatchStatus(t *testing.T) {
	assert.Equal(t, Watched, Unwatched.Toggle())
	assert.Equal(t, Unwatched, Watched.Toggle())
	assert.Equal(t, Unwatched, Unwatched.Toggle().Toggle())
	assert.Equal(t, "watched", Watched.String())
	assert.Equal(t, "unwatched", Unwatched.String())
	assert.Equal(t, Watched, WatchStatusFromInt(1))
	assert.Equal(t, Unwatched, WatchStatusFromInt(0))
}

func TestStorageErrorMatchesKindAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&StorageError{Kind: ErrStorageWrite, Op: "insert", Err: cause})

	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrStorageRead)
	assert.True(t, IsStorage(err))
	assert.False(t, IsValidation(err))
	assert.Equal(t, "storage write failed: insert: disk full", err.Error())
}
