package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/watchlist/pkg/types"
)

// sampleMovie describes a record to seed on first startup.
type sampleMovie struct {
	title   string
	year    int
	watched types.WatchStatus
	rating  *int
}

// sampleMovies defines the records seeded into an empty table.
var sampleMovies = []sampleMovie{
	{title: "Inception", year: 2010, watched: types.Unwatched},
	{title: "Interstellar", year: 2014, watched: types.Watched, rating: types.IntPtr(5)},
	{title: "Dune", year: 2021, watched: types.Unwatched},
}

// seedSampleMovies inserts the sample movies if the movies table is empty
// and returns how many were inserted. created_at increases by one
// millisecond per record so insertion order is also creation order.
func seedSampleMovies(db *sql.DB, now time.Time) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting movies: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	stmt, err := tx.Prepare(insertMovieSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing seed insert: %w", err)
	}
	defer stmt.Close()

	base := now.UnixMilli()
	for i, sm := range sampleMovies {
		_, err := stmt.Exec(sm.title, sm.year, int(sm.watched), nullableInt(sm.rating), base+int64(i))
		if err != nil {
			return 0, fmt.Errorf("seeding movie %s: %w", sm.title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed transaction: %w", err)
	}
	return len(sampleMovies), nil
}
