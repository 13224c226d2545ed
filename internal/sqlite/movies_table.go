package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/watchlist/pkg/types"
)

// List returns every movie ordered by created_at, then id.
func (b *Backend) List() ([]types.Movie, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, readErr("list movies", types.ErrDetached)
	}

	movies, err := listMovies(b.db)
	if err != nil {
		return nil, readErr("list movies", err)
	}
	return movies, nil
}

// Get retrieves a movie by ID.
func (b *Backend) Get(id int64) (*types.Movie, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, readErr("get movie", types.ErrDetached)
	}

	row := b.db.QueryRow("SELECT "+movieColumns+" FROM movies WHERE id = ?", id)
	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, readErr("get movie", err)
	}
	return &m, nil
}

// Insert validates in and stores it as a new unwatched movie stamped with
// the current time. The trimmed title is stored.
func (b *Backend) Insert(in types.MovieInput) (*types.Movie, error) {
	in = in.Normalize()
	if err := in.Validate(b.now()); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, writeErr("insert movie", types.ErrDetached)
	}

	m := types.Movie{
		Title:     in.Title,
		Year:      in.Year,
		Status:    types.Unwatched,
		Rating:    in.Rating,
		CreatedAt: b.now().UnixMilli(),
	}
	if err := insertMovie(b.db, &m); err != nil {
		return nil, writeErr("insert movie", err)
	}

	b.logger.Debug().Int64("id", m.ID).Str("title", m.Title).Msg("movie inserted")
	return &m, nil
}

// Update overwrites title, year, and rating. Watch status and created_at are
// left untouched.
func (b *Backend) Update(id int64, in types.MovieInput) error {
	in = in.Normalize()
	if err := in.Validate(b.now()); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return writeErr("update movie", types.ErrDetached)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return writeErr("update movie", fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE movies SET title = ?, year = ?, rating = ? WHERE id = ?",
		in.Title, nullableInt(in.Year), nullableInt(in.Rating), id,
	)
	if err != nil {
		return writeErr("update movie", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return writeErr("update movie", err)
	}
	if n == 0 {
		return notFound(id)
	}

	if err := tx.Commit(); err != nil {
		return writeErr("update movie", fmt.Errorf("committing: %w", err))
	}

	b.logger.Debug().Int64("id", id).Msg("movie updated")
	return nil
}

// ToggleWatched flips the stored watch status of a movie and returns the new
// status. The flip happens inside one transaction against the current
// persisted value, so concurrent toggles never lose an update.
func (b *Backend) ToggleWatched(id int64) (types.WatchStatus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.Unwatched, writeErr("toggle watched", types.ErrDetached)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return types.Unwatched, writeErr("toggle watched", fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE movies SET watched = CASE watched WHEN 0 THEN 1 ELSE 0 END WHERE id = ?", id,
	)
	if err != nil {
		return types.Unwatched, writeErr("toggle watched", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return types.Unwatched, writeErr("toggle watched", err)
	}
	if n == 0 {
		return types.Unwatched, notFound(id)
	}

	var watched int64
	if err := tx.QueryRow("SELECT watched FROM movies WHERE id = ?", id).Scan(&watched); err != nil {
		return types.Unwatched, writeErr("toggle watched", err)
	}

	if err := tx.Commit(); err != nil {
		return types.Unwatched, writeErr("toggle watched", fmt.Errorf("committing: %w", err))
	}

	status := types.WatchStatusFromInt(watched)
	b.logger.Debug().Int64("id", id).Stringer("status", status).Msg("movie toggled")
	return status, nil
}

// Delete permanently removes a movie. Deleting an ID that does not exist is
// a no-op and succeeds.
func (b *Backend) Delete(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return writeErr("delete movie", types.ErrDetached)
	}

	res, err := b.db.Exec("DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return writeErr("delete movie", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return writeErr("delete movie", err)
	}

	if n == 0 {
		b.logger.Debug().Int64("id", id).Msg("delete of missing movie ignored")
	} else {
		b.logger.Debug().Int64("id", id).Msg("movie deleted")
	}
	return nil
}

// listMovies reads every row of the movies table. It returns an empty slice,
// not nil, for an empty table.
func listMovies(db *sql.DB) ([]types.Movie, error) {
	rows, err := db.Query("SELECT " + movieColumns + " FROM movies ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("querying movies: %w", err)
	}
	defer rows.Close()

	movies := []types.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movies: %w", err)
	}
	return movies, nil
}

// insertMovie writes m in its own transaction and sets m.ID from the
// generated key.
func insertMovie(db *sql.DB, m *types.Movie) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(insertMovieSQL,
		m.Title, nullableInt(m.Year), int(m.Status), nullableInt(m.Rating), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting movie: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading movie id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing movie: %w", err)
	}
	m.ID = id
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMovie converts one row selected with movieColumns into a Movie.
func scanMovie(s rowScanner) (types.Movie, error) {
	var (
		m       types.Movie
		year    sql.NullInt64
		rating  sql.NullInt64
		watched int64
	)
	if err := s.Scan(&m.ID, &m.Title, &year, &watched, &rating, &m.CreatedAt); err != nil {
		return types.Movie{}, err
	}
	m.Year = intPtr(year)
	m.Rating = intPtr(rating)
	m.Status = types.WatchStatusFromInt(watched)
	return m, nil
}

// nullableInt converts an optional field to a driver value.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
