package sqlite

// Schema DDL. Every statement is guarded by IF NOT EXISTS so Initialize can
// run on each start without touching existing data.
const (
	createMovies = `CREATE TABLE IF NOT EXISTS movies (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    year INTEGER,
    watched INTEGER NOT NULL DEFAULT 0,
    rating INTEGER,
    created_at INTEGER NOT NULL
);`
)

// Index DDL for default ordering.
const (
	idxMoviesCreatedAt = `CREATE INDEX IF NOT EXISTS idx_movies_created_at ON movies(created_at);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createMovies,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxMoviesCreatedAt,
}

// Shared statements.
const (
	movieColumns = "id, title, year, watched, rating, created_at"

	insertMovieSQL = "INSERT INTO movies (title, year, watched, rating, created_at) VALUES (?, ?, ?, ?, ?)"
)
