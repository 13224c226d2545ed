package types

// Watchlist defines backend-agnostic access to the movie record set.
// Callers attach to a backend, operate on records, and detach when done.
// One attached Watchlist is expected per process.
type Watchlist interface {
	// Attach connects to the backend described by config, creating the
	// DataDir if needed, and runs Initialize. Returns ErrAlreadyAttached if
	// called while attached. Failures carry ErrInitialization.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Initialize creates the schema if absent and seeds the sample records
	// when the table is empty. Safe to call repeatedly.
	Initialize() error

	// List returns every record. Order is not part of the contract.
	List() ([]Movie, error)

	// Get returns the record with the given ID or ErrNotFound.
	Get(id int64) (*Movie, error)

	// Insert validates in, stores a new unwatched record, and returns it.
	Insert(in MovieInput) (*Movie, error)

	// Update overwrites title, year, and rating of an existing record.
	// Watch status and creation time are preserved.
	Update(id int64, in MovieInput) error

	// ToggleWatched flips the stored watch status and returns the new value.
	ToggleWatched(id int64) (WatchStatus, error)

	// Delete removes the record. Deleting a missing ID succeeds.
	Delete(id int64) error

	// Export writes every record to path as JSON Lines and returns the count.
	Export(path string) (int, error)

	// Import inserts the records found in a JSON Lines file at path.
	Import(path string) (ImportResult, error)
}

// ImportResult summarizes an Import call.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
