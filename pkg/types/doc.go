// Package types defines the Watchlist interface, the movie entity and its
// validation rules, the status filter used by list views, and the standard
// error types shared by every backend and front end.
package types
