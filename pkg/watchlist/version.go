// Package watchlist holds build metadata for the watchlist module.
package watchlist

// Version is the release version reported by the CLI.
const Version = "0.1.0"

// ModulePath is the Go module path of this repository.
const ModulePath = "github.com/mesh-intelligence/watchlist"
