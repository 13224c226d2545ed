// Package main provides the watchlist CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/watchlist/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
