package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/watchlist/pkg/query"
	"github.com/mesh-intelligence/watchlist/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write every movie to a JSON Lines file",
		Long: `Export writes one JSON object per movie. A file name ending in .zst is
zstd-compressed. An existing file is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			return a.withWatchlist(func(wl types.Watchlist) error {
				n, err := wl.Export(path)
				if err != nil {
					return err
				}

				out := struct {
					Path     string `json:"path"`
					Exported int    `json:"exported"`
				}{path, n}
				return a.emit(cmd, out, func(w io.Writer) {
					fmt.Fprintf(w, "Exported %d movies to %s\n", n, path)
				})
			})
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add movies from a JSON Lines file",
		Long: `Import adds every valid record in a file written by export. Records get new
IDs; watch status and the date added are kept. Invalid records are skipped.
A file name ending in .zst is read as zstd.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			return a.withWatchlist(func(wl types.Watchlist) error {
				result, err := wl.Import(path)
				if err != nil {
					return err
				}
				counts, err := reload(wl)
				if err != nil {
					return err
				}

				out := struct {
					types.ImportResult
					Action string       `json:"action"`
					Counts query.Counts `json:"counts"`
				}{result, "imported", counts}
				return a.emit(cmd, out, func(w io.Writer) {
					fmt.Fprintf(w, "Imported %d movies (%d skipped)\n", result.Imported, result.Skipped)
					printCounts(w, counts)
				})
			})
		},
	}
}
