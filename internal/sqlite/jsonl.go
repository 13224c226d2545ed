// This file provides JSON Lines read/write helpers with atomic persistence
// and optional zstd compression, plus the Export and Import operations.

package sqlite

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"github.com/mesh-intelligence/watchlist/pkg/types"
)

// zstdSuffix marks JSONL files that are zstd-compressed.
const zstdSuffix = ".zst"

// maxLineSize bounds a single JSONL record. Longer lines are skipped.
const maxLineSize = 1 << 20

// movieJSON is the JSONL record format for movies. Watched is 0 or 1.
type movieJSON struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Year      *int   `json:"year"`
	Watched   int    `json:"watched"`
	Rating    *int   `json:"rating"`
	CreatedAt int64  `json:"created_at"`
}

func toMovieJSON(m types.Movie) movieJSON {
	return movieJSON{
		ID:        m.ID,
		Title:     m.Title,
		Year:      m.Year,
		Watched:   int(m.Status),
		Rating:    m.Rating,
		CreatedAt: m.CreatedAt,
	}
}

// Export writes every movie to path as JSON Lines, ordered like List. A path
// ending in ".zst" is zstd-compressed. The file is replaced atomically.
func (b *Backend) Export(path string) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, readErr("export movies", types.ErrDetached)
	}

	movies, err := listMovies(b.db)
	if err != nil {
		return 0, readErr("export movies", err)
	}

	records := make([][]byte, 0, len(movies))
	for _, m := range movies {
		data, err := json.Marshal(toMovieJSON(m))
		if err != nil {
			return 0, writeErr("export movies", fmt.Errorf("marshaling movie %d: %w", m.ID, err))
		}
		records = append(records, data)
	}

	if err := writeJSONL(path, records); err != nil {
		return 0, writeErr("export movies", err)
	}

	b.logger.Info().Str("path", path).Int("count", len(records)).Msg("exported movies")
	return len(records), nil
}

// Import inserts the movies found in a JSON Lines file. Each record gets a
// fresh ID and is validated like Insert; watch status and a positive
// created_at are kept. Blank lines are ignored; malformed or invalid records
// are skipped and counted. Records are inserted one at a time, so a storage
// failure leaves the records before it in place.
func (b *Backend) Import(path string) (types.ImportResult, error) {
	var result types.ImportResult

	records, malformed, err := readJSONL(path)
	if err != nil {
		return result, readErr("import movies", err)
	}
	result.Skipped = malformed

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return result, writeErr("import movies", types.ErrDetached)
	}

	now := b.now()
	for i, rec := range records {
		var mj movieJSON
		if err := json.Unmarshal(rec, &mj); err != nil {
			result.Skipped++
			b.logger.Debug().Int("record", i).Err(err).Msg("import record skipped")
			continue
		}

		in := types.MovieInput{Title: mj.Title, Year: mj.Year, Rating: mj.Rating}.Normalize()
		if err := in.Validate(now); err != nil {
			result.Skipped++
			b.logger.Debug().Int("record", i).Err(err).Msg("import record skipped")
			continue
		}

		m := types.Movie{
			Title:     in.Title,
			Year:      in.Year,
			Status:    types.WatchStatusFromInt(int64(mj.Watched)),
			Rating:    in.Rating,
			CreatedAt: mj.CreatedAt,
		}
		if m.CreatedAt <= 0 {
			m.CreatedAt = now.UnixMilli()
		}
		if err := insertMovie(b.db, &m); err != nil {
			return result, writeErr("import movies", err)
		}
		result.Imported++
	}

	b.logger.Info().Str("path", path).Int("imported", result.Imported).Int("skipped", result.Skipped).Msg("imported movies")
	return result, nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line.
// Lines that are not valid JSON or longer than maxLineSize are skipped and
// counted; they never abort the read.
func readJSONL(path string) ([][]byte, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if isZstd(path) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, 0, fmt.Errorf("opening zstd stream %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}

	var (
		records   [][]byte
		malformed int
	)
	br := bufio.NewReader(r)
	for {
		line, readErr := br.ReadBytes('\n')
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0:
			// blank
		case len(line) > maxLineSize || !json.Valid(line):
			malformed++
		default:
			records = append(records, line)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, 0, fmt.Errorf("reading %s: %w", path, readErr)
		}
	}
	return records, malformed, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern. Paths ending in ".zst" are zstd-compressed.
func writeJSONL(path string, records [][]byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	bw := bufio.NewWriter(tmp)
	var w io.Writer = bw
	var enc *zstd.Encoder
	if isZstd(path) {
		enc, err = zstd.NewWriter(bw)
		if err != nil {
			return fail("creating zstd encoder", err)
		}
		w = enc
	}

	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return fail("writing newline", err)
		}
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return fail("closing zstd encoder", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func isZstd(path string) bool {
	return strings.HasSuffix(path, zstdSuffix)
}
