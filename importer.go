package csvkv

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/csvkv/kvstore"
	"github.com/hupe1980/csvkv/record"
)

// ImportStats summarizes one completed import pass.
type ImportStats struct {
	// Rows is the number of records written to the store.
	Rows int
	// Skipped is the number of rows dropped for arity mismatches.
	Skipped int
	// Keys is the number of distinct keys observed.
	Keys int
	// RawBytes is the total encoded record size before compression.
	RawBytes int64
	// CompressedBytes is the total blob size written to the store.
	CompressedBytes int64
	// Saved reports whether the final durable-save request succeeded.
	Saved bool
	// Elapsed is the wall-clock duration of the pass.
	Elapsed time.Duration
}

// StoreCSV imports the CSV file at path into the Client's namespace.
//
// The first row is the header; every following row becomes one record keyed
// by the designated column's value, serialized, compressed and appended under
// that key. All prior contents of the namespace are cleared first: the
// import is all-or-nothing per namespace, never a partial overwrite.
//
// Rows whose field count does not match the header are skipped and logged
// unless WithStrictRows was set, in which case the import aborts with
// *ErrRowArityMismatch. On completion a durable save is requested from the
// store; a save failure is logged and reported through ImportStats.Saved but
// does not fail the import.
func (c *Client) StoreCSV(ctx context.Context, path string) (ImportStats, error) {
	var stats ImportStats
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	// Counting records up front is only worth a second file pass when the
	// progress output is actually visible.
	total := 0
	if c.logger.Enabled(ctx, slog.LevelDebug) {
		if total, err = countRecords(path); err != nil {
			return stats, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		c.logger.DebugContext(ctx, "starting import", "path", path, "records", total)
	}

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrMalformedSource, err)
	}

	keyIdx := 0
	if c.keyColumn != "" {
		keyIdx = slices.Index(header, c.keyColumn)
		if keyIdx < 0 {
			return stats, fmt.Errorf("%w: key column %q not in header", ErrMalformedSource, c.keyColumn)
		}
	}

	// Destructive by contract: the namespace holds exactly one dataset.
	if err := c.store.FlushDB(ctx); err != nil {
		return stats, wrapStore(err)
	}

	var batch kvstore.Batch
	if b, ok := c.store.(kvstore.Batcher); ok {
		batch = b.Batch()
	}

	keys := make(map[string]struct{})
	progress := rate.Sometimes{Interval: 3 * time.Second}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) && errors.Is(err, csv.ErrFieldCount) {
				arityErr := &ErrRowArityMismatch{Line: pe.Line, Expected: len(header), Actual: len(row), cause: err}
				if c.strictRows {
					return stats, arityErr
				}
				c.logger.WarnContext(ctx, "skipping row", "line", pe.Line, "fields", len(row), "want", len(header))
				stats.Skipped++
				continue
			}
			return stats, fmt.Errorf("%w: %w", ErrMalformedSource, err)
		}

		rec, err := record.New(header, row)
		if err != nil {
			return stats, fmt.Errorf("%w: %w", ErrMalformedSource, err)
		}
		key := row[keyIdx]

		data, err := c.codec.Marshal(rec)
		if err != nil {
			return stats, fmt.Errorf("encode record: %w", err)
		}
		blob, err := c.compressor.Compress(data)
		if err != nil {
			return stats, fmt.Errorf("compress record: %w", err)
		}

		if batch != nil {
			batch.RPush(key, blob)
			if batch.Len() >= c.batchSize {
				if err := batch.Flush(ctx); err != nil {
					return stats, wrapStore(err)
				}
			}
		} else {
			if err := c.store.RPush(ctx, key, blob); err != nil {
				return stats, wrapStore(err)
			}
		}

		keys[key] = struct{}{}
		stats.Rows++
		stats.RawBytes += int64(len(data))
		stats.CompressedBytes += int64(len(blob))

		progress.Do(func() {
			c.logger.DebugContext(ctx, "import progress",
				"rows", stats.Rows,
				"total", total,
				"key", key,
				"elapsed", time.Since(start).Round(time.Millisecond),
			)
		})
	}

	if batch != nil && batch.Len() > 0 {
		if err := batch.Flush(ctx); err != nil {
			return stats, wrapStore(err)
		}
	}

	stats.Keys = len(keys)

	// Durability is best effort: the data is live in the store either way.
	if err := c.store.BgSave(ctx); err != nil {
		c.logger.WarnContext(ctx, "durable save failed", "error", err)
	} else {
		stats.Saved = true
	}

	stats.Elapsed = time.Since(start)
	c.logger.InfoContext(ctx, "import finished",
		"rows", stats.Rows,
		"skipped", stats.Skipped,
		"keys", stats.Keys,
		"compressed_bytes", stats.CompressedBytes,
		"elapsed", stats.Elapsed.Round(time.Millisecond),
	)

	return stats, nil
}

// countRecords counts data rows (newlines minus the header) with buffered
// chunk reads, so progress can be reported as a fraction of the whole file.
func countRecords(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	lines := 0
	buf := make([]byte, 64*1024)
	r := bufio.NewReader(f)
	for {
		n, err := r.Read(buf)
		lines += bytes.Count(buf[:n], []byte{'\n'})
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if lines == 0 {
		return 0, nil
	}
	return lines - 1, nil
}
