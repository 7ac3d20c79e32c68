package csvkv

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/csvkv/record"
)

// maxDecodeWorkers bounds the parallel decompress/decode fan-out per lookup.
const maxDecodeWorkers = 8

// GetRecords returns every record stored under key, in the order the records
// appeared in the source file. A key with no records yields an empty slice,
// not an error.
//
// Blobs are decompressed and decoded in parallel; results land at their list
// index, so the returned order matches the stored order. A blob that fails to
// decompress or decode aborts the lookup with *ErrCorruptRecord.
func (c *Client) GetRecords(ctx context.Context, key string) ([]record.Record, error) {
	blobs, err := c.store.LRange(ctx, key, 0, -1)
	if err != nil {
		return nil, wrapStore(err)
	}

	records := make([]record.Record, len(blobs))
	if len(blobs) == 0 {
		return records, nil
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxDecodeWorkers)

	for i, blob := range blobs {
		g.Go(func() error {
			rec, err := c.decode(key, i, blob)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// StreamRecords returns the records under key as a lazy sequence, decoding
// one record at a time. Iterating the sequence again re-queries the store.
//
// On failure the sequence yields a nil record with the error and stops.
func (c *Client) StreamRecords(ctx context.Context, key string) iter.Seq2[record.Record, error] {
	return func(yield func(record.Record, error) bool) {
		blobs, err := c.store.LRange(ctx, key, 0, -1)
		if err != nil {
			yield(nil, wrapStore(err))
			return
		}

		for i, blob := range blobs {
			rec, err := c.decode(key, i, blob)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// decode reverses the stored encoding: decompress, then deserialize.
func (c *Client) decode(key string, index int, blob []byte) (record.Record, error) {
	data, err := c.compressor.Decompress(blob)
	if err != nil {
		return nil, &ErrCorruptRecord{Key: key, Index: index, cause: err}
	}
	var rec record.Record
	if err := c.codec.Unmarshal(data, &rec); err != nil {
		return nil, &ErrCorruptRecord{Key: key, Index: index, cause: err}
	}
	return rec, nil
}
