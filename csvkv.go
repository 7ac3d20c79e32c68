package csvkv

import (
	"context"
	"log/slog"

	"github.com/hupe1980/csvkv/codec"
	"github.com/hupe1980/csvkv/compress"
	"github.com/hupe1980/csvkv/kvstore"
	redisstore "github.com/hupe1980/csvkv/kvstore/redis"
)

// MaxNamespace is the highest valid namespace index. It mirrors the default
// Redis configuration of 16 logical databases.
const MaxNamespace = 15

// Client loads CSV files into one namespace of a key-value store and looks
// records back up by key.
//
// A Client holds no per-call state: StoreCSV and GetRecords are safe to call
// from any number of goroutines, bounded only by the store client's own
// concurrency guarantees. Note that an import is destructive and not atomic
// against concurrent readers of the same namespace; a reader overlapping an
// import may observe an empty, partially loaded, or fully loaded namespace.
type Client struct {
	store      kvstore.Store
	ownsStore  bool
	codec      codec.Codec
	compressor compress.Compressor
	keyColumn  string
	batchSize  int
	strictRows bool
	logger     *slog.Logger
}

// New creates a Client bound to one namespace.
//
// The namespace is validated before any store interaction. Unless a store is
// injected with WithStore, a Redis connection is dialed using Addr/Password
// and verified with a ping; connections lie, so the ping is not optional.
func New(ctx context.Context, optFns ...func(o *Options)) (*Client, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Namespace < 0 || opts.Namespace > MaxNamespace {
		return nil, &ErrInvalidNamespace{Namespace: opts.Namespace}
	}

	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	if opts.Compressor == nil {
		opts.Compressor = compress.Default
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultOptions.BatchSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	c := &Client{
		store:      opts.Store,
		codec:      opts.Codec,
		compressor: opts.Compressor,
		keyColumn:  opts.KeyColumn,
		batchSize:  opts.BatchSize,
		strictRows: opts.StrictRows,
		logger:     opts.Logger,
	}

	if c.store == nil {
		c.store = redisstore.New(opts.Addr, opts.Password, opts.Namespace)
		c.ownsStore = true
	}

	if err := c.store.Ping(ctx); err != nil {
		if c.ownsStore {
			_ = c.store.Close()
		}
		return nil, wrapStore(err)
	}

	return c, nil
}

// Close releases the store connection if the Client dialed it. Injected
// stores stay open; their owner closes them.
func (c *Client) Close() error {
	if !c.ownsStore {
		return nil
	}
	return c.store.Close()
}
