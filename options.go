package csvkv

import (
	"log/slog"

	"github.com/hupe1980/csvkv/codec"
	"github.com/hupe1980/csvkv/compress"
	"github.com/hupe1980/csvkv/kvstore"
)

// Options configures a Client.
type Options struct {
	// Namespace is the store database index, in [0, MaxNamespace].
	Namespace int

	// Addr is the store address, host:port.
	Addr string

	// Password authenticates against the store. Empty means none.
	Password string

	// KeyColumn names the header column whose value keys each record.
	// Empty selects the first column.
	KeyColumn string

	// Codec serializes records. Defaults to codec.Default.
	Codec codec.Codec

	// Compressor compresses encoded records. Defaults to compress.Default.
	Compressor compress.Compressor

	// BatchSize is the number of writes pipelined per store round trip
	// during import, when the store supports batching.
	BatchSize int

	// StrictRows aborts the import on the first row whose field count does
	// not match the header. The default skips such rows and logs a warning.
	StrictRows bool

	// Logger receives import progress and skip warnings. Defaults to a
	// discarding logger.
	Logger *slog.Logger

	// Store overrides the dialed store, e.g. kvstore.NewMemory() in tests.
	// When set, Addr and Password are ignored and the caller keeps
	// ownership: Close does not close an injected store.
	Store kvstore.Store
}

// DefaultOptions are the options used when none are overridden.
var DefaultOptions = Options{
	Namespace: 0,
	Addr:      "localhost:6379",
	BatchSize: 512,
}

// WithNamespace selects the store database index.
func WithNamespace(namespace int) func(*Options) {
	return func(o *Options) {
		o.Namespace = namespace
	}
}

// WithAddr sets the store address (host:port).
func WithAddr(addr string) func(*Options) {
	return func(o *Options) {
		o.Addr = addr
	}
}

// WithPassword sets the store password.
func WithPassword(password string) func(*Options) {
	return func(o *Options) {
		o.Password = password
	}
}

// WithKeyColumn keys records by the named header column instead of the first.
func WithKeyColumn(name string) func(*Options) {
	return func(o *Options) {
		o.KeyColumn = name
	}
}

// WithCodec configures the record codec.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) func(*Options) {
	return func(o *Options) {
		if c == nil {
			c = codec.Default
		}
		o.Codec = c
	}
}

// WithCompressor configures the record compressor.
//
// If nil is passed, compress.Default is used.
func WithCompressor(c compress.Compressor) func(*Options) {
	return func(o *Options) {
		if c == nil {
			c = compress.Default
		}
		o.Compressor = c
	}
}

// WithBatchSize sets how many writes are pipelined per store round trip.
func WithBatchSize(n int) func(*Options) {
	return func(o *Options) {
		o.BatchSize = n
	}
}

// WithStrictRows makes a row arity mismatch abort the whole import.
func WithStrictRows() func(*Options) {
	return func(o *Options) {
		o.StrictRows = true
	}
}

// WithLogger sets the logger. Progress is logged at debug level, skipped
// rows at warn.
func WithLogger(logger *slog.Logger) func(*Options) {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithStore injects a store handle instead of dialing one.
func WithStore(store kvstore.Store) func(*Options) {
	return func(o *Options) {
		o.Store = store
	}
}
