// Package kvstore abstracts the external key-value service records are
// loaded into.
//
// The importer and reader depend only on this capability set, not on any
// particular service: clear-all, append-by-key, fetch-all-by-key, and an
// explicit durable-save trigger. The Redis-backed implementation lives in the
// redis subpackage; Memory is an in-process implementation for tests and
// ephemeral use.
package kvstore

import "context"

// Store is a handle to one namespace of the external key-value service.
// Namespace selection happens when the handle is created; every operation
// below acts within that namespace only.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Ping verifies the store is reachable and serving.
	Ping(ctx context.Context) error

	// FlushDB removes every key in the namespace. Irreversible.
	FlushDB(ctx context.Context) error

	// RPush appends values to the tail of the list stored at key, creating
	// the list if absent. Append order is the read-back order.
	RPush(ctx context.Context, key string, values ...[]byte) error

	// LRange returns the list elements at key between start and stop
	// inclusive; stop -1 means the last element. A missing key yields an
	// empty result, not an error.
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)

	// BgSave asks the store to persist its contents to disk. Best effort;
	// stores without their own durability may treat it as a no-op.
	BgSave(ctx context.Context) error

	// Close releases the handle. The store itself keeps running.
	Close() error
}

// Batcher is an optional interface for stores that can batch writes into one
// round trip. The importer uses it to pipeline bulk loads.
type Batcher interface {
	Batch() Batch
}

// Batch accumulates RPush operations until Flush sends them as a unit.
// A Batch is single-use per flush cycle and not safe for concurrent use.
type Batch interface {
	RPush(key string, value []byte)
	// Len reports the number of queued operations.
	Len() int
	// Flush executes the queued operations in order and resets the batch.
	Flush(ctx context.Context) error
}
