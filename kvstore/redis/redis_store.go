package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/csvkv/kvstore"
)

// Store implements kvstore.Store backed by a Redis server. The namespace is
// the Redis logical database selected at dial time; by default Redis serves
// indexes 0 through 15.
type Store struct {
	client *redis.Client
}

// New dials a Redis server and binds the handle to the given database index.
// The connection is lazy; call Ping to verify the server is actually there.
func New(addr, password string, db int) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// NewFromClient wraps an existing client, e.g. one with custom TLS or pool
// settings.
func NewFromClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Ping verifies the server is reachable and serving.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// FlushDB removes every key in the selected database.
func (s *Store) FlushDB(ctx context.Context) error {
	return s.client.FlushDB(ctx).Err()
}

// RPush appends values to the tail of the list at key.
func (s *Store) RPush(ctx context.Context, key string, values ...[]byte) error {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return s.client.RPush(ctx, key, args...).Err()
}

// LRange returns list elements between start and stop inclusive.
func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	vals, err := s.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = []byte(v)
	}
	return out, nil
}

// BgSave asks the server for a background save so a restart can recover the
// loaded data.
func (s *Store) BgSave(ctx context.Context) error {
	return s.client.BgSave(ctx).Err()
}

// Close releases the client's connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

// Batch returns a write batch backed by a Redis pipeline, so a bulk load
// spends one round trip per flush instead of one per record.
func (s *Store) Batch() kvstore.Batch {
	return &batch{pipe: s.client.Pipeline()}
}

type batch struct {
	pipe redis.Pipeliner
	n    int
}

func (b *batch) RPush(key string, value []byte) {
	b.pipe.RPush(context.Background(), key, value)
	b.n++
}

func (b *batch) Len() int { return b.n }

func (b *batch) Flush(ctx context.Context) error {
	_, err := b.pipe.Exec(ctx)
	b.n = 0
	return err
}
