package kvstore

import (
	"context"
	"sync"
)

// Memory is an in-memory Store implementation for testing and ephemeral use.
// Thread-safe for concurrent reads and writes.
type Memory struct {
	mu    sync.RWMutex
	lists map[string][][]byte
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		lists: make(map[string][][]byte),
	}
}

// Ping always succeeds.
func (m *Memory) Ping(_ context.Context) error { return nil }

// FlushDB removes every key.
func (m *Memory) FlushDB(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lists = make(map[string][][]byte)
	return nil
}

// RPush appends values to the list at key.
func (m *Memory) RPush(_ context.Context, key string, values ...[]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, v := range values {
		// Copy to prevent external mutation
		copied := make([]byte, len(v))
		copy(copied, v)
		m.lists[key] = append(m.lists[key], copied)
	}
	return nil
}

// LRange returns list elements between start and stop inclusive, with
// negative indices counting from the tail as Redis does.
func (m *Memory) LRange(_ context.Context, key string, start, stop int64) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.lists[key]
	n := int64(len(list))

	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if start >= n || stop < start {
		return nil, nil
	}
	if stop >= n {
		stop = n - 1
	}

	out := make([][]byte, 0, stop-start+1)
	for _, v := range list[start : stop+1] {
		copied := make([]byte, len(v))
		copy(copied, v)
		out = append(out, copied)
	}
	return out, nil
}

// BgSave is a no-op; Memory has no backing disk.
func (m *Memory) BgSave(_ context.Context) error { return nil }

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Keys returns the number of keys currently stored. Test helper.
func (m *Memory) Keys() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.lists)
}

// Batch returns a write batch. Flushing applies the queued pushes in order.
func (m *Memory) Batch() Batch {
	return &memoryBatch{store: m}
}

type memoryBatch struct {
	store *Memory
	ops   []memoryOp
}

type memoryOp struct {
	key   string
	value []byte
}

func (b *memoryBatch) RPush(key string, value []byte) {
	copied := make([]byte, len(value))
	copy(copied, value)
	b.ops = append(b.ops, memoryOp{key: key, value: copied})
}

func (b *memoryBatch) Len() int { return len(b.ops) }

func (b *memoryBatch) Flush(ctx context.Context) error {
	for _, op := range b.ops {
		if err := b.store.RPush(ctx, op.key, op.value); err != nil {
			return err
		}
	}
	b.ops = b.ops[:0]
	return nil
}
