package docstore

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Memory is an in-process Backend. Update works on a copy that replaces the
// live map only when fn succeeds.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

// OpenMemory returns a Store backed by a fresh Memory backend.
func OpenMemory() *Tree {
	return NewTree(NewMemory())
}

func (m *Memory) View(ctx context.Context, fn func(Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(memTxn{data: m.data, readOnly: true})
}

func (m *Memory) Update(ctx context.Context, fn func(Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	next := maps.Clone(m.data)
	if err := fn(memTxn{data: next}); err != nil {
		return err
	}
	m.data = next
	return nil
}

func (m *Memory) Close() error { return nil }

var errReadOnly = errors.New("write in read-only transaction")

type memTxn struct {
	data     map[string][]byte
	readOnly bool
}

func (t memTxn) Get(key string) ([]byte, bool, error) {
	v, ok := t.data[key]
	return v, ok, nil
}

func (t memTxn) Put(key string, value []byte) error {
	if t.readOnly {
		return errReadOnly
	}
	t.data[key] = slices.Clone(value)
	return nil
}

func (t memTxn) Delete(key string) error {
	if t.readOnly {
		return errReadOnly
	}
	delete(t.data, key)
	return nil
}

func (t memTxn) Scan(prefix string, fn func(string, []byte) error) error {
	keys := make([]string, 0)
	for k := range t.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := fn(k, t.data[k]); err != nil {
			return err
		}
	}
	return nil
}
