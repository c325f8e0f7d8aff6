package backend

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryBackend is a transient in-memory backend intended for tests.
type MemoryBackend struct {
	mu     sync.Mutex
	arrays map[string][]byte
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemory returns an empty in-memory backend.
func NewMemory() *MemoryBackend {
	return &MemoryBackend{arrays: make(map[string][]byte)}
}

func (m *MemoryBackend) Materialize(uri string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.arrays[uri]; ok {
		return fmt.Errorf("%w: %s", ErrExists, uri)
	}
	m.arrays[uri] = append([]byte(nil), blob...)
	return nil
}

func (m *MemoryBackend) Fetch(uri string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.arrays[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
	}
	return append([]byte(nil), blob...), nil
}

func (m *MemoryBackend) List() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uris := make([]string, 0, len(m.arrays))
	for uri := range m.arrays {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris, nil
}

func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.arrays = nil
	return nil
}
