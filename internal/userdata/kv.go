// Package userdata is the local persistence adapter for all
// personalization state: favorites, lesson and course progress, guide
// progress, and gamification stats. State lives in a namespaced
// key-value store behind the KV interface; the Adapter on top applies
// the fast-path/fallback serialization discipline and never lets a
// background persistence failure reach the caller.
package userdata

import "sync"

// KV is a flat string key-value store. Writes are last-writer-wins;
// there is no transaction or locking across keys.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	// Set stores the value under key, overwriting any prior value.
	Set(key, value string) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns all keys with the given prefix, in unspecified order.
	Keys(prefix string) ([]string, error)
}

// MemoryKV is an in-memory KV used by tests and as an explicit backend.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the stored value and whether the key was present.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores the value under key.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete removes the key.
func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns all keys with the given prefix.
func (m *MemoryKV) Keys(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
