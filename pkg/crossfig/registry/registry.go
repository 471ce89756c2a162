// Package registry provides a small thread-safe keyed registry with
// deterministic key enumeration. buildenv uses it to hold primitive
// condition forms; it is generic so callers can register anything.
package registry

import (
	"sort"
	"sync"
)

// Registry maps keys to values. The zero value is not usable; create
// with New. Safe for concurrent use.
type Registry[K ~string, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// New creates an empty registry.
func New[K ~string, V any]() *Registry[K, V] {
	return &Registry[K, V]{entries: make(map[K]V)}
}

// Register adds or replaces the value for key.
func (r *Registry[K, V]) Register(key K, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = value
}

// Get returns the value for key and whether it exists.
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	return v, ok
}

// Has reports whether key is registered.
func (r *Registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Keys returns the registered keys in sorted order, so diagnostics that
// enumerate known forms are stable.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]K, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of registered entries.
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
