// Package registry provides a small concurrency-safe registry keyed by ID.
// Providers register themselves in init() functions, allowing consumers to
// discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Info contains metadata about a registered entry.
type Info struct {
	ID    string
	Title string
}

// Registry maps IDs to values of type T.
type Registry[T any] struct {
	kind    string // used in error and panic messages, e.g. "format"
	mu      sync.RWMutex
	entries map[string]T
	titles  map[string]string
}

// New creates an empty registry. kind names what is being registered.
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:    kind,
		entries: make(map[string]T),
		titles:  make(map[string]string),
	}
}

// Register adds an entry to the registry.
// Typically called from an init() function.
// Panics if an entry with the same ID is already registered.
func (r *Registry[T]) Register(id, title string, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		panic(fmt.Sprintf("registry: %s %q already registered", r.kind, id))
	}

	r.entries[id] = v
	r.titles[id] = title
}

// List returns information about all registered entries, sorted by ID.
func (r *Registry[T]) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.entries))
	for id := range r.entries {
		result = append(result, Info{
			ID:    id,
			Title: r.titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the entry registered under id.
// Returns an error if the ID is not registered.
func (r *Registry[T]) Get(id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.entries[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("registry: unknown %s %q", r.kind, id)
	}

	return v, nil
}

// Exists checks if an entry with the given ID is registered.
func (r *Registry[T]) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[id]
	return ok
}
