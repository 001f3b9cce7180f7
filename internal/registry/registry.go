// Package registry maps stable string identifiers to constructors.
// Level data names classes by key ("Enemy", "PlayerSpell", ...); the
// loader resolves every key through a Registry so an unknown key is a
// load-time error rather than a crash in the middle of a level.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknown is returned by Create for an unregistered identifier.
var ErrUnknown = errors.New("registry: unknown identifier")

// Decoder fills v from the constructor arguments of a definition.
type Decoder func(v any) error

// Factory builds a value from its decoded arguments.
type Factory[T any] func(decode Decoder) (T, error)

// Registry is a named set of factories. It is safe for concurrent use.
type Registry[T any] struct {
	kind      string
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

// New returns an empty registry. kind names the registered values in
// error messages, e.g. "character" or "item".
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, factories: make(map[string]Factory[T])}
}

// Register adds a factory.
// Typically called from an init() function.
// Panics if the identifier is already registered.
func (r *Registry[T]) Register(id string, f Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: %s %q already registered", r.kind, id))
	}
	r.factories[id] = f
}

// Create builds a value with the factory registered under id.
func (r *Registry[T]) Create(id string, decode Decoder) (T, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %q", ErrUnknown, r.kind, id)
	}
	v, err := f(decode)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("registry: %s %q: %w", r.kind, id, err)
	}
	return v, nil
}

// Exists checks if a factory with the given identifier is registered.
func (r *Registry[T]) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}

// List returns the registered identifiers, sorted.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
