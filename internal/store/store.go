// Package store provides a session-scoped, in-memory authoritative
// collection for one entity type. Mutations are applied only after the
// corresponding database write succeeded; the store itself never talks
// to the network.
package store

import (
	"context"
	"sync"
)

// Loader fetches the full collection from the storage collaborator.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Store holds the ordered entity list plus loading/error state. Stores
// are constructed per session and torn down with it; there is no package
// level singleton.
type Store[T any] struct {
	mu      sync.RWMutex
	items   []T
	loading bool
	loadErr error

	idOf   func(T) uint64
	loader Loader[T]
}

// New creates a store. idOf extracts the entity id used by Update/Remove.
func New[T any](idOf func(T) uint64, loader Loader[T]) *Store[T] {
	return &Store[T]{
		idOf:   idOf,
		loader: loader,
	}
}

// LoadAll replaces the collection with a fresh fetch. On failure the
// previous collection is left untouched and the error is recorded. The
// loading flag is cleared in every outcome.
func (s *Store[T]) LoadAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.loadErr = nil
	s.mu.Unlock()

	items, err := s.loader(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.loadErr = err
		return err
	}
	s.items = items
	return nil
}

// Add inserts the entity at the head of the list (newest-first display
// order). No dedup, no re-sort.
func (s *Store[T]) Add(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T{item}, s.items...)
}

// Update replaces the element whose id matches. An unknown id is a
// silent no-op.
func (s *Store[T]) Update(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.idOf(item)
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			s.items[i] = item
			return
		}
	}
}

// Remove filters out the element with the given id. An unknown id is a
// no-op.
func (s *Store[T]) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if s.idOf(item) != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// Snapshot returns a copy of the current collection.
func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the current collection size.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Loading reports whether a LoadAll is in flight.
func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error recorded by the last failed LoadAll, if any.
func (s *Store[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}
