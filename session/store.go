// Package session holds per-entity state keyed by session identity.
package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
)

const shardCount = 32

// Store is a concurrent map from session identities to values of type T. Entries are spread over
// shards by the hash of their identity so that unrelated sessions rarely contend on the same lock.
type Store[T any] struct {
	shards [shardCount]shard[T]
}

type shard[T any] struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]T
}

// NewStore returns an empty Store.
func NewStore[T any]() *Store[T] {
	s := &Store[T]{}
	for i := range s.shards {
		s.shards[i].entries = make(map[uuid.UUID]T)
	}
	return s
}

// GetOrCreate returns the value stored for the identity, creating it with create if there is none. The
// boolean is true if the value was created.
func (s *Store[T]) GetOrCreate(id uuid.UUID, create func() T) (T, bool) {
	sh := s.shard(id)
	sh.mu.RLock()
	v, ok := sh.entries[id]
	sh.mu.RUnlock()
	if ok {
		return v, false
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if v, ok := sh.entries[id]; ok {
		return v, false
	}
	v = create()
	sh.entries[id] = v
	return v, true
}

// Get returns the value stored for the identity.
func (s *Store[T]) Get(id uuid.UUID) (T, bool) {
	sh := s.shard(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	v, ok := sh.entries[id]
	return v, ok
}

// Delete removes the value stored for the identity and returns it.
func (s *Store[T]) Delete(id uuid.UUID) (T, bool) {
	sh := s.shard(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	v, ok := sh.entries[id]
	delete(sh.entries, id)
	return v, ok
}

// Len returns the amount of values stored.
func (s *Store[T]) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}

// Range calls f for every value stored until f returns false. f must not modify the store.
func (s *Store[T]) Range(f func(id uuid.UUID, v T) bool) {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		for id, v := range sh.entries {
			if !f(id, v) {
				sh.mu.RUnlock()
				return
			}
		}
		sh.mu.RUnlock()
	}
}

func (s *Store[T]) shard(id uuid.UUID) *shard[T] {
	return &s.shards[xxh3.Hash(id[:])%shardCount]
}
