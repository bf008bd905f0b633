// Package store holds the in-memory entity snapshot that the date-scoped
// queries read from. The snapshot is replaced wholesale, never edited in place.
package store

import (
	"sync"
	"time"

	"lifelog/src/domain"
)

// Snapshot is an immutable view of every entity collection.
// Callers must treat the slices as read-only.
type Snapshot struct {
	Journals      []domain.Journal
	Todos         []domain.Todo
	Categories    []domain.Category
	Anniversaries []domain.Anniversary
	Profile       *domain.Profile
	Generation    uint64
	LoadedAt      time.Time
}

// Ticket tags one load request. Only the newest ticket may commit.
type Ticket struct {
	gen uint64
}

func (t Ticket) Generation() uint64 {
	return t.gen
}

// Store owns the current snapshot
type Store struct {
	mu        sync.RWMutex
	current   *Snapshot
	issued    uint64
	committed uint64
	stale     bool
}

// New returns an empty store that reports itself stale
func New() *Store {
	return &Store{stale: true}
}

// Current returns the latest committed snapshot, or nil before the first load
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Stale reports whether the snapshot must be reloaded before use
func (s *Store) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale || s.current == nil
}

// Begin issues a ticket for a new load
func (s *Store) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return Ticket{gen: s.issued}
}

// Commit swaps in snap if t is newer than the committed snapshot.
// A superseded load returns false and leaves the store untouched.
func (s *Store) Commit(t Ticket, snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.gen <= s.committed {
		return false
	}
	snap.Generation = t.gen
	if snap.LoadedAt.IsZero() {
		snap.LoadedAt = time.Now()
	}
	s.current = &snap
	s.committed = t.gen
	// Invalidate以降に発行されたチケットだけがここに到達する
	s.stale = false
	return true
}

// Invalidate marks the snapshot stale after a confirmed mutation.
// Loads already in flight may have read old data, so their tickets are outdated.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale = true
	s.committed = s.issued
}

// Clear drops the snapshot, e.g. on logout
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.stale = true
	s.committed = s.issued
}
