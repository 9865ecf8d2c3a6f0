package crdt

import (
	"cmp"
	"fmt"
	"maps"
)

// LWWSet is a state-based Last-Writer-Wins element set.
//
// Every element carries the highest add timestamp and the highest remove
// timestamp ever observed for it, locally or through Merge. Presence is
// derived from the two: an element is in the set iff its add timestamp is
// strictly greater than its remove timestamp. At equal timestamps the
// remove wins.
//
// Removed elements are tombstoned, never purged, so the state grows
// monotonically with history. That retention is what keeps Merge a
// join-semilattice operation: commutative, associative and idempotent.
//
// E is the element type, T the timestamp type. Timestamps are supplied by
// the caller; the set only requires that they are totally ordered.
type LWWSet[E comparable, T cmp.Ordered] struct {
	add    map[E]T
	remove map[E]T
}

// NewLWWSet returns an empty set.
func NewLWWSet[E comparable, T cmp.Ordered]() *LWWSet[E, T] {
	return &LWWSet[E, T]{
		add:    make(map[E]T),
		remove: make(map[E]T),
	}
}

// Add records an add of e at time t. If e was added before, the higher of
// the two timestamps sticks.
func (s *LWWSet[E, T]) Add(e E, t T) {
	if old, ok := s.add[e]; ok {
		s.add[e] = max(old, t)
	} else {
		s.add[e] = t
	}
}

// Remove records a removal of e at time t. If e was removed before, the
// higher of the two timestamps sticks.
func (s *LWWSet[E, T]) Remove(e E, t T) {
	if old, ok := s.remove[e]; ok {
		s.remove[e] = max(old, t)
	} else {
		s.remove[e] = t
	}
}

// AddExist reports whether e was ever added.
func (s *LWWSet[E, T]) AddExist(e E) bool {
	_, ok := s.add[e]
	return ok
}

// RemoveExist reports whether e was ever removed.
func (s *LWWSet[E, T]) RemoveExist(e E) bool {
	_, ok := s.remove[e]
	return ok
}

// AddTimestamp returns the add timestamp of e, or ErrElementNotAdded if e
// was never added.
func (s *LWWSet[E, T]) AddTimestamp(e E) (T, error) {
	t, ok := s.add[e]
	if !ok {
		return t, fmt.Errorf("%w: %v", ErrElementNotAdded, e)
	}
	return t, nil
}

// RemoveTimestamp returns the remove timestamp of e, or
// ErrElementNotRemoved if e was never removed.
func (s *LWWSet[E, T]) RemoveTimestamp(e E) (T, error) {
	t, ok := s.remove[e]
	if !ok {
		return t, fmt.Errorf("%w: %v", ErrElementNotRemoved, e)
	}
	return t, nil
}

// Contains reports whether e is currently in the set. The remove wins a
// timestamp tie: presence requires the add to be strictly newer.
func (s *LWWSet[E, T]) Contains(e E) bool {
	at, ok := s.add[e]
	if !ok {
		return false
	}
	rt, ok := s.remove[e]
	if !ok {
		return true
	}
	return at > rt
}

// Merge folds the other set's history into s by replaying every recorded
// add and remove. This is the pointwise maximum over both timestamp maps,
// so merging in any order, grouping or repetition converges to the same
// state. The other set is only read.
func (s *LWWSet[E, T]) Merge(other *LWWSet[E, T]) {
	for e, t := range other.add {
		s.Add(e, t)
	}
	for e, t := range other.remove {
		s.Remove(e, t)
	}
}

// Equal reports whether both sets hold exactly the same add and remove
// maps. This is raw-state equality, stronger than having the same
// Contains projection.
func (s *LWWSet[E, T]) Equal(other *LWWSet[E, T]) bool {
	return maps.Equal(s.add, other.add) && maps.Equal(s.remove, other.remove)
}
