package ecs

import "errors"

// DefaultCapacity is the registry size used when none is configured.
const DefaultCapacity = 1000

var (
	ErrCapacity = errors.New("registry full")
	ErrNotFound = errors.New("not found in registry")
)

// Registry is a fixed-capacity, order-preserving list of references.
// Removal is O(n) and closes the gap so iteration stays dense; frames iterate
// far more often than they remove. Duplicates are not rejected.
type Registry[T comparable] struct {
	items []T
}

func NewRegistry[T comparable](capacity int) *Registry[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry[T]{
		items: make([]T, 0, capacity),
	}
}

// Insert appends ref. Returns ErrCapacity when the registry is full.
func (r *Registry[T]) Insert(ref T) error {
	if r.IsFull() {
		return ErrCapacity
	}
	r.items = append(r.items, ref)
	return nil
}

// Remove deletes the first entry identical to ref, shifting later entries
// left by one. Returns ErrNotFound when ref is absent.
func (r *Registry[T]) Remove(ref T) error {
	for i, item := range r.items {
		if item != ref {
			continue
		}
		copy(r.items[i:], r.items[i+1:])
		var zero T
		r.items[len(r.items)-1] = zero
		r.items = r.items[:len(r.items)-1]
		return nil
	}
	return ErrNotFound
}

// Contains reports whether ref is present.
func (r *Registry[T]) Contains(ref T) bool {
	for _, item := range r.items {
		if item == ref {
			return true
		}
	}
	return false
}

// Clear drops every entry without touching the referents.
func (r *Registry[T]) Clear() {
	clear(r.items)
	r.items = r.items[:0]
}

// At returns the entry at ordinal i, or the zero value and false outside [0, Len).
func (r *Registry[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(r.items) {
		var zero T
		return zero, false
	}
	return r.items[i], true
}

func (r *Registry[T]) Len() int      { return len(r.items) }
func (r *Registry[T]) Cap() int      { return cap(r.items) }
func (r *Registry[T]) IsEmpty() bool { return len(r.items) == 0 }
func (r *Registry[T]) IsFull() bool  { return len(r.items) >= cap(r.items) }

// Clone returns an independent registry with the same capacity and entries.
func (r *Registry[T]) Clone() *Registry[T] {
	c := &Registry[T]{items: make([]T, len(r.items), cap(r.items))}
	copy(c.items, r.items)
	return c
}
