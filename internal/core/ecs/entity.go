package ecs

import "strconv"

// EntityID identifies a simulation entity. IDs are handed out in increasing
// order starting at 1 and are never reused, so a stale ID can never alias a
// newer entity.
type EntityID uint64

func (id EntityID) IsZero() bool   { return id == 0 }
func (id EntityID) String() string { return strconv.FormatUint(uint64(id), 10) }

// IDAllocator hands out monotonic entity IDs.
// Single-goroutine access only (frame loop).
type IDAllocator struct {
	next EntityID
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

func (a *IDAllocator) Next() EntityID {
	id := a.next
	a.next++
	return id
}

// Issued returns how many IDs have been allocated so far.
func (a *IDAllocator) Issued() int {
	return int(a.next - 1)
}
