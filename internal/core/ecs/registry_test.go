package ecs

import (
	"errors"
	"testing"
)

type ref struct{ n int }

func TestRegistryInsertRemoveRoundTrip(t *testing.T) {
	r := NewRegistry[*ref](10)
	a, b, c, x := &ref{1}, &ref{2}, &ref{3}, &ref{4}
	for _, p := range []*ref{a, b, c} {
		if err := r.Insert(p); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	if err := r.Insert(x); err != nil {
		t.Fatalf("Insert x: %v", err)
	}
	if err := r.Remove(x); err != nil {
		t.Fatalf("Remove x: %v", err)
	}

	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
	for i, want := range []*ref{a, b, c} {
		if got, _ := r.At(i); got != want {
			t.Errorf("At(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestRegistryRemoveMiddlePreservesOrder(t *testing.T) {
	r := NewRegistry[*ref](10)
	a, b, c := &ref{1}, &ref{2}, &ref{3}
	r.Insert(a)
	r.Insert(b)
	r.Insert(c)

	if err := r.Remove(b); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got, _ := r.At(0); got != a {
		t.Errorf("At(0) = %v, want a", got)
	}
	if got, _ := r.At(1); got != c {
		t.Errorf("At(1) = %v, want c", got)
	}
	if _, ok := r.At(2); ok {
		t.Error("At(2) should be empty after removal")
	}
}

func TestRegistryRemoveAbsent(t *testing.T) {
	r := NewRegistry[*ref](4)
	r.Insert(&ref{1})
	if err := r.Remove(&ref{1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(absent) = %v, want ErrNotFound", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d after failed remove, want 1", r.Len())
	}
}

func TestRegistryCapacity(t *testing.T) {
	r := NewRegistry[int](2)
	if err := r.Insert(1); err != nil {
		t.Fatal(err)
	}
	if err := r.Insert(1); err != nil {
		t.Fatalf("duplicate insert should be allowed: %v", err)
	}
	if !r.IsFull() {
		t.Fatal("expected registry to be full")
	}
	if err := r.Insert(3); !errors.Is(err, ErrCapacity) {
		t.Errorf("Insert when full = %v, want ErrCapacity", err)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistryDefaultCapacity(t *testing.T) {
	r := NewRegistry[int](0)
	if r.Cap() != DefaultCapacity {
		t.Errorf("Cap() = %d, want %d", r.Cap(), DefaultCapacity)
	}
}

func TestRegistryAtOutOfRange(t *testing.T) {
	r := NewRegistry[*ref](4)
	r.Insert(&ref{1})
	for _, i := range []int{-1, 1, 5} {
		if got, ok := r.At(i); ok || got != nil {
			t.Errorf("At(%d) = %v, %v; want nil, false", i, got, ok)
		}
	}
}

func TestRegistryClearAndClone(t *testing.T) {
	r := NewRegistry[*ref](4)
	a := &ref{1}
	r.Insert(a)
	c := r.Clone()
	r.Clear()

	if !r.IsEmpty() {
		t.Error("expected empty registry after Clear")
	}
	if a.n != 1 {
		t.Error("Clear must not touch referents")
	}
	if c.Len() != 1 || c.Cap() != 4 {
		t.Errorf("clone Len/Cap = %d/%d, want 1/4", c.Len(), c.Cap())
	}
	if !c.Contains(a) {
		t.Error("clone should still contain a")
	}
}

func TestIDAllocatorMonotonic(t *testing.T) {
	a := NewIDAllocator()
	prev := EntityID(0)
	for i := 0; i < 100; i++ {
		id := a.Next()
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
	if a.Issued() != 100 {
		t.Errorf("Issued() = %d, want 100", a.Issued())
	}
}
