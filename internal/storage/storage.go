// Package storage provides the dense, growable arrays that hold simulation
// bodies and scratch lists.
package storage

import (
	"fmt"
	"iter"
	"math/bits"
)

const minCapacity = 4

// Consumer receives values one at a time.
type Consumer[T any] interface {
	Accept(value T)
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc[T any] func(value T)

// Accept calls f(value).
func (f ConsumerFunc[T]) Accept(value T) { f(value) }

// Storage is a dense array of T. Indices stay valid until the next
// RemoveAt or Clear; pointers returned by Add and Get stay valid until the
// next call that grows the array.
type Storage[T any] struct {
	items []T
}

// New returns an empty storage with room for at least capacity elements.
func New[T any](capacity int) *Storage[T] {
	return &Storage[T]{items: make([]T, 0, roundCapacity(capacity))}
}

// roundCapacity rounds n up to a power of two, never below minCapacity.
func roundCapacity(n int) int {
	if n <= minCapacity {
		return minCapacity
	}
	return 1 << bits.Len(uint(n-1))
}

func (s *Storage[T]) grow() {
	next := make([]T, len(s.items), roundCapacity(len(s.items)+1))
	copy(next, s.items)
	s.items = next
}

// Add appends a zero value and returns a pointer to it.
func (s *Storage[T]) Add() *T {
	if len(s.items) == cap(s.items) {
		s.grow()
	}
	s.items = s.items[:len(s.items)+1]
	return &s.items[len(s.items)-1]
}

// Push appends value and returns its index.
func (s *Storage[T]) Push(value T) int {
	*s.Add() = value
	return len(s.items) - 1
}

// Accept appends value, making a Storage usable as a Consumer.
func (s *Storage[T]) Accept(value T) {
	s.Push(value)
}

// Get returns a pointer to the element at index i. It panics when i is out
// of range.
func (s *Storage[T]) Get(i int) *T {
	if i < 0 || i >= len(s.items) {
		panic(fmt.Sprintf("storage: index %d out of range [0, %d)", i, len(s.items)))
	}
	return &s.items[i]
}

// RemoveAt moves the last element into slot i and shrinks the storage by
// one. The index of the former last element becomes i.
func (s *Storage[T]) RemoveAt(i int) {
	last := len(s.items) - 1
	if i < 0 || i > last {
		panic(fmt.Sprintf("storage: index %d out of range [0, %d)", i, len(s.items)))
	}
	s.items[i] = s.items[last]
	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
}

// Clear removes every element, zeroing the freed slots.
func (s *Storage[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// Len returns the number of elements.
func (s *Storage[T]) Len() int { return len(s.items) }

// Cap returns the current capacity.
func (s *Storage[T]) Cap() int { return cap(s.items) }

// Items returns the live elements. The slice aliases the storage.
func (s *Storage[T]) Items() []T { return s.items }

// All iterates over index and element pointer pairs.
func (s *Storage[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range s.items {
			if !yield(i, &s.items[i]) {
				return
			}
		}
	}
}

// Snapshot returns a copy of the elements, reusing buf when it is large
// enough.
func (s *Storage[T]) Snapshot(buf []T) []T {
	if cap(buf) < len(s.items) {
		buf = make([]T, len(s.items))
	}
	buf = buf[:len(s.items)]
	copy(buf, s.items)
	return buf
}
