package utils

import "iter"

// Ring is a circular queue that grows on demand up to a fixed limit. Once the limit is reached,
// pushing a new item overwrites the oldest one.
type Ring[T any] struct {
	items []T
	head  int // index of the oldest item
	size  int
	limit int
}

// NewRing creates a ring with room for initial items that may grow to hold at most limit items.
func NewRing[T any](initial, limit int) *Ring[T] {
	if limit < 1 {
		limit = 1
	}
	initial = min(max(initial, 1), limit)
	return &Ring[T]{
		items: make([]T, initial),
		limit: limit,
	}
}

// Push appends item as the newest element. It returns true if the oldest element had to be
// overwritten because the ring was at its limit.
func (r *Ring[T]) Push(item T) (overwrote bool) {
	if r.size == len(r.items) {
		if len(r.items) < r.limit {
			r.grow()
		} else {
			r.items[r.head] = item
			r.head = (r.head + 1) % len(r.items)
			return true
		}
	}
	r.items[(r.head+r.size)%len(r.items)] = item
	r.size++
	return false
}

// Pop removes and returns the oldest element. The boolean ok is false if the ring is empty.
func (r *Ring[T]) Pop() (item T, ok bool) {
	if r.size == 0 {
		return item, false
	}
	var zero T
	item = r.items[r.head]
	r.items[r.head] = zero
	r.head = (r.head + 1) % len(r.items)
	r.size--
	return item, true
}

// Oldest returns the oldest element in the ring.
func (r *Ring[T]) Oldest() (item T, ok bool) {
	if r.size == 0 {
		return item, false
	}
	return r.items[r.head], true
}

// Newest returns the most recently pushed element in the ring.
func (r *Ring[T]) Newest() (item T, ok bool) {
	if r.size == 0 {
		return item, false
	}
	return r.items[(r.head+r.size-1)%len(r.items)], true
}

// All iterates the ring from the oldest to the newest element.
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range r.size {
			if !yield(r.items[(r.head+index)%len(r.items)]) {
				return
			}
		}
	}
}

// Backward iterates the ring from the newest to the oldest element.
func (r *Ring[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := r.size - 1; index >= 0; index-- {
			if !yield(r.items[(r.head+index)%len(r.items)]) {
				return
			}
		}
	}
}

// Len returns the number of elements currently stored.
func (r *Ring[T]) Len() int {
	return r.size
}

// Limit returns the maximum number of elements the ring will hold.
func (r *Ring[T]) Limit() int {
	return r.limit
}

// Full returns true if the next Push will overwrite the oldest element.
func (r *Ring[T]) Full() bool {
	return r.size == r.limit
}

// Clear removes every element from the ring, keeping the allocated storage.
func (r *Ring[T]) Clear() {
	clear(r.items)
	r.head = 0
	r.size = 0
}

func (r *Ring[T]) grow() {
	items := make([]T, min(len(r.items)*2, r.limit))
	for index := range r.size {
		items[index] = r.items[(r.head+index)%len(r.items)]
	}
	r.items = items
	r.head = 0
}
