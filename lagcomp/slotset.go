package lagcomp

import (
	"iter"
	"math/bits"
)

// SlotSet is a set of player slots.
type SlotSet struct {
	words []uint64
}

// Add adds the slot to the set. Negative slots are ignored.
func (s *SlotSet) Add(slot int) {
	if slot < 0 {
		return
	}
	w := slot / 64
	for len(s.words) <= w {
		s.words = append(s.words, 0)
	}
	s.words[w] |= 1 << (slot % 64)
}

// Remove removes the slot from the set.
func (s *SlotSet) Remove(slot int) {
	if slot < 0 || slot/64 >= len(s.words) {
		return
	}
	s.words[slot/64] &^= 1 << (slot % 64)
}

// Has returns true if the slot is in the set.
func (s *SlotSet) Has(slot int) bool {
	if slot < 0 || slot/64 >= len(s.words) {
		return false
	}
	return s.words[slot/64]&(1<<(slot%64)) != 0
}

// Len returns the amount of slots in the set.
func (s *SlotSet) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Clear removes every slot from the set, keeping its storage.
func (s *SlotSet) Clear() {
	clear(s.words)
}

// All returns an iterator over the slots in the set in ascending order.
func (s *SlotSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, w := range s.words {
			for w != 0 {
				bit := bits.TrailingZeros64(w)
				if !yield(i*64 + bit) {
					return
				}
				w &^= 1 << bit
			}
		}
	}
}
