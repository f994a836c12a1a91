package entity

import (
	"iter"

	"github.com/oomph-ac/lagcomp/assert"
	"github.com/oomph-ac/lagcomp/utils"
)

const (
	// DefaultMaxRecords is the sanity ceiling on the amount of snapshots a single history may hold.
	// Eviction by age keeps histories far below it; reaching it means snapshots are not being evicted.
	DefaultMaxRecords = 1000

	initialRecords = 16
)

// History is the per-player record of snapshots, ordered by strictly increasing simulation time.
type History struct {
	records *utils.Ring[Snapshot]
	// strict makes exceeding the record ceiling panic instead of dropping the oldest snapshot.
	strict bool
}

// NewHistory creates an empty history that holds at most maxRecords snapshots.
func NewHistory(maxRecords int, strict bool) *History {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &History{
		records: utils.NewRing[Snapshot](initialRecords, maxRecords),
		strict:  strict,
	}
}

// Append adds s as the newest snapshot. Snapshots that are not newer than the current newest one
// are ignored, and false is returned.
func (h *History) Append(s Snapshot) bool {
	if head, ok := h.records.Newest(); ok && s.SimulationTime <= head.SimulationTime {
		return false
	}
	if h.records.Full() {
		assert.IsTrue(!h.strict, "history exceeded %d records (newest=%f)", h.records.Limit(), s.SimulationTime)
	}
	h.records.Push(s)
	return true
}

// EvictOlderThan drops snapshots from the tail while they are older than cutoff, and returns how
// many were dropped.
func (h *History) EvictOlderThan(cutoff float64) int {
	var evicted int
	for {
		tail, ok := h.records.Oldest()
		if !ok || tail.SimulationTime >= cutoff {
			return evicted
		}
		h.records.Pop()
		evicted++
	}
}

// Len returns the amount of snapshots in the history.
func (h *History) Len() int {
	return h.records.Len()
}

// Newest returns the most recent snapshot.
func (h *History) Newest() (Snapshot, bool) {
	return h.records.Newest()
}

// Oldest returns the oldest retained snapshot.
func (h *History) Oldest() (Snapshot, bool) {
	return h.records.Oldest()
}

// All iterates the history from the newest to the oldest snapshot.
func (h *History) All() iter.Seq[Snapshot] {
	return h.records.Backward()
}

// Clear drops every snapshot.
func (h *History) Clear() {
	h.records.Clear()
}
