// Package counter provides a sharded progress counter that accepts
// contention-free increments from many goroutines.
//
// Each worker owns one slot for its whole lifetime and only ever writes that
// slot. Readers sum every slot without coordinating with writers:
//
//	c := counter.New(counter.DefaultSlots())
//	go func() { c.Advance(0) }()
//	go func() { c.Advance(1) }()
//	done := c.Sum()
//
// Sum is advisory. Under concurrent writes it may trail the true total by a
// few increments, but it never goes backwards.
package counter

import (
	"runtime"
	"sync/atomic"
)

// cacheLine is the assumed coherency granule on the platforms we target.
const cacheLine = 64

// slot is a single counter padded out to its own cache line so two workers
// never bounce the same line between cores.
type slot struct {
	n atomic.Uint64
	_ [cacheLine - 8]byte
}

// Sharded is a fixed-length array of independent unsigned counters.
type Sharded struct {
	slots []slot
}

// DefaultSlots returns the number of goroutines that can run in parallel,
// never less than 1.
func DefaultSlots() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}

// New allocates a Sharded counter with n zeroed slots.
// Values of n below 1 are raised to 1.
func New(n int) *Sharded {
	if n < 1 {
		n = 1
	}
	return &Sharded{slots: make([]slot, n)}
}

// Advance adds one to slot i. The caller must own slot i exclusively;
// an index outside [0, Len()) panics.
func (s *Sharded) Advance(i int) {
	s.slots[i].n.Add(1)
}

// Sum returns the total across all slots at the moment of traversal.
func (s *Sharded) Sum() uint64 {
	var total uint64
	for i := range s.slots {
		total += s.slots[i].n.Load()
	}
	return total
}

// Len returns the number of slots.
func (s *Sharded) Len() int {
	return len(s.slots)
}
