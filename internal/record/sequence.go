package record

import "sync/atomic"

// Sequence is a strictly monotonic ID source.
//
// IDs are never derived from wall-clock time: the counter is persisted in
// the store snapshot and reconciled against the stored records before each
// use, so rapid successive creations cannot collide and IDs survive process
// restarts.
//
// Thread-safety: Sequence is safe for concurrent use (atomic operations),
// though the service's single-writer design means only one goroutine
// typically calls Next().
type Sequence struct {
	seq atomic.Int64
}

// NewSequenceAt creates a sequence whose next ID is start+1.
func NewSequenceAt(start int64) *Sequence {
	s := &Sequence{}
	s.seq.Store(start)
	return s
}

// Observe raises the sequence to at least floor. Used to reconcile the
// in-memory counter with the persisted counter and with IDs already present
// in the store (including legacy timestamp-derived IDs).
func (s *Sequence) Observe(floor int64) {
	for {
		cur := s.seq.Load()
		if cur >= floor {
			return
		}
		if s.seq.CompareAndSwap(cur, floor) {
			return
		}
	}
}

// Next returns the next ID and advances the sequence.
// Each call returns a unique, strictly increasing value.
func (s *Sequence) Next() int64 {
	return s.seq.Add(1)
}

// Current returns the last issued ID without advancing.
func (s *Sequence) Current() int64 {
	return s.seq.Load()
}
