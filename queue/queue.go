// Package queue carries level samples from the audio goroutine to the
// refresh goroutine without locks.
package queue

import "sync/atomic"

// cacheLine is the assumed cache line size. The producer and consumer
// counters live on separate lines so the two sides do not false share.
const cacheLine = 64

// Queue is a fixed-capacity single-producer, single-consumer ring of level
// samples.
//
// write and read are monotonically increasing counters; a slot index is the
// counter masked by the power-of-two capacity. The producer owns write, the
// consumer owns read. The queue is empty when read == write and full when
// write-read == capacity.
//
// Ordering: Push stores the slot before it stores write, and TryPop loads
// write before it loads the slot, then stores read after it is done with the
// slot. Push loads read before reusing a slot. sync/atomic operations are
// sequentially consistent, which covers the acquire/release pairing.
//
// Push: producer only. TryPop: consumer only.
type Queue struct {
	write   atomic.Uint64
	dropped atomic.Uint64
	_       [cacheLine - 16]byte
	read    atomic.Uint64
	_       [cacheLine - 8]byte

	buf  []float64
	mask uint64
}

// New returns a queue holding at least capacity samples. The capacity is
// rounded up to the next power of two.
func New(capacity int) *Queue {
	size := 1
	for size < capacity {
		size <<= 1
	}

	return &Queue{
		buf:  make([]float64, size),
		mask: uint64(size - 1),
	}
}

// Push adds v to the queue. It never blocks or allocates. If the queue is
// full, v is dropped, the drop counter is incremented, and Push returns false.
func (q *Queue) Push(v float64) bool {
	w := q.write.Load()
	r := q.read.Load()

	if w-r == uint64(len(q.buf)) {
		q.dropped.Add(1)
		return false
	}

	q.buf[w&q.mask] = v
	q.write.Store(w + 1)

	return true
}

// TryPop removes the oldest sample. It returns false when the queue is empty.
func (q *Queue) TryPop() (float64, bool) {
	r := q.read.Load()
	w := q.write.Load()

	if r == w {
		return 0, false
	}

	v := q.buf[r&q.mask]
	q.read.Store(r + 1)

	return v, true
}

// Len returns the number of samples waiting. The value is a snapshot and may
// be stale by the time it is used.
func (q *Queue) Len() int {
	r := q.read.Load()
	w := q.write.Load()
	return int(w - r)
}

// Cap returns the capacity.
func (q *Queue) Cap() int {
	return len(q.buf)
}

// Dropped returns how many samples Push has discarded because the queue was
// full.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
