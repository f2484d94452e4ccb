package history

// Ring is a fixed-size circular buffer addressed by "samples ago", where 0 is
// the most recently pushed value. Once full, each push overwrites the oldest
// value.
type Ring[T any] struct {
	buf     []T
	next    int    // slot the next push writes to
	written uint64 // total pushes
}

// NewRing allocates a ring with size slots. A size below 1 becomes 1.
func NewRing[T any](size int) *Ring[T] {
	if size < 1 {
		size = 1
	}

	return &Ring[T]{buf: make([]T, size)}
}

// Push writes v into the ring.
func (r *Ring[T]) Push(v T) {
	r.buf[r.next] = v

	if r.next++; r.next == len(r.buf) {
		r.next = 0
	}

	r.written++
}

// At returns the value pushed ago pushes before the newest one. It returns
// false if ago does not address a valid value.
func (r *Ring[T]) At(ago int) (T, bool) {
	if ago < 0 || ago >= r.Len() {
		var zero T
		return zero, false
	}

	return r.buf[r.index(ago)], true
}

// Len returns the number of valid values, which never exceeds Cap.
func (r *Ring[T]) Len() int {
	if r.written < uint64(len(r.buf)) {
		return int(r.written)
	}
	return len(r.buf)
}

// Cap returns the number of slots.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Written returns the number of values pushed over the ring's lifetime.
func (r *Ring[T]) Written() uint64 {
	return r.written
}

// index translates ago into a physical slot. ago must be in [0, Cap).
func (r *Ring[T]) index(ago int) int {
	idx := r.next - 1 - ago
	if idx < 0 {
		idx += len(r.buf)
	}
	return idx
}

// span returns the values from ago `to` (older) through ago `from` (newer) in
// physical order, split in two when the range wraps. Both must be valid and
// from <= to.
func (r *Ring[T]) span(from, to int) ([]T, []T) {
	newest := r.index(from)
	oldest := r.index(to)

	if oldest <= newest {
		return r.buf[oldest : newest+1], nil
	}

	return r.buf[oldest:], r.buf[:newest+1]
}
