// Package bitqueue implements a bounded first-in first-out queue of bits.
//
// Bits are pushed and popped most significant first, so pushing 0b101 with
// width 3 and then popping 1 bit yields 1.
package bitqueue

import "errors"

// MaxCapacity the largest capacity a queue can be created with
const MaxCapacity = 64

var errOverflow = errors.New("bitqueue: overflow")
var errUnderflow = errors.New("bitqueue: underflow")
var errWidth = errors.New("bitqueue: invalid width")

// Queue bounded bit fifo
type Queue struct {
	bits     uint64 // pending bits live in the low n bits, oldest highest
	n        int
	capacity int
}

// New create queue holding at most capacity bits, capacity is clamped to
// MaxCapacity
func New(capacity int) *Queue {
	if capacity <= 0 || capacity > MaxCapacity {
		capacity = MaxCapacity
	}
	return &Queue{capacity: capacity}
}

func mask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// Len pending bits
func (q *Queue) Len() int {
	return q.n
}

// Push append the low width bits of v
func (q *Queue) Push(v uint64, width int) error {
	if width < 0 || width > MaxCapacity {
		return errWidth
	}
	if q.n+width > q.capacity {
		return errOverflow
	}
	if width == 0 {
		return nil
	}
	if width == 64 {
		q.bits = v
	} else {
		q.bits = (q.bits << width) | (v & mask(width))
	}
	q.n += width
	return nil
}

// Pop remove the width oldest bits
func (q *Queue) Pop(width int) (uint64, error) {
	if width < 0 || width > MaxCapacity {
		return 0, errWidth
	}
	if width > q.n {
		return 0, errUnderflow
	}
	v := (q.bits >> (q.n - width)) & mask(width)
	q.n -= width
	q.bits &= mask(q.n)
	return v, nil
}

// PopPadded remove up to width bits; when fewer are pending the available
// bits are returned left aligned and zero padded to width
func (q *Queue) PopPadded(width int) (uint64, error) {
	if width < 0 || width > MaxCapacity {
		return 0, errWidth
	}
	if width <= q.n {
		return q.Pop(width)
	}
	v := (q.bits << (width - q.n)) & mask(width)
	q.Reset()
	return v, nil
}

// Reset drop every pending bit
func (q *Queue) Reset() {
	q.bits = 0
	q.n = 0
}
