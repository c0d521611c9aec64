// Package boundary implements the periodic guard buffer the filter bank
// engines read from. A segment of n samples is stored between a leading and
// a trailing guard region, and both guards are filled with the samples the
// periodic extension of the segment would place there.
package boundary

import "fmt"

// Buffer is a fixed-capacity working buffer of startWrap+n+endWrap samples.
//
// Positions are addressed relative to the segment: position 0 is the first
// segment sample, negative positions reach into the leading guard and
// positions >= n into the trailing guard. Buffer is not safe for concurrent
// use; each engine owns its own.
type Buffer struct {
	data      []float64
	n         int
	startWrap int
	endWrap   int
}

// New allocates a buffer for segments of n samples. Negative guard lengths
// are treated as zero.
func New(n, startWrap, endWrap int) *Buffer {
	if n < 1 {
		panic(fmt.Sprintf("boundary: segment length %d < 1", n))
	}
	startWrap = max(startWrap, 0)
	endWrap = max(endWrap, 0)

	return &Buffer{
		data:      make([]float64, startWrap+n+endWrap),
		n:         n,
		startWrap: startWrap,
		endWrap:   endWrap,
	}
}

// Load copies segment into the interior and rewrites both guards so that
// At(p) == segment[p mod n] for every p in [-StartWrap(), Len()+EndWrap()).
// Guards longer than the segment wrap around it repeatedly.
func (b *Buffer) Load(segment []float64) {
	if len(segment) != b.n {
		panic(fmt.Sprintf("boundary: segment length %d, buffer expects %d", len(segment), b.n))
	}

	copy(b.data[b.startWrap:], segment)

	// Leading guard: position -1 maps to segment[n-1], and so on backwards.
	for p := 1; p <= b.startWrap; p++ {
		b.data[b.startWrap-p] = segment[b.n-1-(p-1)%b.n]
	}

	// Trailing guard: position n maps to segment[0].
	tail := b.startWrap + b.n
	for p := range b.endWrap {
		b.data[tail+p] = segment[p%b.n]
	}
}

// At returns the sample at segment-relative position p.
func (b *Buffer) At(p int) float64 {
	return b.data[b.startWrap+p]
}

// Window returns the samples at segment-relative positions [from, to) as a
// sub-slice of the buffer. The slice aliases the buffer and is invalidated
// by the next Load.
func (b *Buffer) Window(from, to int) []float64 {
	return b.data[b.startWrap+from : b.startWrap+to]
}

// Data returns the whole buffer, guards included.
func (b *Buffer) Data() []float64 { return b.data }

// Len returns the segment length n.
func (b *Buffer) Len() int { return b.n }

// StartWrap returns the leading guard length.
func (b *Buffer) StartWrap() int { return b.startWrap }

// EndWrap returns the trailing guard length.
func (b *Buffer) EndWrap() int { return b.endWrap }
