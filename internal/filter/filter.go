// Package filter describes the FIR filters driven through the two-channel
// periodic filter bank: single filters with their alignment delay, the
// lowpass/highpass pairs consumed by one transform direction, and complete
// analysis/synthesis banks for the common wavelet families.
package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/matthew-brett/phiwave/internal/mathutil"
)

// ErrInvalidFilter indicates a filter that cannot be used by the engines.
var ErrInvalidFilter = errors.New("invalid filter")

// Filter is an immutable FIR filter description: an ordered coefficient
// sequence plus a non-negative integer delay (alignment offset). The zero
// value is not a usable filter; build one with New.
type Filter struct {
	coeffs []float64
	delay  int
}

// New returns a filter with a private copy of coeffs.
//
// Negative delays are rejected: the engines only define behavior for
// delays >= 0.
func New(coeffs []float64, delay int) (Filter, error) {
	if len(coeffs) == 0 {
		return Filter{}, fmt.Errorf("%w: no coefficients", ErrInvalidFilter)
	}
	if delay < 0 {
		return Filter{}, fmt.Errorf("%w: negative delay %d", ErrInvalidFilter, delay)
	}
	for i, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return Filter{}, fmt.Errorf("%w: coefficient %d is not finite", ErrInvalidFilter, i)
		}
	}

	return Filter{
		coeffs: append([]float64(nil), coeffs...),
		delay:  delay,
	}, nil
}

// MustNew is like New but panics on error. Intended for package-level
// filter tables whose values are known to be valid.
func MustNew(coeffs []float64, delay int) Filter {
	f, err := New(coeffs, delay)
	if err != nil {
		panic(err)
	}
	return f
}

// Len returns the number of taps.
func (f Filter) Len() int { return len(f.coeffs) }

// Delay returns the alignment delay in samples.
func (f Filter) Delay() int { return f.delay }

// IsZero reports whether f is the zero value.
func (f Filter) IsZero() bool { return len(f.coeffs) == 0 }

// At returns coefficient i.
func (f Filter) At(i int) float64 { return f.coeffs[i] }

// Coeffs returns a copy of the coefficients.
func (f Filter) Coeffs() []float64 {
	return append([]float64(nil), f.coeffs...)
}

// Half returns floor(Len/2), the number of odd-indexed taps.
func (f Filter) Half() int { return mathutil.HalfFloor(len(f.coeffs)) }

// HalfCeil returns ceil(Len/2), the number of even-indexed taps.
func (f Filter) HalfCeil() int { return mathutil.HalfCeil(len(f.coeffs)) }

// OddLen reports whether the filter has an odd number of taps.
func (f Filter) OddLen() bool { return mathutil.IsOdd(len(f.coeffs)) }

// OddDelay reports whether the delay is odd.
func (f Filter) OddDelay() bool { return mathutil.IsOdd(f.delay) }

// StartDelay is the subband offset of the first synthesis output. It rounds
// down so that an odd delay leaves room for the leading orphan sample.
func (f Filter) StartDelay() int { return mathutil.HalfFloor(f.delay) }

// EndDelay is the number of subband samples read past the end of the
// segment during synthesis. It rounds up to cover the trailing orphan
// sample, which is not needed when truncating.
func (f Filter) EndDelay(truncate bool) int {
	return mathutil.HalfCeil(f.delay - mathutil.Bool2Int(truncate))
}

// StartWrap is the number of subband samples read before the start of the
// segment during synthesis.
func (f Filter) StartWrap() int {
	return mathutil.Max0(f.HalfCeil()-f.StartDelay()-1, 0)
}

// Reversed returns the coefficients in reverse order.
func (f Filter) Reversed() []float64 {
	n := len(f.coeffs)
	rev := make([]float64, n)
	for i, c := range f.coeffs {
		rev[n-1-i] = c
	}
	return rev
}

// WithDelay returns a copy of f with a different delay.
func (f Filter) WithDelay(delay int) (Filter, error) {
	return New(f.coeffs, delay)
}

// wrapped reduces the delay modulo n, sharing the coefficients.
func (f Filter) wrapped(n int) Filter {
	if n <= 0 || f.delay < n {
		return f
	}
	return Filter{coeffs: f.coeffs, delay: f.delay % n}
}

// Sum returns the sum of the coefficients, the DC gain of the filter.
func (f Filter) Sum() float64 {
	var s float64
	for _, c := range f.coeffs {
		s += c
	}
	return s
}

// String implements fmt.Stringer.
func (f Filter) String() string {
	return fmt.Sprintf("filter(%d taps, delay %d)", len(f.coeffs), f.delay)
}
