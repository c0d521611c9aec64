// Package engine implements the two periodic filter bank engines: the
// Analyzer splits an even-length segment into decimated lowpass and
// highpass halves, and the Synthesizer upsamples and recombines them.
//
// Both engines work on one segment at a time, own their scratch storage and
// are not safe for concurrent use.
package engine

import (
	"fmt"

	"github.com/matthew-brett/phiwave/internal/boundary"
	"github.com/matthew-brett/phiwave/internal/filter"
	"github.com/matthew-brett/phiwave/internal/mathutil"
	"github.com/matthew-brett/phiwave/internal/simdops"
)

// Method selects how the Analyzer evaluates its circular convolutions.
type Method int

const (
	// MethodAuto picks MethodSpectral for long filters, MethodDirect otherwise.
	MethodAuto Method = iota
	// MethodDirect evaluates one dot product per output sample.
	MethodDirect
	// MethodSpectral convolves the whole segment through a real FFT.
	MethodSpectral
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodDirect:
		return "direct"
	case MethodSpectral:
		return "spectral"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a method name back to its Method.
func ParseMethod(s string) (Method, error) {
	for _, m := range []Method{MethodAuto, MethodDirect, MethodSpectral} {
		if m.String() == s {
			return m, nil
		}
	}
	return MethodAuto, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
}

// Analyzer is the forward engine for segments of a fixed length n.
//
// For output k in [0, n/2):
//
//	low[k]  = Σ_j x[(2k+dH-j) mod n]·H[j]
//	high[k] = Σ_j x[(2k+dG-j) mod n]·G[j]
//
// Each sum runs over its own filter's taps.
type Analyzer struct {
	pair   filter.Pair
	n      int
	half   int
	method Method

	// Reversed coefficients for forward-running dot products
	revLow  []float64
	revHigh []float64

	buf      *boundary.Buffer
	spectral *spectralPath
	ops      *simdops.Ops
}

// NewAnalyzer creates an analyzer for segments of length n.
func NewAnalyzer(pair filter.Pair, n int, method Method) (*Analyzer, error) {
	if err := pair.Validate(); err != nil {
		return nil, err
	}
	if n < minSegmentLen || mathutil.IsOdd(n) {
		return nil, fmt.Errorf("%w: got %d", ErrOddLength, n)
	}
	pair = pair.Wrapped(n)

	a := &Analyzer{
		pair:    pair,
		n:       n,
		half:    n / decimationFactor,
		revLow:  pair.Low.Reversed(),
		revHigh: pair.High.Reversed(),
		ops:     simdops.Default(),
	}

	switch method {
	case MethodAuto:
		if pair.MaxLen() >= spectralMinTaps {
			method = MethodSpectral
		} else {
			method = MethodDirect
		}
	case MethodDirect, MethodSpectral:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMethod, int(method))
	}
	a.method = method

	if method == MethodSpectral {
		a.spectral = newSpectralPath(pair, n)
		return a, nil
	}

	lenH, dH := pair.Low.Len(), pair.Low.Delay()
	lenG, dG := pair.High.Len(), pair.High.Delay()
	startWrap := mathutil.Max0(lenH-dH-1, lenG-dG-1)
	endWrap := mathutil.Max0(dH, dG)
	a.buf = boundary.New(n, startWrap, endWrap)

	return a, nil
}

// Len returns the segment length.
func (a *Analyzer) Len() int { return a.n }

// Method returns the resolved evaluation method.
func (a *Analyzer) Method() Method { return a.method }

// Process analyzes src (length n) into dst: dst[:n/2] receives the lowpass
// half and dst[n/2:] the highpass half. dst is fully overwritten.
func (a *Analyzer) Process(dst, src []float64) {
	if len(src) != a.n || len(dst) != a.n {
		panic(fmt.Sprintf("engine: analyzer expects %d samples, got src=%d dst=%d", a.n, len(src), len(dst)))
	}

	if a.spectral != nil {
		a.spectral.process(a.ops, dst, src, a.pair)
		return
	}

	a.buf.Load(src)
	a.decimate(dst[:a.half], a.revLow, a.pair.Low.Delay())
	a.decimate(dst[a.half:], a.revHigh, a.pair.High.Delay())
}

// decimate computes out[k] = Σ_j buf[delay+2k-j]·f[j] from the reversed
// coefficients rev.
func (a *Analyzer) decimate(out, rev []float64, delay int) {
	taps := len(rev)
	for k := range out {
		p := delay + decimationFactor*k
		out[k] = a.ops.DotProductUnsafe(a.buf.Window(p-taps+1, p+1), rev)
	}
}
