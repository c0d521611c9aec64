package engine

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/matthew-brett/phiwave/internal/boundary"
	"github.com/matthew-brett/phiwave/internal/filter"
	"github.com/matthew-brett/phiwave/internal/mathutil"
	"github.com/matthew-brett/phiwave/internal/simdops"
)

// SynthesisConfig holds the inverse transform options.
type SynthesisConfig struct {
	// ReconstructDetail adds the highpass branch. When false the output is
	// rebuilt from the lowpass half alone.
	ReconstructDetail bool

	// Truncate drops the final output sample, producing n-1 samples. Used
	// to undo the zero padding of an odd-length forward transform.
	Truncate bool
}

// Synthesizer is the inverse engine for segments of a fixed length n.
//
// With synthesis filters P (delay eL) and Q (delay eH) and subbands L and D,
// output sample m is
//
//	y[m] = Σ_k L[k]·P[m+eL-2k] + D[k]·Q[m+eH-2k]
//
// with subband indices taken modulo n/2.
type Synthesizer struct {
	n      int
	half   int
	outLen int
	cfg    SynthesisConfig

	low  *synthBranch
	high *synthBranch // nil unless cfg.ReconstructDetail

	ops *simdops.Ops
}

// synthBranch upsamples one subband through one synthesis filter.
//
// Output samples alternate between the filter's even taps (res1) and odd
// taps (res2). The main run computes both phases with one
// ConvolveValidMulti over the subband and interleaves them; an odd delay
// adds a leading odd-tap sample, and the run may end with one even-tap
// sample.
type synthBranch struct {
	f        filter.Filter
	oddDelay bool
	extra    bool // trailing even-tap sample
	mainRun  int  // number of (res1, res2) pairs

	// kernels[0] is the reversed even phase, kernels[1] the reversed odd
	// phase front-padded to the same length.
	kernels [][]float64
	phases  filter.Phases

	buf       *boundary.Buffer
	phaseBufs [][]float64
	scratch   []float64
}

// NewSynthesizer creates a synthesizer for segments of length n.
func NewSynthesizer(pair filter.Pair, n int, cfg SynthesisConfig) (*Synthesizer, error) {
	if err := pair.Validate(); err != nil {
		return nil, err
	}
	if n < minSegmentLen || mathutil.IsOdd(n) {
		return nil, fmt.Errorf("%w: got %d", ErrOddLength, n)
	}
	pair = pair.Wrapped(n)

	half := n / decimationFactor
	s := &Synthesizer{
		n:      n,
		half:   half,
		outLen: n - mathutil.Bool2Int(cfg.Truncate),
		cfg:    cfg,
		low:    newSynthBranch(pair.Low, half, cfg.Truncate),
		ops:    simdops.Default(),
	}
	if cfg.ReconstructDetail {
		s.high = newSynthBranch(pair.High, half, cfg.Truncate)
	}

	return s, nil
}

func newSynthBranch(f filter.Filter, half int, truncate bool) *synthBranch {
	phases := filter.Decompose(f)
	width := len(phases.Even)

	padded := make([]float64, width)
	copy(padded[width-len(phases.Odd):], phases.Odd)

	oddDelay := f.OddDelay()
	mainRun := half
	if oddDelay || truncate {
		mainRun--
	}

	return &synthBranch{
		f:        f,
		oddDelay: oddDelay,
		extra:    oddDelay != truncate,
		mainRun:  mainRun,
		kernels:  [][]float64{phases.Even, padded},
		phases:   phases,
		buf:      boundary.New(half, f.StartWrap(), f.EndDelay(truncate)),
		phaseBufs: [][]float64{
			make([]float64, mainRun),
			make([]float64, mainRun),
		},
		scratch: make([]float64, decimationFactor*mainRun),
	}
}

// Len returns the input segment length n.
func (s *Synthesizer) Len() int { return s.n }

// OutputLen returns the number of samples Process writes: n, or n-1 when
// truncating.
func (s *Synthesizer) OutputLen() int { return s.outLen }

// Process synthesizes src (length n, lowpass half first) into dst
// (length OutputLen). dst is fully overwritten.
func (s *Synthesizer) Process(dst, src []float64) {
	if len(src) != s.n || len(dst) != s.outLen {
		panic(fmt.Sprintf("engine: synthesizer expects %d->%d samples, got src=%d dst=%d",
			s.n, s.outLen, len(src), len(dst)))
	}

	s.low.run(s.ops, dst, src[:s.half], false)
	if s.high != nil {
		s.high.run(s.ops, dst, src[s.half:], true)
	}
}

// run writes (or, when accumulate is set, adds) the branch output to dst.
func (b *synthBranch) run(ops *simdops.Ops, dst, subband []float64, accumulate bool) {
	b.buf.Load(subband)

	emit := func(out int, v float64) {
		if accumulate {
			dst[out] += v
		} else {
			dst[out] = v
		}
	}

	pos := b.f.StartDelay()
	out := 0

	if b.oddDelay {
		emit(out, b.dot(ops, b.phases.Odd, pos))
		out++
		pos++
	}

	if b.mainRun > 0 {
		width := len(b.phases.Even)
		signal := b.buf.Window(pos-width+1, pos+b.mainRun)
		ops.ConvolveValidMulti(b.phaseBufs, signal, b.kernels)

		span := dst[out : out+decimationFactor*b.mainRun]
		if accumulate {
			ops.Interleave2(b.scratch, b.phaseBufs[0], b.phaseBufs[1])
			floats.Add(span, b.scratch)
		} else {
			ops.Interleave2(span, b.phaseBufs[0], b.phaseBufs[1])
		}
		out += len(span)
		pos += b.mainRun
	}

	if b.extra {
		emit(out, b.dot(ops, b.phases.Even, pos))
	}
}

// dot applies one reversed phase to the subband samples ending at pos.
func (b *synthBranch) dot(ops *simdops.Ops, phase []float64, pos int) float64 {
	if len(phase) == 0 {
		return 0
	}
	return ops.DotProductUnsafe(b.buf.Window(pos-len(phase)+1, pos+1), phase)
}
