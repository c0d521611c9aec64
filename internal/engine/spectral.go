package engine

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/matthew-brett/phiwave/internal/filter"
	"github.com/matthew-brett/phiwave/internal/simdops"
)

// spectralPath evaluates both analysis branches as circular convolutions of
// the whole segment in the frequency domain.
//
// Each filter is periodized to the segment length (tap j lands on bin
// j mod n), so the FFT product is exactly the circular convolution the
// direct path computes, for filters of any length.
type spectralPath struct {
	fft   *fourier.FFT
	n     int
	scale float64 // 1/n, gonum's inverse transform is unnormalized

	// Precomputed periodized filter spectra
	lowSpec  []complex128
	highSpec []complex128

	// Working buffers
	signalSpec  []complex128
	productSpec []complex128
	conv        []float64
}

func newSpectralPath(pair filter.Pair, n int) *spectralPath {
	fft := fourier.NewFFT(n)
	bins := n/fftHermitianDivisor + 1

	return &spectralPath{
		fft:         fft,
		n:           n,
		scale:       1.0 / float64(n),
		lowSpec:     fft.Coefficients(make([]complex128, bins), periodize(pair.Low, n)),
		highSpec:    fft.Coefficients(make([]complex128, bins), periodize(pair.High, n)),
		signalSpec:  make([]complex128, bins),
		productSpec: make([]complex128, bins),
		conv:        make([]float64, n),
	}
}

// periodize folds the taps of f onto n samples.
func periodize(f filter.Filter, n int) []float64 {
	p := make([]float64, n)
	for j := range f.Len() {
		p[j%n] += f.At(j)
	}
	return p
}

func (s *spectralPath) process(ops *simdops.Ops, dst, src []float64, pair filter.Pair) {
	half := s.n / decimationFactor
	s.signalSpec = s.fft.Coefficients(s.signalSpec, src)

	s.branch(ops, dst[:half], s.lowSpec, pair.Low.Delay())
	s.branch(ops, dst[half:], s.highSpec, pair.High.Delay())
}

// branch multiplies the signal spectrum by spec, transforms back and keeps
// every second sample starting at delay.
func (s *spectralPath) branch(ops *simdops.Ops, out []float64, spec []complex128, delay int) {
	ops.ComplexMul(s.productSpec, s.signalSpec, spec)
	s.conv = s.fft.Sequence(s.conv, s.productSpec)
	ops.Scale(s.conv, s.conv, s.scale)

	for k := range out {
		out[k] = s.conv[(decimationFactor*k+delay)%s.n]
	}
}
