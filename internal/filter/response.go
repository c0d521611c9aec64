package filter

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// defaultResponseSize is the FFT length used when none is given.
	defaultResponseSize = 512

	// hermitianDivisor: a real FFT of size N has N/2+1 unique bins.
	hermitianDivisor = 2

	// Floor and scale for MagnitudeDB.
	minMagnitude = 1e-12
	dbMultiplier = 20.0
)

// Response is the sampled frequency response of a filter, from DC to
// Nyquist inclusive.
type Response struct {
	// Frequencies are normalized to the sample rate (0 to 0.5).
	Frequencies []float64
	Magnitude   []float64
	Phase       []float64

	bins []complex128
}

// FrequencyResponse evaluates the response of f with a real FFT of the
// zero-padded coefficients. size is rounded up to a power of two no
// shorter than the filter; zero selects a default.
func FrequencyResponse(f Filter, size int) Response {
	if size <= 0 {
		size = defaultResponseSize
	}
	n := 1
	for n < size || n < f.Len() {
		n *= 2
	}

	padded := make([]float64, n)
	copy(padded, f.coeffs)
	fft := fourier.NewFFT(n)
	bins := fft.Coefficients(nil, padded)

	resp := Response{
		Frequencies: make([]float64, len(bins)),
		Magnitude:   make([]float64, len(bins)),
		Phase:       make([]float64, len(bins)),
		bins:        bins,
	}
	for k, c := range bins {
		resp.Frequencies[k] = float64(k) / float64(n)
		resp.Magnitude[k] = cmplx.Abs(c)
		resp.Phase[k] = cmplx.Phase(c)
	}
	return resp
}

// Len returns the number of frequency points.
func (r Response) Len() int { return len(r.bins) }

// DC returns the magnitude at zero frequency.
func (r Response) DC() float64 { return r.Magnitude[0] }

// Nyquist returns the magnitude at half the sample rate.
func (r Response) Nyquist() float64 { return r.Magnitude[len(r.Magnitude)-1] }

// PowerComplementarity returns the largest deviation of
// |H(ω)|² + |H(ω+π)|² from 2 over the sampled band. It is zero for the
// lowpass of an orthonormal bank.
func PowerComplementarity(h Filter, size int) float64 {
	r := FrequencyResponse(h, size)
	last := r.Len() - 1
	var worst float64
	for k := range r.Len() {
		// Bin k+N/2 mirrors to N/2-k for a real filter.
		a := r.Magnitude[k]
		b := r.Magnitude[last-k]
		worst = math.Max(worst, math.Abs(a*a+b*b-hermitianDivisor))
	}
	return worst
}

// ReconstructionGain returns the distortion term P(ω)H(ω) + Q(ω)G(ω) of a
// bank, divided by the overall delay phase, at every sampled frequency.
// A perfect-reconstruction bank yields 2 everywhere.
func ReconstructionGain(b Bank, size int) []float64 {
	h := FrequencyResponse(b.Analysis.Low, size)
	g := FrequencyResponse(b.Analysis.High, size)
	p := FrequencyResponse(b.Synthesis.Low, size)
	q := FrequencyResponse(b.Synthesis.High, size)

	gain := make([]float64, h.Len())
	for k := range gain {
		t := p.bins[k]*h.bins[k] + q.bins[k]*g.bins[k]
		gain[k] = cmplx.Abs(t)
	}
	return gain
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
