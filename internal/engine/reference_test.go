package engine

import (
	"github.com/matthew-brett/phiwave/internal/filter"
)

// Closed-form circular filter bank used as ground truth by the engine tests.

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// referenceAnalysis evaluates low[k] = Σ_j x[(2k+dH-j) mod n]·H[j] and the
// matching highpass sum term by term.
func referenceAnalysis(x []float64, pair filter.Pair) []float64 {
	n := len(x)
	half := n / 2
	out := make([]float64, n)
	for k := range half {
		for j := range pair.Low.Len() {
			out[k] += x[mod(2*k+pair.Low.Delay()-j, n)] * pair.Low.At(j)
		}
		for j := range pair.High.Len() {
			out[half+k] += x[mod(2*k+pair.High.Delay()-j, n)] * pair.High.At(j)
		}
	}
	return out
}

// referenceSynthesis evaluates y[m] = Σ L[k]·P[m+eL-2k] + D[k]·Q[m+eH-2k]
// over every tap, with subband indices taken modulo n/2.
func referenceSynthesis(c []float64, pair filter.Pair, cfg SynthesisConfig) []float64 {
	n := len(c)
	half := n / 2
	y := make([]float64, n)

	upsample := func(subband []float64, f filter.Filter) {
		for m := range n {
			for j := range f.Len() {
				t := m + f.Delay() - j
				if mod(t, 2) != 0 {
					continue
				}
				y[m] += subband[mod(t/2, half)] * f.At(j)
			}
		}
	}

	upsample(c[:half], pair.Low)
	if cfg.ReconstructDetail {
		upsample(c[half:], pair.High)
	}
	if cfg.Truncate {
		return y[:n-1]
	}
	return y
}
