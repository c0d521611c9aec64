// Package simdops collects the vector kernels used by the filter bank
// engines behind one function table, so the engines can run either on the
// SIMD implementations or on the scalar reference versions used in tests.
//
// With Profile-Guided Optimization (Go 1.22+), function pointer calls in hot paths
// can be devirtualized and inlined, achieving near-zero overhead.
package simdops

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
)

// Ops provides float64 vector operations.
type Ops struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []float64) float64

	// ConvolveValidMulti computes dsts[k][i] = Σ_j signal[i+j]·kernels[k][j]
	// for i < len(signal)-len(kernels[k])+1, for every kernel over one signal.
	ConvolveValidMulti func(dsts [][]float64, signal []float64, kernels [][]float64)

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []float64)

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)

	// ComplexMul computes dst[i] = a[i] * b[i].
	ComplexMul func(dst, a, b []complex128)
}

var (
	simdOps = Ops{
		DotProductUnsafe:   f64.DotProductUnsafe,
		ConvolveValidMulti: f64.ConvolveValidMulti,
		Interleave2:        f64.Interleave2,
		Scale:              f64.Scale,
		ComplexMul:         c128.Mul,
	}
	scalarOps = Ops{
		DotProductUnsafe:   dotScalar,
		ConvolveValidMulti: convolveMultiScalar,
		Interleave2:        interleaveScalar,
		Scale:              scaleScalar,
		ComplexMul:         complexMulScalar,
	}
)

// Default returns the SIMD-accelerated operations.
func Default() *Ops {
	return &simdOps
}

// Scalar returns plain-Go reference implementations of the same operations.
func Scalar() *Ops {
	return &scalarOps
}

func dotScalar(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func convolveScalar(dst, signal, kernel []float64) {
	n := min(len(dst), len(signal)-len(kernel)+1)
	for i := range n {
		dst[i] = dotScalar(signal[i:i+len(kernel)], kernel)
	}
}

func convolveMultiScalar(dsts [][]float64, signal []float64, kernels [][]float64) {
	for k, kernel := range kernels {
		convolveScalar(dsts[k], signal, kernel)
	}
}

func interleaveScalar(dst, a, b []float64) {
	n := min(len(a), len(b), len(dst)/2)
	for i := range n {
		dst[2*i] = a[i]
		dst[2*i+1] = b[i]
	}
}

func scaleScalar(dst, a []float64, s float64) {
	for i := range a {
		dst[i] = a[i] * s
	}
}

func complexMulScalar(dst, a, b []complex128) {
	for i := range a {
		dst[i] = a[i] * b[i]
	}
}
