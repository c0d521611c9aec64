// Package testutil provides reusable test helpers for the wavelet engines
// and the matrix-level transforms.
package testutil

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance        = 1e-10
	ReconstructionTolerance = 1e-9
	ScenarioTolerance       = 1e-4
)

// seedStream is the second word of the PCG seed used by RandomSignal.
const seedStream = 0x5eed

// Ramp returns 1, 2, ..., n.
func Ramp(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i + 1)
	}
	return s
}

// RandomSignal returns n deterministic pseudo-random samples in [-1, 1).
func RandomSignal(seed uint64, n int) []float64 {
	rng := rand.New(rand.NewPCG(seed, seedStream))
	s := make([]float64, n)
	for i := range s {
		s[i] = 2*rng.Float64() - 1
	}
	return s
}

// RandomMatrix returns a rows×cols matrix of RandomSignal samples.
func RandomMatrix(seed uint64, rows, cols int) *mat.Dense {
	return mat.NewDense(rows, cols, RandomSignal(seed, rows*cols))
}

// AssertSliceInDelta verifies two slices are equal length and element-wise
// within tolerance.
func AssertSliceInDelta(t *testing.T, expected, actual []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, expected[i], actual[i], tolerance,
			"mismatch at %d: want %g, got %g", i, expected[i], actual[i]) {
			return false
		}
	}
	return true
}

// AssertMatrixInDelta verifies two matrices share a shape and agree
// element-wise within tolerance.
func AssertMatrixInDelta(t *testing.T, expected, actual mat.Matrix, tolerance float64) bool {
	t.Helper()
	er, ec := expected.Dims()
	ar, ac := actual.Dims()
	if !assert.Equal(t, [2]int{er, ec}, [2]int{ar, ac}, "matrix shape mismatch") {
		return false
	}
	for i := range er {
		for j := range ec {
			want, got := expected.At(i, j), actual.At(i, j)
			if !assert.InDelta(t, want, got, tolerance,
				"mismatch at (%d,%d): want %g, got %g", i, j, want, got) {
				return false
			}
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertDCGain verifies that the sum of coefficients equals the expected DC gain.
func AssertDCGain(t *testing.T, coeffs []float64, expectedGain, tolerance float64) bool {
	t.Helper()
	var sum float64
	for _, c := range coeffs {
		sum += c
	}
	return assert.InDelta(t, expectedGain, sum, tolerance,
		"DC gain = %f, want %f", sum, expectedGain)
}

// AssertEnergy verifies that the squared norm of s equals expected.
func AssertEnergy(t *testing.T, expected float64, s []float64, tolerance float64) bool {
	t.Helper()
	var e float64
	for _, v := range s {
		e += v * v
	}
	return assert.InDelta(t, expected, e, tolerance, "energy = %g, want %g", e, expected)
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}
