// Package mathutil provides the integer helpers shared by the analysis and
// synthesis engines: halving with explicit rounding, parity and clamped maxima.
package mathutil

// halfDivisor is the decimation and upsampling factor of a two-channel bank.
const halfDivisor = 2

// HalfFloor returns floor(n/2), rounding toward negative infinity for
// negative n as well.
func HalfFloor(n int) int {
	if n > 0 {
		return n / halfDivisor
	}
	return n/halfDivisor - (n & 1)
}

// HalfCeil returns ceil(n/2). For negative n Go's truncating division
// already rounds toward positive infinity.
func HalfCeil(n int) int {
	if n > 0 {
		return n/halfDivisor + (n & 1)
	}
	return n / halfDivisor
}

// IsOdd reports whether n is odd. Valid for negative n.
func IsOdd(n int) bool {
	return n&1 != 0
}

// Max returns the larger of a and b.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Max0 returns the largest of a, b and zero.
func Max0(a, b int) int {
	return Max(Max(a, b), 0)
}

// Bool2Int maps false to 0 and true to 1.
func Bool2Int(b bool) int {
	if b {
		return 1
	}
	return 0
}
