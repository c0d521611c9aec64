package engine

import "errors"

// Filter bank geometry constants
const (
	// Decimation (analysis) and upsampling (synthesis) factor
	decimationFactor = 2

	// Smallest segment the engines accept
	minSegmentLen = 2
)

// Spectral path constants
const (
	// Longest-filter length at which MethodAuto switches to the FFT path.
	// Below this the SIMD dot products win for the segment sizes the
	// transforms are used with.
	spectralMinTaps = 64

	// fftHermitianDivisor: a real FFT of size N has N/2 + 1 unique bins.
	fftHermitianDivisor = 2
)

// Engine errors.
var (
	// ErrOddLength is returned for segments that are odd or shorter than two.
	ErrOddLength = errors.New("segment length must be even and at least 2")

	// ErrInvalidMethod is returned for an unknown analysis method.
	ErrInvalidMethod = errors.New("invalid analysis method")
)
