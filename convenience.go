package phiwave

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/matthew-brett/phiwave/internal/mathutil"
)

// ForwardTransform is the positional form of Forward: lowpass h with delay
// dH, highpass g with delay dG.
func ForwardTransform(m mat.Matrix, h, g []float64, dH, dG int) (*mat.Dense, error) {
	p, err := NewPair(h, dH, g, dG)
	if err != nil {
		return nil, err
	}
	return Forward(m, p, nil)
}

// InverseTransform is the positional form of Inverse.
func InverseTransform(m mat.Matrix, h, g []float64, dH, dG int, reconstructDetail, truncate bool) (*mat.Dense, error) {
	p, err := NewPair(h, dH, g, dG)
	if err != nil {
		return nil, err
	}
	return Inverse(m, p, &Config{ReconstructDetail: reconstructDetail, Truncate: truncate})
}

// ForwardVec transforms a single signal. The result holds the lowpass
// subband followed by the highpass subband.
func ForwardVec(x []float64, p Pair) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	out, err := Forward(mat.NewVecDense(len(x), x), p, nil)
	if err != nil {
		return nil, err
	}
	return flatten(out), nil
}

// InverseVec reconstructs a single signal from its subbands. A nil cfg
// means DefaultConfig.
func InverseVec(c []float64, p Pair, cfg *Config) ([]float64, error) {
	if len(c) == 0 {
		return nil, ErrEmptyInput
	}
	out, err := Inverse(mat.NewVecDense(len(c), c), p, cfg)
	if err != nil {
		return nil, err
	}
	return flatten(out), nil
}

// RoundTrip analyzes and resynthesizes x through bank b, truncating the
// padding sample when len(x) is odd.
func RoundTrip(x []float64, b Bank) ([]float64, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	c, err := ForwardVec(x, b.Analysis)
	if err != nil {
		return nil, fmt.Errorf("forward: %w", err)
	}
	y, err := InverseVec(c, b.Synthesis, &Config{
		ReconstructDetail: true,
		Truncate:          mathutil.IsOdd(len(x)),
	})
	if err != nil {
		return nil, fmt.Errorf("inverse: %w", err)
	}
	return y, nil
}

// Split returns the lowpass and highpass halves of a transformed signal.
// The halves alias c.
func Split(c []float64) (low, high []float64) {
	half := len(c) / 2
	return c[:half], c[half:]
}

// flatten returns the single signal of a row or column vector.
func flatten(d *mat.Dense) []float64 {
	if r, _ := d.Dims(); r == rowVectorRows {
		return mat.Row(nil, 0, d)
	}
	return mat.Col(nil, 0, d)
}
