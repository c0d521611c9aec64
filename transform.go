package phiwave

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/matthew-brett/phiwave/internal/engine"
	"github.com/matthew-brett/phiwave/internal/mathutil"
)

// layout is the orientation of a matrix relative to the transform axis.
//
// Columns are the independent signals and rows run along the axis, except
// for a 1×N matrix, which is a single row-vector signal of length N.
type layout struct {
	axis int
	cols int
	row  bool
}

func orient(x mat.Matrix) (layout, error) {
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return layout{}, fmt.Errorf("%w: %d×%d", ErrEmptyInput, r, c)
	}
	if r == rowVectorRows {
		return layout{axis: c, cols: 1, row: true}, nil
	}
	return layout{axis: r, cols: c}, nil
}

// newOutput allocates the result for an axis of length n.
func (l layout) newOutput(n int) *mat.Dense {
	if l.row {
		return mat.NewDense(1, n, nil)
	}
	return mat.NewDense(n, l.cols, nil)
}

// load copies signal j of x into dst.
func (l layout) load(dst []float64, x mat.Matrix, j int) {
	if l.row {
		mat.Row(dst, 0, x)
		return
	}
	mat.Col(dst, j, x)
}

// store writes src as signal j of out.
func (l layout) store(out *mat.Dense, j int, src []float64) {
	if l.row {
		out.SetRow(0, src)
		return
	}
	out.SetCol(j, src)
}

// Forward applies the analysis pair to every column of x.
//
// Each output column holds the lowpass subband followed by the highpass
// subband. An odd-length axis is padded with one trailing zero first, so the
// output axis is the input length rounded up to even. Only cfg.Workers and
// cfg.Method are used.
func Forward(x mat.Matrix, p Pair, cfg *Config) (*mat.Dense, error) {
	cfg, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	lay, err := orient(x)
	if err != nil {
		return nil, err
	}

	n := lay.axis
	if mathutil.IsOdd(n) {
		n += oddAxisPadding
	}
	out := lay.newOutput(n)

	err = runColumns(lay.cols, cfg.Workers, func() (columnFunc, error) {
		a, err := engine.NewAnalyzer(p, n, cfg.Method)
		if err != nil {
			return nil, err
		}
		// in[lay.axis:] is the zero padding and is never written.
		in := make([]float64, n)
		res := make([]float64, n)
		return func(j int) {
			lay.load(in[:lay.axis], x, j)
			a.Process(res, in)
			lay.store(out, j, res)
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Inverse applies the synthesis pair to every column of x, whose axis must
// have even length with the lowpass subband in the first half.
//
// With cfg.Truncate the output axis is one sample shorter than the input.
func Inverse(x mat.Matrix, p Pair, cfg *Config) (*mat.Dense, error) {
	cfg, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	lay, err := orient(x)
	if err != nil {
		return nil, err
	}
	if mathutil.IsOdd(lay.axis) {
		return nil, fmt.Errorf("%w: got %d", ErrOddAxisLength, lay.axis)
	}

	n := lay.axis
	synthCfg := engine.SynthesisConfig{
		ReconstructDetail: cfg.ReconstructDetail,
		Truncate:          cfg.Truncate,
	}
	outLen := n - mathutil.Bool2Int(cfg.Truncate)
	out := lay.newOutput(outLen)

	err = runColumns(lay.cols, cfg.Workers, func() (columnFunc, error) {
		s, err := engine.NewSynthesizer(p, n, synthCfg)
		if err != nil {
			return nil, err
		}
		in := make([]float64, n)
		res := make([]float64, s.OutputLen())
		return func(j int) {
			lay.load(in, x, j)
			s.Process(res, in)
			lay.store(out, j, res)
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
