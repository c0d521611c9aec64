package gateway

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/matthew-brett/phiwave"
)

// shape records the form the matrix argument arrived in.
type shape int

const (
	shapeMatrix shape = iota // mat.Matrix in, *mat.Dense out
	shapeRows                // [][]float64 in and out
	shapeVector              // []float64 in and out
)

// wrap converts a result back to the caller's form.
func (s shape) wrap(d *mat.Dense) any {
	switch s {
	case shapeRows:
		r, _ := d.Dims()
		rows := make([][]float64, r)
		for i := range rows {
			rows[i] = mat.Row(nil, i, d)
		}
		return rows
	case shapeVector:
		if r, _ := d.Dims(); r == 1 {
			return mat.Row(nil, 0, d)
		}
		return mat.Col(nil, 0, d)
	default:
		return d
	}
}

// banded matches packed band and diagonal storage (mat.Banded and friends).
type banded interface {
	Bandwidth() (kl, ku int)
}

type parsedCall struct {
	matrix mat.Matrix
	shape  shape
	h, g   []float64
	dH, dG int
}

func parseCommon(args []any) (parsedCall, error) {
	var (
		call parsedCall
		err  error
	)
	if call.matrix, call.shape, err = toMatrix(args[argMatrix]); err != nil {
		return parsedCall{}, err
	}
	if call.h, err = toFilter(args[argLowFilter]); err != nil {
		return parsedCall{}, fmt.Errorf("lowpass filter: %w", err)
	}
	if call.g, err = toFilter(args[argHighFilter]); err != nil {
		return parsedCall{}, fmt.Errorf("highpass filter: %w", err)
	}
	if call.dH, err = toInt(args[argLowDelay]); err != nil {
		return parsedCall{}, fmt.Errorf("lowpass delay: %w", err)
	}
	if call.dG, err = toInt(args[argHighDelay]); err != nil {
		return parsedCall{}, fmt.Errorf("highpass delay: %w", err)
	}
	return call, nil
}

// toMatrix accepts real float64 dense data. Complex values are rejected
// before sparse storage, and both before other element types.
func toMatrix(v any) (mat.Matrix, shape, error) {
	switch m := v.(type) {
	case []complex128, [][]complex128, mat.CMatrix:
		return nil, 0, fmt.Errorf("%w: got %T", phiwave.ErrComplexInputUnsupported, v)
	case banded:
		return nil, 0, fmt.Errorf("%w: got %T", phiwave.ErrSparseInputUnsupported, v)
	case mat.Matrix:
		return m, shapeMatrix, nil
	case [][]float64:
		d, err := denseFromRows(m)
		return d, shapeRows, err
	case []float64:
		if len(m) == 0 {
			return nil, 0, phiwave.ErrEmptyInput
		}
		return mat.NewVecDense(len(m), m), shapeVector, nil
	default:
		return nil, 0, fmt.Errorf("%w: got %T", phiwave.ErrUnsupportedElementType, v)
	}
}

func denseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, phiwave.ErrEmptyInput
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidArgument, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// toFilter flattens a coefficient argument. Matrices are read in
// column-major order.
func toFilter(v any) ([]float64, error) {
	switch f := v.(type) {
	case []float64:
		return f, nil
	case mat.Vector:
		c := make([]float64, f.Len())
		for i := range c {
			c[i] = f.AtVec(i)
		}
		return c, nil
	case mat.Matrix:
		r, cols := f.Dims()
		c := make([]float64, 0, r*cols)
		for j := range cols {
			for i := range r {
				c = append(c, f.At(i, j))
			}
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: got %T", phiwave.ErrUnsupportedElementType, v)
	}
}

// toInt reads a delay. Floating-point values are truncated toward zero and
// a slice contributes its first element.
func toInt(v any) (int, error) {
	switch d := v.(type) {
	case int:
		return d, nil
	case int32:
		return int(d), nil
	case int64:
		return int(d), nil
	case float64:
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, fmt.Errorf("%w: non-finite delay %v", ErrInvalidArgument, d)
		}
		return int(d), nil
	case []float64:
		if len(d) == 0 {
			return 0, fmt.Errorf("%w: empty delay", ErrInvalidArgument)
		}
		return toInt(d[0])
	default:
		return 0, fmt.Errorf("%w: got %T", phiwave.ErrUnsupportedElementType, v)
	}
}

// toFlag reads a boolean option. Numbers are truncated to an integer and
// compared with zero.
func toFlag(v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	n, err := toInt(v)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}
