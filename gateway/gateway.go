// Package gateway exposes the transforms through an untyped, host-style
// calling convention: a function name, a requested output count and a list
// of positional arguments of arbitrary Go type.
//
// It reproduces the argument checks of a scripting-language binding. Every
// check runs before any numeric work, and failures wrap the phiwave
// sentinel errors:
//
//	out, err := gateway.Call("do_wtx", 1, x, h, g, 1, 1)
//	out, err := gateway.Call("do_iwtx", 1, c, p, q, 0, 0, true, false)
//
// The matrix argument may be a mat.Matrix, a [][]float64 (one slice per
// row) or a []float64 (a column vector). The result has the same form.
package gateway

import (
	"errors"
	"fmt"

	"github.com/matthew-brett/phiwave"
)

// Function names accepted by Call.
const (
	FuncForward      = "do_wtx"
	FuncForwardShort = "wtx"
	FuncInverse      = "do_iwtx"
	FuncInverseShort = "iwtx"
)

// Argument counts.
const (
	forwardArgs    = 5 // matrix, two filters, two delays
	inverseMinArgs = 5
	inverseMaxArgs = 7 // plus reconstruct-detail and truncate flags
	maxOutputs     = 1
)

// Argument positions.
const (
	argMatrix = iota
	argLowFilter
	argHighFilter
	argLowDelay
	argHighDelay
	argDetail
	argTruncate
)

var (
	// ErrUnknownFunction indicates a name Call does not dispatch.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrInvalidArgument indicates a value of an accepted type that cannot
	// be used, such as ragged rows or a non-finite delay.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Call runs the named transform and returns its single output.
//
// nargout is the number of outputs the caller asks for; more than one is
// rejected. Zero is accepted and still yields the result.
func Call(name string, nargout int, args ...any) ([]any, error) {
	switch name {
	case FuncForward, FuncForwardShort:
		return callForward(nargout, args)
	case FuncInverse, FuncInverseShort:
		return callInverse(nargout, args)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
}

// Names lists the function names Call accepts.
func Names() []string {
	return []string{FuncForward, FuncForwardShort, FuncInverse, FuncInverseShort}
}

func checkOutputs(nargout int) error {
	if nargout > maxOutputs {
		return fmt.Errorf("%w: only one output returned, %d requested", phiwave.ErrInvalidArgumentCount, nargout)
	}
	return nil
}

func callForward(nargout int, args []any) ([]any, error) {
	if len(args) != forwardArgs {
		return nil, fmt.Errorf("%w: need matrix, two filters, two delays; got %d arguments",
			phiwave.ErrInvalidArgumentCount, len(args))
	}
	if err := checkOutputs(nargout); err != nil {
		return nil, err
	}

	call, err := parseCommon(args)
	if err != nil {
		return nil, err
	}

	out, err := phiwave.ForwardTransform(call.matrix, call.h, call.g, call.dH, call.dG)
	if err != nil {
		return nil, err
	}
	return []any{call.shape.wrap(out)}, nil
}

func callInverse(nargout int, args []any) ([]any, error) {
	if len(args) < inverseMinArgs || len(args) > inverseMaxArgs {
		return nil, fmt.Errorf("%w: need matrix, two filters, two delays and up to two flags; got %d arguments",
			phiwave.ErrInvalidArgumentCount, len(args))
	}
	if err := checkOutputs(nargout); err != nil {
		return nil, err
	}

	call, err := parseCommon(args)
	if err != nil {
		return nil, err
	}

	detail, truncate := true, false
	if len(args) > argDetail {
		if detail, err = toFlag(args[argDetail]); err != nil {
			return nil, fmt.Errorf("reconstruct detail flag: %w", err)
		}
	}
	if len(args) > argTruncate {
		if truncate, err = toFlag(args[argTruncate]); err != nil {
			return nil, fmt.Errorf("truncate flag: %w", err)
		}
	}

	out, err := phiwave.InverseTransform(call.matrix, call.h, call.g, call.dH, call.dG, detail, truncate)
	if err != nil {
		return nil, err
	}
	return []any{call.shape.wrap(out)}, nil
}
