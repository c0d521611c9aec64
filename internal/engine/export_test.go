package engine

import "github.com/matthew-brett/phiwave/internal/simdops"

// Test hooks for engine internals.
// This file uses the _test.go suffix so it's only included in test builds.

// UseOps swaps the vector kernels, e.g. for the scalar reference table.
func (a *Analyzer) UseOps(ops *simdops.Ops) { a.ops = ops }

// UseOps swaps the vector kernels, e.g. for the scalar reference table.
func (s *Synthesizer) UseOps(ops *simdops.Ops) { s.ops = ops }

// Guards returns the boundary guard lengths of the direct path.
func (a *Analyzer) Guards() (start, end int) {
	if a.buf == nil {
		return 0, 0
	}
	return a.buf.StartWrap(), a.buf.EndWrap()
}

// LowLayout returns the output layout of the lowpass branch.
func (s *Synthesizer) LowLayout() (mainRun int, leading, trailing bool) {
	return s.low.mainRun, s.low.oddDelay, s.low.extra
}

// HasDetailBranch reports whether the highpass branch is built.
func (s *Synthesizer) HasDetailBranch() bool { return s.high != nil }

// LowGuards returns the boundary guard lengths of the lowpass branch.
func (s *Synthesizer) LowGuards() (start, end int) {
	return s.low.buf.StartWrap(), s.low.buf.EndWrap()
}
