// Package phiwave implements one scale of a periodic two-channel discrete
// wavelet transform over the columns of a matrix.
//
// The forward transform filters each column with a lowpass and a highpass
// filter, decimates both results by two and stores the lowpass subband
// followed by the highpass subband. The inverse transform upsamples the
// subbands, filters them with a synthesis pair and sums the branches.
// Boundaries are circular: every column is treated as one period of a
// periodic signal, so filters of any length and any non-negative delay can
// be used, including filters longer than the column.
//
// # Quick Start
//
//	bank := phiwave.Haar()
//	x := mat.NewDense(8, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8})
//
//	c, err := phiwave.Forward(x, bank.Analysis, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// c[0:4] ≈ [2.1213 4.9497 7.7782 10.6066], c[4:8] ≈ -0.7071
//
//	y, err := phiwave.Inverse(c, bank.Synthesis, nil)
//	// y ≈ x
//
// # Filter Banks
//
// A [Pair] carries the lowpass and highpass [Filter] of one direction with
// their delays. A [Bank] bundles the analysis pair with the synthesis pair
// that inverts it:
//
//   - [Haar]: orthonormal two-tap bank.
//   - [Daubechies]: orthogonal banks with 2, 4, 6 or 8 taps.
//   - [Orthogonal]: any orthogonal lowpass, with a chosen delay.
//   - [LeGall53]: biorthogonal 5/3 bank with odd lengths and odd delays.
//
// For orthogonal banks the synthesis filters are the time-reversed analysis
// filters and the synthesis delay is len-1 minus the analysis delay.
//
// # Shapes
//
// Rows run along the transform axis and each column is an independent
// signal. A 1×N matrix is a row vector and is transformed along its length.
// Forward pads an odd axis with one zero sample; Inverse with
// [Config.Truncate] removes it again, so
//
//	c, _ := phiwave.Forward(x, bank.Analysis, nil)
//	y, _ := phiwave.Inverse(c, bank.Synthesis, &phiwave.Config{
//	    ReconstructDetail: true,
//	    Truncate:          true,
//	})
//
// reconstructs an odd-length x exactly.
//
// # Errors
//
// All inputs are validated before any numeric work. Failures wrap one of
// the sentinel errors ([ErrOddAxisLength], [ErrInvalidFilter],
// [ErrEmptyInput], [ErrInvalidConfig], ...) and can be tested with
// errors.Is. The gateway subpackage adds the untyped argument checks of a
// host-language binding.
//
// # Concurrency
//
// Columns are independent. With [Config.Workers] > 1 they are split into
// contiguous chunks processed on separate goroutines, each with private
// scratch buffers; the result is identical to sequential processing. The
// functions hold no shared state and are safe for concurrent use.
package phiwave
