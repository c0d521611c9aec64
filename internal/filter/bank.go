package filter

import (
	"fmt"
	"math"
	"strings"
)

// Pair is the lowpass/highpass filter pair consumed by one transform
// direction: the analysis pair (H, G) for the forward transform or the
// synthesis pair for the inverse.
type Pair struct {
	Low  Filter
	High Filter
}

// NewPair builds a pair from raw coefficients and delays.
func NewPair(low []float64, lowDelay int, high []float64, highDelay int) (Pair, error) {
	l, err := New(low, lowDelay)
	if err != nil {
		return Pair{}, fmt.Errorf("lowpass: %w", err)
	}
	h, err := New(high, highDelay)
	if err != nil {
		return Pair{}, fmt.Errorf("highpass: %w", err)
	}
	return Pair{Low: l, High: h}, nil
}

// Validate checks that both filters are set.
func (p Pair) Validate() error {
	if p.Low.IsZero() {
		return fmt.Errorf("%w: lowpass filter not set", ErrInvalidFilter)
	}
	if p.High.IsZero() {
		return fmt.Errorf("%w: highpass filter not set", ErrInvalidFilter)
	}
	return nil
}

// Wrapped returns p with both delays reduced modulo n. A circular transform
// of length n depends on each delay only modulo n, and the reduction keeps
// its parity when n is even.
func (p Pair) Wrapped(n int) Pair {
	return Pair{Low: p.Low.wrapped(n), High: p.High.wrapped(n)}
}

// MaxLen returns the length of the longer filter.
func (p Pair) MaxLen() int {
	return max(p.Low.Len(), p.High.Len())
}

// Bank is a perfect-reconstruction filter bank: synthesis applied to the
// output of analysis reproduces the input.
type Bank struct {
	Name      string
	Analysis  Pair
	Synthesis Pair
}

// Validate checks both pairs.
func (b Bank) Validate() error {
	if err := b.Analysis.Validate(); err != nil {
		return fmt.Errorf("%s analysis: %w", b.Name, err)
	}
	if err := b.Synthesis.Validate(); err != nil {
		return fmt.Errorf("%s synthesis: %w", b.Name, err)
	}
	return nil
}

// Wavelet family constants.
const (
	// haarScale is 1/√2, the orthonormal Haar tap.
	haarScale = math.Sqrt2 / 2

	// Supported Daubechies lengths.
	daubTaps2 = 2
	daubTaps4 = 4
	daubTaps6 = 6
	daubTaps8 = 8

	// LeGall 5/3 delays centre each filter on its output sample.
	legallAnalysisDelay  = 2
	legallSynthesisDelay = 1
)

// Daubechies lowpass filters normalized to a sum of √2.
var (
	daub6 = []float64{
		0.33267055295008263, 0.8068915093110925, 0.4598775021184915,
		-0.13501102001025458, -0.08544127388202666, 0.03522629188570953,
	}
	daub8 = []float64{
		0.2303778133088965, 0.7148465705529157, 0.6308807679298589,
		-0.027983769416859854, -0.18703481171909309, 0.030841381835560764,
		0.0328830116668852, -0.010597401785069032,
	}
)

// daub4 returns the closed-form 4-tap Daubechies lowpass filter.
func daub4() []float64 {
	s3 := math.Sqrt(3)
	d := 4 * math.Sqrt2
	return []float64{(1 + s3) / d, (3 + s3) / d, (3 - s3) / d, (1 - s3) / d}
}

// QMF returns the quadrature mirror highpass of an orthogonal lowpass:
// g[n] = (-1)^(n+1)·h[L-1-n].
func QMF(h []float64) []float64 {
	n := len(h)
	g := make([]float64, n)
	for i := range g {
		c := h[n-1-i]
		if i%2 == 0 {
			c = -c
		}
		g[i] = c
	}
	return g
}

// Orthogonal builds an orthogonal bank from an even-length lowpass filter.
//
// The highpass is the QMF of h, both analysis filters use delay, and the
// synthesis filters are their time reversals with delay len(h)-1-delay.
// delay must lie in [0, len(h)-1].
func Orthogonal(name string, h []float64, delay int) (Bank, error) {
	n := len(h)
	if n == 0 || n%2 != 0 {
		return Bank{}, fmt.Errorf("%w: orthogonal lowpass needs an even number of taps, got %d", ErrInvalidFilter, n)
	}
	if delay < 0 || delay > n-1 {
		return Bank{}, fmt.Errorf("%w: delay %d outside [0, %d]", ErrInvalidFilter, delay, n-1)
	}

	g := QMF(h)
	analysis, err := NewPair(h, delay, g, delay)
	if err != nil {
		return Bank{}, err
	}
	synthDelay := n - 1 - delay
	synthesis, err := NewPair(analysis.Low.Reversed(), synthDelay, analysis.High.Reversed(), synthDelay)
	if err != nil {
		return Bank{}, err
	}

	return Bank{Name: name, Analysis: analysis, Synthesis: synthesis}, nil
}

// Haar returns the orthonormal Haar bank: H = [s, s], G = [-s, s] with
// s = 1/√2 and analysis delay 1.
func Haar() Bank {
	b, err := Orthogonal("haar", []float64{haarScale, haarScale}, daubTaps2-1)
	if err != nil {
		panic(err)
	}
	return b
}

// Daubechies returns the orthogonal Daubechies bank with the given number
// of taps (2, 4, 6 or 8) and the default analysis delay taps-1.
func Daubechies(taps int) (Bank, error) {
	var h []float64
	switch taps {
	case daubTaps2:
		return Haar(), nil
	case daubTaps4:
		h = daub4()
	case daubTaps6:
		h = daub6
	case daubTaps8:
		h = daub8
	default:
		return Bank{}, fmt.Errorf("%w: no Daubechies filter with %d taps", ErrInvalidFilter, taps)
	}
	return Orthogonal(fmt.Sprintf("d%d", taps), h, taps-1)
}

// LeGall53 returns the biorthogonal LeGall (CDF) 5/3 bank.
//
// Analysis uses odd-length filters with even delays, synthesis uses odd
// delays, so both orphan-sample paths of the synthesis engine are taken.
func LeGall53() Bank {
	analysis, err := NewPair(
		[]float64{-1.0 / 8, 2.0 / 8, 6.0 / 8, 2.0 / 8, -1.0 / 8}, legallAnalysisDelay,
		[]float64{-1.0 / 2, 1, -1.0 / 2}, legallAnalysisDelay,
	)
	if err != nil {
		panic(err)
	}
	synthesis, err := NewPair(
		[]float64{1.0 / 2, 1, 1.0 / 2}, legallSynthesisDelay,
		[]float64{-1.0 / 8, -2.0 / 8, 6.0 / 8, -2.0 / 8, -1.0 / 8}, legallSynthesisDelay,
	)
	if err != nil {
		panic(err)
	}
	return Bank{Name: "legall53", Analysis: analysis, Synthesis: synthesis}
}

// Names lists the banks known to ByName.
func Names() []string {
	return []string{"haar", "d4", "d6", "d8", "legall53"}
}

// ByName looks up a bank by tap count ("haar", "d2".."d8"), by vanishing
// moments ("db1".."db4") or as "legall53" ("cdf53", "5/3").
func ByName(name string) (Bank, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "haar", "d2", "db1":
		return Haar(), nil
	case "d4", "db2":
		return Daubechies(daubTaps4)
	case "d6", "db3":
		return Daubechies(daubTaps6)
	case "d8", "db4":
		return Daubechies(daubTaps8)
	case "legall53", "cdf53", "5/3":
		return LeGall53(), nil
	default:
		return Bank{}, fmt.Errorf("%w: unknown filter bank %q", ErrInvalidFilter, name)
	}
}
