package phiwave

import (
	"errors"
	"fmt"

	"github.com/matthew-brett/phiwave/internal/engine"
	"github.com/matthew-brett/phiwave/internal/filter"
)

// Filter is an FIR filter with its alignment delay.
type Filter = filter.Filter

// Pair is the lowpass/highpass filter pair used by one transform direction.
type Pair = filter.Pair

// Bank bundles a perfect-reconstruction analysis and synthesis pair.
type Bank = filter.Bank

// Method selects the forward transform evaluation strategy.
type Method = engine.Method

const (
	// MethodAuto uses the spectral path for long filters.
	MethodAuto = engine.MethodAuto
	// MethodDirect evaluates one dot product per output sample.
	MethodDirect = engine.MethodDirect
	// MethodSpectral convolves whole columns through a real FFT.
	MethodSpectral = engine.MethodSpectral
)

// Common errors returned by the transforms.
var (
	// ErrInvalidArgumentCount indicates too few or too many inputs, or more
	// than one requested output.
	ErrInvalidArgumentCount = errors.New("invalid argument count")

	// ErrUnsupportedElementType indicates a matrix that is not float64.
	ErrUnsupportedElementType = errors.New("input matrix should be of class double")

	// ErrComplexInputUnsupported indicates a matrix with an imaginary part.
	ErrComplexInputUnsupported = errors.New("cannot transform complex matrix")

	// ErrSparseInputUnsupported indicates a matrix in sparse or packed storage.
	ErrSparseInputUnsupported = errors.New("cannot transform sparse matrix")

	// ErrOddAxisLength indicates an inverse transform over an odd-length axis.
	ErrOddAxisLength = errors.New("length of transform axis must be divisible by 2")

	// ErrEmptyInput indicates a matrix with no samples.
	ErrEmptyInput = errors.New("empty input matrix")

	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid transform configuration")

	// ErrInvalidFilter indicates an unusable filter or filter pair.
	ErrInvalidFilter = filter.ErrInvalidFilter
)

// Config holds the transform options. A nil *Config means DefaultConfig.
type Config struct {
	// ReconstructDetail adds the highpass contribution in Inverse. When
	// false the result is the approximation from the lowpass half alone.
	ReconstructDetail bool

	// Truncate drops the last sample of every column after Inverse, undoing
	// the padding Forward applies to odd-length axes.
	Truncate bool

	// Workers is the number of goroutines the columns are split across.
	// Zero or one processes columns sequentially.
	Workers int

	// Method selects how Forward evaluates its convolutions.
	Method Method
}

// DefaultConfig returns the defaults: full reconstruction, no truncation,
// sequential processing and automatic method selection.
func DefaultConfig() *Config {
	return &Config{ReconstructDetail: true}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if c.Workers > maxWorkers {
		return fmt.Errorf("%w: too many workers (max %d)", ErrInvalidConfig, maxWorkers)
	}
	switch c.Method {
	case MethodAuto, MethodDirect, MethodSpectral:
	default:
		return fmt.Errorf("%w: unknown method %v", ErrInvalidConfig, c.Method)
	}
	return nil
}

// resolveConfig substitutes the defaults for nil and validates.
func resolveConfig(cfg *Config) (*Config, error) {
	if cfg == nil {
		return DefaultConfig(), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewFilter returns a filter with a private copy of coeffs. The delay must
// not be negative.
func NewFilter(coeffs []float64, delay int) (Filter, error) {
	return filter.New(coeffs, delay)
}

// NewPair builds a filter pair from raw coefficients and delays.
func NewPair(low []float64, lowDelay int, high []float64, highDelay int) (Pair, error) {
	return filter.NewPair(low, lowDelay, high, highDelay)
}

// Haar returns the orthonormal Haar bank.
func Haar() Bank { return filter.Haar() }

// Daubechies returns the orthogonal Daubechies bank with 2, 4, 6 or 8 taps.
func Daubechies(taps int) (Bank, error) { return filter.Daubechies(taps) }

// LeGall53 returns the biorthogonal LeGall 5/3 bank.
func LeGall53() Bank { return filter.LeGall53() }

// Orthogonal builds an orthogonal bank from an even-length lowpass filter
// and an analysis delay in [0, len(h)-1].
func Orthogonal(name string, h []float64, delay int) (Bank, error) {
	return filter.Orthogonal(name, h, delay)
}

// BankByName looks up one of the built-in banks.
func BankByName(name string) (Bank, error) { return filter.ByName(name) }

// BankNames lists the built-in banks.
func BankNames() []string { return filter.Names() }
