package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/matthew-brett/phiwave"
	"github.com/matthew-brett/phiwave/internal/engine"
	"github.com/matthew-brett/phiwave/internal/mathutil"
)

var errTooShort = errors.New("not enough audio frames")

// wavInputInfo holds a decoded input file.
type wavInputInfo struct {
	rate     int
	channels int
	bitDepth int
	frames   int
	samples  *mat.Dense // frames x channels, normalized to [-1, 1]
}

// openWAVInput decodes a whole WAV file into a sample matrix.
func openWAVInput(path string) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = inputFile.Close() }()

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	slog.Debug("input format",
		"rate", format.SampleRate,
		"channels", format.NumChannels,
		"bits", bitDepth)

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	samples, err := deinterleave(buf.Data, format.NumChannels, getMaxValue(bitDepth))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	frames, _ := samples.Dims()

	return &wavInputInfo{
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: bitDepth,
		frames:   frames,
		samples:  samples,
	}, nil
}

// deinterleave normalizes interleaved PCM into a frames x channels matrix.
// Interleaved data is already row-major in that layout.
func deinterleave(data []int, channels int, maxVal float64) (*mat.Dense, error) {
	if channels < 1 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}
	frames := len(data) / channels
	if frames < minFrames {
		return nil, fmt.Errorf("%w: got %d", errTooShort, frames)
	}

	invMaxVal := 1.0 / maxVal
	norm := make([]float64, frames*channels)
	for i := range norm {
		norm[i] = float64(data[i]) * invMaxVal
	}
	return mat.NewDense(frames, channels, norm), nil
}

// interleave clamps a frames x channels matrix to [-1, 1] and converts it
// back to interleaved PCM.
func interleave(m mat.Matrix, maxVal float64) []int {
	frames, channels := m.Dims()
	out := make([]int, frames*channels)
	for i := range frames {
		base := i * channels
		for ch := range channels {
			sample := m.At(i, ch)
			if sample > 1.0 {
				sample = 1.0
			} else if sample < -1.0 {
				sample = -1.0
			}
			out[base+ch] = int(sample * maxVal)
		}
	}
	return out
}

// processOptions configures one run over a sample matrix.
type processOptions struct {
	bank    phiwave.Bank
	mode    mode
	method  engine.Method
	workers int
}

// transformSamples applies one analysis scale to every channel and produces
// the matrix the mode asks for. maxErr is only set in roundtrip mode.
func transformSamples(x *mat.Dense, opts processOptions) (out *mat.Dense, maxErr float64, err error) {
	frames, channels := x.Dims()
	workers := opts.workers
	if workers == 0 {
		workers = defaultWorkers(channels)
	}
	cfg := &phiwave.Config{Workers: workers, Method: opts.method}

	c, err := phiwave.Forward(x, opts.bank.Analysis, cfg)
	if err != nil {
		return nil, 0, fmt.Errorf("forward transform: %w", err)
	}

	if opts.mode == modeSplit {
		rows, _ := c.Dims()
		half := mathutil.HalfFloor(rows)
		low := mat.DenseCopyOf(c.Slice(0, half, 0, channels))
		// Undo the lowpass DC gain so levels match the input.
		if g := opts.bank.Analysis.Low.Sum(); g != 0 {
			low.Scale(1/g, low)
		}
		return low, 0, nil
	}

	cfg.ReconstructDetail = opts.mode == modeRoundTrip
	cfg.Truncate = mathutil.IsOdd(frames)
	y, err := phiwave.Inverse(c, opts.bank.Synthesis, cfg)
	if err != nil {
		return nil, 0, fmt.Errorf("inverse transform: %w", err)
	}

	if opts.mode == modeRoundTrip {
		maxErr = floats.Distance(x.RawMatrix().Data, y.RawMatrix().Data, math.Inf(1))
		slog.Debug("reconstruction", "max_error", maxErr)
	}
	return y, maxErr, nil
}

// outputRate is the sample rate of the file the mode writes.
func outputRate(m mode, inputRate int) int {
	if m == modeSplit {
		return inputRate / subbandRateDivisor
	}
	return inputRate
}

// writeWAVOutput encodes a frames x channels matrix as PCM.
func writeWAVOutput(path string, samples mat.Matrix, sampleRate, bitDepth int) (err error) {
	_, channels := samples.Dims()

	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := outputFile.Close(); err == nil {
			err = closeErr
		}
	}()

	encoder := wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           interleave(samples, getMaxValue(bitDepth)),
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	// Close rewrites the header sizes.
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// processWAV reads inputPath, transforms it and writes outputPath.
func processWAV(inputPath, outputPath string, opts processOptions) (*transformStats, error) {
	input, err := openWAVInput(inputPath)
	if err != nil {
		return nil, err
	}

	out, maxErr, err := transformSamples(input.samples, opts)
	if err != nil {
		return nil, err
	}
	rate := outputRate(opts.mode, input.rate)
	if err := writeWAVOutput(outputPath, out, rate, input.bitDepth); err != nil {
		return nil, err
	}

	outFrames, _ := out.Dims()
	return &transformStats{
		inputRate:     input.rate,
		outputRate:    rate,
		channels:      input.channels,
		bitDepth:      input.bitDepth,
		inputSamples:  input.frames,
		outputSamples: outFrames,
		maxError:      maxErr,
	}, nil
}
