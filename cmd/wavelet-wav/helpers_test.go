package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/matthew-brett/phiwave"
	"github.com/matthew-brett/phiwave/internal/engine"
	"github.com/matthew-brett/phiwave/internal/testutil"
)

const quantStep = 1.0 / maxInt16

// stereoSignal returns a frames x 2 matrix with values well inside [-1, 1].
func stereoSignal(seed uint64, frames int) *mat.Dense {
	left := testutil.RandomSignal(seed, frames)
	right := testutil.RandomSignal(seed+1, frames)
	m := mat.NewDense(frames, 2, nil)
	for i := range frames {
		m.Set(i, 0, 0.5*left[i])
		m.Set(i, 1, 0.5*right[i])
	}
	return m
}

func TestOpenWAVInput_FileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAVInput_InvalidWAV(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.wav")
	err := os.WriteFile(invalidFile, []byte("not a wav file"), 0o644)
	require.NoError(t, err)

	_, err = openWAVInput(invalidFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestWriteWAVOutput_InvalidDirectory(t *testing.T) {
	err := writeWAVOutput("/nonexistent/dir/output.wav", stereoSignal(1, 8), 48000, bitsPerSample16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestWAV_WriteRead(t *testing.T) {
	for _, bits := range []int{bitsPerSample16, bitsPerSample24} {
		path := filepath.Join(t.TempDir(), "signal.wav")
		x := stereoSignal(3, 100)
		require.NoError(t, writeWAVOutput(path, x, 44100, bits))

		input, err := openWAVInput(path)
		require.NoError(t, err)
		assert.Equal(t, 44100, input.rate)
		assert.Equal(t, 2, input.channels)
		assert.Equal(t, bits, input.bitDepth)
		assert.Equal(t, 100, input.frames)
		testutil.AssertMatrixInDelta(t, x, input.samples, 2*quantStep)
	}
}

func TestDeinterleave(t *testing.T) {
	m, err := deinterleave([]int{1, -1, 2, -2, 3, -3}, 2, 10)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.3}, mat.Col(nil, 0, m), 1e-15)
	assert.InDeltaSlice(t, []float64{-0.1, -0.2, -0.3}, mat.Col(nil, 1, m), 1e-15)

	_, err = deinterleave([]int{1, 2}, 2, 10)
	require.ErrorIs(t, err, errTooShort)

	_, err = deinterleave(nil, 1, 10)
	require.ErrorIs(t, err, errTooShort)

	_, err = deinterleave([]int{1, 2}, 0, 10)
	require.Error(t, err)
}

func TestInterleave_Clamps(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1.5, -0.5, 0.25, -3})
	assert.Equal(t, []int{100, -50, 25, -100}, interleave(m, 100))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    mode
		wantErr bool
	}{
		{"smooth", modeSmooth, false},
		{"split", modeSplit, false},
		{"roundtrip", modeRoundTrip, false},
		{"RoundTrip", modeRoundTrip, false},
		{"fft", modeSmooth, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, errUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransformSamples_Smooth(t *testing.T) {
	// A constant has no detail, so the approximation reproduces it.
	x := mat.NewDense(10, 2, nil)
	for i := range 10 {
		x.Set(i, 0, 0.25)
		x.Set(i, 1, -0.5)
	}

	for _, name := range []string{"haar", "d4", "legall53"} {
		bank, err := phiwave.BankByName(name)
		require.NoError(t, err)
		y, maxErr, err := transformSamples(x, processOptions{bank: bank, mode: modeSmooth, method: engine.MethodAuto})
		require.NoError(t, err)
		assert.Zero(t, maxErr)
		testutil.AssertMatrixInDelta(t, x, y, testutil.ReconstructionTolerance)
	}
}

func TestTransformSamples_Split(t *testing.T) {
	tests := []struct {
		name     string
		frames   int
		wantRows int
	}{
		{"even", 8, 4},
		{"odd", 7, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := mat.NewDense(tt.frames, 2, nil)
			for i := range tt.frames {
				x.Set(i, 0, 0.5)
				x.Set(i, 1, 0.5)
			}

			low, _, err := transformSamples(x, processOptions{bank: phiwave.Haar(), mode: modeSplit, workers: 2})
			require.NoError(t, err)
			r, c := low.Dims()
			assert.Equal(t, tt.wantRows, r)
			assert.Equal(t, 2, c)
			// Levels are preserved away from the zero padding.
			assert.InDelta(t, 0.5, low.At(0, 0), testutil.DefaultTolerance)
			assert.InDelta(t, 0.5, low.At(1, 1), testutil.DefaultTolerance)
		})
	}
}

func TestTransformSamples_RoundTrip(t *testing.T) {
	for _, name := range phiwave.BankNames() {
		bank, err := phiwave.BankByName(name)
		require.NoError(t, err)
		for _, frames := range []int{2, 9, 64} {
			x := stereoSignal(uint64(frames), frames)
			y, maxErr, err := transformSamples(x, processOptions{bank: bank, mode: modeRoundTrip})
			require.NoError(t, err, "%s frames=%d", name, frames)
			assert.Less(t, maxErr, testutil.ReconstructionTolerance, "%s frames=%d", name, frames)
			testutil.AssertMatrixInDelta(t, x, y, testutil.ReconstructionTolerance)
		}
	}
}

func TestTransformSamples_InvalidWorkers(t *testing.T) {
	_, _, err := transformSamples(stereoSignal(1, 8), processOptions{bank: phiwave.Haar(), workers: -1})
	require.ErrorIs(t, err, phiwave.ErrInvalidConfig)
}

func TestOutputRate(t *testing.T) {
	assert.Equal(t, 48000, outputRate(modeSmooth, 48000))
	assert.Equal(t, 48000, outputRate(modeRoundTrip, 48000))
	assert.Equal(t, 24000, outputRate(modeSplit, 48000))
}

func TestProcessWAV_Split(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "in.wav")
	out := filepath.Join(tmpDir, "out.wav")
	require.NoError(t, writeWAVOutput(in, stereoSignal(5, 101), 48000, bitsPerSample16))

	stats, err := processWAV(in, out, processOptions{bank: phiwave.LeGall53(), mode: modeSplit})
	require.NoError(t, err)
	assert.Equal(t, 48000, stats.inputRate)
	assert.Equal(t, 24000, stats.outputRate)
	assert.Equal(t, 101, stats.inputSamples)
	assert.Equal(t, 51, stats.outputSamples)

	written, err := openWAVInput(out)
	require.NoError(t, err)
	assert.Equal(t, 24000, written.rate)
	assert.Equal(t, 51, written.frames)
}

func TestProcessWAV_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "in.wav")
	out := filepath.Join(tmpDir, "out.wav")
	require.NoError(t, writeWAVOutput(in, stereoSignal(6, 64), 44100, bitsPerSample16))

	stats, err := processWAV(in, out, processOptions{bank: phiwave.Haar(), mode: modeRoundTrip})
	require.NoError(t, err)
	assert.Less(t, stats.maxError, testutil.ReconstructionTolerance)

	a, err := openWAVInput(in)
	require.NoError(t, err)
	b, err := openWAVInput(out)
	require.NoError(t, err)
	// Requantization can move a sample by at most one step.
	testutil.AssertMatrixInDelta(t, a.samples, b.samples, quantStep+1e-12)
}

func TestGetMaxValue(t *testing.T) {
	assert.InDelta(t, maxInt16, getMaxValue(bitsPerSample16), 0)
	assert.InDelta(t, maxInt24, getMaxValue(bitsPerSample24), 0)
	assert.InDelta(t, maxInt32, getMaxValue(bitsPerSample32), 0)
	assert.InDelta(t, maxInt16, getMaxValue(8), 0)
}
