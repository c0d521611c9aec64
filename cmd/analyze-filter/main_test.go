package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthew-brett/phiwave/internal/filter"
	"github.com/matthew-brett/phiwave/internal/testutil"
)

func TestAnalyzeBank_Haar(t *testing.T) {
	s := math.Sqrt2 / 2
	r := analyzeBank(filter.Haar(), 64)

	assert.Equal(t, "haar", r.name)
	require.Len(t, r.filters, 4)

	h := r.filters[0]
	assert.Equal(t, 2, h.taps)
	assert.Equal(t, 1, h.delay)
	testutil.AssertRelativeError(t, math.Sqrt2, h.dcGain, 1e-12)
	assert.InDelta(t, s, h.evenGain, 1e-12)
	assert.InDelta(t, s, h.oddGain, 1e-12)
	assert.InDelta(t, 0, h.nyquist, 1e-12)
	require.Len(t, h.probesDB, len(probeFrequencies))
	assert.InDelta(t, 20*math.Log10(math.Sqrt2), h.probesDB[0], 1e-9)

	g := r.filters[1]
	assert.InDelta(t, 0, g.dcGain, 1e-12)
	assert.InDelta(t, math.Sqrt2, g.nyquist, 1e-12)

	assert.Less(t, r.powerComplement, 1e-12)
	assert.Less(t, r.reconstructionErr, 1e-12)
}

func TestAnalyzeBank_AllBanksReconstruct(t *testing.T) {
	for _, name := range filter.Names() {
		b, err := filter.ByName(name)
		require.NoError(t, err)
		r := analyzeBank(b, 0)
		assert.Less(t, r.reconstructionErr, 1e-8, name)
		// The lowpass passes DC and the highpass blocks it.
		assert.Greater(t, r.filters[0].dcGain, 0.0, name)
		assert.InDelta(t, 0, r.filters[1].dcGain, 1e-9, name)
		// Perfect reconstruction at DC needs H(1)·P(1) = 2.
		testutil.AssertRelativeError(t, 2, r.filters[0].dcGain*r.filters[2].dcGain, 1e-9, name)
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, analyzeBank(filter.LeGall53(), 0))

	out := buf.String()
	assert.Contains(t, out, "=== legall53 ===")
	assert.Contains(t, out, "H (analysis lowpass)")
	assert.Contains(t, out, "Taps: 5, delay: 2")
	assert.Contains(t, out, "DC gain: 1.0000000000")
	assert.Contains(t, out, "Reconstruction error")
}
