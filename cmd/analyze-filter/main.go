// Command analyze-filter prints diagnostics for the built-in filter banks:
// tap counts, delays, DC and polyphase gains, the magnitude response at a
// few frequencies and the perfect-reconstruction error.
//
// Usage:
//
//	analyze-filter                 # every bank
//	analyze-filter -wavelet d6     # a single bank
//	analyze-filter -size 4096      # finer frequency grid
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"

	"github.com/matthew-brett/phiwave/internal/filter"
)

const (
	defaultResponseSize = 512

	// Expected value of P·H + Q·G for a perfect-reconstruction bank.
	reconstructionTarget = 2.0

	nyquistFrequency = 0.5
)

// probeFrequencies are the normalized frequencies printed in the response
// table, DC through Nyquist.
var probeFrequencies = []float64{0, 0.125, 0.25, 0.375, 0.5}

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer) error {
	wavelet := flag.String("wavelet", "", "Bank to analyze (empty = all)")
	size := flag.Int("size", defaultResponseSize, "FFT length for frequency responses")
	flag.Parse()

	names := filter.Names()
	if *wavelet != "" {
		names = []string{*wavelet}
	}

	for i, name := range names {
		b, err := filter.ByName(name)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		printReport(w, analyzeBank(b, *size))
	}
	return nil
}

// filterReport summarizes one filter of a bank.
type filterReport struct {
	label    string
	taps     int
	delay    int
	dcGain   float64
	evenGain float64
	oddGain  float64
	nyquist  float64
	probesDB []float64
}

// bankReport summarizes a whole bank.
type bankReport struct {
	name              string
	filters           []filterReport
	powerComplement   float64
	reconstructionErr float64
}

func analyzeFilter(label string, f filter.Filter, size int) filterReport {
	ph := filter.Decompose(f)
	resp := filter.FrequencyResponse(f, size)

	probes := make([]float64, len(probeFrequencies))
	last := resp.Len() - 1
	for i, freq := range probeFrequencies {
		k := int(math.Round(freq / nyquistFrequency * float64(last)))
		probes[i] = filter.MagnitudeDB(resp.Magnitude[k])
	}

	return filterReport{
		label:    label,
		taps:     f.Len(),
		delay:    f.Delay(),
		dcGain:   f.Sum(),
		evenGain: floats.Sum(ph.Even),
		oddGain:  floats.Sum(ph.Odd),
		nyquist:  resp.Nyquist(),
		probesDB: probes,
	}
}

func analyzeBank(b filter.Bank, size int) bankReport {
	gain := filter.ReconstructionGain(b, size)
	floats.AddConst(-reconstructionTarget, gain)
	var worst float64
	for _, d := range gain {
		worst = math.Max(worst, math.Abs(d))
	}

	return bankReport{
		name: b.Name,
		filters: []filterReport{
			analyzeFilter("H (analysis lowpass)", b.Analysis.Low, size),
			analyzeFilter("G (analysis highpass)", b.Analysis.High, size),
			analyzeFilter("P (synthesis lowpass)", b.Synthesis.Low, size),
			analyzeFilter("Q (synthesis highpass)", b.Synthesis.High, size),
		},
		powerComplement:   filter.PowerComplementarity(b.Analysis.Low, size),
		reconstructionErr: worst,
	}
}

func printReport(w io.Writer, r bankReport) {
	fmt.Fprintf(w, "=== %s ===\n", r.name)
	for _, f := range r.filters {
		fmt.Fprintf(w, "%s\n", f.label)
		fmt.Fprintf(w, "  Taps: %d, delay: %d\n", f.taps, f.delay)
		fmt.Fprintf(w, "  DC gain: %.10f (even phase %.10f, odd phase %.10f)\n",
			f.dcGain, f.evenGain, f.oddGain)
		fmt.Fprintf(w, "  Nyquist gain: %.10f\n", f.nyquist)
		fmt.Fprintf(w, "  Magnitude (dB):")
		for i, db := range f.probesDB {
			fmt.Fprintf(w, " %.3f@%.3f", db, probeFrequencies[i])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Power complementarity error (H): %.3e\n", r.powerComplement)
	fmt.Fprintf(w, "Reconstruction error |PH+QG-2|: %.3e\n", r.reconstructionErr)
}
