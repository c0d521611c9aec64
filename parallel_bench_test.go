package phiwave

import (
	"fmt"
	"testing"

	"github.com/matthew-brett/phiwave/internal/testutil"
)

// BenchmarkForwardWorkers benchmarks multi-column analysis at several
// worker counts.
func BenchmarkForwardWorkers(b *testing.B) {
	benchmarkWorkers(b, true)
}

// BenchmarkInverseWorkers benchmarks multi-column synthesis at several
// worker counts.
func BenchmarkInverseWorkers(b *testing.B) {
	benchmarkWorkers(b, false)
}

func benchmarkWorkers(b *testing.B, forward bool) {
	b.Helper()

	const (
		rows = 44100 // 1 second of audio
		cols = 8     // 7.1 surround
	)

	bank, err := Daubechies(8)
	if err != nil {
		b.Fatalf("Failed to build bank: %v", err)
	}
	x := testutil.RandomMatrix(1, rows, cols)
	c, err := Forward(x, bank.Analysis, nil)
	if err != nil {
		b.Fatalf("Forward failed: %v", err)
	}

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			cfg := DefaultConfig()
			cfg.Workers = workers

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if forward {
					_, err = Forward(x, bank.Analysis, cfg)
				} else {
					_, err = Inverse(c, bank.Synthesis, cfg)
				}
				if err != nil {
					b.Fatalf("transform failed: %v", err)
				}
			}
		})
	}
}
