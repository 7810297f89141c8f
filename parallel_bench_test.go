package sats

import (
	"testing"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/testutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

// BenchmarkFrequencyResponseSequential benchmarks sequential stereo analysis.
func BenchmarkFrequencyResponseSequential(b *testing.B) {
	benchmarkFrequencyResponse(b, false)
}

// BenchmarkFrequencyResponseParallel benchmarks parallel stereo analysis.
func BenchmarkFrequencyResponseParallel(b *testing.B) {
	benchmarkFrequencyResponse(b, true)
}

func benchmarkFrequencyResponse(b *testing.B, parallel bool) {
	b.Helper()

	freqs := []float64{250, 500, 1000, 2000}
	f := &wavio.File{
		Rate:     testRate,
		BitDepth: 24,
		Samples: [][]float64{
			testutil.Stepped(freqs, 0.5, testRate, 1),
			testutil.Stepped(freqs, 0.25, testRate, 1),
		},
	}

	cfg := DefaultConfig()
	cfg.EnableParallel = parallel
	a, err := New(cfg)
	if err != nil {
		b.Fatalf("Failed to create analyzer: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := a.FrequencyResponse(f); err != nil {
			b.Fatalf("FrequencyResponse failed: %v", err)
		}
	}
}
