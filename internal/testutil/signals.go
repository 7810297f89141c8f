package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

// Common test sample rates.
const (
	Rate44100 = 44100
	Rate48000 = 48000
)

const wavFormatPCM = 1

// Sine returns seconds of a sine at freq Hz with peak amplitude amp.
func Sine(freq, amp float64, rate int, seconds float64) []float64 {
	n := int(seconds * float64(rate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return out
}

// Silence returns seconds of digital silence.
func Silence(rate int, seconds float64) []float64 {
	return make([]float64, int(seconds*float64(rate)))
}

// Concat joins signal segments.
func Concat(parts ...[]float64) []float64 {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]float64, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Stepped builds a stepped-sine signal with one dwell of seconds per frequency.
func Stepped(freqs []float64, amp float64, rate int, seconds float64) []float64 {
	parts := make([][]float64, len(freqs))
	for i, f := range freqs {
		parts[i] = Sine(f, amp, rate, seconds)
	}
	return Concat(parts...)
}

// WriteWAV writes channels as an integer PCM WAV file in a temporary
// directory and returns its path. Samples are clipped to [-1, 1].
func WriteWAV(t *testing.T, name string, rate, bitDepth int, channels ...[]float64) string {
	t.Helper()
	require.NotEmpty(t, channels, "at least one channel")

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	enc := wav.NewEncoder(f, rate, bitDepth, len(channels), wavFormatPCM)

	frames := len(channels[0])
	full := float64(int64(1)<<(bitDepth-1)) - 1
	data := make([]int, frames*len(channels))
	for i := range frames {
		for ch, samples := range channels {
			v := max(-1, min(1, samples[i]))
			data[i*len(channels)+ch] = int(math.Round(v * full))
		}
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	return path
}
