package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/filter"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/testutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

const testRate = 48000

func lowPass(t *testing.T) []float64 {
	t.Helper()
	p := filter.LowPass{Rate: testRate, Cutoff: 5000, Transition: 1000, Attenuation: 80}
	h, err := p.Design()
	require.NoError(t, err)
	return h
}

func rms(s []float64) float64 {
	var sum float64
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(s)))
}

func TestFilterChannels_BlockSizeIndependent(t *testing.T) {
	h := lowPass(t)
	in := [][]float64{testutil.Sine(1000, 0.5, testRate, 0.2)}

	whole, err := filterChannels(h, in, len(in[0]), false)
	require.NoError(t, err)
	blocked, err := filterChannels(h, in, 333, false)
	require.NoError(t, err)

	assert.InDeltaSlice(t, whole[0], blocked[0], 1e-12)
}

func TestFilterChannels_ParallelMatchesSequential(t *testing.T) {
	h := lowPass(t)
	in := [][]float64{
		testutil.Sine(1000, 0.5, testRate, 0.2),
		testutil.Sine(9000, 0.5, testRate, 0.2),
		testutil.Sine(300, 0.1, testRate, 0.2),
	}

	seq, err := filterChannels(h, in, blockSize(testRate), false)
	require.NoError(t, err)
	par, err := filterChannels(h, in, blockSize(testRate), true)
	require.NoError(t, err)
	require.Equal(t, seq, par)
}

func TestFilterChannels_NoCoefficients(t *testing.T) {
	_, err := filterChannels(nil, [][]float64{{1, 2}}, 1, false)
	require.Error(t, err)
}

func TestCompensate(t *testing.T) {
	out := compensate([][]float64{{0, 0, 1, 2, 3}, {1}}, 2)
	assert.Equal(t, []float64{1, 2, 3, 0, 0}, out[0])
	assert.Equal(t, []float64{0}, out[1])
}

// TestRun filters a two-tone file and checks that only the low tone is left.
func TestRun(t *testing.T) {
	low := testutil.Sine(1000, 0.4, testRate, 1)
	high := testutil.Sine(15000, 0.4, testRate, 1)
	mix := make([]float64, len(low))
	for i := range mix {
		mix[i] = low[i] + high[i]
	}
	in := testutil.WriteWAV(t, "in.wav", testRate, 16, mix)
	out := filepath.Join(t.TempDir(), "out.wav")

	require.NoError(t, run(&CLI{
		Input:       in,
		Output:      out,
		Cutoff:      5000,
		Transition:  1000,
		Attenuation: 80,
		Compensate:  true,
	}))

	f, err := wavio.Open(out)
	require.NoError(t, err)
	assert.Equal(t, testRate, f.Rate)
	assert.Equal(t, 16, f.BitDepth)
	require.Equal(t, len(mix), f.Len())

	// Skip the edges where the filter is filling.
	body := f.Samples[0][testRate/10 : testRate*8/10]
	assert.InDelta(t, 0.4/math.Sqrt2, rms(body), 0.01)
}

func TestRun_InvalidDesign(t *testing.T) {
	in := testutil.WriteWAV(t, "in.wav", testRate, 16, testutil.Sine(1000, 0.4, testRate, 0.1))
	err := run(&CLI{
		Input:      in,
		Output:     filepath.Join(t.TempDir(), "out.wav"),
		Cutoff:     30000,
		Transition: 1000,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter design")
}
