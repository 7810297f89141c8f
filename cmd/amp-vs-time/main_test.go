package main

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/testutil"
)

func TestRun(t *testing.T) {
	const rate = testutil.Rate48000
	signal := testutil.Concat(testutil.Silence(rate, 0.5), testutil.Sine(1000, 0.5, rate, 0.5))

	output := filepath.Join(t.TempDir(), "out.txt")
	args := &CLI{XMin: 0.25, XMax: 0.5 + 10.0/rate}
	args.Input = testutil.WriteWAV(t, "tone.wav", rate, 16, signal)
	args.Channel = "0"
	args.Output = output
	require.NoError(t, run(args))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1+rate/4+10)
	assert.Equal(t, "# channel 0", lines[0])
	assert.Equal(t, "0.25000,\t0.00000", lines[1], "lead silence is kept")

	// tenth sample of the tone
	fields := strings.Split(lines[len(lines)-1], ",\t")
	require.Len(t, fields, 2)
	tm, err := strconv.ParseFloat(fields[0], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.5+9.0/rate, tm, 1e-5)
	v, err := strconv.ParseFloat(fields[1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.5*math.Sin(2*math.Pi*9/48), v, 1e-4)
}

func TestRun_InvalidView(t *testing.T) {
	args := &CLI{XMin: 2, XMax: 1}
	args.Input = testutil.WriteWAV(t, "tone.wav", testutil.Rate48000, 16, testutil.Sine(1000, 0.5, testutil.Rate48000, 1))
	require.Error(t, run(args))
}
