package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/testutil"
)

func TestRun(t *testing.T) {
	const rate = testutil.Rate48000
	signal := testutil.Sine(250, 0.25, rate, 3)
	high := testutil.Sine(8000, 0.25, rate, 3)
	for i := range signal {
		signal[i] += high[i]
	}

	dir := t.TempDir()
	tones := filepath.Join(dir, "tones.txt")
	require.NoError(t, os.WriteFile(tones, []byte("8000\n250\n"), 0o644))
	output := filepath.Join(dir, "out.txt")

	args := &CLI{Tones: tones}
	args.Input = testutil.WriteWAV(t, "multitone.wav", rate, 24, signal)
	args.Channel = "a"
	args.Output = output
	require.NoError(t, run(args))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "# channel 0", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "250.000000,\t"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "8000.000000,\t"), lines[2])
}

func TestRun_BadToneFile(t *testing.T) {
	tones := filepath.Join(t.TempDir(), "tones.txt")
	require.NoError(t, os.WriteFile(tones, []byte("# no tones\n"), 0o644))

	args := &CLI{Tones: tones}
	args.Input = testutil.WriteWAV(t, "tone.wav", testutil.Rate48000, 16, testutil.Sine(1000, 0.5, testutil.Rate48000, 1))
	args.Channel = "a"
	err := run(args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tones.txt")
}
