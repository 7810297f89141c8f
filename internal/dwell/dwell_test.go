package dwell

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/testutil"
)

const (
	testRate = testutil.Rate48000
	testAmp  = 0.5

	// boundary of the first dwell in the two-tone signal
	change = 2 * testRate

	// The scan stops once its step is below fs/20 and End is placed two
	// such tolerances before the window centre, so End lands up to about
	// 0.15 s ahead of the change.
	endSlack = 4 * testRate / 25
)

func twoTone() []float64 {
	return testutil.Stepped([]float64{1000, 2000}, testAmp, testRate, 2)
}

// TestFindNext_TwoTones walks a 1 kHz / 2 kHz stepped signal dwell by dwell.
func TestFindNext_TwoTones(t *testing.T) {
	signal := twoTone()
	f := NewFinder(testRate)

	first, err := f.Next(signal, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1000, first.Frequency, testutil.HzTolerance)
	assert.LessOrEqual(t, first.SettlePoint, testRate/10)
	testutil.AssertInRange(t, float64(first.End), change-endSlack, change)
	testutil.AssertInRange(t, float64(first.NextStart), change, change+testRate/4)
	t.Logf("first dwell: %+v", first)

	second, err := f.Next(signal, first.NextStart)
	require.NoError(t, err)
	assert.InDelta(t, 2000, second.Frequency, testutil.HzTolerance)
	assert.Greater(t, second.SettlePoint, first.NextStart)
	assert.Greater(t, second.End, second.SettlePoint)
	assert.LessOrEqual(t, second.NextStart, len(signal))
	t.Logf("second dwell: %+v", second)

	_, err = f.Next(signal, second.NextStart)
	require.ErrorIs(t, err, ErrNotSettled)
}

// TestFindNext_Silence never settles because no tone is present.
func TestFindNext_Silence(t *testing.T) {
	d, err := FindNext(testutil.Silence(testRate, 2), testRate, 0)
	require.ErrorIs(t, err, ErrNotSettled)
	assert.Zero(t, d.Frequency)
}

// TestFindNext_SingleTone runs to the end of the buffer and still reports
// the tone.
func TestFindNext_SingleTone(t *testing.T) {
	signal := testutil.Sine(440, testAmp, testRate, 3)
	d, err := FindNext(signal, testRate, 0)
	require.NoError(t, err)
	assert.InDelta(t, 440, d.Frequency, testutil.HzTolerance)
	testutil.AssertInRange(t, float64(d.End), float64(len(signal)-WindowLength), float64(len(signal)))
}

// TestFinder_NoTone checks the empty dwell reported when the scan never
// held the reference tone.
func TestFinder_NoTone(t *testing.T) {
	var buf bytes.Buffer
	f := NewFinder(testRate)
	f.Logger = log.New(&buf, "", 0)

	const origin, settle = testRate, testRate + 4000
	d, err := f.noTone(settle, origin, 1000)
	require.ErrorIs(t, err, ErrNoTone)
	assert.NotErrorIs(t, err, ErrNoChange)
	assert.Equal(t, Dwell{SettlePoint: settle, End: settle, NextStart: settle + origin, Frequency: 1000}, d)
	assert.Greater(t, d.NextStart, origin)
	assert.Contains(t, buf.String(), "in noise")
}

// TestFinder_Logger checks the trace output when a logger is attached.
func TestFinder_Logger(t *testing.T) {
	var buf bytes.Buffer
	f := NewFinder(testRate)
	f.Logger = log.New(&buf, "", 0)

	_, err := f.Next(twoTone(), 0)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "reference frequency: 1000 Hz")
}

// TestPulseSum checks the template alignment in the middle and at the
// low edge of the spectrum.
func TestPulseSum(t *testing.T) {
	f := NewFinder(testRate)
	for i := range f.coeffs {
		f.coeffs[i] = complex(float64(i), 0)
	}

	// bins 98..102 weighted by the full template
	assert.InDelta(t, -0.5*98+0.5*99+100+0.5*101-0.5*102, f.pulseSum(100), 1e-9)
	// truncated at bin 0: bins 0..2 against the head of the template
	assert.InDelta(t, -0.5*0+0.5*1+1*2, f.pulseSum(0), 1e-9)
	// top of the spectrum: bins 32765..32767
	top := halfFFT - 1
	want := -0.5*float64(top-2) + 0.5*float64(top-1) + float64(top)
	assert.InDelta(t, want, f.pulseSum(top), 1e-9)
}
