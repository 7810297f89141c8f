package sos

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/testutil"
)

const (
	impulseLength   = 10000
	noiseLength     = 4096
	maxImpulseValue = 10.0
	decayedLevel    = 1e-3

	testRate      = 48000
	testNotchFreq = 1000.0
	testPassFreq  = 5000.0
	notchSettle   = 4000

	dcGainTolerance = 0.05
)

func noise(n int, seed uint64) []float64 {
	r := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Float64()*2 - 1
	}
	return out
}

func rms(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// TestFilter_ResetMatchesFresh verifies that a reset filter behaves exactly
// like a newly created one.
func TestFilter_ResetMatchesFresh(t *testing.T) {
	x := noise(noiseLength, 1)
	warmup := noise(noiseLength, 2)

	for _, table := range Tables() {
		t.Run(table.Name, func(t *testing.T) {
			fresh := MustNew(table)
			want := make([]float64, len(x))
			fresh.ProcessArray(want, x)

			reused := MustNew(table)
			scratch := make([]float64, len(warmup))
			reused.ProcessArray(scratch, warmup)
			reused.Reset()

			got := make([]float64, len(x))
			reused.ProcessArray(got, x)

			assert.Equal(t, want, got, "reset filter must be bit-identical to a fresh one")
		})
	}
}

// TestTables_ImpulseResponseBounded iterates a unit impulse through every
// built-in table and checks the response stays finite and decays.
func TestTables_ImpulseResponseBounded(t *testing.T) {
	for _, table := range Tables() {
		t.Run(table.Name, func(t *testing.T) {
			f := MustNew(table)
			y := make([]float64, impulseLength)
			y[0] = 1
			f.ProcessArray(y, y)

			testutil.AssertNoNaNOrInf(t, y)
			testutil.AssertAllInRange(t, y, -maxImpulseValue, maxImpulseValue)
			assert.Less(t, math.Abs(y[impulseLength-1]), decayedLevel, "impulse response has not decayed")
		})
	}
}

// TestTables_SectionCounts checks the historical layout of each table.
func TestTables_SectionCounts(t *testing.T) {
	tests := []struct {
		table *Coeffs
		want  int
	}{
		{LowPass44100, 13},
		{LowPass48000, 13},
		{Notch4k32000, 9},
		{Bandpass4k48000, 9},
		{Notch4kLowPass44100, 12},
		{Bandpass4kLowPass48000, 12},
	}

	for _, tt := range tests {
		t.Run(tt.table.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.table.Len())
			require.NoError(t, tt.table.Validate())
		})
	}
}

// TestLowPass_UnityDCGain checks the low-pass tables pass DC at unity gain.
func TestLowPass_UnityDCGain(t *testing.T) {
	for _, table := range []*Coeffs{LowPass44100, LowPass48000} {
		t.Run(table.Name, func(t *testing.T) {
			assert.InDelta(t, 1.0, real(table.Response(0, table.Rate)), dcGainTolerance)
		})
	}
}

// TestProcess_DirectFormII checks a first-order recursion through one biquad.
func TestProcess_DirectFormII(t *testing.T) {
	// y[n] = x[n] + 0.5*y[n-1]
	f := MustNew(&Coeffs{Name: "onepole", Sections: []Section{Biquad(1, 0, 0, -0.5, 0)}})

	want := []float64{1, 0.5, 0.25, 0.125}
	for i, w := range want {
		x := 0.0
		if i == 0 {
			x = 1
		}
		assert.InDelta(t, w, f.Process(x), testutil.DefaultTolerance, "sample %d", i)
	}
}

// TestProcess_GainSection checks that gain-only sections only scale.
func TestProcess_GainSection(t *testing.T) {
	f := MustNew(&Coeffs{Name: "gain", Sections: []Section{Gain(0.5), Gain(3)}})
	assert.InDelta(t, 1.5, f.Process(1), testutil.DefaultTolerance)
	assert.InDelta(t, -3.0, f.Process(-2), testutil.DefaultTolerance)
}

// TestValidate_RejectsUnknownOrder checks validation of malformed tables.
func TestValidate_RejectsUnknownOrder(t *testing.T) {
	_, err := New(&Coeffs{Name: "bad", Sections: []Section{{Order: 2}}})
	require.Error(t, err)

	_, err = New(&Coeffs{Name: "empty"})
	require.Error(t, err)
}

// TestNew_CopiesSections checks that reprogramming a filter never touches the table.
func TestNew_CopiesSections(t *testing.T) {
	before := LowPass48000.Sections[0]
	f := MustNew(LowPass48000)
	f.SetBiquad(1, 0.1, 0.2, 3, 4, 5)
	assert.Equal(t, before, LowPass48000.Sections[0])
}

// TestSetNotch_RemovesFundamental checks the live notch removes its centre
// frequency and passes a distant tone.
func TestSetNotch_RemovesFundamental(t *testing.T) {
	f := NewBiquad()

	f.SetNotch(testNotchFreq, testRate)
	in := testutil.Sine(testNotchFreq, 1, testRate, 1)
	out := make([]float64, len(in))
	f.ProcessArray(out, in)
	assert.Less(t, rms(out[notchSettle:]), 1e-3, "fundamental not removed")

	f.SetNotch(testNotchFreq, testRate)
	in = testutil.Sine(testPassFreq, 1, testRate, 1)
	f.ProcessArray(out, in)
	assert.InDelta(t, rms(in[notchSettle:]), rms(out[notchSettle:]), 0.02, "distant tone attenuated")
}

// TestNotchBandwidth checks the bandwidth cap.
func TestNotchBandwidth(t *testing.T) {
	assert.InDelta(t, 0.02, NotchBandwidth(1000), testutil.DefaultTolerance)
	assert.InDelta(t, MaxNotchBandwidth, NotchBandwidth(20000), testutil.DefaultTolerance)
}

func TestFourKFor(t *testing.T) {
	assert.Equal(t, Notch4k32000, FourKFor(Rate32000, false))
	assert.Equal(t, Bandpass4kLowPass44100, FourKFor(Rate44100, true))
	assert.Equal(t, Notch4kLowPass48000, FourKFor(Rate48000, false))
	assert.Nil(t, FourKFor(96000, false))
	assert.Nil(t, LowPassFor(Rate32000))
}

// TestResponse_FourKTables checks the notch zeros and the band-pass peak.
func TestResponse_FourKTables(t *testing.T) {
	// the 44.1 kHz low-pass cascade sits 0.1 dB down at DC
	const passbandRippleDB = 0.15

	for _, rate := range []int{Rate32000, Rate44100, Rate48000} {
		notch := FourKFor(rate, false)
		assert.Equal(t, rate, notch.Rate)
		assert.Less(t, notch.GainDB(4000, rate), -60.0, notch.Name)
		assert.InDelta(t, 0.0, notch.GainDB(0, rate), passbandRippleDB, notch.Name)

		bp := FourKFor(rate, true)
		assert.Greater(t, bp.GainDB(4000, rate)-bp.GainDB(1000, rate), 20.0, bp.Name)
	}
}

func TestResponse_GainSections(t *testing.T) {
	c := &Coeffs{Name: "gain", Sections: []Section{Gain(0.5), Gain(-2)}}
	assert.InDelta(t, -1.0, real(c.Response(1000, 48000)), testutil.DefaultTolerance)
	assert.InDelta(t, 0.0, c.GainDB(1000, 48000), testutil.DefaultTolerance)
}
