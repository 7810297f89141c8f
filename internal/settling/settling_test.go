package settling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/testutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

const (
	testRate = testutil.Rate48000
	testFreq = 1000.0
	testAmp  = 0.5

	// decay applied per 512-sample step in the level tests
	decayDBPerStep = 0.5
	decayStep      = 512
)

func freqParams() Params {
	return Params{Mode: Freq, ThresholdDB: 0.1, Alpha: 0.1, NumBlocks: 10}
}

// exponential returns a tone whose level changes by dbPerStep every
// decayStep samples for the first rampSeconds, then stays constant.
func exponential(dbPerStep, rampSeconds, seconds float64) []float64 {
	out := testutil.Sine(testFreq, testAmp, testRate, seconds)
	ramp := int(rampSeconds * testRate)
	for i := range out {
		k := min(i, ramp)
		out[i] *= math.Pow(10, dbPerStep*float64(k)/decayStep/20)
	}
	return out
}

func TestBlockSize(t *testing.T) {
	assert.Equal(t, 8192, BlockSize(48000, Freq))
	// log2(44100) rounds down to 15
	assert.Equal(t, 4096, BlockSize(44100, FreqAmpNoGradient))
	assert.Equal(t, 2048, BlockSize(48000, AmpGradient))
	assert.Equal(t, 1024, BlockSize(32000, AmpNoGradient))
}

// TestDetect_SteadyTone checks that a stable tone settles on the first block
// in every mode.
func TestDetect_SteadyTone(t *testing.T) {
	tone := testutil.Sine(testFreq, testAmp, testRate, 1)
	for _, mode := range []Mode{Freq, AmpNoGradient, AmpGradient, FreqAmpNoGradient, FreqAmpGradient} {
		t.Run(mode.String(), func(t *testing.T) {
			p := freqParams()
			p.Mode = mode
			res, err := Detect(Samples(tone, testRate), p)
			require.NoError(t, err)
			assert.Equal(t, 1, res.Point)
			assert.Zero(t, res.Block)
		})
	}
}

// TestDetect_FrequencyStep waits for a second tone when the reference
// frequency is given.
func TestDetect_FrequencyStep(t *testing.T) {
	signal := testutil.Concat(
		testutil.Sine(testFreq, testAmp, testRate, 0.5),
		testutil.Sine(3*testFreq, testAmp, testRate, 0.5),
	)
	p := freqParams()
	p.RefFreq = 3 * testFreq

	res, err := Detect(Samples(signal, testRate), p)
	require.NoError(t, err)
	testutil.AssertInRange(t, float64(res.Point), 20000, 28000)
	t.Logf("settled at %d (block %d)", res.Point, res.Block)
}

// TestDetect_Ramp checks that a level that keeps rising never settles.
func TestDetect_Ramp(t *testing.T) {
	signal := exponential(decayDBPerStep, 1, 1)
	for i := range signal {
		signal[i] *= 1e-4
	}
	p := Params{Mode: AmpNoGradient, ThresholdDB: 0.1, Alpha: 0.1, NumBlocks: 10}

	_, err := Detect(Samples(signal, testRate), p)
	require.ErrorIs(t, err, ErrNotSettled)
}

// TestDetect_GradientDecay waits for a decaying level to flatten out.
func TestDetect_GradientDecay(t *testing.T) {
	const rampSeconds = 0.25
	signal := exponential(-decayDBPerStep, rampSeconds, 1)
	p := Params{Mode: AmpGradient, ThresholdDB: 1, Alpha: 1, NumBlocks: 10}

	res, err := Detect(Samples(signal, testRate), p)
	require.NoError(t, err)
	testutil.AssertInRange(t, float64(res.Point), 9000, 20000)
	t.Logf("decay ends at %d, settled at %d", int(rampSeconds*testRate), res.Point)
}

// TestDetect_StreamPosition checks the stream cursor on success and failure.
func TestDetect_StreamPosition(t *testing.T) {
	signal := testutil.Concat(
		testutil.Sine(testFreq, testAmp, testRate, 0.5),
		testutil.Sine(3*testFreq, testAmp, testRate, 0.5),
	)
	p := freqParams()
	p.RefFreq = 3 * testFreq

	s := wavio.NewStream(signal, testRate)
	s.Seek(100)
	res, err := Detect(StreamSource(s), p)
	require.NoError(t, err)
	assert.Equal(t, 100+res.Point-1, s.Position())

	s.Seek(len(signal) - 1000)
	_, err = Detect(StreamSource(s), p)
	require.ErrorIs(t, err, ErrInputTooShort)
	assert.Equal(t, len(signal)-1000, s.Position())
}

func TestDetect_Limit(t *testing.T) {
	tone := testutil.Sine(testFreq, testAmp, testRate, 1)
	p := freqParams()

	p.Limit = 4000
	_, err := Detect(Samples(tone, testRate), p)
	require.ErrorIs(t, err, ErrInputTooShort)

	// ten blocks need 8192 + 9*2048 samples, one more block is the budget
	p.Limit = 8192 + 9*2048
	_, err = Detect(Samples(tone, testRate), p)
	require.ErrorIs(t, err, ErrNotSettled)

	p.Limit = 8192 + 10*2048
	res, err := Detect(Samples(tone, testRate), p)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Point)
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"mode", Params{Mode: 0, NumBlocks: 10}},
		{"too few blocks", Params{Mode: Freq, NumBlocks: 1}},
		{"too many blocks", Params{Mode: Freq, NumBlocks: MaxBlocks + 1}},
		{"negative limit", Params{Mode: Freq, NumBlocks: 10, Limit: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.p.Validate())
			_, err := Detect(Samples(nil, testRate), tt.p)
			require.Error(t, err)
		})
	}
}
