package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/mathutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/testutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/window"
)

const (
	testRate = testutil.Rate48000
	testNFFT = 4096
	testFreq = 1000.0
	testAmp  = 0.5

	// minimum share of the signal power recovered from the spectrum
	parsevalRecovery = 0.95
)

func stream(samples []float64) *wavio.Stream {
	return wavio.NewStream(samples, testRate)
}

func defaultOptions() Options {
	return Options{NFFT: testNFFT, BitDepth: 16}
}

// TestAverage_Parseval checks that integrating the spectrum recovers the
// mean-square power of a sine and that the peak lands on the tone.
func TestAverage_Parseval(t *testing.T) {
	for _, w := range []window.Type{window.BlackmanHarris, window.Hann, window.Rect} {
		t.Run(w.String(), func(t *testing.T) {
			opts := defaultOptions()
			opts.Window = w
			db, err := Average(stream(testutil.Sine(testFreq, testAmp, testRate, 1)), opts)
			require.NoError(t, err)
			require.Len(t, db, testNFFT/2+1)
			testutil.AssertNoNaNOrInf(t, db)

			var total float64
			last := len(db) - 1
			for i, v := range db {
				corr := mathutil.WindowCorrectionDB
				if i != 0 && i != last {
					corr += mathutil.ExactPeakCorrectionDB
				}
				total += math.Pow(10, (v-corr)/10)
			}
			total *= float64(testRate) / testNFFT

			want := testAmp * testAmp / 2
			assert.Greater(t, total, parsevalRecovery*want)
			assert.Less(t, total, (2-parsevalRecovery)*want)

			peak := BinFrequency(floats.MaxIdx(db), testRate, testNFFT)
			assert.InDelta(t, testFreq, peak, float64(testRate)/testNFFT)
			t.Logf("%s: recovered %.4f of %.4f, peak at %.1f Hz", w, total, want, peak)
		})
	}
}

// TestAverage_Floor checks that digital silence reads the bit-depth floor.
func TestAverage_Floor(t *testing.T) {
	opts := defaultOptions()
	opts.NoSilence = true
	db, err := Average(stream(testutil.Silence(testRate, 0.5)), opts)
	require.NoError(t, err)
	for _, v := range db {
		assert.Equal(t, -96.0, v)
	}

	floor := -120.0
	opts.MinDB = &floor
	db, err = Average(stream(testutil.Silence(testRate, 0.5)), opts)
	require.NoError(t, err)
	assert.Equal(t, floor, db[10])
}

// TestAverage_Averages checks that limiting the averages stops reading.
func TestAverage_Averages(t *testing.T) {
	opts := defaultOptions()
	opts.NoSilence = true
	opts.Averages = 3

	s := stream(testutil.Sine(testFreq, testAmp, testRate, 1))
	_, err := Average(s, opts)
	require.NoError(t, err)
	assert.Equal(t, testNFFT+2*testNFFT/2, s.Position())
}

func TestAverage_DefaultBlockIsOneSecond(t *testing.T) {
	opts := Options{BitDepth: 24, NoSilence: true}
	db, err := Average(stream(testutil.Sine(testFreq, testAmp, testRate, 2)), opts)
	require.NoError(t, err)
	assert.Len(t, db, testRate/2+1)
	assert.Equal(t, 1000, floats.MaxIdx(db), "1 Hz bins")
}

// TestAverage_SkipsSilence checks that the leading silence does not dilute
// the average.
func TestAverage_SkipsSilence(t *testing.T) {
	tone := testutil.Sine(testFreq, testAmp, testRate, 0.5)
	padded := testutil.Concat(testutil.Silence(testRate, 2), tone)

	want, err := Average(stream(tone), defaultOptions())
	require.NoError(t, err)
	got, err := Average(stream(padded), defaultOptions())
	require.NoError(t, err)

	i := floats.MaxIdx(want)
	assert.InDelta(t, want[i], got[i], testutil.DBTolerance)
}

func TestAverage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		opts    Options
		want    error
	}{
		{"too short", testutil.Sine(testFreq, testAmp, testRate, 0.01), defaultOptions(), ErrInputTooShort},
		{"invalid size", testutil.Sine(testFreq, testAmp, testRate, 1), Options{NFFT: 1000, BitDepth: 16}, ErrInvalidBlockSize},
		{"bit depth", testutil.Sine(testFreq, testAmp, testRate, 1), Options{NFFT: testNFFT, BitDepth: 8}, wavio.ErrInvalidBitDepth},
		{"silent", testutil.Silence(testRate, 1), defaultOptions(), wavio.ErrSilent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Average(stream(tt.samples), tt.opts)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidNFFT(t *testing.T) {
	for _, n := range []int{512, 1024, 2048, 4096, 8192, 10240, 16384, 32000, 44100, 48000, 65536} {
		assert.True(t, validNFFT(n), n)
	}
	for _, n := range []int{2, 256, 1000, 96000, 131072} {
		assert.False(t, validNFFT(n), n)
	}
}
