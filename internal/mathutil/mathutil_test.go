package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/testutil"
)

const (
	besselTolerance = 1e-7
	levelTolerance  = 1e-4
)

// TestBesselI0 checks known values on both sides of the approximation switch.
func TestBesselI0(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 1},
		{1, 1.266065848},
		{3, 4.880792565},
		{3.75, 9.118945994},
		{5, 27.23987183},
		{-1, 1.266065848},
	}

	for _, tt := range tests {
		testutil.AssertRelativeError(t, tt.want, BesselI0(tt.x), besselTolerance, "x=%v", tt.x)
	}
}

func TestKaiserBeta(t *testing.T) {
	assert.Zero(t, KaiserBeta(20))
	testutil.AssertInRange(t, KaiserBeta(50), 4.5, 4.6)
	testutil.AssertInRange(t, KaiserBeta(80), 7.8, 7.9)
	testutil.AssertInRange(t, KaiserBeta(120), 12.2, 12.3)
}

// TestEstimateFilterLength checks oddness and clamping.
func TestEstimateFilterLength(t *testing.T) {
	for _, tt := range []struct {
		att, bw float64
	}{
		{96, 0.1}, {120, 0.05}, {60, 0.01}, {10, 0.4}, {200, 0.0001},
	} {
		taps := EstimateFilterLength(tt.att, tt.bw)
		assert.Equal(t, 1, taps%2, "att=%v bw=%v", tt.att, tt.bw)
		assert.GreaterOrEqual(t, taps, minFilterLength)
		assert.LessOrEqual(t, taps, maxFilterLength)
	}
}

// TestPowerDB covers the silence sentinel and both precisions.
func TestPowerDB(t *testing.T) {
	assert.Equal(t, NoSignalDB, PowerDB(0))
	assert.Equal(t, NoSignalDB, PowerDB32(0))
	assert.Equal(t, NoSignalDB, AmplitudeDB32(0))

	assert.InDelta(t, -3.0103, PowerDB(0.5), levelTolerance)
	assert.InDelta(t, -3.0103, PowerDB32(0.5), levelTolerance)
	assert.InDelta(t, -6.0206, AmplitudeDB32(0.5), levelTolerance)
}

func TestMinDBForBitDepth(t *testing.T) {
	assert.InDelta(t, -96.0, MinDBForBitDepth(16), testutil.DefaultTolerance)
	assert.InDelta(t, -144.0, MinDBForBitDepth(24), testutil.DefaultTolerance)
}

// TestGradientMean checks that a linear ramp has a gradient equal to its slope.
func TestGradientMean(t *testing.T) {
	ramp := []float64{0, 2, 4, 6, 8}
	assert.InDelta(t, 2.0, GradientMean(ramp), testutil.DefaultTolerance)

	// The ends use one-sided differences: (1 + 1.5 + 2 + 2) / 4
	assert.InDelta(t, 1.625, GradientMean([]float64{0, 1, 3, 5}), testutil.DefaultTolerance)
	assert.Zero(t, GradientMean([]float64{7}))
}

func TestLrint(t *testing.T) {
	assert.Equal(t, 2, Lrint(2.5))
	assert.Equal(t, 4, Lrint(3.5))
	assert.Equal(t, -2, Lrint(-2.5))
	assert.Equal(t, 3, Lrint(2.6))
}

func TestNearestPow2Exp(t *testing.T) {
	assert.Equal(t, 16, NearestPow2Exp(48000))
	assert.Equal(t, 15, NearestPow2Exp(32000))
	assert.Equal(t, 15, NearestPow2Exp(math.Pow(2, 15)))
}
