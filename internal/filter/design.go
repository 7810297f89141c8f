// Package filter designs FIR coefficient sets for the fir engine.
package filter

import (
	"fmt"
	"math"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/mathutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/simdops"
)

const (
	minTaps = 3
	maxTaps = 8191

	nyquistFraction = 0.5
	sincZero        = 1e-10
	minMagnitude    = 1e-10
	decibelAmp      = 20.0
)

// KaiserWindow returns a symmetric Kaiser window:
//
//	w[n] = I₀(β·sqrt(1 - ((n - α)/α)²)) / I₀(β),  α = (N-1)/2
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return nil
	}
	w := make([]float64, length)
	if length == 1 {
		w[0] = 1
		return w
	}

	alpha := float64(length-1) / 2
	norm := mathutil.BesselI0(beta)
	for n := range w {
		x := (float64(n) - alpha) / alpha
		w[n] = mathutil.BesselI0(beta*math.Sqrt(1-x*x)) / norm
	}
	return w
}

// LowPass describes a windowed-sinc low-pass in Hz.
type LowPass struct {
	Rate        int     // sample rate in Hz
	Cutoff      float64 // -6 dB point in Hz
	Transition  float64 // transition band width in Hz, used when Taps == 0
	Attenuation float64 // stopband attenuation in dB
	Taps        int     // explicit length; 0 derives it from Transition
	Gain        float64 // DC gain; 0 means unity
}

// Validate checks the design parameters.
func (p *LowPass) Validate() error {
	if p.Rate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", p.Rate)
	}
	if fc := p.Cutoff / float64(p.Rate); fc <= 0 || fc >= nyquistFraction {
		return fmt.Errorf("invalid cutoff %.1f Hz: must be in (0, %d)", p.Cutoff, p.Rate/2)
	}
	if p.Attenuation < 0 {
		return fmt.Errorf("invalid attenuation: %f dB (must be positive)", p.Attenuation)
	}
	if p.Taps != 0 && (p.Taps < minTaps || p.Taps > maxTaps) {
		return fmt.Errorf("invalid tap count %d: must be in [%d, %d]", p.Taps, minTaps, maxTaps)
	}
	if p.Taps == 0 && p.Transition <= 0 {
		return fmt.Errorf("transition width must be positive when taps are derived")
	}
	return nil
}

// NumTaps returns the explicit tap count or the Kaiser estimate.
func (p *LowPass) NumTaps() int {
	if p.Taps > 0 {
		return p.Taps
	}
	return mathutil.EstimateFilterLength(p.Attenuation, p.Transition/float64(p.Rate))
}

// Design returns the windowed-sinc coefficients, normalised to the requested
// DC gain.
func (p *LowPass) Design() ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	taps := p.NumTaps()
	fc := p.Cutoff / float64(p.Rate)
	window := KaiserWindow(taps, mathutil.KaiserBeta(p.Attenuation))
	center := float64(taps-1) / 2

	h := make([]float64, taps)
	for n := range h {
		x := float64(n) - center
		s := 2 * fc
		if math.Abs(x) >= sincZero {
			s = math.Sin(2*math.Pi*fc*x) / (math.Pi * x)
		}
		h[n] = s * window[n]
	}

	gain := p.Gain
	if gain == 0 {
		gain = 1
	}
	ops := simdops.Default()
	if sum := ops.Sum(h); math.Abs(sum) > sincZero {
		ops.Scale(h, h, gain/sum)
	}
	return h, nil
}

// MagnitudeAt evaluates |H(f)| of a FIR at freq Hz.
func MagnitudeAt(coeffs []float64, freq float64, rate int) float64 {
	omega := 2 * math.Pi * freq / float64(rate)
	var re, im float64
	for n, h := range coeffs {
		re += h * math.Cos(omega*float64(n))
		im -= h * math.Sin(omega*float64(n))
	}
	return math.Hypot(re, im)
}

// MagnitudeDB converts a linear magnitude to dB, flooring at -200 dB.
func MagnitudeDB(magnitude float64) float64 {
	return decibelAmp * math.Log10(max(magnitude, minMagnitude))
}
