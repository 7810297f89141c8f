package sos

import "math"

// Second-order notch design constants.
const (
	// notchBandEdgeGain is the linear gain at the band edges (-3 dB).
	notchBandEdgeGain = 0.707945784

	// MaxNotchBandwidth caps the relative notch bandwidth (fraction of Nyquist).
	MaxNotchBandwidth = 0.125

	// notchBandwidthPerHz scales the bandwidth with the centre frequency.
	notchBandwidthPerHz = 0.00002
)

// NotchCoeffs designs a second-order notch. w0 and bw are normalised to
// Nyquist (1.0 == fs/2). It returns the numerator b and denominator a with
// a[0] == 1.
func NotchCoeffs(w0, bw float64) (b, a [3]float64) {
	bw *= math.Pi
	w0 *= math.Pi

	gb := notchBandEdgeGain
	beta := math.Sqrt(1-gb*gb) / gb * math.Tan(bw/2)
	gain := 1 / (1 + beta)
	c := -2 * gain * math.Cos(w0)

	b = [3]float64{gain, c, gain}
	a = [3]float64{1, c, 2*gain - 1}
	return b, a
}

// NotchBandwidth returns the relative bandwidth used for a fundamental at
// freq Hz.
func NotchBandwidth(freq float64) float64 {
	return min(MaxNotchBandwidth, freq*notchBandwidthPerHz)
}

// SetNotch resets the filter and programs section 0 as a notch at freq Hz
// for sample rate rate.
func (f *Filter) SetNotch(freq float64, rate int) {
	b, a := NotchCoeffs(freq/(float64(rate)/2), NotchBandwidth(freq))
	f.Reset()
	f.SetBiquad(a[0], a[1], a[2], b[0], b[1], b[2])
}
