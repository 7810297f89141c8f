// Package mathutil collects the numeric helpers shared by the measurement
// packages: Kaiser design formulas for FIR filters, level conversion and
// small interpolation utilities.
package mathutil

import "math"

// BesselI0 computes the modified Bessel function of the first kind, order zero.
//
// Polynomial approximation below |x| = 3.75, scaled asymptotic expansion
// above; roughly 1e-7 relative accuracy, plenty for window design.
func BesselI0(x float64) float64 {
	ax := math.Abs(x)

	if ax < besselSmallArgThreshold {
		t := x / besselSmallArgThreshold
		t *= t
		return 1.0 + t*(besselI0Coeff1+t*(besselI0Coeff2+t*(besselI0Coeff3+
			t*(besselI0Coeff4+t*(besselI0Coeff5+t*besselI0Coeff6)))))
	}

	t := besselSmallArgThreshold / ax
	p := besselI0AsympCoeff0 + t*(besselI0AsympCoeff1+t*(besselI0AsympCoeff2+
		t*(besselI0AsympCoeff3+t*(besselI0AsympCoeff4+t*(besselI0AsympCoeff5+
			t*(besselI0AsympCoeff6+t*(besselI0AsympCoeff7+t*besselI0AsympCoeff8)))))))

	return math.Exp(ax) * p / math.Sqrt(ax)
}

// KaiserBeta returns the Kaiser window β for a stopband attenuation in dB.
//
//	att > 50:        β = 0.1102 (att - 8.7)
//	21 <= att <= 50: β = 0.5842 (att - 21)^0.4 + 0.07886 (att - 21)
//	otherwise:       β = 0
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		d := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(d, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*d
	default:
		return 0
	}
}

// EstimateFilterLength returns an odd tap count that reaches attenuation dB
// with a transition band of transitionBW (fraction of the sample rate):
//
//	N ≈ (att - 8) / (2.285 · 2π · Δf)
//
// The result is clamped to [3, 8191].
func EstimateFilterLength(attenuation, transitionBW float64) int {
	if transitionBW <= 0 {
		transitionBW = defaultTransitionBW
	}

	n := (attenuation - kaiserLengthOffset) / (kaiserLengthMultiplier * 2 * math.Pi * transitionBW)
	taps := int(math.Ceil(n))
	if taps%2 == 0 {
		taps++
	}
	return max(minFilterLength, min(maxFilterLength, taps))
}
