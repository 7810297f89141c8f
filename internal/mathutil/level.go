package mathutil

import "math"

// PowerDB converts a mean-square value to dB, reporting NoSignalDB for
// exact silence.
func PowerDB(meanSquare float64) float64 {
	if meanSquare == 0 {
		return NoSignalDB
	}
	return decibelPower * math.Log10(meanSquare)
}

// PowerDB32 is PowerDB evaluated in single precision. The settling detector
// and the dwell readings are calibrated against single-precision levels.
func PowerDB32(meanSquare float64) float64 {
	if meanSquare == 0 {
		return NoSignalDB
	}
	return float64(float32(decibelPower) * log10f(meanSquare))
}

// AmplitudeDB32 converts an RMS amplitude to dB in single precision.
func AmplitudeDB32(rms float64) float64 {
	if rms == 0 {
		return NoSignalDB
	}
	return float64(float32(decibelAmplitude) * log10f(rms))
}

func log10f(x float64) float32 {
	return float32(math.Log10(float64(float32(x))))
}

// MinDBForBitDepth returns the lowest level representable at a bit depth:
// -floor(20·log10(2^bits)).
func MinDBForBitDepth(bits int) float64 {
	return -math.Floor(decibelAmplitude * math.Log10(math.Pow(2, float64(bits))))
}

// ClipDB raises v to floor.
func ClipDB(v, floor float64) float64 {
	return max(v, floor)
}

// GradientMean returns the mean of the numerical gradient of x: one-sided
// differences at both ends, central differences inside.
func GradientMean(x []float64) float64 {
	n := len(x)
	if n < 2 {
		return 0
	}

	sum := (x[1] - x[0]) + (x[n-1] - x[n-2])
	for i := 1; i < n-1; i++ {
		sum += (x[i+1] - x[i-1]) / 2
	}
	return sum / float64(n)
}

// Lrint rounds half to even, as the C library's lrint in the default
// rounding mode.
func Lrint(x float64) int {
	return int(math.RoundToEven(x))
}

// NearestPow2Exp returns round(log2(x)).
func NearestPow2Exp(x float64) int {
	return int(math.Round(math.Log2(x)))
}
