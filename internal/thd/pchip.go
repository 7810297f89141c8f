package thd

// Predict extrapolates the next value of y, sampled at unit spacing, with a
// shape-preserving piecewise cubic Hermite interpolant evaluated one step
// past the last sample.
func Predict(y []float64) float64 {
	n := len(y)
	switch n {
	case 0:
		return 0
	case 1:
		return y[0]
	case 2:
		return 2*y[1] - y[0]
	}

	del := make([]float64, n-1)
	for i := range del {
		del[i] = y[i+1] - y[i]
	}
	slopes := pchipSlopes(del)

	// last interval, evaluated at local offset 2
	const s = 2.0
	d := del[n-2]
	d0, d1 := slopes[n-2], slopes[n-1]
	b := d0 - 2*d + d1
	c := 3*d - 2*d0 - d1
	return ((b*s+c)*s+d0)*s + y[n-2]
}

// pchipSlopes returns the derivative at every knot for unit spacing.
// Interior slopes are the weighted harmonic mean of the neighbouring
// differences, or zero at a local extremum.
func pchipSlopes(del []float64) []float64 {
	n := len(del) + 1
	slopes := make([]float64, n)

	for k := 0; k < n-2; k++ {
		if sign(del[k])*sign(del[k+1]) <= 0 {
			continue
		}
		dmax := max(abs(del[k]), abs(del[k+1]))
		dmin := min(abs(del[k]), abs(del[k+1]))
		slopes[k+1] = dmin / (0.5*del[k]/dmax + 0.5*del[k+1]/dmax)
	}

	slopes[0] = endSlope(del[0], del[1])
	slopes[n-1] = endSlope(del[n-2], del[n-3])
	return slopes
}

// endSlope is the one-sided three-point estimate, kept shape preserving.
func endSlope(d0, d1 float64) float64 {
	s := (3*d0 - d1) / 2
	switch {
	case sign(s) != sign(d0):
		return 0
	case sign(d0) != sign(d1) && abs(s) > abs(3*d0):
		return 3 * d0
	}
	return s
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
