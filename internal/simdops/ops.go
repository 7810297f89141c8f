// Package simdops routes the hot vector kernels of the measurement pipeline
// to SIMD implementations.
//
// Every kernel is reached through an [Ops] table so tests can compare the
// accelerated path against the scalar reference in [Scalar].
package simdops

import (
	"github.com/tphakala/simd/f64"
)

// Ops holds the vector kernels used by the filters and power estimators.
type Ops struct {
	// DotProduct returns Σ a[i]*b[i] over min(len(a), len(b)) elements.
	DotProduct func(a, b []float64) float64

	// ConvolveValid computes dst[i] = Σ signal[i+k]*kernel[k] for every
	// position where the kernel fits inside signal.
	ConvolveValid func(dst, signal, kernel []float64)

	// Sum returns the sum of all elements.
	Sum func(a []float64) float64

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)
}

var (
	simdOps = Ops{
		DotProduct:    f64.DotProduct,
		ConvolveValid: f64.ConvolveValid,
		Sum:           f64.Sum,
		Scale:         f64.Scale,
	}

	scalarOps = Ops{
		DotProduct:    dotScalar,
		ConvolveValid: convolveValidScalar,
		Sum:           sumScalar,
		Scale:         scaleScalar,
	}
)

// Default returns the SIMD-accelerated kernels.
func Default() *Ops {
	return &simdOps
}

// Scalar returns plain Go reference kernels.
func Scalar() *Ops {
	return &scalarOps
}

// SumSquares returns Σ x[i]².
func (o *Ops) SumSquares(x []float64) float64 {
	return o.DotProduct(x, x)
}

// MeanSquare returns the mean of x[i]², or 0 for an empty slice.
func (o *Ops) MeanSquare(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return o.SumSquares(x) / float64(len(x))
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func (o *Ops) Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return o.Sum(x) / float64(len(x))
}

func dotScalar(a, b []float64) float64 {
	n := min(len(a), len(b))
	var s float64
	for i := range n {
		s += a[i] * b[i]
	}
	return s
}

func convolveValidScalar(dst, signal, kernel []float64) {
	n := len(signal) - len(kernel) + 1
	for i := 0; i < n && i < len(dst); i++ {
		dst[i] = dotScalar(signal[i:i+len(kernel)], kernel)
	}
}

func sumScalar(a []float64) float64 {
	var s float64
	for _, v := range a {
		s += v
	}
	return s
}

func scaleScalar(dst, a []float64, s float64) {
	for i, v := range a {
		dst[i] = v * s
	}
}
