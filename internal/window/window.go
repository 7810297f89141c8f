// Package window generates the analysis windows used by the spectral tools.
//
// All windows follow the symmetric MATLAB definitions (n-1 denominators).
package window

import (
	"fmt"
	"math"
	"strings"
)

// Type selects a window function. The numeric values are the historical
// command-line identifiers.
type Type int

const (
	Bartlett       Type = 1
	BartlettHann   Type = 2
	BlackmanHarris Type = 3
	Rect           Type = 4
	Triangular     Type = 5
	Hann           Type = 6

	// Default is used when no window is requested.
	Default = BlackmanHarris
)

// Blackman-Harris 4-term coefficients.
const (
	bh0 = 0.35875
	bh1 = 0.48829
	bh2 = 0.14128
	bh3 = 0.01168
)

// Bartlett-Hann coefficients.
const (
	bhann0 = 0.62
	bhann1 = 0.48
	bhann2 = 0.38
)

var names = map[Type]string{
	Bartlett:       "bartlett",
	BartlettHann:   "barthann",
	BlackmanHarris: "blackmanharris",
	Rect:           "rect",
	Triangular:     "triang",
	Hann:           "hann",
}

// String returns the short window name.
func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("window(%d)", int(t))
}

// Parse accepts a window name or its numeric identifier.
func Parse(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default, nil
	}
	for t, n := range names {
		if s == n || s == fmt.Sprint(int(t)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown window %q", s)
}

// New returns n coefficients of the requested window.
func New(t Type, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("window length %d: must be positive", n)
	}
	w := make([]float64, n)

	switch t {
	case Rect:
		for i := range w {
			w[i] = 1
		}
	case Hann:
		cosineSum(w, []float64{0.5, -0.5})
	case BlackmanHarris:
		cosineSum(w, []float64{bh0, -bh1, bh2, -bh3})
	case BartlettHann:
		barthann(w)
	case Triangular:
		triang(w)
	case Bartlett:
		bartlett(w)
	default:
		return nil, fmt.Errorf("unknown window %v", t)
	}
	return w, nil
}

// Power returns mean(w²), the window compensation factor.
func Power(w []float64) float64 {
	if len(w) == 0 {
		return 0
	}
	var s float64
	for _, v := range w {
		s += v * v
	}
	return s / float64(len(w))
}

// Apply multiplies src by w into dst.
func Apply(dst, src, w []float64) {
	for i := range w {
		dst[i] = src[i] * w[i]
	}
}

// cosineSum fills w[i] = Σ c[k]·cos(2πki/(n-1)).
func cosineSum(w []float64, c []float64) {
	n := len(w)
	if n == 1 {
		var s float64
		for _, v := range c {
			s += v
		}
		w[0] = s
		return
	}
	for i := range w {
		x := 2 * math.Pi * float64(i) / float64(n-1)
		var s float64
		for k, ck := range c {
			s += ck * math.Cos(float64(k)*x)
		}
		w[i] = s
	}
}

func barthann(w []float64) {
	n := len(w)
	if n == 1 {
		w[0] = 1
		return
	}
	for i := range w {
		x := float64(i)/float64(n-1) - 0.5
		w[i] = bhann0 - bhann1*math.Abs(x) + bhann2*math.Cos(2*math.Pi*x)
	}
}

func triang(w []float64) {
	n := len(w)
	fn := float64(n)
	for i := range w {
		fi := float64(i)
		if n%2 == 1 {
			if i < n/2+1 {
				w[i] = 2 * (fi + 1) / (fn + 1)
			} else {
				w[i] = 2 * (fn - fi) / (fn + 1)
			}
			continue
		}
		if i < n/2 {
			w[i] = (2*fi + 1) / fn
		} else {
			w[i] = (2*(fn-fi) - 1) / fn
		}
	}
}

func bartlett(w []float64) {
	n := len(w)
	if n == 1 {
		w[0] = 1
		return
	}
	d := float64(n - 1)
	for i := range w {
		fi := float64(i)
		switch {
		case n%2 == 1 && i <= (n-1)/2:
			w[i] = 2 * fi / d
		case n%2 == 1:
			w[i] = 2 - 2*fi/d
		case i <= n/2-1:
			w[i] = 2 * fi / d
		default:
			w[i] = 2 * (float64(n) - fi - 1) / d
		}
	}
}
