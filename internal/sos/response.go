package sos

import (
	"math"
	"math/cmplx"
)

// Response evaluates the transfer function of the cascade at freq Hz for a
// sample rate of rate Hz.
func (c *Coeffs) Response(freq float64, rate int) complex128 {
	z1 := cmplx.Exp(complex(0, -2*math.Pi*freq/float64(rate))) // z^-1
	z2 := z1 * z1

	h := complex(1, 0)
	for _, s := range c.Sections {
		if s.Order == OrderGain {
			h *= complex(s.B[0], 0)
			continue
		}
		num := complex(s.B[0], 0) + complex(s.B[1], 0)*z1 + complex(s.B[2], 0)*z2
		den := 1 + complex(s.A[1], 0)*z1 + complex(s.A[2], 0)*z2
		h *= num / den
	}
	return h
}

// GainDB returns |H| at freq in dB, floored at -400 dB.
func (c *Coeffs) GainDB(freq float64, rate int) float64 {
	return 20 * math.Log10(max(cmplx.Abs(c.Response(freq, rate)), 1e-20))
}
