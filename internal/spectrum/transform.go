package spectrum

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/window"
)

// transform windows a block and returns its one-sided power spectrum.
type transform struct {
	fft      *fourier.FFT
	win      []float64
	wf       float64
	windowed []float64
	coeffs   []complex128
}

func newTransform(n int, t window.Type) (*transform, error) {
	w, err := window.New(t, n)
	if err != nil {
		return nil, err
	}
	return &transform{
		fft:      fourier.NewFFT(n),
		win:      w,
		wf:       window.Power(w),
		windowed: make([]float64, n),
		coeffs:   make([]complex128, n/2+1),
	}, nil
}

// bins returns the number of one-sided output bins.
func (t *transform) bins() int { return len(t.coeffs) }

// accumulate adds (re²+im²)·scale of the windowed block to dst.
func (t *transform) accumulate(dst, block []float64, scale float64) {
	window.Apply(t.windowed, block, t.win)
	t.coeffs = t.fft.Coefficients(t.coeffs, t.windowed)
	for i, c := range t.coeffs {
		re, im := real(c), imag(c)
		dst[i] += (re*re + im*im) * scale
	}
}
