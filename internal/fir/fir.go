// Package fir implements a direct-form FIR filter with a circular history.
package fir

import (
	"errors"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/simdops"
)

// ErrNoCoefficients is returned when a filter is built without taps.
var ErrNoCoefficients = errors.New("fir: no coefficients")

// Filter computes y[n] = Σ b[k]·x[n-k].
//
// The history is a circular buffer of len(b) samples. cursor is the slot
// the next input is written to; it moves backwards, so walking forward from
// the cursor visits samples from newest to oldest.
type Filter struct {
	coeffs  []float64
	reverse []float64 // coeffs reversed, for valid convolution
	history []float64
	cursor  int
	ops     *simdops.Ops
	scratch []float64
}

// New creates a filter over a copy of coeffs with zeroed history.
func New(coeffs []float64) (*Filter, error) {
	if len(coeffs) == 0 {
		return nil, ErrNoCoefficients
	}

	n := len(coeffs)
	f := &Filter{
		coeffs:  append([]float64(nil), coeffs...),
		reverse: make([]float64, n),
		history: make([]float64, n),
		ops:     simdops.Default(),
	}
	for i, c := range coeffs {
		f.reverse[n-1-i] = c
	}
	f.Reset()
	return f, nil
}

// Len returns the number of taps.
func (f *Filter) Len() int {
	return len(f.coeffs)
}

// Coefficients returns a copy of the filter taps.
func (f *Filter) Coefficients() []float64 {
	return append([]float64(nil), f.coeffs...)
}

// Reset zeroes the history and re-arms the cursor.
func (f *Filter) Reset() {
	clear(f.history)
	f.cursor = len(f.history) - 1
}

// Process inserts x as the newest sample and returns the filter output.
func (f *Filter) Process(x float64) float64 {
	n := len(f.coeffs)
	c := f.cursor
	f.history[c] = x

	// history[c:] holds ages 0..n-c-1, history[:c] the older remainder.
	y := f.ops.DotProduct(f.history[c:], f.coeffs[:n-c])
	if c > 0 {
		y += f.ops.DotProduct(f.history[:c], f.coeffs[n-c:])
	}

	f.advance()
	return y
}

func (f *Filter) advance() {
	f.cursor--
	if f.cursor < 0 {
		f.cursor = len(f.history) - 1
	}
}

// ProcessArray filters src into dst (len(dst) >= len(src)). The output and
// the final filter state are identical to calling Process for every sample.
func (f *Filter) ProcessArray(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	n := len(f.coeffs)
	tail := n - 1

	// ext = history oldest to newest (n-1 samples), followed by src.
	need := tail + len(src)
	if cap(f.scratch) < need {
		f.scratch = make([]float64, need)
	}
	ext := f.scratch[:need]
	for age := range tail {
		ext[tail-1-age] = f.history[(f.cursor+1+age)%n]
	}
	copy(ext[tail:], src)

	f.ops.ConvolveValid(dst[:len(src)], ext, f.reverse)

	// Only the last n inputs survive in the history.
	skip := max(0, len(src)-n)
	f.cursor = ((f.cursor-skip)%n + n) % n
	for _, x := range src[skip:] {
		f.history[f.cursor] = x
		f.advance()
	}
}
