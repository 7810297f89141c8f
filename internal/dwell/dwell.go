// Package dwell locates successive steady-tone segments ("dwells") in a
// stepped-sine test signal.
//
// From a search origin the finder waits for the signal to settle, estimates
// the tone frequency from a third of a second of audio and then slides a
// 16384-sample window forward in one-second steps. Every time the window
// loses the tone (or sees a different one) the step is reversed and halved,
// which converges on the end of the dwell.
package dwell

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/settling"
)

const (
	// FFTSize is the zero-padded transform length.
	FFTSize = 65536
	// WindowLength is the length of the sliding analysis window.
	WindowLength = 16384

	halfWindow = WindowLength / 2
	halfFFT    = FFTSize / 2

	// initialWindowDivisor sets the first analysis window to fs/3.
	initialWindowDivisor = 3
	// toleranceDivisor stops the scan once the step is below fs/20.
	toleranceDivisor = 20

	minRefHz = 15
	maxRefHz = 21000

	// newToneShift is the relative frequency change that marks a new tone.
	newToneShift = 0.1
	// lossFactor is the -6 dB drop that marks the end of the current tone.
	lossFactor = 0.5

	// pulseOffset is the half-width of the pulse template in bins.
	pulseOffset = 2
)

// pulse rejects tones further than two bins away.
var pulse = [...]float64{-0.5, 0.5, 1.0, 0.5, -0.5}

// settleParams is the initial settling search of every dwell.
var settleParams = settling.Params{
	Mode:        settling.FreqAmpNoGradient,
	ThresholdDB: 0.1,
	Alpha:       0.1,
	NumBlocks:   10,
}

// Dwell holds absolute sample positions of one steady-tone segment.
//
//	|  noise   <----   tone                 --------->   | <--- new tone
//	 --~~~~~~~~-----------------------------------------------------------
//	 ^         ^                                     ^      ^
//	 origin    SettlePoint                         End      NextStart
type Dwell struct {
	SettlePoint int
	End         int
	NextStart   int
	Frequency   float64 // Hz, 0 when no dwell was found
}

// Finder searches a channel for dwells. It keeps its FFT scratch buffers
// between calls and must not be shared between goroutines.
type Finder struct {
	rate   int
	fft    *fourier.FFT
	in     []float64
	coeffs []complex128

	// Logger, when set, receives a trace of the search.
	Logger *log.Logger
}

// NewFinder returns a finder for audio sampled at rate Hz.
func NewFinder(rate int) *Finder {
	return &Finder{
		rate:   rate,
		fft:    fourier.NewFFT(FFTSize),
		in:     make([]float64, FFTSize),
		coeffs: make([]complex128, halfFFT+1),
	}
}

// FindNext is a convenience wrapper around a one-off Finder.
func FindNext(samples []float64, rate, pos int) (Dwell, error) {
	return NewFinder(rate).Next(samples, pos)
}

func (f *Finder) logf(format string, args ...any) {
	if f.Logger != nil {
		f.Logger.Printf(format, args...)
	}
}

// Next finds the dwell that follows pos. On failure the returned Dwell has
// Frequency 0 and End/NextStart hold the best positions to continue from,
// except for ErrNoTone where the reference frequency is kept and NextStart
// skips the toneless stretch.
func (f *Finder) Next(samples []float64, pos int) (Dwell, error) {
	origin := pos
	size := len(samples)
	tol := f.rate / toleranceDivisor
	initial := int(math.Round(float64(f.rate / initialWindowDivisor)))

	res, err := settling.Detect(settling.Samples(samples[origin:], f.rate), settleParams)
	if err != nil {
		f.logf("no settling point after %d: %v", origin, err)
		return Dwell{}, fmt.Errorf("%w: %w", ErrNotSettled, err)
	}
	settle := origin + res.Point
	f.logf("settling point: %.3fs [%d]", f.seconds(settle), settle)

	if size-settle <= initial {
		return Dwell{}, fmt.Errorf("%d samples after %d: %w", size-settle, settle, ErrInputTooShort)
	}

	ind, val := f.peak(samples[settle : settle+initial])
	refFreq := f.binHz(ind)
	f.logf("reference frequency: %.0f Hz", refFreq)
	if refFreq > maxRefHz || refFreq < minRefHz {
		return Dwell{}, fmt.Errorf("%.0f Hz: %w", refFreq, ErrBogusFrequency)
	}

	step := f.rate
	cur := settle
	n := min(WindowLength, size-cur)
	ind, _ = f.peak(samples[cur : cur+n])
	cur += n

	var (
		refInd    int
		refVal    = -1.0
		found     int
		newTones  int
		toneRatio float64
	)

	for n == WindowLength {
		newVal := f.pulseSum(ind)
		freq := f.binHz(ind)
		if refVal == -1 {
			refInd = ind
		}
		val = f.pulseSum(refInd)
		if refVal == -1 {
			refVal = val
		}

		newTone := freq < refFreq*(1-newToneShift) || freq > refFreq*(1+newToneShift)
		if newTone && newVal > refVal {
			newTones++
			toneRatio = max(toneRatio, newVal/refVal)
		}

		if val < refVal*lossFactor || newTone {
			step = -abs(step / 2)
		} else {
			if step != f.rate {
				step = abs(step / 2)
			}
			found++
		}

		prev := cur - WindowLength
		cur += step - WindowLength
		if size-cur < WindowLength {
			// keep the window inside the buffer
			cur = size - WindowLength
			step = cur - prev
		}
		if cur < 0 {
			cur = 0
			step = cur - prev
		}
		f.logf("window at %.2fs, %.0f Hz, step %d", f.seconds(cur), freq, step)

		if abs(step) < tol {
			if found == 0 {
				return f.noTone(settle, origin, refFreq)
			}
			return f.boundaries(settle, cur, tol, refFreq, newTones, toneRatio, size)
		}

		n = min(WindowLength, size-cur)
		ind, _ = f.peak(samples[cur : cur+n])
		cur += n
	}

	return Dwell{SettlePoint: settle, End: settle, NextStart: size},
		fmt.Errorf("search ran out of data: %w", ErrNoChange)
}

// noTone is the result of a scan that never held the reference tone. The
// empty dwell keeps refFreq so the caller can skip past it and resume at
// NextStart, which lies the settle offset beyond settle.
func (f *Finder) noTone(settle, origin int, refFreq float64) (Dwell, error) {
	f.logf("in noise, frequency not found")
	d := Dwell{SettlePoint: settle, End: settle, NextStart: settle + origin, Frequency: refFreq}
	return d, fmt.Errorf("no tone after %d: %w", settle, ErrNoTone)
}

// boundaries converts the converged window position into dwell positions.
// The window is centred on the change, so half a window plus twice the
// tolerance is allowed on either side.
func (f *Finder) boundaries(settle, cur, tol int, freq float64, newTones int, ratio float64, size int) (Dwell, error) {
	start := cur + 2*tol + halfWindow
	end := cur + halfWindow - 2*tol

	// a louder new tone is detected early, so its start can move forward
	if newTones > 0 {
		ratio = max(0, 1-1/ratio)
		start += int(math.Round(halfWindow * ratio))
	}
	end = max(settle, end)
	start = max(end, start)

	if start <= settle {
		return Dwell{SettlePoint: settle, End: settle, NextStart: size},
			fmt.Errorf("degenerate dwell at %d: %w", settle, ErrNoChange)
	}

	d := Dwell{SettlePoint: settle, End: end, NextStart: start, Frequency: freq}
	f.logf("dwell %.0f Hz: settle %.2fs, end %.2fs, next %.2fs",
		freq, f.seconds(settle), f.seconds(end), f.seconds(start))
	return d, nil
}

// peak transforms block zero-padded to FFTSize and returns the index and
// power of the strongest bin below Nyquist.
func (f *Finder) peak(block []float64) (int, float64) {
	copy(f.in, block)
	clear(f.in[len(block):])
	f.coeffs = f.fft.Coefficients(f.coeffs, f.in)

	var best float64
	idx := 0
	for i := range halfFFT {
		c := f.coeffs[i]
		if p := real(c)*real(c) + imag(c)*imag(c); p > best {
			best = p
			idx = i
		}
	}
	return idx, best
}

// pulseSum correlates the magnitude spectrum around bin ind with the pulse
// template. Near the ends of the spectrum the template is truncated from
// its tail, not centred.
func (f *Finder) pulseSum(ind int) float64 {
	lo := max(1, ind+1-pulseOffset)
	hi := min(ind+1+pulseOffset, halfFFT)

	var sum float64
	for i := 0; i <= hi-lo; i++ {
		c := f.coeffs[lo-1+i]
		sum += math.Hypot(real(c), imag(c)) * pulse[i]
	}
	return sum
}

func (f *Finder) binHz(ind int) float64 {
	return math.Round(float64(ind*f.rate) / FFTSize)
}

func (f *Finder) seconds(pos int) float64 {
	return float64(pos) / float64(f.rate)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
