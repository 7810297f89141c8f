// Package settling detects where a test tone has settled in frequency
// and/or level.
//
// The signal is analysed in blocks that overlap by 75%. The frequency
// detector waits for NumBlocks consecutive blocks with the same dominant FFT
// bin; the level detector smooths the block power with an exponential
// average and waits for the last NumBlocks smoothed levels to flatten out.
package settling

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/mathutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/pipeline"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/simdops"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

// Result describes a successful search.
type Result struct {
	// Point is the 1-based offset from the search origin of the first
	// settled sample.
	Point int
	// Block is the index of the first settled block.
	Block int
}

// BlockSize returns the analysis block length for rate and mode.
func BlockSize(rate int, m Mode) int {
	shift := ampBlockShift
	if m.freq() {
		shift = freqBlockShift
	}
	return 1 << (mathutil.NearestPow2Exp(float64(rate)) - shift)
}

// Detect searches src for the settle point.
func Detect(src Source, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	rate := src.Rate()
	samples := src.Rest()
	blk := BlockSize(rate, p.Mode)
	step := int(float64(blk) * stepFraction)

	limit := len(samples)
	if p.Limit > 0 {
		limit = min(p.Limit, limit)
	}
	if limit < blk {
		return Result{}, fmt.Errorf("%d samples for a %d-sample block: %w", limit, blk, ErrInputTooShort)
	}
	blockLimit := (limit-blk)/step + 1

	buf, err := pipeline.NewBlockBuffer(wavio.NewStream(samples[:limit], rate), blk, step)
	if err != nil {
		return Result{}, err
	}

	fd := newFreqDetector(rate, blk, p)
	ld := newLevelDetector(p)

	total := 0
	for total < blockLimit && !(fd.settled && ld.settled) && buf.Next() {
		total++
		block := buf.Block()
		if fd.enabled {
			fd.update(block, total)
		}
		if ld.enabled {
			ld.update(block, total)
		}
	}

	// settling on the final block still counts as running out of data
	if total == blockLimit {
		return Result{}, fmt.Errorf("no settling within %d blocks (%s): %w", blockLimit, p.Mode, ErrNotSettled)
	}

	settle := max(fd.block, ld.block)
	point := settle * step
	if point > 0 {
		// account for the first block filling the window
		point += blk - step
	}
	src.Advance(point)
	return Result{Point: point + 1, Block: settle}, nil
}

type freqDetector struct {
	enabled bool
	settled bool
	block   int

	rate   int
	fft    *fourier.FFT
	coeffs []complex128
	ref    float64
	adopt  bool
	tol    float64
	count  int
	limit  int
}

func newFreqDetector(rate, blk int, p Params) *freqDetector {
	d := &freqDetector{enabled: p.Mode.freq()}
	if !d.enabled {
		d.settled = true
		return d
	}
	d.rate = rate
	d.fft = fourier.NewFFT(blk)
	d.coeffs = make([]complex128, blk/2+1)
	d.ref = p.RefFreq
	d.adopt = int(p.RefFreq) == 0
	d.tol = math.Ceil(float64(rate) / float64(blk))
	d.limit = p.NumBlocks - 1
	return d
}

// update tracks the dominant bin of the block.
func (d *freqDetector) update(block []float64, total int) {
	n := len(block)
	d.coeffs = d.fft.Coefficients(d.coeffs, block)

	var peak float64
	idx := 0
	for i := range n / 2 {
		c := d.coeffs[i]
		if m := real(c)*real(c) + imag(c)*imag(c); m > peak {
			peak = m
			idx = i
		}
	}

	f := math.Round(float64(idx*d.rate) / float64(n))
	hz := int(f)
	if math.Abs(d.ref-f) <= d.tol && hz >= minToneHz && hz <= maxToneHz {
		d.count++
	} else {
		if d.adopt {
			d.ref = f
		}
		d.count = 1
		d.settled = false
	}

	if d.count > d.limit {
		d.settled = true
		d.block = total - d.count
	}
}

type levelDetector struct {
	enabled bool
	settled bool
	block   int

	ops      *simdops.Ops
	levels   []float64 // smoothed levels, newest first
	last     float64
	thres    float64
	alpha    float64
	gradient bool
}

func newLevelDetector(p Params) *levelDetector {
	d := &levelDetector{enabled: p.Mode.amp()}
	if !d.enabled {
		d.settled = true
		return d
	}
	d.ops = simdops.Default()
	d.levels = make([]float64, p.NumBlocks)
	for i := range d.levels {
		d.levels[i] = initialLevel
	}
	d.last = initialLevel
	d.thres = p.ThresholdDB
	d.alpha = p.Alpha
	d.gradient = p.Mode.gradient()
	return d
}

// update folds the block power into the smoothed level history.
func (d *levelDetector) update(block []float64, total int) {
	n := len(d.levels)
	level := mathutil.PowerDB32(d.ops.MeanSquare(block))

	// restart the average after a real level change
	if math.Abs(level-d.last) > d.thres*float64(n) {
		d.last = level
	} else {
		d.last = d.levels[1]
	}
	d.levels[0] = d.alpha*level + (1-d.alpha)*d.last

	if d.gradient {
		d.settled = -mathutil.GradientMean(d.levels)*float64(n) > -d.thres
	} else {
		d.settled = stat.StdDev(d.levels, nil) < d.thres
	}
	if d.settled {
		d.block = total - n
	}

	copy(d.levels[1:], d.levels[:n-1])
}
