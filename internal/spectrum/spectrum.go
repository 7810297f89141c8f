// Package spectrum computes averaged power spectra and mel-band frames of a
// sample stream.
package spectrum

import (
	"fmt"
	"math"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/mathutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/pipeline"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

// oneSided doubles the power of every bin to account for the discarded
// negative frequencies.
const oneSided = 2.0

// Average returns the averaged peak power spectrum of s in dBFS, nfft/2+1
// bins spaced rate/nfft apart. Blocks overlap by half.
func Average(s *wavio.Stream, opts Options) ([]float64, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	nfft := opts.BlockSize(s.Rate())
	if nfft < 2 || nfft%2 != 0 {
		return nil, fmt.Errorf("%d: %w", nfft, ErrInvalidBlockSize)
	}

	tr, err := newTransform(nfft, opts.windowType())
	if err != nil {
		return nil, err
	}
	if err := opts.skipSilence(s); err != nil {
		return nil, fmt.Errorf("strip silence: %w", err)
	}

	buf, err := pipeline.NewBlockBuffer(s, nfft, pipeline.Hop(nfft, pipeline.HalfOverlap))
	if err != nil {
		return nil, err
	}

	acc := make([]float64, tr.bins())
	scale := oneSided / (float64(s.Rate()) * tr.wf * float64(nfft))
	blocks := 0
	for (opts.Averages == 0 || blocks < opts.Averages) && buf.Next() {
		tr.accumulate(acc, buf.Block(), scale)
		blocks++
	}
	if blocks == 0 {
		return nil, fmt.Errorf("%d samples for a %d-point FFT: %w", s.Remaining(), nfft, ErrInputTooShort)
	}

	floor := opts.Floor()
	last := len(acc) - 1
	for i, p := range acc {
		db := 10*math.Log10(p/float64(blocks)) + mathutil.WindowCorrectionDB
		if i != 0 && i != last {
			db += mathutil.ExactPeakCorrectionDB
		}
		acc[i] = max(db, floor)
	}
	return acc, nil
}

// BinFrequency returns the centre frequency of bin i in Hz.
func BinFrequency(i, rate, nfft int) float64 {
	return float64(rate) / float64(nfft) * float64(i)
}
