package spectrum

import (
	"fmt"
	"math"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/mathutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/pipeline"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

const (
	// MelBands is the number of mel bands per frame.
	MelBands = 40

	melWarp    = 3.0
	melFloorDB = -990.0
)

// MelBank holds the triangular mel filter breakpoints for a spectrum of a
// given number of bins.
type MelBank struct {
	breaks []int
	slopes []float64
}

// NewMelBank places MelBands breakpoints on an exponential warp of nBins.
// The breakpoints must be strictly increasing, which fails for very small
// spectra.
func NewMelBank(nBins int) (*MelBank, error) {
	scale := float64(nBins) / math.Expm1(melWarp)
	step := melWarp / MelBands

	m := &MelBank{
		breaks: make([]int, MelBands),
		slopes: make([]float64, MelBands),
	}
	prev := 0
	for i := range MelBands {
		b := mathutil.Lrint(scale * math.Expm1(step*float64(i+1)))
		if b <= prev || b > nBins {
			return nil, fmt.Errorf("%d bins are too few for %d mel bands: %w", nBins, MelBands, ErrInvalidBlockSize)
		}
		m.breaks[i] = b
		m.slopes[i] = 1 / float64(b-prev)
		prev = b
	}
	return m, nil
}

// Breaks returns the band breakpoints as bin indices.
func (m *MelBank) Breaks() []int { return m.breaks }

// Apply reduces the linear power spectrum to MelBands values in dB. Each
// band is the triangular weighted sum of its bins normalised by the summed
// weights of the overlapping slopes. The last band repeats the final
// computed value.
func (m *MelBank) Apply(dst, power []float64) {
	var up, prevSum float64

	// the first band has only an upward slope anchored at bin 0
	a := m.slopes[0]
	for j, b0 := 1, a; j < m.breaks[0]; j++ {
		up += power[j] * b0
		prevSum = b0
		b0 += a
	}

	var mel float64
	for i := 1; i < MelBands; i++ {
		a = m.slopes[i]
		b0, b1 := a, 1-a
		j := m.breaks[i-1]
		down := up + power[j]
		up = 0

		var curSum float64
		for j++; j < m.breaks[i]; j++ {
			up += power[j] * b0
			down += power[j] * b1
			curSum += b1
			b0 += a
			b1 -= a
		}

		mel = down / (1 + prevSum + curSum)
		prevSum = curSum
		dst[i-1] = melDB(mel)
	}
	dst[MelBands-1] = melDB(mel)
}

func melDB(v float64) float64 {
	db := 10 * math.Log10(v)
	if !(db > melFloorDB) {
		return melFloorDB
	}
	return db
}

// MelFrames returns one mel vector per frame of opts.NFFT samples. Frames
// start stride samples apart; stride 0 selects half a block. Averages, when
// set, limits the number of frames.
func MelFrames(s *wavio.Stream, opts Options, stride int) ([][]float64, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	nfft := opts.BlockSize(s.Rate())
	if nfft < 2 || nfft%2 != 0 {
		return nil, fmt.Errorf("%d: %w", nfft, ErrInvalidBlockSize)
	}
	if stride < 0 {
		return nil, fmt.Errorf("invalid stride: %d", stride)
	}
	if stride == 0 {
		stride = pipeline.Hop(nfft, pipeline.HalfOverlap)
	}

	tr, err := newTransform(nfft, opts.windowType())
	if err != nil {
		return nil, err
	}
	bank, err := NewMelBank(tr.bins())
	if err != nil {
		return nil, err
	}
	if err := opts.skipSilence(s); err != nil {
		return nil, fmt.Errorf("strip silence: %w", err)
	}

	buf, err := pipeline.NewBlockBuffer(s, nfft, stride)
	if err != nil {
		return nil, err
	}

	power := make([]float64, tr.bins())
	scale := oneSided / tr.wf
	var frames [][]float64
	for (opts.Averages == 0 || len(frames) < opts.Averages) && buf.Next() {
		clear(power)
		tr.accumulate(power, buf.Block(), scale)
		frame := make([]float64, MelBands)
		bank.Apply(frame, power)
		frames = append(frames, frame)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("%d samples for a %d-point FFT: %w", s.Remaining(), nfft, ErrInputTooShort)
	}
	return frames, nil
}
