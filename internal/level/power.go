// Package level implements the block level tools: power versus time and
// THD versus level.
package level

import (
	"errors"
	"fmt"
	"math"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/mathutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/pipeline"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/simdops"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

// DefaultBlockMillis is the power-vs-time block length when none is given.
const DefaultBlockMillis = 100.0

// Reading is one output row.
type Reading struct {
	X float64
	Y float64
}

// PowerOptions configures PowerVsTime. At most one of BlockSamples and
// BlockMillis may be set.
type PowerOptions struct {
	BlockSamples int
	BlockMillis  float64
	MinDB        float64 // readings are clipped to this floor
}

// Validate checks the options.
func (o *PowerOptions) Validate() error {
	if o.BlockSamples != 0 && o.BlockMillis != 0 {
		return errors.New("block size in samples and in ms cannot be set simultaneously")
	}
	if o.BlockSamples < 0 || o.BlockMillis < 0 {
		return fmt.Errorf("negative block size: %w", ErrInvalidBlockSize)
	}
	return nil
}

// BlockSize returns the block length in samples at rate.
func (o *PowerOptions) BlockSize(rate int) int {
	if o.BlockSamples > 0 {
		return o.BlockSamples
	}
	ms := o.BlockMillis
	if ms == 0 {
		ms = DefaultBlockMillis
	}
	return int(math.Floor(float64(rate) / 1000 * ms))
}

// PowerVsTime reports the level of consecutive blocks read from the current
// position of s. Each reading is stamped with the centre of its block.
func PowerVsTime(s *wavio.Stream, opts PowerOptions) ([]Reading, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rate := s.Rate()
	blk := opts.BlockSize(rate)
	if blk < 1 {
		return nil, fmt.Errorf("block of %d samples is less than one sample: %w", blk, ErrInvalidBlockSize)
	}
	// the stream may already be past the lead silence
	if blk > s.Remaining() {
		return nil, fmt.Errorf("block of %d samples exceeds the %d samples left: %w", blk, s.Remaining(), ErrInvalidBlockSize)
	}

	buf, err := pipeline.NewBlockBuffer(s, blk, blk)
	if err != nil {
		return nil, err
	}

	ops := simdops.Default()
	t := float64(blk) / (2 * float64(rate))
	dt := float64(blk) / float64(rate)

	var out []Reading
	for buf.Next() {
		db := mathutil.PowerDB(ops.MeanSquare(buf.Block())) + mathutil.PeakCorrectionDB
		out = append(out, Reading{X: t, Y: mathutil.ClipDB(db, opts.MinDB)})
		t += dt
	}
	return out, nil
}
