package wavio

import (
	"fmt"
	"math"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/mathutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/simdops"
)

// SilenceMode selects how the start of the signal is located.
type SilenceMode int

const (
	// SilenceDefault starts at the first sample of at least one LSB.
	SilenceDefault SilenceMode = iota
	// SilenceSamples starts at the first sample of at least 2^Threshold LSB.
	SilenceSamples
	// SilenceDB starts inside the first block whose average level reaches
	// Threshold dBFS.
	SilenceDB
)

const (
	// silenceBlocksPerSecond sets the dB-mode analysis block to fs/20.
	silenceBlocksPerSecond = 20
	// silenceSubBlocks is the number of successive sub-blocks averaged in dB mode.
	silenceSubBlocks = 5
)

// SilenceConfig configures leading-silence stripping.
type SilenceConfig struct {
	Mode      SilenceMode
	Threshold float64
}

// Validate checks the configuration.
func (c SilenceConfig) Validate() error {
	switch c.Mode {
	case SilenceDefault, SilenceDB:
		return nil
	case SilenceSamples:
		if c.Threshold < 0 {
			return fmt.Errorf("sample threshold %v: must not be negative", c.Threshold)
		}
		return nil
	default:
		return fmt.Errorf("unknown silence mode %d", c.Mode)
	}
}

// LeadSilence returns the first sample index at which any channel of f
// leaves the leading silence.
func (f *File) LeadSilence(cfg SilenceConfig) (int, error) {
	return StripLeadSilence(f.Samples, f.Rate, f.BitDepth, cfg)
}

// StripLeadSilence returns the earliest index over all channels where the
// signal reaches the configured threshold. Files in which no channel does
// return ErrSilent.
func StripLeadSilence(channels [][]float64, rate, bitDepth int, cfg SilenceConfig) (int, error) {
	if err := checkBitDepth(bitDepth); err != nil {
		return 0, err
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	lsb := 1 / fullScale(bitDepth)
	size := 0
	for _, ch := range channels {
		size = max(size, len(ch))
	}

	start := size
	for _, samples := range channels {
		var candidate int
		switch cfg.Mode {
		case SilenceSamples:
			candidate = firstAbove(samples, 0, math.Pow(2, cfg.Threshold)*lsb)
		case SilenceDB:
			candidate = firstAboveDB(samples, rate, cfg.Threshold, lsb)
		default:
			candidate = firstAbove(samples, 0, lsb)
		}
		start = min(start, candidate)
	}

	if start >= size {
		return size, ErrSilent
	}
	return start, nil
}

// firstAbove returns the index of the first sample at or after from whose
// magnitude reaches thres, or len(samples).
func firstAbove(samples []float64, from int, thres float64) int {
	for i := from; i < len(samples); i++ {
		if math.Abs(samples[i]) >= thres {
			return i
		}
	}
	return len(samples)
}

// firstAboveDB steps through samples in fs/100 chunks until the average of
// the last five chunk levels reaches thresDB, then returns the first sample
// of at least one LSB inside the final chunk.
func firstAboveDB(samples []float64, rate int, thresDB, lsb float64) int {
	step := rate / silenceBlocksPerSecond / silenceSubBlocks
	if step < 1 {
		step = 1
	}

	ops := simdops.Default()
	var levels [silenceSubBlocks]float64
	for i := range levels {
		levels[i] = mathutil.NoSignalDB
	}

	level := mathutil.NoSignalDB
	pos, chunkStart := 0, 0
	for i := 0; level < thresDB && pos < len(samples); i++ {
		chunkStart = pos
		end := min(pos+step, len(samples))
		// short final chunks are still averaged over a full step
		levels[i%silenceSubBlocks] = mathutil.PowerDB(ops.SumSquares(samples[pos:end]) / float64(step))
		pos = end

		var sum float64
		for _, l := range levels {
			sum += math.Pow(10, l/20)
		}
		level = 20 * math.Log10(sum/silenceSubBlocks)
	}

	return firstAbove(samples[:pos], chunkStart, lsb)
}
