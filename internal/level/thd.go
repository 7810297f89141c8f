package level

import (
	"fmt"
	"sort"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/mathutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/simdops"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/sos"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

// first block is short so the filter can ring in before level steps
const (
	leadBlockSeconds = 0.05
	blockSeconds     = 1
)

// THDvsLevel pairs the unfiltered level of every one-second block with its
// level after the 4 kHz filter, for a recording of a 4 kHz tone stepped in
// level. With noiseMod false the tone is notched out (THD+N); with noiseMod
// true only the band around it is kept (noise modulation).
//
// The filter runs continuously over all blocks. The lead-in block is not
// reported, nor are blocks whose levels are at or below -300 dB. Readings
// are sorted by descending unfiltered level.
func THDvsLevel(s *wavio.Stream, noiseMod bool) ([]Reading, error) {
	rate := s.Rate()
	table := sos.FourKFor(rate, noiseMod)
	if table == nil {
		return nil, fmt.Errorf("%d Hz: %w", rate, ErrUnsupportedRate)
	}
	filt, err := sos.New(table)
	if err != nil {
		return nil, err
	}

	ops := simdops.Default()
	blk := int(float64(rate) * leadBlockSeconds)
	filtered := make([]float64, rate*blockSeconds)

	var (
		out    []Reading
		blocks int
	)
	for data := s.Read(blk); len(data) == blk; data = s.Read(blk) {
		unfiltDB := blockDB(ops, data)
		y := filtered[:len(data)]
		filt.ProcessArray(y, data)
		filtDB := blockDB(ops, y)

		if blocks == 0 {
			blk = rate * blockSeconds
		} else if unfiltDB > mathutil.RejectLevelDB && filtDB > mathutil.RejectLevelDB {
			out = append(out, Reading{X: unfiltDB, Y: filtDB})
		}
		blocks++
	}
	if blocks == 0 {
		return nil, ErrInputTooShort
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].X > out[j].X })
	return out, nil
}

func blockDB(ops *simdops.Ops, x []float64) float64 {
	db := mathutil.PowerDB(ops.MeanSquare(x))
	if db == mathutil.NoSignalDB {
		return db
	}
	return db + mathutil.PeakCorrectionDB
}
