package spectrum

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ToneSearchBins is the half-width of the search window around each tone.
const ToneSearchBins = 4

// Peak is the strongest bin near one requested tone.
type Peak struct {
	Frequency float64 // Hz, centre of the strongest bin
	Level     float64 // dB
}

// ReadTones parses one frequency in Hz per line. Blank lines and lines
// starting with '#' are skipped; anything after the first field is ignored.
func ReadTones(r io.Reader) ([]float64, error) {
	var out []float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], ","), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("line %d: invalid frequency %v", line, f)
		}
		out = append(out, f)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoTones
	}
	return out, nil
}

// ToneBins maps tone frequencies to sorted, distinct FFT bin indices.
func ToneBins(freqs []float64, rate, nfft int) []int {
	bins := make([]int, len(freqs))
	for i, f := range freqs {
		bins[i] = int(math.Round(f * float64(nfft) / float64(rate)))
	}
	slices.Sort(bins)
	return slices.Compact(bins)
}

// TonePeaks returns the maximum of levels within ToneSearchBins of every
// tone bin. The first bin wins a tie. Tones above the last bin are dropped.
func TonePeaks(levels []float64, rate, nfft int, tones []float64) ([]Peak, error) {
	if len(tones) == 0 {
		return nil, ErrNoTones
	}
	last := len(levels) - 1
	var out []Peak
	for _, bin := range ToneBins(tones, rate, nfft) {
		lo := max(bin-ToneSearchBins, 0)
		hi := min(bin+ToneSearchBins, last)
		if lo > last {
			break
		}
		best := lo
		for k := lo + 1; k <= hi; k++ {
			if levels[k] > levels[best] {
				best = k
			}
		}
		out = append(out, Peak{Frequency: BinFrequency(best, rate, nfft), Level: levels[best]})
	}
	return out, nil
}
