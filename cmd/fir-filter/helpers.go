package main

import (
	"fmt"
	"sync"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/fir"
)

// blocksPerSecond sets the processing block to a tenth of a second.
const blocksPerSecond = 10

func blockSize(rate int) int {
	return max(1, rate/blocksPerSecond)
}

// filterChannels runs every channel through its own filter, one block at a
// time. Filter state carries over between blocks.
func filterChannels(coeffs []float64, channels [][]float64, block int, parallel bool) ([][]float64, error) {
	filters := make([]*fir.Filter, len(channels))
	for ch := range channels {
		f, err := fir.New(coeffs)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
		filters[ch] = f
	}

	out := make([][]float64, len(channels))
	if parallel && len(channels) > 1 {
		var wg sync.WaitGroup
		for ch := range channels {
			wg.Add(1)
			go func(channel int) {
				defer wg.Done()
				out[channel] = filterBlocks(filters[channel], channels[channel], block)
			}(ch)
		}
		wg.Wait()
		return out, nil
	}

	for ch := range channels {
		out[ch] = filterBlocks(filters[ch], channels[ch], block)
	}
	return out, nil
}

func filterBlocks(f *fir.Filter, src []float64, block int) []float64 {
	dst := make([]float64, len(src))
	for pos := 0; pos < len(src); pos += block {
		end := min(pos+block, len(src))
		f.ProcessArray(dst[pos:end], src[pos:end])
	}
	return dst
}

// compensate drops the first delay samples of each channel and pads the
// tail with zeros, keeping the length.
func compensate(channels [][]float64, delay int) [][]float64 {
	for _, s := range channels {
		if delay >= len(s) {
			clear(s)
			continue
		}
		copy(s, s[delay:])
		clear(s[len(s)-delay:])
	}
	return channels
}
