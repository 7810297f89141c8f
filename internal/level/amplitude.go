package level

import (
	"fmt"
	"math"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

// MaxAmplitudeSeconds is the longest view AmplitudeVsTime prints.
const MaxAmplitudeSeconds = 32.0

// AmplitudeOptions selects the time window of AmplitudeVsTime in seconds
// from the start of the file. A zero End selects the longest view.
type AmplitudeOptions struct {
	Start float64
	End   float64
}

// Validate checks the options.
func (o *AmplitudeOptions) Validate() error {
	if o.Start < 0 || o.End < 0 {
		return fmt.Errorf("negative time limit: start %v, end %v", o.Start, o.End)
	}
	if o.End != 0 && o.End <= o.Start {
		return fmt.Errorf("end %v s is not after start %v s", o.End, o.Start)
	}
	return nil
}

// Truncated reports whether the requested view exceeds MaxAmplitudeSeconds.
func (o *AmplitudeOptions) Truncated() bool {
	return o.End != 0 && o.End-o.Start > MaxAmplitudeSeconds
}

// span returns the sample range of the view.
func (o *AmplitudeOptions) span(rate int) (int, int) {
	end := o.Start + MaxAmplitudeSeconds
	if o.End != 0 {
		end = min(o.End, end)
	}
	fs := float64(rate)
	return int(math.Round(o.Start * fs)), int(math.Round(end * fs))
}

// AmplitudeVsTime returns the raw samples of s inside the view, timed in
// seconds from the start of the stream.
func AmplitudeVsTime(s *wavio.Stream, opts AmplitudeOptions) ([]Reading, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	first, last := opts.span(s.Rate())
	last = min(last, s.Len())
	if first >= last {
		return nil, fmt.Errorf("view starts at sample %d of %d: %w", first, s.Len(), ErrInputTooShort)
	}

	s.Seek(first)
	samples := s.Read(last - first)

	dt := 1 / float64(s.Rate())
	out := make([]Reading, len(samples))
	for i, v := range samples {
		out[i] = Reading{X: float64(first+i) * dt, Y: v}
	}
	return out, nil
}
