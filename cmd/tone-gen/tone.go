package main

import (
	"errors"
	"fmt"
	"math"
)

// levelToneHz is the frequency of the stepped-level signal measured by
// thd-vs-level.
const levelToneHz = 4000.0

const (
	levelLeadSeconds = 0.05
	levelStepSeconds = 1.0
)

// Sweep describes a stepped sine: every frequency held for Dwell seconds
// after Lead seconds of silence. Phase runs on across steps.
type Sweep struct {
	Rate  int
	Freqs []float64
	Amp   float64
	Dwell float64
	Lead  float64
}

// Validate checks the sweep.
func (s *Sweep) Validate() error {
	if s.Rate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", s.Rate)
	}
	if len(s.Freqs) == 0 {
		return errors.New("no frequencies")
	}
	for _, f := range s.Freqs {
		if f <= 0 || f >= float64(s.Rate)/2 {
			return fmt.Errorf("frequency %.1f Hz outside (0, %d)", f, s.Rate/2)
		}
	}
	if s.Dwell <= 0 || s.Lead < 0 {
		return errors.New("dwell must be positive and lead not negative")
	}
	if s.Amp <= 0 || s.Amp > 1 {
		return fmt.Errorf("amplitude %v outside (0, 1]", s.Amp)
	}
	return nil
}

// Generate renders the sweep.
func (s *Sweep) Generate() ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	lead := int(math.Round(s.Lead * float64(s.Rate)))
	dwell := int(math.Round(s.Dwell * float64(s.Rate)))

	out := make([]float64, lead, lead+dwell*len(s.Freqs))
	var phase float64
	for _, f := range s.Freqs {
		out, phase = appendTone(out, f, s.Amp, s.Rate, dwell, phase)
	}
	return out, nil
}

// LevelSteps renders the thd-vs-level stimulus: a 4 kHz tone with a short
// lead-in at the first level, then one second per level in dBFS.
func LevelSteps(rate int, levelsDB []float64) ([]float64, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", rate)
	}
	if len(levelsDB) == 0 {
		return nil, errors.New("no levels")
	}
	for _, l := range levelsDB {
		if l > 0 {
			return nil, fmt.Errorf("level %.1f dBFS above full scale", l)
		}
	}

	lead := int(math.Round(levelLeadSeconds * float64(rate)))
	step := int(math.Round(levelStepSeconds * float64(rate)))
	out := make([]float64, 0, lead+step*len(levelsDB))

	var phase float64
	out, phase = appendTone(out, levelToneHz, dbToAmp(levelsDB[0]), rate, lead, phase)
	for _, l := range levelsDB {
		out, phase = appendTone(out, levelToneHz, dbToAmp(l), rate, step, phase)
	}
	return out, nil
}

// LogFreqs returns perOctave steps per octave from start up to and
// including stop.
func LogFreqs(start, stop float64, perOctave int) ([]float64, error) {
	if start <= 0 || stop < start || perOctave < 1 {
		return nil, fmt.Errorf("invalid range %.1f to %.1f Hz at %d per octave", start, stop, perOctave)
	}
	ratio := math.Pow(2, 1/float64(perOctave))
	var out []float64
	for f := start; f <= stop*(1+1e-9); f *= ratio {
		out = append(out, math.Round(f))
	}
	return out, nil
}

func appendTone(dst []float64, freq, amp float64, rate, n int, phase float64) ([]float64, float64) {
	step := 2 * math.Pi * freq / float64(rate)
	for range n {
		dst = append(dst, amp*math.Sin(phase))
		phase += step
	}
	return dst, math.Mod(phase, 2*math.Pi)
}

func dbToAmp(db float64) float64 {
	return math.Pow(10, db/20)
}
