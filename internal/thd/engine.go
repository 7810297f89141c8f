// Package thd measures THD+N or level versus frequency over a stepped-sine
// recording.
//
// The engine walks the channel dwell by dwell. Every dwell is checked
// against a prediction from the previous frequencies, so spurious detections
// inside a sweep are dropped, and then measured either as the residual after
// notching out the fundamental (THD+N) or as the plain RMS level
// (frequency response).
package thd

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/dwell"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/mathutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/settling"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/simdops"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/sos"
)

// Mode selects the per-dwell measurement.
type Mode int

const (
	// THDN reports the level of everything but the fundamental.
	THDN Mode = iota
	// FrequencyResponse reports the level of the whole dwell.
	FrequencyResponse
)

func (m Mode) String() string {
	switch m {
	case THDN:
		return "thd+n"
	case FrequencyResponse:
		return "frequency response"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

const (
	// minDwellSeconds is the shortest dwell that is measured.
	minDwellSeconds = 0.5

	// predictAfter is the number of points needed before predicting.
	predictAfter = 2
	// predictTolerance is the relative window around the prediction.
	predictTolerance = 0.1
	maxPredictedHz   = 20000

	// residual low-pass is applied above this rate
	lowPassMinRate = 42000
)

// residual settling search
var residualParams = settling.Params{
	Mode:        settling.AmpGradient,
	ThresholdDB: 1.0,
	Alpha:       0.25,
	NumBlocks:   20,
}

// Finder locates the dwell following a position. *dwell.Finder implements
// it.
type Finder interface {
	Next(samples []float64, pos int) (dwell.Dwell, error)
}

// Result holds the measurements of one channel.
type Result struct {
	Points []Point
	// BadDwells lists frequencies of dwells that could not be measured.
	BadDwells []float64
}

// Engine runs a THD+N or frequency response measurement on one channel.
// An Engine holds no per-run state and may be reused sequentially.
type Engine struct {
	Mode  Mode
	Rate  int
	MinDB float64 // readings are clipped to this floor

	// Finder defaults to a dwell.Finder for Rate.
	Finder Finder
	// Capacity bounds the number of points; 0 selects DefaultCapacity.
	Capacity int
	// Logger, when set, receives a per-dwell trace.
	Logger *log.Logger
}

func (e *Engine) logf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}

func (e *Engine) finder() Finder {
	if e.Finder != nil {
		return e.Finder
	}
	f := dwell.NewFinder(e.Rate)
	f.Logger = e.Logger
	return f
}

// Run measures every dwell of samples, which must already be stripped of
// lead silence. A channel without a single valid point returns ErrNoDwell
// together with any bad dwells.
func (e *Engine) Run(samples []float64) (Result, error) {
	if e.Rate <= 0 {
		return Result{}, fmt.Errorf("invalid sample rate: %d", e.Rate)
	}

	finder := e.finder()
	series := NewSeries(e.Capacity)
	var bad []float64
	minSize := minDwellSeconds * float64(e.Rate)

	pos := 0
	d, err := finder.Next(samples, pos)
	for {
		if errors.Is(err, dwell.ErrNoTone) && d.NextStart > pos {
			// nothing to measure in this stretch, resume after it
			e.logf("skipping to %d: %v", d.NextStart, err)
			pos = d.NextStart
			d, err = finder.Next(samples, pos)
			continue
		}
		if err != nil || d.Frequency <= 0 {
			break
		}
		settle := d.SettlePoint

		if series.Len() > predictAfter {
			pred := Predict(series.Frequencies())
			last, _ := series.Last()
			lower := max(pred*(1-predictTolerance), last.Frequency)
			upper := min(pred*(1+predictTolerance), maxPredictedHz)
			e.logf("next predicted frequency: %.0f Hz (%.0f - %.0f Hz)", pred, lower, upper)

			if d.Frequency < lower || d.Frequency > upper {
				e.logf("rejected frequency %.0f Hz", d.Frequency)
				settle = d.End
			}
		}

		if float64(d.End-settle) < minSize {
			e.logf("dwell at %d too short", settle)
		} else {
			reading, merr := e.measure(samples[settle:d.End], d.Frequency)
			if merr != nil {
				e.logf("%.0f Hz: %v", d.Frequency, merr)
				if len(bad) >= series.capacity {
					return e.result(series, bad), fmt.Errorf("bad dwell %.0f Hz: %w", d.Frequency, ErrCapacityExceeded)
				}
				bad = append(bad, d.Frequency)
			} else {
				reading = mathutil.ClipDB(reading, e.MinDB)
				if aerr := series.Add(d.Frequency, reading); aerr != nil {
					return e.result(series, bad), aerr
				}
				e.logf("%.0f Hz: %.2f dB", d.Frequency, reading)
			}
		}

		if d.NextStart <= pos {
			err = fmt.Errorf("dwell at %d does not advance: %w", pos, dwell.ErrNoChange)
			break
		}
		pos = d.NextStart
		d, err = finder.Next(samples, pos)
	}
	if err != nil {
		e.logf("search ended: %v", err)
	}

	res := e.result(series, bad)
	if series.Len() == 0 {
		return res, ErrNoDwell
	}
	return res, nil
}

func (e *Engine) result(s *Series, bad []float64) Result {
	return Result{Points: s.Points(), BadDwells: bad}
}

func (e *Engine) measure(seg []float64, freq float64) (float64, error) {
	if e.Mode == FrequencyResponse {
		return Level(seg), nil
	}
	return e.Residual(seg, freq)
}

// Level returns the RMS level of seg in dB relative to a full-scale sine.
func Level(seg []float64) float64 {
	rms := math.Sqrt(simdops.Default().MeanSquare(seg))
	return mathutil.AmplitudeDB32(rms) + mathutil.ExactPeakCorrectionDB
}

// Residual notches out freq, low-passes the remainder and returns its level
// in dB from the point where it has settled.
func (e *Engine) Residual(seg []float64, freq float64) (float64, error) {
	y := make([]float64, len(seg))

	notch := sos.NewBiquad()
	notch.SetNotch(freq, e.Rate)
	notch.ProcessArray(y, seg)

	if lp := residualLowPass(e.Rate); lp != nil {
		sos.MustNew(lp).ProcessArray(y, y)
	}

	p := residualParams
	p.RefFreq = freq
	p.Limit = len(y)
	res, err := settling.Detect(settling.Samples(y, e.Rate), p)
	if err != nil {
		return mathutil.NoSignalDB, fmt.Errorf("%w: %w", ErrNoResidualSettling, err)
	}
	// Point is 1-based
	rms := math.Sqrt(simdops.Default().MeanSquare(y[res.Point-1:]))
	if rms == 0 {
		return mathutil.NoSignalDB, nil
	}
	return mathutil.AmplitudeDB32(rms) + mathutil.PeakCorrectionDB, nil
}

// residualLowPass returns the band-limiting filter for the residual. Every
// rate above 42 kHz other than 44.1 kHz uses the 48 kHz table.
func residualLowPass(rate int) *sos.Coeffs {
	switch {
	case rate <= lowPassMinRate:
		return nil
	case rate == sos.Rate44100:
		return sos.LowPass44100
	default:
		return sos.LowPass48000
	}
}
