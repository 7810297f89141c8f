package cli

import (
	"errors"
	"fmt"
	"io"

	sats "github.com/DolbyLaboratories/SATS-software-audio-test-suite"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/report"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/thd"
)

// noDwellMessage is written in place of the rows of a channel without a
// single usable dwell.
const noDwellMessage = "could not find any frequency dwell"

// WriteDwells writes the dwell readings of every channel to out. Rejected
// dwells are reported as warnings on errw.
func WriteDwells(out, errw io.Writer, results []sats.DwellResult) error {
	w := report.NewWriter(out, report.FormatDwell)
	for _, r := range results {
		if err := w.Channel(r.Channel); err != nil {
			return err
		}
		for _, f := range r.BadDwells {
			PrintWarning(errw, fmt.Sprintf("channel %d: bad dwell at %.0f Hz", r.Channel, f))
		}
		if errors.Is(r.Err, thd.ErrNoDwell) {
			if err := w.Comment(noDwellMessage); err != nil {
				return err
			}
			continue
		}
		if r.Err != nil {
			return fmt.Errorf("channel %d: %w", r.Channel, r.Err)
		}
		for _, p := range r.Points {
			if err := w.Emit(p.Frequency, p.Reading); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSpectra writes the spectrum rows of every channel in format.
func WriteSpectra(out io.Writer, format string, results []sats.SpectrumResult) error {
	w := report.NewWriter(out, format)
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("channel %d: %w", r.Channel, r.Err)
		}
		if err := w.Channel(r.Channel); err != nil {
			return err
		}
		if err := report.Series(w, r.Frequencies, r.Levels); err != nil {
			return err
		}
	}
	return nil
}

// WriteMel writes one row per mel frame, timed at the frame start.
func WriteMel(out io.Writer, rate, stride int, results []sats.MelResult) error {
	w := report.NewWriter(out, report.FormatSpectrum)
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("channel %d: %w", r.Channel, r.Err)
		}
		if err := w.Channel(r.Channel); err != nil {
			return err
		}
		for i, frame := range r.Frames {
			if err := w.Frame(float64(i*stride)/float64(rate), frame); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteLevels writes block level readings in format.
func WriteLevels(out io.Writer, format string, results []sats.LevelResult) error {
	w := report.NewWriter(out, format)
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("channel %d: %w", r.Channel, r.Err)
		}
		if err := w.Channel(r.Channel); err != nil {
			return err
		}
		for _, p := range r.Readings {
			if err := w.Emit(p.X, p.Y); err != nil {
				return err
			}
		}
	}
	return nil
}
