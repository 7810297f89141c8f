// Package report writes measurement rows as comma-and-tab separated text.
package report

import (
	"fmt"
	"io"
)

// Row formats of the individual tools.
const (
	FormatDwell    = "%.0f,\t%.2f"
	FormatTime     = "%.6f,\t%.2f"
	FormatSpectrum = "%.2f,\t%.2f"
	FormatLevel    = "%.2f,\t%.2f"
	FormatTone     = "%.6f,\t%.2f"
	FormatSample   = "%.5f,\t%.5f"
)

// Sink receives measurement rows in order.
type Sink interface {
	Emit(x, y float64) error
}

// Writer is a text Sink.
type Writer struct {
	w      io.Writer
	format string
}

// NewWriter writes one row per Emit using format, which must take two
// float64 verbs.
func NewWriter(w io.Writer, format string) *Writer {
	return &Writer{w: w, format: format + "\n"}
}

// Emit writes one row.
func (w *Writer) Emit(x, y float64) error {
	_, err := fmt.Fprintf(w.w, w.format, x, y)
	return err
}

// Channel writes the header that precedes the rows of a channel.
func (w *Writer) Channel(ch int) error {
	_, err := fmt.Fprintf(w.w, "# channel %d\n", ch)
	return err
}

// Comment writes a line prefixed with "# ".
func (w *Writer) Comment(format string, args ...any) error {
	_, err := fmt.Fprintf(w.w, "# "+format+"\n", args...)
	return err
}

// Series emits ys against xs.
func Series(s Sink, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("series length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	for i := range xs {
		if err := s.Emit(xs[i], ys[i]); err != nil {
			return err
		}
	}
	return nil
}

// Collector is a Sink that keeps every row in memory.
type Collector struct {
	X, Y []float64
}

// Emit records one row.
func (c *Collector) Emit(x, y float64) error {
	c.X = append(c.X, x)
	c.Y = append(c.Y, y)
	return nil
}

// Len returns the number of rows.
func (c *Collector) Len() int { return len(c.X) }

// Frame writes one row of a time series of vectors: the time, then every
// value in the FormatSpectrum precision.
func (w *Writer) Frame(t float64, values []float64) error {
	if _, err := fmt.Fprintf(w.w, "%.6f", t); err != nil {
		return err
	}
	for _, v := range values {
		if _, err := fmt.Fprintf(w.w, ",\t%.2f", v); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w.w)
	return err
}
