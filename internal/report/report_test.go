package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Formats(t *testing.T) {
	tests := []struct {
		format string
		x, y   float64
		want   string
	}{
		{FormatDwell, 999.6, -80.123, "1000,\t-80.12\n"},
		{FormatTime, 0.05, 3.0, "0.050000,\t3.00\n"},
		{FormatSpectrum, 23.4375, -120.5, "23.44,\t-120.50\n"},
		{FormatLevel, -6.02, -86.004, "-6.02,\t-86.00\n"},
		{FormatTone, 1000, -6.0206, "1000.000000,\t-6.02\n"},
		{FormatSample, 0.5, -0.25, "0.50000,\t-0.25000\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(&buf, tt.format).Emit(tt.x, tt.y))
		assert.Equal(t, tt.want, buf.String())
	}
}

func TestWriter_Headers(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatDwell)
	require.NoError(t, w.Channel(1))
	require.NoError(t, w.Comment("could not find any frequency dwell"))
	assert.Equal(t, "# channel 1\n# could not find any frequency dwell\n", buf.String())
}

func TestSeries(t *testing.T) {
	var c Collector
	require.NoError(t, Series(&c, []float64{1, 2}, []float64{3, 4}))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []float64{3, 4}, c.Y)

	require.Error(t, Series(&c, []float64{1}, nil))
}

type failing struct{}

func (failing) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_PropagatesErrors(t *testing.T) {
	w := NewWriter(failing{}, FormatDwell)
	require.Error(t, w.Emit(1, 2))
	require.Error(t, Series(w, []float64{1}, []float64{2}))
}

func TestWriter_Frame(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatSpectrum)
	require.NoError(t, w.Frame(0.0213, []float64{-10, -990}))
	require.NoError(t, w.Frame(0.5, nil))
	assert.Equal(t, "0.021300,\t-10.00,\t-990.00\n0.500000\n", buf.String())
}
