package thd

import "fmt"

// DefaultCapacity bounds the number of dwells recorded per channel.
const DefaultCapacity = 5000

// Point is one measurement: the dwell frequency in Hz and its reading in dB.
type Point struct {
	Frequency float64
	Reading   float64
}

// Series is an ordered, capacity-bounded list of points in discovery order.
type Series struct {
	points   []Point
	capacity int
}

// NewSeries returns an empty series. A capacity below 1 selects
// DefaultCapacity.
func NewSeries(capacity int) *Series {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Series{capacity: capacity}
}

// Add appends a point.
func (s *Series) Add(freq, reading float64) error {
	if len(s.points) >= s.capacity {
		return fmt.Errorf("adding %.0f Hz: %w (%d)", freq, ErrCapacityExceeded, s.capacity)
	}
	s.points = append(s.points, Point{Frequency: freq, Reading: reading})
	return nil
}

// Len returns the number of points.
func (s *Series) Len() int { return len(s.points) }

// Points returns the recorded points. The slice must not be modified.
func (s *Series) Points() []Point { return s.points }

// Last returns the most recent point.
func (s *Series) Last() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}
	return s.points[len(s.points)-1], true
}

// Frequencies returns the frequency of every point in order.
func (s *Series) Frequencies() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Frequency
	}
	return out
}
