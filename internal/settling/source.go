package settling

import "github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"

// Source provides the samples to search and learns where settling ended.
type Source interface {
	Rate() int
	// Rest returns the samples from the search origin onwards.
	Rest() []float64
	// Advance is called after a successful search with the number of
	// samples preceding the settle point.
	Advance(n int)
}

type buffer struct {
	samples []float64
	rate    int
}

// Samples wraps a flat in-memory buffer. Advance is a no-op.
func Samples(samples []float64, rate int) Source {
	return buffer{samples: samples, rate: rate}
}

func (b buffer) Rate() int { return b.rate }
func (b buffer) Rest() []float64 { return b.samples }
func (b buffer) Advance(int) {}

type stream struct {
	s *wavio.Stream
}

// StreamSource searches from the current position of s. On success the
// stream is moved to the settle point; on failure it is left untouched.
func StreamSource(s *wavio.Stream) Source {
	return stream{s: s}
}

func (st stream) Rate() int { return st.s.Rate() }
func (st stream) Rest() []float64 { return st.s.Rest() }
func (st stream) Advance(n int) { st.s.Seek(st.s.Position() + n) }
