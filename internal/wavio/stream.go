package wavio

// Stream is a read cursor over one channel. Slices returned by Read alias
// the underlying buffer and must not be modified.
type Stream struct {
	samples []float64
	rate    int
	pos     int
}

// NewStream wraps samples recorded at rate Hz.
func NewStream(samples []float64, rate int) *Stream {
	return &Stream{samples: samples, rate: rate}
}

// Read returns up to n samples from the current position and advances past
// them. A short slice means the end of the stream was reached.
func (s *Stream) Read(n int) []float64 {
	if n <= 0 {
		return nil
	}
	end := min(s.pos+n, len(s.samples))
	out := s.samples[s.pos:end]
	s.pos = end
	return out
}

// Seek moves the cursor to pos, clamped to [0, Len].
func (s *Stream) Seek(pos int) {
	s.pos = max(0, min(pos, len(s.samples)))
}

// Reset rewinds to the first sample.
func (s *Stream) Reset() { s.pos = 0 }

// EOF reports whether every sample has been read.
func (s *Stream) EOF() bool { return s.pos >= len(s.samples) }

// Position returns the index of the next sample to be read.
func (s *Stream) Position() int { return s.pos }

// Len returns the total number of samples.
func (s *Stream) Len() int { return len(s.samples) }

// Remaining returns the number of unread samples.
func (s *Stream) Remaining() int { return len(s.samples) - s.pos }

// Rate returns the sample rate in Hz.
func (s *Stream) Rate() int { return s.rate }

// Samples returns the whole channel.
func (s *Stream) Samples() []float64 { return s.samples }

// Rest returns the unread samples without advancing.
func (s *Stream) Rest() []float64 { return s.samples[s.pos:] }
