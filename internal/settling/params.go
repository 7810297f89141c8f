package settling

import "fmt"

// Mode selects which detectors run.
type Mode int

const (
	// Freq waits for a stable dominant frequency.
	Freq Mode = iota + 1
	// AmpNoGradient waits for a stable smoothed level (standard deviation test).
	AmpNoGradient
	// AmpGradient waits for the smoothed level to stop falling.
	AmpGradient
	// FreqAmpNoGradient combines Freq and AmpNoGradient.
	FreqAmpNoGradient
	// FreqAmpGradient combines Freq and AmpGradient.
	FreqAmpGradient
)

// MaxBlocks is the largest supported NumBlocks.
const MaxBlocks = 20

const (
	minBlocks = 2

	// block sizes are 2^(round(log2 fs) - shift)
	freqBlockShift = 3
	ampBlockShift  = 5

	// stepFraction of a block is read per iteration, a 75% overlap.
	stepFraction = 0.25

	minToneHz = 14
	maxToneHz = 20100

	// initialLevel primes the smoothed level history so that nothing can
	// settle before NumBlocks real readings exist.
	initialLevel = 999.0
)

var modeNames = map[Mode]string{
	Freq:              "freq",
	AmpNoGradient:     "amp",
	AmpGradient:       "amp-gradient",
	FreqAmpNoGradient: "freq+amp",
	FreqAmpGradient:   "freq+amp-gradient",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func (m Mode) freq() bool {
	return m == Freq || m == FreqAmpNoGradient || m == FreqAmpGradient
}

func (m Mode) amp() bool {
	return m != Freq
}

func (m Mode) gradient() bool {
	return m == AmpGradient || m == FreqAmpGradient
}

// Params configures a settling search.
type Params struct {
	Mode        Mode
	RefFreq     float64 // expected frequency in Hz; 0 adopts the detected one
	ThresholdDB float64
	Alpha       float64 // smoothing factor of the level average
	NumBlocks   int     // consecutive blocks that must agree
	Limit       int     // maximum samples searched; 0 searches everything
}

// Validate checks the parameters.
func (p *Params) Validate() error {
	if _, ok := modeNames[p.Mode]; !ok {
		return fmt.Errorf("unknown settling mode %d", p.Mode)
	}
	if p.NumBlocks < minBlocks || p.NumBlocks > MaxBlocks {
		return fmt.Errorf("invalid block count %d: must be in [%d, %d]", p.NumBlocks, minBlocks, MaxBlocks)
	}
	if p.Limit < 0 {
		return fmt.Errorf("invalid search limit: %d", p.Limit)
	}
	return nil
}
