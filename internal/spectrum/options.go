package spectrum

import (
	"fmt"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/mathutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/window"
)

const (
	minPow2NFFT = 512
	maxPow2NFFT = 65536
)

// extraSizes are the allowed FFT sizes that are not powers of two.
var extraSizes = []int{10240, 32000, 44100, 48000}

// Options configures the averaged spectrum and the mel frames.
type Options struct {
	NFFT      int         // FFT size; 0 uses one second of samples
	Window    window.Type // 0 selects window.Default
	Averages  int         // maximum number of blocks; 0 reads to the end
	NoSilence bool        // keep the leading silence
	Silence   wavio.SilenceConfig
	MinDB     *float64 // floor for dB output; nil derives it from BitDepth
	BitDepth  int
}

// Validate checks the options independently of the sample rate.
func (o *Options) Validate() error {
	if o.NFFT != 0 && !validNFFT(o.NFFT) {
		return fmt.Errorf("%d: %w (use a power of two from %d to %d, or one of %v)",
			o.NFFT, ErrInvalidBlockSize, minPow2NFFT, maxPow2NFFT, extraSizes)
	}
	if o.Averages < 0 {
		return fmt.Errorf("invalid number of averages: %d", o.Averages)
	}
	if o.MinDB == nil || !o.NoSilence {
		switch o.BitDepth {
		case 16, 24, 32:
		default:
			return fmt.Errorf("%d bits: %w", o.BitDepth, wavio.ErrInvalidBitDepth)
		}
	}
	if !o.NoSilence {
		return o.Silence.Validate()
	}
	return nil
}

// BlockSize resolves NFFT against the sample rate.
func (o *Options) BlockSize(rate int) int {
	if o.NFFT == 0 {
		return rate
	}
	return o.NFFT
}

// Floor returns the dB floor applied to every bin.
func (o *Options) Floor() float64 {
	if o.MinDB != nil {
		return *o.MinDB
	}
	return mathutil.MinDBForBitDepth(o.BitDepth)
}

func (o *Options) windowType() window.Type {
	if o.Window == 0 {
		return window.Default
	}
	return o.Window
}

func validNFFT(n int) bool {
	if n >= minPow2NFFT && n <= maxPow2NFFT && n&(n-1) == 0 {
		return true
	}
	for _, s := range extraSizes {
		if n == s {
			return true
		}
	}
	return false
}

// skipSilence positions s at the first non-silent sample of its channel.
func (o *Options) skipSilence(s *wavio.Stream) error {
	if o.NoSilence {
		return nil
	}
	start, err := wavio.StripLeadSilence([][]float64{s.Rest()}, s.Rate(), o.BitDepth, o.Silence)
	if err != nil {
		return err
	}
	s.Seek(s.Position() + start)
	return nil
}
