package sats

import (
	"fmt"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/level"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/spectrum"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/thd"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

// DwellResult holds the dwell measurements of one channel.
type DwellResult struct {
	Channel   int
	Points    []thd.Point
	BadDwells []float64
	Err       error
}

// SpectrumResult holds the averaged spectrum of one channel.
type SpectrumResult struct {
	Channel     int
	Frequencies []float64 // Hz
	Levels      []float64 // dB
	Err         error
}

// MelResult holds the mel frames of one channel.
type MelResult struct {
	Channel int
	Frames  [][]float64 // spectrum.MelBands values per frame
	Err     error
}

// LevelResult holds the readings of a block level tool for one channel.
type LevelResult struct {
	Channel  int
	Readings []level.Reading
	Err      error
}

// Analyzer runs measurement tools on decoded files.
type Analyzer struct {
	cfg Config
}

// Open decodes a WAV file.
func Open(path string) (*wavio.File, error) {
	return wavio.Open(path)
}

// New creates an analyzer. A nil config selects DefaultConfig.
func New(config *Config) (*Analyzer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{cfg: *config}, nil
}

// Config returns a copy of the analyzer configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// channels resolves the channel selection against f.
func (a *Analyzer) channels(f *wavio.File) ([]int, error) {
	n := f.NumChannels()
	if a.cfg.Channel == AllChannels {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	if a.cfg.Channel >= n {
		return nil, fmt.Errorf("%w: channel %d of a %d-channel file", ErrNoChannel, a.cfg.Channel, n)
	}
	return []int{a.cfg.Channel}, nil
}

// start returns the first sample after the leading silence of f.
func (a *Analyzer) start(f *wavio.File) (int, error) {
	if a.cfg.NoSilence {
		return 0, nil
	}
	return f.LeadSilence(a.cfg.Silence)
}

// THDvsFrequency measures THD+N for every dwell of a stepped sine.
func (a *Analyzer) THDvsFrequency(f *wavio.File) ([]DwellResult, error) {
	return a.dwells(f, thd.THDN)
}

// FrequencyResponse measures the level of every dwell of a stepped sine.
func (a *Analyzer) FrequencyResponse(f *wavio.File) ([]DwellResult, error) {
	return a.dwells(f, thd.FrequencyResponse)
}

func (a *Analyzer) dwells(f *wavio.File, mode thd.Mode) ([]DwellResult, error) {
	chans, err := a.channels(f)
	if err != nil {
		return nil, err
	}
	start, serr := a.start(f)

	out := make([]DwellResult, len(chans))
	forEachChannel(a.cfg.EnableParallel, chans, func(i, ch int) {
		r := &out[i]
		r.Channel = ch
		if serr != nil {
			r.Err = serr
			return
		}

		e := thd.Engine{
			Mode:     mode,
			Rate:     f.Rate,
			MinDB:    a.cfg.Floor(f.BitDepth),
			Capacity: a.cfg.Capacity,
			Logger:   a.cfg.channelLogger(ch),
		}
		res, err := e.Run(f.Samples[ch][start:])
		r.Points, r.BadDwells, r.Err = res.Points, res.BadDwells, err
	})
	return out, nil
}

// spectrumOptions positions a stream per channel after the file-wide
// silence, so the spectrum package must not strip again.
func (a *Analyzer) spectrumOptions(f *wavio.File, opts spectrum.Options) spectrum.Options {
	opts.NoSilence = true
	opts.BitDepth = f.BitDepth
	if opts.MinDB == nil && a.cfg.MinDB != nil {
		opts.MinDB = a.cfg.MinDB
	}
	return opts
}

// Spectrum computes the averaged power spectrum of every channel.
func (a *Analyzer) Spectrum(f *wavio.File, opts spectrum.Options) ([]SpectrumResult, error) {
	opts = a.spectrumOptions(f, opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	chans, err := a.channels(f)
	if err != nil {
		return nil, err
	}
	start, serr := a.start(f)
	nfft := opts.BlockSize(f.Rate)

	out := make([]SpectrumResult, len(chans))
	forEachChannel(a.cfg.EnableParallel, chans, func(i, ch int) {
		r := &out[i]
		r.Channel = ch
		if serr != nil {
			r.Err = serr
			return
		}

		s, err := f.Stream(ch)
		if err != nil {
			r.Err = err
			return
		}
		s.Seek(start)
		r.Levels, r.Err = spectrum.Average(s, opts)
		if r.Err != nil {
			return
		}
		r.Frequencies = make([]float64, len(r.Levels))
		for k := range r.Frequencies {
			r.Frequencies[k] = spectrum.BinFrequency(k, f.Rate, nfft)
		}
	})
	return out, nil
}

// MelSpectrogram computes mel frames of every channel, advancing stride
// samples per frame (0 selects half the FFT size). opts.NFFT defaults to
// DefaultMelNFFT.
func (a *Analyzer) MelSpectrogram(f *wavio.File, opts spectrum.Options, stride int) ([]MelResult, error) {
	if opts.NFFT == 0 {
		opts.NFFT = DefaultMelNFFT
	}
	opts = a.spectrumOptions(f, opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	chans, err := a.channels(f)
	if err != nil {
		return nil, err
	}
	start, serr := a.start(f)

	out := make([]MelResult, len(chans))
	forEachChannel(a.cfg.EnableParallel, chans, func(i, ch int) {
		r := &out[i]
		r.Channel = ch
		if serr != nil {
			r.Err = serr
			return
		}

		s, err := f.Stream(ch)
		if err != nil {
			r.Err = err
			return
		}
		s.Seek(start)
		r.Frames, r.Err = spectrum.MelFrames(s, opts, stride)
	})
	return out, nil
}

// MultiToneResponse measures the level of every tone of a multitone
// recording as the maximum of the averaged spectrum within
// spectrum.ToneSearchBins of the tone. Results hold one entry per distinct
// tone bin in ascending order.
func (a *Analyzer) MultiToneResponse(f *wavio.File, tones []float64, opts spectrum.Options) ([]SpectrumResult, error) {
	if len(tones) == 0 {
		return nil, spectrum.ErrNoTones
	}
	out, err := a.Spectrum(f, opts)
	if err != nil {
		return nil, err
	}
	nfft := opts.BlockSize(f.Rate)
	for i := range out {
		r := &out[i]
		if r.Err != nil {
			continue
		}
		peaks, err := spectrum.TonePeaks(r.Levels, f.Rate, nfft, tones)
		r.Frequencies, r.Levels, r.Err = nil, nil, err
		for _, p := range peaks {
			r.Frequencies = append(r.Frequencies, p.Frequency)
			r.Levels = append(r.Levels, p.Level)
		}
	}
	return out, nil
}

// AmplitudeVsTime returns the raw samples of every channel inside the view
// of opts. The leading silence is kept so times match the file.
func (a *Analyzer) AmplitudeVsTime(f *wavio.File, opts level.AmplitudeOptions) ([]LevelResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return a.streams(f, false, func(s *wavio.Stream) ([]level.Reading, error) {
		return level.AmplitudeVsTime(s, opts)
	})
}

// PowerVsTime reports block levels of every channel. opts.MinDB is replaced
// by the configured floor.
func (a *Analyzer) PowerVsTime(f *wavio.File, opts level.PowerOptions) ([]LevelResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.MinDB = a.cfg.Floor(f.BitDepth)

	return a.levels(f, func(s *wavio.Stream) ([]level.Reading, error) {
		return level.PowerVsTime(s, opts)
	})
}

// THDvsLevel measures 4 kHz THD+N (or noise modulation when noiseMod is
// set) against level for every channel.
func (a *Analyzer) THDvsLevel(f *wavio.File, noiseMod bool) ([]LevelResult, error) {
	return a.levels(f, func(s *wavio.Stream) ([]level.Reading, error) {
		return level.THDvsLevel(s, noiseMod)
	})
}

func (a *Analyzer) levels(f *wavio.File, run func(*wavio.Stream) ([]level.Reading, error)) ([]LevelResult, error) {
	return a.streams(f, true, run)
}

// streams calls run with a stream of every selected channel, positioned after
// the leading silence when strip is set.
func (a *Analyzer) streams(f *wavio.File, strip bool, run func(*wavio.Stream) ([]level.Reading, error)) ([]LevelResult, error) {
	chans, err := a.channels(f)
	if err != nil {
		return nil, err
	}
	var start int
	var serr error
	if strip {
		start, serr = a.start(f)
	}

	out := make([]LevelResult, len(chans))
	forEachChannel(a.cfg.EnableParallel, chans, func(i, ch int) {
		r := &out[i]
		r.Channel = ch
		if serr != nil {
			r.Err = serr
			return
		}

		s, err := f.Stream(ch)
		if err != nil {
			r.Err = err
			return
		}
		s.Seek(start)
		r.Readings, r.Err = run(s)
	})
	return out, nil
}
