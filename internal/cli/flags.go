package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	sats "github.com/DolbyLaboratories/SATS-software-audio-test-suite"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

// allChannels is the --channel value selecting every channel.
const allChannels = "a"

// InputFlags are the flags shared by every analysis command. Embed them in
// a kong grammar with `embed:""`.
type InputFlags struct {
	Input      string `arg:"" name:"wavefile" help:"Input WAV file." type:"existingfile" optional:""`
	Channel    string `short:"c" default:"a" help:"Channel to analyse: 0-based index, or 'a' for all channels."`
	Output     string `short:"o" placeholder:"FILE" help:"Write text output to FILE instead of standard output."`
	Verbose    bool   `help:"Trace the analysis on standard error."`
	NoParallel bool   `name:"no-parallel" help:"Analyse channels one after another."`
	Version    bool   `short:"V" help:"Show version information."`
}

// SilenceFlags control lead silence stripping and the level floor.
type SilenceFlags struct {
	NoStrip  bool     `short:"s" name:"no-strip" help:"Keep the leading silence."`
	ThrDB    *float64 `name:"thr-db" xor:"threshold" help:"Power threshold in dB for silence stripping."`
	ThrS     *float64 `name:"thr-s" xor:"threshold" help:"Sample threshold in bits for silence stripping."`
	PowerMin *float64 `name:"power-min" help:"Clip readings below this level in dB (default: lowest level of the bit depth)."`
}

// ChannelIndex parses --channel.
func (f *InputFlags) ChannelIndex() (int, error) {
	s := strings.TrimSpace(strings.ToLower(f.Channel))
	if s == "" || s == allChannels {
		return sats.AllChannels, nil
	}
	ch, err := strconv.Atoi(s)
	if err != nil || ch < 0 {
		return 0, fmt.Errorf("invalid channel %q: use a 0-based index or %q", f.Channel, allChannels)
	}
	return ch, nil
}

// Config resolves the flags into an analyzer configuration.
func (f *InputFlags) Config(s SilenceFlags) (*sats.Config, error) {
	ch, err := f.ChannelIndex()
	if err != nil {
		return nil, err
	}

	cfg := sats.DefaultConfig()
	cfg.Channel = ch
	cfg.EnableParallel = !f.NoParallel
	cfg.NoSilence = s.NoStrip
	cfg.MinDB = s.PowerMin
	switch {
	case s.ThrDB != nil:
		cfg.Silence = wavio.SilenceConfig{Mode: wavio.SilenceDB, Threshold: *s.ThrDB}
	case s.ThrS != nil:
		cfg.Silence = wavio.SilenceConfig{Mode: wavio.SilenceSamples, Threshold: *s.ThrS}
	}
	if f.Verbose {
		cfg.Logger = log.New(os.Stderr, "", 0)
	}
	return cfg, cfg.Validate()
}

// OpenOutput returns the destination for text rows: the --output file, or
// standard output when none is given.
func (f *InputFlags) OpenOutput() (io.WriteCloser, error) {
	if f.Output == "" {
		return nopCloser{os.Stdout}, nil
	}
	out, err := os.Create(f.Output)
	if err != nil {
		return nil, fmt.Errorf("could not create output file: %w", err)
	}
	return out, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
