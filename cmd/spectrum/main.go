// Command spectrum prints the averaged power spectrum of a WAV file, or its
// mel-scale spectrogram with --mel.
//
// Usage:
//
//	spectrum --nfft 8192 --window hann noise.wav
//	spectrum --mel --stride 256 speech.wav
package main

import (
	sats "github.com/DolbyLaboratories/SATS-software-audio-test-suite"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/cli"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/spectrum"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/window"
)

const tool = "spectrum"

var version = "dev"

// CLI defines the command-line interface
type CLI struct {
	cli.InputFlags   `embed:""`
	cli.SilenceFlags `embed:""`

	NFFT     int    `name:"nfft" short:"n" help:"FFT size (default: one second of samples, 1024 with --mel)."`
	Window   string `short:"w" default:"blackmanharris" help:"Window: rect, triang, bartlett, barthann, hann or blackmanharris."`
	Averages int    `short:"N" help:"Maximum number of blocks (default: the whole file)."`
	Mel      bool   `help:"Print 40 mel bands per frame instead of an averaged spectrum."`
	Stride   int    `help:"Samples between mel frames (default: half the FFT size)."`
}

func main() {
	args := &CLI{}
	ctx := cli.Parse(args, tool, "Averaged power spectrum and mel spectrogram", version)
	args.Check(ctx, tool, version)

	if err := run(args); err != nil {
		cli.Fatal(err)
	}
}

func run(args *CLI) error {
	cfg, err := args.Config(args.SilenceFlags)
	if err != nil {
		return err
	}
	win, err := window.Parse(args.Window)
	if err != nil {
		return err
	}
	opts := spectrum.Options{NFFT: args.NFFT, Window: win, Averages: args.Averages}

	a, err := sats.New(cfg)
	if err != nil {
		return err
	}
	f, err := sats.Open(args.Input)
	if err != nil {
		return err
	}

	out, err := args.OpenOutput()
	if err != nil {
		return err
	}
	if args.Mel {
		err = mel(a, f, opts, args.Stride, out)
	} else {
		err = average(a, f, opts, out)
	}
	if err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
