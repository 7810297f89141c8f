// Command thd-vs-level measures 4 kHz THD+N against level from a recording
// of a stepped-level tone: 1 s steps after a 50 ms lead-in. With
// --noise-mod it measures noise modulation around 4 kHz instead.
//
// Usage:
//
//	thd-vs-level steps.wav
//	thd-vs-level --noise-mod steps.wav
package main

import (
	sats "github.com/DolbyLaboratories/SATS-software-audio-test-suite"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/cli"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/report"
)

const tool = "thd-vs-level"

var version = "dev"

// CLI defines the command-line interface
type CLI struct {
	cli.InputFlags   `embed:""`
	cli.SilenceFlags `embed:""`

	NoiseMod bool `name:"noise-mod" short:"m" help:"Measure noise modulation (4 kHz band-pass) instead of THD+N."`
}

func main() {
	args := &CLI{}
	ctx := cli.Parse(args, tool, "4 kHz THD+N or noise modulation versus level", version)
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
	a, err := sats.New(cfg)
	if err != nil {
		return err
	}
	f, err := sats.Open(args.Input)
	if err != nil {
		return err
	}

	results, err := a.THDvsLevel(f, args.NoiseMod)
	if err != nil {
		return err
	}

	out, err := args.OpenOutput()
	if err != nil {
		return err
	}
	if err := cli.WriteLevels(out, report.FormatLevel, results); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
