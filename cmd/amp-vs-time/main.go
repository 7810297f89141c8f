// Command amp-vs-time prints the raw sample values of a recording against
// time. At most 32 seconds are printed, starting at --xmin.
//
// Usage:
//
//	amp-vs-time recording.wav
//	amp-vs-time --xmin 1.5 --xmax 1.6 -c 0 recording.wav
package main

import (
	"fmt"
	"os"

	sats "github.com/DolbyLaboratories/SATS-software-audio-test-suite"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/cli"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/level"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/report"
)

const tool = "amp-vs-time"

var version = "dev"

// CLI defines the command-line interface
type CLI struct {
	cli.InputFlags `embed:""`

	XMin float64 `name:"xmin" placeholder:"SECONDS" help:"Start of the view in seconds."`
	XMax float64 `name:"xmax" placeholder:"SECONDS" help:"End of the view in seconds (default: xmin + 32)."`
}

func main() {
	args := &CLI{}
	ctx := cli.Parse(args, tool, "Sample amplitude versus time", version)
	args.Check(ctx, tool, version)

	if err := run(args); err != nil {
		cli.Fatal(err)
	}
}

func run(args *CLI) error {
	opts := level.AmplitudeOptions{Start: args.XMin, End: args.XMax}
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.Truncated() {
		cli.PrintWarning(os.Stderr, fmt.Sprintf("views are limited to %.0f seconds, truncating", level.MaxAmplitudeSeconds))
	}

	cfg, err := args.Config(cli.SilenceFlags{NoStrip: true})
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

	results, err := a.AmplitudeVsTime(f, opts)
	if err != nil {
		return err
	}

	out, err := args.OpenOutput()
	if err != nil {
		return err
	}
	if err := cli.WriteLevels(out, report.FormatSample, results); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
