// Command power-vs-time prints the RMS level of consecutive blocks.
//
// Usage:
//
//	power-vs-time recording.wav
//	power-vs-time --blksz-t 250 recording.wav
//	power-vs-time --blksz-s 4800 -c 0 recording.wav
package main

import (
	sats "github.com/DolbyLaboratories/SATS-software-audio-test-suite"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/cli"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/level"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/report"
)

const tool = "power-vs-time"

var version = "dev"

// CLI defines the command-line interface
type CLI struct {
	cli.InputFlags   `embed:""`
	cli.SilenceFlags `embed:""`

	BlockSamples int     `name:"blksz-s" xor:"block" help:"Block size in samples."`
	BlockMillis  float64 `name:"blksz-t" xor:"block" help:"Block size in milliseconds (default: 100)."`
}

func main() {
	args := &CLI{}
	ctx := cli.Parse(args, tool, "Block RMS level versus time", version)
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

	results, err := a.PowerVsTime(f, level.PowerOptions{
		BlockSamples: args.BlockSamples,
		BlockMillis:  args.BlockMillis,
	})
	if err != nil {
		return err
	}

	out, err := args.OpenOutput()
	if err != nil {
		return err
	}
	if err := cli.WriteLevels(out, report.FormatTime, results); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
