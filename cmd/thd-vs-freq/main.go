// Command thd-vs-freq measures THD+N against frequency from a recording of
// a stepped sine.
//
// Usage:
//
//	thd-vs-freq sweep.wav
//	thd-vs-freq -c 1 --thr-db -60 -o thd.txt sweep.wav
package main

import (
	"os"

	sats "github.com/DolbyLaboratories/SATS-software-audio-test-suite"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/cli"
)

const tool = "thd-vs-freq"

var version = "dev"

// CLI defines the command-line interface
type CLI struct {
	cli.InputFlags   `embed:""`
	cli.SilenceFlags `embed:""`
}

func main() {
	args := &CLI{}
	ctx := cli.Parse(args, tool, "THD+N versus frequency of a stepped-sine recording", version)
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

	results, err := a.THDvsFrequency(f)
	if err != nil {
		return err
	}

	out, err := args.OpenOutput()
	if err != nil {
		return err
	}
	if err := cli.WriteDwells(out, os.Stderr, results); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
