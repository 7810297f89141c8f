// Command freq-resp measures the frequency response from a recording of
// a stepped sine.
//
// Usage:
//
//	freq-resp sweep.wav
//	freq-resp -c 1 --thr-db -60 -o fr.txt sweep.wav
package main

import (
	"os"

	sats "github.com/DolbyLaboratories/SATS-software-audio-test-suite"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/cli"
)

const tool = "freq-resp"

var version = "dev"

// CLI defines the command-line interface
type CLI struct {
	cli.InputFlags   `embed:""`
	cli.SilenceFlags `embed:""`
}

func main() {
	args := &CLI{}
	ctx := cli.Parse(args, tool, "Frequency response of a stepped-sine recording", version)
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

	results, err := a.FrequencyResponse(f)
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
