// Command mult-freq-resp prints the level of every tone of a multitone
// recording. The tone frequencies are read from a text file, one per line;
// each level is the maximum of the one-second averaged spectrum within four
// bins of the tone.
//
// Usage:
//
//	mult-freq-resp -f tones.txt multitone.wav
//	mult-freq-resp -f tones.txt -c 0 -o response.txt multitone.wav
package main

import (
	"fmt"
	"os"

	sats "github.com/DolbyLaboratories/SATS-software-audio-test-suite"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/cli"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/report"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/spectrum"
)

const tool = "mult-freq-resp"

var version = "dev"

// CLI defines the command-line interface
type CLI struct {
	cli.InputFlags   `embed:""`
	cli.SilenceFlags `embed:""`

	Tones string `short:"f" name:"freqs" required:"" type:"existingfile" placeholder:"FILE" help:"Text file listing the multitone frequencies in Hz, one per line."`
}

func main() {
	args := &CLI{}
	ctx := cli.Parse(args, tool, "Multitone frequency response", version)
	args.Check(ctx, tool, version)

	if err := run(args); err != nil {
		cli.Fatal(err)
	}
}

func readTones(path string) ([]float64, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	tones, err := spectrum.ReadTones(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tones, nil
}

func run(args *CLI) error {
	tones, err := readTones(args.Tones)
	if err != nil {
		return err
	}
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

	results, err := a.MultiToneResponse(f, tones, spectrum.Options{})
	if err != nil {
		return err
	}

	out, err := args.OpenOutput()
	if err != nil {
		return err
	}
	if err := cli.WriteSpectra(out, report.FormatTone, results); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
