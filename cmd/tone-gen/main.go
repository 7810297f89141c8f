// Command tone-gen writes the test signals analysed by the measurement
// tools: stepped sines for thd-vs-freq and freq-resp, and 4 kHz level
// steps for thd-vs-level.
//
// Usage:
//
//	tone-gen sweep.wav
//	tone-gen --freqs 100,1000,10000 --dwell 2 sweep.wav
//	tone-gen --start 20 --stop 20000 --per-octave 3 sweep.wav
//	tone-gen --levels -1,-20,-40,-60 steps.wav
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/cli"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

const tool = "tone-gen"

var version = "dev"

// CLI defines the command-line interface
type CLI struct {
	Output    string    `arg:"" name:"output" help:"Output WAV file." optional:""`
	Rate      int       `short:"r" default:"48000" help:"Sample rate in Hz."`
	Bits      int       `short:"b" default:"24" help:"Bit depth: 16, 24 or 32."`
	Channels  int       `short:"c" default:"1" help:"Number of identical channels."`
	Level     float64   `short:"l" default:"-3" help:"Tone level in dBFS."`
	Dwell     float64   `default:"1" help:"Seconds per frequency."`
	Lead      float64   `default:"0.5" help:"Seconds of leading silence."`
	Freqs     []float64 `sep:"," help:"Explicit frequency list in Hz." xor:"sweep"`
	Start     float64   `default:"100" help:"First frequency of a log sweep in Hz."`
	Stop      float64   `default:"10000" help:"Last frequency of a log sweep in Hz."`
	PerOctave int       `name:"per-octave" default:"1" help:"Log sweep steps per octave."`
	Levels    []float64 `sep:"," help:"Write 4 kHz level steps at these dBFS levels instead of a sweep." xor:"sweep"`
	Verbose   bool      `help:"Print the generated steps."`
	Version   bool      `short:"V" help:"Show version information."`
}

func main() {
	args := &CLI{}
	ctx := kong.Parse(args,
		kong.Name(tool),
		kong.Description("Stepped-sine and level-step test signal generator"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if args.Version {
		cli.PrintVersion(tool, version)
		os.Exit(0)
	}
	if args.Output == "" {
		cli.PrintError("No output file specified")
		_ = ctx.PrintUsage(false)
		os.Exit(1)
	}

	if err := run(args); err != nil {
		cli.Fatal(err)
	}
}

func run(args *CLI) error {
	if args.Channels < 1 {
		return fmt.Errorf("invalid channel count: %d", args.Channels)
	}

	signal, err := render(args)
	if err != nil {
		return err
	}

	channels := make([][]float64, args.Channels)
	for ch := range channels {
		channels[ch] = signal
	}
	return wavio.Write(args.Output, args.Rate, args.Bits, channels)
}

func render(args *CLI) ([]float64, error) {
	if len(args.Levels) > 0 {
		if args.Verbose {
			log.Printf("Level steps at %.0f Hz: %v dBFS", levelToneHz, args.Levels)
		}
		return LevelSteps(args.Rate, args.Levels)
	}

	freqs := args.Freqs
	if len(freqs) == 0 {
		var err error
		if freqs, err = LogFreqs(args.Start, args.Stop, args.PerOctave); err != nil {
			return nil, err
		}
	}
	if args.Verbose {
		log.Printf("Stepped sine, %.2f s per step: %v Hz", args.Dwell, freqs)
	}

	s := Sweep{
		Rate:  args.Rate,
		Freqs: freqs,
		Amp:   dbToAmp(args.Level),
		Dwell: args.Dwell,
		Lead:  args.Lead,
	}
	return s.Generate()
}
