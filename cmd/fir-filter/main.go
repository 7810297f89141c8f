// Command fir-filter low-pass filters a WAV file with a Kaiser windowed-sinc
// FIR and writes the result at the input bit depth.
//
// Usage:
//
//	fir-filter in.wav out.wav
//	fir-filter --cutoff 8000 --transition 500 --attenuation 120 in.wav out.wav
//	fir-filter --taps 255 --compensate in.wav out.wav
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/cli"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/filter"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

const tool = "fir-filter"

const (
	defaultCutoffHz     = 20000.0
	defaultTransitionHz = 1000.0
	defaultAttenuation  = 100.0
)

var version = "dev"

// CLI defines the command-line interface
type CLI struct {
	Input       string  `arg:"" name:"input" help:"Input WAV file." type:"existingfile" optional:""`
	Output      string  `arg:"" name:"output" help:"Output WAV file." optional:""`
	Cutoff      float64 `default:"${cutoff}" help:"-6 dB point in Hz."`
	Transition  float64 `default:"${transition}" help:"Transition band width in Hz."`
	Attenuation float64 `default:"${attenuation}" help:"Stopband attenuation in dB."`
	Taps        int     `help:"Explicit filter length (overrides --transition)."`
	Compensate  bool    `help:"Remove the filter delay so the output lines up with the input."`
	NoParallel  bool    `name:"no-parallel" help:"Filter channels one after another."`
	Verbose     bool    `help:"Print the filter design and a summary."`
	Version     bool    `short:"V" help:"Show version information."`
}

type filterStats struct {
	rate     int
	channels int
	bitDepth int
	samples  int
	taps     int
	delay    int
}

func main() {
	args := &CLI{}
	ctx := kong.Parse(args,
		kong.Name(tool),
		kong.Description("Kaiser windowed-sinc low-pass filter for WAV files"),
		kong.UsageOnError(),
		kong.Vars{
			"version":     version,
			"cutoff":      fmt.Sprint(defaultCutoffHz),
			"transition":  fmt.Sprint(defaultTransitionHz),
			"attenuation": fmt.Sprint(defaultAttenuation),
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if args.Version {
		cli.PrintVersion(tool, version)
		os.Exit(0)
	}
	if args.Input == "" || args.Output == "" {
		cli.PrintError("Input and output files are required")
		_ = ctx.PrintUsage(false)
		os.Exit(1)
	}

	if err := run(args); err != nil {
		cli.Fatal(err)
	}
}

func run(args *CLI) error {
	start := time.Now()

	in, err := wavio.Open(args.Input)
	if err != nil {
		return err
	}

	design := filter.LowPass{
		Rate:        in.Rate,
		Cutoff:      args.Cutoff,
		Transition:  args.Transition,
		Attenuation: args.Attenuation,
		Taps:        args.Taps,
	}
	coeffs, err := design.Design()
	if err != nil {
		return fmt.Errorf("filter design: %w", err)
	}
	if args.Verbose {
		log.Printf("Input: %s (%d Hz, %d channels, %d-bit)", args.Input, in.Rate, in.NumChannels(), in.BitDepth)
		log.Printf("Filter: %d taps, cutoff %.1f Hz, %.1f dB stopband", len(coeffs), args.Cutoff, args.Attenuation)
	}

	out, err := filterChannels(coeffs, in.Samples, blockSize(in.Rate), !args.NoParallel)
	if err != nil {
		return err
	}
	delay := 0
	if args.Compensate {
		delay = (len(coeffs) - 1) / 2
		out = compensate(out, delay)
	}

	if err := wavio.Write(args.Output, in.Rate, in.BitDepth, out); err != nil {
		return err
	}

	if args.Verbose {
		printSummary(args, filterStats{
			rate:     in.Rate,
			channels: in.NumChannels(),
			bitDepth: in.BitDepth,
			samples:  in.Len(),
			taps:     len(coeffs),
			delay:    delay,
		}, time.Since(start))
	}
	return nil
}

func printSummary(args *CLI, s filterStats, elapsed time.Duration) {
	w := os.Stderr
	fmt.Fprintf(w, "Filtered %s -> %s\n", filepath.Base(args.Input), filepath.Base(args.Output))
	cli.PrintKeyValue(w, "Format", fmt.Sprintf("%d Hz, %d channels, %d-bit", s.rate, s.channels, s.bitDepth))
	cli.PrintKeyValue(w, "Samples", s.samples)
	cli.PrintKeyValue(w, "Taps", s.taps)
	cli.PrintKeyValue(w, "Delay removed", s.delay)
	cli.PrintKeyValue(w, "Speed", fmt.Sprintf("%.1fx realtime",
		float64(s.samples)/float64(s.rate)/elapsed.Seconds()))
}
