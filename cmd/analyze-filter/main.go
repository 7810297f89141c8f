// Command analyze-filter prints the gain of the built-in SOS tables and of
// a Kaiser low-pass design at a set of test frequencies.
//
// Usage:
//
//	analyze-filter
//	analyze-filter --table no_4k_lp_48000 --freqs 1000,3990,4000,4010
//	analyze-filter --fir --rate 44100 --cutoff 18000
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/cli"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/filter"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/sos"
)

const tool = "analyze-filter"

var version = "dev"

// CLI defines the command-line interface
type CLI struct {
	Table       string    `short:"t" help:"Only analyse the named SOS table."`
	Freqs       []float64 `sep:"," default:"0,1000,3900,4000,4100,10000,20000" help:"Probe frequencies in Hz."`
	FIR         bool      `name:"fir" help:"Analyse a Kaiser low-pass design instead of the SOS tables."`
	Rate        int       `default:"48000" help:"Sample rate of the FIR design in Hz."`
	Cutoff      float64   `default:"20000" help:"FIR -6 dB point in Hz."`
	Transition  float64   `default:"1000" help:"FIR transition band width in Hz."`
	Attenuation float64   `default:"100" help:"FIR stopband attenuation in dB."`
	Version     bool      `short:"V" help:"Show version information."`
}

func main() {
	args := &CLI{}
	kong.Parse(args,
		kong.Name(tool),
		kong.Description("Gain diagnostics for the measurement filters"),
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

	var err error
	if args.FIR {
		err = analyzeFIR(os.Stdout, args)
	} else {
		err = analyzeTables(os.Stdout, args.Table, args.Freqs)
	}
	if err != nil {
		cli.Fatal(err)
	}
}

func analyzeTables(w io.Writer, name string, freqs []float64) error {
	found := false
	for _, c := range sos.Tables() {
		if name != "" && c.Name != name {
			continue
		}
		found = true

		fmt.Fprintf(w, "=== %s ===\n", c.Name)
		cli.PrintKeyValue(w, "Rate", c.Rate)
		cli.PrintKeyValue(w, "Sections", c.Len())
		for _, f := range freqs {
			if f > float64(c.Rate)/2 {
				continue
			}
			cli.PrintKeyValue(w, fmt.Sprintf("%.0f Hz", f), fmt.Sprintf("%.4f dB", c.GainDB(f, c.Rate)))
		}
		fmt.Fprintln(w)
	}
	if !found {
		return fmt.Errorf("unknown table %q", name)
	}
	return nil
}

func analyzeFIR(w io.Writer, args *CLI) error {
	p := filter.LowPass{
		Rate:        args.Rate,
		Cutoff:      args.Cutoff,
		Transition:  args.Transition,
		Attenuation: args.Attenuation,
	}
	h, err := p.Design()
	if err != nil {
		return err
	}

	var dc float64
	for _, c := range h {
		dc += c
	}

	fmt.Fprintf(w, "=== Kaiser low-pass %.0f Hz @ %d Hz ===\n", p.Cutoff, p.Rate)
	cli.PrintKeyValue(w, "Taps", len(h))
	cli.PrintKeyValue(w, "DC gain", fmt.Sprintf("%.10f", dc))
	for _, f := range args.Freqs {
		if f > float64(p.Rate)/2 {
			continue
		}
		cli.PrintKeyValue(w, fmt.Sprintf("%.0f Hz", f),
			fmt.Sprintf("%.4f dB", filter.MagnitudeDB(filter.MagnitudeAt(h, f, p.Rate))))
	}
	return nil
}
