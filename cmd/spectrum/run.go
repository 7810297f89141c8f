package main

import (
	"io"

	sats "github.com/DolbyLaboratories/SATS-software-audio-test-suite"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/cli"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/report"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/spectrum"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

func average(a *sats.Analyzer, f *wavio.File, opts spectrum.Options, out io.Writer) error {
	results, err := a.Spectrum(f, opts)
	if err != nil {
		return err
	}
	return cli.WriteSpectra(out, report.FormatSpectrum, results)
}

func mel(a *sats.Analyzer, f *wavio.File, opts spectrum.Options, stride int, out io.Writer) error {
	if opts.NFFT == 0 {
		opts.NFFT = sats.DefaultMelNFFT
	}
	if stride == 0 {
		stride = opts.NFFT / 2
	}
	results, err := a.MelSpectrogram(f, opts, stride)
	if err != nil {
		return err
	}
	return cli.WriteMel(out, f.Rate, stride, results)
}
