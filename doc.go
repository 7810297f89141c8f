// Package sats analyses WAV recordings of audio test signals.
//
// The package ties the measurement engines together per file and channel:
// it decodes the file, strips the leading silence and runs one of the
// measurement tools on every selected channel.
//
// # Tools
//
//   - [Analyzer.THDvsFrequency]: THD+N of every dwell of a stepped sine.
//   - [Analyzer.FrequencyResponse]: level of every dwell of a stepped sine.
//   - [Analyzer.Spectrum]: averaged power spectrum.
//   - [Analyzer.MelSpectrogram]: 40-band mel frames.
//   - [Analyzer.MultiToneResponse]: level of every tone of a multitone.
//   - [Analyzer.AmplitudeVsTime]: raw samples inside a time window.
//   - [Analyzer.PowerVsTime]: level of consecutive blocks.
//   - [Analyzer.THDvsLevel]: 4 kHz THD+N or noise modulation against level.
//
// # Quick Start
//
//	f, err := sats.Open("sweep.wav")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	a, err := sats.New(sats.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := a.THDvsFrequency(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range results {
//	    if r.Err != nil {
//	        log.Printf("channel %d: %v", r.Channel, r.Err)
//	        continue
//	    }
//	    for _, p := range r.Points {
//	        fmt.Printf("%.0f,\t%.2f\n", p.Frequency, p.Reading)
//	    }
//	}
//
// # Levels
//
// Readings are in dB relative to full scale with the RMS-to-peak correction
// of a sine applied, so a full-scale sine reads 0 dB. Readings are clipped to
// the lowest level representable at the file's bit depth unless
// [Config.MinDB] overrides it.
//
// # Concurrency
//
// Every channel gets its own filters and settling state. With
// [Config.EnableParallel] channels are analysed concurrently; results are
// always returned in channel order. An [Analyzer] holds no per-run state and
// may be used from several goroutines.
package sats
