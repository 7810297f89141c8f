// Package wavio loads WAV files into normalized per-channel sample buffers
// and provides the positioned sample streams the analyzers read from.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// readFrames is the number of frames decoded per PCMBuffer call.
	readFrames = 8192

	formatPCM   = 1
	formatFloat = 3

	bitDepth16 = 16
	bitDepth24 = 24
	bitDepth32 = 32
)

// File is a fully decoded WAV file. Samples holds one slice per channel,
// normalized to [-1, 1).
type File struct {
	Path     string
	Rate     int
	BitDepth int
	Float    bool
	Samples  [][]float64
}

// Open decodes the WAV file at path.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	wf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	wf.Path = path
	return wf, nil
}

// Decode reads a complete WAV stream.
func Decode(r io.ReadSeeker) (*File, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %w", ErrUnsupportedFormat)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}

	var isFloat bool
	switch decoder.WavAudioFormat {
	case formatPCM:
	case formatFloat:
		if bitDepth != bitDepth32 {
			return nil, fmt.Errorf("%d-bit float: %w", bitDepth, ErrUnsupportedFormat)
		}
		isFloat = true
	default:
		return nil, fmt.Errorf("format tag %d: %w", decoder.WavAudioFormat, ErrUnsupportedFormat)
	}

	channels := format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("no channels: %w", ErrUnsupportedFormat)
	}

	out := &File{
		Rate:     format.SampleRate,
		BitDepth: bitDepth,
		Float:    isFloat,
		Samples:  make([][]float64, channels),
	}

	scale := 1 / fullScale(bitDepth)
	buf := &audio.IntBuffer{
		Data:   make([]int, readFrames*channels),
		Format: format,
	}

	for {
		n, err := decoder.PCMBuffer(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 {
			break
		}

		frames := n / channels
		for ch := range channels {
			for i := range frames {
				v := buf.Data[i*channels+ch]
				var s float64
				if isFloat {
					s = float64(math.Float32frombits(uint32(int32(v))))
				} else {
					s = float64(v) * scale
				}
				out.Samples[ch] = append(out.Samples[ch], s)
			}
		}
	}

	return out, nil
}

// NumChannels returns the channel count.
func (f *File) NumChannels() int { return len(f.Samples) }

// Len returns the number of frames.
func (f *File) Len() int {
	if len(f.Samples) == 0 {
		return 0
	}
	return len(f.Samples[0])
}

// LSB returns the normalized size of one quantization step.
func (f *File) LSB() float64 {
	return 1 / fullScale(f.BitDepth)
}

// Stream returns a stream over channel ch starting at the first sample.
func (f *File) Stream(ch int) (*Stream, error) {
	if ch < 0 || ch >= len(f.Samples) {
		return nil, fmt.Errorf("channel %d out of range [0, %d)", ch, len(f.Samples))
	}
	return NewStream(f.Samples[ch], f.Rate), nil
}

// Write encodes channels as an integer PCM WAV file. Samples are clipped
// to [-1, 1].
func Write(path string, rate, bitDepth int, channels [][]float64) error {
	if err := checkBitDepth(bitDepth); err != nil {
		return err
	}
	if len(channels) == 0 {
		return errors.New("no channels to write")
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(out, rate, bitDepth, len(channels), formatPCM)
	full := fullScale(bitDepth) - 1
	frames := len(channels[0])
	data := make([]int, frames*len(channels))
	for i := range frames {
		for ch, samples := range channels {
			var v float64
			if i < len(samples) {
				v = max(-1, min(1, samples[i]))
			}
			data[i*len(channels)+ch] = int(math.Round(v * full))
		}
	}

	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: rate},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return out.Close()
}

func checkBitDepth(bits int) error {
	switch bits {
	case bitDepth16, bitDepth24, bitDepth32:
		return nil
	default:
		return fmt.Errorf("%d bits: %w", bits, ErrInvalidBitDepth)
	}
}

// fullScale returns 2^(bits-1).
func fullScale(bits int) float64 {
	return float64(int64(1) << (bits - 1))
}
