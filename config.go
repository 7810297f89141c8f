package sats

import (
	"errors"
	"fmt"
	"log"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/mathutil"
	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/wavio"
)

// Common errors returned by the analyzer.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid analysis configuration")

	// ErrNoChannel indicates a channel selection outside the file.
	ErrNoChannel = errors.New("channel not present in file")
)

// Config holds the options shared by every tool.
type Config struct {
	// Channel selects a single 0-based channel, or AllChannels.
	Channel int

	// MinDB overrides the floor that readings are clipped to. When nil the
	// floor is the lowest level representable at the file's bit depth.
	MinDB *float64

	// Silence selects how leading silence is detected.
	Silence wavio.SilenceConfig

	// NoSilence keeps the leading silence.
	NoSilence bool

	// Capacity bounds the dwells recorded per channel; 0 uses the default.
	Capacity int

	// EnableParallel analyses channels concurrently.
	EnableParallel bool

	// Logger, when set, receives a per-dwell trace of the dwell tools.
	Logger *log.Logger
}

// DefaultConfig returns a configuration analysing every channel in
// parallel with the default silence threshold.
func DefaultConfig() *Config {
	return &Config{
		Channel:        AllChannels,
		EnableParallel: true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Channel < AllChannels {
		return fmt.Errorf("%w: channel must be %d (all) or a channel index", ErrInvalidConfig, AllChannels)
	}
	if c.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", ErrInvalidConfig)
	}
	if !c.NoSilence {
		if err := c.Silence.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Floor returns the level readings are clipped to for a file of bitDepth.
func (c *Config) Floor(bitDepth int) float64 {
	if c.MinDB != nil {
		return *c.MinDB
	}
	return mathutil.MinDBForBitDepth(bitDepth)
}

func (c *Config) channelLogger(ch int) *log.Logger {
	if c.Logger == nil {
		return nil
	}
	return log.New(c.Logger.Writer(), fmt.Sprintf(channelLogFormat, ch), c.Logger.Flags())
}
