package wavio

import "errors"

var (
	// ErrInvalidBitDepth is returned for sample sizes other than 16, 24 or 32 bits.
	ErrInvalidBitDepth = errors.New("invalid bit depth: use only 16, 24 or 32 bit files")

	// ErrUnsupportedFormat is returned for files that are not PCM or IEEE float WAV.
	ErrUnsupportedFormat = errors.New("unsupported wave format")

	// ErrSilent is returned when no sample reaches the silence threshold.
	ErrSilent = errors.New("channel is silent")
)
