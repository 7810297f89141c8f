package level

import "errors"

var (
	// ErrInvalidBlockSize is returned for a block shorter than one sample or
	// longer than the samples left in the stream.
	ErrInvalidBlockSize = errors.New("invalid block size")

	// ErrInputTooShort is returned when not a single full block is available.
	ErrInputTooShort = errors.New("file too small")

	// ErrUnsupportedRate is returned when no 4 kHz filter exists for a rate.
	ErrUnsupportedRate = errors.New("unsupported sample rate")
)
