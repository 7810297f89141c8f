package spectrum

import "errors"

var (
	// ErrInputTooShort is returned when not even one full block is available.
	ErrInputTooShort = errors.New("file too small to perform FFT")

	// ErrInvalidBlockSize is returned for FFT sizes outside the allowed set.
	ErrInvalidBlockSize = errors.New("invalid FFT size")

	// ErrNoTones is returned for an empty multitone frequency list.
	ErrNoTones = errors.New("no tone frequencies given")
)
