package dwell

import "errors"

var (
	// ErrNotSettled is returned when no settle point exists after the origin.
	ErrNotSettled = errors.New("no settling point found")

	// ErrInputTooShort is returned when less than the initial analysis window
	// follows the settle point.
	ErrInputTooShort = errors.New("insufficient data after settle point")

	// ErrBogusFrequency is returned when the detected tone is outside the
	// audio band.
	ErrBogusFrequency = errors.New("bogus reference frequency")

	// ErrNoChange is returned when the scan finds no end of the current tone.
	ErrNoChange = errors.New("frequency change not found")

	// ErrNoTone is returned when the signal after the settle point holds no
	// stable tone. The Dwell keeps the reference frequency and NextStart is
	// where the search should resume.
	ErrNoTone = errors.New("no stable tone after settle point")
)
