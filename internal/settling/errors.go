package settling

import "errors"

var (
	// ErrInputTooShort is returned when the search range holds less than one block.
	ErrInputTooShort = errors.New("not enough data to detect settling")

	// ErrNotSettled is returned when the search range is exhausted.
	ErrNotSettled = errors.New("signal did not settle")
)
