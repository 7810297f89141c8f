package thd

import "errors"

var (
	// ErrCapacityExceeded is returned when a series is full.
	ErrCapacityExceeded = errors.New("point series capacity exceeded")

	// ErrNoDwell is returned when a channel yields no measurement.
	ErrNoDwell = errors.New("no frequency dwell found")

	// ErrNoResidualSettling is returned when the filtered residual of a dwell
	// never settles.
	ErrNoResidualSettling = errors.New("residual did not settle")
)
