package pipeline

// Overlap divisors: the hop is the block size divided by these.
const (
	// HalfOverlap advances by half a block (spectral averaging).
	HalfOverlap = 2
	// QuarterHop advances by a quarter block, a 75% overlap (settling).
	QuarterHop = 4
)
