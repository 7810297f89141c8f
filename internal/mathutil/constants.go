package mathutil

// Bessel I₀ approximation constants (Abramowitz & Stegun 9.8.1, 9.8.2).
const (
	besselSmallArgThreshold = 3.75

	besselI0Coeff1 = 3.5156229
	besselI0Coeff2 = 3.0899424
	besselI0Coeff3 = 1.2067492
	besselI0Coeff4 = 0.2659732
	besselI0Coeff5 = 0.360768e-1
	besselI0Coeff6 = 0.45813e-2

	besselI0AsympCoeff0 = 0.39894228
	besselI0AsympCoeff1 = 0.1328592e-1
	besselI0AsympCoeff2 = 0.225319e-2
	besselI0AsympCoeff3 = -0.157565e-2
	besselI0AsympCoeff4 = 0.916281e-2
	besselI0AsympCoeff5 = -0.2057706e-1
	besselI0AsympCoeff6 = 0.2635537e-1
	besselI0AsympCoeff7 = -0.1647633e-1
	besselI0AsympCoeff8 = 0.392377e-2
)

// Kaiser & Schafer design formula constants.
const (
	kaiserAttHigh          = 50.0
	kaiserAttMedium        = 21.0
	kaiserBetaHighCoeff    = 0.1102
	kaiserBetaHighOffset   = 8.7
	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886

	kaiserLengthOffset     = 8.0
	kaiserLengthMultiplier = 2.285

	minFilterLength     = 3
	maxFilterLength     = 8191
	defaultTransitionBW = 0.01
)

// Level conversion constants shared by every measurement.
const (
	// NoSignalDB is reported for a block whose power is exactly zero.
	NoSignalDB = -999.0

	// PeakCorrectionDB converts an RMS level to the level of a sine with
	// the same peak (rounded form used by the level tools).
	PeakCorrectionDB = 3.01

	// ExactPeakCorrectionDB is 10*log10(2).
	ExactPeakCorrectionDB = 3.010299957

	// WindowCorrectionDB compensates spectral window loss.
	WindowCorrectionDB = 3.02

	// RejectLevelDB marks readings treated as absent by the level tools.
	RejectLevelDB = -300.0

	decibelPower     = 10.0
	decibelAmplitude = 20.0
)
