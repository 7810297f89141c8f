package sats

// AllChannels selects every channel of a file.
const AllChannels = -1

// Mel spectrogram defaults
const (
	// DefaultMelNFFT is the FFT size of a mel frame when none is given.
	DefaultMelNFFT = 1024
)

// Dwell tools
const (
	// channelLogFormat prefixes the trace of one channel.
	channelLogFormat = "ch%d: "
)
