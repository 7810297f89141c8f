package sos

// Coefficient tables. Every table is read-only; filters copy the sections
// they use.

// Sample rates that have dedicated tables.
const (
	Rate32000 = 32000
	Rate44100 = 44100
	Rate48000 = 48000
)

// lowpass20k44100 is the 20.1 kHz elliptic low-pass biquad chain at 44.1 kHz.
var lowpass20k44100 = []Section{
	Biquad(1, 1.998757475239, 0.9999999999997, 0.8321624415298, 0.2336661152884),
	Biquad(1, 1.989993373019, 0.9999999999998, 1.443215547293, 0.6571177836971),
	Biquad(1, 1.977254757142, 1, 1.723522054025, 0.8517567075263),
	Biquad(1, 1.96560453861, 0.9999999999995, 1.836701633172, 0.9310881176054),
	Biquad(1, 1.957564737001, 1, 1.8886071568, 0.9687780372787),
	Biquad(1, 1.953621726441, 0.9999999999999, 1.915942311091, 0.9909283814552),
}

// lowpass20k48000 is the 20.1 kHz elliptic low-pass biquad chain at 48 kHz.
var lowpass20k48000 = []Section{
	Biquad(1, 1.995675171563, 1.000000000006, 0.2109884926187, 0.09547522466767),
	Biquad(1, 1.965358497856, 0.9999999999984, 0.9190570840754, 0.5005607119249),
	Biquad(1, 1.921873305357, 1.000000000002, 1.367593671118, 0.7581128988096),
	Biquad(1, 1.882693109174, 0.9999999999987, 1.579771612679, 0.8818361401189),
	Biquad(1, 1.855976944139, 1.000000000001, 1.682557369684, 0.9451969883445),
	Biquad(1, 1.842969114423, 0.9999999999998, 1.735231834136, 0.9838826125212),
}

const (
	lowpassGain44100 = 0.3264435464712
	lowpassGain48000 = 0.1275989262439
	notchGain4k      = 0.8721885623254
	bandpassGain4k32 = 1.557727862934e-006
	bandpassGain4k44 = 1.286228000225e-006
	bandpassGain4k48 = 1.240780983352e-006
)

// interleaveUnity builds the historical layout of a cascade where every
// biquad is followed by a unity gain section: g, s0, 1, s1, 1, ... , 1.
func interleaveUnity(gain float64, biquads []Section) []Section {
	out := make([]Section, 0, 2*len(biquads)+1)
	out = append(out, Gain(gain))
	for _, b := range biquads {
		out = append(out, b, Gain(1))
	}
	return out
}

// cascade builds a gain section followed directly by the biquads.
func cascade(gain float64, biquads []Section) []Section {
	out := make([]Section, 0, len(biquads)+1)
	out = append(out, Gain(gain))
	return append(out, biquads...)
}

// join concatenates section lists.
func join(parts ...[]Section) []Section {
	var out []Section
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// repeat returns n copies of s.
func repeat(s Section, n int) []Section {
	out := make([]Section, n)
	for i := range out {
		out[i] = s
	}
	return out
}

const notchStages = 4

var (
	notch4k32 = repeat(Biquad(1, -1.414213562373, 1, -1.366682377855, 0.9327807542182), notchStages)
	notch4k44 = repeat(Biquad(1, -1.683906167846, 1, -1.627310716561, 0.9327807542182), notchStages)
	notch4k48 = repeat(Biquad(1, -1.732050807569, 1, -1.673837233099, 0.9327807542182), notchStages)

	bandpass4k32 = []Section{
		Biquad(1, -0.05889419444987, 1, -1.393763966652, 0.9867406367536),
		Biquad(1, -1.879015468291, 1, -1.41642220176, 0.9869501238575),
		Biquad(1, -0.9143784524301, 1, -1.382799673538, 0.9944463132202),
		Biquad(1, -1.707346209925, 0.9999999999999, -1.437416461937, 0.9946562156666),
	}
	bandpass4k44 = []Section{
		Biquad(1, -0.777449756023, 1, -1.669653837785, 0.9903513630323),
		Biquad(1, -1.934272257186, 0.9999999999999, -1.682283998073, 0.9905241026682),
		Biquad(1, -1.390893175439, 1, -1.665252282229, 0.9959564894443),
		Biquad(1, -1.842688442774, 1, -1.695579053616, 0.9961292130839),
	}
	bandpass4k48 = []Section{
		Biquad(1, -0.9323999174998, 1, -1.719151456744, 0.9911303232335),
		Biquad(1, -1.944221102086, 1.000000000001, -1.729925201271, 0.9912922673717),
		Biquad(1, -1.48009018957, 1, -1.715843320582, 0.9962827713976),
		Biquad(1, -1.866739488078, 0.9999999999991, -1.741684237502, 0.9964446600911),
	}
)

// Low-pass tables used to band-limit THD+N residuals.
var (
	LowPass44100 = &Coeffs{Name: "lp_44100", Rate: Rate44100, Sections: interleaveUnity(lowpassGain44100, lowpass20k44100)}
	LowPass48000 = &Coeffs{Name: "lp_48000", Rate: Rate48000, Sections: interleaveUnity(lowpassGain48000, lowpass20k48000)}
)

// 4 kHz notch (THD) and band-pass (noise modulation) tables.
var (
	Notch4k32000    = &Coeffs{Name: "no_4k_32000", Rate: Rate32000, Sections: interleaveUnity(notchGain4k, notch4k32)}
	Bandpass4k32000 = &Coeffs{Name: "bp_4k_32000", Rate: Rate32000, Sections: interleaveUnity(bandpassGain4k32, bandpass4k32)}

	Notch4k44100           = &Coeffs{Name: "no_4k_44100", Rate: Rate44100, Sections: interleaveUnity(notchGain4k, notch4k44)}
	Notch4kLowPass44100    = &Coeffs{Name: "no_4k_lp_44100", Rate: Rate44100, Sections: join(cascade(notchGain4k, notch4k44), cascade(lowpassGain44100, lowpass20k44100))}
	Bandpass4k44100        = &Coeffs{Name: "bp_4k_44100", Rate: Rate44100, Sections: interleaveUnity(bandpassGain4k44, bandpass4k44)}
	Bandpass4kLowPass44100 = &Coeffs{Name: "bp_4k_lp_44100", Rate: Rate44100, Sections: join(cascade(bandpassGain4k44, bandpass4k44), cascade(lowpassGain44100, lowpass20k44100))}

	Notch4k48000           = &Coeffs{Name: "no_4k_48000", Rate: Rate48000, Sections: interleaveUnity(notchGain4k, notch4k48)}
	Notch4kLowPass48000    = &Coeffs{Name: "no_4k_lp_48000", Rate: Rate48000, Sections: join(cascade(notchGain4k, notch4k48), cascade(lowpassGain48000, lowpass20k48000))}
	Bandpass4k48000        = &Coeffs{Name: "bp_4k_48000", Rate: Rate48000, Sections: interleaveUnity(bandpassGain4k48, bandpass4k48)}
	Bandpass4kLowPass48000 = &Coeffs{Name: "bp_4k_lp_48000", Rate: Rate48000, Sections: join(cascade(bandpassGain4k48, bandpass4k48), cascade(lowpassGain48000, lowpass20k48000))}
)

// Tables lists every built-in table.
func Tables() []*Coeffs {
	return []*Coeffs{
		LowPass44100, LowPass48000,
		Notch4k32000, Bandpass4k32000,
		Notch4k44100, Notch4kLowPass44100, Bandpass4k44100, Bandpass4kLowPass44100,
		Notch4k48000, Notch4kLowPass48000, Bandpass4k48000, Bandpass4kLowPass48000,
	}
}

// LowPassFor returns the residual low-pass for a sample rate, or nil when
// the rate has no low-pass (the residual is used unfiltered).
func LowPassFor(rate int) *Coeffs {
	switch rate {
	case Rate44100:
		return LowPass44100
	case Rate48000:
		return LowPass48000
	default:
		return nil
	}
}

// FourKFor returns the 4 kHz THD table for a sample rate: the notch when
// passband is false, the band-pass when true. 44.1 and 48 kHz use the
// variants cascaded with the 20 kHz low-pass. Unsupported rates return nil.
func FourKFor(rate int, passband bool) *Coeffs {
	switch rate {
	case Rate32000:
		if passband {
			return Bandpass4k32000
		}
		return Notch4k32000
	case Rate44100:
		if passband {
			return Bandpass4kLowPass44100
		}
		return Notch4kLowPass44100
	case Rate48000:
		if passband {
			return Bandpass4kLowPass48000
		}
		return Notch4kLowPass48000
	default:
		return nil
	}
}
