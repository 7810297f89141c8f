// Package sos implements cascaded second-order-section (biquad) IIR filtering.
//
// A filter is split in two parts: an immutable coefficient table ([Coeffs])
// that may be shared between any number of channels, and a [Filter] that
// references a table and owns the per-section delay registers. Coefficient
// tables never change after construction; the delay registers persist across
// calls and must be cleared with [Filter.Reset] before a filter instance is
// reused on an unrelated signal.
package sos

import "fmt"

// Section orders.
const (
	// OrderGain marks a gain-only section (y = b0 * x).
	OrderGain = 1

	// OrderBiquad marks a full second-order section.
	OrderBiquad = 3
)

// Section holds the coefficients of one stage of a cascade.
// A[0] is always 1 and is never read.
type Section struct {
	Order int
	B     [3]float64
	A     [3]float64
}

// Gain returns a gain-only section.
func Gain(g float64) Section {
	return Section{Order: OrderGain, B: [3]float64{g}, A: [3]float64{1}}
}

// Biquad returns a second-order section with a0 fixed to 1.
func Biquad(b0, b1, b2, a1, a2 float64) Section {
	return Section{
		Order: OrderBiquad,
		B:     [3]float64{b0, b1, b2},
		A:     [3]float64{1, a1, a2},
	}
}

// Coeffs is an immutable cascade description.
type Coeffs struct {
	Name     string
	Rate     int // design sample rate in Hz; 0 when the table is rate independent
	Sections []Section
}

// Len returns the number of sections in the cascade.
func (c *Coeffs) Len() int {
	return len(c.Sections)
}

// Validate checks that every section has a supported order.
func (c *Coeffs) Validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("sos %q: no sections", c.Name)
	}
	for i, s := range c.Sections {
		if s.Order != OrderGain && s.Order != OrderBiquad {
			return fmt.Errorf("sos %q: section %d has order %d (want %d or %d)",
				c.Name, i, s.Order, OrderGain, OrderBiquad)
		}
	}
	return nil
}

// state holds the two delay registers of one section.
type state struct {
	z1, z2 float64
}

// Filter runs samples through a cascade. It is not safe for concurrent use;
// give every channel its own Filter.
type Filter struct {
	sections []Section
	state    []state
	name     string
}

// New creates a filter with zeroed delay registers over the given table.
// The table's sections are copied so later edits through SetBiquad never
// touch the shared table.
func New(c *Coeffs) (*Filter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sections := make([]Section, len(c.Sections))
	copy(sections, c.Sections)

	return &Filter{
		sections: sections,
		state:    make([]state, len(sections)),
		name:     c.Name,
	}, nil
}

// MustNew is like New but panics on an invalid table. Intended for the
// package-level tables, which are known to be valid.
func MustNew(c *Coeffs) *Filter {
	f, err := New(c)
	if err != nil {
		panic(err)
	}
	return f
}

// NewBiquad creates a single-section filter, typically reprogrammed later
// with SetBiquad.
func NewBiquad() *Filter {
	return MustNew(&Coeffs{Name: "biquad", Sections: []Section{Biquad(1, 0, 0, 0, 0)}})
}

// Name returns the name of the table the filter was built from.
func (f *Filter) Name() string {
	return f.name
}

// Len returns the number of sections.
func (f *Filter) Len() int {
	return len(f.sections)
}

// Reset zeroes all delay registers.
func (f *Filter) Reset() {
	for i := range f.state {
		f.state[i] = state{}
	}
}

// SetBiquad overwrites section 0 with new coefficients. Coefficients are
// normalised by a0. The delay registers are left untouched; call Reset
// first when the new response should start from rest.
func (f *Filter) SetBiquad(a0, a1, a2, b0, b1, b2 float64) {
	if a0 != 1 && a0 != 0 {
		a1 /= a0
		a2 /= a0
		b0 /= a0
		b1 /= a0
		b2 /= a0
	}
	f.sections[0] = Biquad(b0, b1, b2, a1, a2)
}

// Process filters one sample through every section in order.
func (f *Filter) Process(x float64) float64 {
	for i := range f.sections {
		s := &f.sections[i]
		if s.Order == OrderGain {
			x *= s.B[0]
			continue
		}

		st := &f.state[i]
		d := x - st.z1*s.A[1] - st.z2*s.A[2]
		x = d*s.B[0] + st.z1*s.B[1] + st.z2*s.B[2]
		st.z2 = st.z1
		st.z1 = d
	}
	return x
}

// ProcessArray filters src into dst sample by sample. dst and src may be
// the same slice. dst must be at least as long as src.
func (f *Filter) ProcessArray(dst, src []float64) {
	dst = dst[:len(src)]
	for i, x := range src {
		dst[i] = f.Process(x)
	}
}
