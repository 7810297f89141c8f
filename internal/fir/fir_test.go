package fir

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DolbyLaboratories/SATS-software-audio-test-suite/internal/testutil"
)

const (
	testTaps      = 16
	testSignalLen = 200
	firTolerance  = 1e-12
)

func randomSignal(n int, seed uint64) []float64 {
	r := rand.New(rand.NewPCG(seed, 7))
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Float64()*2 - 1
	}
	return out
}

// TestProcess_DelayByK verifies that a single unit tap at k delays the input by k.
func TestProcess_DelayByK(t *testing.T) {
	x := randomSignal(testSignalLen, 1)

	for _, k := range []int{0, 1, 5, testTaps - 1} {
		coeffs := make([]float64, testTaps)
		coeffs[k] = 1

		f, err := New(coeffs)
		require.NoError(t, err)

		for n, v := range x {
			y := f.Process(v)
			want := 0.0
			if n >= k {
				want = x[n-k]
			}
			if !assert.InDelta(t, want, y, firTolerance, "k=%d n=%d", k, n) {
				return
			}
		}
	}
}

// TestProcessArray_MatchesProcess checks the block path against the
// per-sample path, including state carried between blocks.
func TestProcessArray_MatchesProcess(t *testing.T) {
	coeffs := randomSignal(testTaps, 2)
	x := randomSignal(testSignalLen, 3)

	ref, err := New(coeffs)
	require.NoError(t, err)
	want := make([]float64, len(x))
	for i, v := range x {
		want[i] = ref.Process(v)
	}

	blocks := []int{1, 3, testTaps, 40, testSignalLen}
	for _, size := range blocks {
		f, err := New(coeffs)
		require.NoError(t, err)

		got := make([]float64, len(x))
		for start := 0; start < len(x); start += size {
			end := min(start+size, len(x))
			f.ProcessArray(got[start:end], x[start:end])
		}
		assert.InDeltaSlice(t, want, got, firTolerance, "block size %d", size)
	}
}

// TestReset clears history.
func TestReset(t *testing.T) {
	f, err := New([]float64{0.5, 0.25, 0.25})
	require.NoError(t, err)

	f.Process(1)
	f.Process(1)
	f.Reset()

	assert.InDelta(t, 0.5, f.Process(1), firTolerance)
	assert.InDelta(t, 0.75, f.Process(1), firTolerance)
	assert.InDelta(t, 1.0, f.Process(1), firTolerance)
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrNoCoefficients)
}

func TestSingleTap(t *testing.T) {
	f, err := New([]float64{2})
	require.NoError(t, err)

	x := []float64{1, -1, 0.5}
	y := make([]float64, len(x))
	f.ProcessArray(y, x)
	assert.InDeltaSlice(t, []float64{2, -2, 1}, y, testutil.DefaultTolerance)
}
