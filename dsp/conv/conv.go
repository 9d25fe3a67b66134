package conv

import (
	"errors"
	"math"
	"slices"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrEvenKernel     = errors.New("conv: centred kernel must have odd length")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// Edge selects how [Filter] extends a signal beyond its ends.
type Edge int

const (
	// EdgeNearest repeats the first and last sample.
	EdgeNearest Edge = iota
	// EdgeConstant pads with zeros.
	EdgeConstant
	// EdgeMirror reflects about the end samples (d c b | a b c d | c b a).
	EdgeMirror
)

// directThreshold is the longest kernel convolved in the time domain.
const directThreshold = 64

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		for j, k := range b {
			result[i+j] += x * k
		}
	}

	return result, nil
}

// Convolve performs linear convolution with automatic algorithm selection.
// Kernels up to 64 samples, and any input containing NaN, use direct
// convolution; longer kernels use FFT-based overlap-add.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	if len(b) > len(a) {
		a, b = b, a
	}

	if len(b) <= directThreshold || hasNaN(a) || hasNaN(b) {
		return Direct(a, b)
	}

	return OverlapAddConvolve(a, b)
}

// Filter correlates signal with a centred, odd-length kernel:
//
//	out[i] = sum_k kernel[k] * signal[i+k-len(kernel)/2]
//
// Samples beyond the ends are supplied by edge. The output has the length
// of signal.
func Filter(signal, kernel []float64, edge Edge) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}

	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if len(kernel)%2 == 0 {
		return nil, ErrEvenKernel
	}

	half := len(kernel) / 2
	ext := extend(signal, half, edge)

	reversed := slices.Clone(kernel)
	slices.Reverse(reversed)

	full, err := Convolve(ext, reversed)
	if err != nil {
		return nil, err
	}

	// The fully overlapping part of the convolution starts at len(kernel)-1.
	start := len(kernel) - 1
	out := make([]float64, len(signal))
	copy(out, full[start:start+len(signal)])

	return out, nil
}

func extend(signal []float64, half int, edge Edge) []float64 {
	n := len(signal)
	ext := make([]float64, n+2*half)
	copy(ext[half:], signal)

	for i := range half {
		left, right := 0.0, 0.0

		switch edge {
		case EdgeNearest:
			left, right = signal[0], signal[n-1]
		case EdgeMirror:
			left = signal[reflect(i+1, n)]
			right = signal[reflect(n-2-i, n)]
		}

		ext[half-1-i] = left
		ext[half+n+i] = right
	}

	return ext
}

// reflect folds index i into [0, n) by mirroring about the end samples.
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}

	period := 2 * (n - 1)
	i %= period

	if i < 0 {
		i += period
	}

	if i >= n {
		i = period - i
	}

	return i
}

func hasNaN(x []float64) bool {
	return slices.ContainsFunc(x, math.IsNaN)
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
