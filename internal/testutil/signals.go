package testutil

import (
	"math"
	"math/rand/v2"
)

// Axis returns the positions start, start+step, ... up to and including stop
// (within half a step).
func Axis(start, stop, step float64) []float64 {
	n := int(math.Floor((stop-start)/step+0.5)) + 1
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}

	return out
}

// Band returns a Gaussian absorption band sampled at axis.
func Band(axis []float64, center, fwhm, amplitude float64) []float64 {
	sigma := fwhm / (2 * math.Sqrt(2*math.Ln2))
	out := make([]float64, len(axis))

	for i, x := range axis {
		d := (x - center) / sigma
		out[i] = amplitude * math.Exp(-0.5*d*d)
	}

	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude). Equal
// seeds give equal noise.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x2545f4914f6cdd1d))

	out := make([]float64, length)
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}
