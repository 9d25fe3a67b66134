package interp

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrLengthMismatch indicates sample positions and values of different length.
	ErrLengthMismatch = errors.New("interp: length mismatch")
	// ErrUnsorted indicates sample positions that are not ascending.
	ErrUnsorted = errors.New("interp: positions not ascending")
)

// Kind selects an interpolation method.
type Kind int

const (
	// KindLinear interpolates linearly between neighbouring samples.
	KindLinear Kind = iota
	// KindNearest takes the value of the closest sample.
	KindNearest
)

// String returns the method name.
func (k Kind) String() string {
	switch k {
	case KindNearest:
		return "nearest"
	default:
		return "linear"
	}
}

// Eval dispatches to the method selected by k.
func Eval(k Kind, dst, xs, ys, q []float64) error {
	if k == KindNearest {
		return Nearest(dst, xs, ys, q)
	}

	return Linear(dst, xs, ys, q)
}

// Linear writes the piecewise-linear interpolant through (xs, ys) evaluated
// at q into dst. xs must be ascending. Positions outside [xs[0], xs[n-1]]
// yield NaN.
func Linear(dst, xs, ys, q []float64) error {
	if err := validate(dst, xs, ys, q); err != nil {
		return err
	}

	for i, p := range q {
		j, exact, ok := locate(xs, p)
		switch {
		case !ok:
			dst[i] = math.NaN()
		case exact:
			dst[i] = ys[j]
		default:
			// xs[j-1] < p < xs[j]
			x0, x1 := xs[j-1], xs[j]
			t := (p - x0) / (x1 - x0)
			dst[i] = ys[j-1] + t*(ys[j]-ys[j-1])
		}
	}

	return nil
}

// Nearest writes the value of the closest sample for every position in q.
// Ties resolve to the lower sample. Positions outside the sample range yield NaN.
func Nearest(dst, xs, ys, q []float64) error {
	if err := validate(dst, xs, ys, q); err != nil {
		return err
	}

	for i, p := range q {
		j, exact, ok := locate(xs, p)
		switch {
		case !ok:
			dst[i] = math.NaN()
		case exact:
			dst[i] = ys[j]
		case p-xs[j-1] <= xs[j]-p:
			dst[i] = ys[j-1]
		default:
			dst[i] = ys[j]
		}
	}

	return nil
}

// locate returns the index of the first sample position >= p. exact reports
// xs[j] == p. ok is false when p lies outside the sample range or is NaN.
func locate(xs []float64, p float64) (j int, exact, ok bool) {
	n := len(xs)
	if n == 0 || math.IsNaN(p) || p < xs[0] || p > xs[n-1] {
		return 0, false, false
	}

	j = sort.SearchFloat64s(xs, p)

	return j, xs[j] == p, true
}

func validate(dst, xs, ys, q []float64) error {
	if len(xs) != len(ys) || len(dst) < len(q) {
		return ErrLengthMismatch
	}

	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return ErrUnsorted
		}
	}

	return nil
}
