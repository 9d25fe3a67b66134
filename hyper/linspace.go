package hyper

import (
	"math"
	"slices"
)

// Linspace is a regular grid of N points from Min to Max inclusive.
type Linspace struct {
	Min float64
	Max float64
	N   int
}

// maxLinspacePoints bounds the grids ValuesToLinspace infers.
const maxLinspacePoints = 1 << 31

// ValuesToLinspace infers the grid that the finite values of vals lie on. The
// step is the smallest difference between unique values; the extremes are
// kept as limits. ok is false when vals has no finite value or when the
// grid would need more than 2^31 points.
func ValuesToLinspace(vals []float64) (Linspace, bool) {
	uniq := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			uniq = append(uniq, v)
		}
	}

	if len(uniq) == 0 {
		return Linspace{}, false
	}

	slices.Sort(uniq)
	uniq = slices.Compact(uniq)

	if len(uniq) == 1 {
		return Linspace{Min: uniq[0], Max: uniq[0], N: 1}, true
	}

	step := math.Inf(1)
	for i := 1; i < len(uniq); i++ {
		step = math.Min(step, uniq[i]-uniq[i-1])
	}

	first, last := uniq[0], uniq[len(uniq)-1]

	steps := math.Round((last - first) / step)
	if steps >= maxLinspacePoints {
		return Linspace{}, false
	}

	n := int(steps) + 1

	return Linspace{Min: first, Max: last, N: n}, true
}

// Step returns the grid spacing, 1 for a single-point grid.
func (ls Linspace) Step() float64 {
	if ls.N <= 1 {
		return 1
	}

	return (ls.Max - ls.Min) / float64(ls.N-1)
}

// Location returns the fractional grid position of v.
func (ls Linspace) Location(v float64) float64 {
	return (v - ls.Min) / ls.Step()
}

// Index returns the nearest grid index of v. ok is false for NaN values and
// values that fall outside the grid.
func (ls Linspace) Index(v float64) (int, bool) {
	if math.IsNaN(v) {
		return -1, false
	}

	i := int(math.Round(ls.Location(v)))
	if i < 0 || i >= ls.N {
		return -1, false
	}

	return i, true
}

// Values returns the grid points.
func (ls Linspace) Values() []float64 {
	out := make([]float64, ls.N)
	for i := range out {
		out[i] = ls.Min + float64(i)*ls.Step()
	}

	if ls.N > 1 {
		out[ls.N-1] = ls.Max
	}

	return out
}

// IndexValues maps every value to its grid index, -1 where it has none.
func IndexValues(vals []float64, ls Linspace) []int {
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i], _ = ls.Index(v)
	}

	return out
}
