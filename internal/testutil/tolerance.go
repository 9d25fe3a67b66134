package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and agree within eps at every index. NaN matches NaN only.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if !nearlyEqual(got[i], want[i], eps) {
			t.Fatalf("index %d: got %v, want %v (eps %v)", i, got[i], want[i], eps)
		}
	}
}

// RequireRowsNearlyEqual applies [RequireSliceNearlyEqual] to every row of
// two spectra matrices.
func RequireRowsNearlyEqual(t testing.TB, got, want [][]float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("row count mismatch: got %d, want %d", len(got), len(want))
	}

	for r := range got {
		if d, err := MaxAbsDiff(got[r], want[r]); err != nil || d > eps {
			t.Fatalf("row %d: max difference %v (eps %v), err %v", r, d, eps, err)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, values []float64) {
	t.Helper()

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute difference between a and b.
// Positions where exactly one side is NaN count as an infinite difference.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	var worst float64

	for i := range a {
		na, nb := math.IsNaN(a[i]), math.IsNaN(b[i])

		switch {
		case na && nb:
			continue
		case na || nb:
			return math.Inf(1), nil
		}

		worst = math.Max(worst, math.Abs(a[i]-b[i]))
	}

	return worst, nil
}

func nearlyEqual(a, b, eps float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}

	return math.Abs(a-b) <= eps
}
