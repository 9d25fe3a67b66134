package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.1, 3})
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiffNaN(t *testing.T) {
	nan := math.NaN()

	d, err := MaxAbsDiff([]float64{nan, 1}, []float64{nan, 1})
	if err != nil || d != 0 {
		t.Fatalf("MaxAbsDiff = %v, %v; want 0 for matching NaNs", d, err)
	}

	d, _ = MaxAbsDiff([]float64{nan, 1}, []float64{0, 1})
	if !math.IsInf(d, 1) {
		t.Fatalf("MaxAbsDiff = %v, want +Inf for a one-sided NaN", d)
	}
}

func TestRequireHelpersAccept(t *testing.T) {
	nan := math.NaN()

	RequireSliceNearlyEqual(t, []float64{1, nan}, []float64{1 + 1e-12, nan}, 1e-9)
	RequireRowsNearlyEqual(t, [][]float64{{1, nan}, {2}}, [][]float64{{1, nan}, {2}}, 0)
	RequireFinite(t, []float64{0, -1, 1e300})
}
