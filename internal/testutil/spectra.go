package testutil

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/cwbudde/algo-spectro/data"
)

// ClassVar is the class variable of [SpectralDataset].
var ClassVar = data.MakeDiscrete("type", []string{"collagen", "other"})

// SpectralDataset returns n absorbance spectra at axis. Even rows are of
// class "collagen" and carry strong bands at 1240 and 1338, odd rows of
// class "other" carry them weakly. Both share amide I and II bands and a
// sloped baseline. The result is deterministic for a seed and the classes
// are separable with a wide margin.
func SpectralDataset(t testing.TB, seed int64, n int, axis []float64) *data.Table {
	t.Helper()

	rng := rand.New(rand.NewPCG(uint64(seed), 0x2545f4914f6cdd1d))
	spectra := make([][]float64, n)
	y := make([]float64, n)

	for r := range spectra {
		class := r % 2
		marker := 0.6
		if class == 1 {
			marker = 0.1
		}

		row := make([]float64, len(axis))
		amideI := Band(axis, 1655, 40, 0.9+0.2*rng.Float64())
		amideII := Band(axis, 1545, 45, 0.5+0.1*rng.Float64())
		m1 := Band(axis, 1338, 25, marker*(0.9+0.2*rng.Float64()))
		m2 := Band(axis, 1240, 30, marker*(0.9+0.2*rng.Float64()))
		slope := 1e-4 * rng.Float64()

		for i, x := range axis {
			row[i] = amideI[i] + amideII[i] + m1[i] + m2[i] + slope*(x-axis[0]) + 0.005*(rng.Float64()*2-1)
		}

		spectra[r] = row
		y[r] = float64(class)
	}

	return RawSpectra(t, axis, spectra, y)
}

// GradedMarkers are the band centres of [GradedDataset].
var GradedMarkers = []float64{1150, 1350, 1650, 1750}

// GradedDataset returns n spectra at axis whose classes overlap. Each band
// in [GradedMarkers] is slightly stronger in "collagen" rows than in
// "other" rows, with a per-row spread as large as the class difference, so
// every band adds independent evidence and none separates the classes on
// its own.
func GradedDataset(t testing.TB, seed int64, n int, axis []float64) *data.Table {
	t.Helper()

	rng := rand.New(rand.NewPCG(uint64(seed), 0x2545f4914f6cdd1d))
	spectra := make([][]float64, n)
	y := make([]float64, n)

	for r := range spectra {
		class := r % 2
		sign := 1.0
		if class == 1 {
			sign = -1
		}

		row := make([]float64, len(axis))

		for _, centre := range GradedMarkers {
			amp := 0.5 + 0.025*sign + 0.05*rng.NormFloat64()
			band := Band(axis, centre, 30, amp)

			for i := range row {
				row[i] += band[i]
			}
		}

		for i := range row {
			row[i] += 0.005 * (rng.Float64()*2 - 1)
		}

		spectra[r] = row
		y[r] = float64(class)
	}

	return RawSpectra(t, axis, spectra, y)
}

// RawSpectra returns a table with fresh raw features at axis and the class
// values y of [ClassVar].
func RawSpectra(t testing.TB, axis []float64, spectra [][]float64, y []float64) *data.Table {
	t.Helper()

	attrs := make([]*data.Variable, len(axis))
	for i, x := range axis {
		attrs[i] = data.NewFeature(x)
	}

	ys := make([][]float64, len(spectra))
	x := make([][]float64, len(spectra))

	for i := range spectra {
		ys[i] = []float64{y[i]}
		x[i] = slices.Clone(spectra[i])
	}

	tbl, err := data.NewTable(data.NewDomain(attrs, []*data.Variable{ClassVar}, nil), x, ys, nil)
	if err != nil {
		t.Fatalf("testutil: %v", err)
	}

	return tbl
}

// Shifted returns the rows of t as raw spectra at axis+delta, as if the
// instrument calibration had moved.
func Shifted(t testing.TB, tbl *data.Table, delta float64) *data.Table {
	t.Helper()

	axis, err := tbl.Domain.Axis()
	if err != nil {
		t.Fatalf("testutil: %v", err)
	}

	moved := make([]float64, len(axis))
	for i, x := range axis {
		moved[i] = x + delta
	}

	y, _ := tbl.Target()

	return RawSpectra(t, moved, tbl.X, y)
}
