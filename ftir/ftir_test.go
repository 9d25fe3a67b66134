package ftir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spectro/data"
	"github.com/cwbudde/algo-spectro/dsp/window"
)

// burst returns a Gaussian-damped cosine centred at peak on top of an offset.
// The cosine completes cycles full periods every 512 points.
func burst(n, peak int, cycles float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		d := float64(i - peak)
		out[i] = 3 + math.Exp(-(d/30)*(d/30))*math.Cos(2*math.Pi*cycles*d/512)
	}

	return out
}

func argmax(xs []float64) int {
	best := 0
	for i, v := range xs {
		if v > xs[best] {
			best = i
		}
	}

	return best
}

func TestSpectrumPeak(t *testing.T) {
	for _, wt := range []window.Type{window.TypeBlackmanHarris3Term, window.TypeHappGenzel, window.TypeTriangle} {
		axis, spec, err := Spectrum(burst(256, 100, 40), WithWindow(wt))
		require.NoError(t, err)
		require.Len(t, axis, 257)
		require.Len(t, spec, 257)

		k := argmax(spec)
		assert.Equal(t, 40, k, wt.String())
		assert.InDelta(t, 40*2*DefaultLaserWavenumber/512, axis[k], 1e-9)
	}
}

func TestSpectrumAxis(t *testing.T) {
	axis, _, err := Spectrum(burst(200, 50, 20))
	require.NoError(t, err)
	require.Len(t, axis, 257)
	assert.Zero(t, axis[0])
	assert.InDelta(t, DefaultLaserWavenumber, axis[256], 1e-9)

	axis, _, err = Spectrum(burst(200, 50, 20), WithPointSpacing(2), WithZeroFill(4))
	require.NoError(t, err)
	require.Len(t, axis, 513)
	assert.InDelta(t, DefaultLaserWavenumber/2, axis[512], 1e-9)

	axis, _, err = Spectrum(burst(200, 50, 20), WithLaserWavenumber(10000))
	require.NoError(t, err)
	assert.InDelta(t, 10000, axis[256], 1e-9)
}

func TestSpectrumRemovesOffset(t *testing.T) {
	_, spec, err := Spectrum(burst(256, 128, 40), WithWindow(window.TypeRectangular))
	require.NoError(t, err)
	assert.Less(t, spec[0], spec[40]/10)
}

func TestSpectrumErrors(t *testing.T) {
	_, _, err := Spectrum(nil)
	require.ErrorIs(t, err, ErrEmptyInput)

	_, _, err = Spectrum([]float64{1, 2}, WithZeroFill(0))
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, _, err = Spectrum([]float64{1, 2}, WithPointSpacing(0))
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, _, err = Spectrum([]float64{1, 2}, WithLaserWavenumber(math.NaN()))
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestTable(t *testing.T) {
	tbl, err := Table([][]float64{burst(256, 100, 40), burst(256, 90, 60), burst(256, 120, 80)})
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	require.Len(t, tbl.Domain.Attributes, 257)

	xs, err := data.GetX(tbl)
	require.NoError(t, err)
	assert.InDelta(t, 60*2*DefaultLaserWavenumber/512, xs[argmax(tbl.X[1])], 1e-9)

	_, err = Table([][]float64{burst(256, 100, 40), burst(255, 100, 40)})
	require.ErrorIs(t, err, data.ErrShape)

	_, err = Table(nil)
	require.ErrorIs(t, err, ErrEmptyInput)
}
