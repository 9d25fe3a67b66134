package learn

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spectro/data"
	"github.com/cwbudde/algo-spectro/internal/testutil"
	"github.com/cwbudde/algo-spectro/preprocess"
)

func spectra(t *testing.T) *data.Table {
	t.Helper()

	return testutil.SpectralDataset(t, 11, 40, testutil.Axis(1000, 1800, 8))
}

func accuracy(t *testing.T, m Model, tbl *data.Table) float64 {
	t.Helper()

	pred, err := Predict(m, tbl)
	require.NoError(t, err)

	y, _ := tbl.Target()
	hits := 0

	for i, p := range pred {
		if float64(p) == y[i] {
			hits++
		}
	}

	return float64(hits) / float64(len(pred))
}

func blobs(t *testing.T) *data.Table {
	t.Helper()

	class := data.MakeDiscrete("blob", []string{"a", "b", "c", "unused"})
	attrs := []*data.Variable{data.NewFeature(0), data.NewFeature(1)}
	centres := [][2]float64{{0, 0}, {4, 0}, {0, 4}}
	jitter := testutil.DeterministicNoise(5, 0.5, 120)

	var (
		x [][]float64
		y [][]float64
	)

	for i := range 60 {
		k := i % 3
		x = append(x, []float64{centres[k][0] + jitter[2*i], centres[k][1] + jitter[2*i+1]})
		y = append(y, []float64{float64(k)})
	}

	tbl, err := data.NewTable(data.NewDomain(attrs, []*data.Variable{class}, nil), x, y, nil)
	require.NoError(t, err)

	return tbl
}

func TestBinaryFit(t *testing.T) {
	d := spectra(t)

	m, err := NewLogisticRegression().Fit(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, m.Domain().Equal(d.Domain))

	probs, err := m.PredictProba(d)
	require.NoError(t, err)
	require.Len(t, probs, d.Len())

	for _, p := range probs {
		require.Len(t, p, 2)
		assert.InDelta(t, 1, p[0]+p[1], 1e-12)
	}

	assert.Equal(t, 1.0, accuracy(t, m, d))
}

func TestOneVsRest(t *testing.T) {
	d := blobs(t)

	m, err := NewLogisticRegression().Fit(context.Background(), d)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, accuracy(t, m, d), 0.95)

	probs, err := m.PredictProba(d)
	require.NoError(t, err)

	for _, p := range probs {
		require.Len(t, p, 4)
		assert.InDelta(t, 1, p[0]+p[1]+p[2]+p[3], 1e-12)
		assert.Equal(t, 0.0, p[3], "class absent from training")
	}
}

func TestRegularizationStrength(t *testing.T) {
	d := blobs(t)

	weak, err := NewLogisticRegression(WithC(100)).Fit(context.Background(), d)
	require.NoError(t, err)

	strong, err := NewLogisticRegression(WithC(0.001)).Fit(context.Background(), d)
	require.NoError(t, err)

	pw, _ := weak.PredictProba(d.Select([]int{0}))
	ps, _ := strong.PredictProba(d.Select([]int{0}))
	assert.Greater(t, pw[0][0], ps[0][0])
}

func TestFitErrors(t *testing.T) {
	d := spectra(t)

	noClass, err := data.NewTable(data.NewDomain(d.Domain.Attributes, nil, nil), d.X, nil, nil)
	require.NoError(t, err)

	_, err = NewLogisticRegression().Fit(context.Background(), noClass)
	require.ErrorIs(t, err, ErrNoClass)

	unknown := d.Select([]int{0, 1, 2})
	for i := range unknown.Y {
		unknown.Y[i][0] = math.NaN()
	}

	_, err = NewLogisticRegression().Fit(context.Background(), unknown)
	require.ErrorIs(t, err, ErrNoRows)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewLogisticRegression().Fit(ctx, d)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSingleClass(t *testing.T) {
	d := spectra(t).Select([]int{0, 2, 4})

	m, err := NewLogisticRegression().Fit(context.Background(), d)
	require.NoError(t, err)

	probs, err := m.PredictProba(spectra(t).Select([]int{1}))
	require.Error(t, err, "fresh raw features are another domain")
	assert.Nil(t, probs)

	probs, err = m.PredictProba(d)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, probs[0])
}

func TestPredictDestroyedAttributes(t *testing.T) {
	d := spectra(t)

	m, err := NewLogisticRegression().Fit(context.Background(), d)
	require.NoError(t, err)

	_, err = m.PredictProba(testutil.Shifted(t, d, 0))
	require.ErrorIs(t, err, data.ErrDomainTransformation)
}

func TestPredictOutsideRangeFails(t *testing.T) {
	d := spectra(t)
	axis, _ := data.GetX(d)

	m, err := NewLogisticRegression(WithPreprocessors(preprocess.Interpolate{Points: axis})).Fit(context.Background(), d)
	require.NoError(t, err)

	// Every model feature lies beyond the end of this axis.
	far := testutil.Shifted(t, d, 10000)

	converted, err := data.Convert(m.Domain(), far)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(converted.X[0][0]))

	_, err = m.PredictProba(far)
	require.ErrorIs(t, err, data.ErrDomainTransformation)
}

func TestInterpolatingModelAcceptsOtherAxes(t *testing.T) {
	d := spectra(t)
	axis, _ := data.GetX(d)

	m, err := NewLogisticRegression(WithPreprocessors(preprocess.Interpolate{Points: axis})).Fit(context.Background(), d)
	require.NoError(t, err)

	orig, err := m.PredictProba(d)
	require.NoError(t, err)

	same, err := m.PredictProba(testutil.Shifted(t, d, 0))
	require.NoError(t, err)
	assert.Equal(t, orig, same)

	shifted, err := m.PredictProba(testutil.Shifted(t, d, 1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy(t, m, testutil.Shifted(t, d, 1)))

	for i := range shifted {
		assert.InDelta(t, orig[i][1], shifted[i][1], 0.1)
	}
}

func TestNaNHandling(t *testing.T) {
	d := spectra(t).Select([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	for i := range d.X {
		d.X[i][0] = math.NaN()
	}

	d.X[3][5] = math.NaN()

	m, err := NewLogisticRegression().Fit(context.Background(), d)
	require.NoError(t, err)

	lr := m.(*LogisticRegression)
	assert.Len(t, lr.columns, len(d.Domain.Attributes)-1)
	assert.Equal(t, 1, lr.columns[0])

	probs, err := m.PredictProba(d)
	require.NoError(t, err)

	for _, p := range probs {
		testutil.RequireFinite(t, p)
	}
}

func TestRemoveNaNRows(t *testing.T) {
	d := spectra(t).Select([]int{0, 1, 2, 3})
	d.X[1][7] = math.NaN()
	d.X[3][0] = math.NaN()

	out, err := RemoveNaNRows{}.Apply(d)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{d.X[0], d.X[2]}, out.X)
	assert.Equal(t, [][]float64{d.Y[0], d.Y[2]}, out.Y)

	m, err := NewLogisticRegression(WithPreprocessors(RemoveNaNRows{})).Fit(context.Background(), d)
	require.NoError(t, err)

	_, err = m.PredictProba(d)
	require.NoError(t, err)
}

func TestFitLogs(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := NewLogisticRegression(WithLogger(logger), WithName("lr"))
	assert.Equal(t, "lr", l.Name())

	_, err := l.Fit(context.Background(), blobs(t))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "fitting logistic regression")
	assert.Contains(t, buf.String(), "classes=3")
}
