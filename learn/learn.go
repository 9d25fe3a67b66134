package learn

import (
	"context"
	"errors"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/cwbudde/algo-spectro/data"
)

var (
	// ErrNoClass indicates a table without a single discrete class variable.
	ErrNoClass = errors.New("learn: no discrete class variable")
	// ErrNoRows indicates that no training rows remain after preprocessing.
	ErrNoRows = errors.New("learn: no training rows")
)

// Learner fits a model on a table.
type Learner interface {
	Name() string
	Fit(ctx context.Context, t *data.Table) (Model, error)
}

// Model predicts class probabilities.
type Model interface {
	// Domain returns the domain the model was trained in.
	Domain() *data.Domain
	// PredictProba returns one probability per class value for every row
	// of t, after converting t into the model's domain.
	PredictProba(t *data.Table) ([][]float64, error)
}

// Predict returns the most probable class index of every row.
func Predict(m Model, t *data.Table) ([]int, error) {
	probs, err := m.PredictProba(t)
	if err != nil {
		return nil, err
	}

	out := make([]int, len(probs))
	for i, p := range probs {
		best := 0
		for k := range p {
			if p[k] > p[best] {
				best = k
			}
		}

		out[i] = best
	}

	return out, nil
}

// RemoveNaNRows drops every row with an undefined feature value.
type RemoveNaNRows struct{}

// Apply implements preprocess.Preprocessor.
func (RemoveNaNRows) Apply(t *data.Table) (*data.Table, error) {
	bad := roaring.New()

	for i, row := range t.X {
		for _, v := range row {
			if math.IsNaN(v) {
				bad.Add(uint32(i))
				break
			}
		}
	}

	return t.Select(keptRows(t.Len(), bad)), nil
}

// keptRows lists the row indices below n that are not in drop.
func keptRows(n int, drop *roaring.Bitmap) []int {
	keep := roaring.New()
	keep.AddRange(0, uint64(n))
	keep.AndNot(drop)

	rows := make([]int, 0, keep.GetCardinality())

	it := keep.Iterator()
	for it.HasNext() {
		rows = append(rows, int(it.Next()))
	}

	return rows
}

// undefined reports whether x has rows and columns but no defined value.
func undefined(x [][]float64) bool {
	if len(x) == 0 || len(x[0]) == 0 {
		return false
	}

	for _, row := range x {
		for _, v := range row {
			if !math.IsNaN(v) {
				return false
			}
		}
	}

	return true
}
