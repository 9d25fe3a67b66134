package preprocess

import (
	"github.com/cwbudde/algo-spectro/data"
)

// Cut keeps the features whose axis position lies in [Low, High], or with
// Inverse set, those outside it. The kept features are the table's own
// variables, so the result converts like the input does.
type Cut struct {
	Low, High float64
	Inverse   bool
}

// Apply implements [Preprocessor].
func (c Cut) Apply(t *data.Table) (*data.Table, error) {
	xs, err := t.Domain.Axis()
	if err != nil {
		return nil, err
	}

	low, high := min(c.Low, c.High), max(c.Low, c.High)

	var attrs []*data.Variable

	for i, x := range xs {
		inside := x >= low && x <= high
		if inside != c.Inverse {
			attrs = append(attrs, t.Domain.Attributes[i])
		}
	}

	return withAttributes(t, attrs)
}
