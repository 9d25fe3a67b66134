package preprocess

import (
	"errors"

	"github.com/cwbudde/algo-spectro/data"
)

var (
	// ErrNoPoints indicates an interpolation without target points.
	ErrNoPoints = errors.New("preprocess: no interpolation points")
	// ErrUnknownMethod indicates an unsupported normalization method.
	ErrUnknownMethod = errors.New("preprocess: unknown method")
)

// Preprocessor transforms a table into a new table.
type Preprocessor interface {
	Apply(t *data.Table) (*data.Table, error)
}

// Chain applies preprocessors in order.
type Chain []Preprocessor

// Apply runs every preprocessor of c on the output of the previous one.
func (c Chain) Apply(t *data.Table) (*data.Table, error) {
	var err error

	for _, pp := range c {
		t, err = pp.Apply(t)
		if err != nil {
			return nil, err
		}
	}

	return t, nil
}

// withAttributes returns the table t converted into a domain with the given
// features and the targets and metas of t.
func withAttributes(t *data.Table, attrs []*data.Variable) (*data.Table, error) {
	d := data.NewDomain(attrs, t.Domain.ClassVars, t.Domain.Metas)

	return data.Convert(d, t)
}
