package preprocess

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-spectro/data"
)

// Method selects a normalization.
type Method int

const (
	// Vector scales each spectrum to unit Euclidean norm.
	Vector Method = iota
	// Area scales each spectrum to unit absolute trapezoidal area over the
	// feature axis.
	Area
	// SNV centres each spectrum on zero and scales it to unit standard
	// deviation (standard normal variate).
	SNV
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case Vector:
		return "vector"
	case Area:
		return "area"
	case SNV:
		return "snv"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Normalize scales every spectrum independently. Spectra whose scale is zero
// become NaN.
type Normalize struct {
	Method Method
}

// Apply implements [Preprocessor].
func (p Normalize) Apply(t *data.Table) (*data.Table, error) {
	if p.Method < Vector || p.Method > SNV {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, p.Method)
	}

	st := &normalizeTransform{method: p.Method, domain: t.Domain}

	return withAttributes(t, derivedFeatures(t.Domain, st))
}

type normalizeTransform struct {
	method Method
	domain *data.Domain
}

func (n *normalizeTransform) Transform(src *data.Table) ([][]float64, error) {
	return transformRows(n.domain, src, func(xs, row []float64) ([]float64, error) {
		out := append([]float64(nil), row...)

		var scale float64

		switch n.method {
		case Vector:
			scale = floats.Norm(out, 2)
		case Area:
			if len(out) > 1 {
				scale = math.Abs(integrate.Trapezoidal(xs, out))
			}
		case SNV:
			mean, std := stat.MeanStdDev(out, nil)
			floats.AddConst(-mean, out)
			scale = std
		}

		if scale == 0 || math.IsNaN(scale) {
			for i := range out {
				out[i] = math.NaN()
			}

			return out, nil
		}

		floats.Scale(1/scale, out)

		return out, nil
	})
}

func (n *normalizeTransform) Equivalent(other data.SharedTransform) bool {
	o, ok := other.(*normalizeTransform)
	if !ok || o == nil {
		return false
	}

	return n == o || (n.method == o.method && n.domain.Equal(o.domain))
}
