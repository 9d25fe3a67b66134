package preprocess

import (
	"github.com/cwbudde/algo-spectro/data"
	"github.com/cwbudde/algo-spectro/dsp/interp"
)

// Interpolate resamples spectra onto Points. Points outside a table's axis
// range become NaN.
type Interpolate struct {
	Points []float64
	Kind   interp.Kind
	// KeepNaN lets NaN samples propagate to neighbouring points instead of
	// being skipped.
	KeepNaN bool
}

// Apply implements [Preprocessor].
func (p Interpolate) Apply(t *data.Table) (*data.Table, error) {
	if len(p.Points) == 0 {
		return nil, ErrNoPoints
	}

	opts := []data.InterpolationOption{
		data.WithKind(p.Kind),
		data.WithSourceDomain(t.Domain),
	}

	if p.KeepNaN {
		opts = append(opts, data.WithNaNs())
	}

	return withAttributes(t, data.FeaturesWithInterpolation(p.Points, opts...))
}
