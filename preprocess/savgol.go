package preprocess

import (
	"github.com/cwbudde/algo-spectro/data"
	"github.com/cwbudde/algo-spectro/dsp/savgol"
)

// SavitzkyGolay smooths or differentiates spectra with a Savitzky-Golay
// filter in nearest edge mode and unit sample spacing.
type SavitzkyGolay struct {
	Window    int
	PolyOrder int
	Deriv     int
}

// Apply implements [Preprocessor].
func (p SavitzkyGolay) Apply(t *data.Table) (*data.Table, error) {
	f, err := savgol.New(p.Window, p.PolyOrder, p.Deriv)
	if err != nil {
		return nil, err
	}

	st := &savgolTransform{params: p, filter: f, domain: t.Domain}

	return withAttributes(t, derivedFeatures(t.Domain, st))
}

type savgolTransform struct {
	params SavitzkyGolay
	filter *savgol.Filter
	domain *data.Domain
}

func (s *savgolTransform) Transform(src *data.Table) ([][]float64, error) {
	return transformRows(s.domain, src, func(_, row []float64) ([]float64, error) {
		return s.filter.Apply(row)
	})
}

func (s *savgolTransform) Equivalent(other data.SharedTransform) bool {
	o, ok := other.(*savgolTransform)
	if !ok || o == nil {
		return false
	}

	return s == o || (s.params == o.params && s.domain.Equal(o.domain))
}
