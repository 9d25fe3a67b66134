package data

import "fmt"

// Names of the coordinate metas written by [WithCoordinates].
const (
	MapX = "map_x"
	MapY = "map_y"
)

type specConfig struct {
	coords     [][2]float64
	classVars  []*Variable
	y          [][]float64
	metaVars   []*Variable
	metas      [][]Value
	interpOpts []InterpolationOption
}

// SpecOption configures [BuildSpecTable].
type SpecOption func(*specConfig)

// WithCoordinates adds map_x and map_y metas holding one (x, y) pair per row.
func WithCoordinates(coords [][2]float64) SpecOption {
	return func(c *specConfig) {
		c.coords = coords
	}
}

// WithTargets adds class variables and their per-row values.
func WithTargets(vars []*Variable, y [][]float64) SpecOption {
	return func(c *specConfig) {
		c.classVars, c.y = vars, y
	}
}

// WithMetas adds meta variables and their per-row values after any
// coordinate metas.
func WithMetas(vars []*Variable, metas [][]Value) SpecOption {
	return func(c *specConfig) {
		c.metaVars, c.metas = vars, metas
	}
}

// WithFeatureOptions passes options to the interpolation behind the features.
func WithFeatureOptions(opts ...InterpolationOption) SpecOption {
	return func(c *specConfig) {
		c.interpOpts = append(c.interpOpts, opts...)
	}
}

// BuildSpecTable returns a table of spectra sampled at axis. Its features are
// interpolation-capable, so other spectral tables convert into its domain.
func BuildSpecTable(axis []float64, spectra [][]float64, opts ...SpecOption) (*Table, error) {
	var cfg specConfig

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := len(spectra)

	var metaVars []*Variable
	if cfg.coords != nil {
		if len(cfg.coords) != n {
			return nil, fmt.Errorf("%w: %d coordinates for %d spectra", ErrShape, len(cfg.coords), n)
		}

		metaVars = append(metaVars, MakeContinuous(MapX), MakeContinuous(MapY))
	}

	metaVars = append(metaVars, cfg.metaVars...)

	if cfg.metas != nil && len(cfg.metas) != n {
		return nil, fmt.Errorf("%w: %d meta rows for %d spectra", ErrShape, len(cfg.metas), n)
	}

	var metas [][]Value
	if cfg.coords != nil || cfg.metas != nil {
		metas = make([][]Value, n)

		for i := range n {
			row := make([]Value, 0, len(metaVars))
			if cfg.coords != nil {
				row = append(row, Value{Num: cfg.coords[i][0]}, Value{Num: cfg.coords[i][1]})
			}

			if cfg.metas != nil {
				row = append(row, cfg.metas[i]...)
			} else {
				for _, v := range cfg.metaVars {
					row = append(row, Unknown(v.kind))
				}
			}

			metas[i] = row
		}
	}

	d := NewDomain(FeaturesWithInterpolation(axis, cfg.interpOpts...), cfg.classVars, metaVars)

	return NewTable(d, spectra, cfg.y, metas)
}
