package data

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/cwbudde/algo-spectro/dsp/interp"
)

// Interpolation resamples the spectra of a table onto fixed axis points.
// Features built by [FeaturesWithInterpolation] share one Interpolation, so a
// conversion evaluates it once for all of them.
type Interpolation struct {
	points     []float64
	kind       interp.Kind
	domain     *Domain
	handleNaNs bool
}

// InterpolationOption configures an [Interpolation].
type InterpolationOption func(*Interpolation)

// WithKind selects the interpolation method. The default is linear.
func WithKind(k interp.Kind) InterpolationOption {
	return func(in *Interpolation) {
		in.kind = k
	}
}

// WithSourceDomain records the domain the interpolated features were derived
// from. Input tables in another domain are first converted into it when it
// carries computed features.
func WithSourceDomain(d *Domain) InterpolationOption {
	return func(in *Interpolation) {
		in.domain = d
	}
}

// WithNaNs keeps NaN samples in the input rows instead of skipping them, so
// they spread to neighbouring output points.
func WithNaNs() InterpolationOption {
	return func(in *Interpolation) {
		in.handleNaNs = false
	}
}

// NewInterpolation returns an interpolation onto points.
func NewInterpolation(points []float64, opts ...InterpolationOption) *Interpolation {
	in := &Interpolation{
		points:     slices.Clone(points),
		kind:       interp.KindLinear,
		handleNaNs: true,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(in)
		}
	}

	return in
}

// FeaturesWithInterpolation returns one feature per point. Each feature is
// computed by interpolating the spectra of whatever table it is read from.
func FeaturesWithInterpolation(points []float64, opts ...InterpolationOption) []*Variable {
	return NewInterpolation(points, opts...).Features()
}

// Features returns the interpolation-capable features of in.
func (in *Interpolation) Features() []*Variable {
	vars := make([]*Variable, len(in.points))

	for i, p := range in.points {
		v := NewContinuous(FormatPosition(p))
		v.pos, v.hasPos = p, true
		v.compute = Compute{Kind: ComputeInterpolate, Interp: in, Index: i}
		vars[i] = v
	}

	return vars
}

// Points returns the target axis.
func (in *Interpolation) Points() []float64 { return slices.Clone(in.points) }

// Transform interpolates every row of src onto the target points. Points
// outside the closed range of src's axis are NaN.
func (in *Interpolation) Transform(src *Table) ([][]float64, error) {
	if in.domain != nil && !in.domain.Equal(src.Domain) && in.domain.HasComputeValues() {
		var err error

		src, err = Convert(in.domain, src)
		if err != nil {
			return nil, err
		}
	}

	xs, err := GetX(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDomainTransformation, err)
	}

	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool { return xs[order[a]] < xs[order[b]] })

	sortedX := make([]float64, len(xs))
	for i, o := range order {
		sortedX[i] = xs[o]
	}

	out := make([][]float64, src.Len())
	rowX := make([]float64, 0, len(xs))
	rowY := make([]float64, 0, len(xs))

	for r, row := range src.X {
		rowX, rowY = rowX[:0], rowY[:0]

		for i, o := range order {
			if in.handleNaNs && math.IsNaN(row[o]) {
				continue
			}

			rowX = append(rowX, sortedX[i])
			rowY = append(rowY, row[o])
		}

		res := make([]float64, len(in.points))
		if err := interp.Eval(in.kind, res, rowX, rowY, in.points); err != nil {
			return nil, err
		}

		out[r] = res
	}

	return out, nil
}

// Equivalent reports whether other interpolates onto the same points, with the
// same method, from an equal source domain.
func (in *Interpolation) Equivalent(other SharedTransform) bool {
	o, ok := other.(*Interpolation)
	if !ok {
		return false
	}

	if in == o {
		return true
	}

	if in == nil || o == nil {
		return false
	}

	if in.kind != o.kind || in.handleNaNs != o.handleNaNs || !slices.Equal(in.points, o.points) {
		return false
	}

	if in.domain == nil || o.domain == nil {
		return in.domain == o.domain
	}

	return in.domain.Equal(o.domain)
}
