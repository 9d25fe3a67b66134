package hyper

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/cwbudde/algo-spectro/data"
)

var (
	// ErrInvalidAxis indicates coordinate variables that do not describe a
	// 2-D layout of the table's rows.
	ErrInvalidAxis = errors.New("hyper: invalid axis")
	// ErrShape indicates image data and locations of different sizes.
	ErrShape = errors.New("hyper: shape mismatch")
)

// A grid may hold at most cellsPerRow cells per table row, or minCellLimit
// cells for small tables. Coordinates jittered far below their spacing
// would otherwise infer a step of the jitter and an enormous grid.
const (
	cellsPerRow  = 64
	minCellLimit = 1 << 20
)

// Cube is a dense raster of spectra indexed as Data[x][y][feature]. Cells no
// row landed in hold NaN spectra.
type Cube struct {
	Data [][][]float64
	X    Linspace
	Y    Linspace

	populated *roaring.Bitmap
	rows      []int
	coords    [][2]float64
}

// GetHypercube places every row of t in the cell given by its xVar and yVar
// values. Rows with an undefined coordinate are left out. When several rows
// share a cell the last one wins.
func GetHypercube(t *data.Table, xVar, yVar *data.Variable) (*Cube, error) {
	if xVar == nil || yVar == nil {
		return nil, fmt.Errorf("%w: coordinate variable not set", ErrInvalidAxis)
	}

	if xVar.Equal(yVar) {
		return nil, fmt.Errorf("%w: x and y are both %q", ErrInvalidAxis, xVar.Name())
	}

	xs, ok := t.Column(xVar)
	if !ok {
		return nil, fmt.Errorf("%w: no numeric column %q", ErrInvalidAxis, xVar.Name())
	}

	ys, ok := t.Column(yVar)
	if !ok {
		return nil, fmt.Errorf("%w: no numeric column %q", ErrInvalidAxis, yVar.Name())
	}

	lsx, okx := ValuesToLinspace(xs)
	lsy, oky := ValuesToLinspace(ys)

	if !okx || !oky {
		return nil, fmt.Errorf("%w: no defined coordinates or grid too fine", ErrInvalidAxis)
	}

	if limit := max(minCellLimit, cellsPerRow*t.Len()); lsx.N > limit/lsy.N {
		return nil, fmt.Errorf("%w: %d x %d grid for %d rows", ErrInvalidAxis, lsx.N, lsy.N, t.Len())
	}

	nf := len(t.Domain.Attributes)
	c := &Cube{
		Data:      make([][][]float64, lsx.N),
		X:         lsx,
		Y:         lsy,
		populated: roaring.New(),
		rows:      make([]int, lsx.N*lsy.N),
		coords:    make([][2]float64, lsx.N*lsy.N),
	}

	for xi := range c.Data {
		c.Data[xi] = make([][]float64, lsy.N)
		for yi := range c.Data[xi] {
			c.Data[xi][yi] = nanSpectrum(nf)
		}
	}

	for i := range c.rows {
		c.rows[i] = -1
	}

	for r := range t.X {
		xi, okx := lsx.Index(xs[r])
		yi, oky := lsy.Index(ys[r])

		if !okx || !oky {
			continue
		}

		cell := c.cell(xi, yi)
		copy(c.Data[xi][yi], t.X[r])
		c.rows[cell] = r
		c.coords[cell] = [2]float64{xs[r], ys[r]}
		c.populated.Add(uint32(cell))
	}

	return c, nil
}

func (c *Cube) cell(xi, yi int) int { return xi*c.Y.N + yi }

// Count returns the number of populated cells.
func (c *Cube) Count() int { return int(c.populated.GetCardinality()) }

// Populated reports whether a row landed in cell (xi, yi).
func (c *Cube) Populated(xi, yi int) bool {
	if xi < 0 || yi < 0 || xi >= c.X.N || yi >= c.Y.N {
		return false
	}

	return c.populated.Contains(uint32(c.cell(xi, yi)))
}

// SourceRow returns the table row stored in cell (xi, yi).
func (c *Cube) SourceRow(xi, yi int) (int, bool) {
	if !c.Populated(xi, yi) {
		return -1, false
	}

	return c.rows[c.cell(xi, yi)], true
}

// Locations returns one coordinate per grid index. Indices that received
// rows report the coordinate stored there, the others the grid value.
func (c *Cube) Locations() (xLocs, yLocs []float64) {
	xLocs = c.X.Values()
	yLocs = c.Y.Values()

	it := c.populated.Iterator()
	for it.HasNext() {
		cell := int(it.Next())
		xi, yi := cell/c.Y.N, cell%c.Y.N
		xLocs[xi] = c.coords[cell][0]
		yLocs[yi] = c.coords[cell][1]
	}

	return xLocs, yLocs
}

// SpectraFromImage flattens an image indexed as image[x][y][feature] into
// rows in raster order (y outer, x inner) with the (x, y) location of each.
func SpectraFromImage(image [][][]float64, xLocs, yLocs []float64) ([][]float64, [][2]float64, error) {
	if len(image) != len(xLocs) {
		return nil, nil, fmt.Errorf("%w: %d x locations for %d columns", ErrShape, len(xLocs), len(image))
	}

	for xi := range image {
		if len(image[xi]) != len(yLocs) {
			return nil, nil, fmt.Errorf("%w: %d y locations for %d rows", ErrShape, len(yLocs), len(image[xi]))
		}
	}

	n := len(xLocs) * len(yLocs)
	spectra := make([][]float64, 0, n)
	coords := make([][2]float64, 0, n)

	for yi, y := range yLocs {
		for xi, x := range xLocs {
			spectra = append(spectra, slices.Clone(image[xi][yi]))
			coords = append(coords, [2]float64{x, y})
		}
	}

	return spectra, coords, nil
}

// ToTable rebuilds a table from the populated cells in raster order. The
// features are interpolation-capable features at axis; targets and metas are
// taken from the source rows of src.
func (c *Cube) ToTable(axis []float64, src *data.Table) (*data.Table, error) {
	if len(axis) != len(src.Domain.Attributes) {
		return nil, fmt.Errorf("%w: axis has %d points, table %d features", ErrShape, len(axis), len(src.Domain.Attributes))
	}

	n := c.Count()
	x := make([][]float64, 0, n)
	y := make([][]float64, 0, n)
	metas := make([][]data.Value, 0, n)

	for yi := range c.Y.N {
		for xi := range c.X.N {
			r, ok := c.SourceRow(xi, yi)
			if !ok {
				continue
			}

			x = append(x, slices.Clone(c.Data[xi][yi]))
			y = append(y, slices.Clone(src.Y[r]))
			metas = append(metas, slices.Clone(src.Metas[r]))
		}
	}

	d := data.NewDomain(data.FeaturesWithInterpolation(axis), src.Domain.ClassVars, src.Domain.Metas)

	return data.NewTable(d, x, y, metas)
}

func nanSpectrum(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}
