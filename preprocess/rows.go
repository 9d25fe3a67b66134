package preprocess

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-spectro/data"
	"github.com/cwbudde/algo-spectro/dsp/interp"
)

// rowFunc transforms one spectrum given in ascending axis order.
type rowFunc func(xs, row []float64) ([]float64, error)

// transformRows converts src into d when their domains differ and applies fn
// to every row. fn sees the features sorted by axis position with NaN
// samples filled by linear interpolation from their defined neighbours;
// the filled positions are NaN again in the result, which is returned in
// the feature order of d.
func transformRows(d *data.Domain, src *data.Table, fn rowFunc) ([][]float64, error) {
	if !d.Equal(src.Domain) {
		var err error

		src, err = data.Convert(d, src)
		if err != nil {
			return nil, err
		}
	}

	xs, err := d.Axis()
	if err != nil {
		return nil, err
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
	if len(xs) == 0 {
		for r := range out {
			out[r] = []float64{}
		}

		return out, nil
	}

	row := make([]float64, len(xs))

	for r, raw := range src.X {
		for i, o := range order {
			row[i] = raw[o]
		}

		res := make([]float64, len(xs))
		out[r] = res

		missing, ok, err := fillNaN(sortedX, row)
		if err != nil {
			return nil, err
		}

		if !ok {
			for i := range res {
				res[i] = math.NaN()
			}

			continue
		}

		computed, err := fn(sortedX, row)
		if err != nil {
			return nil, err
		}

		for _, i := range missing {
			computed[i] = math.NaN()
		}

		for i, o := range order {
			res[o] = computed[i]
		}
	}

	return out, nil
}

// fillNaN replaces NaN samples of row in place and returns their indices.
// Interior gaps are interpolated linearly, leading and trailing gaps take
// the nearest defined value. ok is false when row has no defined sample.
func fillNaN(xs, row []float64) (missing []int, ok bool, err error) {
	var defX, defY []float64

	for i, v := range row {
		if math.IsNaN(v) {
			missing = append(missing, i)
			continue
		}

		defX = append(defX, xs[i])
		defY = append(defY, v)
	}

	if len(defX) == 0 {
		return missing, false, nil
	}

	if len(missing) == 0 {
		return nil, true, nil
	}

	q := make([]float64, len(missing))
	for k, i := range missing {
		q[k] = xs[i]
	}

	filled := make([]float64, len(q))
	if err := interp.Linear(filled, defX, defY, q); err != nil {
		return nil, false, err
	}

	for k, i := range missing {
		switch {
		case xs[i] < defX[0]:
			row[i] = defY[0]
		case xs[i] > defX[len(defX)-1]:
			row[i] = defY[len(defY)-1]
		default:
			row[i] = filled[k]
		}
	}

	return missing, true, nil
}

// derivedFeatures returns one feature per attribute of d computed through
// column j of st.
func derivedFeatures(d *data.Domain, st data.SharedTransform) []*data.Variable {
	attrs := make([]*data.Variable, len(d.Attributes))
	for j, v := range d.Attributes {
		attrs[j] = v.Derive(data.Compute{Kind: data.ComputeShared, Shared: st, Index: j})
	}

	return attrs
}
