package data

import (
	"fmt"
	"math"
)

// Convert returns a new table holding the rows of src expressed in domain d.
//
// Every variable of d is looked up in src's domain. Variables found there are
// copied; derived variables are recomputed from src through their compute
// variant, evaluating each shared transform once. A raw feature that src does
// not provide fails the conversion with [ErrDomainTransformation]; missing
// targets and metas become unknown. Interpolated features outside the range
// of the source axis are NaN.
func Convert(d *Domain, src *Table) (*Table, error) {
	if d.Equal(src.Domain) {
		out := src.Select(rowRange(src.Len()))
		out.Domain = d

		return out, nil
	}

	c := converter{src: src, shared: make(map[SharedTransform][][]float64)}
	n := src.Len()

	out := &Table{
		Domain: d,
		X:      make([][]float64, n),
		Y:      make([][]float64, n),
		Metas:  make([][]Value, n),
	}

	for i := range n {
		out.X[i] = make([]float64, len(d.Attributes))
		out.Y[i] = make([]float64, len(d.ClassVars))
		out.Metas[i] = make([]Value, len(d.Metas))
	}

	for j, v := range d.Attributes {
		col, ok, err := c.numeric(v)
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, fmt.Errorf("%w: feature %q not in source domain", ErrDomainTransformation, v.name)
		}

		for i := range n {
			out.X[i][j] = col[i]
		}
	}

	for j, v := range d.ClassVars {
		col, ok, err := c.numeric(v)
		if err != nil {
			return nil, err
		}

		for i := range n {
			if ok {
				out.Y[i][j] = col[i]
			} else {
				out.Y[i][j] = math.NaN()
			}
		}
	}

	for j, v := range d.Metas {
		col, ok, err := c.values(v)
		if err != nil {
			return nil, err
		}

		for i := range n {
			if ok {
				out.Metas[i][j] = col[i]
			} else {
				out.Metas[i][j] = Unknown(v.kind)
			}
		}
	}

	return out, nil
}

type converter struct {
	src    *Table
	shared map[SharedTransform][][]float64
}

// numeric resolves the values of a numeric variable. ok is false when the
// source neither contains v nor allows computing it.
func (c *converter) numeric(v *Variable) ([]float64, bool, error) {
	if role, idx, found := c.src.Domain.Find(v); found {
		if !c.src.Domain.variable(role, idx).IsNumeric() {
			return nil, false, nil
		}

		return c.src.numericColumn(role, idx), true, nil
	}

	cv := v.compute
	switch cv.Kind {
	case ComputeCopy:
		return c.numeric(cv.Source)
	case ComputeInterpolate:
		if cv.Interp == nil {
			return nil, false, nil
		}

		return c.sharedColumn(cv.Interp, cv.Index)
	case ComputeShared:
		return c.sharedColumn(cv.Shared, cv.Index)
	default:
		return nil, false, nil
	}
}

func (c *converter) values(v *Variable) ([]Value, bool, error) {
	if role, idx, found := c.src.Domain.Find(v); found {
		return c.src.valueColumn(role, idx), true, nil
	}

	if v.kind == String {
		if v.compute.Kind == ComputeCopy {
			return c.values(v.compute.Source)
		}

		return nil, false, nil
	}

	nums, ok, err := c.numeric(v)
	if !ok || err != nil {
		return nil, ok, err
	}

	out := make([]Value, len(nums))
	for i, x := range nums {
		out[i] = Value{Num: x}
	}

	return out, true, nil
}

func (c *converter) sharedColumn(st SharedTransform, idx int) ([]float64, bool, error) {
	if st == nil {
		return nil, false, nil
	}

	m, ok := c.shared[st]
	if !ok {
		var err error

		m, err = st.Transform(c.src)
		if err != nil {
			return nil, false, err
		}

		if len(m) != c.src.Len() {
			return nil, false, fmt.Errorf("%w: transform returned %d rows for %d", ErrShape, len(m), c.src.Len())
		}

		c.shared[st] = m
	}

	col := make([]float64, len(m))
	for i, row := range m {
		if idx >= len(row) {
			return nil, false, fmt.Errorf("%w: column %d of %d", ErrShape, idx, len(row))
		}

		col[i] = row[idx]
	}

	return col, true, nil
}

func (d *Domain) variable(role Role, idx int) *Variable {
	switch role {
	case RoleAttribute:
		return d.Attributes[idx]
	case RoleClass:
		return d.ClassVars[idx]
	default:
		return d.Metas[idx]
	}
}

func rowRange(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}

	return rows
}
