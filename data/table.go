package data

import (
	"fmt"
	"math"
	"slices"
)

// Value is one meta cell. Numeric variables use Num (NaN when unknown),
// string variables use Str.
type Value struct {
	Num float64
	Str string
}

// Unknown returns the missing value for a variable of kind k.
func Unknown(k VarKind) Value {
	if k == String {
		return Value{}
	}

	return Value{Num: math.NaN()}
}

// Table is a set of rows described by a domain. Tables are treated as
// immutable: transforms return new tables.
type Table struct {
	Domain *Domain
	X      [][]float64
	Y      [][]float64
	Metas  [][]Value
}

// NewTable validates the shapes of x, y and metas against d. Nil y or metas
// are filled with unknown values.
func NewTable(d *Domain, x, y [][]float64, metas [][]Value) (*Table, error) {
	n := len(x)

	if y == nil {
		y = make([][]float64, n)
		for i := range y {
			y[i] = nanRow(len(d.ClassVars))
		}
	}

	if metas == nil {
		metas = make([][]Value, n)
		for i := range metas {
			metas[i] = unknownMetas(d)
		}
	}

	if len(y) != n || len(metas) != n {
		return nil, fmt.Errorf("%w: %d rows of X, %d of Y, %d of metas", ErrShape, n, len(y), len(metas))
	}

	for i := range n {
		if len(x[i]) != len(d.Attributes) {
			return nil, fmt.Errorf("%w: row %d has %d features, domain has %d", ErrShape, i, len(x[i]), len(d.Attributes))
		}

		if len(y[i]) != len(d.ClassVars) {
			return nil, fmt.Errorf("%w: row %d has %d targets, domain has %d", ErrShape, i, len(y[i]), len(d.ClassVars))
		}

		if len(metas[i]) != len(d.Metas) {
			return nil, fmt.Errorf("%w: row %d has %d metas, domain has %d", ErrShape, i, len(metas[i]), len(d.Metas))
		}
	}

	return &Table{Domain: d, X: x, Y: y, Metas: metas}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.X) }

// Select returns a new table holding copies of the given rows in order.
func (t *Table) Select(rows []int) *Table {
	out := &Table{
		Domain: t.Domain,
		X:      make([][]float64, len(rows)),
		Y:      make([][]float64, len(rows)),
		Metas:  make([][]Value, len(rows)),
	}

	for i, r := range rows {
		out.X[i] = slices.Clone(t.X[r])
		out.Y[i] = slices.Clone(t.Y[r])
		out.Metas[i] = slices.Clone(t.Metas[r])
	}

	return out
}

// Transform converts the table into domain d, see [Convert].
func (t *Table) Transform(d *Domain) (*Table, error) {
	return Convert(d, t)
}

// Column returns the numeric values of the column described by v.
func (t *Table) Column(v *Variable) ([]float64, bool) {
	role, idx, ok := t.Domain.Find(v)
	if !ok || !v.IsNumeric() {
		return nil, false
	}

	return t.numericColumn(role, idx), true
}

// Target returns the values of the single class variable.
func (t *Table) Target() ([]float64, bool) {
	if len(t.Domain.ClassVars) != 1 {
		return nil, false
	}

	return t.numericColumn(RoleClass, 0), true
}

func (t *Table) numericColumn(role Role, idx int) []float64 {
	out := make([]float64, t.Len())

	for i := range out {
		switch role {
		case RoleAttribute:
			out[i] = t.X[i][idx]
		case RoleClass:
			out[i] = t.Y[i][idx]
		default:
			out[i] = t.Metas[i][idx].Num
		}
	}

	return out
}

func (t *Table) valueColumn(role Role, idx int) []Value {
	if role == RoleMeta {
		out := make([]Value, t.Len())
		for i := range out {
			out[i] = t.Metas[i][idx]
		}

		return out
	}

	nums := t.numericColumn(role, idx)
	out := make([]Value, len(nums))

	for i, v := range nums {
		out[i] = Value{Num: v}
	}

	return out
}

func nanRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.NaN()
	}

	return row
}

func unknownMetas(d *Domain) []Value {
	row := make([]Value, len(d.Metas))
	for i, v := range d.Metas {
		row[i] = Unknown(v.kind)
	}

	return row
}
