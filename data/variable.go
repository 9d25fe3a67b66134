package data

import (
	"slices"
	"strconv"

	"github.com/google/uuid"
)

// VarKind identifies the value type of a variable.
type VarKind int

const (
	// Continuous variables hold real values; NaN is unknown.
	Continuous VarKind = iota
	// Discrete variables hold an index into their value list; NaN is unknown.
	Discrete
	// String variables hold text and may only appear among the metas.
	String
)

// String returns the kind name.
func (k VarKind) String() string {
	switch k {
	case Discrete:
		return "discrete"
	case String:
		return "string"
	default:
		return "continuous"
	}
}

// ComputeKind tags how a variable obtains its values from another table.
type ComputeKind int

const (
	// ComputeNone marks a raw variable. It can only be read from a table
	// that contains an equal variable.
	ComputeNone ComputeKind = iota
	// ComputeCopy reads the values of Compute.Source.
	ComputeCopy
	// ComputeInterpolate reads column Compute.Index of Compute.Interp.
	ComputeInterpolate
	// ComputeShared reads column Compute.Index of Compute.Shared.
	ComputeShared
)

// SharedTransform computes several columns of a derived domain at once.
// Implementations must be pointer types: conversions cache results per
// transform value.
type SharedTransform interface {
	// Transform returns a len(src.X) x n matrix of computed values.
	Transform(src *Table) ([][]float64, error)
	// Equivalent reports whether other computes the same columns.
	Equivalent(other SharedTransform) bool
}

// Compute describes how a derived variable is recomputed.
type Compute struct {
	Kind   ComputeKind
	Source *Variable
	Interp *Interpolation
	Shared SharedTransform
	Index  int
}

var madeNamespace = uuid.MustParse("6b5c1f3e-3c2a-4d7e-9a51-2f0c8f1d7a90")

// Variable describes one column of a table. Variables are immutable.
type Variable struct {
	name     string
	kind     VarKind
	values   []string
	pos      float64
	hasPos   bool
	compute  Compute
	identity uuid.UUID
}

func newVariable(kind VarKind, name string, values []string) *Variable {
	return &Variable{
		name:     name,
		kind:     kind,
		values:   slices.Clone(values),
		identity: uuid.New(),
	}
}

func madeVariable(kind VarKind, name string, values []string) *Variable {
	v := newVariable(kind, name, values)
	v.identity = uuid.NewSHA1(madeNamespace, []byte(kind.String()+"\x00"+name))

	return v
}

// NewContinuous returns a raw continuous variable with a fresh identity.
func NewContinuous(name string) *Variable {
	return newVariable(Continuous, name, nil)
}

// MakeContinuous returns a raw continuous variable whose identity is derived
// from its name: every call with the same name yields an equal variable.
func MakeContinuous(name string) *Variable {
	return madeVariable(Continuous, name, nil)
}

// NewDiscrete returns a raw discrete variable with a fresh identity.
func NewDiscrete(name string, values []string) *Variable {
	return newVariable(Discrete, name, values)
}

// MakeDiscrete returns a raw discrete variable with a name-derived identity.
func MakeDiscrete(name string, values []string) *Variable {
	return madeVariable(Discrete, name, values)
}

// NewString returns a raw string variable with a fresh identity.
func NewString(name string) *Variable {
	return newVariable(String, name, nil)
}

// MakeString returns a raw string variable with a name-derived identity.
func MakeString(name string) *Variable {
	return madeVariable(String, name, nil)
}

// NewFeature returns a raw continuous feature at position pos, named after it.
func NewFeature(pos float64) *Variable {
	v := NewContinuous(FormatPosition(pos))
	v.pos, v.hasPos = pos, true

	return v
}

// MakeFeature returns a raw continuous feature at position pos whose identity
// is derived from its name, like [MakeContinuous].
func MakeFeature(pos float64) *Variable {
	v := MakeContinuous(FormatPosition(pos))
	v.pos, v.hasPos = pos, true

	return v
}

// FormatPosition formats an axis position the way feature names are written.
func FormatPosition(pos float64) string {
	return strconv.FormatFloat(pos, 'f', -1, 64)
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// Kind returns the variable kind.
func (v *Variable) Kind() VarKind { return v.kind }

// Values returns the value list of a discrete variable.
func (v *Variable) Values() []string { return slices.Clone(v.values) }

// IsNumeric reports whether values are stored as float64.
func (v *Variable) IsNumeric() bool { return v.kind != String }

// Position returns the axis position of a feature variable.
func (v *Variable) Position() (float64, bool) { return v.pos, v.hasPos }

// Compute returns the compute variant.
func (v *Variable) Compute() Compute { return v.compute }

// Interpolates reports whether the variable is computed by interpolation.
func (v *Variable) Interpolates() bool { return v.compute.Kind == ComputeInterpolate }

// ValueIndex returns the index of s in the value list of a discrete variable.
func (v *Variable) ValueIndex(s string) (int, bool) {
	i := slices.Index(v.values, s)
	return i, i >= 0
}

// Copy returns a raw variable with the same name, kind, values and position
// but a fresh identity. The copy is not equal to v.
func (v *Variable) Copy() *Variable {
	c := newVariable(v.kind, v.name, v.values)
	c.pos, c.hasPos = v.pos, v.hasPos

	return c
}

// Derive returns a variable with the same name, kind, values and position
// that obtains its values through c.
func (v *Variable) Derive(c Compute) *Variable {
	d := v.Copy()
	d.compute = c

	return d
}

// Equal reports whether v and w describe the same column.
func (v *Variable) Equal(w *Variable) bool {
	if v == w {
		return true
	}

	if v == nil || w == nil {
		return false
	}

	if v.kind != w.kind || v.name != w.name || !slices.Equal(v.values, w.values) {
		return false
	}

	a, b := v.compute, w.compute
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case ComputeCopy:
		return a.Source.Equal(b.Source)
	case ComputeInterpolate:
		return a.Index == b.Index && a.Interp.Equivalent(b.Interp)
	case ComputeShared:
		if a.Index != b.Index {
			return false
		}

		if a.Shared == nil || b.Shared == nil {
			return a.Shared == b.Shared
		}

		return a.Shared.Equivalent(b.Shared)
	default:
		return v.identity == w.identity
	}
}
