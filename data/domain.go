package data

// Role tells in which part of a domain a variable lives.
type Role int

const (
	RoleAttribute Role = iota
	RoleClass
	RoleMeta
)

// Domain is the schema of a table: ordered features (attributes), target
// (class) variables and meta variables.
type Domain struct {
	Attributes []*Variable
	ClassVars  []*Variable
	Metas      []*Variable
}

// NewDomain returns a domain over copies of the given variable lists.
func NewDomain(attributes, classVars, metas []*Variable) *Domain {
	return &Domain{
		Attributes: append([]*Variable(nil), attributes...),
		ClassVars:  append([]*Variable(nil), classVars...),
		Metas:      append([]*Variable(nil), metas...),
	}
}

// ClassVar returns the single class variable, or nil when the domain has
// none or several.
func (d *Domain) ClassVar() *Variable {
	if len(d.ClassVars) != 1 {
		return nil
	}

	return d.ClassVars[0]
}

// Find locates a variable equal to v.
func (d *Domain) Find(v *Variable) (Role, int, bool) {
	for i, w := range d.Attributes {
		if w.Equal(v) {
			return RoleAttribute, i, true
		}
	}

	for i, w := range d.ClassVars {
		if w.Equal(v) {
			return RoleClass, i, true
		}
	}

	for i, w := range d.Metas {
		if w.Equal(v) {
			return RoleMeta, i, true
		}
	}

	return 0, 0, false
}

// ByName returns the first variable with the given name in any role.
func (d *Domain) ByName(name string) *Variable {
	for _, list := range [][]*Variable{d.Attributes, d.ClassVars, d.Metas} {
		for _, v := range list {
			if v.name == name {
				return v
			}
		}
	}

	return nil
}

// HasComputeValues reports whether any feature is derived from another domain.
func (d *Domain) HasComputeValues() bool {
	for _, v := range d.Attributes {
		if v.compute.Kind != ComputeNone {
			return true
		}
	}

	return false
}

// Equal reports whether both domains list pairwise equal variables.
func (d *Domain) Equal(o *Domain) bool {
	if d == o {
		return true
	}

	if d == nil || o == nil {
		return false
	}

	return equalVars(d.Attributes, o.Attributes) &&
		equalVars(d.ClassVars, o.ClassVars) &&
		equalVars(d.Metas, o.Metas)
}

func equalVars(a, b []*Variable) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}
