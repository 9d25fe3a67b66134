package data

import (
	"fmt"
	"strconv"
	"strings"
)

// GetX returns the feature axis of t: one position per feature, in column order.
func GetX(t *Table) ([]float64, error) {
	return t.Domain.Axis()
}

// Axis returns the positions of the domain's features. A feature without an
// explicit position is positioned by parsing its name.
func (d *Domain) Axis() ([]float64, error) {
	xs := make([]float64, len(d.Attributes))

	for i, v := range d.Attributes {
		if v.hasPos {
			xs[i] = v.pos
			continue
		}

		p, err := strconv.ParseFloat(strings.TrimSpace(v.name), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNoAxis, v.name)
		}

		xs[i] = p
	}

	return xs, nil
}
