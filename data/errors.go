package data

import "errors"

var (
	// ErrDomainTransformation indicates that a table cannot be converted
	// into the requested domain.
	ErrDomainTransformation = errors.New("data: domain transformation failed")
	// ErrNoAxis indicates a feature variable without a numeric position.
	ErrNoAxis = errors.New("data: feature has no numeric position")
	// ErrShape indicates table values that do not match the domain.
	ErrShape = errors.New("data: shape mismatch")
)
