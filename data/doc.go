// Package data models spectral tables and converts them between domains.
//
// A [Table] holds rows of feature values (X), target values (Y) and meta
// values. Its [Domain] names every column with a [Variable]. The positions of
// the feature variables form the table's feature axis, see [GetX].
//
// Variables carry an explicit compute variant ([ComputeKind]). Raw variables
// only match themselves; derived variables know how to recompute their column
// from another table. [Convert] uses this to move a table into a different
// domain, interpolating spectra when the target features were built by
// [FeaturesWithInterpolation]:
//
//	atts := data.FeaturesWithInterpolation([]float64{1000, 1002, 1004})
//	dom := data.NewDomain(atts, nil, nil)
//	resampled, err := data.Convert(dom, spectra)
//
// Conversions that cannot be performed fail with [ErrDomainTransformation].
package data
