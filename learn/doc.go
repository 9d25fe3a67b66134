// Package learn fits classifiers on spectral tables.
//
// A fitted [Model] remembers the domain it was trained in and converts every
// table it predicts into that domain first. Training on a table whose
// features are interpolation-capable therefore yields a model that accepts
// spectra sampled on any axis, while a model trained on raw features rejects
// tables that do not carry them with [data.ErrDomainTransformation].
package learn
