// Package hyper maps spatially coordinated spectra onto a dense hypercube
// and back.
//
// Coordinates are bucketed on a regular grid inferred from their unique
// values ([ValuesToLinspace]). [GetHypercube] places every row of a table in
// its (x, y) cell; [SpectraFromImage] and [Cube.ToTable] flatten a cube back
// into rows in raster order (y outer, x inner).
package hyper
