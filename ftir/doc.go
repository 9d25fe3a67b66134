// Package ftir turns Fourier-transform infrared interferograms into
// single-channel spectra.
//
// An interferogram is apodized around its centre burst, zero filled to a
// power of two, transformed with algo-fft and reduced to its magnitude. The
// wavenumber axis follows from the reference laser and the number of laser
// half-wavelengths between two recorded points.
package ftir
