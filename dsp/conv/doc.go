// Package conv provides convolution and centred filtering of sampled spectra.
//
// Two convolution strategies are available:
//
//   - Direct convolution: O(N*M) time-domain convolution, used for short
//     kernels and for inputs containing NaN so that undefined samples only
//     affect their neighbourhood
//   - Overlap-add (OLA): FFT-based block convolution for long kernels
//
// [Convolve] selects between them. [Filter] applies a centred kernel and
// returns an output of the input's length, extending the edges according to
// an [Edge] mode:
//
//	smoothed, err := conv.Filter(spectrum, kernel, conv.EdgeNearest)
package conv
