// Package interp provides interpolation primitives for resampling sampled
// curves onto new abscissae.
//
// Available methods:
//
//   - [Linear]:   piecewise-linear interpolation between neighbouring samples
//   - [Nearest]:  value of the closest sample
//
// [Linear] and [Nearest] never extrapolate: query positions outside the closed
// range [xs[0], xs[len(xs)-1]] produce NaN. Query positions that hit a sample
// position exactly return that sample unchanged.
package interp
