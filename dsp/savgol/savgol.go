// Package savgol implements Savitzky-Golay smoothing and differentiation
// filters.
//
// Coefficients are the least-squares fit of a polynomial of order
// polyorder to a centred window, evaluated (or differentiated) at the centre
// sample. Filtering correlates each signal with those coefficients using
// the edge handling of [conv.Filter]; the default edge mode repeats the
// nearest sample, so a constant signal stays constant up to the edges.
package savgol

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-spectro/dsp/conv"
)

var (
	// ErrInvalidWindow indicates a window that is not a positive odd length
	// greater than the polynomial order.
	ErrInvalidWindow = errors.New("savgol: invalid window")
	// ErrInvalidOrder indicates a negative polynomial order or derivative.
	ErrInvalidOrder = errors.New("savgol: invalid order")
)

// Option configures a [Filter].
type Option func(*config)

type config struct {
	delta float64
	edge  conv.Edge
}

func defaultConfig() config {
	return config{delta: 1, edge: conv.EdgeNearest}
}

// WithDelta sets the sample spacing used to scale derivatives.
// Non-positive values are ignored.
func WithDelta(d float64) Option {
	return func(c *config) {
		if d > 0 {
			c.delta = d
		}
	}
}

// WithEdge selects how samples beyond the signal ends are filled.
func WithEdge(e conv.Edge) Option {
	return func(c *config) {
		c.edge = e
	}
}

// Filter is a configured Savitzky-Golay filter. It is safe for concurrent use.
type Filter struct {
	window    int
	polyorder int
	deriv     int
	edge      conv.Edge
	coeffs    []float64
}

// New returns a filter of the given window length, polynomial order and
// derivative order.
func New(window, polyorder, deriv int, opts ...Option) (*Filter, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	coeffs, err := coefficients(window, polyorder, deriv, cfg.delta)
	if err != nil {
		return nil, err
	}

	return &Filter{
		window:    window,
		polyorder: polyorder,
		deriv:     deriv,
		edge:      cfg.edge,
		coeffs:    coeffs,
	}, nil
}

// Coefficients returns the correlation coefficients of a window, ordered from
// the leftmost to the rightmost sample.
func Coefficients(window, polyorder, deriv int, opts ...Option) ([]float64, error) {
	f, err := New(window, polyorder, deriv, opts...)
	if err != nil {
		return nil, err
	}

	return f.Coefficients(), nil
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	return append([]float64(nil), f.coeffs...)
}

// Window returns the window length.
func (f *Filter) Window() int { return f.window }

// Apply filters signal and returns a new slice of the same length.
// NaN samples affect only outputs whose window covers them.
func (f *Filter) Apply(signal []float64) ([]float64, error) {
	return conv.Filter(signal, f.coeffs, f.edge)
}

func coefficients(window, polyorder, deriv int, delta float64) ([]float64, error) {
	if polyorder < 0 || deriv < 0 {
		return nil, fmt.Errorf("%w: polyorder %d, deriv %d", ErrInvalidOrder, polyorder, deriv)
	}

	if window <= 0 || window%2 == 0 {
		return nil, fmt.Errorf("%w: length %d must be odd and positive", ErrInvalidWindow, window)
	}

	if window <= polyorder {
		return nil, fmt.Errorf("%w: length %d must exceed polyorder %d", ErrInvalidWindow, window, polyorder)
	}

	out := make([]float64, window)
	if deriv > polyorder {
		return out, nil
	}

	half := window / 2
	cols := polyorder + 1

	// Vandermonde matrix of the window offsets.
	a := mat.NewDense(window, cols, nil)
	for i := range window {
		k := float64(i - half)
		p := 1.0

		for j := range cols {
			a.Set(i, j, p)
			p *= k
		}
	}

	eye := mat.NewDiagDense(window, nil)
	for i := range window {
		eye.SetDiag(i, 1)
	}

	var pinv mat.Dense
	if err := pinv.Solve(a, eye); err != nil {
		return nil, fmt.Errorf("savgol: least squares: %w", err)
	}

	scale := factorial(deriv) / math.Pow(delta, float64(deriv))
	for i := range window {
		out[i] = scale * pinv.At(deriv, i)
	}

	return out, nil
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}

	return f
}
