package ftir

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectro/data"
	"github.com/cwbudde/algo-spectro/dsp/window"
)

// DefaultLaserWavenumber is the wavenumber of a HeNe reference laser in 1/cm.
const DefaultLaserWavenumber = 15797.337

var (
	// ErrEmptyInput indicates an interferogram without points.
	ErrEmptyInput = errors.New("ftir: empty interferogram")
	// ErrInvalidParameter indicates a non-positive laser wavenumber, point
	// spacing or zero-fill factor.
	ErrInvalidParameter = errors.New("ftir: invalid parameter")
)

type config struct {
	window   window.Type
	zeroFill int
	laser    float64
	spacing  int
}

func defaultConfig() config {
	return config{
		window:   window.TypeBlackmanHarris3Term,
		zeroFill: 2,
		laser:    DefaultLaserWavenumber,
		spacing:  1,
	}
}

// Option configures [Spectrum] and [Table].
type Option func(*config)

// WithWindow selects the apodization function.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// WithZeroFill sets the factor applied to the next power of two above the
// interferogram length.
func WithZeroFill(factor int) Option {
	return func(c *config) {
		c.zeroFill = factor
	}
}

// WithLaserWavenumber sets the reference laser wavenumber in 1/cm.
func WithLaserWavenumber(w float64) Option {
	return func(c *config) {
		c.laser = w
	}
}

// WithPointSpacing sets the number of laser half-wavelengths between two
// interferogram points. Undersampled acquisitions use values above 1.
func WithPointSpacing(n int) Option {
	return func(c *config) {
		c.spacing = n
	}
}

func finalized(opts []Option) (config, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.zeroFill < 1 || cfg.spacing < 1 || !(cfg.laser > 0) || math.IsInf(cfg.laser, 0) {
		return cfg, fmt.Errorf("%w: zero fill %d, spacing %d, laser %g", ErrInvalidParameter, cfg.zeroFill, cfg.spacing, cfg.laser)
	}

	return cfg, nil
}

// Spectrum computes the single-channel spectrum of interferogram. The
// returned axis holds wavenumbers in 1/cm from 0 up to the Nyquist
// wavenumber; spectrum holds the magnitude at each of them.
func Spectrum(interferogram []float64, opts ...Option) (axis, spectrum []float64, err error) {
	cfg, err := finalized(opts)
	if err != nil {
		return nil, nil, err
	}

	t, err := newTransformer(len(interferogram), cfg)
	if err != nil {
		return nil, nil, err
	}

	spectrum, err = t.spectrum(interferogram)
	if err != nil {
		return nil, nil, err
	}

	return t.axis(), spectrum, nil
}

// Table computes the spectra of equally long interferograms and returns them
// as a spectral table on the shared wavenumber axis.
func Table(interferograms [][]float64, opts ...Option) (*data.Table, error) {
	if len(interferograms) == 0 {
		return nil, ErrEmptyInput
	}

	cfg, err := finalized(opts)
	if err != nil {
		return nil, err
	}

	n := len(interferograms[0])

	t, err := newTransformer(n, cfg)
	if err != nil {
		return nil, err
	}

	spectra := make([][]float64, len(interferograms))

	for i, ifg := range interferograms {
		if len(ifg) != n {
			return nil, fmt.Errorf("%w: interferogram %d has %d points, want %d", data.ErrShape, i, len(ifg), n)
		}

		spectra[i], err = t.spectrum(ifg)
		if err != nil {
			return nil, err
		}
	}

	return data.BuildSpecTable(t.axis(), spectra)
}

type transformer struct {
	cfg  config
	n    int
	size int
	plan *algofft.Plan[complex128]

	in  []complex128
	out []complex128
}

func newTransformer(n int, cfg config) (*transformer, error) {
	if n == 0 {
		return nil, ErrEmptyInput
	}

	size := nextPowerOf2(n) * cfg.zeroFill

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("ftir: failed to create FFT plan: %w", err)
	}

	return &transformer{
		cfg:  cfg,
		n:    n,
		size: size,
		plan: plan,
		in:   make([]complex128, size),
		out:  make([]complex128, size),
	}, nil
}

// axis returns the wavenumbers of bins 0..size/2.
func (t *transformer) axis() []float64 {
	dx := float64(t.cfg.spacing) / (2 * t.cfg.laser)
	step := 1 / (float64(t.size) * dx)

	out := make([]float64, t.size/2+1)
	for k := range out {
		out[k] = float64(k) * step
	}

	return out
}

func (t *transformer) spectrum(ifg []float64) ([]float64, error) {
	buf := make([]float64, len(ifg))

	var mean float64
	for _, v := range ifg {
		mean += v
	}

	mean /= float64(len(ifg))

	peak := 0
	for i, v := range ifg {
		buf[i] = v - mean
		if math.Abs(buf[i]) > math.Abs(buf[peak]) {
			peak = i
		}
	}

	apod, err := window.Asymmetric(t.cfg.window, len(buf), peak)
	if err != nil {
		return nil, err
	}

	vecmath.MulBlockInPlace(buf, apod)

	// The centre burst goes to index 0; the part before it wraps to the end.
	clear(t.in)

	for i, v := range buf {
		j := i - peak
		if j < 0 {
			j += t.size
		}

		t.in[j] = complex(v, 0)
	}

	if err := t.plan.Forward(t.out, t.in); err != nil {
		return nil, fmt.Errorf("ftir: forward FFT: %w", err)
	}

	half := t.size/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)

	for k := range half {
		re[k] = real(t.out[k])
		im[k] = imag(t.out[k])
	}

	out := make([]float64, half)
	vecmath.Magnitude(out, re, im)

	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}

	return p
}
