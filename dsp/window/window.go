package window

import (
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies an apodization function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHappGenzel
	TypeTriangle
	TypeBlackmanHarris3Term
	TypeBlackmanHarris4Term
	TypeBlackmanNuttall
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name            string
	ENBW            float64
	HighestSidelobe float64
}

var (
	hannCoeffs            = []float64{0.5, -0.5}
	happGenzelCoeffs      = []float64{0.54, -0.46}
	blackmanHarris3Coeffs = []float64{0.42323, -0.49755, 0.07922}
	blackmanHarris4Coeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	blackmanNuttallCoeffs = []float64{0.3635819, -0.4891775, 0.1365995, -0.0106411}
)

var metadataByType = map[Type]Metadata{
	TypeRectangular:         {Name: "Boxcar", ENBW: 1.0, HighestSidelobe: -13.3},
	TypeHann:                {Name: "Hann", ENBW: 1.5, HighestSidelobe: -31.5},
	TypeHappGenzel:          {Name: "Happ-Genzel", ENBW: 1.36, HighestSidelobe: -42.7},
	TypeTriangle:            {Name: "Triangle", ENBW: 1.33, HighestSidelobe: -26.5},
	TypeBlackmanHarris3Term: {Name: "Blackman-Harris 3-term", ENBW: 1.71, HighestSidelobe: -67.0},
	TypeBlackmanHarris4Term: {Name: "Blackman-Harris 4-term", ENBW: 2.0, HighestSidelobe: -92.0},
	TypeBlackmanNuttall:     {Name: "Blackman-Nuttall", ENBW: 1.98, HighestSidelobe: -98.1},
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

func defaultConfig() config {
	return config{}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// String returns the display name of t.
func (t Type) String() string {
	if m, ok := metadataByType[t]; ok {
		return m.Name
	}

	return "unknown"
}

// ParseType resolves a window name case-insensitively. Spaces, dashes and
// underscores are ignored, so "blackman-harris-4-term" and "BlackmanHarris4Term"
// both match.
func ParseType(name string) (Type, error) {
	key := normalizeName(name)
	for t, m := range metadataByType {
		if normalizeName(m.Name) == key {
			return t, nil
		}
	}

	switch key {
	case "rectangular", "none":
		return TypeRectangular, nil
	case "hamming":
		return TypeHappGenzel, nil
	}

	return 0, unknownType(name)
}

func normalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}

		return r
	}, strings.ToLower(s))
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic))
	}

	return out
}

// Asymmetric returns a window of the given length whose maximum sits at peak.
// The left flank is the rising half of a symmetric window of length
// 2*peak+1, the right flank the falling half of one of length
// 2*(length-1-peak)+1, so both ends reach the window's edge value.
func Asymmetric(t Type, length, peak int) ([]float64, error) {
	if err := validateLength(length); err != nil {
		return nil, err
	}

	if peak < 0 || peak >= length {
		return nil, peakOutOfRange(peak, length)
	}

	out := make([]float64, length)

	left := Generate(t, 2*peak+1)
	copy(out, left[:peak+1])

	right := Generate(t, 2*(length-1-peak)+1)
	copy(out[peak:], right[length-1-peak:])

	return out, nil
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}

	return Metadata{}
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

func evalWindow(t Type, x float64) float64 {
	x = math.Min(math.Max(x, 0), 1)

	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHappGenzel:
		return cosineFromCoeffs(x, happGenzelCoeffs)
	case TypeTriangle:
		return 1 - math.Abs(2*x-1)
	case TypeBlackmanHarris3Term:
		return cosineFromCoeffs(x, blackmanHarris3Coeffs)
	case TypeBlackmanHarris4Term:
		return cosineFromCoeffs(x, blackmanHarris4Coeffs)
	case TypeBlackmanNuttall:
		return cosineFromCoeffs(x, blackmanNuttallCoeffs)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0.5
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
