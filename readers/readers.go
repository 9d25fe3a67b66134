package readers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/cwbudde/algo-spectro/data"
)

var (
	// ErrUnknownFormat indicates a file extension or format name no reader
	// is registered for.
	ErrUnknownFormat = errors.New("readers: unknown format")
	// ErrMalformed indicates input that does not follow its format.
	ErrMalformed = errors.New("readers: malformed input")
)

// Format names a file format.
type Format string

const (
	FormatDPT Format = "dpt"
	FormatGSF Format = "gsf"
	FormatNEA Format = "nea"
	FormatCSV Format = "csv"
)

type readFunc func(r io.Reader, cfg *config) (*data.Table, error)

var registry = map[Format]readFunc{
	FormatDPT: readDPT,
	FormatGSF: readGSF,
	FormatNEA: readNEA,
	FormatCSV: readCSV,
}

// Formats returns the supported format names in sorted order.
func Formats() []Format {
	out := make([]Format, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}

	slices.Sort(out)

	return out
}

// Option configures a read.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	classColumn string
}

func defaultConfig() config {
	return config{
		logger:      slog.New(slog.DiscardHandler),
		classColumn: "class",
	}
}

// WithLogger sets the logger reads report to. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClassColumn names the CSV column read as the class variable.
func WithClassColumn(name string) Option {
	return func(c *config) {
		c.classColumn = name
	}
}

func finalized(opts []Option) *config {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &cfg
}

// Read loads the file at path, choosing the reader from its extension.
func Read(path string, opts ...Option) (*data.Table, error) {
	format, compression, err := Detect(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("readers: %w", err)
	}
	defer f.Close()

	r, err := decompress(f, compression)
	if err != nil {
		return nil, fmt.Errorf("readers: %s: %w", path, err)
	}
	defer r.Close()

	cfg := finalized(opts)

	t, err := read(r, format, cfg)
	if err != nil {
		return nil, fmt.Errorf("readers: %s: %w", path, err)
	}

	cfg.logger.Debug("read spectra",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.String("compression", compression),
		slog.Int("rows", t.Len()),
		slog.Int("features", len(t.Domain.Attributes)))

	return t, nil
}

// ReadFrom loads an uncompressed stream of the given format.
func ReadFrom(r io.Reader, format Format, opts ...Option) (*data.Table, error) {
	return read(r, format, finalized(opts))
}

func read(r io.Reader, format Format, cfg *config) (*data.Table, error) {
	fn, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return fn(r, cfg)
}

// Detect returns the format and compression ("", "gz", "zst" or "lz4")
// implied by the extensions of path.
func Detect(path string) (Format, string, error) {
	name := strings.ToLower(filepath.Base(path))
	compression := ""

	for _, c := range []string{"gz", "zst", "lz4"} {
		if strings.HasSuffix(name, "."+c) {
			compression = c
			name = strings.TrimSuffix(name, "."+c)

			break
		}
	}

	format := Format(strings.TrimPrefix(filepath.Ext(name), "."))
	if _, ok := registry[format]; !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}

	return format, compression, nil
}

func decompress(r io.Reader, compression string) (io.ReadCloser, error) {
	switch compression {
	case "gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}

		return zr, nil
	case "zst":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}

		return dec.IOReadCloser(), nil
	case "lz4":
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
