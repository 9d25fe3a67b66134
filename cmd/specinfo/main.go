// Command specinfo prints a summary of spectral data files.
//
// Usage:
//
//	specinfo [flags] file ...
//
// Examples:
//
//	specinfo sample.dpt
//	specinfo -cut 1000:1800 sample.csv
//	specinfo -interp 1000:1800:2 map.nea
//	specinfo -map map_x,map_y image.csv
//	specinfo -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-spectro/data"
	"github.com/cwbudde/algo-spectro/hyper"
	"github.com/cwbudde/algo-spectro/preprocess"
	"github.com/cwbudde/algo-spectro/readers"
)

var errUsage = errors.New("specinfo: invalid usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	cut    *preprocess.Cut
	interp *preprocess.Interpolate
	mapX   string
	mapY   string
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("specinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cut := fs.String("cut", "", "keep features in `lo:hi` before summarizing")
	interp := fs.String("interp", "", "interpolate onto `start:stop:step` before summarizing")
	mapVars := fs.String("map", "", "print the hypercube grid over coordinate metas `x,y`")
	list := fs.Bool("list", false, "list supported formats")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: specinfo [flags] file ...\n\n")
		fmt.Fprintf(stderr, "Prints rows, features, axis range and targets of spectral files.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *list {
		for _, f := range readers.Formats() {
			fmt.Fprintln(stdout, f)
		}

		return 0
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts, err := parseOptions(*cut, *interp, *mapVars)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "File\tFormat\tRows\tFeatures\tAxis\tTargets\tGrid")
	fmt.Fprintln(tw, "----\t------\t----\t--------\t----\t-------\t----")

	status := 0

	for _, path := range fs.Args() {
		line, err := summarize(path, opts, logger)
		if err != nil {
			logger.Error("summarize", "path", path, "err", err)
			status = 1

			continue
		}

		fmt.Fprintln(tw, line)
	}

	if err := tw.Flush(); err != nil {
		return 1
	}

	return status
}

func parseOptions(cut, interp, mapVars string) (options, error) {
	var opts options

	if cut != "" {
		v, err := parseFloats(cut, 2)
		if err != nil {
			return opts, fmt.Errorf("-cut: %w", err)
		}

		opts.cut = &preprocess.Cut{Low: v[0], High: v[1]}
	}

	if interp != "" {
		v, err := parseFloats(interp, 3)
		if err != nil {
			return opts, fmt.Errorf("-interp: %w", err)
		}

		if !(v[2] > 0) || v[1] < v[0] {
			return opts, fmt.Errorf("-interp: %w: need start <= stop and step > 0", errUsage)
		}

		n := int(math.Floor((v[1]-v[0])/v[2]+0.5)) + 1
		grid := hyper.Linspace{Min: v[0], Max: v[0] + float64(n-1)*v[2], N: n}
		opts.interp = &preprocess.Interpolate{Points: grid.Values()}
	}

	if mapVars != "" {
		x, y, ok := strings.Cut(mapVars, ",")
		if !ok || x == "" || y == "" {
			return opts, fmt.Errorf("-map: %w: want x,y", errUsage)
		}

		opts.mapX, opts.mapY = strings.TrimSpace(x), strings.TrimSpace(y)
	}

	return opts, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != n {
		return nil, fmt.Errorf("%w: %q needs %d colon-separated numbers", errUsage, s, n)
	}

	out := make([]float64, n)

	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}

		out[i] = v
	}

	return out, nil
}

func summarize(path string, opts options, logger *slog.Logger) (string, error) {
	format, _, err := readers.Detect(path)
	if err != nil {
		return "", err
	}

	tbl, err := readers.Read(path, readers.WithLogger(logger))
	if err != nil {
		return "", err
	}

	grid := "-"

	if opts.mapX != "" {
		grid, err = gridSize(tbl, opts.mapX, opts.mapY)
		if err != nil {
			return "", err
		}
	}

	var chain preprocess.Chain
	if opts.interp != nil {
		chain = append(chain, *opts.interp)
	}

	if opts.cut != nil {
		chain = append(chain, *opts.cut)
	}

	if len(chain) > 0 {
		tbl, err = chain.Apply(tbl)
		if err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%s\t%s\t%d\t%d\t%s\t%s\t%s",
		path, format, tbl.Len(), len(tbl.Domain.Attributes), axisRange(tbl), targets(tbl.Domain), grid), nil
}

func axisRange(tbl *data.Table) string {
	xs, err := data.GetX(tbl)
	if err != nil || len(xs) == 0 {
		return "-"
	}

	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo, hi = min(lo, x), max(hi, x)
	}

	return fmt.Sprintf("%g..%g", lo, hi)
}

func targets(d *data.Domain) string {
	if len(d.ClassVars) == 0 {
		return "-"
	}

	names := make([]string, len(d.ClassVars))

	for i, v := range d.ClassVars {
		if vals := v.Values(); len(vals) > 0 {
			names[i] = fmt.Sprintf("%s[%s]", v.Name(), strings.Join(vals, ","))
		} else {
			names[i] = v.Name()
		}
	}

	return strings.Join(names, " ")
}

func gridSize(tbl *data.Table, xName, yName string) (string, error) {
	cube, err := hyper.GetHypercube(tbl, tbl.Domain.ByName(xName), tbl.Domain.ByName(yName))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%dx%d (%d filled)", cube.X.N, cube.Y.N, cube.Count()), nil
}
