package readers

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-spectro/data"
)

// axisChannel is the NEA channel that holds the interferometer positions.
const axisChannel = "M"

var neaHeader = []string{"Row", "Column", "Run", "Channel"}

// readNEA reads a tab separated neaSPEC export. Lines of channel M provide
// the axis; every other line becomes a row with row, column, run and channel
// metas.
func readNEA(r io.Reader, cfg *config) (*data.Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}

		return nil, malformed("empty file")
	}

	head := strings.Split(strings.TrimRight(sc.Text(), "\r"), "\t")
	if len(head) < len(neaHeader) || !slices.Equal(head[:len(neaHeader)], neaHeader) {
		return nil, malformed("header does not start with %s", strings.Join(neaHeader, ", "))
	}

	var (
		axis    []float64
		spectra [][]float64
		metas   [][]data.Value
		line    = 1
	)

	for sc.Scan() {
		line++

		text := strings.TrimRight(sc.Text(), "\r\t")
		if text == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) <= len(neaHeader) {
			return nil, malformed("line %d: no data columns", line)
		}

		pos := make([]float64, 3)
		for i := range pos {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, malformed("line %d: %s %q", line, neaHeader[i], fields[i])
			}

			pos[i] = v
		}

		values, err := parseFloats(fields[len(neaHeader):])
		if err != nil {
			return nil, malformed("line %d: %v", line, err)
		}

		channel := fields[3]
		if channel == axisChannel {
			switch {
			case axis == nil:
				axis = values
			case !slices.Equal(axis, values):
				return nil, malformed("line %d: axis differs from the first %s channel", line, axisChannel)
			}

			continue
		}

		spectra = append(spectra, values)
		metas = append(metas, []data.Value{{Num: pos[0]}, {Num: pos[1]}, {Num: pos[2]}, {Str: channel}})
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	if axis == nil {
		return nil, malformed("no %s channel", axisChannel)
	}

	for i, s := range spectra {
		if len(s) != len(axis) {
			return nil, malformed("row %d has %d values, axis has %d", i, len(s), len(axis))
		}
	}

	cfg.logger.Debug("nea channels", "rows", len(spectra), "points", len(axis))

	metaVars := []*data.Variable{
		data.MakeContinuous("row"),
		data.MakeContinuous("column"),
		data.MakeContinuous("run"),
		data.MakeString("channel"),
	}

	return data.BuildSpecTable(axis, spectra, data.WithMetas(metaVars, metas))
}
