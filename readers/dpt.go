package readers

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-spectro/data"
)

// readDPT reads columns of numbers. The first column is the axis and every
// further column one spectrum; features are interpolation-capable.
func readDPT(r io.Reader, _ *config) (*data.Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		axis    []float64
		columns [][]float64
		line    int
	)

	for sc.Scan() {
		line++

		fields := splitFields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if columns == nil {
			if len(fields) < 2 {
				return nil, malformed("line %d: need an axis and at least one spectrum", line)
			}

			columns = make([][]float64, len(fields)-1)
		}

		if len(fields) != len(columns)+1 {
			return nil, malformed("line %d: %d columns, want %d", line, len(fields), len(columns)+1)
		}

		vals, err := parseFloats(fields)
		if err != nil {
			return nil, malformed("line %d: %v", line, err)
		}

		axis = append(axis, vals[0])
		for i := range columns {
			columns[i] = append(columns[i], vals[i+1])
		}
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(axis) == 0 {
		return nil, malformed("no data")
	}

	return data.BuildSpecTable(axis, columns)
}

func splitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ',', ';', '\t', ' ', '\r':
			return true
		}

		return false
	})
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))

	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}
