package readers

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-spectro/data"
)

// readCSV reads one spectrum per record. Header names that parse as numbers
// are features; the class column becomes a discrete target; every other
// column becomes a meta, continuous when all its known cells are numbers and
// string otherwise. Empty or "?" cells are unknown.
func readCSV(r io.Reader, cfg *config) (*data.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformed("empty file")
		}

		return nil, malformed("%v", err)
	}

	var (
		attrs    []*data.Variable
		featCols []int
		metaNames []string
		metaCols  []int
		classCol = -1
	)

	for i, name := range header {
		name = strings.TrimSpace(name)

		switch pos, err := strconv.ParseFloat(name, 64); {
		case err == nil:
			attrs = append(attrs, data.MakeFeature(pos))
			featCols = append(featCols, i)
		case name == cfg.classColumn:
			classCol = i
		default:
			metaNames = append(metaNames, name)
			metaCols = append(metaCols, i)
		}
	}

	if len(attrs) == 0 {
		return nil, malformed("no numeric feature columns")
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, malformed("%v", err)
	}

	metaVars := make([]*data.Variable, len(metaCols))
	for j, c := range metaCols {
		if numericColumn(records, c) {
			metaVars[j] = data.MakeContinuous(metaNames[j])
		} else {
			metaVars[j] = data.MakeString(metaNames[j])
		}
	}

	x := make([][]float64, len(records))
	metas := make([][]data.Value, len(records))

	var labels []string

	for r, rec := range records {
		row := make([]float64, len(featCols))
		for j, c := range featCols {
			v, err := parseCell(rec[c])
			if err != nil {
				return nil, malformed("record %d column %q: %v", r+1, header[c], err)
			}

			row[j] = v
		}

		x[r] = row

		m := make([]data.Value, len(metaCols))
		for j, c := range metaCols {
			if metaVars[j].IsNumeric() {
				v, _ := parseCell(rec[c])
				m[j] = data.Value{Num: v}
			} else {
				m[j] = data.Value{Str: rec[c]}
			}
		}

		metas[r] = m

		if classCol >= 0 && !unknownCell(rec[classCol]) && !slices.Contains(labels, rec[classCol]) {
			labels = append(labels, rec[classCol])
		}
	}

	var (
		classVars []*data.Variable
		y         [][]float64
	)

	if classCol >= 0 {
		slices.Sort(labels)
		class := data.MakeDiscrete(cfg.classColumn, labels)
		classVars = []*data.Variable{class}
		y = make([][]float64, len(records))

		for r, rec := range records {
			v := math.NaN()
			if idx, ok := class.ValueIndex(rec[classCol]); ok {
				v = float64(idx)
			}

			y[r] = []float64{v}
		}
	}

	return data.NewTable(data.NewDomain(attrs, classVars, metaVars), x, y, metas)
}

func numericColumn(records [][]string, c int) bool {
	for _, rec := range records {
		if _, err := parseCell(rec[c]); err != nil {
			return false
		}
	}

	return true
}

func unknownCell(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "?"
}

func parseCell(s string) (float64, error) {
	if unknownCell(s) {
		return math.NaN(), nil
	}

	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
