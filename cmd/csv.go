package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// displacementColumns holds the raw x, y, z columns of a displacement CSV.
type displacementColumns struct {
	X []float64
	Y []float64
	Z []float64
}

// loadDisplacementCSV reads a CSV with a header row containing x, y and z
// columns (any order, case-insensitive). Other columns are ignored.
func loadDisplacementCSV(path string) (*displacementColumns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	idx := map[string]int{"x": -1, "y": -1, "z": -1}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := idx[name]; ok {
			idx[name] = i
		}
	}
	for _, name := range []string{"x", "y", "z"} {
		if idx[name] < 0 {
			return nil, fmt.Errorf("%s: missing required column %q", path, name)
		}
	}

	cols := &displacementColumns{}
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		line++

		var vals [3]float64
		for i, name := range []string{"x", "y", "z"} {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[idx[name]]), 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: column %q: %w", path, line, name, err)
			}
			vals[i] = v
		}

		cols.X = append(cols.X, vals[0])
		cols.Y = append(cols.Y, vals[1])
		cols.Z = append(cols.Z, vals[2])
	}

	if len(cols.Z) == 0 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	return cols, nil
}
