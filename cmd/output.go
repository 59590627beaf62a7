package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// matrixOutput is the serialized form of a feature track: one row per
// analysis frame in ascending time order. NaN cells (missing formants)
// are emitted as nulls, which JSON cannot represent as float64.
type matrixOutput struct {
	File   string       `json:"file" yaml:"file"`
	Kind   string       `json:"kind" yaml:"kind"`
	Times  []float64    `json:"times" yaml:"times"`
	Rows   [][]*float64 `json:"rows" yaml:"rows"`
}

func newMatrixOutput(file, kind string, times []float64, matrix [][]float64) *matrixOutput {
	rows := make([][]*float64, len(matrix))
	for i, row := range matrix {
		rows[i] = make([]*float64, len(row))
		for j, v := range row {
			if !math.IsNaN(v) {
				rows[i][j] = &matrix[i][j]
			}
		}
	}
	return &matrixOutput{File: file, Kind: kind, Times: times, Rows: rows}
}

// writeOutput emits the collected tracks in the requested format
func writeOutput(format string, outputs []*matrixOutput) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outputs)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(outputs)
	case "csv":
		return writeCSV(outputs)
	default:
		return fmt.Errorf("unknown output format %q (json, yaml, csv)", format)
	}
}

// writeCSV emits one line per frame: value kind, time, then the frame
// values left to right. Missing values become empty cells.
func writeCSV(outputs []*matrixOutput) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	for _, out := range outputs {
		for i, row := range out.Rows {
			record := make([]string, 0, len(row)+2)
			record = append(record, out.Kind,
				strconv.FormatFloat(out.Times[i], 'f', 6, 64))
			for _, v := range row {
				if v == nil {
					record = append(record, "")
				} else {
					record = append(record, strconv.FormatFloat(*v, 'g', -1, 64))
				}
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	return nil
}
