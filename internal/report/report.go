package report

// Package report serializes the metrics table. CSV is the primary output
// format; an indented JSON variant is available for downstream tooling.

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"asmetrics/internal/metrics"
)

var header = []string{"dataset", "num_contigs", "total_contig_bases", "N50"}

// WriteCSV writes rows to path in input order, overwriting any existing
// file. The header row is always written, even for an empty table.
func WriteCSV(path string, rows []metrics.DatasetMetrics) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Dataset,
			strconv.Itoa(r.NumContigs),
			strconv.Itoa(r.TotalContigBases),
			strconv.Itoa(r.N50),
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV loads a metrics table previously written by WriteCSV.
func ReadCSV(path string) ([]metrics.DatasetMetrics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty metrics file", path)
	}
	rows := make([]metrics.DatasetMetrics, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%s: row %d has %d fields, want %d", path, i+2, len(rec), len(header))
		}
		contigs, err1 := strconv.Atoi(rec[1])
		bases, err2 := strconv.Atoi(rec[2])
		n50, err3 := strconv.Atoi(rec[3])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("%s: row %d has non-numeric fields", path, i+2)
		}
		rows = append(rows, metrics.DatasetMetrics{
			Dataset:          rec[0],
			NumContigs:       contigs,
			TotalContigBases: bases,
			N50:              n50,
		})
	}
	return rows, nil
}

// WriteJSON writes rows as an indented JSON array to path.
func WriteJSON(path string, rows []metrics.DatasetMetrics) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
