package metrics

// Package metrics aggregates assembly-quality metrics per dataset
// directory. A dataset directory holds the assembler outputs for one
// sample: contig.fasta (the assembled contigs) and long.fasta (the long
// reads kept as reference next to them).

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"asmetrics/internal/fasta"
	"asmetrics/internal/stats"
)

const (
	// ContigFile is the contigs file expected directly inside every
	// dataset directory.
	ContigFile = "contig.fasta"
	// ReferenceFile must exist next to the contigs. Its contents are
	// never read; the check only guards against running on a directory
	// the assembly step did not finish.
	ReferenceFile = "long.fasta"
)

var (
	ErrContigsMissing   = errors.New("contigs file not found")
	ErrReferenceMissing = errors.New("reference not found")
)

// DatasetMetrics is one row of the output table.
type DatasetMetrics struct {
	Dataset          string `json:"dataset"`
	NumContigs       int    `json:"num_contigs"`
	TotalContigBases int    `json:"total_contig_bases"`
	N50              int    `json:"N50"`
}

// ComputeForDataset reads dir/contig.fasta and reduces it to one metrics
// row. Both contig.fasta and long.fasta must exist directly inside dir.
func ComputeForDataset(dir string) (DatasetMetrics, error) {
	contigs := filepath.Join(dir, ContigFile)
	if _, err := os.Stat(contigs); err != nil {
		return DatasetMetrics{}, fmt.Errorf("%w in %s", ErrContigsMissing, dir)
	}
	ref := filepath.Join(dir, ReferenceFile)
	if _, err := os.Stat(ref); err != nil {
		return DatasetMetrics{}, fmt.Errorf("%w: %s", ErrReferenceMissing, ref)
	}

	lengths, err := fasta.ReadLengths(contigs)
	if err != nil {
		return DatasetMetrics{}, err
	}
	total := 0
	for _, l := range lengths {
		total += l
	}
	return DatasetMetrics{
		Dataset:          filepath.Base(filepath.Clean(dir)),
		NumContigs:       len(lengths),
		TotalContigBases: total,
		N50:              stats.N50(lengths),
	}, nil
}

// FindDatasets lists the immediate children of base whose name starts with
// "data" and which contain a contig.fasta, sorted ascending by path. The
// result may be empty.
func FindDatasets(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "data") {
			continue
		}
		d := filepath.Join(base, e.Name())
		if _, err := os.Stat(filepath.Join(d, ContigFile)); err == nil {
			dirs = append(dirs, d)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
