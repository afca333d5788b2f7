package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asmetrics/internal/metrics"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	rows := []metrics.DatasetMetrics{
		{Dataset: "data1", NumContigs: 2, TotalContigBases: 20, N50: 15},
		{Dataset: "data2", NumContigs: 1, TotalContigBases: 7, N50: 7},
	}
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "dataset,num_contigs,total_contig_bases,N50\ndata1,2,20,15\ndata2,1,7,7\n"
	if string(data) != want {
		t.Fatalf("unexpected CSV contents:\n%q\nwant:\n%q", data, want)
	}
}

func TestWriteCSVOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	if err := os.WriteFile(path, []byte("stale contents\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if err := WriteCSV(path, nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "dataset,num_contigs,total_contig_bases,N50\n" {
		t.Fatalf("expected header-only file, got %q", data)
	}
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	rows := []metrics.DatasetMetrics{
		{Dataset: "data1", NumContigs: 3, TotalContigBases: 42, N50: 21},
	}
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(got) != 1 || got[0] != rows[0] {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

func TestReadCSVRejectsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	if err := os.WriteFile(path, []byte("dataset,num_contigs,total_contig_bases,N50\ndata1,x,20,15\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if _, err := ReadCSV(path); err == nil {
		t.Fatal("expected error for non-numeric field")
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.json")
	rows := []metrics.DatasetMetrics{
		{Dataset: "data1", NumContigs: 2, TotalContigBases: 20, N50: 15},
	}
	if err := WriteJSON(path, rows); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	for _, frag := range []string{`"dataset": "data1"`, `"num_contigs": 2`, `"N50": 15`} {
		if !strings.Contains(string(data), frag) {
			t.Fatalf("JSON output missing %q:\n%s", frag, data)
		}
	}
}
