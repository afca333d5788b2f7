package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asmetrics/internal/history"
)

func writeDataset(t *testing.T, base, name, contigs string, withRef bool) string {
	t.Helper()
	dir := filepath.Join(base, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if contigs != "" {
		if err := os.WriteFile(filepath.Join(dir, "contig.fasta"), []byte(contigs), 0o644); err != nil {
			t.Fatalf("write contigs: %v", err)
		}
	}
	if withRef {
		if err := os.WriteFile(filepath.Join(dir, "long.fasta"), []byte(">ref\nACGT\n"), 0o644); err != nil {
			t.Fatalf("write reference: %v", err)
		}
	}
	return dir
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestRunAutoDiscovery(t *testing.T) {
	base := t.TempDir()
	writeDataset(t, base, "data1", ">c1\nACGTA\n>c2\nACGTACGTACGTACG\n", true)
	chdir(t, base)

	var out, errBuf bytes.Buffer
	if code := run(nil, &out, &errBuf); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "Wrote metrics.csv with metrics for 1 dataset(s).") {
		t.Fatalf("unexpected stdout: %q", out.String())
	}
	data, err := os.ReadFile(filepath.Join(base, "metrics.csv"))
	if err != nil {
		t.Fatalf("output CSV missing: %v", err)
	}
	want := "dataset,num_contigs,total_contig_bases,N50\ndata1,2,20,15\n"
	if string(data) != want {
		t.Fatalf("unexpected CSV:\n%q\nwant:\n%q", data, want)
	}
}

func TestRunNoDatasetsFound(t *testing.T) {
	chdir(t, t.TempDir())

	var out, errBuf bytes.Buffer
	if code := run(nil, &out, &errBuf); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errBuf.String(), "No datasets found") {
		t.Fatalf("expected diagnostic on stderr, got %q", errBuf.String())
	}
}

func TestRunExplicitDatasetsAndOutputs(t *testing.T) {
	base := t.TempDir()
	d2 := writeDataset(t, base, "data2", ">c\nACGTACG\n", true)
	d1 := writeDataset(t, base, "data1", ">c\nAC\n", true)
	outCSV := filepath.Join(base, "table.csv")
	outJSON := filepath.Join(base, "table.json")

	var out, errBuf bytes.Buffer
	args := []string{"--datasets", d2 + "," + d1, "--out", outCSV, "--json", outJSON}
	if code := run(args, &out, &errBuf); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, errBuf.String())
	}
	data, err := os.ReadFile(outCSV)
	if err != nil {
		t.Fatalf("output CSV missing: %v", err)
	}
	// explicit datasets keep their given order
	want := "dataset,num_contigs,total_contig_bases,N50\ndata2,1,7,7\ndata1,1,2,2\n"
	if string(data) != want {
		t.Fatalf("unexpected CSV:\n%q\nwant:\n%q", data, want)
	}
	if _, err := os.Stat(outJSON); err != nil {
		t.Fatalf("JSON summary missing: %v", err)
	}
}

func TestRunMissingReferenceFails(t *testing.T) {
	base := t.TempDir()
	dir := writeDataset(t, base, "data1", ">c\nACGT\n", false)

	var out, errBuf bytes.Buffer
	if code := run([]string{"--datasets", dir, "--out", filepath.Join(base, "m.csv")}, &out, &errBuf); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errBuf.String(), "reference not found") {
		t.Fatalf("expected reference error on stderr, got %q", errBuf.String())
	}
}

func TestRunRecordsHistory(t *testing.T) {
	base := t.TempDir()
	dir := writeDataset(t, base, "data1", ">c\nACGT\n", true)
	dbPath := filepath.Join(base, "runs.db")

	var out, errBuf bytes.Buffer
	args := []string{"--datasets", dir, "--out", filepath.Join(base, "m.csv"), "--history", dbPath}
	if code := run(args, &out, &errBuf); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, errBuf.String())
	}

	st, err := history.Open(dbPath)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer st.Close()
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(runs) != 1 || runs[0].Datasets != 1 {
		t.Fatalf("unexpected history: %+v", runs)
	}
}

func TestRunVersion(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := run([]string{"--version"}, &out, &errBuf); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "asmetrics") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestDatasetListFlag(t *testing.T) {
	var d datasetList
	if err := d.Set("a,b"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := d.Set(" c "); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if len(d) != 3 || d[0] != "a" || d[1] != "b" || d[2] != "c" {
		t.Fatalf("unexpected values: %v", d)
	}
}
