package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndList(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	now := time.Now().UTC().Truncate(time.Second)
	if err := st.Append("metrics.csv", 3, now); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if err := st.Append("other.csv", 1, now.Add(time.Second)); err != nil {
		t.Fatalf("second append failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// newest first
	if runs[0].OutPath != "other.csv" || runs[0].Datasets != 1 {
		t.Fatalf("unexpected first run: %+v", runs[0])
	}
	if runs[1].OutPath != "metrics.csv" || runs[1].Datasets != 3 {
		t.Fatalf("unexpected second run: %+v", runs[1])
	}
	if !runs[1].CreatedAt.Equal(now) {
		t.Fatalf("timestamp not preserved: got %v want %v", runs[1].CreatedAt, now)
	}
}

func TestOpenCreatesSchemaIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	if err := st.Append("metrics.csv", 1, time.Now()); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	st.Close()

	st2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer st2.Close()
	runs, err := st2.List()
	if err != nil {
		t.Fatalf("list after reopen failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run after reopen, got %d", len(runs))
	}
}
