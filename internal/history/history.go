package history

// Package history keeps one sqlite row per metrics run so repeated runs
// over the same datasets can be compared later from the web viewer.

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded invocation of the metrics tool.
type Run struct {
	ID        int64
	OutPath   string
	Datasets  int
	CreatedAt time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens the history database at path, creating the file and schema
// if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        out_path TEXT,
        datasets INTEGER,
        created_at TEXT
    )`); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Append records one run.
func (s *Store) Append(outPath string, datasets int, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (out_path, datasets, created_at) VALUES (?, ?, ?)`,
		outPath, datasets, at.UTC().Format(time.RFC3339),
	)
	return err
}

// List returns all recorded runs, newest first.
func (s *Store) List() ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, out_path, datasets, created_at FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.OutPath, &r.Datasets, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
