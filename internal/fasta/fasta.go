package fasta

// Package fasta contains minimal helpers to parse FASTA formatted data used
// by the project. It intentionally keeps parsing simple and conservative:
// line-oriented, no alphabet validation.

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Record represents a single FASTA record (header and sequence).
type Record struct {
	Header   string
	Sequence string
}

// ParseFasta reads FASTA records from r and returns a slice of Record.
// Lines beginning with '>' denote headers; sequence lines are concatenated
// with surrounding whitespace stripped. Blank lines are ignored.
func ParseFasta(r io.Reader) []Record {
	scanner := bufio.NewScanner(r)
	var records []Record
	var current Record
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if current.Header != "" {
				records = append(records, current)
			}
			current = Record{Header: strings.TrimSpace(line[1:])}
		} else {
			current.Sequence += line
		}
	}
	if current.Header != "" {
		records = append(records, current)
	}
	return records
}

// ReadLengths returns the sequence length of each record in the FASTA file
// at path, in file order. Lengths count whitespace-stripped sequence
// characters only. A header with no preceding sequence data contributes
// nothing, so zero-length records never appear in the result; a file that
// ends without a trailing header still emits its last record.
func ReadLengths(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lengths []int
	current := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if current > 0 {
				lengths = append(lengths, current)
			}
			current = 0
		} else {
			current += len(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current > 0 {
		lengths = append(lengths, current)
	}
	return lengths, nil
}
