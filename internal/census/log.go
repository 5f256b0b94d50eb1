package census

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// Log appends census rows to a CSV file.
type Log struct {
	file          *os.File
	headerWritten bool
	rows          int
}

// NewLog creates (truncating) the CSV file at path.
// Returns nil if path is empty (census logging disabled).
func NewLog(path string) (*Log, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating census log: %w", err)
	}
	return &Log{file: f}, nil
}

// Write appends one snapshot. The first write includes the header.
func (l *Log) Write(s Snapshot) error {
	if l == nil {
		return nil
	}

	records := []Snapshot{s}
	if !l.headerWritten {
		if err := gocsv.Marshal(records, l.file); err != nil {
			return fmt.Errorf("writing census: %w", err)
		}
		l.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, l.file); err != nil {
			return fmt.Errorf("writing census: %w", err)
		}
	}
	l.rows++
	return nil
}

// Rows is the number of snapshots written.
func (l *Log) Rows() int {
	if l == nil {
		return 0
	}
	return l.rows
}

// Close flushes and closes the file.
func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		l.file.Close()
		return err
	}
	return l.file.Close()
}
