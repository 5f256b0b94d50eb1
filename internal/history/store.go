// Package history accumulates the world-level event stream of a run and
// persists it as one pretty-printed JSON document per run.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/ncruces/go-strftime"

	"github.com/talgya/estajoj/internal/config"
	"github.com/talgya/estajoj/internal/events"
)

// Record is everything persisted for one run.
type Record struct {
	SimulationID string                  `json:"simulation_id"`
	StartTime    time.Time               `json:"start_time"`
	Parameters   config.SimulationParams `json:"parameters"`
	Events       []events.Event          `json:"events"`
}

// Archive mirrors saved records into secondary storage.
type Archive interface {
	SaveRecord(ctx context.Context, rec *Record) error
}

// Store owns the run's destination file for the run's lifetime.
type Store struct {
	record  Record
	path    string
	file    *os.File
	archive Archive
	saves   int
}

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	dir     string
	archive Archive
	now     func() time.Time
}

// WithDir places the record file in dir instead of the working directory.
func WithDir(dir string) Option {
	return func(o *storeOptions) { o.dir = dir }
}

// WithArchive mirrors every successful save into a.
func WithArchive(a Archive) Option {
	return func(o *storeOptions) { o.archive = a }
}

// WithStartTime fixes the start timestamp, and with it the file name.
func WithStartTime(t time.Time) Option {
	return func(o *storeOptions) { o.now = func() time.Time { return t } }
}

// FileName is the record file name for a run started at t.
func FileName(t time.Time) string {
	return strftime.Format("simulation_%Y%m%d_%H%M%S.json", t)
}

// New starts a run record and opens its destination for writing.
func New(params config.SimulationParams, opts ...Option) (*Store, error) {
	o := storeOptions{dir: ".", now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	start := o.now()
	path := filepath.Join(o.dir, FileName(start))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, &PersistError{Op: "open", Path: path, Err: err}
	}

	s := &Store{
		record: Record{
			SimulationID: uuid.NewString(),
			StartTime:    start,
			Parameters:   params,
			Events:       make([]events.Event, 0),
		},
		path:    path,
		file:    f,
		archive: o.archive,
	}
	slog.Debug("history store opened", "path", path, "simulation_id", s.record.SimulationID)
	return s, nil
}

// RecordEvent appends e to the in-memory record. Nothing is written
// until Save.
func (s *Store) RecordEvent(e events.Event) {
	s.record.Events = append(s.record.Events, e)
}

// Save overwrites the destination with the full record and syncs it to
// disk. A configured archive is updated after the file write succeeds.
func (s *Store) Save() error {
	if s.file == nil {
		return &PersistError{Op: "write", Path: s.path, Err: os.ErrClosed}
	}
	data, err := json.MarshalIndent(&s.record, "", "  ")
	if err != nil {
		return &PersistError{Op: "encode", Path: s.path, Err: err}
	}

	if err := s.file.Truncate(0); err != nil {
		return &PersistError{Op: "write", Path: s.path, Err: err}
	}
	if _, err := s.file.WriteAt(data, 0); err != nil {
		return &PersistError{Op: "write", Path: s.path, Err: err}
	}
	if err := s.file.Sync(); err != nil {
		return &PersistError{Op: "sync", Path: s.path, Err: err}
	}
	s.saves++

	slog.Debug("history saved",
		"path", s.path,
		"events", humanize.Comma(int64(len(s.record.Events))),
		"size", humanize.Bytes(uint64(len(data))),
	)

	if s.archive != nil {
		if err := s.archive.SaveRecord(context.Background(), &s.record); err != nil {
			return &PersistError{Op: "archive", Path: s.path, Err: err}
		}
	}
	return nil
}

// RecentEvents returns up to count of the most recently recorded events,
// most recent first.
func (s *Store) RecentEvents(count int) []events.Event {
	n := len(s.record.Events)
	if count > n {
		count = n
	}
	if count <= 0 {
		return nil
	}
	recent := make([]events.Event, 0, count)
	for i := n - 1; i >= n-count; i-- {
		recent = append(recent, s.record.Events[i])
	}
	return recent
}

// Len is the number of recorded events.
func (s *Store) Len() int { return len(s.record.Events) }

// Saves counts successful saves.
func (s *Store) Saves() int { return s.saves }

// Path is the destination file.
func (s *Store) Path() string { return s.path }

// SimulationID identifies the run.
func (s *Store) SimulationID() string { return s.record.SimulationID }

// StartTime is when the run began.
func (s *Store) StartTime() time.Time { return s.record.StartTime }

// Close releases the destination file. It does not save.
func (s *Store) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Load reads a persisted record back.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", path, err)
	}
	return &rec, nil
}
