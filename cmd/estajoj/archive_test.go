package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/talgya/estajoj/internal/config"
	"github.com/talgya/estajoj/internal/events"
	"github.com/talgya/estajoj/internal/history"
	"github.com/talgya/estajoj/internal/persistence"
)

const testRunID = "5c0c7a1e-2d3b-4f6a-9e8d-7b1a2c3d4e5f"

func archiveWithRun(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.db")
	db, err := persistence.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rec := &history.Record{
		SimulationID: testRunID,
		StartTime:    time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Parameters:   config.DefaultParams(),
		Events: []events.Event{
			events.New(events.ActionType(events.ActionHelp), "Estajo_0 -> Estajo_1"),
			events.New(events.StateChangeType(events.StateReproduction), "New estajo born from 0 and 1"),
			events.New(events.NeedType(events.NeedFood), "Estajo_2 ate"),
		},
	}
	if err := db.SaveRecord(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestListRuns(t *testing.T) {
	path := archiveWithRun(t)

	var out bytes.Buffer
	if err := inspectArchive(path, true, "", &out); err != nil {
		t.Fatalf("inspectArchive: %v", err)
	}
	if !strings.Contains(out.String(), testRunID) || !strings.Contains(out.String(), "3 events") {
		t.Errorf("unexpected listing:\n%s", out.String())
	}
}

func TestShowRun(t *testing.T) {
	path := archiveWithRun(t)

	var out bytes.Buffer
	if err := inspectArchive(path, false, testRunID, &out); err != nil {
		t.Fatalf("inspectArchive: %v", err)
	}
	got := out.String()
	for _, want := range []string{"population 10", "REPRODUCTION  1", "HURT          0", "Estajo_2 ate"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	// Most recent event is listed first.
	if strings.Index(got, "Estajo_2 ate") > strings.Index(got, "Estajo_0 -> Estajo_1") {
		t.Errorf("recent events should be newest first:\n%s", got)
	}
}

func TestShowUnknownRun(t *testing.T) {
	path := archiveWithRun(t)
	if err := inspectArchive(path, false, "missing", &bytes.Buffer{}); err == nil {
		t.Error("expected an error for an unknown run")
	}
}

func TestInspectNeedsArchive(t *testing.T) {
	if err := inspectArchive("", true, "", &bytes.Buffer{}); err == nil {
		t.Error("expected an error without an archive path")
	}
}
