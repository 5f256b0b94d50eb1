package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/talgya/estajoj/internal/config"
	"github.com/talgya/estajoj/internal/events"
	"github.com/talgya/estajoj/internal/history"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testRecord(n int) *history.Record {
	rec := &history.Record{
		SimulationID: "0b7e2d2c-7f55-4a57-9a8e-1d0c1c7b6a01",
		StartTime:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Parameters:   config.DefaultParams(),
	}
	for i := 0; i < n; i++ {
		rec.Events = append(rec.Events, events.New(events.ActionType(events.ActionHelp), "Estajo_0 -> Estajo_1"))
	}
	return rec
}

func TestSaveAndLoadRecord(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	rec := testRecord(3)
	rec.Events = append(rec.Events, events.New(events.StateChangeType(events.StateReproduction), "New estajo born from 0 and 1"))
	if err := db.SaveRecord(ctx, rec); err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}

	back, err := db.LoadRecord(ctx, rec.SimulationID)
	if err != nil {
		t.Fatalf("LoadRecord: %v", err)
	}
	if len(back.Events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(back.Events))
	}
	if !back.Events[3].Type.Is(events.StateChangeType(events.StateReproduction)) {
		t.Errorf("event type lost: %s", back.Events[3].Type)
	}
	if back.Parameters != rec.Parameters {
		t.Errorf("parameters mismatch: %+v", back.Parameters)
	}
	if !back.StartTime.Equal(rec.StartTime) {
		t.Errorf("start time mismatch: %v", back.StartTime)
	}
}

func TestSaveRecordReplaces(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.SaveRecord(ctx, testRecord(5)); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveRecord(ctx, testRecord(2)); err != nil {
		t.Fatal(err)
	}

	runs, err := db.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 || runs[0].EventCount != 2 {
		t.Errorf("expected one run with 2 events, got %+v", runs)
	}

	n, err := db.CountEvents(ctx, testRecord(0).SimulationID, events.ActionType(events.ActionHelp))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 archived events after replace, got %d", n)
	}
}

func TestRecentEvents(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	rec := testRecord(0)
	for _, d := range []string{"a", "b", "c"} {
		rec.Events = append(rec.Events, events.New(events.NeedType(events.NeedFood), d))
	}
	if err := db.SaveRecord(ctx, rec); err != nil {
		t.Fatal(err)
	}

	recent, err := db.RecentEvents(ctx, rec.SimulationID, 2)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(recent) != 2 || recent[0].Details != "c" || recent[1].Details != "b" {
		t.Errorf("unexpected recent events %+v", recent)
	}
}

func TestArchiveMirrorsHistoryStore(t *testing.T) {
	db := openTestDB(t)

	store, err := history.New(config.DefaultParams(), history.WithDir(t.TempDir()), history.WithArchive(db))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	store.RecordEvent(events.New(events.NeedType(events.NeedAmbition), "Estajo_3 shows ambition towards Estajo_1"))
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	back, err := db.LoadRecord(context.Background(), store.SimulationID())
	if err != nil {
		t.Fatalf("LoadRecord: %v", err)
	}
	if len(back.Events) != 1 {
		t.Errorf("expected mirrored event, got %d", len(back.Events))
	}
}
