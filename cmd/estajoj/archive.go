package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/estajoj/internal/events"
	"github.com/talgya/estajoj/internal/persistence"
)

// reportTypes are the world-level event types summarized by -show.
var reportTypes = []events.EventType{
	events.ActionType(events.ActionHelp),
	events.ActionType(events.ActionHurt),
	events.ActionType(events.ActionPlot),
	events.StateChangeType(events.StateReproduction),
	events.NeedType(events.NeedFood),
	events.NeedType(events.NeedAmbition),
}

// listRuns prints one line per archived run, newest first.
func listRuns(ctx context.Context, db *persistence.DB, w io.Writer) error {
	runs, err := db.Runs(ctx)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "no archived runs")
		return nil
	}
	for _, r := range runs {
		saved := r.SavedAt
		if t, err := time.Parse(time.RFC3339Nano, r.SavedAt); err == nil {
			saved = humanize.Time(t)
		}
		fmt.Fprintf(w, "%s  started %s  %s events  saved %s\n",
			r.SimulationID, r.StartTime, humanize.Comma(int64(r.EventCount)), saved)
	}
	return nil
}

// showRun prints a run's parameters, per-type event counts and its most
// recent events.
func showRun(ctx context.Context, db *persistence.DB, id string, recent int, w io.Writer) error {
	rec, err := db.LoadRecord(ctx, id)
	if err != nil {
		return err
	}

	p := rec.Parameters
	fmt.Fprintf(w, "run %s started %s\n", rec.SimulationID, rec.StartTime.Format(time.DateTime))
	fmt.Fprintf(w, "population %d, duration %d, chances interaction=%.2f reproduction=%.2f hunger=%.2f ambition=%.2f\n",
		p.InitialPopulation, p.SimulationDuration,
		p.InteractionChance, p.ReproductionChance, p.HungerTickChance, p.AmbitionTickChance)
	fmt.Fprintf(w, "%s events\n", humanize.Comma(int64(len(rec.Events))))

	for _, t := range reportTypes {
		n, err := db.CountEvents(ctx, id, t)
		if err != nil {
			return fmt.Errorf("count %s: %w", t.Label(), err)
		}
		fmt.Fprintf(w, "  %-13s %d\n", t.Label(), n)
	}

	evs, err := db.RecentEvents(ctx, id, recent)
	if err != nil {
		return fmt.Errorf("recent events: %w", err)
	}
	if len(evs) > 0 {
		fmt.Fprintln(w, "recent:")
	}
	for _, e := range evs {
		fmt.Fprintf(w, "  %s\n", e)
	}
	return nil
}

// inspectArchive runs -list-runs or -show against the archive at path.
func inspectArchive(path string, list bool, show string, w io.Writer) error {
	if path == "" {
		return fmt.Errorf("no archive configured (use -archive or history.archive_path)")
	}
	db, err := persistence.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if list {
		if err := listRuns(ctx, db, w); err != nil {
			return err
		}
	}
	if show != "" {
		return showRun(ctx, db, show, 10, w)
	}
	return nil
}
