// Command estajoj runs the estajo population simulation, either on the
// interactive dashboard or headless.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talgya/estajoj/internal/census"
	"github.com/talgya/estajoj/internal/config"
	"github.com/talgya/estajoj/internal/engine"
	"github.com/talgya/estajoj/internal/entropy"
	"github.com/talgya/estajoj/internal/events"
	"github.com/talgya/estajoj/internal/history"
	"github.com/talgya/estajoj/internal/persistence"
	"github.com/talgya/estajoj/internal/tui"
)

// logFileName receives the log while the dashboard owns the terminal.
const logFileName = "estajoj.log"

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, then random)")
	headless := flag.Bool("headless", false, "Run without the dashboard")
	verbose := flag.Bool("v", false, "Debug logging")
	historyDir := flag.String("history-dir", "", "Directory for simulation records (empty = use config)")
	archivePath := flag.String("archive", "", "SQLite archive of run records (empty = use config)")
	censusPath := flag.String("census", "", "Per-tick census CSV (empty = use config)")
	duration := flag.Uint("duration", 0, "Ticks before a headless run stops (0 = use config)")
	listFlag := flag.Bool("list-runs", false, "List runs in the archive and exit")
	showID := flag.String("show", "", "Summarize one archived run by simulation id and exit")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Run.Seed = *seed
	}
	if *headless {
		cfg.Run.Headless = true
	}
	// The dashboard needs a terminal; piped or redirected runs go headless.
	if !cfg.Run.Headless && !isatty.IsTerminal(os.Stdout.Fd()) {
		cfg.Run.Headless = true
	}
	if *historyDir != "" {
		cfg.History.Dir = *historyDir
	}
	if *archivePath != "" {
		cfg.History.ArchivePath = *archivePath
	}
	if *censusPath != "" {
		cfg.Census.Path = *censusPath
	}
	if *duration != 0 {
		cfg.Simulation.SimulationDuration = uint32(*duration)
	}

	if *listFlag || *showID != "" {
		if err := inspectArchive(cfg.History.ArchivePath, *listFlag, *showID, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "archive: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := os.MkdirAll(cfg.History.Dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create history dir: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogging(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg)
	closeLog()

	switch {
	case err == nil:
	case errors.Is(err, engine.ErrPopulationExtinct):
		fmt.Println("All estajoj are dead.")
	default:
		var perr *history.PersistError
		if errors.As(err, &perr) {
			fmt.Fprintf(os.Stderr, "history %s failed for %s: %v\n", perr.Op, perr.Path, perr.Err)
		} else {
			fmt.Fprintf(os.Stderr, "simulation failed: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	rng, seed := entropy.NewRand(cfg.Run.Seed)
	cfg.Run.Seed = seed

	historyOpts := []history.Option{history.WithDir(cfg.History.Dir)}

	// ── Archive ───────────────────────────────────────────────────────
	if cfg.History.ArchivePath != "" {
		db, err := persistence.Open(cfg.History.ArchivePath)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer db.Close()
		historyOpts = append(historyOpts, history.WithArchive(db))
		slog.Info("archive opened", "path", cfg.History.ArchivePath)
	}

	// ── World ─────────────────────────────────────────────────────────
	world, err := engine.NewWorld(cfg.Simulation,
		engine.WithRand(rng),
		engine.WithHistoryOptions(historyOpts...),
	)
	if err != nil {
		return err
	}
	defer world.Close()

	// The record holds the parameters; the snapshot adds the seed and the
	// driver settings needed to replay the run.
	snapshot := strings.TrimSuffix(world.History().Path(), ".json") + ".config.yaml"
	if err := cfg.WriteYAML(snapshot); err != nil {
		slog.Warn("failed to write config snapshot", "path", snapshot, "error", err)
	}
	slog.Info("run configured", "seed", seed, "record", world.History().Path(), "headless", cfg.Run.Headless)

	// ── Census ────────────────────────────────────────────────────────
	censusLog, err := census.NewLog(cfg.Census.Path)
	if err != nil {
		return err
	}
	defer censusLog.Close()

	onTick := func(tick uint32, tickEvents []events.Event) {
		if err := censusLog.Write(census.Take(tick, world.Agents())); err != nil {
			slog.Error("census write failed", "tick", tick, "error", err)
		}
		for _, e := range tickEvents {
			slog.Debug("event", "tick", tick, "type", e.Type.Label(), "details", e.Details)
		}
	}

	// ── Run ───────────────────────────────────────────────────────────
	if cfg.Run.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		clock := engine.NewClock(world)
		clock.Interval = cfg.Run.TickInterval
		clock.Speed = cfg.Run.Speed
		clock.OnTick = onTick
		err = clock.Run(ctx)
	} else {
		err = tui.Run(world, cfg.Run.TickInterval, onTick)
		// Extinction was saved by the tick that detected it.
		if err == nil {
			err = world.SaveHistory()
		}
	}

	slog.Info("run finished",
		"ticks", world.CurrentTick(),
		"population", world.Population(),
		"events", humanize.Comma(int64(world.History().Len())),
		"census_rows", censusLog.Rows(),
	)
	return err
}

// setupLogging installs the default logger. A terminal gets colored text
// and anything else gets JSON. While the dashboard is up, logs go to a
// file in the history dir instead.
func setupLogging(cfg *config.Config, verbose bool) (func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stdout
	closeFn := func() {}
	if !cfg.Run.Headless {
		f, err := os.OpenFile(filepath.Join(cfg.History.Dir, logFileName), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		out = f
		closeFn = func() { f.Close() }
	}

	var handler slog.Handler
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		charmLevel := charmlog.InfoLevel
		if verbose {
			charmLevel = charmlog.DebugLevel
		}
		handler = charmlog.NewWithOptions(out, charmlog.Options{
			Level:           charmLevel,
			ReportTimestamp: true,
		})
	} else {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
	return closeFn, nil
}
