// Real-time pacing for live runs.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/talgya/estajoj/internal/events"
)

// Clock paces World ticks against wall time. All ticks run on the
// goroutine that calls Run.
type Clock struct {
	World    *World
	Interval time.Duration // base tick interval
	Speed    float64       // multiplier: 1.0 = real-time, 0 = paused

	// OnTick is called after every successful tick with its events.
	OnTick func(tick uint32, tickEvents []events.Event)
}

// NewClock creates a clock with a one second interval at normal speed.
func NewClock(w *World) *Clock {
	return &Clock{
		World:    w,
		Interval: time.Second,
		Speed:    1.0,
	}
}

// Run ticks until ctx is done, the configured duration is reached or the
// world fails. The history is saved one last time on every exit except
// extinction, which Tick has already saved.
func (c *Clock) Run(ctx context.Context) error {
	slog.Info("simulation clock started", "tick", c.World.CurrentTick(), "speed", c.Speed)

	err := c.loop(ctx)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if saveErr := c.World.SaveHistory(); saveErr != nil {
			return fmt.Errorf("final save: %w", saveErr)
		}
		err = nil
	}

	slog.Info("simulation clock stopped", "tick", c.World.CurrentTick(), "population", c.World.Population())
	return err
}

func (c *Clock) loop(ctx context.Context) error {
	for c.World.CurrentTick() < c.World.Params().SimulationDuration {
		if err := ctx.Err(); err != nil {
			return err
		}

		if c.Speed <= 0 {
			// Paused: sleep briefly and check again.
			if err := sleep(ctx, 100*time.Millisecond); err != nil {
				return err
			}
			continue
		}

		start := time.Now()

		tickEvents, err := c.World.Tick()
		if err != nil {
			return err
		}
		if c.OnTick != nil {
			c.OnTick(c.World.CurrentTick(), tickEvents)
		}

		// Sleep for the remainder of the tick interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(c.Interval) / c.Speed)
		if elapsed < target {
			if err := sleep(ctx, target-elapsed); err != nil {
				return err
			}
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
