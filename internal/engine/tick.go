// Package engine provides the tick-based simulation of an estajo
// population.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/estajoj/internal/events"
)

// SaveEvery is the periodic persistence interval in ticks.
const SaveEvery = 10

// Tick advances the world by one step:
//
//  1. aging damages every living agent
//  2. extinction check (final best-effort save, then ErrPopulationExtinct)
//  3. the dead are culled
//  4. survivors' needs advance
//  5. interaction, reproduction, feeding and ambition each fire with
//     their configured chance
//  6. their events go to the history store
//  7. every SaveEvery ticks the store is saved; failures are only logged
//
// The returned events are those of step 5. Per-agent events from steps 1
// and 4 stay in each agent's own history.
func (w *World) Tick() ([]events.Event, error) {
	w.currentTick++

	if alive := w.age(); alive == 0 {
		if err := w.history.Save(); err != nil {
			slog.Error("error saving final history", "tick", w.currentTick, "error", err)
		}
		slog.Info("all estajoj are dead", "tick", w.currentTick)
		return nil, fmt.Errorf("tick %d: %w", w.currentTick, ErrPopulationExtinct)
	}

	w.cullDead()
	w.updateNeeds()

	var tickEvents []events.Event
	if w.roll(w.params.InteractionChance) {
		if e, ok := w.randomInteraction(); ok {
			tickEvents = append(tickEvents, e)
		}
	}
	if w.roll(w.params.ReproductionChance) {
		if e, ok := w.tryReproduction(); ok {
			tickEvents = append(tickEvents, e)
		}
	}
	if w.roll(w.params.HungerTickChance) {
		if e, ok := w.tryFeeding(); ok {
			tickEvents = append(tickEvents, e)
		}
	}
	if w.roll(w.params.AmbitionTickChance) {
		if e, ok := w.processAmbitions(); ok {
			tickEvents = append(tickEvents, e)
		}
	}

	for _, e := range tickEvents {
		w.history.RecordEvent(e)
	}

	if w.currentTick%SaveEvery == 0 {
		if err := w.history.Save(); err != nil {
			slog.Error("error saving history", "tick", w.currentTick, "error", err)
		}
	}

	return tickEvents, nil
}

// RunSimulation ticks until the configured duration is reached, then
// saves the history one last time. Extinction stops the run early and is
// returned along with the events gathered so far.
func (w *World) RunSimulation() ([]events.Event, error) {
	var all []events.Event

	for w.currentTick < w.params.SimulationDuration {
		tickEvents, err := w.Tick()
		if err != nil {
			return all, err
		}
		all = append(all, tickEvents...)
	}

	if err := w.history.Save(); err != nil {
		return all, fmt.Errorf("final save: %w", err)
	}
	slog.Info("simulation complete",
		"ticks", w.currentTick,
		"population", len(w.population),
		"events", len(all),
	)
	return all, nil
}

// roll draws once from [0, 1) and compares against chance.
func (w *World) roll(chance float32) bool {
	return w.rng.Float32() < chance
}
