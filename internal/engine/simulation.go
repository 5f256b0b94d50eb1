// World ties the population, parameters and history store together.
package engine

import (
	"fmt"
	"log/slog"
	"maps"
	"math/rand"
	"slices"
	"time"

	"github.com/talgya/estajoj/internal/agents"
	"github.com/talgya/estajoj/internal/config"
	"github.com/talgya/estajoj/internal/events"
	"github.com/talgya/estajoj/internal/history"
)

// World owns the live population for the lifetime of a run. Nothing else
// mutates agents; readers use the accessors below.
type World struct {
	population  map[agents.AgentID]*agents.Agent
	issued      map[agents.AgentID]struct{} // every id handed out this run
	params      config.SimulationParams
	rng         *rand.Rand
	currentTick uint32
	history     *history.Store
}

// Option configures a World.
type Option func(*worldOptions)

type worldOptions struct {
	rng         *rand.Rand
	store       *history.Store
	historyOpts []history.Option
}

// WithRand draws all randomness from rng, making a run replayable.
func WithRand(rng *rand.Rand) Option {
	return func(o *worldOptions) { o.rng = rng }
}

// WithStore uses an already opened history store.
func WithStore(s *history.Store) Option {
	return func(o *worldOptions) { o.store = s }
}

// WithHistoryOptions passes options to the history store the World opens.
func WithHistoryOptions(opts ...history.Option) Option {
	return func(o *worldOptions) { o.historyOpts = append(o.historyOpts, opts...) }
}

// NewWorld opens the run's history store and spawns the founders.
func NewWorld(params config.SimulationParams, opts ...Option) (*World, error) {
	var o worldOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.store == nil {
		store, err := history.New(params, o.historyOpts...)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		o.store = store
	}

	w := &World{
		population: make(map[agents.AgentID]*agents.Agent, params.InitialPopulation),
		issued:     make(map[agents.AgentID]struct{}, params.InitialPopulation),
		params:     params,
		rng:        o.rng,
		history:    o.store,
	}
	for _, a := range agents.NewSpawner(w.rng).SpawnPopulation(params.InitialPopulation) {
		w.addAgent(a)
	}

	slog.Info("world ready",
		"simulation_id", w.history.SimulationID(),
		"population", len(w.population),
		"duration", params.SimulationDuration,
	)
	return w, nil
}

// CurrentTick is the number of ticks started so far.
func (w *World) CurrentTick() uint32 { return w.currentTick }

// Params returns the run's parameter snapshot.
func (w *World) Params() config.SimulationParams { return w.params }

// History returns the run's history store.
func (w *World) History() *history.Store { return w.history }

// Population is the number of live agents.
func (w *World) Population() int { return len(w.population) }

// Agent looks up a live agent.
func (w *World) Agent(id agents.AgentID) (*agents.Agent, bool) {
	a, ok := w.population[id]
	return a, ok
}

// IDs returns the live ids in ascending order.
func (w *World) IDs() []agents.AgentID {
	return slices.Sorted(maps.Keys(w.population))
}

// Agents returns copies of the live agents in ascending id order.
func (w *World) Agents() []agents.Agent {
	out := make([]agents.Agent, 0, len(w.population))
	for _, id := range w.IDs() {
		out = append(out, *w.population[id])
	}
	return out
}

// Each calls fn for every live agent in ascending id order. fn must not
// modify the agent.
func (w *World) Each(fn func(a *agents.Agent)) {
	for _, id := range w.IDs() {
		fn(w.population[id])
	}
}

// RecentEvents returns up to count world-level events, newest first.
func (w *World) RecentEvents(count int) []events.Event {
	return w.history.RecentEvents(count)
}

// SaveHistory persists the run record now.
func (w *World) SaveHistory() error {
	return w.history.Save()
}

// Close releases the history destination without saving.
func (w *World) Close() error {
	return w.history.Close()
}

// addAgent inserts a into the population. The caller guarantees the id
// has not been issued before.
func (w *World) addAgent(a *agents.Agent) {
	w.population[a.ID] = a
	w.issued[a.ID] = struct{}{}
}

// freshChildID redraws a child's id until it has never been used.
func (w *World) freshChildID(id agents.AgentID) agents.AgentID {
	for {
		if _, taken := w.issued[id]; !taken {
			return id
		}
		id = agents.AgentID(w.rng.Uint32())
	}
}
