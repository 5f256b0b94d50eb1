// Needs-driven sub-processes: feeding and ambition.
package engine

import (
	"github.com/talgya/estajoj/internal/agents"
	"github.com/talgya/estajoj/internal/events"
)

// Fixed thresholds; not part of SimulationParams.
const (
	FeedingThreshold  float32 = 30 // hunger below this can be fed
	MealSize          float32 = 30
	AmbitionThreshold float32 = 70 // ambition above this can act
)

// tryFeeding feeds one hungry agent chosen uniformly at random.
func (w *World) tryFeeding() (events.Event, bool) {
	hungry := w.selectIDs(func(a *agents.Agent) bool {
		return a.Needs.Hunger < FeedingThreshold
	})
	if len(hungry) == 0 {
		return events.Event{}, false
	}

	id := hungry[w.rng.Intn(len(hungry))]
	w.population[id].Needs.Eat(MealSize)

	return events.Newf(events.NeedType(events.NeedFood), "%s ate", agents.FounderName(id)), true
}

// processAmbitions lets one ambitious agent set its sights on another
// agent drawn from the whole population, possibly itself. It records the
// event only; no agent state changes.
func (w *World) processAmbitions() (events.Event, bool) {
	ambitious := w.selectIDs(func(a *agents.Agent) bool {
		return a.Needs.Ambition > AmbitionThreshold
	})
	if len(ambitious) == 0 {
		return events.Event{}, false
	}

	id := ambitious[w.rng.Intn(len(ambitious))]
	all := w.IDs()
	target := all[w.rng.Intn(len(all))]

	return events.Newf(events.NeedType(events.NeedAmbition),
		"%s shows ambition towards %s", agents.FounderName(id), agents.FounderName(target)), true
}

// selectIDs collects the ids of agents matching keep, in ascending order.
func (w *World) selectIDs(keep func(a *agents.Agent) bool) []agents.AgentID {
	var ids []agents.AgentID
	for _, id := range w.IDs() {
		if keep(w.population[id]) {
			ids = append(ids, id)
		}
	}
	return ids
}
