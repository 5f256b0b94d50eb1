// Pairwise interactions and reproduction.
package engine

import (
	"github.com/talgya/estajoj/internal/agents"
	"github.com/talgya/estajoj/internal/events"
)

var interactionActions = [...]events.Action{events.ActionHelp, events.ActionHurt, events.ActionPlot}

// randomInteraction picks an initiator and a distinct target and records
// a Help, Hurt or Plot between them. Vitality and needs are untouched.
func (w *World) randomInteraction() (events.Event, bool) {
	initiator, target, ok := w.pickPair()
	if !ok {
		return events.Event{}, false
	}

	action := interactionActions[w.rng.Intn(len(interactionActions))]
	return events.Newf(events.ActionType(action),
		"%s -> %s", agents.FounderName(initiator), agents.FounderName(target)), true
}

// tryReproduction picks two distinct agents and, when they are of
// opposite sex, adds their child to the population.
func (w *World) tryReproduction() (events.Event, bool) {
	id1, id2, ok := w.pickPair()
	if !ok {
		return events.Event{}, false
	}

	child := w.population[id1].ReproduceWith(w.rng, w.population[id2])
	if child == nil {
		return events.Event{}, false
	}
	child.ID = w.freshChildID(child.ID)
	w.addAgent(child)

	return events.Newf(events.StateChangeType(events.StateReproduction),
		"New estajo born from %d and %d", id1, id2), true
}

// pickPair draws an id uniformly, then a second id uniformly from the
// remaining ones. Fewer than two agents yields no pair.
func (w *World) pickPair() (first, second agents.AgentID, ok bool) {
	ids := w.IDs()
	if len(ids) < 2 {
		return 0, 0, false
	}

	i := w.rng.Intn(len(ids))
	j := w.rng.Intn(len(ids) - 1)
	if j >= i {
		j++
	}
	return ids[i], ids[j], true
}
