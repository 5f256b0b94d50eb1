// Aging, death and needs.
package engine

import "log/slog"

// AgingDamage is the life every living agent loses per tick.
const AgingDamage float32 = 0.1

// age applies natural aging and returns how many agents are still alive.
func (w *World) age() int {
	alive := 0
	for _, id := range w.IDs() {
		a := w.population[id]
		if !a.IsAlive() {
			continue
		}
		a.TakeDamage(AgingDamage)
		if a.IsAlive() {
			alive++
		}
	}
	return alive
}

// cullDead removes every agent whose life has reached zero.
func (w *World) cullDead() {
	for id, a := range w.population {
		if !a.IsAlive() {
			delete(w.population, id)
			slog.Debug("estajo died", "tick", w.currentTick, "id", id, "name", a.Name)
		}
	}
}

func (w *World) updateNeeds() {
	for _, id := range w.IDs() {
		w.population[id].UpdateNeeds(w.rng)
	}
}
