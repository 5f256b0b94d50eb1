// Needs holds the hunger and ambition drives.
package agents

import (
	"math/rand"

	"golang.org/x/exp/constraints"
)

const (
	MaxNeed float32 = 100

	HungerDecay      float32 = 2  // per tick
	AmbitionDriftMin float32 = -1 // per-tick drift, inclusive
	AmbitionDriftMax float32 = 2  // per-tick drift, exclusive
	AmbitionStartMin float32 = 30
	AmbitionStartMax float32 = 70

	// Agent-local event thresholds.
	HungryThreshold    float32 = 20
	AmbitiousThreshold float32 = 80
)

// Needs tracks one estajo's drives. Both values stay within [0, 100].
type Needs struct {
	Hunger   float32 `json:"hunger"` // 100 = sated, 0 = starving
	Ambition float32 `json:"ambition"`
}

// NewNeeds starts sated with a moderate, random ambition.
func NewNeeds(rng *rand.Rand) Needs {
	return Needs{
		Hunger:   MaxNeed,
		Ambition: uniform(rng, AmbitionStartMin, AmbitionStartMax),
	}
}

// Update applies one tick of hunger decay and ambition drift.
func (n *Needs) Update(rng *rand.Rand) {
	n.UpdateWith(rng.Float32())
}

// UpdateWith is Update with the drift draw supplied; u must be in [0, 1).
func (n *Needs) UpdateWith(u float32) {
	n.Hunger = clamp(n.Hunger-HungerDecay, 0, MaxNeed)
	drift := AmbitionDriftMin + u*(AmbitionDriftMax-AmbitionDriftMin)
	n.Ambition = clamp(n.Ambition+drift, 0, MaxNeed)
}

// Eat restores hunger, capped at 100.
func (n *Needs) Eat(amount float32) {
	n.Hunger = clamp(n.Hunger+amount, 0, MaxNeed)
}

func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

func clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
