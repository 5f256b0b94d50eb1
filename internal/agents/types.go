// Package agents provides the estajo data model: identity, vitality,
// needs, genetics and the per-agent event history.
package agents

import (
	"fmt"
	"math/rand"

	"github.com/talgya/estajoj/internal/events"
)

// AgentID is unique within one World's lifetime.
type AgentID uint32

// Sex decides reproductive compatibility; only opposite-sex pairs breed.
type Sex uint8

const (
	SexMale   Sex = 0
	SexFemale Sex = 1
)

func (s Sex) String() string {
	if s == SexFemale {
		return "Female"
	}
	return "Male"
}

// FullLife is the vitality of a newly created estajo.
const FullLife float32 = 100

// Agent is one estajo.
type Agent struct {
	ID   AgentID `json:"id"`
	Name string  `json:"name"`

	Sex  Sex     `json:"sex"`
	Life float32 `json:"life"` // 0–100, only ever decreases

	Needs    Needs    `json:"needs"`
	Genetics Genetics `json:"genetics"`

	// Append-only; independent of the world-level event stream.
	History []events.Event `json:"history"`
}

// NewAgent creates a full-health estajo with a uniformly random sex.
func NewAgent(rng *rand.Rand, id AgentID, name string) *Agent {
	return &Agent{
		ID:       id,
		Name:     name,
		Sex:      randomSex(rng),
		Life:     FullLife,
		Needs:    NewNeeds(rng),
		Genetics: NewGenetics(rng),
	}
}

func randomSex(rng *rand.Rand) Sex {
	if rng.Intn(2) == 0 {
		return SexMale
	}
	return SexFemale
}

// IsAlive reports whether life is above zero.
func (a *Agent) IsAlive() bool {
	return a.Life > 0
}

// TakeDamage lowers life, never below zero. The alive→dead transition
// appends exactly one Death event; further damage to a dead agent
// records nothing.
func (a *Agent) TakeDamage(amount float32) {
	wasAlive := a.IsAlive()
	a.Life = max(0, a.Life-amount)
	if wasAlive && !a.IsAlive() {
		a.AddEvent(events.New(events.StateChangeType(events.StateDeath), "Has died"))
	}
}

// ReproduceWith returns a child of a and partner, or nil when both share
// the same sex. The child id is random and not checked for collisions;
// the caller owns id uniqueness. Neither parent is modified.
func (a *Agent) ReproduceWith(rng *rand.Rand, partner *Agent) *Agent {
	if a.Sex == partner.Sex {
		return nil
	}
	return &Agent{
		ID:       AgentID(rng.Uint32()),
		Name:     ChildName(a.ID, partner.ID),
		Sex:      randomSex(rng),
		Life:     FullLife,
		Needs:    NewNeeds(rng),
		Genetics: a.Genetics.Cross(rng, partner.Genetics),
	}
}

// ChildName derives a child's name from both parent ids.
func ChildName(parent1, parent2 AgentID) string {
	return fmt.Sprintf("Child_%d_%d", parent1, parent2)
}

// UpdateNeeds advances needs by one tick and records pressing needs.
func (a *Agent) UpdateNeeds(rng *rand.Rand) {
	a.Needs.Update(rng)
	if a.Needs.Hunger < HungryThreshold {
		a.AddEvent(events.New(events.NeedType(events.NeedFood), "Hungry"))
	}
	if a.Needs.Ambition > AmbitiousThreshold {
		a.AddEvent(events.New(events.NeedType(events.NeedAmbition), "Ambitious"))
	}
}
