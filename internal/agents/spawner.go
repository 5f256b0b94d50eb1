// Agent spawning: builds the founding cohort of a run.
package agents

import (
	"fmt"
	"math/rand"
)

// Spawner creates founders with sequential ids starting at 0.
type Spawner struct {
	rng    *rand.Rand
	nextID AgentID
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// NextID reports the id the next founder will get.
func (s *Spawner) NextID() AgentID {
	return s.nextID
}

// SpawnPopulation creates count founders. The first two are forced Male
// and Female so that any cohort of two or more can breed; the rest get
// a random sex.
func (s *Spawner) SpawnPopulation(count uint32) []*Agent {
	founders := make([]*Agent, 0, count)
	for i := uint32(0); i < count; i++ {
		a := s.spawnOne()
		switch i {
		case 0:
			a.Sex = SexMale
		case 1:
			a.Sex = SexFemale
		}
		founders = append(founders, a)
	}
	return founders
}

func (s *Spawner) spawnOne() *Agent {
	id := s.nextID
	s.nextID++
	return NewAgent(s.rng, id, FounderName(id))
}

// FounderName is the display name of a founder.
func FounderName(id AgentID) string {
	return fmt.Sprintf("Estajo_%d", id)
}
