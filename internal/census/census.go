// Package census summarizes the live population once per tick and logs
// the summaries as CSV.
package census

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/talgya/estajoj/internal/agents"
)

// Thresholds that mark an agent as hungry or ambitious in the census.
// They match the feeding and ambition gates of the world.
const (
	HungryBelow    float32 = 30
	AmbitiousAbove float32 = 70
)

// Snapshot is one census row.
type Snapshot struct {
	Tick      uint32 `csv:"tick"`
	Total     int    `csv:"total"`
	Males     int    `csv:"males"`
	Females   int    `csv:"females"`
	Hungry    int    `csv:"hungry"`
	Ambitious int    `csv:"ambitious"`

	LifeMean     float64 `csv:"life_mean"`
	LifeStdDev   float64 `csv:"life_stddev"`
	HungerMean   float64 `csv:"hunger_mean"`
	HungerStdDev float64 `csv:"hunger_stddev"`
	AmbitionMean float64 `csv:"ambition_mean"`
	AmbitionStd  float64 `csv:"ambition_stddev"`
}

// Take counts population and needs for the given tick.
func Take(tick uint32, population []agents.Agent) Snapshot {
	s := Snapshot{Tick: tick, Total: len(population)}

	life := make([]float64, 0, len(population))
	hunger := make([]float64, 0, len(population))
	ambition := make([]float64, 0, len(population))

	for i := range population {
		a := &population[i]
		switch a.Sex {
		case agents.SexMale:
			s.Males++
		case agents.SexFemale:
			s.Females++
		}
		if a.Needs.Hunger < HungryBelow {
			s.Hungry++
		}
		if a.Needs.Ambition > AmbitiousAbove {
			s.Ambitious++
		}
		life = append(life, float64(a.Life))
		hunger = append(hunger, float64(a.Needs.Hunger))
		ambition = append(ambition, float64(a.Needs.Ambition))
	}

	s.LifeMean, s.LifeStdDev = meanStdDev(life)
	s.HungerMean, s.HungerStdDev = meanStdDev(hunger)
	s.AmbitionMean, s.AmbitionStd = meanStdDev(ambition)
	return s
}

// meanStdDev is stat.MeanStdDev with empty and single-sample input
// reported as zero spread instead of NaN.
func meanStdDev(x []float64) (mean, std float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	mean, std = stat.MeanStdDev(x, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}
