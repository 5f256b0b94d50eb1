package agents

import "math/rand"

// Trait ranges for founders and the per-cross perturbation.
const (
	TraitMin   float32 = 0.8
	TraitMax   float32 = 1.2
	CrossNoise float32 = 0.1 // child factor = mean × U[1-noise, 1+noise)
)

// Genetics holds inherited trait multipliers. Immutable once built.
type Genetics struct {
	EnergyFactor       float32 `json:"energy_factor"`
	SatisfactionFactor float32 `json:"satisfaction_factor"`
	InfluenceFactor    float32 `json:"influence_factor"`
}

// NewGenetics samples each factor independently in [0.8, 1.2).
func NewGenetics(rng *rand.Rand) Genetics {
	return Genetics{
		EnergyFactor:       uniform(rng, TraitMin, TraitMax),
		SatisfactionFactor: uniform(rng, TraitMin, TraitMax),
		InfluenceFactor:    uniform(rng, TraitMin, TraitMax),
	}
}

// Cross averages each factor pairwise and perturbs it by an independent
// multiplier in [0.9, 1.1).
func (g Genetics) Cross(rng *rand.Rand, other Genetics) Genetics {
	mix := func(a, b float32) float32 {
		return (a + b) / 2 * uniform(rng, 1-CrossNoise, 1+CrossNoise)
	}
	return Genetics{
		EnergyFactor:       mix(g.EnergyFactor, other.EnergyFactor),
		SatisfactionFactor: mix(g.SatisfactionFactor, other.SatisfactionFactor),
		InfluenceFactor:    mix(g.InfluenceFactor, other.InfluenceFactor),
	}
}
