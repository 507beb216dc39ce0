// Package evolution scores creatures and drives the generation lifecycle:
// ranking, parent selection and reproduction with mutation.
package evolution

import (
	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
)

// Weights scale each lifetime counter's contribution to fitness.
type Weights struct {
	FoodGain         float64
	CollisionPenalty float64
	BurstBonus       float64
}

// WeightsFromConfig builds fitness weights from configuration.
func WeightsFromConfig(cfg *config.Config) Weights {
	return Weights{
		FoodGain:         cfg.Food.EnergyGain,
		CollisionPenalty: cfg.Obstacles.FitnessPenalty,
		BurstBonus:       cfg.Burst.FitnessBonus,
	}
}

// Fitness scores a creature from its lifetime counters, floored at 0.
// It only reads counters, so it works the same for dying creatures.
func Fitness(l components.Lifetime, w Weights) float64 {
	f := float64(l.FoodEaten)*w.FoodGain -
		float64(l.Collisions)*w.CollisionPenalty +
		float64(l.BurstsActivated)*w.BurstBonus
	if f < 0 {
		return 0
	}
	return f
}
