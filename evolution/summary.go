package evolution

// Summary describes a finished generation. It is what the log sink records.
type Summary struct {
	Generation      int
	Frames          int
	FoodEaten       int
	EndReason       EndReason
	Survivors       int
	PopulationStart int
	Parents         int
	Fallback        bool

	AvgSurvivorEnergy  float64
	AvgSurvivorFitness float64

	TotalBursts      int
	TotalBurstEnergy float64
	TotalCollisions  int

	TopID         uint32
	TopFood       int
	TopEnergy     float64
	TopCollisions int
	TopBursts     int
	TopFitness    float64

	// Mean pairwise genome distance among the selected parents.
	ParentDiversity float64

	// Fitness of every ranked creature, highest first.
	Fitnesses []float64
}

// Summarize builds the generation summary from the counters and the ranked
// candidates. Survivor averages cover non-dying creatures only. The first
// parents ranked candidates are the ones selected for breeding.
func Summarize(c Counters, reason EndReason, ranked []Candidate, fallback bool, parents int) Summary {
	s := Summary{
		Generation:       c.Generation,
		Frames:           c.Frames,
		FoodEaten:        c.FoodEaten,
		EndReason:        reason,
		PopulationStart:  c.PopulationStart,
		Parents:          parents,
		Fallback:         fallback,
		TotalBursts:      c.BurstsActivated,
		TotalBurstEnergy: c.BurstEnergySpent,
		TotalCollisions:  c.Collisions,
		Fitnesses:        make([]float64, 0, len(ranked)),
	}

	var energySum, fitnessSum float64
	for _, r := range ranked {
		s.Fitnesses = append(s.Fitnesses, r.Fitness)
		if r.Dying {
			continue
		}
		s.Survivors++
		energySum += r.Energy
		fitnessSum += r.Fitness
	}
	if s.Survivors > 0 {
		s.AvgSurvivorEnergy = energySum / float64(s.Survivors)
		s.AvgSurvivorFitness = fitnessSum / float64(s.Survivors)
	}

	if len(ranked) > 0 {
		top := ranked[0]
		s.TopID = top.ID
		s.TopFood = top.Lifetime.FoodEaten
		s.TopEnergy = top.Energy
		s.TopCollisions = top.Lifetime.Collisions
		s.TopBursts = top.Lifetime.BurstsActivated
		s.TopFitness = top.Fitness
	}
	if parents > 0 && parents <= len(ranked) {
		s.ParentDiversity = meanPairwiseDistance(ranked[:parents])
	}
	return s
}

// meanPairwiseDistance averages Genome.Distance over every pair of
// candidates that carry a genome. Fewer than two genomes give zero.
func meanPairwiseDistance(cands []Candidate) float64 {
	var sum float64
	var pairs int
	for i := range cands {
		if cands[i].Genome == nil {
			continue
		}
		for j := i + 1; j < len(cands); j++ {
			if cands[j].Genome == nil {
				continue
			}
			sum += cands[i].Genome.Distance(cands[j].Genome)
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}
