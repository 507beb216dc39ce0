package evolution

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/neural"
)

// Offspring is a child genome and where its parent stood.
// HasParent is false for fresh genomes created after extinction.
type Offspring struct {
	Genome    *neural.Genome
	ParentID  uint32
	ParentX   float64
	ParentY   float64
	HasParent bool
}

// Breeding bundles the parameters reproduction needs.
type Breeding struct {
	Target   int
	Hidden   int
	Mutation neural.MutationParams
}

// BreedingFromConfig builds reproduction parameters from configuration.
func BreedingFromConfig(cfg *config.Config) Breeding {
	traits := neural.Traits{
		MinTurnRate: cfg.Steering.MinTurnRate,
		MaxTurnRate: cfg.Steering.MaxTurnRate,
	}
	return Breeding{
		Target: cfg.Population.Initial,
		Hidden: cfg.Neural.Hidden,
		Mutation: neural.MutationParams{
			Chance:         cfg.Mutation.Chance,
			NNAmount:       cfg.Mutation.NNAmount,
			ColorAmount:    cfg.Mutation.ColorAmount,
			TurnRateAmount: cfg.Mutation.TurnRateAmount,
			Traits:         traits,
		},
	}
}

// Reproduce produces exactly b.Target children, each cloned from a uniformly
// chosen parent and mutated. With no parents it returns fresh random genomes
// and extinct=true. A parent whose genome does not match b.Hidden is an error.
func Reproduce(rng *rand.Rand, parents []Candidate, b Breeding) (children []Offspring, extinct bool, err error) {
	children = make([]Offspring, 0, b.Target)

	if len(parents) == 0 {
		for i := 0; i < b.Target; i++ {
			children = append(children, Offspring{
				Genome: neural.NewGenome(rng, b.Hidden, b.Mutation.Traits),
			})
		}
		return children, true, nil
	}

	for _, p := range parents {
		if p.Genome == nil {
			return nil, false, fmt.Errorf("parent %d has no genome", p.ID)
		}
		if err := p.Genome.Validate(b.Hidden); err != nil {
			return nil, false, fmt.Errorf("parent %d: %w", p.ID, err)
		}
	}

	for i := 0; i < b.Target; i++ {
		p := parents[rng.Intn(len(parents))]
		child := p.Genome.Clone()
		child.Mutate(rng, b.Mutation)
		children = append(children, Offspring{
			Genome:    child,
			ParentID:  p.ID,
			ParentX:   p.X,
			ParentY:   p.Y,
			HasParent: true,
		})
	}
	return children, false, nil
}
