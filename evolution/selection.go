package evolution

import (
	"sort"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/neural"
)

// Candidate is one creature as seen at the generation boundary.
type Candidate struct {
	ID       uint32
	X, Y     float64
	Energy   float64
	Dying    bool
	Lifetime components.Lifetime
	Genome   *neural.Genome
	Fitness  float64
}

// Rank scores candidates and sorts them by fitness, highest first, with ID
// as a stable tie-break. Only non-dying creatures are ranked unless none
// remain, in which case everyone is ranked and fallback is true.
func Rank(cands []Candidate, w Weights) (ranked []Candidate, fallback bool) {
	ranked = make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if !c.Dying {
			ranked = append(ranked, c)
		}
	}
	if len(ranked) == 0 && len(cands) > 0 {
		ranked = append(ranked, cands...)
		fallback = true
	}

	for i := range ranked {
		ranked[i].Fitness = Fitness(ranked[i].Lifetime, w)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Fitness != ranked[j].Fitness {
			return ranked[i].Fitness > ranked[j].Fitness
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked, fallback
}

// SelectParents keeps the top fraction of a ranked list, at least one.
// An empty list selects nobody.
func SelectParents(ranked []Candidate, pct float64) []Candidate {
	if len(ranked) == 0 {
		return nil
	}
	n := int(float64(len(ranked)) * pct)
	if n < 1 {
		n = 1
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
