package evolution

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/neural"
)

var testWeights = Weights{FoodGain: 40, CollisionPenalty: 1, BurstBonus: 5}

func TestFitness(t *testing.T) {
	tests := []struct {
		name string
		l    components.Lifetime
		want float64
	}{
		{"nothing", components.Lifetime{}, 0},
		{"food", components.Lifetime{FoodEaten: 3}, 120},
		{"food and bursts", components.Lifetime{FoodEaten: 1, BurstsActivated: 2}, 50},
		{"collisions subtract", components.Lifetime{FoodEaten: 1, Collisions: 10}, 30},
		{"floored at zero", components.Lifetime{Collisions: 100}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fitness(tt.l, testWeights); got != tt.want {
				t.Errorf("Fitness(%+v) = %f, want %f", tt.l, got, tt.want)
			}
		})
	}
}

func TestFitnessNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		l := components.Lifetime{
			FoodEaten:       rng.Intn(20),
			Collisions:      rng.Intn(2000),
			BurstsActivated: rng.Intn(20),
		}
		if f := Fitness(l, testWeights); f < 0 {
			t.Fatalf("Fitness(%+v) = %f", l, f)
		}
	}
}

func TestShouldEnd(t *testing.T) {
	lim := Limits{LengthFrames: 500, FoodLimit: 50}
	tests := []struct {
		name       string
		c          Counters
		living     int
		wantEnd    bool
		wantReason EndReason
	}{
		{"running", Counters{Frames: 10, FoodEaten: 5}, 10, false, EndNone},
		{"frame limit", Counters{Frames: 500}, 10, true, EndFrames},
		{"food limit before frames", Counters{Frames: 120, FoodEaten: 50}, 10, true, EndFoodLimit},
		{"empty population", Counters{Frames: 1}, 0, true, EndExtinct},
		{"empty beats limits", Counters{Frames: 500, FoodEaten: 50}, 0, true, EndExtinct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, end := ShouldEnd(tt.c, tt.living, lim)
			if end != tt.wantEnd || reason != tt.wantReason {
				t.Errorf("ShouldEnd = (%q, %v), want (%q, %v)", reason, end, tt.wantReason, tt.wantEnd)
			}
		})
	}
}

func TestCountersNextGeneration(t *testing.T) {
	c := Counters{Generation: 3, Frames: 400, FoodEaten: 20, BurstsActivated: 7, BurstEnergySpent: 70, Collisions: 4}
	c.NextGeneration(50)
	want := Counters{Generation: 4, PopulationStart: 50}
	if c != want {
		t.Errorf("counters = %+v, want %+v", c, want)
	}
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{
		PhaseRunning:  "running",
		PhaseEnding:   "ending",
		PhaseReseeded: "reseeded",
		PhaseExtinct:  "extinct",
		Phase(42):     "unknown",
	} {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, got, want)
		}
	}
}

func TestRank(t *testing.T) {
	cands := []Candidate{
		{ID: 1, Lifetime: components.Lifetime{FoodEaten: 1}},
		{ID: 2, Lifetime: components.Lifetime{FoodEaten: 5}, Dying: true},
		{ID: 3, Lifetime: components.Lifetime{FoodEaten: 3}},
		{ID: 4, Lifetime: components.Lifetime{FoodEaten: 1}},
	}

	ranked, fallback := Rank(cands, testWeights)
	if fallback {
		t.Error("fallback used with living creatures present")
	}
	wantIDs := []uint32{3, 1, 4}
	if len(ranked) != len(wantIDs) {
		t.Fatalf("ranked %d creatures, want %d", len(ranked), len(wantIDs))
	}
	for i, id := range wantIDs {
		if ranked[i].ID != id {
			t.Errorf("ranked[%d].ID = %d, want %d", i, ranked[i].ID, id)
		}
	}
	if ranked[0].Fitness != 120 {
		t.Errorf("top fitness = %f, want 120", ranked[0].Fitness)
	}
}

func TestRankFallsBackToDying(t *testing.T) {
	cands := []Candidate{
		{ID: 1, Dying: true, Lifetime: components.Lifetime{FoodEaten: 1}},
		{ID: 2, Dying: true, Lifetime: components.Lifetime{FoodEaten: 2}},
	}
	ranked, fallback := Rank(cands, testWeights)
	if !fallback {
		t.Error("expected fallback when every creature is dying")
	}
	if len(ranked) != 2 || ranked[0].ID != 2 {
		t.Errorf("ranked = %+v, want both with ID 2 first", ranked)
	}
}

func TestSelectParents(t *testing.T) {
	ranked := make([]Candidate, 10)
	for i := range ranked {
		ranked[i].ID = uint32(i)
	}
	tests := []struct {
		name string
		n    int
		pct  float64
		want int
	}{
		{"thirty percent", 10, 0.3, 3},
		{"minimum one", 2, 0.3, 1},
		{"all", 10, 1.0, 10},
		{"empty", 0, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectParents(ranked[:tt.n], tt.pct)
			if len(got) != tt.want {
				t.Errorf("selected %d, want %d", len(got), tt.want)
			}
		})
	}
}

func testBreeding() Breeding {
	return BreedingFromConfig(config.Default())
}

func makeParents(rng *rand.Rand, n, hidden int, traits neural.Traits) []Candidate {
	parents := make([]Candidate, n)
	for i := range parents {
		parents[i] = Candidate{
			ID:     uint32(i + 1),
			X:      float64(100 * (i + 1)),
			Y:      200,
			Genome: neural.NewGenome(rng, hidden, traits),
		}
	}
	return parents
}

func TestReproduceExactTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := testBreeding()

	for _, target := range []int{1, 7, 50, 123} {
		b.Target = target
		for _, nParents := range []int{1, 3, 15} {
			parents := makeParents(rng, nParents, b.Hidden, b.Mutation.Traits)
			children, extinct, err := Reproduce(rng, parents, b)
			if err != nil {
				t.Fatalf("Reproduce: %v", err)
			}
			if extinct {
				t.Error("extinct with parents available")
			}
			if len(children) != target {
				t.Errorf("target %d with %d parents gave %d children", target, nParents, len(children))
			}
		}
	}
}

func TestReproduceZeroChanceCopiesParent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := testBreeding()
	b.Mutation.Chance = 0
	parents := makeParents(rng, 3, b.Hidden, b.Mutation.Traits)

	children, _, err := Reproduce(rng, parents, b)
	if err != nil {
		t.Fatalf("Reproduce: %v", err)
	}
	byID := map[uint32]*neural.Genome{}
	for _, p := range parents {
		byID[p.ID] = p.Genome
	}
	for i, c := range children {
		if !c.HasParent {
			t.Fatalf("child %d has no parent", i)
		}
		if !c.Genome.Equal(byID[c.ParentID]) {
			t.Errorf("child %d differs from parent %d with zero mutation chance", i, c.ParentID)
		}
		if c.Genome == byID[c.ParentID] {
			t.Errorf("child %d shares its parent's genome", i)
		}
	}
}

func TestReproduceExtinction(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := testBreeding()

	children, extinct, err := Reproduce(rng, nil, b)
	if err != nil {
		t.Fatalf("Reproduce: %v", err)
	}
	if !extinct {
		t.Error("expected extinct with no parents")
	}
	if len(children) != b.Target {
		t.Errorf("reseeded %d, want %d", len(children), b.Target)
	}
	for _, c := range children {
		if c.HasParent {
			t.Error("reseeded child claims a parent")
		}
		if err := c.Genome.Validate(b.Hidden); err != nil {
			t.Errorf("fresh genome invalid: %v", err)
		}
	}
}

func TestReproduceRejectsMismatchedParent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := testBreeding()
	parents := makeParents(rng, 2, b.Hidden+1, b.Mutation.Traits)

	_, _, err := Reproduce(rng, parents, b)
	if !errors.Is(err, neural.ErrDimension) {
		t.Errorf("error = %v, want ErrDimension", err)
	}
}

func TestSummarize(t *testing.T) {
	c := Counters{Generation: 2, Frames: 300, FoodEaten: 12, BurstsActivated: 4, BurstEnergySpent: 40, Collisions: 3, PopulationStart: 4}
	ranked := []Candidate{
		{ID: 9, Energy: 80, Fitness: 120, Lifetime: components.Lifetime{FoodEaten: 3, BurstsActivated: 1}},
		{ID: 4, Energy: 40, Fitness: 40, Lifetime: components.Lifetime{FoodEaten: 1}},
		{ID: 5, Energy: 0, Fitness: 10, Dying: true},
	}

	s := Summarize(c, EndFoodLimit, ranked, false, 1)
	if s.Survivors != 2 {
		t.Errorf("survivors = %d, want 2", s.Survivors)
	}
	if s.AvgSurvivorEnergy != 60 || s.AvgSurvivorFitness != 80 {
		t.Errorf("averages = %f/%f, want 60/80", s.AvgSurvivorEnergy, s.AvgSurvivorFitness)
	}
	if s.TopID != 9 || s.TopFood != 3 || s.TopFitness != 120 || s.TopBursts != 1 {
		t.Errorf("top = %+v", s)
	}
	if s.TotalBursts != 4 || s.TotalBurstEnergy != 40 || s.TotalCollisions != 3 {
		t.Errorf("totals = %d/%f/%d", s.TotalBursts, s.TotalBurstEnergy, s.TotalCollisions)
	}
	if len(s.Fitnesses) != 3 || s.EndReason != EndFoodLimit {
		t.Errorf("fitnesses %v reason %q", s.Fitnesses, s.EndReason)
	}
}

func TestSummarizeParentDiversity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := testBreeding()
	ranked := makeParents(rng, 3, b.Hidden, b.Mutation.Traits)

	twin := ranked[0]
	twin.ID = 10
	twin.Genome = ranked[0].Genome.Clone()
	same := []Candidate{ranked[0], twin}
	if s := Summarize(Counters{}, EndFrames, same, false, 2); s.ParentDiversity != 0 {
		t.Errorf("identical parents diversity = %f, want 0", s.ParentDiversity)
	}

	s := Summarize(Counters{}, EndFrames, ranked, false, 2)
	want := ranked[0].Genome.Distance(ranked[1].Genome)
	if want == 0 {
		t.Fatal("random genomes should differ")
	}
	if s.ParentDiversity != want {
		t.Errorf("diversity = %f, want %f from the two selected parents only", s.ParentDiversity, want)
	}

	if s := Summarize(Counters{}, EndFrames, ranked, false, 1); s.ParentDiversity != 0 {
		t.Errorf("single parent diversity = %f, want 0", s.ParentDiversity)
	}
}
