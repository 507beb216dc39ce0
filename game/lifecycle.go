package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/evolution"
	"github.com/pthm-cable/critters/neural"
	"github.com/pthm-cable/critters/systems"
)

// resetWorld discards all world state and builds generation 0.
func (g *Game) resetWorld() {
	g.stopParallelWorkers()

	g.world = ecs.NewWorld()
	g.creatureMapper = ecs.NewMap7[
		components.Position,
		components.Motion,
		components.Body,
		components.Energy,
		components.Burst,
		components.Lifetime,
		components.Organism,
	](g.world)
	g.creatureFilter = ecs.NewFilter7[
		components.Position,
		components.Motion,
		components.Body,
		components.Energy,
		components.Burst,
		components.Lifetime,
		components.Organism,
	](g.world)

	g.genomes = make(map[uint32]*neural.Genome)
	g.foods = g.foods[:0]
	g.obstacles = nil
	g.fallen = g.fallen[:0]
	g.counters = evolution.Counters{}
	g.phase = evolution.PhaseRunning
	g.nextID = 0
	g.tick = 0

	initial := g.initialOffspring()

	// Obstacles first, then creatures clear of them.
	obstacles, ok := g.placer.LayoutObstacles(g.rng, g.cfg.Obstacles.Count, g.cfg.Obstacles.Size, nil)
	if !ok {
		slog.Debug("obstacle layout fell back to unchecked positions", "generation", 0)
	}
	g.obstacles = obstacles

	r := g.cfg.Creature.Radius
	for _, child := range initial {
		x, y, ok := g.placer.SafePosition(g.rng, r, g.obstacles)
		if !ok {
			slog.Debug("spawn fell back to unchecked position", "x", x, "y", y)
		}
		g.spawnCreature(x, y, child.Genome)
	}

	g.topUpFood()
	g.counters.PopulationStart = len(initial)
}

// initialOffspring returns generation 0 genomes: copies of the seed genomes
// when provided, fresh random genomes otherwise.
func (g *Game) initialOffspring() []evolution.Offspring {
	target := g.breeding.Target
	out := make([]evolution.Offspring, 0, target)
	if len(g.seedGenomes) == 0 {
		for i := 0; i < target; i++ {
			out = append(out, evolution.Offspring{
				Genome: neural.NewGenome(g.rng, g.breeding.Hidden, g.breeding.Mutation.Traits),
			})
		}
		return out
	}
	for i := 0; i < target; i++ {
		out = append(out, evolution.Offspring{
			Genome: g.seedGenomes[i%len(g.seedGenomes)].Clone(),
		})
	}
	return out
}

// spawnCreature creates a creature at full energy with a random heading.
func (g *Game) spawnCreature(x, y float64, genome *neural.Genome) ecs.Entity {
	id := g.nextID
	g.nextID++

	pos := components.Position{X: x, Y: y}
	motion := components.Motion{
		Heading:   g.rng.Float64() * 360,
		BaseSpeed: g.cfg.Creature.BaseSpeed,
		Speed:     g.cfg.Creature.BaseSpeed,
	}
	body := components.Body{Radius: g.cfg.Creature.Radius}
	energy := components.Energy{
		Value:     g.cfg.Creature.MaxEnergy,
		Max:       g.cfg.Creature.MaxEnergy,
		FadeAlpha: 255,
	}
	burst := components.Burst{}
	lifetime := components.Lifetime{}
	org := components.Organism{ID: id}

	g.genomes[id] = genome
	return g.creatureMapper.NewEntity(&pos, &motion, &body, &energy, &burst, &lifetime, &org)
}

// clearPopulation removes every creature entity and genome.
func (g *Game) clearPopulation() {
	var toRemove []ecs.Entity
	query := g.creatureFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}
	clear(g.genomes)
}

// topUpFood adds food until the configured maximum is present.
func (g *Game) topUpFood() {
	r := g.cfg.Food.Radius
	for len(g.foods) < g.cfg.Food.MaxCount {
		x, y, ok := g.placer.SafePosition(g.rng, r, g.obstacles)
		if !ok {
			slog.Debug("food fell back to unchecked position", "x", x, "y", y)
		}
		g.foods = append(g.foods, components.Food{X: x, Y: y, Radius: r})
	}
}

// candidates collects every creature of the current generation: those still
// in the world (dying or not) and those that already faded out.
func (g *Game) candidates() []evolution.Candidate {
	cands := make([]evolution.Candidate, 0, g.counters.PopulationStart)
	query := g.creatureFilter.Query()
	for query.Next() {
		pos, _, _, energy, _, lifetime, org := query.Get()
		cands = append(cands, evolution.Candidate{
			ID:       org.ID,
			X:        pos.X,
			Y:        pos.Y,
			Energy:   energy.Value,
			Dying:    energy.Dying,
			Lifetime: *lifetime,
			Genome:   g.genomes[org.ID],
		})
	}
	return append(cands, g.fallen...)
}

// endGeneration ranks the population, breeds the next generation and
// rebuilds the world around it.
func (g *Game) endGeneration(reason evolution.EndReason) {
	g.phase = evolution.PhaseEnding

	ranked, fallback := evolution.Rank(g.candidates(), g.weights)
	parents := evolution.SelectParents(ranked, g.cfg.Generation.SelectionPercentage)
	summary := evolution.Summarize(g.counters, reason, ranked, fallback, len(parents))
	g.recordGeneration(summary, parents)

	children, extinct, err := evolution.Reproduce(g.rng, parents, g.breeding)
	if err != nil {
		slog.Error("reproduction failed, reseeding", "generation", g.counters.Generation, "error", err)
		children, extinct, _ = evolution.Reproduce(g.rng, nil, g.breeding)
	}

	g.clearPopulation()
	g.clearSelection()
	g.fallen = g.fallen[:0]
	g.populate(children)

	g.foods = g.foods[:0]
	g.topUpFood()

	g.counters.NextGeneration(len(children))
	if extinct {
		g.phase = evolution.PhaseExtinct
		slog.Warn("population extinct", "generation", g.counters.Generation, "reseeded", len(children))
	} else {
		g.phase = evolution.PhaseReseeded
	}
}

// populate places offspring near their parents, lays out fresh obstacles
// clear of them, then moves any offspring the layout could not avoid.
func (g *Game) populate(children []evolution.Offspring) {
	r := g.cfg.Creature.Radius

	type placed struct {
		x, y   float64
		genome *neural.Genome
	}
	spots := make([]placed, len(children))
	avoid := make([]systems.Circle, len(children))
	for i, c := range children {
		var x, y float64
		if c.HasParent {
			x, y, _ = g.placer.OffspringPosition(g.rng, c.ParentX, c.ParentY, r, nil)
		} else {
			x, y, _ = g.placer.SafePosition(g.rng, r, nil)
		}
		spots[i] = placed{x: x, y: y, genome: c.Genome}
		avoid[i] = systems.Circle{X: x, Y: y, R: r}
	}

	obstacles, ok := g.placer.LayoutObstacles(g.rng, g.cfg.Obstacles.Count, g.cfg.Obstacles.Size, avoid)
	if !ok {
		slog.Debug("obstacle layout fell back to unchecked positions", "generation", g.counters.Generation+1)
	}
	g.obstacles = obstacles

	for _, s := range spots {
		if !g.placer.IsSafe(s.x, s.y, r, g.obstacles) {
			var safe bool
			s.x, s.y, safe = g.placer.SafePosition(g.rng, r, g.obstacles)
			if !safe {
				slog.Debug("offspring fell back to unchecked position", "x", s.x, "y", s.y)
			}
		}
		g.spawnCreature(s.x, s.y, s.genome)
	}
}
