package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/evolution"
	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/telemetry"
)

// Step advances the simulation by one frame. Food is topped up, living
// creatures sense and decide from a snapshot of the frame's start, then move,
// eat and metabolize in a fixed order. Dying creatures fade and are removed
// once fully faded. The generation ends at the close of the frame that met
// an end condition.
func (g *Game) Step() {
	if g.phase != evolution.PhaseRunning {
		g.phase = evolution.PhaseRunning
	}

	g.perf.StartStep()

	g.perf.StartPhase(telemetry.PhaseFood)
	g.topUpFood()

	g.perf.StartPhase(telemetry.PhaseSnapshot)
	n := g.snapshotCreatures()

	g.perf.StartPhase(telemetry.PhaseSense)
	g.decide(n)

	g.perf.StartPhase(telemetry.PhaseApply)
	g.applyIntents()

	g.perf.StartPhase(telemetry.PhaseCleanup)
	g.fadeDying()

	g.counters.Frames++
	g.tick++

	if reason, done := evolution.ShouldEnd(g.counters, g.Living(), g.limits); done {
		g.perf.StartPhase(telemetry.PhaseGeneration)
		g.endGeneration(reason)
	}

	g.perf.EndStep()
}

// applyIntents is Phase C: move, eat and metabolize each snapshotted
// creature in snapshot order.
func (g *Game) applyIntents() {
	ps := g.parallel
	gain := g.cfg.Food.EnergyGain

	for i := range ps.snapshots {
		snap := &ps.snapshots[i]
		it := &ps.intents[i]

		pos, motion, body, energy, burst, lifetime, _ := g.creatureMapper.Get(snap.Entity)
		c := systems.Creature{
			Pos:      pos,
			Motion:   motion,
			Body:     body,
			Energy:   energy,
			Burst:    burst,
			Lifetime: lifetime,
		}

		res := systems.Advance(c, it.Steer, it.Burst, snap.TurnRate, g.obstacles, g.physics)
		if res.Burst {
			g.counters.BurstsActivated++
			g.counters.BurstEnergySpent += g.physics.BurstCost
		}
		if res.Collided {
			g.counters.Collisions++
		}

		var eaten int
		g.foods, eaten = systems.Eat(c, g.foods, gain)
		g.counters.FoodEaten += eaten

		systems.Metabolize(energy, g.physics)

		if g.hasSelection && snap.Self.ID == g.selectedID {
			g.captureSelection(it)
		}
	}
}

// fadeDying advances the fade of dying creatures and removes those fully
// faded, remembering them for the ranking fallback.
func (g *Game) fadeDying() {
	var toRemove []ecs.Entity

	query := g.creatureFilter.Query()
	for query.Next() {
		pos, _, _, energy, _, lifetime, org := query.Get()
		if !systems.Fade(energy, g.physics.FadeStep) {
			continue
		}
		toRemove = append(toRemove, query.Entity())
		g.fallen = append(g.fallen, evolution.Candidate{
			ID:       org.ID,
			X:        pos.X,
			Y:        pos.Y,
			Energy:   energy.Value,
			Dying:    true,
			Lifetime: *lifetime,
			Genome:   g.genomes[org.ID],
		})
	}

	for _, e := range toRemove {
		_, _, _, _, _, _, org := g.creatureMapper.Get(e)
		id := org.ID
		g.world.RemoveEntity(e)
		delete(g.genomes, id)
		if g.hasSelection && g.selectedID == id {
			g.clearSelection()
		}
	}
}

// UpdateHeadless runs stepsPerUpdate frames without any presentation.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// Update handles input and advances the simulation unless paused.
func (g *Game) Update() {
	g.handleInput()
	g.perf.RecordFrame()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}
