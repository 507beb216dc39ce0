package game

import (
	"math"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/evolution"
)

// CreatureView is a read-only copy of one creature for presentation.
type CreatureView struct {
	ID        uint32
	X, Y      float64
	Radius    float64
	Heading   float64
	Speed     float64
	Energy    float64
	MaxEnergy float64
	Dying     bool
	FadeAlpha float64
	Bursting  bool
	BurstLeft int
	Color     [3]float64 // genome colour
	TurnRate  float64
	Lifetime  components.Lifetime
	Fitness   float64
}

// View is a read-only copy of the world for renderers and tools.
type View struct {
	Generation int
	Phase      evolution.Phase
	Counters   evolution.Counters
	Creatures  []CreatureView
	Foods      []components.Food
	Obstacles  []components.Obstacle
}

// View copies the current world state. The result shares nothing with the
// game and stays valid after further steps.
func (g *Game) View() View {
	v := View{
		Generation: g.counters.Generation,
		Phase:      g.phase,
		Counters:   g.counters,
		Foods:      append([]components.Food(nil), g.foods...),
		Obstacles:  append([]components.Obstacle(nil), g.obstacles...),
	}

	query := g.creatureFilter.Query()
	for query.Next() {
		pos, motion, body, energy, burst, lifetime, org := query.Get()
		cv := CreatureView{
			ID:        org.ID,
			X:         pos.X,
			Y:         pos.Y,
			Radius:    body.Radius,
			Heading:   motion.Heading,
			Speed:     motion.Speed,
			Energy:    energy.Value,
			MaxEnergy: energy.Max,
			Dying:     energy.Dying,
			FadeAlpha: energy.FadeAlpha,
			Bursting:  burst.Active,
			BurstLeft: burst.FramesLeft,
			Lifetime:  *lifetime,
			Fitness:   evolution.Fitness(*lifetime, g.weights),
		}
		if genome := g.genomes[org.ID]; genome != nil {
			cv.Color = genome.Color
			cv.TurnRate = genome.TurnRate
		}
		v.Creatures = append(v.Creatures, cv)
	}
	return v
}

// DisplayColor returns the creature's RGBA colour. The genome colour blends
// toward red as energy runs out when tint is set; dying creatures use their
// fade alpha.
func (c CreatureView) DisplayColor(tint bool) [4]uint8 {
	r, gr, b := c.Color[0], c.Color[1], c.Color[2]
	if tint {
		ratio := 0.0
		if c.MaxEnergy > 0 {
			ratio = math.Max(0, math.Min(1, c.Energy/c.MaxEnergy))
		}
		r = r*ratio + 255*(1-ratio)
		gr *= ratio
		b *= ratio
	}
	alpha := 255.0
	if c.Dying {
		alpha = c.FadeAlpha
	}
	return [4]uint8{toByte(r), toByte(gr), toByte(b), toByte(alpha)}
}

func toByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
