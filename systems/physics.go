package systems

import (
	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
)

// PhysicsParams holds per-frame movement, burst and metabolism constants.
type PhysicsParams struct {
	WorldW, WorldH float64

	BurstThreshold  float64
	BurstCost       float64
	BurstDuration   int
	BurstMultiplier float64

	ObstaclePenalty float64
	EnergyDecay     float64
	FadeStep        float64
}

// PhysicsParamsFromConfig builds physics parameters from configuration.
func PhysicsParamsFromConfig(cfg *config.Config) PhysicsParams {
	return PhysicsParams{
		WorldW:          cfg.Derived.WorldW,
		WorldH:          cfg.Derived.WorldH,
		BurstThreshold:  cfg.Burst.Threshold,
		BurstCost:       cfg.Burst.EnergyCost,
		BurstDuration:   cfg.Burst.DurationFrames,
		BurstMultiplier: cfg.Burst.SpeedMultiplier,
		ObstaclePenalty: cfg.Obstacles.EnergyPenalty,
		EnergyDecay:     cfg.Creature.EnergyDecay,
		FadeStep:        cfg.Render.FadeStep,
	}
}

// Creature bundles pointers to one creature's mutable components.
type Creature struct {
	Pos      *components.Position
	Motion   *components.Motion
	Body     *components.Body
	Energy   *components.Energy
	Burst    *components.Burst
	Lifetime *components.Lifetime
}

// StepResult reports what happened during Advance.
type StepResult struct {
	Burst       bool // a burst started this frame
	Collided    bool
	HitBoundary bool
}

// TriggerBurst starts a burst when the brain asks for one and energy covers the cost.
// Energy equal to the cost is enough and leaves exactly zero.
func TriggerBurst(c Creature, burstOut float64, p PhysicsParams) bool {
	if c.Burst.Active || burstOut <= p.BurstThreshold || c.Energy.Value < p.BurstCost {
		return false
	}
	c.Energy.Value -= p.BurstCost
	c.Burst.Active = true
	c.Burst.FramesLeft = p.BurstDuration
	c.Lifetime.BurstsActivated++
	c.Lifetime.BurstEnergySpent += p.BurstCost
	return true
}

// Advance applies one frame of movement for a living creature: burst trigger,
// speed, heading, the proposed move, obstacle collision and boundary reflection.
// It is the only place a creature's position changes during a frame.
func Advance(c Creature, steer, burstOut, turnRate float64, obstacles []components.Obstacle, p PhysicsParams) StepResult {
	var res StepResult
	res.Burst = TriggerBurst(c, burstOut, p)

	speed := c.Motion.BaseSpeed
	if c.Burst.Active {
		speed *= p.BurstMultiplier
		c.Burst.FramesLeft--
		if c.Burst.FramesLeft <= 0 {
			c.Burst.Active = false
			c.Burst.FramesLeft = 0
		}
	}
	c.Motion.Speed = speed

	c.Motion.Heading = WrapDegrees(c.Motion.Heading + steer*turnRate)

	hx, hy := HeadingVector(c.Motion.Heading)
	prevX, prevY := c.Pos.X, c.Pos.Y
	proposed := Circle{X: prevX + speed*hx, Y: prevY + speed*hy, R: c.Body.Radius}

	for i := range obstacles {
		if !CircleIntersectsRect(proposed, ObstacleRect(obstacles[i])) {
			continue
		}
		c.Energy.Value = clamp(c.Energy.Value-p.ObstaclePenalty, 0, c.Energy.Max)
		c.Lifetime.Collisions++
		c.Motion.Heading = WrapDegrees(c.Motion.Heading + 180)
		res.Collided = true
		break
	}
	if !res.Collided {
		c.Pos.X, c.Pos.Y = proposed.X, proposed.Y
	}

	res.HitBoundary = reflectBoundary(c, p)
	if res.HitBoundary && overlapsAny(CreatureCircle(*c.Pos, *c.Body), obstacles) {
		// Clamping pushed the body into an obstacle touching the edge.
		c.Pos.X, c.Pos.Y = prevX, prevY
	}

	return res
}

// reflectBoundary clamps the creature inside the world and mirrors its heading
// off whichever edge it crossed.
func reflectBoundary(c Creature, p PhysicsParams) bool {
	r := c.Body.Radius
	hit := false

	if c.Pos.X-r < 0 {
		c.Pos.X = r
		c.Motion.Heading = WrapDegrees(180 - c.Motion.Heading)
		hit = true
	} else if c.Pos.X+r > p.WorldW {
		c.Pos.X = p.WorldW - r
		c.Motion.Heading = WrapDegrees(180 - c.Motion.Heading)
		hit = true
	}

	if c.Pos.Y-r < 0 {
		c.Pos.Y = r
		c.Motion.Heading = WrapDegrees(360 - c.Motion.Heading)
		hit = true
	} else if c.Pos.Y+r > p.WorldH {
		c.Pos.Y = p.WorldH - r
		c.Motion.Heading = WrapDegrees(360 - c.Motion.Heading)
		hit = true
	}

	return hit
}

func overlapsAny(c Circle, obstacles []components.Obstacle) bool {
	for i := range obstacles {
		if CircleIntersectsRect(c, ObstacleRect(obstacles[i])) {
			return true
		}
	}
	return false
}

// Metabolize applies per-frame energy decay to a living creature and starts
// the dying transition when energy is exhausted. Returns true on that transition.
func Metabolize(e *components.Energy, p PhysicsParams) bool {
	if e.Dying {
		return false
	}
	e.Value = clamp(e.Value-p.EnergyDecay, 0, e.Max)
	if e.Value <= 0 {
		e.Value = 0
		e.Dying = true
		e.FadeAlpha = 255
		return true
	}
	return false
}

// Fade advances the fade-out of a dying creature. Returns true once fully faded.
// Fading never touches energy or lifetime counters.
func Fade(e *components.Energy, step float64) bool {
	if !e.Dying {
		return false
	}
	e.FadeAlpha -= step
	if e.FadeAlpha <= 0 {
		e.FadeAlpha = 0
		return true
	}
	return false
}
