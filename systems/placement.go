package systems

import (
	"math/rand"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
)

// Placer finds spawn points clear of obstacles. Every search is bounded;
// when it runs out of attempts it returns an unchecked position and ok=false.
type Placer struct {
	W, H              float64
	Clearance         float64 // extra gap kept from obstacle edges
	MaxAttempts       int
	OffspringAttempts int
}

// PlacerFromConfig builds a Placer from configuration.
func PlacerFromConfig(cfg *config.Config) Placer {
	return Placer{
		W:                 cfg.Derived.WorldW,
		H:                 cfg.Derived.WorldH,
		Clearance:         cfg.Obstacles.MinSpawnDistance,
		MaxAttempts:       cfg.Spawn.MaxAttempts,
		OffspringAttempts: cfg.Spawn.OffspringAttempts,
	}
}

// IsSafe reports whether a body of radius r at (x, y) keeps Clearance from every obstacle.
func (p Placer) IsSafe(x, y, r float64, obstacles []components.Obstacle) bool {
	reach := r + p.Clearance
	for i := range obstacles {
		cx, cy := ObstacleRect(obstacles[i]).ClosestPoint(x, y)
		if distanceSq(x, y, cx, cy) < reach*reach {
			return false
		}
	}
	return true
}

func (p Placer) inBounds(x, y, r float64) bool {
	return x >= r && x <= p.W-r && y >= r && y <= p.H-r
}

// randomPoint returns a uniform point keeping a body of radius r inside the world.
func (p Placer) randomPoint(rng *rand.Rand, r float64) (x, y float64) {
	return r + rng.Float64()*(p.W-2*r), r + rng.Float64()*(p.H-2*r)
}

// SafePosition picks a random in-bounds point clear of obstacles.
func (p Placer) SafePosition(rng *rand.Rand, r float64, obstacles []components.Obstacle) (x, y float64, ok bool) {
	for i := 0; i < p.MaxAttempts; i++ {
		x, y = p.randomPoint(rng, r)
		if p.IsSafe(x, y, r, obstacles) {
			return x, y, true
		}
	}
	x, y = p.randomPoint(rng, r)
	return x, y, false
}

// OffspringPosition places a child near its parent: first within two radii,
// then up to OffspringAttempts tries within five radii, then anywhere safe.
func (p Placer) OffspringPosition(rng *rand.Rand, px, py, r float64, obstacles []components.Obstacle) (x, y float64, ok bool) {
	x = px + (rng.Float64()*2-1)*2*r
	y = py + (rng.Float64()*2-1)*2*r
	if p.inBounds(x, y, r) && p.IsSafe(x, y, r, obstacles) {
		return x, y, true
	}
	for i := 0; i < p.OffspringAttempts; i++ {
		x = px + (rng.Float64()*2-1)*5*r
		y = py + (rng.Float64()*2-1)*5*r
		if p.inBounds(x, y, r) && p.IsSafe(x, y, r, obstacles) {
			return x, y, true
		}
	}
	return p.SafePosition(rng, r, obstacles)
}

// LayoutObstacles places count square obstacles fully inside the world,
// not overlapping each other and clear of the given bodies.
// ok is false if any obstacle had to fall back to an unchecked position.
func (p Placer) LayoutObstacles(rng *rand.Rand, count int, size float64, avoid []Circle) (obstacles []components.Obstacle, ok bool) {
	ok = true
	obstacles = make([]components.Obstacle, 0, count)
	for n := 0; n < count; n++ {
		var o components.Obstacle
		placed := false
		for i := 0; i < p.MaxAttempts && !placed; i++ {
			o = p.randomSquare(rng, size)
			placed = p.obstacleFits(o, obstacles, avoid)
		}
		if !placed {
			o = p.randomSquare(rng, size)
			ok = false
		}
		obstacles = append(obstacles, o)
	}
	return obstacles, ok
}

func (p Placer) randomSquare(rng *rand.Rand, size float64) components.Obstacle {
	return components.Obstacle{
		X: rng.Float64() * (p.W - size),
		Y: rng.Float64() * (p.H - size),
		W: size,
		H: size,
	}
}

func (p Placer) obstacleFits(o components.Obstacle, placed []components.Obstacle, avoid []Circle) bool {
	rect := ObstacleRect(o)
	for i := range placed {
		if RectsOverlap(rect, ObstacleRect(placed[i])) {
			return false
		}
	}
	for _, c := range avoid {
		grown := Circle{X: c.X, Y: c.Y, R: c.R + p.Clearance}
		if CircleIntersectsRect(grown, rect) {
			return false
		}
	}
	return true
}
