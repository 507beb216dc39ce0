package systems

import (
	"math"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/neural"
)

// SensorInputs holds the computed sensor values for one creature.
// Proximities are in [0, 1] (1 = touching, 0 = beyond view or absent),
// bearings in [-1, 1] (positive = counter-clockwise of heading).
type SensorInputs struct {
	Energy float64

	FoodProximity float64
	FoodBearing   float64

	NeighborProximity float64
	NeighborSpeed     float64
	NeighborBearing   float64

	ObstacleProximity float64
	ObstacleBearing   float64
}

// Vector returns the inputs in brain order.
func (s *SensorInputs) Vector() neural.Inputs {
	return neural.Inputs{
		s.Energy,
		s.FoodProximity,
		s.FoodBearing,
		s.NeighborProximity,
		s.NeighborSpeed,
		s.NeighborBearing,
		s.ObstacleProximity,
		s.ObstacleBearing,
	}
}

// SensorParams holds normalization constants for sensing.
type SensorParams struct {
	ViewDistance float64
	MaxSpeed     float64 // neighbour speed normalizer
}

// SensorParamsFromConfig builds sensor parameters from configuration.
func SensorParamsFromConfig(cfg *config.Config) SensorParams {
	return SensorParams{
		ViewDistance: cfg.Sensors.ViewDistance,
		MaxSpeed:     cfg.Derived.MaxSpeed,
	}
}

// Peer is the read-only view of another creature used for sensing.
type Peer struct {
	ID    uint32
	X, Y  float64
	Speed float64
	Dying bool
}

// Self is the sensing creature's own state.
type Self struct {
	ID        uint32
	X, Y      float64
	Heading   float64 // degrees
	Radius    float64
	Energy    float64
	MaxEnergy float64
}

// Sense calculates all sensor inputs for one creature. Empty categories
// leave their channels at 0, so the vector length never varies.
func Sense(
	self Self,
	peers []Peer,
	foods []components.Food,
	obstacles []components.Obstacle,
	p SensorParams,
) SensorInputs {
	var inputs SensorInputs

	if self.MaxEnergy > 0 {
		inputs.Energy = clamp01(self.Energy / self.MaxEnergy)
	}

	if food, ok := NearestFood(self.X, self.Y, foods); ok {
		inputs.FoodProximity = Proximity(food.Dist, p.ViewDistance)
		inputs.FoodBearing = Bearing(self.Heading, food.X-self.X, food.Y-self.Y)
	}

	// Nearest living neighbour
	bestSq := math.Inf(1)
	var peer *Peer
	for i := range peers {
		if peers[i].ID == self.ID || peers[i].Dying {
			continue
		}
		d := distanceSq(self.X, self.Y, peers[i].X, peers[i].Y)
		if d < bestSq {
			bestSq = d
			peer = &peers[i]
		}
	}
	if peer != nil {
		inputs.NeighborProximity = Proximity(math.Sqrt(bestSq), p.ViewDistance)
		if p.MaxSpeed > 0 {
			inputs.NeighborSpeed = clamp01(peer.Speed / p.MaxSpeed)
		}
		inputs.NeighborBearing = Bearing(self.Heading, peer.X-self.X, peer.Y-self.Y)
	}

	if obstacle, ok := NearestObstacle(self.X, self.Y, self.Radius, obstacles); ok {
		inputs.ObstacleProximity = Proximity(obstacle.Dist, p.ViewDistance)
		inputs.ObstacleBearing = Bearing(self.Heading, obstacle.X-self.X, obstacle.Y-self.Y)
	}

	return inputs
}

// Target is the nearest thing of one kind: where it is and how far away.
type Target struct {
	X, Y float64
	Dist float64
}

// NearestFood finds the pellet closest to (x, y), measured centre to centre.
func NearestFood(x, y float64, foods []components.Food) (Target, bool) {
	bestSq := math.Inf(1)
	best := -1
	for i := range foods {
		d := distanceSq(x, y, foods[i].X, foods[i].Y)
		if d < bestSq {
			bestSq = d
			best = i
		}
	}
	if best < 0 {
		return Target{}, false
	}
	return Target{X: foods[best].X, Y: foods[best].Y, Dist: math.Sqrt(bestSq)}, true
}

// NearestObstacle finds the obstacle whose edge is closest to a body of
// radius r at (x, y). Dist is edge to edge, floored at 0; X and Y give the
// obstacle's centre.
func NearestObstacle(x, y, r float64, obstacles []components.Obstacle) (Target, bool) {
	best := math.Inf(1)
	idx := -1
	for i := range obstacles {
		d := ObstacleRect(obstacles[i]).Distance(x, y) - r
		if d < best {
			best = d
			idx = i
		}
	}
	if idx < 0 {
		return Target{}, false
	}
	cx, cy := ObstacleRect(obstacles[idx]).Center()
	return Target{X: cx, Y: cy, Dist: math.Max(best, 0)}, true
}

// Proximity maps a distance to 1 - clamp(d, 0, view)/view.
func Proximity(d, view float64) float64 {
	if view <= 0 {
		return 0
	}
	return 1 - clamp(d, 0, view)/view
}

// Bearing returns the signed angle between a heading (degrees) and the
// vector (dx, dy), normalized to [-1, 1] by pi. The sign follows the 2-D
// cross product of heading and target. A zero-length target gives 0.
func Bearing(heading, dx, dy float64) float64 {
	mag := math.Hypot(dx, dy)
	if mag == 0 {
		return 0
	}
	hx, hy := HeadingVector(heading)
	cos := clamp((dx*hx+dy*hy)/mag, -1, 1)
	angle := math.Acos(cos)
	if hx*dy-hy*dx < 0 {
		angle = -angle
	}
	return angle / math.Pi
}
