package systems

import (
	"math"

	"github.com/pthm-cable/critters/components"
)

// Circle is the collision shape shared by creatures and food.
type Circle struct {
	X, Y, R float64
}

// Rect is an axis-aligned rectangle with (X, Y) at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// CreatureCircle returns the collision circle of a creature.
func CreatureCircle(pos components.Position, body components.Body) Circle {
	return Circle{X: pos.X, Y: pos.Y, R: body.Radius}
}

// FoodCircle returns the collision circle of a food pellet.
func FoodCircle(f components.Food) Circle {
	return Circle{X: f.X, Y: f.Y, R: f.Radius}
}

// ObstacleRect returns the rectangle of an obstacle.
func ObstacleRect(o components.Obstacle) Rect {
	return Rect{X: o.X, Y: o.Y, W: o.W, H: o.H}
}

// Center returns the rectangle's centre point.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// ClosestPoint returns the point of r nearest to (x, y).
func (r Rect) ClosestPoint(x, y float64) (cx, cy float64) {
	return clamp(x, r.X, r.X+r.W), clamp(y, r.Y, r.Y+r.H)
}

// Distance returns the distance from (x, y) to r, or 0 when the point is inside.
func (r Rect) Distance(x, y float64) float64 {
	cx, cy := r.ClosestPoint(x, y)
	return math.Sqrt(distanceSq(x, y, cx, cy))
}

// CirclesOverlap reports whether two circles intersect.
func CirclesOverlap(a, b Circle) bool {
	rr := a.R + b.R
	return distanceSq(a.X, a.Y, b.X, b.Y) < rr*rr
}

// CircleIntersectsRect uses the closest-point method.
func CircleIntersectsRect(c Circle, r Rect) bool {
	cx, cy := r.ClosestPoint(c.X, c.Y)
	return distanceSq(c.X, c.Y, cx, cy) < c.R*c.R
}

// RectsOverlap reports whether two rectangles share interior area.
func RectsOverlap(a, b Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W &&
		a.Y < b.Y+b.H && b.Y < a.Y+a.H
}
