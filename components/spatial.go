// Package components defines ECS components and plain world entities for the simulation.
package components

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Motion holds a creature's heading and speed.
type Motion struct {
	Heading   float64 // degrees, [0, 360)
	BaseSpeed float64
	Speed     float64 // speed used in the last step, seen by neighbours
}
