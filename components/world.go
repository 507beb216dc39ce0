package components

// Food is a pellet that restores energy when a creature overlaps it.
type Food struct {
	X, Y   float64
	Radius float64
}

// Obstacle is an axis-aligned rectangle. (X, Y) is the top-left corner.
type Obstacle struct {
	X, Y, W, H float64
}
