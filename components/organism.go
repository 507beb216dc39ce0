package components

// Energy tracks a creature's metabolic state.
// Value stays within [0, Max]. A creature whose Value reaches 0 is Dying:
// it no longer senses, eats or is sensed, and FadeAlpha counts down for display.
type Energy struct {
	Value     float64
	Max       float64
	Dying     bool
	FadeAlpha float64 // 255 when dying starts, 0 when fully faded
}

// Lifetime accumulates the counters fitness is scored from.
// They persist through the dying state.
type Lifetime struct {
	FoodEaten        int
	Collisions       int
	BurstsActivated  int
	BurstEnergySpent float64
}

// Organism holds identity. The genome is looked up by ID.
type Organism struct {
	ID uint32
}
