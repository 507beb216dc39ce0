package components

// Body holds physical properties of an entity.
type Body struct {
	Radius float64
}

// Burst tracks a temporary speed boost.
type Burst struct {
	Active     bool
	FramesLeft int
}
