package evolution

import "github.com/pthm-cable/critters/config"

// Phase is the generation state machine:
// Running -> Ending -> Reseeded -> Running, with Extinct entered when a
// generation had nobody to breed from and was reseeded with fresh genomes.
type Phase uint8

const (
	PhaseRunning Phase = iota
	PhaseEnding
	PhaseReseeded
	PhaseExtinct
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseEnding:
		return "ending"
	case PhaseReseeded:
		return "reseeded"
	case PhaseExtinct:
		return "extinct"
	default:
		return "unknown"
	}
}

// EndReason records why a generation ended.
type EndReason string

const (
	EndNone      EndReason = ""
	EndFrames    EndReason = "frames"
	EndFoodLimit EndReason = "food_limit"
	EndExtinct   EndReason = "extinct"
)

// Counters are the per-generation world counters. All but Generation reset
// at each boundary.
type Counters struct {
	Generation       int
	Frames           int
	FoodEaten        int
	BurstsActivated  int
	BurstEnergySpent float64
	Collisions       int
	PopulationStart  int
}

// NextGeneration advances the generation index and zeroes the rest.
func (c *Counters) NextGeneration(populationStart int) {
	*c = Counters{
		Generation:      c.Generation + 1,
		PopulationStart: populationStart,
	}
}

// Limits holds the end-of-generation thresholds.
type Limits struct {
	LengthFrames int
	FoodLimit    int
}

// LimitsFromConfig builds limits from configuration.
func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		LengthFrames: cfg.Generation.LengthFrames,
		FoodLimit:    cfg.Generation.FoodLimit,
	}
}

// ShouldEnd reports whether the generation is over. living counts creatures
// that are not dying. An empty population takes precedence over the food
// limit, which takes precedence over the frame limit.
func ShouldEnd(c Counters, living int, lim Limits) (EndReason, bool) {
	switch {
	case living == 0:
		return EndExtinct, true
	case c.FoodEaten >= lim.FoodLimit:
		return EndFoodLimit, true
	case c.Frames >= lim.LengthFrames:
		return EndFrames, true
	}
	return EndNone, false
}
