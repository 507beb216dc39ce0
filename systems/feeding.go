package systems

import "github.com/pthm-cable/critters/components"

// Eat consumes every food pellet overlapping the creature. Energy is capped
// at Max. The food slice is compacted in place and the remainder returned
// along with the number eaten.
func Eat(c Creature, foods []components.Food, gain float64) ([]components.Food, int) {
	body := CreatureCircle(*c.Pos, *c.Body)
	remaining := foods[:0]
	eaten := 0
	for _, f := range foods {
		if CirclesOverlap(body, FoodCircle(f)) {
			eaten++
			continue
		}
		remaining = append(remaining, f)
	}
	if eaten > 0 {
		c.Energy.Value = clamp(c.Energy.Value+float64(eaten)*gain, 0, c.Energy.Max)
		c.Lifetime.FoodEaten += eaten
	}
	return remaining, eaten
}
