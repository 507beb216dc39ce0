package game

// creatureAt returns the ID of the creature whose body contains (wx, wy),
// preferring the nearest centre when bodies overlap.
func creatureAt(v View, wx, wy float64) (uint32, bool) {
	var best uint32
	bestSq := -1.0
	for i := range v.Creatures {
		c := &v.Creatures[i]
		dx, dy := c.X-wx, c.Y-wy
		d := dx*dx + dy*dy
		// A few pixels of slack so small bodies stay clickable.
		reach := c.Radius + 3
		if d > reach*reach {
			continue
		}
		if bestSq < 0 || d < bestSq {
			best, bestSq = c.ID, d
		}
	}
	return best, bestSq >= 0
}

// selectAt selects the creature at a world position, or clears the selection.
func (g *Game) selectAt(wx, wy float64) {
	id, ok := creatureAt(g.View(), wx, wy)
	if !ok {
		g.clearSelection()
		return
	}
	if g.hasSelection && g.selectedID == id {
		return
	}
	g.selectedID = id
	g.hasSelection = true
	g.hasDecision = false
}

// Select selects a creature by ID. Returns false if no such creature exists.
func (g *Game) Select(id uint32) bool {
	if _, ok := g.genomes[id]; !ok {
		return false
	}
	g.selectedID = id
	g.hasSelection = true
	g.hasDecision = false
	return true
}

// Selected returns the selected creature's ID.
func (g *Game) Selected() (uint32, bool) {
	return g.selectedID, g.hasSelection
}

func (g *Game) clearSelection() {
	g.hasSelection = false
	g.hasDecision = false
}

// captureSelection records the selected creature's inputs and outputs for
// the inspector.
func (g *Game) captureSelection(it *intent) {
	g.lastDecision = *it
	g.hasDecision = true
}
