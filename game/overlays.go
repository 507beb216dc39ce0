package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/ui"
)

var (
	marginColor     = rl.Color{R: 100, G: 100, B: 150, A: 80}
	selectionColor  = rl.Color{R: 255, G: 255, B: 255, A: 200}
	viewRadiusColor = rl.Color{R: 200, G: 200, B: 255, A: 60}
)

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}
}

// drawActiveOverlays renders all currently enabled world-space overlays.
// Headings and energy tint are handled in drawCreatures.
func (g *Game) drawActiveOverlays(view View) {
	for _, id := range g.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlaySpawnMargins:
			g.drawSpawnMargins(view)
		case ui.OverlayViewRadius:
			g.drawViewRadius(view)
		case ui.OverlaySensorLines:
			g.drawSensorLines(view)
		}
	}
}

// selectedCreature finds the selected creature in a view.
func (g *Game) selectedCreature(view View) *CreatureView {
	if !g.hasSelection {
		return nil
	}
	for i := range view.Creatures {
		if view.Creatures[i].ID == g.selectedID {
			return &view.Creatures[i]
		}
	}
	return nil
}

// drawSelectionHighlight rings the selected creature.
func (g *Game) drawSelectionHighlight(view View) {
	sel := g.selectedCreature(view)
	if sel == nil {
		return
	}
	rl.DrawCircleLinesV(g.toScreen(sel.X, sel.Y), g.screenLength(sel.Radius+5), selectionColor)
}

// drawSpawnMargins outlines the clearance kept around each obstacle.
func (g *Game) drawSpawnMargins(view View) {
	m := g.placer.Clearance
	for _, o := range view.Obstacles {
		p := g.toScreen(o.X-m, o.Y-m)
		rl.DrawRectangleLinesEx(rl.Rectangle{
			X:      p.X,
			Y:      p.Y,
			Width:  g.screenLength(o.W + 2*m),
			Height: g.screenLength(o.H + 2*m),
		}, 1, marginColor)
	}
}

// drawViewRadius draws the selected creature's view distance.
func (g *Game) drawViewRadius(view View) {
	sel := g.selectedCreature(view)
	if sel == nil {
		return
	}
	rl.DrawCircleLinesV(g.toScreen(sel.X, sel.Y), g.screenLength(g.sensing.ViewDistance), viewRadiusColor)
}

// drawSensorLines draws lines to the nearest food, neighbour and obstacle
// the selected creature can see.
func (g *Game) drawSensorLines(view View) {
	sel := g.selectedCreature(view)
	if sel == nil || sel.Dying {
		return
	}
	from := g.toScreen(sel.X, sel.Y)
	reach := g.sensing.ViewDistance

	if f, ok := systems.NearestFood(sel.X, sel.Y, view.Foods); ok && f.Dist <= reach {
		rl.DrawLineV(from, g.toScreen(f.X, f.Y), foodColor)
	}

	bestSq := -1.0
	var nx, ny float64
	for i := range view.Creatures {
		c := &view.Creatures[i]
		if c.ID == sel.ID || c.Dying {
			continue
		}
		dx, dy := c.X-sel.X, c.Y-sel.Y
		d := dx*dx + dy*dy
		if bestSq < 0 || d < bestSq {
			bestSq, nx, ny = d, c.X, c.Y
		}
	}
	if bestSq >= 0 && bestSq <= reach*reach {
		rl.DrawLineV(from, g.toScreen(nx, ny), rl.SkyBlue)
	}

	if o, ok := systems.NearestObstacle(sel.X, sel.Y, sel.Radius, view.Obstacles); ok && o.Dist <= reach {
		rl.DrawLineV(from, g.toScreen(o.X, o.Y), obstacleColor)
	}
}
