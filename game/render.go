package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/telemetry"
	"github.com/pthm-cable/critters/ui"
)

var (
	backgroundColor = rl.Color{R: 20, G: 20, B: 30, A: 255}
	foodColor       = rl.Color{R: 100, G: 255, B: 100, A: 255}
	obstacleColor   = rl.Color{R: 100, G: 100, B: 150, A: 255}
	burstColor      = rl.Yellow
)

const controlsLegend = "[Space] pause  [R] reset  [</>] speed  [Tab] overlays  [Arrows/Wheel] camera  [Home] recenter  [Click] inspect"

// Draw renders the game.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	view := g.View()

	g.drawObstacles(view)
	g.drawFood(view)
	g.drawCreatures(view)
	g.drawActiveOverlays(view)
	g.drawSelectionHighlight(view)

	g.drawHUD(view)

	rl.EndDrawing()
}

// toScreen converts a world point to raylib screen coordinates.
func (g *Game) toScreen(wx, wy float64) rl.Vector2 {
	sx, sy := g.camera.WorldToScreen(wx, wy)
	return rl.Vector2{X: float32(sx), Y: float32(sy)}
}

func (g *Game) screenLength(l float64) float32 {
	return float32(l * g.camera.Scale())
}

func (g *Game) drawObstacles(view View) {
	for _, o := range view.Obstacles {
		p := g.toScreen(o.X, o.Y)
		rl.DrawRectangleV(p, rl.Vector2{X: g.screenLength(o.W), Y: g.screenLength(o.H)}, obstacleColor)
	}
}

func (g *Game) drawFood(view View) {
	for _, f := range view.Foods {
		if !g.camera.IsVisible(f.X, f.Y, f.Radius) {
			continue
		}
		rl.DrawCircleV(g.toScreen(f.X, f.Y), g.screenLength(f.Radius), foodColor)
	}
}

func (g *Game) drawCreatures(view View) {
	tint := g.overlays.IsEnabled(ui.OverlayEnergyTint)
	headings := g.overlays.IsEnabled(ui.OverlayHeadings)

	for i := range view.Creatures {
		c := &view.Creatures[i]
		if !g.camera.IsVisible(c.X, c.Y, c.Radius+2) {
			continue
		}
		center := g.toScreen(c.X, c.Y)
		radius := g.screenLength(c.Radius)

		rgba := c.DisplayColor(tint)
		if c.Bursting && !c.Dying {
			rl.DrawCircleLinesV(center, g.screenLength(c.Radius+2), burstColor)
		}
		rl.DrawCircleV(center, radius, rl.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]})

		if headings && !c.Dying {
			hx, hy := systems.HeadingVector(c.Heading)
			tip := g.toScreen(c.X+hx*c.Radius*1.5, c.Y+hy*c.Radius*1.5)
			rl.DrawLineV(center, tip, rl.White)
		}
	}
}

func (g *Game) drawHUD(view View) {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	living := 0
	for i := range view.Creatures {
		if !view.Creatures[i].Dying {
			living++
		}
	}

	g.hud.Draw(ui.HUDData{
		Title:        "Critters",
		Generation:   view.Generation,
		Phase:        view.Phase.String(),
		Frame:        view.Counters.Frames,
		LengthFrames: g.limits.LengthFrames,
		Living:       living,
		Population:   len(view.Creatures),
		FoodEaten:    view.Counters.FoodEaten,
		FoodLimit:    g.limits.FoodLimit,
		Speed:        g.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
	})
	g.hud.DrawControls(screenH, controlsLegend)

	g.controls.Draw(g.overlays)

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.SetPosition(10, screenH-160)
		g.perfPanel.Draw(perfPanelData(g.perf.Stats()))
	}

	if stats, ok := g.LastStats(); ok {
		data := ui.GenerationPanelData{
			Generation:  stats.Generation,
			EndReason:   stats.EndReason,
			Survivors:   stats.Survivors,
			Parents:     stats.Parents,
			TopFitness:  stats.TopFitness,
			MeanFitness: stats.FitnessMean,
			P90Fitness:  stats.FitnessP90,
		}
		if g.hallOfFame != nil {
			data.HallSize = g.hallOfFame.Size()
			data.HallTop = g.hallOfFame.TopFitness()
		}
		g.genPanel.Draw(data, screenW, screenH)
	}

	if data, ok := g.inspectorData(view); ok {
		g.inspector.Draw(data, screenW, screenH)
	}
}

// inspectorData builds the inspector panel for the selected creature.
func (g *Game) inspectorData(view View) (ui.InspectorData, bool) {
	c := g.selectedCreature(view)
	if c == nil {
		return ui.InspectorData{}, false
	}
	rgba := c.DisplayColor(false)
	data := ui.InspectorData{
		ID:          c.ID,
		Color:       rl.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: 255},
		Energy:      c.Energy,
		MaxEnergy:   c.MaxEnergy,
		Dying:       c.Dying,
		Heading:     c.Heading,
		Speed:       c.Speed,
		Bursting:    c.Bursting,
		BurstLeft:   c.BurstLeft,
		TurnRate:    c.TurnRate,
		FoodEaten:   c.Lifetime.FoodEaten,
		Collisions:  c.Lifetime.Collisions,
		Bursts:      c.Lifetime.BurstsActivated,
		Fitness:     c.Fitness,
		HasDecision: g.hasDecision,
		Steer:       g.lastDecision.Steer,
		BurstOut:    g.lastDecision.Burst,
	}
	copy(data.Inputs[:], g.lastDecision.Inputs[:])
	return data, true
}

func perfPanelData(s telemetry.PerfStats) ui.PerfPanelData {
	data := ui.PerfPanelData{
		AvgStep:        s.AvgStep,
		MaxStep:        s.MaxStep,
		StepsPerSecond: s.StepsPerSecond,
		Phases:         make([]ui.PhaseShare, 0, len(s.PhasePct)),
	}
	for i, pct := range s.PhasePct {
		data.Phases = append(data.Phases, ui.PhaseShare{
			Name: telemetry.PerfPhase(i).String(),
			Pct:  pct,
		})
	}
	return data
}

