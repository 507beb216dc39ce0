package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Generation   int
	Phase        string
	Frame        int
	LengthFrames int
	Living       int
	Population   int
	FoodEaten    int
	FoodLimit    int
	Speed        int
	FPS          int32
	Paused       bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Generation: %d | Frame: %d/%d | Alive: %d/%d",
			data.Generation, data.Frame, data.LengthFrames, data.Living, data.Population),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Food eaten: %d/%d | Speed: %dx | FPS: %d",
			data.FoodEaten, data.FoodLimit, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := data.Phase
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PhaseShare is one timed phase and its share of the average step.
type PhaseShare struct {
	Name string
	Pct  float64
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	AvgStep        time.Duration
	MaxStep        time.Duration
	StepsPerSecond float64
	Phases         []PhaseShare
}

// PerfPanel renders the step performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Avg: %s | Max: %s | %.0f steps/s",
			data.AvgStep.Round(time.Microsecond), data.MaxStep.Round(time.Microsecond), data.StepsPerSecond),
		x, y, 14, rl.Yellow,
	)
	y += 16

	for _, ph := range data.Phases {
		color := rl.LightGray
		if ph.Pct > 50 {
			color = rl.Red
		} else if ph.Pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-14s %5.1f%%", ph.Name, ph.Pct), x, y, 12, color)
		y += 14
	}
}

// GenerationPanelData summarizes the last finished generation.
type GenerationPanelData struct {
	Generation  int
	EndReason   string
	Survivors   int
	Parents     int
	TopFitness  float64
	MeanFitness float64
	P90Fitness  float64
	HallSize    int
	HallTop     float64
}

// GenerationPanel renders the previous generation's results.
type GenerationPanel struct {
	renderer *Renderer
	panel    PanelDescriptor
}

// NewGenerationPanel creates a new generation panel.
func NewGenerationPanel(width int32) *GenerationPanel {
	text := func(label, format string, get func(d *GenerationPanelData) float64) FieldDescriptor {
		return FieldDescriptor{
			Label:  label,
			Widget: WidgetText,
			Format: format,
			Getter: func(v any) float64 { return get(v.(*GenerationPanelData)) },
		}
	}
	return &GenerationPanel{
		renderer: NewRenderer(),
		panel: PanelDescriptor{
			ID:     "generation",
			Title:  "Last Generation",
			Width:  width,
			Anchor: AnchorBottomRight,
			Sections: []SectionDescriptor{
				{
					ID: "result",
					Fields: []FieldDescriptor{
						text("Generation", "%.0f", func(d *GenerationPanelData) float64 { return float64(d.Generation) }),
						{
							Label:      "Ended by",
							Widget:     WidgetText,
							TextGetter: func(v any) string { return v.(*GenerationPanelData).EndReason },
						},
						text("Survivors", "%.0f", func(d *GenerationPanelData) float64 { return float64(d.Survivors) }),
						text("Parents", "%.0f", func(d *GenerationPanelData) float64 { return float64(d.Parents) }),
					},
				},
				{
					ID:    "fitness",
					Title: "Fitness",
					Fields: []FieldDescriptor{
						text("Top", "%.1f", func(d *GenerationPanelData) float64 { return d.TopFitness }),
						text("Mean", "%.1f", func(d *GenerationPanelData) float64 { return d.MeanFitness }),
						text("P90", "%.1f", func(d *GenerationPanelData) float64 { return d.P90Fitness }),
					},
				},
				{
					ID:      "hall",
					Title:   "Hall of Fame",
					Visible: func(v any) bool { return v.(*GenerationPanelData).HallSize > 0 },
					Fields: []FieldDescriptor{
						text("Entries", "%.0f", func(d *GenerationPanelData) float64 { return float64(d.HallSize) }),
						text("Best", "%.1f", func(d *GenerationPanelData) float64 { return d.HallTop }),
					},
				},
			},
		},
	}
}

// Draw renders the panel anchored to the bottom right of the screen.
func (gp *GenerationPanel) Draw(data GenerationPanelData, screenW, screenH int32) {
	h := gp.renderer.Theme.PanelHeight(gp.panel, &data)
	x, y := AnchorPosition(gp.panel.Anchor, gp.panel.Width, h, screenW, screenH, 10)
	gp.renderer.DrawPanelAt(x, y-30, gp.panel, &data)
}
