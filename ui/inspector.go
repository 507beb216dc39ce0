package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SensorLabels names the brain input channels in vector order.
var SensorLabels = [...]string{
	"Energy",
	"Food prox",
	"Food bear",
	"Peer prox",
	"Peer speed",
	"Peer bear",
	"Obst prox",
	"Obst bear",
}

// InspectorData holds all the data needed to render the inspector panel.
type InspectorData struct {
	ID        uint32
	Color     rl.Color
	Energy    float64
	MaxEnergy float64
	Dying     bool
	Heading   float64
	Speed     float64
	Bursting  bool
	BurstLeft int
	TurnRate  float64

	FoodEaten  int
	Collisions int
	Bursts     int
	Fitness    float64

	// Last sensed inputs and brain outputs. HasDecision is false for a
	// creature that has not been through a step since selection.
	HasDecision bool
	Inputs      [len(SensorLabels)]float64
	Steer       float64
	BurstOut    float64
}

// Inspector renders the creature inspection panel.
type Inspector struct {
	renderer *Renderer
	panel    PanelDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector() *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		panel:    inspectorPanel(),
	}
}

// Draw renders the inspector panel anchored at the top right of the screen.
func (ins *Inspector) Draw(data InspectorData, screenW, screenH int32) {
	h := ins.renderer.Theme.PanelHeight(ins.panel, &data)
	x, y := AnchorPosition(ins.panel.Anchor, ins.panel.Width, h, screenW, screenH, 10)
	ins.renderer.DrawPanelAt(x, y, ins.panel, &data)
}

func inspected(v any) *InspectorData {
	return v.(*InspectorData)
}

func inspectorPanel() PanelDescriptor {
	sensors := make([]FieldDescriptor, 0, len(SensorLabels))
	for i, label := range SensorLabels {
		widget, rng := WidgetBar, DefaultRange()
		if strings.HasSuffix(label, "bear") {
			widget, rng = WidgetCenteredBar, CenteredRange()
		}
		sensors = append(sensors, FieldDescriptor{
			ID:     fmt.Sprintf("input_%d", i),
			Label:  label,
			Widget: widget,
			Range:  rng,
			Getter: func(v any) float64 { return inspected(v).Inputs[i] },
		})
	}

	return PanelDescriptor{
		ID:     "inspector",
		Title:  "Creature",
		Width:  260,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				ID: "state",
				Fields: []FieldDescriptor{
					{
						Label:      "ID",
						Widget:     WidgetText,
						TextGetter: func(v any) string { return fmt.Sprintf("#%d", inspected(v).ID) },
					},
					{
						Label:       "Color",
						Widget:      WidgetColorSwatch,
						ColorGetter: func(v any) rl.Color { return inspected(v).Color },
					},
					{
						Label:     "Energy",
						Widget:    WidgetEnergyBar,
						Getter:    func(v any) float64 { return inspected(v).Energy },
						MaxGetter: func(v any) float64 { return inspected(v).MaxEnergy },
					},
					{
						Label:      "Status",
						Widget:     WidgetText,
						Visible:    func(v any) bool { return inspected(v).Dying },
						TextGetter: func(any) string { return "fading" },
					},
					{
						Label:  "Heading",
						Widget: WidgetText,
						Format: "%.1f deg",
						Getter: func(v any) float64 { return inspected(v).Heading },
					},
					{
						Label:  "Speed",
						Widget: WidgetText,
						Format: "%.2f",
						Getter: func(v any) float64 { return inspected(v).Speed },
					},
					{
						Label:   "Burst",
						Widget:  WidgetText,
						Visible: func(v any) bool { return inspected(v).Bursting },
						TextGetter: func(v any) string {
							return fmt.Sprintf("%d frames left", inspected(v).BurstLeft)
						},
					},
					{
						Label:  "Turn rate",
						Widget: WidgetText,
						Format: "%.2f deg",
						Getter: func(v any) float64 { return inspected(v).TurnRate },
					},
				},
			},
			{
				ID:    "lifetime",
				Title: "Lifetime",
				Fields: []FieldDescriptor{
					{
						Label:  "Food",
						Widget: WidgetText,
						Format: "%.0f",
						Getter: func(v any) float64 { return float64(inspected(v).FoodEaten) },
					},
					{
						Label:  "Collisions",
						Widget: WidgetText,
						Format: "%.0f",
						Getter: func(v any) float64 { return float64(inspected(v).Collisions) },
					},
					{
						Label:  "Bursts",
						Widget: WidgetText,
						Format: "%.0f",
						Getter: func(v any) float64 { return float64(inspected(v).Bursts) },
					},
					{
						Label:  "Fitness",
						Widget: WidgetText,
						Format: "%.1f",
						Getter: func(v any) float64 { return inspected(v).Fitness },
					},
				},
			},
			{
				ID:      "sensors",
				Title:   "Sensors",
				Visible: func(v any) bool { return inspected(v).HasDecision },
				Fields:  sensors,
			},
			{
				ID:      "brain",
				Title:   "Brain",
				Visible: func(v any) bool { return inspected(v).HasDecision },
				Fields: []FieldDescriptor{
					{
						Label:  "Steer",
						Widget: WidgetCenteredBar,
						Range:  CenteredRange(),
						Getter: func(v any) float64 { return inspected(v).Steer },
					},
					{
						Label:  "Burst",
						Widget: WidgetCenteredBar,
						Range:  CenteredRange(),
						Getter: func(v any) float64 { return inspected(v).BurstOut },
					},
				},
			},
		},
	}
}
