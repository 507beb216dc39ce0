// Control panel for launching simulation runs with chosen settings.
//
// Usage: go run ./cmd/panel -bin ./critters
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/critters/config"
)

const (
	windowWidth   = 900
	windowHeight  = 680
	sliderWidth   = 300
	columnWidth   = 440
	perColumn     = 8
	sliderSpacing = 53
)

// slider binds one Settings field to a raygui slider bar.
type slider struct {
	label    string
	min, max float32
	format   string
	get      func(s *Settings) float64
	set      func(s *Settings, v float64)
}

func intSlider(label string, lo, hi float32, field func(s *Settings) *int) slider {
	return slider{
		label:  label,
		min:    lo,
		max:    hi,
		format: "%.0f",
		get:    func(s *Settings) float64 { return float64(*field(s)) },
		set:    func(s *Settings, v float64) { *field(s) = int(math.Round(v)) },
	}
}

func floatSlider(label string, lo, hi float32, format string, field func(s *Settings) *float64) slider {
	return slider{
		label:  label,
		min:    lo,
		max:    hi,
		format: format,
		get:    func(s *Settings) float64 { return *field(s) },
		set:    func(s *Settings, v float64) { *field(s) = v },
	}
}

var sliders = []slider{
	intSlider("Population", 2, 300, func(s *Settings) *int { return &s.Population }),
	intSlider("Hidden neurons", 1, 16, func(s *Settings) *int { return &s.Hidden }),
	intSlider("Generation length (frames)", 50, 5000, func(s *Settings) *int { return &s.LengthFrames }),
	intSlider("Food limit", 1, 500, func(s *Settings) *int { return &s.FoodLimit }),
	intSlider("Steps per update", 1, 20, func(s *Settings) *int { return &s.StepsPerUpdate }),
	floatSlider("Selection percentage", 0.05, 1, "%.2f", func(s *Settings) *float64 { return &s.Selection }),
	floatSlider("Mutation chance", 0, 0.5, "%.3f", func(s *Settings) *float64 { return &s.MutationChance }),
	floatSlider("NN mutation amount", 0, 1, "%.2f", func(s *Settings) *float64 { return &s.NNAmount }),
	floatSlider("Colour mutation amount", 0, 100, "%.0f", func(s *Settings) *float64 { return &s.ColorAmount }),
	floatSlider("Energy decay per frame", 0, 1, "%.3f", func(s *Settings) *float64 { return &s.EnergyDecay }),
	floatSlider("Max energy", 10, 300, "%.0f", func(s *Settings) *float64 { return &s.MaxEnergy }),
	floatSlider("Food energy gain", 1, 100, "%.0f", func(s *Settings) *float64 { return &s.FoodGain }),
	intSlider("Max food", 1, 1000, func(s *Settings) *int { return &s.MaxFood }),
	intSlider("Width", 400, 1920, func(s *Settings) *int { return &s.Width }),
	intSlider("Height", 300, 1080, func(s *Settings) *int { return &s.Height }),
	intSlider("FPS", 10, 240, func(s *Settings) *int { return &s.FPS }),
}

func main() {
	bin := flag.String("bin", "./critters", "Path to the simulation binary")
	configPath := flag.String("config", "", "Config passed through to the simulation")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	settings := DefaultSettings(cfg)
	runner := NewRunner(*bin)
	defer func() {
		if err := runner.Stop(); err != nil {
			slog.Error("failed to stop simulation", "error", err)
		}
	}()

	rl.InitWindow(windowWidth, windowHeight, "Critters Control Panel")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	var launchErr string

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		x := float32(20)
		y := float32(10)

		rl.DrawText("Simulation Settings", int32(x), int32(y), 20, rl.DarkGray)
		y += 35

		top := y
		for i, sl := range sliders {
			sx := x + float32(i/perColumn)*columnWidth
			sy := top + float32(i%perColumn)*sliderSpacing

			rl.DrawText(sl.label, int32(sx), int32(sy), 14, rl.Gray)
			sy += 18
			cur := sl.get(&settings)
			next := gui.SliderBar(
				rl.Rectangle{X: sx, Y: sy, Width: sliderWidth, Height: 20},
				fmt.Sprintf(sl.format, sl.min), fmt.Sprintf(sl.format, sl.max),
				float32(cur), sl.min, sl.max,
			)
			if float64(next) != cur {
				sl.set(&settings, float64(next))
			}
			rl.DrawText(fmt.Sprintf(sl.format, sl.get(&settings)), int32(sx)+sliderWidth+50, int32(sy+2), 16, rl.DarkGray)
		}
		y = top + perColumn*sliderSpacing

		rl.DrawLine(int32(x), int32(y), windowWidth-20, int32(y), rl.LightGray)
		y += 15

		settings.Headless = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 20, Height: 20}, "Headless", settings.Headless)
		settings.NoTelemetry = gui.CheckBox(rl.Rectangle{X: x + 140, Y: y, Width: 20, Height: 20}, "No telemetry", settings.NoTelemetry)
		settings.LogStats = gui.CheckBox(rl.Rectangle{X: x + 300, Y: y, Width: 20, Height: 20}, "Log stats", settings.LogStats)
		y += 35

		rl.DrawText(fmt.Sprintf("Seed: %d (0 = time-based)", settings.Seed), int32(x), int32(y), 14, rl.Gray)
		if gui.Button(rl.Rectangle{X: x + 260, Y: y - 5, Width: 110, Height: 24}, "Random Seed") {
			settings.Seed = int64(rl.GetRandomValue(1, 99999))
		}
		y += 35

		if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 30}, "Start") {
			launchErr = ""
			if err := runner.Start(settings.Args(*configPath)); err != nil {
				launchErr = err.Error()
				slog.Error("failed to start simulation", "error", err)
			}
		}
		if gui.Button(rl.Rectangle{X: x + 130, Y: y, Width: 120, Height: 30}, "Stop") {
			if err := runner.Stop(); err != nil {
				launchErr = err.Error()
			}
		}
		if gui.Button(rl.Rectangle{X: x + 260, Y: y, Width: 120, Height: 30}, "Reset All") {
			settings = DefaultSettings(cfg)
		}
		y += 45

		statusColor := rl.DarkGray
		if runner.Running() {
			statusColor = rl.DarkGreen
		}
		rl.DrawText("Status: "+runner.Status(), int32(x), int32(y), 16, statusColor)
		y += 22
		if launchErr != "" {
			rl.DrawText(launchErr, int32(x), int32(y), 14, rl.Red)
		}

		rl.DrawText("Press C to copy the command line to clipboard", int32(x), windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(CommandLine(*bin, settings.Args(*configPath)))
		}

		rl.EndDrawing()
	}
}
