package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/telemetry"
)

func TestParamVectorDefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	pv := NewParamVector(cfg)

	got := pv.DefaultVector()
	want := pv.Clamp(pv.ExtractFromConfig(cfg))
	if len(got) != pv.Dim() {
		t.Fatalf("DefaultVector length = %d, want %d", len(got), pv.Dim())
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s default = %f, want %f", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector(config.Default())
	raw := pv.DefaultVector()

	norm := pv.Normalize(raw)
	for i, v := range norm {
		if v < 0 || v > 1 {
			t.Errorf("%s normalized to %f, want within [0, 1]", pv.Specs[i].Name, v)
		}
	}
	back := pv.Denormalize(norm)
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s round trip = %f, want %f", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestApplyClampsAndValidates(t *testing.T) {
	pv := NewParamVector(config.Default())
	values := make([]float64, pv.Dim())
	for i := range values {
		values[i] = 1e6
	}

	cfg := config.Default()
	pv.ApplyToConfig(cfg, values)

	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Max {
			t.Errorf("%s = %f, want clamped to %f", spec.Name, got[i], spec.Max)
		}
	}
	if err := cfg.Finalize(); err != nil {
		t.Errorf("config with clamped parameters invalid: %v", err)
	}
}

func TestEvalRecordColumns(t *testing.T) {
	pv := NewParamVector(config.Default())
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	if len(values) != pv.Dim() {
		t.Fatalf("test values cover %d parameters, vector has %d", len(values), pv.Dim())
	}

	r := newEvalRecord(3, -12, 12, 1500*time.Millisecond, values)
	if r.Eval != 3 || r.Fitness != -12 || r.TopMean != 12 || r.ElapsedSec != 1.5 {
		t.Errorf("record header fields = %+v", r)
	}
	cols := []float64{r.MutationChance, r.NNAmount, r.TurnRateAmount, r.SelectionPercentage, r.BurstThreshold}
	for i := range cols {
		if cols[i] != values[i] {
			t.Errorf("column %s = %f, want %f", pv.Specs[i].Name, cols[i], values[i])
		}
	}
}

func TestTopFitnessMean(t *testing.T) {
	stats := []telemetry.GenerationStats{
		{Generation: 0, TopFitness: 100},
		{Generation: 1, TopFitness: 2},
		{Generation: 2, TopFitness: 4},
	}

	tests := []struct {
		name   string
		stats  []telemetry.GenerationStats
		window int
		want   float64
	}{
		{"empty", nil, 3, 0},
		{"trailing window", stats, 2, 3},
		{"window larger than run", stats, 10, 106.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := topFitnessMean(tt.stats, tt.window); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("topFitnessMean = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	base := config.Default()
	base.Population.Initial = 8
	base.Generation.LengthFrames = 30
	base.Parallel.Threshold = 1 << 20
	if err := base.Finalize(); err != nil {
		t.Fatal(err)
	}

	pv := NewParamVector(base)
	fe := NewFitnessEvaluator(pv, 2, 1, []int64{1, 2}, base)

	fitness := fe.Evaluate(pv.DefaultVector())
	if fitness > 0 {
		t.Errorf("fitness = %f, want <= 0 (negated top fitness)", fitness)
	}
	if fitness != -fe.LastTopMean() {
		t.Errorf("fitness %f does not match last top mean %f", fitness, fe.LastTopMean())
	}
	if base.Telemetry.Enabled != config.Default().Telemetry.Enabled {
		t.Error("Evaluate modified the base config")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{42 * time.Second, "0m42s"},
		{3*time.Minute + 5*time.Second, "3m05s"},
		{2*time.Hour + 7*time.Minute + 9*time.Second, "2h07m09s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
