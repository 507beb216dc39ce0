package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/critters/evolution"
)

func TestComputeFitnessStats(t *testing.T) {
	tests := []struct {
		name                string
		values              []float64
		mean, std, p50, p90 float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{7}, 7, 0, 7, 7},
		{"unsorted", []float64{120, 10, 40}, 170.0 / 3, 56.8624, 40, 120},
		{"uniform", []float64{5, 5, 5, 5}, 5, 0, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p50, p90 := ComputeFitnessStats(tt.values)
			if math.Abs(mean-tt.mean) > 1e-3 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(std-tt.std) > 1e-3 {
				t.Errorf("std = %v, want %v", std, tt.std)
			}
			if p50 != tt.p50 || p90 != tt.p90 {
				t.Errorf("p50/p90 = %v/%v, want %v/%v", p50, p90, tt.p50, tt.p90)
			}
		})
	}
}

func TestComputeFitnessStatsLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeFitnessStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestNewGenerationStats(t *testing.T) {
	s := evolution.Summary{
		Generation:      4,
		Frames:          212,
		FoodEaten:       50,
		EndReason:       evolution.EndFoodLimit,
		Survivors:       30,
		PopulationStart: 50,
		Parents:         9,
		TopFood:         6,
		TopFitness:      245,
		Fitnesses:       []float64{245, 80, 40, 0},
	}

	gs := NewGenerationStats(s)
	if gs.Generation != 4 || gs.EndReason != "food_limit" || gs.Parents != 9 {
		t.Errorf("copied fields wrong: %+v", gs)
	}
	if gs.TopFitness != 245 || gs.TopFood != 6 {
		t.Errorf("top fields wrong: %+v", gs)
	}
	if math.Abs(gs.FitnessMean-91.25) > 1e-9 {
		t.Errorf("fitness mean = %v, want 91.25", gs.FitnessMean)
	}
}
