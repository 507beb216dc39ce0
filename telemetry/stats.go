package telemetry

import (
	"log/slog"
	"sort"

	"github.com/pthm-cable/critters/evolution"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats is one row of the generation log.
type GenerationStats struct {
	Generation int    `csv:"generation"`
	Frames     int    `csv:"frames"`
	FoodEaten  int    `csv:"food_eaten"`
	EndReason  string `csv:"end_reason"`

	// Population at the boundary
	Survivors       int  `csv:"survivors"`
	PopulationStart int  `csv:"population_start"`
	Parents         int  `csv:"parents"`
	Fallback        bool `csv:"fallback"`

	AvgSurvivorEnergy  float64 `csv:"avg_survivor_energy"`
	AvgSurvivorFitness float64 `csv:"avg_survivor_fitness"`

	// World counters for the generation
	TotalBursts      int     `csv:"total_bursts"`
	TotalBurstEnergy float64 `csv:"total_burst_energy"`
	TotalCollisions  int     `csv:"total_collisions"`

	// Best ranked creature
	TopFood       int     `csv:"top_food"`
	TopEnergy     float64 `csv:"top_energy"`
	TopCollisions int     `csv:"top_collisions"`
	TopBursts     int     `csv:"top_bursts"`
	TopFitness    float64 `csv:"top_fitness"`

	ParentDiversity float64 `csv:"parent_diversity"`

	// Fitness distribution over ranked creatures
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`
}

// NewGenerationStats flattens a generation summary into a log row.
func NewGenerationStats(s evolution.Summary) GenerationStats {
	gs := GenerationStats{
		Generation:         s.Generation,
		Frames:             s.Frames,
		FoodEaten:          s.FoodEaten,
		EndReason:          string(s.EndReason),
		Survivors:          s.Survivors,
		PopulationStart:    s.PopulationStart,
		Parents:            s.Parents,
		Fallback:           s.Fallback,
		AvgSurvivorEnergy:  s.AvgSurvivorEnergy,
		AvgSurvivorFitness: s.AvgSurvivorFitness,
		TotalBursts:        s.TotalBursts,
		TotalBurstEnergy:   s.TotalBurstEnergy,
		TotalCollisions:    s.TotalCollisions,
		TopFood:            s.TopFood,
		TopEnergy:          s.TopEnergy,
		TopCollisions:      s.TopCollisions,
		TopBursts:          s.TopBursts,
		TopFitness:         s.TopFitness,
		ParentDiversity:    s.ParentDiversity,
	}
	gs.FitnessMean, gs.FitnessStd, gs.FitnessP50, gs.FitnessP90 = ComputeFitnessStats(s.Fitnesses)
	return gs
}

// ComputeFitnessStats returns the mean, sample standard deviation and
// empirical 50th/90th percentiles. Empty input gives zeros; a single value
// has zero spread.
func ComputeFitnessStats(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n == 1 {
		mean = sorted[0]
	} else {
		mean, std = stat.MeanStdDev(sorted, nil)
	}
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("frames", s.Frames),
		slog.Int("food_eaten", s.FoodEaten),
		slog.String("end_reason", s.EndReason),
		slog.Int("survivors", s.Survivors),
		slog.Int("population_start", s.PopulationStart),
		slog.Int("parents", s.Parents),
		slog.Bool("fallback", s.Fallback),
		slog.Float64("avg_survivor_energy", s.AvgSurvivorEnergy),
		slog.Float64("avg_survivor_fitness", s.AvgSurvivorFitness),
		slog.Int("total_bursts", s.TotalBursts),
		slog.Float64("total_burst_energy", s.TotalBurstEnergy),
		slog.Int("total_collisions", s.TotalCollisions),
		slog.Int("top_food", s.TopFood),
		slog.Float64("top_fitness", s.TopFitness),
		slog.Float64("parent_diversity", s.ParentDiversity),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_p90", s.FitnessP90),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation ended",
		"generation", s.Generation,
		"frames", s.Frames,
		"food_eaten", s.FoodEaten,
		"end_reason", s.EndReason,
		"survivors", s.Survivors,
		"parents", s.Parents,
		"avg_survivor_energy", s.AvgSurvivorEnergy,
		"total_bursts", s.TotalBursts,
		"total_collisions", s.TotalCollisions,
		"top_food", s.TopFood,
		"top_fitness", s.TopFitness,
		"parent_diversity", s.ParentDiversity,
		"fitness_mean", s.FitnessMean,
		"fitness_p90", s.FitnessP90,
	)
}
