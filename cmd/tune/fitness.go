package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/game"
	"github.com/pthm-cable/critters/telemetry"
)

// FitnessEvaluator runs headless simulations and scores a parameter vector.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int // generations per run
	window      int // trailing generations averaged into the score
	seeds       []int64
	baseConfig  *config.Config

	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastTopMean    float64
}

// NewFitnessEvaluator creates a new evaluator. baseCfg is never modified.
func NewFitnessEvaluator(params *ParamVector, generations, window int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	if window < 1 {
		window = 1
	}
	if window > generations {
		window = generations
	}
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		window:      window,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastTopMean returns the mean top fitness from the most recent evaluation.
func (fe *FitnessEvaluator) LastTopMean() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastTopMean
}

// runResult holds the results from a single simulation run.
type runResult struct {
	stats      []telemetry.GenerationStats
	hallOfFame *telemetry.HallOfFame
}

// Evaluate computes fitness for a raw parameter vector (lower = better):
// the negated mean top fitness over the trailing window, averaged across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.configFor(x)

	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg.Clone(), s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	bestSeed := math.Inf(-1)
	var bestSeedHallOfFame *telemetry.HallOfFame
	for _, r := range results {
		top := topFitnessMean(r.stats, fe.window)
		total += top
		if top > bestSeed {
			bestSeed = top
			bestSeedHallOfFame = r.hallOfFame
		}
	}
	topMean := total / float64(len(results))
	fitness := -topMean

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestHallOfFame = bestSeedHallOfFame
	}
	fe.lastTopMean = topMean
	fe.mu.Unlock()

	return fitness
}

// configFor returns a copy of the base config with x applied.
// Output is always off: runs only report through the stats callback.
func (fe *FitnessEvaluator) configFor(x []float64) *config.Config {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Telemetry.Enabled = false
	if cfg.Telemetry.HallOfFameSize < 1 {
		cfg.Telemetry.HallOfFameSize = 20
	}
	// Clamped values always validate; a failure here means the base config is broken.
	if err := cfg.Finalize(); err != nil {
		panic(err)
	}
	return cfg
}

// runSimulation plays one headless run until it has finished the configured
// number of generations.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	result := &runResult{}

	g := game.NewGameWithOptions(cfg, game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.GenerationStats) {
			result.stats = append(result.stats, stats)
		},
	})
	defer g.Unload()

	// Every generation ends within LengthFrames, so this always terminates.
	for g.Generation() < fe.generations {
		g.UpdateHeadless()
	}
	result.hallOfFame = g.HallOfFame()
	return result
}

// topFitnessMean averages TopFitness over the last window generations.
func topFitnessMean(stats []telemetry.GenerationStats, window int) float64 {
	if len(stats) == 0 {
		return 0
	}
	if window > len(stats) {
		window = len(stats)
	}
	tail := stats[len(stats)-window:]
	tops := make([]float64, len(tail))
	for i, s := range tail {
		tops[i] = s.TopFitness
	}
	return stat.Mean(tops, nil)
}
