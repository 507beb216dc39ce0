package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/game"
	"github.com/pthm-cable/critters/neural"
	"github.com/pthm-cable/critters/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for the generation log (overrides telemetry.log_dir)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation frames per update call (higher = faster headless runs)")
	seedParents := flag.String("seed-parents", "", "Parent snapshot or hall_of_fame.json to seed generation 0 from")

	// Config overrides (negative = keep config value)
	population := flag.Int("population", -1, "Override population.initial")
	hidden := flag.Int("hidden", -1, "Override neural.hidden")
	lengthFrames := flag.Int("length-frames", -1, "Override generation.length_frames")
	foodLimit := flag.Int("food-limit", -1, "Override generation.food_limit")
	selection := flag.Float64("selection", -1, "Override generation.selection_percentage")
	mutationChance := flag.Float64("mutation-chance", -1, "Override mutation.chance")
	parallelThreshold := flag.Int("parallel-threshold", -1, "Override parallel.threshold")
	energyDecay := flag.Float64("energy-decay", -1, "Override creature.energy_decay")
	maxEnergy := flag.Float64("max-energy", -1, "Override creature.max_energy")
	foodGain := flag.Float64("food-gain", -1, "Override food.energy_gain")
	maxFood := flag.Int("max-food", -1, "Override food.max_count")
	nnAmount := flag.Float64("nn-mutation", -1, "Override mutation.nn_amount")
	colorAmount := flag.Float64("color-mutation", -1, "Override mutation.color_amount")
	width := flag.Int("width", -1, "Override screen.width (also the world width)")
	height := flag.Int("height", -1, "Override screen.height (also the world height)")
	fps := flag.Int("fps", -1, "Override screen.target_fps")
	noTelemetry := flag.Bool("no-telemetry", false, "Disable the generation log")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg().Clone()

	overrideInt(&cfg.Population.Initial, *population)
	overrideInt(&cfg.Neural.Hidden, *hidden)
	overrideInt(&cfg.Generation.LengthFrames, *lengthFrames)
	overrideInt(&cfg.Generation.FoodLimit, *foodLimit)
	overrideInt(&cfg.Parallel.Threshold, *parallelThreshold)
	overrideFloat(&cfg.Generation.SelectionPercentage, *selection)
	overrideFloat(&cfg.Mutation.Chance, *mutationChance)
	overrideFloat(&cfg.Creature.EnergyDecay, *energyDecay)
	overrideFloat(&cfg.Creature.MaxEnergy, *maxEnergy)
	overrideFloat(&cfg.Food.EnergyGain, *foodGain)
	overrideInt(&cfg.Food.MaxCount, *maxFood)
	overrideFloat(&cfg.Mutation.NNAmount, *nnAmount)
	overrideFloat(&cfg.Mutation.ColorAmount, *colorAmount)
	overrideInt(&cfg.Screen.Width, *width)
	overrideInt(&cfg.Screen.Height, *height)
	overrideInt(&cfg.Screen.TargetFPS, *fps)
	if *noTelemetry {
		cfg.Telemetry.Enabled = false
	}
	if err := cfg.Finalize(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	config.Set(cfg)

	var genomes []*neural.Genome
	if *seedParents != "" {
		var err error
		genomes, err = loadSeedGenomes(*seedParents, cfg.Neural.Hidden)
		if err != nil {
			slog.Error("failed to load seed parents", "path", *seedParents, "error", err)
			os.Exit(1)
		}
		slog.Info("seeding from snapshot", "path", *seedParents, "genomes", len(genomes))
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		SeedGenomes:    genomes,
	}

	done := func(g *game.Game) bool {
		if *maxTicks > 0 && g.Tick() >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return true
		}
		if *maxGenerations > 0 && g.Generation() >= *maxGenerations {
			slog.Info("max generations reached", "generation", g.Generation())
			return true
		}
		return false
	}

	if *headless {
		g := game.NewGameWithOptions(cfg, opts)
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"population", cfg.Population.Initial,
			"max_ticks", *maxTicks,
			"max_generations", *maxGenerations,
			"steps_per_update", *stepsPerUpdate,
		)

		for !done(g) {
			g.UpdateHeadless()
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), fmt.Sprintf("Critters (seed %d)", rngSeed))
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0) // Escape clears the selection

	g := game.NewGameWithOptions(cfg, opts)
	defer g.Unload()

	for !rl.WindowShouldClose() && !done(g) {
		g.Update()
		g.Draw()
	}
}

// loadSeedGenomes reads a snapshot file and returns its genomes, checked
// against the configured hidden layer size.
func loadSeedGenomes(path string, hidden int) ([]*neural.Genome, error) {
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return nil, err
	}
	genomes, err := snap.Genomes(hidden)
	if err != nil {
		return nil, err
	}
	if len(genomes) == 0 {
		return nil, fmt.Errorf("%s holds no genomes", path)
	}
	return genomes, nil
}

func overrideInt(dst *int, v int) {
	if v >= 0 {
		*dst = v
	}
}

func overrideFloat(dst *float64, v float64) {
	if v >= 0 {
		*dst = v
	}
}
