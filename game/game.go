// Package game runs the creature world: the per-frame simulation loop, the
// generation boundary, telemetry hooks and the raylib presentation layer.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/camera"
	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/evolution"
	"github.com/pthm-cable/critters/neural"
	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/telemetry"
	"github.com/pthm-cable/critters/ui"
)

// Options configures a new game.
type Options struct {
	Seed           int64
	LogStats       bool   // log generation and perf stats via slog
	OutputDir      string // overrides telemetry.log_dir when set
	Headless       bool
	StepsPerUpdate int

	// SeedGenomes, if set, populate generation 0 instead of random genomes.
	// The population is filled by cycling through them.
	SeedGenomes []*neural.Genome

	// StatsCallback is invoked with each generation's stats.
	StatsCallback func(telemetry.GenerationStats)
}

// Game holds the world and the evolutionary state around it.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	world          *ecs.World
	creatureMapper *ecs.Map7[
		components.Position,
		components.Motion,
		components.Body,
		components.Energy,
		components.Burst,
		components.Lifetime,
		components.Organism,
	]
	creatureFilter *ecs.Filter7[
		components.Position,
		components.Motion,
		components.Body,
		components.Energy,
		components.Burst,
		components.Lifetime,
		components.Organism,
	]

	// Genomes by organism ID
	genomes map[uint32]*neural.Genome

	foods     []components.Food
	obstacles []components.Obstacle

	// Creatures removed after fading out this generation, kept for the
	// ranking fallback.
	fallen []evolution.Candidate

	counters evolution.Counters
	phase    evolution.Phase
	nextID   uint32
	tick     int

	// Derived parameters
	physics  systems.PhysicsParams
	sensing  systems.SensorParams
	placer   systems.Placer
	weights  evolution.Weights
	limits   evolution.Limits
	breeding evolution.Breeding

	parallel *parallelState

	// Telemetry
	outputManager *telemetry.OutputManager
	hallOfFame    *telemetry.HallOfFame
	perf          *telemetry.PerfCollector
	lastStats     telemetry.GenerationStats
	hasStats      bool
	statsCallback func(telemetry.GenerationStats)
	logStats      bool
	outputDir     string

	seedGenomes []*neural.Genome

	// Presentation
	headless       bool
	paused         bool
	stepsPerUpdate int
	camera         *camera.Camera
	hud            *ui.HUD
	inspector      *ui.Inspector
	overlays       *ui.OverlayRegistry
	controls       *ui.ControlsPanel
	perfPanel      *ui.PerfPanel
	genPanel       *ui.GenerationPanel

	// Selection, with the selected creature's last decision
	selectedID   uint32
	hasSelection bool
	lastDecision intent
	hasDecision  bool
}

// NewGameWithOptions creates a game from an explicit, validated configuration.
func NewGameWithOptions(cfg *config.Config, opts Options) *Game {
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		seed:           opts.Seed,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		physics:        systems.PhysicsParamsFromConfig(cfg),
		sensing:        systems.SensorParamsFromConfig(cfg),
		placer:         systems.PlacerFromConfig(cfg),
		weights:        evolution.WeightsFromConfig(cfg),
		limits:         evolution.LimitsFromConfig(cfg),
		breeding:       evolution.BreedingFromConfig(cfg),
		parallel:       newParallelState(cfg.Parallel.Threshold),
		perf:           telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		statsCallback:  opts.StatsCallback,
		logStats:       opts.LogStats,
		outputDir:      opts.OutputDir,
		seedGenomes:    opts.SeedGenomes,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
	}

	if !g.headless {
		g.camera = camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Derived.WorldW, cfg.Derived.WorldH)
		g.hud = ui.NewHUD()
		g.inspector = ui.NewInspector()
		g.overlays = ui.NewOverlayRegistry()
		g.overlays.SetEnabled(ui.OverlayHeadings, true)
		g.overlays.SetEnabled(ui.OverlayEnergyTint, true)
		g.controls = ui.NewControlsPanel(10, 100, 220)
		g.perfPanel = ui.NewPerfPanel(10, int32(cfg.Screen.Height)-160)
		g.genPanel = ui.NewGenerationPanel(220)
	}

	g.resetWorld()
	g.openTelemetry()
	return g
}

// Reset rebuilds the world from scratch. A non-zero seed reseeds the RNG,
// otherwise the current RNG stream continues. The log file is recreated.
func (g *Game) Reset(seed int64) {
	if seed != 0 {
		g.seed = seed
		g.rng = rand.New(rand.NewSource(seed))
	}
	g.closeTelemetry()
	g.resetWorld()
	g.openTelemetry()
	g.hasStats = false
	g.lastStats = telemetry.GenerationStats{}
	g.clearSelection()
	slog.Info("world reset", "seed", g.seed)
}

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Phase returns the generation state.
func (g *Game) Phase() evolution.Phase {
	return g.phase
}

// Generation returns the current generation index.
func (g *Game) Generation() int {
	return g.counters.Generation
}

// Counters returns a copy of the current world counters.
func (g *Game) Counters() evolution.Counters {
	return g.counters
}

// Tick returns the number of frames simulated since the last reset.
func (g *Game) Tick() int {
	return g.tick
}

// LastStats returns the stats of the most recently finished generation.
// ok is false before the first generation ends.
func (g *Game) LastStats() (stats telemetry.GenerationStats, ok bool) {
	return g.lastStats, g.hasStats
}

// HallOfFame returns the run's best parents, or nil when disabled.
func (g *Game) HallOfFame() *telemetry.HallOfFame {
	return g.hallOfFame
}

// Living counts creatures that are not dying.
func (g *Game) Living() int {
	n := 0
	query := g.creatureFilter.Query()
	for query.Next() {
		_, _, _, energy, _, _, _ := query.Get()
		if !energy.Dying {
			n++
		}
	}
	return n
}

// Population counts every creature entity, dying ones included.
func (g *Game) Population() int {
	n := 0
	query := g.creatureFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Unload releases resources and flushes output files.
func (g *Game) Unload() {
	g.stopParallelWorkers()
	g.closeTelemetry()
}
