package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/pthm-cable/critters/config"
)

// Settings holds the simulation flags edited in the panel.
type Settings struct {
	Population     int
	Hidden         int
	LengthFrames   int
	FoodLimit      int
	StepsPerUpdate int
	Selection      float64
	MutationChance float64
	Seed           int64

	EnergyDecay float64
	MaxEnergy   float64
	FoodGain    float64
	MaxFood     int
	NNAmount    float64
	ColorAmount float64

	Width  int
	Height int
	FPS    int

	Headless    bool
	NoTelemetry bool
	LogStats    bool
}

// DefaultSettings mirrors cfg so an untouched panel launches the configured run.
func DefaultSettings(cfg *config.Config) Settings {
	return Settings{
		Population:     cfg.Population.Initial,
		Hidden:         cfg.Neural.Hidden,
		LengthFrames:   cfg.Generation.LengthFrames,
		FoodLimit:      cfg.Generation.FoodLimit,
		StepsPerUpdate: 1,
		Selection:      cfg.Generation.SelectionPercentage,
		MutationChance: cfg.Mutation.Chance,
		EnergyDecay:    cfg.Creature.EnergyDecay,
		MaxEnergy:      cfg.Creature.MaxEnergy,
		FoodGain:       cfg.Food.EnergyGain,
		MaxFood:        cfg.Food.MaxCount,
		NNAmount:       cfg.Mutation.NNAmount,
		ColorAmount:    cfg.Mutation.ColorAmount,
		Width:          cfg.Screen.Width,
		Height:         cfg.Screen.Height,
		FPS:            cfg.Screen.TargetFPS,
	}
}

// Args renders the settings as command-line flags for the simulation binary.
func (s Settings) Args(configPath string) []string {
	args := []string{
		"-population=" + strconv.Itoa(s.Population),
		"-hidden=" + strconv.Itoa(s.Hidden),
		"-length-frames=" + strconv.Itoa(s.LengthFrames),
		"-food-limit=" + strconv.Itoa(s.FoodLimit),
		"-steps-per-update=" + strconv.Itoa(s.StepsPerUpdate),
		"-selection=" + strconv.FormatFloat(s.Selection, 'f', 3, 64),
		"-mutation-chance=" + strconv.FormatFloat(s.MutationChance, 'f', 4, 64),
		"-energy-decay=" + strconv.FormatFloat(s.EnergyDecay, 'f', 4, 64),
		"-max-energy=" + strconv.FormatFloat(s.MaxEnergy, 'f', 1, 64),
		"-food-gain=" + strconv.FormatFloat(s.FoodGain, 'f', 1, 64),
		"-max-food=" + strconv.Itoa(s.MaxFood),
		"-nn-mutation=" + strconv.FormatFloat(s.NNAmount, 'f', 3, 64),
		"-color-mutation=" + strconv.FormatFloat(s.ColorAmount, 'f', 1, 64),
		"-width=" + strconv.Itoa(s.Width),
		"-height=" + strconv.Itoa(s.Height),
		"-fps=" + strconv.Itoa(s.FPS),
	}
	if s.Seed != 0 {
		args = append(args, "-seed="+strconv.FormatInt(s.Seed, 10))
	}
	if configPath != "" {
		args = append(args, "-config="+configPath)
	}
	if s.Headless {
		args = append(args, "-headless")
	}
	if s.NoTelemetry {
		args = append(args, "-no-telemetry")
	}
	if s.LogStats {
		args = append(args, "-log-stats")
	}
	return args
}

// CommandLine returns the shell form of a launch, for copying.
func CommandLine(bin string, args []string) string {
	return bin + " " + strings.Join(args, " ")
}

// Runner owns at most one simulation subprocess.
type Runner struct {
	bin string

	mu       sync.Mutex
	cmd      *exec.Cmd
	lastExit string
}

// NewRunner creates a runner for the simulation binary at bin.
func NewRunner(bin string) *Runner {
	return &Runner{bin: bin}
}

// Running reports whether a subprocess is alive.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cmd != nil
}

// Status describes the current or last subprocess.
func (r *Runner) Status() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd != nil {
		return fmt.Sprintf("running (pid %d)", r.cmd.Process.Pid)
	}
	if r.lastExit != "" {
		return r.lastExit
	}
	return "stopped"
}

// Start launches the simulation with args. Output goes to the panel's own stdout.
func (r *Runner) Start(args []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd != nil {
		return fmt.Errorf("simulation already running (pid %d)", r.cmd.Process.Pid)
	}

	cmd := exec.Command(r.bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", r.bin, err)
	}
	r.cmd = cmd
	r.lastExit = ""
	slog.Info("simulation started", "pid", cmd.Process.Pid, "args", args)

	go r.wait(cmd)
	return nil
}

func (r *Runner) wait(cmd *exec.Cmd) {
	err := cmd.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd == cmd {
		r.cmd = nil
	}
	if err != nil {
		r.lastExit = "exited: " + err.Error()
	} else {
		r.lastExit = "exited"
	}
	slog.Info("simulation exited", "pid", cmd.Process.Pid, "error", err)
}

// Stop kills the running subprocess, if any.
func (r *Runner) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd == nil {
		return nil
	}
	if err := r.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("stopping simulation: %w", err)
	}
	return nil
}
