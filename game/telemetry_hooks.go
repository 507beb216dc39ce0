package game

import (
	"log/slog"

	"github.com/pthm-cable/critters/evolution"
	"github.com/pthm-cable/critters/telemetry"
)

// telemetryDir returns where output files go, or "" when output is disabled.
// An explicit output directory always enables output.
func (g *Game) telemetryDir() string {
	if g.outputDir != "" {
		return g.outputDir
	}
	if !g.cfg.Telemetry.Enabled {
		return ""
	}
	return g.cfg.Telemetry.LogDir
}

// openTelemetry creates the output manager and hall of fame for a new run.
// Failing to open the log is reported and the run continues without it.
func (g *Game) openTelemetry() {
	om, err := telemetry.NewOutputManager(g.telemetryDir(), g.cfg.Telemetry.LogFile)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		om = nil
	}
	g.outputManager = om

	if g.outputManager != nil {
		if err := g.outputManager.WriteConfig(g.cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
		slog.Info("writing generation log", "dir", g.outputManager.Dir())
	}

	g.hallOfFame = nil
	if g.cfg.Telemetry.HallOfFameSize > 0 {
		g.hallOfFame = telemetry.NewHallOfFame(g.cfg.Telemetry.HallOfFameSize, g.cfg.Neural.Hidden)
	}
}

// closeTelemetry flushes the hall of fame and closes output files.
func (g *Game) closeTelemetry() {
	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.WriteHallOfFame(g.hallOfFame); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
	g.outputManager = nil
}

// recordGeneration publishes a finished generation: stats to the callback,
// console and CSV log, parents to a snapshot file and the hall of fame.
func (g *Game) recordGeneration(summary evolution.Summary, parents []evolution.Candidate) {
	stats := telemetry.NewGenerationStats(summary)
	g.lastStats = stats
	g.hasStats = true

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	perfStats := g.perf.Stats()
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	g.hallOfFame.Consider(summary.Generation, parents)

	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.WriteGeneration(stats); err != nil {
		slog.Error("failed to write generation log", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, g.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	if g.cfg.Telemetry.SnapshotParents && len(parents) > 0 {
		snap := telemetry.NewParentSnapshot(summary.Generation, g.cfg.Neural.Hidden, parents)
		path, err := g.outputManager.WriteParents(snap)
		if err != nil {
			slog.Error("failed to save parent snapshot", "error", err)
			return
		}
		slog.Debug("parent snapshot saved", "path", path, "generation", summary.Generation)
	}
}
