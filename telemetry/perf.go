package telemetry

import (
	"log/slog"
	"time"
)

// PerfPhase identifies a timed section of a simulation step.
type PerfPhase uint8

const (
	PhaseSnapshot PerfPhase = iota
	PhaseSense
	PhaseApply
	PhaseCleanup
	PhaseFood
	PhaseGeneration
	numPerfPhases
)

var perfPhaseNames = [numPerfPhases]string{
	PhaseSnapshot:   "snapshot",
	PhaseSense:      "sense_decide",
	PhaseApply:      "apply",
	PhaseCleanup:    "cleanup",
	PhaseFood:       "food",
	PhaseGeneration: "generation",
}

func (p PerfPhase) String() string {
	if p < numPerfPhases {
		return perfPhaseNames[p]
	}
	return "unknown"
}

// PerfSample holds timing data for a single step.
type PerfSample struct {
	StepDuration time.Duration
	Phases       [numPerfPhases]time.Duration
}

// PerfCollector tracks step timings over a rolling window.
// A nil collector ignores every call.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    PerfSample
	stepStart  time.Time
	phaseStart time.Time
	phase      PerfPhase
	inPhase    bool

	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
	}
}

// StartStep begins timing a new simulation step.
func (p *PerfCollector) StartStep() {
	if p == nil {
		return
	}
	p.stepStart = time.Now()
	p.current = PerfSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing the next.
func (p *PerfCollector) StartPhase(phase PerfPhase) {
	if p == nil {
		return
	}
	now := time.Now()
	if p.inPhase {
		p.current.Phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.phase = phase
	p.inPhase = true
}

// EndStep finishes the current step and records its sample.
func (p *PerfCollector) EndStep() {
	if p == nil {
		return
	}
	now := time.Now()
	if p.inPhase {
		p.current.Phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
	p.current.StepDuration = now.Sub(p.stepStart)

	p.samples[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records presentation frame timing in graphics mode.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgStep time.Duration
	MinStep time.Duration
	MaxStep time.Duration

	// Share of the average step spent in each phase, in percent
	PhasePct [numPerfPhases]float64

	StepsPerSecond float64
	FPS            float64
}

// Stats aggregates the samples in the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p == nil {
		return PerfStats{}
	}
	var s PerfStats
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPerfPhases]time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sample := p.samples[i]
		total += sample.StepDuration
		if i == 0 || sample.StepDuration < s.MinStep {
			s.MinStep = sample.StepDuration
		}
		if sample.StepDuration > s.MaxStep {
			s.MaxStep = sample.StepDuration
		}
		for ph, d := range sample.Phases {
			phaseSum[ph] += d
		}
	}

	s.AvgStep = total / time.Duration(p.sampleCount)
	if total > 0 {
		for ph, d := range phaseSum {
			s.PhasePct[ph] = float64(d) / float64(total) * 100
		}
	}
	if s.AvgStep > 0 {
		s.StepsPerSecond = float64(time.Second) / float64(s.AvgStep)
	}
	return s
}

// LogStats logs performance statistics, skipping negligible phases.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_step_us", s.AvgStep.Microseconds(),
		"min_step_us", s.MinStep.Microseconds(),
		"max_step_us", s.MaxStep.Microseconds(),
		"steps_per_sec", int(s.StepsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, PerfPhase(ph).String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat row for perf.csv.
type PerfStatsCSV struct {
	Tick          int     `csv:"tick"`
	AvgStepUS     int64   `csv:"avg_step_us"`
	MinStepUS     int64   `csv:"min_step_us"`
	MaxStepUS     int64   `csv:"max_step_us"`
	StepsPerSec   float64 `csv:"steps_per_sec"`
	FPS           float64 `csv:"fps"`
	SnapshotPct   float64 `csv:"snapshot_pct"`
	SensePct      float64 `csv:"sense_decide_pct"`
	ApplyPct      float64 `csv:"apply_pct"`
	CleanupPct    float64 `csv:"cleanup_pct"`
	FoodPct       float64 `csv:"food_pct"`
	GenerationPct float64 `csv:"generation_pct"`
}

// ToCSV flattens the stats for CSV export.
func (s PerfStats) ToCSV(tick int) PerfStatsCSV {
	return PerfStatsCSV{
		Tick:          tick,
		AvgStepUS:     s.AvgStep.Microseconds(),
		MinStepUS:     s.MinStep.Microseconds(),
		MaxStepUS:     s.MaxStep.Microseconds(),
		StepsPerSec:   s.StepsPerSecond,
		FPS:           s.FPS,
		SnapshotPct:   s.PhasePct[PhaseSnapshot],
		SensePct:      s.PhasePct[PhaseSense],
		ApplyPct:      s.PhasePct[PhaseApply],
		CleanupPct:    s.PhasePct[PhaseCleanup],
		FoodPct:       s.PhasePct[PhaseFood],
		GenerationPct: s.PhasePct[PhaseGeneration],
	}
}
