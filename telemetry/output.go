package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/critters/config"
)

// OutputManager writes the generation log and its companion files into one
// directory. A nil manager is valid and discards everything.
type OutputManager struct {
	dir        string
	logFile    *os.File
	perfFile   *os.File
	generation csvSink
	perf       csvSink
}

// csvSink tracks whether a CSV file already has its header row.
type csvSink struct {
	headerWritten bool
}

// write appends records to f, emitting the header only on the first call.
func (s *csvSink) write(f *os.File, records any) error {
	if !s.headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		s.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// NewOutputManager creates dir and truncates the generation log inside it.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir, logName string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if logName == "" {
		logName = "evolution_live_log.csv"
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, logName))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", logName, err)
	}
	om.logFile = f

	return om, nil
}

// WriteConfig saves the configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGeneration appends one row to the generation log and flushes it,
// so an interrupted run keeps every completed generation.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}
	if err := om.generation.write(om.logFile, []GenerationStats{stats}); err != nil {
		return fmt.Errorf("writing generation log: %w", err)
	}
	if err := om.logFile.Sync(); err != nil {
		return fmt.Errorf("flushing generation log: %w", err)
	}
	return nil
}

// WritePerf appends one row to perf.csv, creating it on first use.
func (om *OutputManager) WritePerf(stats PerfStats, tick int) error {
	if om == nil {
		return nil
	}
	if om.perfFile == nil {
		f, err := os.Create(filepath.Join(om.dir, "perf.csv"))
		if err != nil {
			return fmt.Errorf("creating perf.csv: %w", err)
		}
		om.perfFile = f
	}
	if err := om.perf.write(om.perfFile, []PerfStatsCSV{stats.ToCSV(tick)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteParents saves a parent snapshot as parents_gen_N.json.
func (om *OutputManager) WriteParents(s *Snapshot) (string, error) {
	if om == nil || s == nil {
		return "", nil
	}
	return SaveSnapshot(s, om.dir)
}

// WriteHallOfFame saves the hall of fame as hall_of_fame.json.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}
	_, err := SaveHallOfFame(hof, om.dir)
	return err
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.logFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
