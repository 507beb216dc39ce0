package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/critters/evolution"
	"github.com/pthm-cable/critters/neural"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds a set of genomes with the fitness they earned, usually the
// parents selected at a generation boundary. It can seed a later run.
type Snapshot struct {
	Version    int             `json:"version"`
	Generation int             `json:"generation"`
	Hidden     int             `json:"hidden"`
	Entries    []SnapshotEntry `json:"entries"`
}

// SnapshotEntry is one stored genome.
type SnapshotEntry struct {
	ID         uint32               `json:"id"`
	Generation int                  `json:"generation"`
	Fitness    float64              `json:"fitness"`
	FoodEaten  int                  `json:"food_eaten"`
	Weights    neural.GenomeWeights `json:"weights"`
}

// NewParentSnapshot captures the selected parents of a generation.
func NewParentSnapshot(generation, hidden int, parents []evolution.Candidate) *Snapshot {
	s := &Snapshot{
		Version:    SnapshotVersion,
		Generation: generation,
		Hidden:     hidden,
		Entries:    make([]SnapshotEntry, 0, len(parents)),
	}
	for _, p := range parents {
		if p.Genome == nil {
			continue
		}
		s.Entries = append(s.Entries, SnapshotEntry{
			ID:         p.ID,
			Generation: generation,
			Fitness:    p.Fitness,
			FoodEaten:  p.Lifetime.FoodEaten,
			Weights:    p.Genome.MarshalWeights(),
		})
	}
	return s
}

// Genomes rebuilds every stored genome, checking it against the configured
// hidden width. Any mismatch fails the whole load.
func (s *Snapshot) Genomes(hidden int) ([]*neural.Genome, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", s.Version, SnapshotVersion)
	}
	if s.Hidden != hidden {
		return nil, fmt.Errorf("%w: snapshot hidden width %d, config has %d", neural.ErrDimension, s.Hidden, hidden)
	}
	genomes := make([]*neural.Genome, 0, len(s.Entries))
	for i, e := range s.Entries {
		g, err := neural.UnmarshalWeights(e.Weights, hidden)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		genomes = append(genomes, g)
	}
	return genomes, nil
}

// SaveSnapshot writes a snapshot into dir as parents_gen_N.json.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	return saveSnapshotAs(snapshot, dir, fmt.Sprintf("parents_gen_%d.json", snapshot.Generation))
}

func saveSnapshotAs(snapshot *Snapshot, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, name)
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
