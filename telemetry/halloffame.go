package telemetry

import (
	"fmt"
	"sort"

	"github.com/pthm-cable/critters/evolution"
)

// HallOfFame keeps the fittest parents seen across every generation of a run.
// Its snapshot uses the parent snapshot format, so it can seed a later run.
type HallOfFame struct {
	entries    []SnapshotEntry
	maxSize    int
	hidden     int
	generation int
}

// NewHallOfFame creates a hall holding at most maxSize genomes of the given hidden width.
func NewHallOfFame(maxSize, hidden int) *HallOfFame {
	return &HallOfFame{
		entries: make([]SnapshotEntry, 0, maxSize),
		maxSize: maxSize,
		hidden:  hidden,
	}
}

// Consider offers a generation's ranked parents to the hall.
// Returns how many were admitted.
func (hof *HallOfFame) Consider(generation int, parents []evolution.Candidate) int {
	if hof == nil || hof.maxSize < 1 {
		return 0
	}
	hof.generation = generation
	added := 0
	for _, p := range parents {
		if p.Genome == nil || p.Fitness <= 0 {
			continue
		}
		entry := SnapshotEntry{
			ID:         p.ID,
			Generation: generation,
			Fitness:    p.Fitness,
			FoodEaten:  p.Lifetime.FoodEaten,
			Weights:    p.Genome.MarshalWeights(),
		}
		if hof.insert(entry) {
			added++
		}
	}
	return added
}

// insert adds an entry keeping descending fitness order. Ties keep the
// earlier entry first. A full hall drops its weakest entry.
func (hof *HallOfFame) insert(entry SnapshotEntry) bool {
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Fitness < entry.Fitness
	})
	if idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, SnapshotEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Size returns the number of stored genomes.
func (hof *HallOfFame) Size() int {
	if hof == nil {
		return 0
	}
	return len(hof.entries)
}

// TopFitness returns the best fitness stored, or 0 when empty.
func (hof *HallOfFame) TopFitness() float64 {
	if hof == nil || len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// Snapshot copies the hall into a snapshot stamped with the latest generation.
func (hof *HallOfFame) Snapshot() *Snapshot {
	s := &Snapshot{
		Version:    SnapshotVersion,
		Generation: hof.generation,
		Hidden:     hof.hidden,
		Entries:    make([]SnapshotEntry, len(hof.entries)),
	}
	copy(s.Entries, hof.entries)
	return s
}

// SaveHallOfFame writes the hall into dir as hall_of_fame.json.
func SaveHallOfFame(hof *HallOfFame, dir string) (string, error) {
	path, err := saveSnapshotAs(hof.Snapshot(), dir, "hall_of_fame.json")
	if err != nil {
		return "", fmt.Errorf("writing hall_of_fame.json: %w", err)
	}
	return path, nil
}
