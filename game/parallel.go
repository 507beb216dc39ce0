package game

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/neural"
	"github.com/pthm-cable/critters/systems"
)

// creatureSnapshot captures read-only state for the sense/decide phase.
type creatureSnapshot struct {
	Entity   ecs.Entity
	Self     systems.Self
	Genome   *neural.Genome
	TurnRate float64
}

// intent captures a brain decision to apply after the parallel phase.
type intent struct {
	Inputs neural.Inputs
	Steer  float64
	Burst  float64
}

// workChunk represents a range of snapshots for a worker to process.
type workChunk struct {
	start, end int
}

// parallelState holds resources for parallel sensing and decision making.
type parallelState struct {
	snapshots  []creatureSnapshot
	peers      []systems.Peer
	intents    []intent
	numWorkers int
	threshold  int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

// newParallelState sizes the pool to GOMAXPROCS. Below threshold creatures
// the phase runs on the calling goroutine; threshold <= 0 never uses workers.
func newParallelState(threshold int) *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		threshold:  threshold,
		snapshots:  make([]creatureSnapshot, 0, 128),
		peers:      make([]systems.Peer, 0, 128),
		intents:    make([]intent, 0, 128),
	}
}

func (p *parallelState) useWorkers(n int) bool {
	return p.threshold > 0 && n >= p.threshold && p.numWorkers > 1
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.computeChunk(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// snapshotCreatures is Phase A: copy every living creature's state into
// snapshots and the shared peer list. Dying creatures are neither snapshotted
// nor sensed. A creature entering the frame with no energy starts dying here,
// before it can move or eat.
func (g *Game) snapshotCreatures() int {
	ps := g.parallel
	ps.snapshots = ps.snapshots[:0]
	ps.peers = ps.peers[:0]

	query := g.creatureFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, motion, body, energy, _, _, org := query.Get()

		if !energy.Dying && energy.Value <= 0 {
			energy.Value = 0
			energy.Dying = true
			energy.FadeAlpha = 255
		}
		if energy.Dying {
			continue
		}
		genome, ok := g.genomes[org.ID]
		if !ok {
			continue
		}

		ps.snapshots = append(ps.snapshots, creatureSnapshot{
			Entity: entity,
			Self: systems.Self{
				ID:        org.ID,
				X:         pos.X,
				Y:         pos.Y,
				Heading:   motion.Heading,
				Radius:    body.Radius,
				Energy:    energy.Value,
				MaxEnergy: energy.Max,
			},
			Genome:   genome,
			TurnRate: genome.TurnRate,
		})
		ps.peers = append(ps.peers, systems.Peer{
			ID:    org.ID,
			X:     pos.X,
			Y:     pos.Y,
			Speed: motion.Speed,
		})
	}

	n := len(ps.snapshots)
	if cap(ps.intents) < n {
		ps.intents = make([]intent, n)
	}
	ps.intents = ps.intents[:n]
	return n
}

// decide is Phase B: sense and run every brain, on workers when the
// population is large enough. Only snapshots are read, so the result does
// not depend on how the work was split.
func (g *Game) decide(n int) {
	if n == 0 {
		return
	}
	if !g.parallel.useWorkers(n) {
		g.computeChunk(0, n)
		return
	}
	g.computeParallel(n)
}

// computeParallel dispatches work to the worker pool.
func (g *Game) computeParallel(n int) {
	if !g.parallel.running {
		g.parallel.startWorkers(g)
	}

	numWorkers := g.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		g.parallel.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-g.parallel.doneChan
	}
}

// computeChunk senses and decides for a range of snapshots.
func (g *Game) computeChunk(i0, i1 int) {
	ps := g.parallel
	for i := i0; i < i1; i++ {
		snap := &ps.snapshots[i]
		it := &ps.intents[i]

		sensed := systems.Sense(snap.Self, ps.peers, g.foods, g.obstacles, g.sensing)
		it.Inputs = sensed.Vector()
		it.Steer, it.Burst = snap.Genome.Decide(it.Inputs)
	}
}

// stopParallelWorkers should be called when shutting down the game.
func (g *Game) stopParallelWorkers() {
	if g.parallel != nil {
		g.parallel.stopWorkers()
	}
}
