// Package neural provides the heritable feedforward brains that steer creatures.
package neural

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Network dimensions fixed by the sensor and actuator layout.
// The hidden layer width is configurable and baked into each genome.
const (
	NumInputs  = 8 // energy, food dist+bearing, neighbour dist+speed+bearing, obstacle dist+bearing
	NumOutputs = 2 // steer, burst
)

// ErrDimension is returned when genome matrices do not match the expected topology.
var ErrDimension = errors.New("genome dimension mismatch")

// Inputs is one sensor reading.
type Inputs = [NumInputs]float64

// Genome is the unit of heredity: the brain's weights and biases plus
// body colour and turning rate.
type Genome struct {
	WIH *mat.Dense    // NumInputs x hidden
	BH  *mat.VecDense // hidden
	WHO *mat.Dense    // hidden x NumOutputs
	BO  *mat.VecDense // NumOutputs

	Color    [3]float64 // RGB in [0, 255]
	TurnRate float64    // max degrees turned per frame
}

// Traits bounds the non-neural genes.
type Traits struct {
	MinTurnRate float64
	MaxTurnRate float64
}

// NewGenome creates a random genome with weights and biases drawn from U(-1, 1).
func NewGenome(rng *rand.Rand, hidden int, traits Traits) *Genome {
	g := &Genome{
		WIH: mat.NewDense(NumInputs, hidden, nil),
		BH:  mat.NewVecDense(hidden, nil),
		WHO: mat.NewDense(hidden, NumOutputs, nil),
		BO:  mat.NewVecDense(NumOutputs, nil),
	}
	for _, genes := range g.params() {
		for i := range genes {
			genes[i] = uniform(rng, 1)
		}
	}
	for c := range g.Color {
		g.Color[c] = 50 + rng.Float64()*150
	}
	g.TurnRate = traits.MinTurnRate + rng.Float64()*(traits.MaxTurnRate-traits.MinTurnRate)
	return g
}

// Hidden returns the hidden layer width.
func (g *Genome) Hidden() int {
	return g.BH.Len()
}

// Validate checks that every matrix agrees with the expected hidden width.
func (g *Genome) Validate(hidden int) error {
	if g.WIH == nil || g.BH == nil || g.WHO == nil || g.BO == nil {
		return fmt.Errorf("%w: missing layer", ErrDimension)
	}
	if r, c := g.WIH.Dims(); r != NumInputs || c != hidden {
		return fmt.Errorf("%w: input weights are %dx%d, want %dx%d", ErrDimension, r, c, NumInputs, hidden)
	}
	if n := g.BH.Len(); n != hidden {
		return fmt.Errorf("%w: hidden biases have %d entries, want %d", ErrDimension, n, hidden)
	}
	if r, c := g.WHO.Dims(); r != hidden || c != NumOutputs {
		return fmt.Errorf("%w: output weights are %dx%d, want %dx%d", ErrDimension, r, c, hidden, NumOutputs)
	}
	if n := g.BO.Len(); n != NumOutputs {
		return fmt.Errorf("%w: output biases have %d entries, want %d", ErrDimension, n, NumOutputs)
	}
	return nil
}

// Decide runs the two-layer network. Both outputs are in [-1, 1].
// The genome is only read, so concurrent calls on one genome are safe.
func (g *Genome) Decide(inputs Inputs) (steer, burst float64) {
	x := mat.NewVecDense(NumInputs, inputs[:])

	var hidden mat.VecDense
	hidden.MulVec(g.WIH.T(), x)
	hidden.AddVec(&hidden, g.BH)
	for i := 0; i < hidden.Len(); i++ {
		hidden.SetVec(i, math.Tanh(hidden.AtVec(i)))
	}

	var out mat.VecDense
	out.MulVec(g.WHO.T(), &hidden)
	out.AddVec(&out, g.BO)

	return math.Tanh(out.AtVec(0)), math.Tanh(out.AtVec(1))
}

// MutationParams controls per-gene mutation.
type MutationParams struct {
	Chance         float64 // per-gene probability
	NNAmount       float64
	ColorAmount    float64
	TurnRateAmount float64
	Traits         Traits
}

// Mutate perturbs each gene independently with probability Chance.
// Neural parameters, colour channels and the turning rate each get a uniform delta.
func (g *Genome) Mutate(rng *rand.Rand, p MutationParams) {
	for _, genes := range g.params() {
		for i := range genes {
			if rng.Float64() < p.Chance {
				genes[i] += uniform(rng, p.NNAmount)
			}
		}
	}

	for c := range g.Color {
		if rng.Float64() < p.Chance {
			g.Color[c] = clamp(g.Color[c]+uniform(rng, p.ColorAmount), 0, 255)
		}
	}

	if rng.Float64() < p.Chance {
		g.TurnRate = clamp(g.TurnRate+uniform(rng, p.TurnRateAmount), p.Traits.MinTurnRate, p.Traits.MaxTurnRate)
	}
}

// Clone creates a deep copy of the genome.
func (g *Genome) Clone() *Genome {
	return &Genome{
		WIH:      mat.DenseCopyOf(g.WIH),
		BH:       mat.VecDenseCopyOf(g.BH),
		WHO:      mat.DenseCopyOf(g.WHO),
		BO:       mat.VecDenseCopyOf(g.BO),
		Color:    g.Color,
		TurnRate: g.TurnRate,
	}
}

// Equal reports whether two genomes carry identical genes.
func (g *Genome) Equal(o *Genome) bool {
	if g.Hidden() != o.Hidden() || g.Color != o.Color || g.TurnRate != o.TurnRate {
		return false
	}
	a, b := g.params(), o.params()
	for i := range a {
		if !floats.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Distance returns the Euclidean distance between the neural parameters of two genomes
// with the same topology.
func (g *Genome) Distance(o *Genome) float64 {
	a, b := g.params(), o.params()
	var sum float64
	for i := range a {
		d := floats.Distance(a[i], b[i], 2)
		sum += d * d
	}
	return math.Sqrt(sum)
}

// params exposes the backing storage of every neural parameter, in a fixed order.
// Matrices built by this package are contiguous, so the raw slices cover every element.
func (g *Genome) params() [4][]float64 {
	return [4][]float64{
		g.WIH.RawMatrix().Data,
		g.BH.RawVector().Data,
		g.WHO.RawMatrix().Data,
		g.BO.RawVector().Data,
	}
}

func uniform(rng *rand.Rand, amount float64) float64 {
	return (rng.Float64()*2 - 1) * amount
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
