package neural

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// GenomeWeights holds flattened genes for JSON serialization.
// Matrices are stored row-major.
type GenomeWeights struct {
	Hidden   int        `json:"hidden"`
	WIH      []float64  `json:"w_ih"` // [NumInputs * Hidden]
	BH       []float64  `json:"b_h"`  // [Hidden]
	WHO      []float64  `json:"w_ho"` // [Hidden * NumOutputs]
	BO       []float64  `json:"b_o"`  // [NumOutputs]
	Color    [3]float64 `json:"color"`
	TurnRate float64    `json:"turn_rate"`
}

// MarshalWeights flattens the genome for serialization.
func (g *Genome) MarshalWeights() GenomeWeights {
	p := g.params()
	gw := GenomeWeights{
		Hidden:   g.Hidden(),
		WIH:      append([]float64(nil), p[0]...),
		BH:       append([]float64(nil), p[1]...),
		WHO:      append([]float64(nil), p[2]...),
		BO:       append([]float64(nil), p[3]...),
		Color:    g.Color,
		TurnRate: g.TurnRate,
	}
	return gw
}

// UnmarshalWeights rebuilds a genome and checks it against the expected hidden width.
// Any size disagreement is an error; nothing is truncated or padded.
func UnmarshalWeights(gw GenomeWeights, hidden int) (*Genome, error) {
	if gw.Hidden != hidden {
		return nil, fmt.Errorf("%w: stored hidden width %d, want %d", ErrDimension, gw.Hidden, hidden)
	}
	checks := []struct {
		name string
		got  int
		want int
	}{
		{"w_ih", len(gw.WIH), NumInputs * hidden},
		{"b_h", len(gw.BH), hidden},
		{"w_ho", len(gw.WHO), hidden * NumOutputs},
		{"b_o", len(gw.BO), NumOutputs},
	}
	for _, c := range checks {
		if c.got != c.want {
			return nil, fmt.Errorf("%w: %s has %d values, want %d", ErrDimension, c.name, c.got, c.want)
		}
	}

	g := &Genome{
		WIH:      mat.NewDense(NumInputs, hidden, append([]float64(nil), gw.WIH...)),
		BH:       mat.NewVecDense(hidden, append([]float64(nil), gw.BH...)),
		WHO:      mat.NewDense(hidden, NumOutputs, append([]float64(nil), gw.WHO...)),
		BO:       mat.NewVecDense(NumOutputs, append([]float64(nil), gw.BO...)),
		Color:    gw.Color,
		TurnRate: gw.TurnRate,
	}
	return g, nil
}
