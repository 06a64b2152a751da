package scorer

import (
	"context"
	"math/rand/v2"

	"monopoly/action"
	"monopoly/game"
)

// Linear scores actions with one fixed linear layer per group. Weights are
// drawn once from the seed and never change, so a Linear can be shared by
// games running in parallel.
type Linear struct {
	weights map[action.Group][][]float64 // [action][feature]
	bias    map[action.Group][]float64
}

func NewLinear(seed uint64) *Linear {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	l := &Linear{
		weights: make(map[action.Group][][]float64, len(action.Groups)),
		bias:    make(map[action.Group][]float64, len(action.Groups)),
	}
	for _, g := range action.Groups {
		rows := make([][]float64, g.ScoreSize())
		bias := make([]float64, g.ScoreSize())
		for i := range rows {
			rows[i] = make([]float64, game.StateVectorSize)
			for j := range rows[i] {
				rows[i][j] = (rng.Float64()*2 - 1) * 1e-3
			}
			bias[i] = rng.Float64()*2 - 1
		}
		l.weights[g] = rows
		l.bias[g] = bias
	}
	return l
}

func (l *Linear) Score(_ context.Context, state []float64, groups []action.Group) (map[action.Group][]float64, error) {
	if err := checkState(state); err != nil {
		return nil, err
	}
	out := make(map[action.Group][]float64, len(groups))
	for _, g := range groups {
		rows := l.weights[g]
		scores := make([]float64, len(rows))
		for i, row := range rows {
			v := l.bias[g][i]
			for j, w := range row {
				v += w * state[j]
			}
			scores[i] = v
		}
		out[g] = scores
	}
	return out, nil
}
