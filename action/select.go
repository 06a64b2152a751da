package action

import (
	"errors"
	"math"
	"math/rand/v2"
)

var ErrNoLegalAction = errors.New("action: no legal action in any group")

// Choice is a selected action: the group, its index in the group's mask and
// the score that won.
type Choice struct {
	Group Group
	Index int
	Score float64
}

// Select picks the best legal action across the scored groups. With
// probability epsilon it instead picks a group uniformly among those with a
// legal action and takes that group's best. Exchange scores may be given in
// either the raw or the expanded layout.
func Select(scores map[Group][]float64, masks map[Group][]bool, epsilon float64, rng *rand.Rand) (Choice, error) {
	best := []Choice{}
	for _, g := range Groups {
		s, ok := scores[g]
		if !ok {
			continue
		}
		if g == ExchangeTrade && len(s) == g.ScoreSize() {
			s = ExpandExchange(s)
		}
		restricted := Restrict(s, masks[g])
		idx := argmax(restricted)
		if math.IsInf(restricted[idx], -1) {
			continue
		}
		best = append(best, Choice{Group: g, Index: idx, Score: restricted[idx]})
	}
	if len(best) == 0 {
		return Choice{}, ErrNoLegalAction
	}

	if epsilon > 0 && rng.Float64() < epsilon {
		return best[rng.IntN(len(best))], nil
	}
	top := best[0]
	for _, c := range best[1:] {
		if c.Score > top.Score {
			top = c
		}
	}
	return top, nil
}

// argmax returns the first index holding the largest value.
func argmax(values []float64) int {
	idx := 0
	for i, v := range values {
		if v > values[idx] {
			idx = i
		}
	}
	return idx
}

// ScoreIndex converts a mask index to the position of its score in the
// policy's output, which differs only for exchanges.
func (c Choice) ScoreIndex() int {
	if c.Group != ExchangeTrade {
		return c.Index
	}
	k := c.Index / (Properties * Properties)
	i := c.Index / Properties % Properties
	j := c.Index % Properties
	return RawExchangeIndex(k, i, j)
}
