package scorer

import (
	"context"
	"errors"
	"fmt"

	"monopoly/action"
	"monopoly/game"
)

var ErrBadScores = errors.New("scorer: malformed scores")

// Scorer rates every action of the requested groups for a state vector.
// Implementations must be safe for concurrent use by independent games.
type Scorer interface {
	Score(ctx context.Context, state []float64, groups []action.Group) (map[action.Group][]float64, error)
}

// Check verifies that scores hold one array of the right size per requested group.
func Check(scores map[action.Group][]float64, groups []action.Group) error {
	for _, g := range groups {
		s, ok := scores[g]
		if !ok {
			return fmt.Errorf("%w: missing group %s", ErrBadScores, g)
		}
		if len(s) != g.ScoreSize() {
			return fmt.Errorf("%w: group %s has %d scores, want %d", ErrBadScores, g, len(s), g.ScoreSize())
		}
	}
	return nil
}

func checkState(state []float64) error {
	if len(state) != game.StateVectorSize {
		return fmt.Errorf("%w: state vector has %d values, want %d", ErrBadScores, len(state), game.StateVectorSize)
	}
	return nil
}
