package agent

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"monopoly/action"
	"monopoly/game"
	"monopoly/scorer"
)

const DefaultScoreTimeout = 5 * time.Second

// Learned takes one scored action per decision point. Offers, negative
// balances and the post-roll purchase fall back to the fixed rules.
type Learned struct {
	FixedPolicy
	scorer   scorer.Scorer
	recorder *Recorder
	rng      *rand.Rand
	timeout  time.Duration
}

type LearnedOption func(*Learned)

func WithScoreTimeout(d time.Duration) LearnedOption {
	return func(l *Learned) {
		l.timeout = d
	}
}

// NewEvaluationAgent returns a greedy agent for actual game play.
func NewEvaluationAgent(sc scorer.Scorer, seed uint64, opts ...LearnedOption) *Learned {
	return newLearned(sc, nil, seed, opts)
}

// NewTrainingAgent returns an exploring agent that records its transitions.
func NewTrainingAgent(sc scorer.Scorer, rec *Recorder, seed uint64, opts ...LearnedOption) *Learned {
	if rec == nil {
		panic("training agent needs a recorder")
	}
	return newLearned(sc, rec, seed, opts)
}

func newLearned(sc scorer.Scorer, rec *Recorder, seed uint64, opts []LearnedOption) *Learned {
	l := &Learned{
		scorer:   sc,
		recorder: rec,
		rng:      rand.New(rand.NewPCG(seed, seed>>1|1)),
		timeout:  DefaultScoreTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Learned) PreRoll(s *game.State, p *game.Player) (Code, error) {
	return l.decide(s, p, game.PreRoll)
}

func (l *Learned) OutOfTurn(s *game.State, p *game.Player) (Code, error) {
	return l.decide(s, p, game.OutOfTurn)
}

func (l *Learned) PostRoll(s *game.State, p *game.Player) (Code, error) {
	if wantsToBuy(s, p) {
		if err := s.Buy(p, p.Position); err != nil {
			return Concluded, err
		}
	}
	return l.decide(s, p, game.PostRoll)
}

func (l *Learned) epsilon() float64 {
	if l.recorder == nil {
		return 0
	}
	return l.recorder.Epsilon()
}

func (l *Learned) decide(s *game.State, p *game.Player, phase game.Phase) (Code, error) {
	groups := action.PhaseGroups(phase)
	before := game.StateVector(s)

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	scores, err := l.scorer.Score(ctx, before, groups)
	if err != nil {
		return Concluded, fmt.Errorf("failed to score %s actions: %w", phase, err)
	}

	mask := action.NewMask(s, p)
	masks := make(map[action.Group][]bool, len(groups))
	for _, g := range groups {
		masks[g] = mask.Group(g)
	}
	choice, err := action.Select(scores, masks, l.epsilon(), l.rng)
	if err != nil {
		return Concluded, fmt.Errorf("player %d in %s: %w", p.ID, phase, err)
	}
	if err := action.Perform(s, p, choice); err != nil {
		return Concluded, fmt.Errorf("failed to perform %s: %w", choice.Group, err)
	}

	if l.recorder != nil {
		l.recorder.Add(Transition{
			State:     before,
			Group:     choice.Group,
			Index:     choice.ScoreIndex(),
			Reward:    game.Reward(s, p),
			NextState: game.StateVector(s),
		})
		l.recorder.Step()
	}

	switch choice.Group {
	case action.SkipTurn:
		return Skipped, nil
	case action.ConcludeActions:
		return Concluded, nil
	}
	return Acted, nil
}
