package engine

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"monopoly/agent"
	"monopoly/experiments/metrics"
	"monopoly/game"
	"monopoly/scorer"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

// scripted returns canned out-of-turn codes and records what it was asked.
type scripted struct {
	codes    []agent.Code
	fallback agent.Code
	pre      func(*game.State, *game.Player)
	accept   bool
	recovers bool

	outOfTurn int
	postRoll  int
}

func (a *scripted) PreRoll(s *game.State, p *game.Player) (agent.Code, error) {
	if a.pre != nil {
		a.pre(s, p)
	}
	return agent.Concluded, nil
}

func (a *scripted) OutOfTurn(*game.State, *game.Player) (agent.Code, error) {
	code := a.fallback
	if a.outOfTurn < len(a.codes) {
		code = a.codes[a.outOfTurn]
	}
	a.outOfTurn++
	return code, nil
}

func (a *scripted) PostRoll(*game.State, *game.Player) (agent.Code, error) {
	a.postRoll++
	return agent.Concluded, nil
}

func (a *scripted) ConsiderOffer(*game.State, *game.Player, *game.Offer) bool { return a.accept }
func (a *scripted) HandleNegativeBalance(*game.State, *game.Player) bool     { return a.recovers }

func skippers(n int) ([]agent.Agent, []*scripted) {
	agents := make([]agent.Agent, n)
	raw := make([]*scripted, n)
	for i := range agents {
		raw[i] = &scripted{fallback: agent.Skipped}
		agents[i] = raw[i]
	}
	return agents, raw
}

func jailed(s *game.State, ids ...int) {
	for _, id := range ids {
		s.Player(id).JailTurns = s.Rules.JailTurns()
	}
}

type recordingRenderer struct {
	boards int
	dice   []game.Dice
}

func (r *recordingRenderer) UpdateBoard(game.BoardView) { r.boards++ }
func (r *recordingRenderer) UpdateDice(d game.Dice)     { r.dice = append(r.dice, d) }

func TestOutOfTurn(t *testing.T) {
	t.Run("one round of skips ends the phase", func(t *testing.T) {
		s := game.NewStandardState(3, 1)
		jailed(s, 0)
		agents, raw := skippers(3)

		require.NoError(t, NewGameRound(s, agents).NextTurn())
		require.Equal(t, 0, raw[0].outOfTurn, "the current player has no out-of-turn decision")
		require.Equal(t, 1, raw[1].outOfTurn)
		require.Equal(t, 1, raw[2].outOfTurn)
	})

	t.Run("an action restarts the round", func(t *testing.T) {
		s := game.NewStandardState(3, 1)
		jailed(s, 0)
		agents, raw := skippers(3)
		raw[1].codes = []agent.Code{agent.Acted}

		require.NoError(t, NewGameRound(s, agents).NextTurn())
		require.Equal(t, 2, raw[1].outOfTurn)
		require.Equal(t, 1, raw[2].outOfTurn)
	})

	t.Run("busy players hit the cap", func(t *testing.T) {
		s := game.NewStandardState(3, 1)
		jailed(s, 0)
		agents, raw := skippers(3)
		raw[1].fallback = agent.Acted
		raw[2].fallback = agent.Acted

		require.NoError(t, NewGameRound(s, agents).NextTurn())
		require.Equal(t, OutOfTurnFactor*3, raw[1].outOfTurn+raw[2].outOfTurn)
	})
}

func TestNextTurn(t *testing.T) {
	t.Run("jailed player does not roll", func(t *testing.T) {
		s := game.NewStandardState(2, 1)
		jailed(s, 0)
		agents, raw := skippers(2)
		r := &recordingRenderer{}

		require.NoError(t, NewGameRound(s, agents, WithRenderer(r)).NextTurn())
		require.Equal(t, 0, s.Player(0).Position)
		require.Equal(t, s.Rules.JailTurns()-1, s.Player(0).JailTurns)
		require.Zero(t, raw[0].postRoll)
		require.Empty(t, r.dice)
		require.Equal(t, 1, r.boards)
		require.Equal(t, 1, s.Turn)
		require.Equal(t, 1, s.CurrentPlayer().ID)
	})

	t.Run("free player rolls and moves", func(t *testing.T) {
		s := game.NewStandardState(2, 1)
		agents, raw := skippers(2)
		r := &recordingRenderer{}

		require.NoError(t, NewGameRound(s, agents, WithRenderer(r)).NextTurn())
		require.Len(t, r.dice, 1)
		require.Equal(t, 1, raw[0].postRoll)
		require.Equal(t, 2, r.boards)
		require.GreaterOrEqual(t, r.dice[0].Sum(), 2)
		require.LessOrEqual(t, r.dice[0].Sum(), 12)
	})

	t.Run("paying the fine in pre-roll allows the roll", func(t *testing.T) {
		s := game.NewStandardState(2, 1)
		jailed(s, 0)
		agents, raw := skippers(2)
		raw[0].pre = func(s *game.State, p *game.Player) {
			require.NoError(t, s.PayJailFine(p))
		}

		require.NoError(t, NewGameRound(s, agents).NextTurn())
		require.Equal(t, 1, raw[0].postRoll)
	})

	t.Run("pending offer is resolved before deciding", func(t *testing.T) {
		s := game.NewStandardState(2, 1)
		jailed(s, 0)
		s.Player(1).AddProperty(s.Board, 39)
		o, err := game.NewOffer(0, 1, game.NoProperty, 39, 700, 0)
		require.NoError(t, err)
		require.NoError(t, s.Propose(o))
		agents, raw := skippers(2)
		raw[1].accept = true

		require.NoError(t, NewGameRound(s, agents).NextTurn())
		require.True(t, s.Player(0).Owns(39))
		require.Equal(t, 800, s.Player(0).Cash)
		require.Equal(t, 2200, s.Player(1).Cash)
		require.Nil(t, s.Player(1).PendingOffer)
	})

	t.Run("rejected offer is discarded", func(t *testing.T) {
		s := game.NewStandardState(2, 1)
		jailed(s, 0)
		s.Player(1).AddProperty(s.Board, 39)
		o, err := game.NewOffer(0, 1, game.NoProperty, 39, 700, 0)
		require.NoError(t, err)
		require.NoError(t, s.Propose(o))
		agents, _ := skippers(2)

		require.NoError(t, NewGameRound(s, agents).NextTurn())
		require.True(t, s.Player(1).Owns(39))
		require.Nil(t, s.Player(1).PendingOffer)
		require.Equal(t, 1, s.Stats.Rejected)
	})
}

func TestBankruptcy(t *testing.T) {
	broke := func(_ *game.State, p *game.Player) { p.Cash = -100 }

	t.Run("index stays on the next player", func(t *testing.T) {
		s := game.NewStandardState(3, 1)
		jailed(s, 0)
		agents, raw := skippers(3)
		raw[0].pre = broke
		c := metrics.NewCollector()

		g := NewGameRound(s, agents, WithCollector(c))
		c.Start(3)
		require.NoError(t, g.NextTurn())
		require.True(t, s.Player(0).Bankrupt)
		require.Equal(t, 0, s.Current)
		require.Equal(t, 1, s.CurrentPlayer().ID)

		m, turns := g.Metrics(Result{Winner: game.NoOwner, Turns: s.Turn})
		require.Equal(t, 1, m.Bankruptcies)
		require.Len(t, turns, 1)
	})

	t.Run("last player wraps to the first", func(t *testing.T) {
		s := game.NewStandardState(3, 1)
		s.Current = 2
		jailed(s, 2)
		agents, raw := skippers(3)
		raw[2].pre = broke

		require.NoError(t, NewGameRound(s, agents).NextTurn())
		require.True(t, s.Player(2).Bankrupt)
		require.Equal(t, 0, s.Current)
		require.Equal(t, 0, s.CurrentPlayer().ID)
	})

	t.Run("recovered player keeps playing", func(t *testing.T) {
		s := game.NewStandardState(2, 1)
		jailed(s, 0)
		agents, raw := skippers(2)
		raw[0].pre = broke
		raw[0].recovers = true

		require.NoError(t, NewGameRound(s, agents).NextTurn())
		require.False(t, s.Player(0).Bankrupt)
		require.Equal(t, 1, s.CurrentPlayer().ID)
	})

	t.Run("last bankruptcy ends the game", func(t *testing.T) {
		s := game.NewStandardState(2, 1)
		jailed(s, 0)
		agents, raw := skippers(2)
		raw[0].pre = broke

		res, err := NewGameRound(s, agents).Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, Result{Winner: 1, Turns: 1}, res)
	})
}

func TestGate(t *testing.T) {
	s := game.NewStandardState(2, 1)
	jailed(s, 0)
	agents, _ := skippers(2)
	gate := NewGate()
	gate.Pause()
	require.True(t, gate.Paused())

	done := make(chan error, 1)
	go func() { done <- NewGameRound(s, agents, WithGate(gate)).NextTurn() }()

	select {
	case <-done:
		t.Fatal("turn ran while the gate was paused")
	case <-time.After(50 * time.Millisecond):
	}

	require.False(t, gate.Toggle())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("turn did not resume")
	}
}

func TestRun(t *testing.T) {
	t.Run("fixed agents", func(t *testing.T) {
		s := game.NewStandardState(2, 3)
		agents := []agent.Agent{agent.NewFixedPolicy(), agent.NewFixedPolicy()}

		res, err := NewGameRound(s, agents, WithTurnLimit(3000)).Run(context.Background())
		require.NoError(t, err)
		require.LessOrEqual(t, res.Turns, 3000)
		if res.Winner != game.NoOwner {
			require.False(t, s.Player(res.Winner).Bankrupt)
			require.Len(t, s.InGame(), 1)
		}
		for _, p := range s.InGame() {
			require.GreaterOrEqual(t, p.Cash, 0, "players in the game never end a turn in debt")
		}
	})

	t.Run("learned seat", func(t *testing.T) {
		s := game.NewStandardState(4, 5)
		rec := agent.NewRecorder()
		agents := []agent.Agent{
			agent.NewTrainingAgent(scorer.NewLinear(1), rec, 2),
			agent.NewFixedPolicy(),
			agent.NewFixedPolicy(),
			agent.NewFixedPolicy(),
		}

		res, err := NewGameRound(s, agents, WithTurnLimit(200)).Run(context.Background())
		require.NoError(t, err)
		require.LessOrEqual(t, res.Turns, 200)
		require.Positive(t, rec.Len(), "the learned seat records its decisions")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		agents, _ := skippers(2)

		_, err := NewGameRound(game.NewStandardState(2, 1), agents).Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("agent count must match", func(t *testing.T) {
		agents, _ := skippers(3)
		require.Panics(t, func() { NewGameRound(game.NewStandardState(2, 1), agents) })
	})
}

func TestResolveOffer(t *testing.T) {
	var buf bytes.Buffer
	prev, level := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(level)
	})

	s := game.NewStandardState(2, 1)
	s.Player(0).AddProperty(s.Board, 39)
	o, err := game.NewOffer(0, 1, 39, game.NoProperty, 0, 100)
	require.NoError(t, err)
	require.NoError(t, s.Propose(o))
	g := NewGameRound(s, []agent.Agent{&scripted{}, &scripted{accept: true}})

	g.resolveOffer(s.Player(1))

	require.True(t, s.Player(1).Owns(39))
	require.Nil(t, s.Player(1).PendingOffer)
	require.Equal(t, 1, strings.Count(buf.String(), "offer executed"), "An executed offer should be logged once")
}
