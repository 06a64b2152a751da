package engine

import (
	"context"
	"fmt"

	"monopoly/agent"
	"monopoly/experiments/metrics"
	"monopoly/game"

	"github.com/rs/zerolog/log"
)

// OutOfTurnFactor bounds the out-of-turn round robin to this many decisions
// per player in the game.
const OutOfTurnFactor = 5

// GameRound drives one game: it owns the state and asks each seat's agent for
// decisions in turn order.
type GameRound struct {
	State  *game.State
	Agents []agent.Agent // indexed by player ID

	renderer  Renderer
	gate      *Gate
	collector metrics.Collector
	turnLimit int
}

type Option func(*GameRound)

func WithRenderer(r Renderer) Option {
	return func(g *GameRound) {
		g.renderer = r
	}
}

func WithGate(gate *Gate) Option {
	return func(g *GameRound) {
		g.gate = gate
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(g *GameRound) {
		g.collector = c
	}
}

// WithTurnLimit stops the game after the given number of turns. Zero plays
// until a single player remains.
func WithTurnLimit(turns int) Option {
	return func(g *GameRound) {
		g.turnLimit = turns
	}
}

func NewGameRound(s *game.State, agents []agent.Agent, opts ...Option) *GameRound {
	if len(agents) != len(s.Players) {
		panic("number of players does not match number of agents")
	}
	g := &GameRound{
		State:     s,
		Agents:    agents,
		renderer:  noRenderer{},
		collector: metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run executes the entire game loop until a winner is found.
func (g *GameRound) Run(ctx context.Context) (Result, error) {
	s := g.State
	g.collector.Start(len(s.Players))
	log.Debug().Int("players", len(s.Players)).Msg("game started")

	for s.Winner() == game.NoOwner && (g.turnLimit == 0 || s.Turn < g.turnLimit) {
		if err := ctx.Err(); err != nil {
			return Result{Winner: game.NoOwner, Turns: s.Turn}, err
		}
		if err := g.NextTurn(); err != nil {
			return Result{Winner: game.NoOwner, Turns: s.Turn}, fmt.Errorf("turn %d: %w", s.Turn, err)
		}
	}

	res := Result{Winner: s.Winner(), Turns: s.Turn}
	if res.Winner == game.NoOwner {
		log.Debug().Int("turns", res.Turns).Msg("game stopped at the turn limit")
	} else {
		log.Debug().Int("winner", res.Winner).Int("turns", res.Turns).Msg("game over")
	}
	return res, nil
}

// Metrics completes the collector for the finished game.
func (g *GameRound) Metrics(res Result) (metrics.EpisodeMetric, []metrics.TurnMetric) {
	return g.collector.Complete(res.Winner, res.Turns, g.State.Stats), g.collector.Turns()
}

// NextTurn plays the full turn of the current player: pre-roll decisions,
// out-of-turn decisions of everybody else, then the roll and post-roll
// decisions unless the player is still jailed.
func (g *GameRound) NextTurn() error {
	s := g.State
	s.Turn++
	if g.gate != nil {
		g.gate.Wait()
	}
	g.renderer.UpdateBoard(s.View())

	order := s.InGame()
	current := s.Current % len(order)
	p := order[current]
	if p.JailTurns > 0 {
		p.JailTurns--
	}

	s.Phase = game.PreRoll
	g.resolveOffer(p)
	if _, err := g.Agents[p.ID].PreRoll(s, p); err != nil {
		return fmt.Errorf("pre-roll of player %d: %w", p.ID, err)
	}

	if err := g.outOfTurn(order, current); err != nil {
		return err
	}

	if !p.InJail() {
		s.Phase = game.PostRoll
		dice := s.Roll()
		s.Advance(p, dice.Sum())
		s.React(p)
		g.resolveOffer(p)
		if _, err := g.Agents[p.ID].PostRoll(s, p); err != nil {
			return fmt.Errorf("post-roll of player %d: %w", p.ID, err)
		}
		g.renderer.UpdateDice(dice)
		g.renderer.UpdateBoard(s.View())
	}

	// Cards may have charged other players too, so everybody in debt settles.
	g.settle(p)
	for _, other := range order {
		if other != p {
			g.settle(other)
		}
	}

	g.collector.AddTurn(metrics.TurnMetric{
		Turn:     s.Turn,
		Player:   p.ID,
		Position: p.Position,
		Cash:     p.Cash,
		NetWorth: game.NetWorth(s.Board, p),
		Jailed:   p.InJail(),
	})

	g.advance(order, current)
	return nil
}

// outOfTurn lets the other players act in turn order, starting after the
// current player, until a full round of them skips or the cap is reached.
func (g *GameRound) outOfTurn(order []*game.Player, current int) error {
	s := g.State
	s.Phase = game.OutOfTurn
	others := len(order) - 1
	if others == 0 {
		return nil
	}

	limit := OutOfTurnFactor * len(order)
	skips := 0
	next := current
	for count := 0; skips < others && count < limit; count++ {
		next = (next + 1) % len(order)
		if next == current {
			next = (next + 1) % len(order)
		}
		q := order[next]
		g.resolveOffer(q)
		code, err := g.Agents[q.ID].OutOfTurn(s, q)
		if err != nil {
			return fmt.Errorf("out-of-turn of player %d: %w", q.ID, err)
		}
		if code == agent.Skipped {
			skips++
		} else {
			skips = 0
		}
	}
	return nil
}

// resolveOffer lets the player's agent accept or reject its pending offer.
func (g *GameRound) resolveOffer(p *game.Player) {
	s := g.State
	o := p.PendingOffer
	if o == nil {
		return
	}
	if !g.Agents[p.ID].ConsiderOffer(s, p, o) {
		s.Reject(p)
		return
	}
	if err := s.ExecuteOffer(p); err != nil {
		log.Debug().Err(err).Int("player", p.ID).Int("from", o.From).Msg("accepted offer no longer valid")
	}
}

// settle runs recovery for a player in debt and bankrupts it on failure.
func (g *GameRound) settle(p *game.Player) {
	if p.Bankrupt || p.Cash >= 0 {
		return
	}
	if g.Agents[p.ID].HandleNegativeBalance(g.State, p) {
		return
	}
	g.State.DeclareBankruptcy(p)
	g.collector.AddBankruptcy()
}

// advance moves the turn to the next player still in the game after the
// current one, in the order the turn started with.
func (g *GameRound) advance(order []*game.Player, current int) {
	s := g.State
	var next *game.Player
	for k := 1; k <= len(order); k++ {
		if q := order[(current+k)%len(order)]; !q.Bankrupt {
			next = q
			break
		}
	}
	if next == nil {
		s.Current = 0
		return
	}
	for i, q := range s.InGame() {
		if q == next {
			s.Current = i
			return
		}
	}
}
