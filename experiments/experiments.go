package experiments

import (
	"context"
	"fmt"

	"monopoly/agent"
	"monopoly/engine"
	"monopoly/experiments/metrics"
	"monopoly/game"
	"monopoly/scorer"
	"monopoly/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Batch describes a set of episodes played with the same table setup. Each
// episode gets its own board, state and RNG; only the scorer, the recorder
// and the outputs are shared.
type Batch struct {
	Name            string
	Episodes        int
	Workers         int
	Players         int
	Seed            uint64 // episode i plays with Seed+i
	LearnedSeat     int    // player ID of the learned agent, -1 for none
	TurnLimit       int
	AcceptExchanges bool

	Tables   *game.Tables
	Rules    game.Rules
	Scorer   scorer.Scorer   // required with a learned seat
	Recorder *agent.Recorder // set to train the learned seat
	Options  []agent.LearnedOption

	Writer      *metrics.Writer // optional CSV output
	TurnRecords bool            // also write per-turn records
	Store       *store.DB       // optional episode store

	Renderer engine.Renderer // single episode only
	Gate     *engine.Gate
}

// Summary aggregates a finished batch.
type Summary struct {
	Episodes       int
	Wins           []int // per player ID
	Unfinished     int   // episodes stopped by the turn limit
	MeanTurns      float64
	LearnedWinRate float64
}

func (b *Batch) validate() error {
	switch {
	case b.Episodes < 1:
		return fmt.Errorf("batch needs at least one episode")
	case b.Workers < 1:
		return fmt.Errorf("batch needs at least one worker")
	case b.Players < 2 || b.Players > game.MaxPlayers:
		return fmt.Errorf("batch needs between 2 and %d players, got %d", game.MaxPlayers, b.Players)
	case b.LearnedSeat >= b.Players:
		return fmt.Errorf("learned seat %d outside the table", b.LearnedSeat)
	case b.LearnedSeat >= 0 && b.Scorer == nil:
		return fmt.Errorf("learned seat needs a scorer")
	case (b.Renderer != nil || b.Gate != nil) && b.Episodes > 1:
		return fmt.Errorf("interactive play runs a single episode")
	}
	return nil
}

// RunBatch plays the batch on a bounded pool of workers and writes the
// configured outputs. The records are ordered by episode index.
func RunBatch(ctx context.Context, b Batch) (Summary, []metrics.EpisodeRecord, error) {
	if err := b.validate(); err != nil {
		return Summary{}, nil, err
	}
	if b.Tables == nil {
		b.Tables = game.StandardTables()
	}
	if b.Rules == nil {
		b.Rules = game.NewStandardRules()
	}

	log.Info().Msgf("starting %s batch of %d episodes on %d workers...", b.Name, b.Episodes, b.Workers)

	records := make([]metrics.EpisodeRecord, b.Episodes)
	turns := make([][]metrics.TurnRecord, b.Episodes)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Workers)
	for i := 0; i < b.Episodes; i++ {
		g.Go(func() error {
			rec, tr, err := b.runEpisode(gctx, i)
			if err != nil {
				return fmt.Errorf("episode %d: %w", i, err)
			}
			records[i], turns[i] = rec, tr
			log.Info().Msgf("completed episode %d of %d with winner %d after %d turns", i+1, b.Episodes, rec.Winner, rec.TotalTurns)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, nil, err
	}

	log.Info().Msgf("completed %s batch", b.Name)

	if err := b.write(records, turns); err != nil {
		return Summary{}, nil, err
	}
	return summarize(records, b.Players, b.LearnedSeat), records, nil
}

func (b *Batch) runEpisode(ctx context.Context, i int) (metrics.EpisodeRecord, []metrics.TurnRecord, error) {
	seed := b.Seed + uint64(i)
	board, err := game.NewBoard(b.Tables)
	if err != nil {
		return metrics.EpisodeRecord{}, nil, err
	}
	s := game.NewState(board, b.Rules, b.Players, seed)

	c := metrics.NewCollector()
	opts := []engine.Option{engine.WithCollector(c), engine.WithTurnLimit(b.TurnLimit)}
	if b.Renderer != nil {
		opts = append(opts, engine.WithRenderer(b.Renderer))
	}
	if b.Gate != nil {
		opts = append(opts, engine.WithGate(b.Gate))
	}
	round := engine.NewGameRound(s, b.agents(seed), opts...)

	res, err := round.Run(ctx)
	if err != nil {
		return metrics.EpisodeRecord{}, nil, err
	}
	em, tm := round.Metrics(res)

	rec := metrics.EpisodeRecord{
		ID:            uuid.NewString(),
		Seed:          seed,
		LearnedSeat:   b.LearnedSeat,
		EpisodeMetric: em,
	}
	if b.Store != nil {
		if err := b.Store.SaveEpisode(ctx, rec); err != nil {
			return metrics.EpisodeRecord{}, nil, err
		}
	}

	var turns []metrics.TurnRecord
	if b.TurnRecords {
		turns = make([]metrics.TurnRecord, 0, len(tm))
		for _, m := range tm {
			turns = append(turns, metrics.TurnRecord{Episode: rec.ID, TurnMetric: m})
		}
	}
	return rec, turns, nil
}

func (b *Batch) agents(seed uint64) []agent.Agent {
	agents := make([]agent.Agent, b.Players)
	for id := range agents {
		if id != b.LearnedSeat {
			agents[id] = &agent.FixedPolicy{AcceptExchanges: b.AcceptExchanges}
			continue
		}
		var l *agent.Learned
		if b.Recorder != nil {
			l = agent.NewTrainingAgent(b.Scorer, b.Recorder, seed, b.Options...)
		} else {
			l = agent.NewEvaluationAgent(b.Scorer, seed, b.Options...)
		}
		l.AcceptExchanges = b.AcceptExchanges
		agents[id] = l
	}
	return agents
}

func (b *Batch) write(records []metrics.EpisodeRecord, turns [][]metrics.TurnRecord) error {
	if b.Writer == nil {
		return nil
	}
	if err := b.Writer.WriteEpisodeRecords(records); err != nil {
		return err
	}
	log.Info().Msgf("stored episode records in %s", b.Writer.Dir())
	if !b.TurnRecords {
		return nil
	}
	all := []metrics.TurnRecord{}
	for _, tr := range turns {
		all = append(all, tr...)
	}
	if err := b.Writer.WriteTurnRecords(all); err != nil {
		return err
	}
	log.Info().Msg("stored turn records")
	return nil
}

func summarize(records []metrics.EpisodeRecord, players, learnedSeat int) Summary {
	s := Summary{Episodes: len(records), Wins: make([]int, players)}
	total := 0
	for _, r := range records {
		total += r.TotalTurns
		if r.Winner == game.NoOwner {
			s.Unfinished++
			continue
		}
		s.Wins[r.Winner]++
	}
	if len(records) > 0 {
		s.MeanTurns = float64(total) / float64(len(records))
		if learnedSeat >= 0 {
			s.LearnedWinRate = float64(s.Wins[learnedSeat]) / float64(len(records))
		}
	}
	return s
}
