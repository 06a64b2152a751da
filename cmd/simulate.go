package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"

	"monopoly/agent"
	"monopoly/config"
	"monopoly/engine"
	"monopoly/experiments"
	"monopoly/experiments/metrics"
	"monopoly/game"
	"monopoly/render"
	"monopoly/scorer"
	"monopoly/store"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a batch of episodes",
	Long: `Plays episodes between fixed-policy agents and an optional learned seat.
Episode records go to CSV files under the output directory and, when a store
path is set, to a SQLite database. With --render a single episode is drawn on
the terminal; press Enter to pause or resume it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd, simulateKeys)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return simulate(ctx, c)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.Int("episodes", 100, "number of episodes")
	f.Int("workers", 4, "episodes played in parallel")
	f.Uint64("seed", 1, "seed of the first episode")
	f.Int("players", game.MaxPlayers, "players per game")
	f.Int("learned-seat", 0, "player ID of the learned agent, -1 for none")
	f.Bool("training", false, "explore and record transitions")
	f.Float64("epsilon-start", 0.9, "initial exploration rate when training")
	f.Int("turn-limit", 0, "stop a game after this many turns without a winner, 0 plays until one player is left")
	f.Bool("accept-exchanges", false, "let fixed agents accept exchange offers")
	f.String("scorer-url", "", "remote scorer; the built-in linear scorer is used when empty")
	f.Uint64("scorer-seed", 1, "seed of the built-in linear scorer")
	f.String("tables", "", "board tables YAML file")
	f.String("output", "experiments", "directory for CSV records, empty to skip")
	f.String("store", "", "SQLite episode store")
	f.Bool("turn-records", false, "also write per-turn records")
	f.Bool("render", false, "draw a single episode on the terminal")
	rootCmd.AddCommand(simulateCmd)
}

var simulateKeys = map[string]string{
	"episodes":         "episodes",
	"workers":          "workers",
	"seed":             "seed",
	"players":          "players",
	"learned-seat":     "learned_seat",
	"training":         "training",
	"epsilon-start":    "epsilon_start",
	"turn-limit":       "turn_limit",
	"accept-exchanges": "accept_exchanges",
	"scorer-url":       "scorer_url",
	"scorer-seed":      "scorer_seed",
	"tables":           "tables_file",
	"output":           "output_dir",
	"store":            "store_path",
	"turn-records":     "turn_records",
	"render":           "render",
}

func simulate(ctx context.Context, c config.Config) error {
	batch := experiments.Batch{
		Name:            "simulate",
		Episodes:        c.Episodes,
		Workers:         c.Workers,
		Players:         c.Players,
		Seed:            c.Seed,
		LearnedSeat:     c.LearnedSeat,
		TurnLimit:       c.TurnLimit,
		AcceptExchanges: c.AcceptExchanges,
		TurnRecords:     c.TurnRecords,
		Options:         []agent.LearnedOption{agent.WithScoreTimeout(c.ScoreTimeout)},
	}

	if c.TablesFile != "" {
		t, err := game.LoadTablesFile(c.TablesFile)
		if err != nil {
			return err
		}
		batch.Tables = t
	}

	if c.LearnedSeat != config.NoLearnedSeat {
		if c.ScorerURL != "" {
			batch.Scorer = scorer.NewClient(c.ScorerURL)
		} else {
			batch.Scorer = scorer.NewLinear(c.ScorerSeed)
		}
		if c.Training {
			batch.Recorder = agent.NewRecorder(agent.WithEpsilonStart(c.EpsilonStart))
		}
	}

	if c.OutputDir != "" {
		w, err := metrics.NewWriter(c.OutputDir, batch.Name)
		if err != nil {
			return err
		}
		batch.Writer = w
	}

	var db *store.DB
	if c.StorePath != "" {
		var err error
		if db, err = store.New(c.StorePath); err != nil {
			return err
		}
		defer db.Close()
		batch.Store = db
	}

	if c.Render {
		gate := engine.NewGate()
		batch.Renderer = render.NewTerminal(os.Stdout)
		batch.Gate = gate
		go togglePause(gate)
	}

	sum, _, err := experiments.RunBatch(ctx, batch)
	if err != nil {
		return err
	}

	fmt.Printf("episodes: %d, unfinished: %d, mean turns: %.1f\n", sum.Episodes, sum.Unfinished, sum.MeanTurns)
	for id, wins := range sum.Wins {
		fmt.Printf("player %d wins: %d\n", id, wins)
	}
	if c.LearnedSeat != config.NoLearnedSeat {
		fmt.Printf("learned agent win rate: %.2f\n", sum.LearnedWinRate)
	}
	if batch.Recorder != nil {
		fmt.Printf("recorded transitions: %d, epsilon: %.3f\n", batch.Recorder.Len(), batch.Recorder.Epsilon())
	}
	if db != nil && c.LearnedSeat != config.NoLearnedSeat {
		rate, total, err := db.WinRate(ctx, c.LearnedSeat)
		if err != nil {
			return err
		}
		fmt.Printf("stored learned seat win rate: %.2f over %d episodes\n", rate, total)
	}
	return nil
}

// togglePause flips the gate on every line read from stdin.
func togglePause(gate *engine.Gate) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if gate.Toggle() {
			log.Info().Msg("paused, press Enter to resume")
		}
	}
}
