// Package config holds the simulation settings shared by the commands.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"monopoly/game"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("config: invalid settings")

const EnvPrefix = "MONOPOLY"

// NoLearnedSeat puts fixed agents in every seat.
const NoLearnedSeat = -1

type Config struct {
	Episodes        int           `mapstructure:"episodes"`
	Workers         int           `mapstructure:"workers"`
	Seed            uint64        `mapstructure:"seed"`
	Players         int           `mapstructure:"players"`
	LearnedSeat     int           `mapstructure:"learned_seat"`
	Training        bool          `mapstructure:"training"`
	EpsilonStart    float64       `mapstructure:"epsilon_start"`
	TurnLimit       int           `mapstructure:"turn_limit"`
	AcceptExchanges bool          `mapstructure:"accept_exchanges"`
	ScorerURL       string        `mapstructure:"scorer_url"`
	ScorerSeed      uint64        `mapstructure:"scorer_seed"`
	ScoreTimeout    time.Duration `mapstructure:"score_timeout"`
	TablesFile      string        `mapstructure:"tables_file"`
	OutputDir       string        `mapstructure:"output_dir"`
	StorePath       string        `mapstructure:"store_path"`
	TurnRecords     bool          `mapstructure:"turn_records"`
	LogLevel        string        `mapstructure:"log_level"`
	Render          bool          `mapstructure:"render"`
	Listen          string        `mapstructure:"listen"`
}

func Default() Config {
	return Config{
		Episodes:     100,
		Workers:      4,
		Seed:         1,
		Players:      game.MaxPlayers,
		LearnedSeat:  0,
		EpsilonStart: 0.9,
		ScorerSeed:   1,
		ScoreTimeout: 5 * time.Second,
		OutputDir:    "experiments",
		LogLevel:     "info",
		Listen:       ":8080",
	}
}

// SetDefaults registers every key with its default so that environment
// variables and config files can override it.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("episodes", d.Episodes)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("players", d.Players)
	v.SetDefault("learned_seat", d.LearnedSeat)
	v.SetDefault("training", d.Training)
	v.SetDefault("epsilon_start", d.EpsilonStart)
	v.SetDefault("turn_limit", d.TurnLimit)
	v.SetDefault("accept_exchanges", d.AcceptExchanges)
	v.SetDefault("scorer_url", d.ScorerURL)
	v.SetDefault("scorer_seed", d.ScorerSeed)
	v.SetDefault("score_timeout", d.ScoreTimeout)
	v.SetDefault("tables_file", d.TablesFile)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("store_path", d.StorePath)
	v.SetDefault("turn_records", d.TurnRecords)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("render", d.Render)
	v.SetDefault("listen", d.Listen)
}

// Bind prepares v: defaults, MONOPOLY_ environment variables and the optional
// config file.
func Bind(v *viper.Viper, file string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if file == "" {
		return nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", file, err)
	}
	return nil
}

func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("failed to decode config: %w", err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Players < 2 || c.Players > game.MaxPlayers:
		return fmt.Errorf("%w: players must be between 2 and %d, got %d", ErrInvalid, game.MaxPlayers, c.Players)
	case c.Episodes < 1:
		return fmt.Errorf("%w: episodes must be positive, got %d", ErrInvalid, c.Episodes)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalid, c.Workers)
	case c.LearnedSeat < NoLearnedSeat || c.LearnedSeat >= c.Players:
		return fmt.Errorf("%w: learned seat %d outside the table of %d", ErrInvalid, c.LearnedSeat, c.Players)
	case c.Training && c.LearnedSeat == NoLearnedSeat:
		return fmt.Errorf("%w: training needs a learned seat", ErrInvalid)
	case c.EpsilonStart < 0 || c.EpsilonStart > 1:
		return fmt.Errorf("%w: epsilon start must be within [0, 1], got %g", ErrInvalid, c.EpsilonStart)
	case c.TurnLimit < 0:
		return fmt.Errorf("%w: turn limit must not be negative, got %d", ErrInvalid, c.TurnLimit)
	case c.Render && c.Episodes > 1:
		return fmt.Errorf("%w: rendering runs a single episode, got %d", ErrInvalid, c.Episodes)
	case c.ScoreTimeout <= 0:
		return fmt.Errorf("%w: score timeout must be positive", ErrInvalid)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}
