package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	require.NoError(t, Bind(v, ""))

	c, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, Default(), c)
	require.Equal(t, zerolog.InfoLevel, c.Level())
}

func TestOverrides(t *testing.T) {
	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "monopoly.yaml")
		body := "episodes: 12\nplayers: 3\nlearned_seat: 2\nscore_timeout: 250ms\nlog_level: debug\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		v := viper.New()
		require.NoError(t, Bind(v, path))
		c, err := Load(v)
		require.NoError(t, err)
		require.Equal(t, 12, c.Episodes)
		require.Equal(t, 3, c.Players)
		require.Equal(t, 2, c.LearnedSeat)
		require.Equal(t, 250*time.Millisecond, c.ScoreTimeout)
		require.Equal(t, zerolog.DebugLevel, c.Level())
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("MONOPOLY_WORKERS", "9")
		t.Setenv("MONOPOLY_TURN_LIMIT", "250")

		v := viper.New()
		require.NoError(t, Bind(v, ""))
		c, err := Load(v)
		require.NoError(t, err)
		require.Equal(t, 9, c.Workers)
		require.Equal(t, 250, c.TurnLimit)
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, Bind(viper.New(), filepath.Join(t.TempDir(), "absent.yaml")))
	})
}

func TestValidate(t *testing.T) {
	invalid := map[string]func(*Config){
		"too many players":      func(c *Config) { c.Players = 5 },
		"one player":            func(c *Config) { c.Players = 1 },
		"no episodes":           func(c *Config) { c.Episodes = 0 },
		"no workers":            func(c *Config) { c.Workers = 0 },
		"seat outside table":    func(c *Config) { c.LearnedSeat = 4 },
		"training without seat": func(c *Config) { c.LearnedSeat, c.Training = NoLearnedSeat, true },
		"epsilon above one":     func(c *Config) { c.EpsilonStart = 1.5 },
		"negative turn limit":   func(c *Config) { c.TurnLimit = -1 },
		"render many episodes":  func(c *Config) { c.Render = true },
		"unknown log level":     func(c *Config) { c.LogLevel = "loud" },
		"zero score timeout":    func(c *Config) { c.ScoreTimeout = 0 },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)
			require.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}

	c := Default()
	c.LearnedSeat = NoLearnedSeat
	c.Render, c.Episodes = true, 1
	require.NoError(t, c.Validate())
}
