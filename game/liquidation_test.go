package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentifyMortgages(t *testing.T) {
	t.Run("cheapest prefix covering the need", func(t *testing.T) {
		s := newTestState()
		give(s, 0, 39, 1, 5)

		ids, cash := IdentifyMortgages(s, s.Player(0), 100)

		require.Equal(t, []int{1, 5}, ids)
		require.Equal(t, 130, cash)
	})

	t.Run("everything when short", func(t *testing.T) {
		s := newTestState()
		give(s, 0, 39, 1)
		s.Board.Field(39).Purchase.Mortgaged = true

		ids, cash := IdentifyMortgages(s, s.Player(0), 1000)

		require.Equal(t, []int{1}, ids, "Mortgaged fields should not be selected")
		require.Equal(t, 30, cash)
	})

	t.Run("unbuilt sibling of a built field", func(t *testing.T) {
		s := newTestState()
		give(s, 0, 1, 3)
		s.Board.Field(1).Estate.Level = 1

		ids, cash := IdentifyMortgages(s, s.Player(0), 20)

		require.Equal(t, []int{3}, ids)
		require.Equal(t, 30, cash)
	})

	t.Run("no need", func(t *testing.T) {
		s := newTestState()
		give(s, 0, 39)

		ids, cash := IdentifyMortgages(s, s.Player(0), 0)

		require.Empty(t, ids)
		require.Zero(t, cash)
	})
}

func TestIdentifySalesToBank(t *testing.T) {
	s := newTestState()
	give(s, 0, 1, 3)
	s.Board.Field(1).Estate.Level = 2
	s.Board.Field(3).Estate.Level = 2

	ids, cash := IdentifySalesToBank(s, s.Player(0), 60)

	require.Equal(t, []int{1, 3, 1}, ids, "Should sell top levels first across the group")
	require.Equal(t, 75, cash)
}

func TestRecoverBalance(t *testing.T) {
	t.Run("sells buildings then mortgages the freed fields", func(t *testing.T) {
		s := newTestState()
		give(s, 0, 1, 3)
		s.Board.Field(1).Estate.Level = 1
		s.Board.Field(3).Estate.Level = 1
		p := s.Player(0)
		p.Cash = -100

		require.True(t, s.RecoverBalance(p))

		require.Equal(t, 10, p.Cash)
		require.Zero(t, s.Board.Field(1).Level())
		require.True(t, s.Board.Field(1).Mortgaged())
		require.True(t, s.Board.Field(3).Mortgaged())
	})

	t.Run("mortgages alone", func(t *testing.T) {
		s := newTestState()
		give(s, 0, 39, 1)
		p := s.Player(0)
		p.Cash = -20

		require.True(t, s.RecoverBalance(p))

		require.Equal(t, 10, p.Cash)
		require.False(t, s.Board.Field(39).Mortgaged(), "Should mortgage no more than needed")
	})

	t.Run("stops after the second mortgage phase", func(t *testing.T) {
		s := newTestState()
		give(s, 0, 1, 3)
		s.Board.Field(1).Estate.Level = 4
		s.Board.Field(3).Estate.Level = 4
		p := s.Player(0)
		p.Cash = -1000

		require.False(t, s.RecoverBalance(p))

		require.Zero(t, s.Board.Field(1).Level(), "One sale phase should sell every building")
		require.Zero(t, s.Board.Field(3).Level())
		require.True(t, s.Board.Field(1).Mortgaged())
		require.True(t, s.Board.Field(3).Mortgaged())
		require.Equal(t, -1000+8*25+60, p.Cash)
	})

	t.Run("fails without assets", func(t *testing.T) {
		s := newTestState()
		p := s.Player(0)
		p.Cash = -1000

		require.False(t, s.RecoverBalance(p))
	})
}
