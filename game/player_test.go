package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOwnership(t *testing.T) {
	t.Run("add and remove keep both sides in sync", func(t *testing.T) {
		s := newTestState()
		p := s.Player(2)

		p.AddProperty(s.Board, 39)
		p.AddProperty(s.Board, 1)
		require.Equal(t, []int{1, 39}, p.Properties)
		require.Equal(t, 2, s.Board.Field(39).Owner())

		p.RemoveProperty(s.Board, 39)
		require.Equal(t, []int{1}, p.Properties)
		require.Equal(t, NoOwner, s.Board.Field(39).Owner())
	})

	t.Run("buying deducts the price", func(t *testing.T) {
		s := newTestState()
		p := s.Player(0)

		require.NoError(t, s.Buy(p, 39))
		require.Equal(t, 1100, p.Cash)
		require.True(t, p.Owns(39))

		require.Error(t, s.Buy(s.Player(1), 39), "Owned fields cannot be bought")
		require.ErrorIs(t, s.Buy(p, 0), ErrNotPurchasable)
	})

	t.Run("buying needs the cash", func(t *testing.T) {
		s := newTestState()
		p := s.Player(0)
		p.Cash = 100

		require.ErrorIs(t, s.Buy(p, 39), ErrInsufficientCash)
		require.Equal(t, NoOwner, s.Board.Field(39).Owner())
	})
}

func TestBankruptcy(t *testing.T) {
	s := newTestState()
	p := s.Player(1)
	give(s, 1, 1, 3, 12)
	s.Board.Field(1).Estate.Level = 2
	s.Board.Field(12).Purchase.Mortgaged = true
	p.Position = 17
	p.ChanceJailCard = true
	s.Decks[ChanceDeck].claimed = true

	s.DeclareBankruptcy(p)

	require.True(t, p.Bankrupt)
	require.Empty(t, p.Properties)
	require.Zero(t, p.Position)
	require.Zero(t, p.Cash)
	for _, id := range []int{1, 3, 12} {
		f := s.Board.Field(id)
		require.Equal(t, NoOwner, f.Owner(), "Released fields should return to the bank")
		require.False(t, f.Mortgaged(), "Released fields should not stay mortgaged")
		require.Zero(t, f.Level(), "Released fields should lose their buildings")
	}
	require.False(t, s.Decks[ChanceDeck].Claimed(), "Jail card should return to its deck")
	require.Len(t, s.InGame(), 3)
}
