package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	t.Run("panics with too few players", func(t *testing.T) {
		require.Panics(t, func() {
			NewStandardState(1, 1)
		}, "Should panic with fewer than two players")
	})

	t.Run("starting state", func(t *testing.T) {
		s := newTestState()
		require.Len(t, s.Players, 4)
		for _, p := range s.Players {
			require.Equal(t, 1500, p.Cash)
			require.Zero(t, p.Position)
		}
		require.Equal(t, NoOwner, s.Winner())
	})
}

func TestAdvance(t *testing.T) {
	s := newTestState()
	p := s.Player(0)

	p.Position = 38
	s.Advance(p, 5)
	require.Equal(t, 3, p.Position)
	require.Equal(t, 1700, p.Cash, "Passing start pays the bonus")

	p.Position = 35
	s.Advance(p, 5)
	require.Equal(t, 0, p.Position)
	require.Equal(t, 1900, p.Cash, "Landing on start pays the bonus")

	s.Advance(p, 7)
	require.Equal(t, 1900, p.Cash)
}

func TestRoll(t *testing.T) {
	s := newTestState()
	for i := 0; i < 100; i++ {
		d := s.Roll()
		require.GreaterOrEqual(t, d.Sum(), 2)
		require.LessOrEqual(t, d.Sum(), 12)
		require.Equal(t, d, s.Dice)
	}
}

func TestJail(t *testing.T) {
	t.Run("fine", func(t *testing.T) {
		s := newTestState()
		p := s.Player(0)
		require.ErrorIs(t, s.PayJailFine(p), ErrNotInJail)

		s.SendToJail(p)
		require.NoError(t, s.PayJailFine(p))
		require.Equal(t, 1450, p.Cash)
		require.False(t, p.InJail())
	})

	t.Run("card returns to its deck", func(t *testing.T) {
		s := newTestState()
		p := s.Player(0)
		s.SendToJail(p)
		require.ErrorIs(t, s.UseJailFreeCard(p), ErrNoJailCard)

		p.CommunityJailCard = true
		s.Decks[CommunityDeck].claimed = true
		require.NoError(t, s.UseJailFreeCard(p))
		require.False(t, p.CommunityJailCard)
		require.False(t, s.Decks[CommunityDeck].Claimed())
		require.Zero(t, p.JailTurns)
	})
}

func TestDeclareBankruptcy(t *testing.T) {
	s := newTestState()
	o, _ := NewOffer(1, 2, NoProperty, 39, 500, 0)
	require.NoError(t, s.Propose(o))

	s.DeclareBankruptcy(s.Player(1))
	require.Nil(t, s.Player(2).PendingOffer, "Offers from a bankrupt player should be withdrawn")

	s.DeclareBankruptcy(s.Player(2))
	s.DeclareBankruptcy(s.Player(3))
	require.Equal(t, 0, s.Winner())
}
