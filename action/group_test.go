package action

import (
	"testing"

	"monopoly/game"

	"github.com/stretchr/testify/require"
)

func TestGroupSizes(t *testing.T) {
	require.Equal(t, 2352, ExchangeTrade.Size())
	require.Equal(t, 2268, ExchangeTrade.ScoreSize(), "Exchange scores skip self trades")
	require.Equal(t, 252, SellTrade.Size())
	require.Equal(t, 252, BuyTrade.Size())
	require.Equal(t, 44, ImproveBuildings.Size())
	require.Equal(t, 44, SellBuildings.Size())
	require.Equal(t, 28, Mortgage.Size())
	require.Equal(t, 28, FreeMortgage.Size())
	for _, g := range []Group{SkipTurn, ConcludeActions, UseJailFreeCard, PayJailFine} {
		require.Equal(t, 1, g.Size(), g.String())
	}
}

func TestPhaseGroups(t *testing.T) {
	require.Len(t, PhaseGroups(game.PreRoll), 11)
	require.Equal(t, Groups[:9], PhaseGroups(game.OutOfTurn))
	require.Equal(t, []Group{SellBuildings, Mortgage, FreeMortgage, SkipTurn}, PhaseGroups(game.PostRoll))
}

func TestParseGroup(t *testing.T) {
	for _, g := range Groups {
		parsed, err := ParseGroup(g.String())
		require.NoError(t, err)
		require.Equal(t, g, parsed)
	}
	_, err := ParseGroup("teleport")
	require.Error(t, err)
}

func TestCashAmount(t *testing.T) {
	require.Equal(t, 300, CashAmount(400, 0))
	require.Equal(t, 400, CashAmount(400, 1))
	require.Equal(t, 500, CashAmount(400, 2))
}
