package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardBoard(t *testing.T) {
	b := NewStandardBoard()

	require.Len(t, b.Fields(), BoardSize)
	require.Len(t, b.Properties(), PropertyCount, "Should have 28 purchasable fields")
	require.Len(t, b.RealEstates(), 22, "Should have 22 real estates")
	require.Equal(t, 10, b.PrisonID())
	require.Equal(t, 200, b.Field(4).Tax)
	require.Equal(t, ChanceDeck, b.Field(7).Deck)
	require.Equal(t, CommunityDeck, b.Field(2).Deck)
	require.Equal(t, 1000, b.Field(39).Estate.HotelCost, "Hotel should cost five houses")
	require.Equal(t, [6]int{50, 200, 600, 1400, 1700, 2000}, b.Field(39).Estate.Rents)
}

func TestLoadTables(t *testing.T) {
	t.Run("unknown type codes become basic fields", func(t *testing.T) {
		tables := StandardTables()
		tables.Fields[20].Type = "lottery"

		b, err := NewBoard(tables)

		require.NoError(t, err)
		require.Equal(t, Basic, b.Field(20).Kind)
	})

	t.Run("purchasable field without property row", func(t *testing.T) {
		tables := StandardTables()
		tables.Properties = tables.Properties[:len(tables.Properties)-1]

		_, err := NewBoard(tables)

		require.ErrorIs(t, err, ErrConfig, "Missing property rows should be a configuration error")
	})

	t.Run("wrong number of rents", func(t *testing.T) {
		tables := StandardTables()
		tables.Properties[0].Rents = []int{1, 2, 3, 4, 5}

		_, err := NewBoard(tables)

		require.ErrorIs(t, err, ErrConfig)
	})

	t.Run("duplicate field id", func(t *testing.T) {
		tables := StandardTables()
		tables.Fields[1].ID = 0

		_, err := NewBoard(tables)

		require.ErrorIs(t, err, ErrConfig)
	})

	t.Run("missing fields", func(t *testing.T) {
		tables := StandardTables()
		tables.Fields = tables.Fields[:39]

		_, err := NewBoard(tables)

		require.ErrorIs(t, err, ErrConfig)
	})

	t.Run("extra purchasable field", func(t *testing.T) {
		tables := StandardTables()
		tables.Fields[20].Type = "train"
		tables.Properties = append(tables.Properties, PropertyRow{ID: 20, Price: 200})

		_, err := NewBoard(tables)

		require.ErrorIs(t, err, ErrConfig, "The board must keep 28 purchasable fields")
	})

	t.Run("real estate retyped as utility", func(t *testing.T) {
		tables := StandardTables()
		tables.Fields[1].Type = "utility"

		_, err := NewBoard(tables)

		require.ErrorIs(t, err, ErrConfig, "The board must keep 22 real estates")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadTables(strings.NewReader("fields: ["))

		require.ErrorIs(t, err, ErrConfig)
	})
}
