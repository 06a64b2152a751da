package action

import (
	"fmt"

	"monopoly/game"
)

// Group is one family of actions scored together by the policy.
type Group int

const (
	ExchangeTrade Group = iota
	SellTrade
	BuyTrade
	ImproveBuildings
	SellBuildings
	Mortgage
	FreeMortgage
	SkipTurn
	ConcludeActions
	UseJailFreeCard
	PayJailFine
)

const (
	OtherPlayers   = game.MaxPlayers - 1
	Properties     = game.PropertyCount
	RealEstates    = game.EstateCount
	CashCategories = 3
	BuildingTypes  = 2 // house, hotel
)

// Groups lists every group in canonical order. Ties during selection go to the
// group listed first.
var Groups = []Group{
	ExchangeTrade, SellTrade, BuyTrade, ImproveBuildings, SellBuildings,
	Mortgage, FreeMortgage, SkipTurn, ConcludeActions, UseJailFreeCard, PayJailFine,
}

var groupNames = map[Group]string{
	ExchangeTrade:    "exchange_trade",
	SellTrade:        "sell_trade",
	BuyTrade:         "buy_trade",
	ImproveBuildings: "improve_buildings",
	SellBuildings:    "sell_buildings",
	Mortgage:         "mortgage",
	FreeMortgage:     "free_mortgage",
	SkipTurn:         "skip_turn",
	ConcludeActions:  "conclude_actions",
	UseJailFreeCard:  "use_jail_free_card",
	PayJailFine:      "pay_jail_fine",
}

func (g Group) String() string {
	if name, ok := groupNames[g]; ok {
		return name
	}
	return fmt.Sprintf("group(%d)", int(g))
}

func ParseGroup(name string) (Group, error) {
	for g, n := range groupNames {
		if n == name {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown action group %q", name)
}

func (g Group) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Group) UnmarshalText(text []byte) error {
	parsed, err := ParseGroup(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Shape returns the dimensions of the group's legality mask.
func (g Group) Shape() []int {
	switch g {
	case ExchangeTrade:
		return []int{OtherPlayers, Properties, Properties}
	case SellTrade, BuyTrade:
		return []int{OtherPlayers, Properties, CashCategories}
	case ImproveBuildings, SellBuildings:
		return []int{BuildingTypes, RealEstates}
	case Mortgage, FreeMortgage:
		return []int{Properties}
	}
	return []int{1}
}

// Size is the number of entries in the group's mask.
func (g Group) Size() int {
	size := 1
	for _, d := range g.Shape() {
		size *= d
	}
	return size
}

// ScoreSize is the number of scores the policy returns for the group. Exchange
// scores leave out trading a property for itself.
func (g Group) ScoreSize() int {
	if g == ExchangeTrade {
		return OtherPlayers * Properties * (Properties - 1)
	}
	return g.Size()
}

var phaseGroups = map[game.Phase][]Group{
	game.PreRoll:   Groups,
	game.OutOfTurn: Groups[:9],
	game.PostRoll:  {SellBuildings, Mortgage, FreeMortgage, SkipTurn},
}

// PhaseGroups returns the groups a player may choose from during the phase.
func PhaseGroups(phase game.Phase) []Group {
	return phaseGroups[phase]
}

// CashAmount returns the trade price for a property under a cash category:
// three quarters, all, or five quarters of its base price.
func CashAmount(price, category int) int {
	switch category {
	case 0:
		return price * 3 / 4
	case 1:
		return price
	}
	return price * 5 / 4
}
