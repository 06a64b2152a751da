package action

import (
	"fmt"

	"monopoly/game"
)

// Perform carries out the chosen action for the player. Trade actions become
// offers proposed to the opponent.
func Perform(s *game.State, p *game.Player, c Choice) error {
	props := s.Board.Properties()
	estates := s.Board.RealEstates()
	others := Others(s, p)

	switch c.Group {
	case ExchangeTrade:
		k := c.Index / (Properties * Properties)
		offered := props[c.Index/Properties%Properties]
		requested := props[c.Index%Properties]
		// cash evens out the price difference
		diff := s.Board.Field(requested).Purchase.Price - s.Board.Field(offered).Purchase.Price
		return propose(s, p.ID, others[k], offered, requested, max(0, diff), max(0, -diff))
	case SellTrade:
		k, i, cat := splitTrade(c.Index)
		id := props[i]
		return propose(s, p.ID, others[k], id, game.NoProperty, 0, CashAmount(s.Board.Field(id).Purchase.Price, cat))
	case BuyTrade:
		k, i, cat := splitTrade(c.Index)
		id := props[i]
		return propose(s, p.ID, others[k], game.NoProperty, id, CashAmount(s.Board.Field(id).Purchase.Price, cat), 0)
	case ImproveBuildings:
		return s.Improve(p, estates[c.Index%RealEstates])
	case SellBuildings:
		return s.SellBuilding(p, estates[c.Index%RealEstates])
	case Mortgage:
		return s.Mortgage(p, props[c.Index])
	case FreeMortgage:
		return s.FreeMortgage(p, props[c.Index])
	case UseJailFreeCard:
		return s.UseJailFreeCard(p)
	case PayJailFine:
		return s.PayJailFine(p)
	case SkipTurn, ConcludeActions:
		return nil
	}
	return fmt.Errorf("unknown action group %v", c.Group)
}

func splitTrade(index int) (k, i, cat int) {
	return index / (Properties * CashCategories), index / CashCategories % Properties, index % CashCategories
}

func propose(s *game.State, from int, to *game.Player, offered, requested, moneyOffered, moneyRequested int) error {
	if to == nil {
		return fmt.Errorf("no opponent in trade slot")
	}
	o, err := game.NewOffer(from, to.ID, offered, requested, moneyOffered, moneyRequested)
	if err != nil {
		return err
	}
	return s.Propose(o)
}
