package agent

import (
	"monopoly/game"

	"github.com/rs/zerolog/log"
)

const (
	buyReserve     = 200 // cash kept after buying a property
	buildReserve   = 200 // cash kept after building
	mortgageBuffer = 400 // cash kept after lifting a mortgage
	jailFineAbove  = 250 // pay the fine only with more cash than this
	sellDiscount   = 200 // accepted loss when an offer completes a monopoly
	buyPremium     = 200 // required gain before selling a property
)

// FixedPolicy is the rule-based baseline agent.
type FixedPolicy struct {
	// AcceptExchanges enables accepting exchange offers that complete a
	// monopoly. Off by default, which declines every exchange.
	AcceptExchanges bool
}

func NewFixedPolicy() *FixedPolicy {
	return &FixedPolicy{}
}

func (a *FixedPolicy) PreRoll(s *game.State, p *game.Player) (Code, error) {
	if p.InJail() {
		if p.HasJailCard() {
			if err := s.UseJailFreeCard(p); err != nil {
				return Concluded, err
			}
		} else if p.Cash > jailFineAbove {
			if err := s.PayJailFine(p); err != nil {
				return Concluded, err
			}
		}
	}
	a.liftMortgages(s, p)
	a.build(s, p)
	return Concluded, nil
}

func (a *FixedPolicy) OutOfTurn(s *game.State, p *game.Player) (Code, error) {
	a.makeOffers(s, p)
	return Skipped, nil
}

// PostRoll buys the field the player landed on when enough cash remains.
func (a *FixedPolicy) PostRoll(s *game.State, p *game.Player) (Code, error) {
	if wantsToBuy(s, p) {
		if err := s.Buy(p, p.Position); err != nil {
			return Concluded, err
		}
	}
	return Concluded, nil
}

func wantsToBuy(s *game.State, p *game.Player) bool {
	f := s.Board.Field(p.Position)
	return f.Purchasable() && f.Owner() == game.NoOwner && p.Cash-f.Purchase.Price >= buyReserve
}

func (a *FixedPolicy) ConsiderOffer(s *game.State, p *game.Player, o *game.Offer) bool {
	net := o.NetWorth(s.Board)
	switch o.Kind() {
	case game.SellToPlayer:
		if game.MonopolyGain(s.Board, o.PropertyOffered, p.Properties) && net > -sellDiscount {
			return true
		}
		return net > 0
	case game.BuyFromPlayer:
		return net > buyPremium
	case game.ExchangeOffer:
		if !a.AcceptExchanges {
			return false
		}
		kept := []int{}
		for _, id := range p.Properties {
			if id != o.PropertyRequested {
				kept = append(kept, id)
			}
		}
		return game.MonopolyGain(s.Board, o.PropertyOffered, kept) && net > -sellDiscount
	}
	return false
}

func (a *FixedPolicy) HandleNegativeBalance(s *game.State, p *game.Player) bool {
	return s.RecoverBalance(p)
}

func (a *FixedPolicy) liftMortgages(s *game.State, p *game.Player) {
	for _, id := range append([]int(nil), p.Properties...) {
		cost, err := s.LiftCost(p, id)
		if err != nil || p.Cash-cost <= mortgageBuffer {
			continue
		}
		if err := s.FreeMortgage(p, id); err != nil {
			log.Warn().Err(err).Int("player", p.ID).Int("field", id).Msg("failed to lift mortgage")
		}
	}
}

func (a *FixedPolicy) build(s *game.State, p *game.Player) {
	for _, id := range game.PropertiesToImprove(s, p) {
		cost, err := s.ImproveCost(p, id)
		if err != nil || p.Cash-cost <= buildReserve {
			continue
		}
		if err := s.Improve(p, id); err != nil {
			log.Warn().Err(err).Int("player", p.ID).Int("field", id).Msg("failed to build")
		}
	}
}

// makeOffers proposes monopoly-completing trades: buying at 5/4 of the price,
// selling at 3/2 of the price, and exchanging the remaining pairs with cash
// covering the price difference.
func (a *FixedPolicy) makeOffers(s *game.State, p *game.Player) {
	toBuy := game.PropertiesForBuy(s, p)
	toSell := game.PropertiesForSale(s, p)
	usedBuy := make([]bool, len(toBuy))
	usedSell := make([]bool, len(toSell))

	for i, c := range toBuy {
		money := s.Board.Field(c.Property).Purchase.Price * 5 / 4
		if p.Cash <= money {
			continue
		}
		usedBuy[i] = a.propose(s, p.ID, c.Player, game.NoProperty, c.Property, money, 0)
	}
	for i, c := range toSell {
		money := s.Board.Field(c.Property).Purchase.Price * 3 / 2
		if s.Player(c.Player).Cash <= money {
			continue
		}
		usedSell[i] = a.propose(s, p.ID, c.Player, c.Property, game.NoProperty, 0, money)
	}

	for i, sell := range toSell {
		if usedSell[i] {
			continue
		}
		for j, buy := range toBuy {
			if usedBuy[j] || buy.Player != sell.Player {
				continue
			}
			// positive diff: the receiver pays the difference
			diff := s.Board.Field(sell.Property).Purchase.Price - s.Board.Field(buy.Property).Purchase.Price
			if diff >= 0 && s.Player(sell.Player).Cash < diff {
				continue
			}
			if diff < 0 && p.Cash < -diff {
				continue
			}
			if a.propose(s, p.ID, sell.Player, sell.Property, buy.Property, max(0, -diff), max(0, diff)) {
				usedSell[i], usedBuy[j] = true, true
				break
			}
		}
	}
}

func (a *FixedPolicy) propose(s *game.State, from, to, offered, requested, moneyOffered, moneyRequested int) bool {
	o, err := game.NewOffer(from, to, offered, requested, moneyOffered, moneyRequested)
	if err != nil {
		return false
	}
	return s.Propose(o) == nil
}
