package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

type OfferKind int

const (
	SellToPlayer   OfferKind = iota // sender gives a property for cash
	BuyFromPlayer                   // sender pays cash for a property
	ExchangeOffer                   // properties swap hands
)

func (k OfferKind) String() string {
	switch k {
	case SellToPlayer:
		return "sell_to_player"
	case BuyFromPlayer:
		return "buy_from_player"
	}
	return "exchange"
}

// Offer is a trade proposal from one player to another. At least one property
// changes hands; cash may flow either way.
type Offer struct {
	From              int
	To                int
	MoneyOffered      int
	MoneyRequested    int
	PropertyOffered   int // NoProperty when absent
	PropertyRequested int // NoProperty when absent
}

// NewOffer validates the shape of an offer.
func NewOffer(from, to, propertyOffered, propertyRequested, moneyOffered, moneyRequested int) (*Offer, error) {
	if propertyOffered == NoProperty && propertyRequested == NoProperty {
		return nil, ErrEmptyOffer
	}
	if moneyOffered < 0 || moneyRequested < 0 {
		return nil, fmt.Errorf("%w: negative cash", ErrInvalidOffer)
	}
	if from == to {
		return nil, fmt.Errorf("%w: player %d trading with itself", ErrInvalidOffer, from)
	}
	return &Offer{
		From:              from,
		To:                to,
		MoneyOffered:      moneyOffered,
		MoneyRequested:    moneyRequested,
		PropertyOffered:   propertyOffered,
		PropertyRequested: propertyRequested,
	}, nil
}

func (o *Offer) Kind() OfferKind {
	switch {
	case o.PropertyOffered != NoProperty && o.PropertyRequested != NoProperty:
		return ExchangeOffer
	case o.PropertyOffered != NoProperty:
		return SellToPlayer
	}
	return BuyFromPlayer
}

// References reports whether the offer trades the given property.
func (o *Offer) References(id int) bool {
	return o.PropertyOffered == id || o.PropertyRequested == id
}

// NetWorth is the receiver's gain from accepting, valuing properties at price.
func (o *Offer) NetWorth(b *Board) int {
	gain := o.MoneyOffered - o.MoneyRequested
	if o.PropertyOffered != NoProperty {
		gain += b.Field(o.PropertyOffered).Purchase.Price
	}
	if o.PropertyRequested != NoProperty {
		gain -= b.Field(o.PropertyRequested).Purchase.Price
	}
	return gain
}

type OfferStats struct {
	Proposed    int
	Executed    int
	Rejected    int
	Invalidated int
}

// Propose hands the offer to its receiver.
func (s *State) Propose(o *Offer) error {
	to := s.Player(o.To)
	if to.Bankrupt {
		return ErrBankruptTarget
	}
	if to.PendingOffer != nil {
		return ErrOfferPending
	}
	to.PendingOffer = o
	s.Stats.Proposed++
	return nil
}

// Reject discards the player's pending offer.
func (s *State) Reject(p *Player) {
	if p.PendingOffer != nil {
		p.PendingOffer = nil
		s.Stats.Rejected++
	}
}

// ExecuteOffer carries out the player's pending offer. Either everything
// transfers or nothing does; the pending offer is cleared in both cases.
func (s *State) ExecuteOffer(p *Player) error {
	o := p.PendingOffer
	if o == nil {
		return fmt.Errorf("%w: no pending offer", ErrInvalidOffer)
	}
	p.PendingOffer = nil
	if err := s.validateOffer(o); err != nil {
		s.Stats.Rejected++
		return err
	}

	from, to := s.Player(o.From), s.Player(o.To)
	if o.PropertyOffered != NoProperty {
		from.RemoveProperty(s.Board, o.PropertyOffered)
		to.AddProperty(s.Board, o.PropertyOffered)
	}
	if o.PropertyRequested != NoProperty {
		to.RemoveProperty(s.Board, o.PropertyRequested)
		from.AddProperty(s.Board, o.PropertyRequested)
	}
	s.Transfer(from, to, o.MoneyOffered)
	s.Transfer(to, from, o.MoneyRequested)
	s.Stats.Executed++
	log.Debug().Int("from", o.From).Int("to", o.To).Str("kind", o.Kind().String()).Msg("offer executed")

	s.invalidateOffers(o)
	return nil
}

func (s *State) validateOffer(o *Offer) error {
	from, to := s.Player(o.From), s.Player(o.To)
	if from.Bankrupt || to.Bankrupt {
		return ErrBankruptTarget
	}
	for _, check := range []struct {
		id    int
		owner *Player
	}{{o.PropertyOffered, from}, {o.PropertyRequested, to}} {
		if check.id == NoProperty {
			continue
		}
		if s.Board.Field(check.id).Owner() != check.owner.ID {
			return ErrStaleOffer
		}
		if !s.Board.Tradeable(check.id) {
			return ErrUntradeable
		}
	}
	if from.Cash-o.MoneyOffered+o.MoneyRequested < 0 || to.Cash-o.MoneyRequested+o.MoneyOffered < 0 {
		return ErrInsufficientCash
	}
	return nil
}

// invalidateOffers clears every pending offer that trades a property moved by
// the executed offer.
func (s *State) invalidateOffers(executed *Offer) {
	for _, p := range s.Players {
		o := p.PendingOffer
		if o == nil {
			continue
		}
		if (executed.PropertyOffered != NoProperty && o.References(executed.PropertyOffered)) ||
			(executed.PropertyRequested != NoProperty && o.References(executed.PropertyRequested)) {
			p.PendingOffer = nil
			s.Stats.Invalidated++
		}
	}
}
