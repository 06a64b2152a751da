package action

import (
	"math"

	"monopoly/game"
)

// Mask derives which actions a player may take in the current state.
type Mask struct {
	state  *game.State
	player *game.Player
	others []*game.Player // other players by ID, padded with nil
}

func NewMask(s *game.State, p *game.Player) *Mask {
	return &Mask{
		state:  s,
		player: p,
		others: Others(s, p),
	}
}

// Others returns the opponents of p ordered by ID, padded with nil to
// OtherPlayers slots. Slot k of a trade action addresses Others(s, p)[k].
func Others(s *game.State, p *game.Player) []*game.Player {
	out := make([]*game.Player, 0, OtherPlayers)
	for _, other := range s.Players {
		if other.ID != p.ID {
			out = append(out, other)
		}
	}
	for len(out) < OtherPlayers {
		out = append(out, nil)
	}
	return out
}

// Group returns the flat legality mask of the group.
func (m *Mask) Group(g Group) []bool {
	mask := make([]bool, g.Size())
	switch g {
	case ExchangeTrade:
		m.exchange(mask)
	case SellTrade:
		m.sell(mask)
	case BuyTrade:
		m.buy(mask)
	case ImproveBuildings:
		m.improve(mask)
	case SellBuildings:
		m.sellBuildings(mask)
	case Mortgage:
		for i, id := range m.state.Board.Properties() {
			mask[i] = m.state.CanMortgage(m.player, id) == nil
		}
	case FreeMortgage:
		for i, id := range m.state.Board.Properties() {
			_, err := m.state.LiftCost(m.player, id)
			mask[i] = err == nil
		}
	case SkipTurn, ConcludeActions:
		mask[0] = true
	case UseJailFreeCard:
		mask[0] = m.player.InJail() && m.player.HasJailCard()
	case PayJailFine:
		mask[0] = m.player.InJail()
	}
	return mask
}

// reachable reports whether an offer can be sent to the opponent in slot k.
func (m *Mask) reachable(k int) bool {
	other := m.others[k]
	return other != nil && !other.Bankrupt && other.PendingOffer == nil
}

func (m *Mask) tradeable(owner *game.Player, id int) bool {
	return m.state.Board.Field(id).Owner() == owner.ID && m.state.Board.Tradeable(id)
}

func (m *Mask) exchange(mask []bool) {
	props := m.state.Board.Properties()
	for k := range m.others {
		if !m.reachable(k) {
			continue
		}
		for i, offered := range props {
			if !m.tradeable(m.player, offered) {
				continue
			}
			for j, requested := range props {
				if i != j && m.tradeable(m.others[k], requested) {
					mask[(k*Properties+i)*Properties+j] = true
				}
			}
		}
	}
}

func (m *Mask) sell(mask []bool) {
	for k := range m.others {
		if !m.reachable(k) {
			continue
		}
		for i, id := range m.state.Board.Properties() {
			if m.tradeable(m.player, id) {
				setCash(mask, k, i)
			}
		}
	}
}

func (m *Mask) buy(mask []bool) {
	for k := range m.others {
		if !m.reachable(k) {
			continue
		}
		for i, id := range m.state.Board.Properties() {
			if m.tradeable(m.others[k], id) {
				setCash(mask, k, i)
			}
		}
	}
}

func setCash(mask []bool, k, i int) {
	for c := 0; c < CashCategories; c++ {
		mask[(k*Properties+i)*CashCategories+c] = true
	}
}

func (m *Mask) improve(mask []bool) {
	for e, id := range m.state.Board.RealEstates() {
		if _, err := m.state.ImproveCost(m.player, id); err != nil {
			continue
		}
		kind := 0
		if m.state.Board.Field(id).Level() == game.MaxLevel-1 {
			kind = 1
		}
		mask[kind*RealEstates+e] = true
	}
}

func (m *Mask) sellBuildings(mask []bool) {
	for e, id := range m.state.Board.RealEstates() {
		if _, err := m.state.SaleValue(m.player, id); err != nil {
			continue
		}
		kind := 0
		if m.state.Board.Field(id).Level() == game.MaxLevel {
			kind = 1
		}
		mask[kind*RealEstates+e] = true
	}
}

// Restrict returns a copy of scores with illegal entries set to -Inf.
func Restrict(scores []float64, mask []bool) []float64 {
	out := make([]float64, len(scores))
	for i, v := range scores {
		if mask[i] {
			out[i] = v
		} else {
			out[i] = math.Inf(-1)
		}
	}
	return out
}

// ExpandExchange lays the policy's exchange scores out on the full
// 3×28×28 grid, filling the self-trade diagonal with -Inf.
func ExpandExchange(raw []float64) []float64 {
	full := make([]float64, ExchangeTrade.Size())
	for k := 0; k < OtherPlayers; k++ {
		for i := 0; i < Properties; i++ {
			for j := 0; j < Properties; j++ {
				idx := (k*Properties+i)*Properties + j
				if i == j {
					full[idx] = math.Inf(-1)
					continue
				}
				full[idx] = raw[RawExchangeIndex(k, i, j)]
			}
		}
	}
	return full
}

// RawExchangeIndex maps an exchange of property i for property j with
// opponent slot k to its position among the policy's scores.
func RawExchangeIndex(k, i, j int) int {
	if j > i {
		j--
	}
	return (k*Properties+i)*(Properties-1) + j
}
