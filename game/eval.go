package game

import (
	"monopoly/utils"
)

const (
	PlayerFeatures   = 4
	PropertyFeatures = 8
	PropertyCount    = 28
	EstateCount      = 22
	StateVectorSize  = MaxPlayers*PlayerFeatures + PropertyCount*PropertyFeatures
)

// NetWorth values the player's cash and holdings. Properties count at 1.5
// times their price, twice when they complete a color group; mortgaged
// properties carry a penalty of 1.1 times their price and buildings count at
// construction cost.
func NetWorth(b *Board, p *Player) float64 {
	worth := float64(p.Cash)
	for _, id := range p.Properties {
		f := b.Field(id)
		value := float64(f.Purchase.Price)
		if f.Mortgaged() {
			value -= 1.1 * float64(f.Purchase.Price)
		}
		if f.Estate == nil {
			worth += value * 1.5
			continue
		}
		if b.IsMonopoly(id) {
			value *= 2
		} else {
			value *= 1.5
		}
		if f.Estate.Level < MaxLevel {
			value += float64(f.Estate.Level * f.Estate.HouseCost)
		} else {
			value += float64(4*f.Estate.HouseCost + f.Estate.HotelCost)
		}
		worth += value
	}
	return worth
}

// Reward is the player's net worth relative to the combined net worth of the
// opponents still in the game. When the opponents are worth nothing the
// reward is 1 for a player with positive worth and 0 otherwise.
func Reward(s *State, p *Player) float64 {
	opponents := []float64{}
	for _, other := range s.InGame() {
		if other.ID != p.ID {
			opponents = append(opponents, NetWorth(s.Board, other))
		}
	}
	own := NetWorth(s.Board, p)
	total := utils.Sum(opponents)
	if total <= 0 {
		if own > 0 {
			return 1
		}
		return 0
	}
	return own / total
}

// StateVector encodes the game for a scorer: four values per player seat
// (position, cash, jailed, holds a jail card) followed by eight values per
// purchasable field (one-hot owner, monopoly, house fraction, hotel, mortgaged).
// Empty seats are zero.
func StateVector(s *State) []float64 {
	vec := make([]float64, 0, StateVectorSize)
	for seat := 0; seat < MaxPlayers; seat++ {
		if seat >= len(s.Players) {
			vec = append(vec, 0, 0, 0, 0)
			continue
		}
		p := s.Players[seat]
		vec = append(vec, float64(p.Position), float64(p.Cash), flag(p.InJail()), flag(p.HasJailCard()))
	}
	for _, id := range s.Board.Properties() {
		f := s.Board.Field(id)
		owner := make([]float64, MaxPlayers)
		if f.Owner() != NoOwner {
			owner[f.Owner()] = 1
		}
		monopoly, houses, hotel := 0.0, 0.0, 0.0
		if f.Estate != nil {
			monopoly = flag(s.Board.IsMonopoly(id))
			houses = utils.Clamp(float64(f.Estate.Level)/4, 0, 1)
			hotel = flag(f.Estate.Level == MaxLevel)
		}
		vec = append(vec, owner...)
		vec = append(vec, monopoly, houses, hotel, flag(f.Mortgaged()))
	}
	return vec
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// MonopolyGain reports whether adding the property to owned completes its
// color group. Trains and utilities never count.
func MonopolyGain(b *Board, id int, owned []int) bool {
	f := b.Field(id)
	if f.Estate == nil {
		return false
	}
	group, _ := b.PropertyGroupIDs(id)
	for _, gid := range group {
		if gid != id && utils.FindIndex(owned, gid) < 0 {
			return false
		}
	}
	return true
}

// Candidate pairs a property with the other player involved in a trade.
type Candidate struct {
	Property int
	Player   int
}

// PropertiesForSale lists the player's properties that would complete a color
// group for another player.
func PropertiesForSale(s *State, p *Player) []Candidate {
	out := []Candidate{}
	for _, id := range p.Properties {
		for _, other := range s.InGame() {
			if other.ID != p.ID && MonopolyGain(s.Board, id, other.Properties) {
				out = append(out, Candidate{Property: id, Player: other.ID})
			}
		}
	}
	return out
}

// PropertiesForBuy lists properties held by other players that are the only
// piece missing from one of the player's color groups.
func PropertiesForBuy(s *State, p *Player) []Candidate {
	out := []Candidate{}
	for _, id := range s.Board.RealEstates() {
		owner := s.Board.Field(id).Owner()
		if owner == NoOwner || owner == p.ID || s.Player(owner).Bankrupt {
			continue
		}
		if MonopolyGain(s.Board, id, p.Properties) {
			out = append(out, Candidate{Property: id, Player: owner})
		}
	}
	return out
}

// PropertiesToImprove lists the player's fields where the next building may go.
func PropertiesToImprove(s *State, p *Player) []int {
	out := []int{}
	for _, id := range p.Properties {
		f := s.Board.Field(id)
		if f.Estate == nil || !s.Board.IsMonopoly(id) || f.Estate.Level >= MaxLevel {
			continue
		}
		if lo, _ := s.Board.GroupLevels(id); f.Estate.Level == lo {
			out = append(out, id)
		}
	}
	return out
}
