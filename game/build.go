package game

import "github.com/rs/zerolog/log"

func (s *State) ownedEstate(p *Player, id int) (*Field, error) {
	f := s.Board.Field(id)
	if f.Owner() != p.ID {
		return nil, ErrNotOwner
	}
	if f.Estate == nil {
		return nil, ErrNotRealEstate
	}
	return f, nil
}

// ImproveCost returns the price of the next building on the field, or why
// none can be built there. Buildings go up evenly across a fully owned,
// unmortgaged color group.
func (s *State) ImproveCost(p *Player, id int) (int, error) {
	f, err := s.ownedEstate(p, id)
	if err != nil {
		return 0, err
	}
	if !s.Board.IsMonopoly(id) {
		return 0, ErrNoMonopoly
	}
	if s.Board.groupMortgaged(id) {
		return 0, ErrMortgagedGroup
	}
	if f.Estate.Level >= MaxLevel {
		return 0, ErrMaxLevel
	}
	if lo, _ := s.Board.GroupLevels(id); f.Estate.Level != lo {
		return 0, ErrUneven
	}
	cost := f.Estate.HouseCost
	if f.Estate.Level == MaxLevel-1 {
		cost = f.Estate.HotelCost
	}
	if p.Cash < cost {
		return cost, ErrInsufficientCash
	}
	return cost, nil
}

// Improve builds a house, or a hotel on top of four houses.
func (s *State) Improve(p *Player, id int) error {
	cost, err := s.ImproveCost(p, id)
	if err != nil {
		return err
	}
	f := s.Board.Field(id)
	s.Pay(p, cost)
	f.Estate.Level++
	log.Debug().Int("player", p.ID).Int("field", id).Int("level", f.Estate.Level).Msg("building added")
	return nil
}

// SaleValue returns what the bank pays for the field's top building, or why it
// cannot be sold. Buildings come down evenly across the color group.
func (s *State) SaleValue(p *Player, id int) (int, error) {
	f, err := s.ownedEstate(p, id)
	if err != nil {
		return 0, err
	}
	if f.Estate.Level == 0 {
		return 0, ErrNoBuildings
	}
	if _, hi := s.Board.GroupLevels(id); f.Estate.Level != hi {
		return 0, ErrUneven
	}
	return buildingRefund(f, f.Estate.Level), nil
}

func buildingRefund(f *Field, level int) int {
	if level == MaxLevel {
		return f.Estate.HotelCost / 2
	}
	return f.Estate.HouseCost / 2
}

func (s *State) SellBuilding(p *Player, id int) error {
	value, err := s.SaleValue(p, id)
	if err != nil {
		return err
	}
	f := s.Board.Field(id)
	f.Estate.Level--
	s.Collect(p, value)
	log.Debug().Int("player", p.ID).Int("field", id).Int("level", f.Estate.Level).Msg("building sold")
	return nil
}

// CanMortgage checks that the player owns the field, it is not yet mortgaged
// and it has no buildings.
func (s *State) CanMortgage(p *Player, id int) error {
	f := s.Board.Field(id)
	if !f.Purchasable() {
		return ErrNotPurchasable
	}
	if f.Owner() != p.ID {
		return ErrNotOwner
	}
	if f.Mortgaged() {
		return ErrMortgaged
	}
	if f.Level() > 0 {
		return ErrBuilt
	}
	return nil
}

func (s *State) Mortgage(p *Player, id int) error {
	if err := s.CanMortgage(p, id); err != nil {
		return err
	}
	f := s.Board.Field(id)
	f.Purchase.Mortgaged = true
	s.Collect(p, f.MortgageValue())
	log.Debug().Int("player", p.ID).Int("field", id).Msg("property mortgaged")
	return nil
}

// LiftCost returns the cash needed to lift the field's mortgage, or why it
// cannot be lifted.
func (s *State) LiftCost(p *Player, id int) (int, error) {
	f := s.Board.Field(id)
	if !f.Purchasable() {
		return 0, ErrNotPurchasable
	}
	if f.Owner() != p.ID {
		return 0, ErrNotOwner
	}
	if !f.Mortgaged() {
		return 0, ErrNotMortgaged
	}
	cost := s.Rules.LiftMortgageCost(f.MortgageValue())
	if p.Cash < cost {
		return cost, ErrInsufficientCash
	}
	return cost, nil
}

func (s *State) FreeMortgage(p *Player, id int) error {
	cost, err := s.LiftCost(p, id)
	if err != nil {
		return err
	}
	s.Board.Field(id).Purchase.Mortgaged = false
	s.Pay(p, cost)
	log.Debug().Int("player", p.ID).Int("field", id).Msg("mortgage lifted")
	return nil
}
