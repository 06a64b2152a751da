package game

import "slices"

type Player struct {
	ID                int
	Position          int
	Cash              int
	Properties        []int // owned field IDs in board order
	JailTurns         int   // turns left in jail, 0 when free
	ChanceJailCard    bool
	CommunityJailCard bool
	PendingOffer      *Offer // offer waiting for this player's answer
	Bankrupt          bool
}

func NewPlayer(id, cash int) *Player {
	return &Player{
		ID:         id,
		Cash:       cash,
		Properties: []int{},
	}
}

func (p *Player) InJail() bool {
	return p.JailTurns > 0
}

func (p *Player) HasJailCard() bool {
	return p.ChanceJailCard || p.CommunityJailCard
}

func (p *Player) Owns(id int) bool {
	_, found := slices.BinarySearch(p.Properties, id)
	return found
}

// AddProperty assigns the field to the player on both sides of the relation.
func (p *Player) AddProperty(b *Board, id int) {
	b.Field(id).setOwner(p.ID)
	i, found := slices.BinarySearch(p.Properties, id)
	if !found {
		p.Properties = slices.Insert(p.Properties, i, id)
	}
}

// RemoveProperty returns the field to the bank on both sides of the relation.
func (p *Player) RemoveProperty(b *Board, id int) {
	b.Field(id).setOwner(NoOwner)
	if i, found := slices.BinarySearch(p.Properties, id); found {
		p.Properties = slices.Delete(p.Properties, i, i+1)
	}
}

// BuyProperty takes the field from the bank at its price. The field must be
// unowned; callers check this before buying.
func (p *Player) BuyProperty(b *Board, id int) {
	p.AddProperty(b, id)
	p.Cash -= b.Field(id).Purchase.Price
}

// Bankruptcy takes the player out of the game and returns everything it owns
// to the bank.
func (p *Player) Bankruptcy(b *Board) {
	p.Bankrupt = true
	for _, id := range p.Properties {
		b.Field(id).setOwner(NoOwner)
	}
	p.Properties = []int{}
	p.Position = 0
	p.Cash = 0
	p.JailTurns = 0
	p.PendingOffer = nil
}
