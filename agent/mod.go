package agent

import "monopoly/game"

// Code tells the game loop what a phase decision amounted to.
type Code int

const (
	Acted     Code = iota // took an action and may act again
	Concluded             // done with the phase
	Skipped               // passed; counts toward ending the out-of-turn round
)

// Agent decides for one seat. The game loop calls one phase method per
// decision point and resolves pending offers through ConsiderOffer before it.
type Agent interface {
	PreRoll(s *game.State, p *game.Player) (Code, error)
	OutOfTurn(s *game.State, p *game.Player) (Code, error)
	PostRoll(s *game.State, p *game.Player) (Code, error)
	// ConsiderOffer reports whether p accepts the offer waiting for it.
	ConsiderOffer(s *game.State, p *game.Player, o *game.Offer) bool
	// HandleNegativeBalance tries to bring p's cash back to zero or above.
	HandleNegativeBalance(s *game.State, p *game.Player) bool
}
