package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
)

type Dice struct {
	First  int
	Second int
}

func (d Dice) Sum() int {
	return d.First + d.Second
}

func (d Dice) Double() bool {
	return d.First == d.Second
}

// State is the mutable state of one game: the board, players and card decks
// plus the turn bookkeeping. A State is confined to a single goroutine.
type State struct {
	Board   *Board
	Players []*Player // indexed by player ID
	Rules   Rules
	Decks   map[DeckKind]*Deck
	Turn    int
	Current int   // index into InGame() of the player whose turn it is
	Phase   Phase // phase of the player currently deciding
	Dice    Dice  // last roll
	Stats   OfferStats
	rng     *rand.Rand
}

// NewState starts a game with numPlayers players on b. The seed drives dice
// and card shuffles.
func NewState(b *Board, r Rules, numPlayers int, seed uint64) *State {
	if numPlayers < 2 || numPlayers > MaxPlayers {
		panic(fmt.Sprintf("need between 2 and %d players, got %d", MaxPlayers, numPlayers))
	}
	s := &State{
		Board:   b,
		Players: make([]*Player, numPlayers),
		Rules:   r,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	for i := range s.Players {
		s.Players[i] = NewPlayer(i, r.StartingCash())
	}
	s.Decks = map[DeckKind]*Deck{
		ChanceDeck:    NewDeck(ChanceDeck, ChanceCards()),
		CommunityDeck: NewDeck(CommunityDeck, CommunityCards()),
	}
	return s
}

// NewStandardState starts a game on the standard board with standard rules.
func NewStandardState(numPlayers int, seed uint64) *State {
	return NewState(NewStandardBoard(), NewStandardRules(), numPlayers, seed)
}

func (s *State) Rng() *rand.Rand {
	return s.rng
}

func (s *State) Player(id int) *Player {
	return s.Players[id]
}

// InGame returns the players that are not bankrupt, ordered by ID.
func (s *State) InGame() []*Player {
	in := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if !p.Bankrupt {
			in = append(in, p)
		}
	}
	return in
}

func (s *State) CurrentPlayer() *Player {
	in := s.InGame()
	return in[s.Current%len(in)]
}

// Winner returns the ID of the last player standing, or NoOwner while the game
// is still running.
func (s *State) Winner() int {
	in := s.InGame()
	if len(in) == 1 {
		return in[0].ID
	}
	return NoOwner
}

// Roll throws two six-sided dice and remembers the result.
func (s *State) Roll() Dice {
	s.Dice = Dice{First: s.rng.IntN(6) + 1, Second: s.rng.IntN(6) + 1}
	return s.Dice
}

func (s *State) throwSum() int {
	return s.rng.IntN(6) + s.rng.IntN(6) + 2
}

// Advance moves the player forward, paying the pass-go bonus when it passes
// or lands on the start field.
func (s *State) Advance(p *Player, steps int) {
	next := p.Position + steps
	if next >= BoardSize {
		s.Collect(p, s.Rules.PassGoBonus())
	}
	p.Position = next % BoardSize
}

// MoveTo moves the player forward to target, paying the pass-go bonus when the
// move wraps around the board.
func (s *State) MoveTo(p *Player, target int) {
	if target < p.Position {
		s.Collect(p, s.Rules.PassGoBonus())
	}
	p.Position = target
}

func (s *State) SendToJail(p *Player) {
	p.Position = s.Board.PrisonID()
	p.JailTurns = s.Rules.JailTurns()
	log.Debug().Int("player", p.ID).Msg("sent to jail")
}

func (s *State) Collect(p *Player, amount int) {
	p.Cash += amount
}

func (s *State) Pay(p *Player, amount int) {
	p.Cash -= amount
}

func (s *State) Transfer(from, to *Player, amount int) {
	from.Cash -= amount
	to.Cash += amount
}

// Buy purchases the unowned field for the player at its price.
func (s *State) Buy(p *Player, id int) error {
	f := s.Board.Field(id)
	if !f.Purchasable() {
		return ErrNotPurchasable
	}
	if f.Owner() != NoOwner {
		return fmt.Errorf("field %d is owned by player %d", id, f.Owner())
	}
	if p.Cash < f.Purchase.Price {
		return ErrInsufficientCash
	}
	p.BuyProperty(s.Board, id)
	log.Debug().Int("player", p.ID).Int("field", id).Int("price", f.Purchase.Price).Msg("property bought")
	return nil
}

// UseJailFreeCard frees the player and returns the card to its deck. The
// chance card is used before the community chest one.
func (s *State) UseJailFreeCard(p *Player) error {
	if !p.InJail() {
		return ErrNotInJail
	}
	switch {
	case p.ChanceJailCard:
		p.ChanceJailCard = false
		s.Decks[ChanceDeck].Release()
	case p.CommunityJailCard:
		p.CommunityJailCard = false
		s.Decks[CommunityDeck].Release()
	default:
		return ErrNoJailCard
	}
	p.JailTurns = 0
	return nil
}

func (s *State) PayJailFine(p *Player) error {
	if !p.InJail() {
		return ErrNotInJail
	}
	s.Pay(p, s.Rules.JailFine())
	p.JailTurns = 0
	return nil
}

// DeclareBankruptcy removes the player from the game. Held jail free cards go
// back to their decks and offers sent by the player are withdrawn.
func (s *State) DeclareBankruptcy(p *Player) {
	if p.ChanceJailCard {
		s.Decks[ChanceDeck].Release()
		p.ChanceJailCard = false
	}
	if p.CommunityJailCard {
		s.Decks[CommunityDeck].Release()
		p.CommunityJailCard = false
	}
	for _, other := range s.Players {
		if other.PendingOffer != nil && other.PendingOffer.From == p.ID {
			other.PendingOffer = nil
		}
	}
	p.Bankruptcy(s.Board)
	log.Debug().Int("player", p.ID).Int("turn", s.Turn).Msg("player bankrupt")
}
