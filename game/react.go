package game

import "github.com/rs/zerolog/log"

type reactOptions struct {
	rollSum int
}

type ReactOption func(*reactOptions)

// WithRollSum forces the dice sum used for utility fees. Without it the fee
// is based on a fresh throw.
func WithRollSum(sum int) ReactOption {
	return func(o *reactOptions) {
		o.rollSum = sum
	}
}

type reaction func(s *State, f *Field, p *Player, o reactOptions)

var reactions = map[FieldKind]reaction{
	Basic:          func(*State, *Field, *Player, reactOptions) {},
	Start:          func(*State, *Field, *Player, reactOptions) {},
	VisitJail:      func(*State, *Field, *Player, reactOptions) {},
	Tax:            func(s *State, f *Field, p *Player, _ reactOptions) { s.Pay(p, f.Tax) },
	GoToJail:       func(s *State, _ *Field, p *Player, _ reactOptions) { s.SendToJail(p) },
	RealEstate:     chargeFee(estateFee),
	Train:          chargeFee(trainFee),
	Utility:        chargeFee(utilityFee),
	Chance:         drawCard,
	CommunityChest: drawCard,
}

// React applies the effect of the field the player stands on.
func (s *State) React(p *Player, opts ...ReactOption) {
	o := reactOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	f := s.Board.Field(p.Position)
	reactions[f.Kind](s, f, p, o)
}

type feeFn func(s *State, f *Field, o reactOptions) int

// chargeFee transfers the field's fee from the lander to the owner.
func chargeFee(fee feeFn) reaction {
	return func(s *State, f *Field, p *Player, o reactOptions) {
		owner := f.Owner()
		if owner == NoOwner || owner == p.ID {
			return
		}
		if p.InJail() && !s.Rules.JailedPayRent() {
			return
		}
		amount := fee(s, f, o)
		if amount == 0 {
			return
		}
		log.Debug().Int("player", p.ID).Int("owner", owner).Int("field", f.ID).Int("fee", amount).Msg("fee charged")
		s.Transfer(p, s.Player(owner), amount)
	}
}

func estateFee(_ *State, f *Field, _ reactOptions) int {
	if f.Mortgaged() {
		return 0
	}
	return f.Estate.Rents[f.Estate.Level]
}

func trainFee(s *State, f *Field, _ reactOptions) int {
	if f.Mortgaged() {
		return 0
	}
	return s.Rules.StationFee(s.Board.CountOwned(f.Owner(), Train))
}

func utilityFee(s *State, f *Field, o reactOptions) int {
	if f.Mortgaged() {
		return 0
	}
	sum := o.rollSum
	if sum == 0 {
		sum = s.throwSum()
	}
	return sum * s.Rules.UtilityMultiplier(s.Board.IsMonopoly(f.ID))
}

func drawCard(s *State, f *Field, p *Player, _ reactOptions) {
	c := s.Decks[f.Deck].Draw(s.rng)
	log.Debug().Int("player", p.ID).Str("card", c.Name).Msg("card drawn")
	c.Apply(s, p)
}
