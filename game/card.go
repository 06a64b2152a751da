package game

type Card struct {
	Name     string
	JailFree bool
	apply    func(s *State, p *Player)
}

// Apply runs the card's effect on the drawing player.
func (c Card) Apply(s *State, p *Player) {
	c.apply(s, p)
}

func advanceTo(target int) func(*State, *Player) {
	return func(s *State, p *Player) {
		s.MoveTo(p, target)
		s.React(p)
	}
}

func collect(amount int) func(*State, *Player) {
	return func(s *State, p *Player) { s.Collect(p, amount) }
}

func pay(amount int) func(*State, *Player) {
	return func(s *State, p *Player) { s.Pay(p, amount) }
}

// fromEachPlayer moves amount from every other player in the game to p.
func fromEachPlayer(amount int) func(*State, *Player) {
	return func(s *State, p *Player) {
		for _, other := range s.InGame() {
			if other.ID != p.ID {
				s.Transfer(other, p, amount)
			}
		}
	}
}

// repairs charges perLevel for each build level and hotelExtra for each hotel.
func repairs(perLevel, hotelExtra int) func(*State, *Player) {
	return func(s *State, p *Player) {
		fee := 0
		for _, id := range p.Properties {
			level := s.Board.Field(id).Level()
			fee += level * perLevel
			if level == MaxLevel {
				fee += hotelExtra
			}
		}
		s.Pay(p, fee)
	}
}

func grantJailCard(kind DeckKind) func(*State, *Player) {
	return func(s *State, p *Player) {
		switch kind {
		case ChanceDeck:
			p.ChanceJailCard = true
		case CommunityDeck:
			p.CommunityJailCard = true
		}
	}
}

func goToJail(s *State, p *Player) {
	s.SendToJail(p)
}

func nearestRailroad(s *State, p *Player) {
	s.MoveTo(p, s.Board.Nearest(p.Position, Train))
	// owner collects twice the usual fee
	s.React(p)
	s.React(p)
}

func nearestUtility(s *State, p *Player) {
	s.MoveTo(p, s.Board.Nearest(p.Position, Utility))
	s.React(p)
}

func backThree(s *State, p *Player) {
	p.Position = (p.Position - 3 + BoardSize) % BoardSize
	s.React(p)
}

// readingRailroad moves to the first station without charging a fee.
func readingRailroad(s *State, p *Player) {
	s.MoveTo(p, 5)
}

func ChanceCards() []Card {
	return []Card{
		{Name: "Advance to Boardwalk", apply: advanceTo(39)},
		{Name: "Advance to Go", apply: advanceTo(0)},
		{Name: "Advance to Illinois Avenue", apply: advanceTo(24)},
		{Name: "Advance to St. Charles Place", apply: advanceTo(11)},
		{Name: "Advance to the nearest Railroad", apply: nearestRailroad},
		{Name: "Advance to the nearest Utility", apply: nearestUtility},
		{Name: "Bank pays you dividend", apply: collect(50)},
		{Name: "Get out of Jail Free", JailFree: true, apply: grantJailCard(ChanceDeck)},
		{Name: "Go back 3 spaces", apply: backThree},
		{Name: "Go to Jail", apply: goToJail},
		{Name: "Make general repairs on all your property", apply: repairs(25, 75)},
		{Name: "Speeding fine", apply: pay(15)},
		{Name: "Take a trip to Reading Railroad", apply: readingRailroad},
		{Name: "You have been elected Chairman of the Board", apply: fromEachPlayer(50)},
		{Name: "Your building loan matures", apply: collect(150)},
	}
}

func CommunityCards() []Card {
	return []Card{
		{Name: "Advance to Go", apply: advanceTo(0)},
		{Name: "Bank error in your favor", apply: collect(200)},
		{Name: "Doctor's fee", apply: pay(50)},
		{Name: "From sale of stock you get", apply: collect(50)},
		{Name: "Get out of Jail Free", JailFree: true, apply: grantJailCard(CommunityDeck)},
		{Name: "Go to Jail", apply: goToJail},
		{Name: "Holiday fund matures", apply: collect(100)},
		{Name: "Income tax refund", apply: collect(20)},
		{Name: "It is your birthday", apply: fromEachPlayer(10)},
		{Name: "Life insurance matures", apply: collect(100)},
		{Name: "Pay hospital fees", apply: pay(100)},
		{Name: "Pay school fees", apply: pay(50)},
		{Name: "Receive consultancy fee", apply: collect(25)},
		{Name: "You are assessed for street repair", apply: repairs(40, 75)},
		{Name: "You have won second prize in a beauty contest", apply: collect(10)},
		{Name: "You inherit", apply: collect(100)},
	}
}
