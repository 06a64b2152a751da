package game

type FieldKind int

const (
	Basic FieldKind = iota
	Start
	RealEstate
	Train
	Utility
	Tax
	GoToJail
	VisitJail
	Chance
	CommunityChest
)

var kindNames = [...]string{"basic", "start", "real_estate", "train", "utility", "tax", "go_to_jail", "visit_jail", "chance", "community_chest"}

func (k FieldKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k FieldKind) Purchasable() bool {
	return k == RealEstate || k == Train || k == Utility
}

type DeckKind int

const (
	NoDeck DeckKind = iota
	ChanceDeck
	CommunityDeck
)

// Field is a single board square. Purchase is set for purchasable kinds and
// Estate additionally for real estates.
type Field struct {
	ID       int
	Name     string
	Kind     FieldKind
	Tax      int      // amount charged by tax fields
	Deck     DeckKind // deck drawn from by card fields
	Purchase *Purchase
	Estate   *Estate
}

type Purchase struct {
	Owner     int // player ID, NoOwner when held by the bank
	Price     int
	Mortgaged bool
}

type Estate struct {
	Color     string
	Level     int // 0 to 4 houses, 5 is a hotel
	HouseCost int
	HotelCost int
	Rents     [MaxLevel + 1]int
}

func (f *Field) Purchasable() bool {
	return f.Purchase != nil
}

func (f *Field) Owner() int {
	if f.Purchase == nil {
		return NoOwner
	}
	return f.Purchase.Owner
}

func (f *Field) Mortgaged() bool {
	return f.Purchase != nil && f.Purchase.Mortgaged
}

func (f *Field) Level() int {
	if f.Estate == nil {
		return 0
	}
	return f.Estate.Level
}

// MortgageValue is the cash paid out by the bank for mortgaging the field.
func (f *Field) MortgageValue() int {
	return f.Purchase.Price / 2
}

// setOwner assigns the field. Returning a field to the bank lifts its mortgage
// and removes its buildings.
func (f *Field) setOwner(owner int) {
	f.Purchase.Owner = owner
	if owner == NoOwner {
		f.Purchase.Mortgaged = false
		if f.Estate != nil {
			f.Estate.Level = 0
		}
	}
}

func newField(row FieldRow, prop *PropertyRow) *Field {
	f := &Field{
		ID:   row.ID,
		Name: row.Name,
		Kind: kindOf(row.Type),
	}
	switch f.Kind {
	case Tax:
		f.Tax = row.Amount
	case Chance:
		f.Deck = ChanceDeck
	case CommunityChest:
		f.Deck = CommunityDeck
	}
	if f.Kind.Purchasable() {
		f.Purchase = &Purchase{Owner: NoOwner, Price: prop.Price}
	}
	if f.Kind == RealEstate {
		f.Estate = &Estate{
			Color:     prop.Color,
			HouseCost: prop.HousePrice,
			HotelCost: 5 * prop.HousePrice,
		}
		copy(f.Estate.Rents[:], prop.Rents)
	}
	return f
}
