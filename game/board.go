package game

import "fmt"

// Board holds the 40 fields. Its topology never changes after construction;
// ownership, build levels and mortgages live on the fields themselves.
type Board struct {
	fields     []*Field
	groups     map[int][]int // field ID -> IDs of its group, in board order
	properties []int         // purchasable field IDs in board order
	estates    []int         // real estate field IDs in board order
	propIndex  map[int]int
	estIndex   map[int]int
	prison     int
}

// NewBoard joins the field and property tables into a board.
func NewBoard(t *Tables) (*Board, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	props := make(map[int]*PropertyRow, len(t.Properties))
	for i := range t.Properties {
		props[t.Properties[i].ID] = &t.Properties[i]
	}

	b := &Board{
		fields:    make([]*Field, BoardSize),
		groups:    make(map[int][]int),
		propIndex: make(map[int]int),
		estIndex:  make(map[int]int),
	}
	for _, row := range t.Fields {
		b.fields[row.ID] = newField(row, props[row.ID])
	}

	byGroup := make(map[string][]int)
	for _, f := range b.fields {
		switch f.Kind {
		case VisitJail:
			b.prison = f.ID
		case RealEstate:
			b.estIndex[f.ID] = len(b.estates)
			b.estates = append(b.estates, f.ID)
			byGroup["estate:"+f.Estate.Color] = append(byGroup["estate:"+f.Estate.Color], f.ID)
		case Train, Utility:
			byGroup[f.Kind.String()] = append(byGroup[f.Kind.String()], f.ID)
		}
		if f.Purchasable() {
			b.propIndex[f.ID] = len(b.properties)
			b.properties = append(b.properties, f.ID)
		}
	}
	for _, ids := range byGroup {
		for _, id := range ids {
			b.groups[id] = ids
		}
	}
	return b, nil
}

// NewStandardBoard builds the standard board from the embedded tables.
func NewStandardBoard() *Board {
	b, err := NewBoard(StandardTables())
	if err != nil {
		panic(fmt.Sprintf("failed to build standard board: %v", err))
	}
	return b
}

func (b *Board) Field(id int) *Field {
	return b.fields[id]
}

func (b *Board) Fields() []*Field {
	return b.fields
}

// PropertyGroupIDs returns the IDs of the group the field belongs to: its color
// group for a real estate, all stations for a train, all utilities for a
// utility. The second result is false for fields that cannot be owned.
func (b *Board) PropertyGroupIDs(id int) ([]int, bool) {
	ids, ok := b.groups[id]
	return ids, ok
}

// Properties returns the IDs of all purchasable fields in board order.
func (b *Board) Properties() []int {
	return b.properties
}

// RealEstates returns the IDs of all fields that can hold buildings.
func (b *Board) RealEstates() []int {
	return b.estates
}

// PropertyIndex maps a purchasable field ID to its position in Properties, or -1.
func (b *Board) PropertyIndex(id int) int {
	if i, ok := b.propIndex[id]; ok {
		return i
	}
	return -1
}

// EstateIndex maps a real estate field ID to its position in RealEstates, or -1.
func (b *Board) EstateIndex(id int) int {
	if i, ok := b.estIndex[id]; ok {
		return i
	}
	return -1
}

func (b *Board) PrisonID() int {
	return b.prison
}

// IsMonopoly reports whether one player owns every field of the field's group.
func (b *Board) IsMonopoly(id int) bool {
	ids, ok := b.groups[id]
	if !ok {
		return false
	}
	owner := b.fields[ids[0]].Owner()
	if owner == NoOwner {
		return false
	}
	for _, gid := range ids[1:] {
		if b.fields[gid].Owner() != owner {
			return false
		}
	}
	return true
}

// CountOwned returns how many fields of the given kind belong to owner.
func (b *Board) CountOwned(owner int, kind FieldKind) int {
	count := 0
	for _, id := range b.properties {
		f := b.fields[id]
		if f.Kind == kind && f.Owner() == owner {
			count++
		}
	}
	return count
}

// GroupLevels returns the lowest and highest build level across the group.
func (b *Board) GroupLevels(id int) (lo, hi int) {
	ids := b.groups[id]
	lo = MaxLevel
	for _, gid := range ids {
		level := b.fields[gid].Level()
		lo = min(lo, level)
		hi = max(hi, level)
	}
	return lo, hi
}

func (b *Board) groupMortgaged(id int) bool {
	for _, gid := range b.groups[id] {
		if b.fields[gid].Mortgaged() {
			return true
		}
	}
	return false
}

// Tradeable reports whether the property may change hands between players:
// it is neither mortgaged nor built on.
func (b *Board) Tradeable(id int) bool {
	f := b.fields[id]
	return f.Purchasable() && !f.Mortgaged() && f.Level() == 0
}

// Nearest returns the first field of the given kind strictly ahead of pos.
func (b *Board) Nearest(pos int, kind FieldKind) int {
	for step := 1; step <= BoardSize; step++ {
		id := (pos + step) % BoardSize
		if b.fields[id].Kind == kind {
			return id
		}
	}
	return pos
}
