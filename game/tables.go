package game

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/board.yaml
var standardBoard []byte

// FieldRow is one row of the field table.
type FieldRow struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Amount int    `yaml:"amount"` // tax fields only
}

// PropertyRow is one row of the property table, joined to FieldRow on ID.
type PropertyRow struct {
	ID         int    `yaml:"id"`
	Price      int    `yaml:"price"`
	Color      string `yaml:"color"`
	Rents      []int  `yaml:"rents"`
	HousePrice int    `yaml:"house_price"`
}

type Tables struct {
	Fields     []FieldRow    `yaml:"fields"`
	Properties []PropertyRow `yaml:"properties"`
}

var fieldKinds = map[string]FieldKind{
	"basic":           Basic,
	"start":           Start,
	"property":        RealEstate,
	"train":           Train,
	"utility":         Utility,
	"tax":             Tax,
	"go_to_jail":      GoToJail,
	"visit_jail":      VisitJail,
	"chance":          Chance,
	"community_chest": CommunityChest,
}

// kindOf maps a type code to its field kind. Unknown codes are plain fields.
func kindOf(code string) FieldKind {
	if k, ok := fieldKinds[code]; ok {
		return k
	}
	return Basic
}

// LoadTables decodes the field and property tables from a YAML document.
func LoadTables(r io.Reader) (*Tables, error) {
	var t Tables
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func LoadTablesFile(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open board tables: %w", err)
	}
	defer f.Close()
	return LoadTables(f)
}

// StandardTables returns the tables of the standard 40-field board.
func StandardTables() *Tables {
	t, err := LoadTables(bytes.NewReader(standardBoard))
	if err != nil {
		panic(fmt.Sprintf("embedded board tables are invalid: %v", err))
	}
	return t
}

// Validate checks that the tables describe a complete board.
func (t *Tables) Validate() error {
	if len(t.Fields) != BoardSize {
		return fmt.Errorf("%w: expected %d fields, got %d", ErrConfig, BoardSize, len(t.Fields))
	}
	seen := make([]bool, BoardSize)
	jails := 0
	for _, row := range t.Fields {
		if row.ID < 0 || row.ID >= BoardSize {
			return fmt.Errorf("%w: field id %d out of range", ErrConfig, row.ID)
		}
		if seen[row.ID] {
			return fmt.Errorf("%w: duplicate field id %d", ErrConfig, row.ID)
		}
		seen[row.ID] = true
		switch kindOf(row.Type) {
		case VisitJail:
			jails++
		case Tax:
			if row.Amount <= 0 {
				return fmt.Errorf("%w: tax field %d has no amount", ErrConfig, row.ID)
			}
		}
	}
	if jails != 1 {
		return fmt.Errorf("%w: expected one jail field, got %d", ErrConfig, jails)
	}

	props := make(map[int]PropertyRow, len(t.Properties))
	for _, row := range t.Properties {
		if _, ok := props[row.ID]; ok {
			return fmt.Errorf("%w: duplicate property id %d", ErrConfig, row.ID)
		}
		props[row.ID] = row
	}
	purchasable, estates := 0, 0
	for _, row := range t.Fields {
		kind := kindOf(row.Type)
		if kind.Purchasable() {
			purchasable++
		}
		if kind == RealEstate {
			estates++
		}
	}
	if purchasable != PropertyCount || estates != EstateCount {
		return fmt.Errorf("%w: expected %d purchasable fields with %d real estates, got %d with %d",
			ErrConfig, PropertyCount, EstateCount, purchasable, estates)
	}
	for _, row := range t.Fields {
		kind := kindOf(row.Type)
		if !kind.Purchasable() {
			if _, ok := props[row.ID]; ok {
				return fmt.Errorf("%w: property row for non-purchasable field %d", ErrConfig, row.ID)
			}
			continue
		}
		prop, ok := props[row.ID]
		if !ok {
			return fmt.Errorf("%w: no property row for field %d", ErrConfig, row.ID)
		}
		if prop.Price <= 0 {
			return fmt.Errorf("%w: field %d has non-positive price", ErrConfig, row.ID)
		}
		if kind == RealEstate {
			if len(prop.Rents) != MaxLevel+1 {
				return fmt.Errorf("%w: field %d has %d rents, want %d", ErrConfig, row.ID, len(prop.Rents), MaxLevel+1)
			}
			if prop.HousePrice <= 0 || prop.Color == "" {
				return fmt.Errorf("%w: field %d has no color group or house price", ErrConfig, row.ID)
			}
		}
	}
	return nil
}
