package game

import (
	"cmp"
	"slices"

	"monopoly/utils"

	"github.com/rs/zerolog/log"
)

// MaxRecoveryPasses bounds how many mortgage phases RecoverBalance runs.
// Building sales happen only between two mortgage phases.
const MaxRecoveryPasses = 2

// IdentifyMortgages picks the cheapest mortgageable properties whose combined
// mortgage value covers need. When they cannot cover it, all are returned.
func IdentifyMortgages(s *State, p *Player, need int) ([]int, int) {
	if need <= 0 {
		return []int{}, 0
	}
	ids := []int{}
	for _, id := range p.Properties {
		if s.CanMortgage(p, id) == nil {
			ids = append(ids, id)
		}
	}
	slices.SortStableFunc(ids, func(a, b int) int {
		return cmp.Compare(s.Board.Field(a).MortgageValue(), s.Board.Field(b).MortgageValue())
	})
	values := make([]int, len(ids))
	for i, id := range ids {
		values[i] = s.Board.Field(id).MortgageValue()
	}
	n, cash := utils.Cover(values, need)
	return ids[:n], cash
}

type buildingSale struct {
	id    int
	group int // lowest field ID of the color group
	level int
	value int
}

// IdentifySalesToBank picks buildings to sell back to the bank until their
// refunds cover need. The result holds one field ID per building, ordered so
// that selling in sequence keeps every group even.
func IdentifySalesToBank(s *State, p *Player, need int) ([]int, int) {
	if need <= 0 {
		return []int{}, 0
	}
	sales := []buildingSale{}
	for _, id := range p.Properties {
		f := s.Board.Field(id)
		if f.Estate == nil {
			continue
		}
		group, _ := s.Board.PropertyGroupIDs(id)
		for level := f.Estate.Level; level > 0; level-- {
			sales = append(sales, buildingSale{id: id, group: group[0], level: level, value: buildingRefund(f, level)})
		}
	}
	slices.SortStableFunc(sales, func(a, b buildingSale) int {
		return cmp.Or(
			cmp.Compare(a.group, b.group),
			cmp.Compare(b.level, a.level),
			cmp.Compare(a.id, b.id),
		)
	})
	values := make([]int, len(sales))
	for i, sale := range sales {
		values[i] = sale.value
	}
	n, cash := utils.Cover(values, need)
	ids := make([]int, n)
	for i := range ids {
		ids[i] = sales[i].id
	}
	return ids, cash
}

// RecoverBalance raises cash for a player in debt: mortgages, then building
// sales, then mortgages of the fields the sales freed. It reports whether
// the player ends with a non-negative balance.
func (s *State) RecoverBalance(p *Player) bool {
	for pass := 1; p.Cash < 0; pass++ {
		mortgages, _ := IdentifyMortgages(s, p, -p.Cash)
		for _, id := range mortgages {
			if err := s.Mortgage(p, id); err != nil {
				log.Warn().Err(err).Int("player", p.ID).Int("field", id).Msg("recovery mortgage failed")
			}
		}
		if p.Cash >= 0 || pass == MaxRecoveryPasses {
			break
		}
		sales, _ := IdentifySalesToBank(s, p, -p.Cash)
		for _, id := range sales {
			if err := s.SellBuilding(p, id); err != nil {
				log.Warn().Err(err).Int("player", p.ID).Int("field", id).Msg("recovery sale failed")
			}
		}
	}
	return p.Cash >= 0
}
