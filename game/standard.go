package game

type StandardRules struct {
	Cash          int
	GoBonus       int
	Fine          int
	Turns         int
	StationFees   map[int]int
	UtilitySingle int
	UtilityBoth   int
	InterestNum   int // mortgage interest as a fraction InterestNum/InterestDen
	InterestDen   int
	JailedPays    bool
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		Cash:          1500,
		GoBonus:       200,
		Fine:          50,
		Turns:         3,
		StationFees:   map[int]int{1: 25, 2: 50, 3: 100, 4: 200},
		UtilitySingle: 4,
		UtilityBoth:   10,
		InterestNum:   11,
		InterestDen:   10,
	}
}

func (sr *StandardRules) StartingCash() int { return sr.Cash }
func (sr *StandardRules) PassGoBonus() int  { return sr.GoBonus }
func (sr *StandardRules) JailFine() int     { return sr.Fine }
func (sr *StandardRules) JailTurns() int    { return sr.Turns }

func (sr *StandardRules) StationFee(count int) int {
	return sr.StationFees[count]
}

func (sr *StandardRules) UtilityMultiplier(bothOwned bool) int {
	if bothOwned {
		return sr.UtilityBoth
	}
	return sr.UtilitySingle
}

func (sr *StandardRules) LiftMortgageCost(value int) int {
	return value * sr.InterestNum / sr.InterestDen
}

func (sr *StandardRules) JailedPayRent() bool {
	return sr.JailedPays
}
