package game

type Rules interface {
	StartingCash() int
	PassGoBonus() int
	JailFine() int
	JailTurns() int
	// StationFee returns the fee charged by an owner of count train stations.
	StationFee(count int) int
	UtilityMultiplier(bothOwned bool) int
	// LiftMortgageCost returns the cash needed to lift a mortgage worth value.
	LiftMortgageCost(value int) int
	// JailedPayRent reports whether a player serving jail time pays fees on landing.
	JailedPayRent() bool
}
