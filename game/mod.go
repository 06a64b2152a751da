package game

import "errors"

const (
	BoardSize  = 40
	MaxPlayers = 4
	MaxLevel   = 5 // four houses and a hotel

	NoOwner    = -1
	NoProperty = -1
)

type Phase int

const (
	PreRoll Phase = iota
	OutOfTurn
	PostRoll
)

func (p Phase) String() string {
	switch p {
	case PreRoll:
		return "pre_roll"
	case OutOfTurn:
		return "out_of_turn"
	case PostRoll:
		return "post_roll"
	}
	return "unknown"
}

var (
	ErrConfig = errors.New("game: invalid board configuration")

	ErrNotOwner         = errors.New("game: player does not own the field")
	ErrNotPurchasable   = errors.New("game: field cannot be owned")
	ErrNotRealEstate    = errors.New("game: field cannot hold buildings")
	ErrNoMonopoly       = errors.New("game: color group is not a monopoly")
	ErrMortgaged        = errors.New("game: field is mortgaged")
	ErrNotMortgaged     = errors.New("game: field is not mortgaged")
	ErrMortgagedGroup   = errors.New("game: color group has a mortgaged field")
	ErrBuilt            = errors.New("game: field has buildings")
	ErrUneven           = errors.New("game: buildings must stay even across the color group")
	ErrMaxLevel         = errors.New("game: field already has a hotel")
	ErrNoBuildings      = errors.New("game: field has no buildings")
	ErrInsufficientCash = errors.New("game: insufficient cash")
	ErrNotInJail        = errors.New("game: player is not in jail")
	ErrNoJailCard       = errors.New("game: player has no jail free card")

	ErrEmptyOffer     = errors.New("game: offer carries no property")
	ErrInvalidOffer   = errors.New("game: invalid offer")
	ErrOfferPending   = errors.New("game: target player already has a pending offer")
	ErrBankruptTarget = errors.New("game: target player is bankrupt")
	ErrStaleOffer     = errors.New("game: offer no longer matches ownership")
	ErrUntradeable    = errors.New("game: property has buildings or is mortgaged")
)
