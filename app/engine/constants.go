package engine

import "github.com/blockopoly/blockopoly-backend/app/models"

// Canonical game configuration. All economic knobs live here; the board
// shape lives in platform/board.
const (
	StartingBalance = 500
	StartBonus      = 70

	// TransactionFeeRate is charged to the paying party on every purchase
	// and rent payment. Sales are charged on the proceeds instead.
	TransactionFeeRate = 0.05

	// PropertySellRate: properties liquidate at 60% of purchase price.
	PropertySellRate = 0.6

	DefaultRent = 50

	MinPlayers = 2
	MaxPlayers = 4

	JailEscapePayment       = 200
	JailEscapeDiceThreshold = 4
)

var DefaultPlayerColors = []string{"#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#FF00FF", "#00FFFF"}

type Config struct {
	StartingBalance int
	StartBonus      int
	FeeRate         float64
	SellRate        float64
	MinPlayers      int
	MaxPlayers      int

	JailEscapePayment       int
	JailEscapeDiceThreshold int

	// JailHoldsTurn keeps the turn on the jailed player until they resolve
	// pay-or-roll. When false the turn advances and the jailed player
	// resolves at the start of their own next turn.
	JailHoldsTurn bool

	// RentStrategy overrides the static rent of a block when set.
	RentStrategy func(*models.Block) int
}

func DefaultConfig() Config {
	return Config{
		StartingBalance:         StartingBalance,
		StartBonus:              StartBonus,
		FeeRate:                 TransactionFeeRate,
		SellRate:                PropertySellRate,
		MinPlayers:              MinPlayers,
		MaxPlayers:              MaxPlayers,
		JailEscapePayment:       JailEscapePayment,
		JailEscapeDiceThreshold: JailEscapeDiceThreshold,
		JailHoldsTurn:           true,
	}
}
