package engine

import "github.com/blockopoly/blockopoly-backend/app/models"

// Event is a domain event produced by a room mutation. Events carry
// payload fields only; the transport decides the wire format. Order of
// emission matches the order of the mutations that produced them.
type Event interface {
	Name() string
	// Private reports whether the event targets the acting player only
	// instead of the whole room.
	Private() bool
}

type broadcast struct{}

func (broadcast) Private() bool { return false }

type private struct{}

func (private) Private() bool { return true }

type PlayerJoined struct {
	broadcast
	Player models.Player `json:"player"`
	Count  int           `json:"count"`
}

func (PlayerJoined) Name() string { return "player-joined" }

type PlayerLeft struct {
	broadcast
	PlayerId string `json:"playerId"`
}

func (PlayerLeft) Name() string { return "player-left" }

type GameStarted struct {
	broadcast
	CurrentPlayerId string `json:"currentPlayerId"`
	SeedPrefix      string `json:"seed,omitempty"`
	TotalPool       int    `json:"totalPool"`
}

func (GameStarted) Name() string { return "game-started" }

type DiceRolled struct {
	broadcast
	PlayerId    string                `json:"playerId"`
	Total       int                   `json:"total"`
	NewPosition int                   `json:"newPosition"`
	LandedBlock models.Block          `json:"landedBlock"`
	Proof       models.VerifiableRoll `json:"randomnessProof"`
}

func (DiceRolled) Name() string { return "dice-rolled" }

type PassedStart struct {
	broadcast
	PlayerId string `json:"playerId"`
	Amount   int    `json:"amount"`
}

func (PassedStart) Name() string { return "passed-start" }

type CornerEffect struct {
	broadcast
	PlayerId     string `json:"playerId"`
	BlockName    string `json:"blockName"`
	AmountChange int    `json:"amountChange"`
	SkipTurns    int    `json:"skipTurns,omitempty"`
	SentToJail   bool   `json:"sentToJail,omitempty"`
}

func (CornerEffect) Name() string { return "corner-effect" }

type BuyOrPassPrompt struct {
	private
	PlayerId string       `json:"playerId"`
	Block    models.Block `json:"block"`
	Balance  int          `json:"balance"`
}

func (BuyOrPassPrompt) Name() string { return "buy-or-pass" }

type PropertyBought struct {
	broadcast
	PlayerId  string `json:"playerId"`
	BlockName string `json:"blockName"`
	Price     int    `json:"price"`
	Balance   int    `json:"balance"`
}

func (PropertyBought) Name() string { return "property-bought" }

type PropertyPassed struct {
	broadcast
	PlayerId  string `json:"playerId"`
	BlockName string `json:"blockName"`
}

func (PropertyPassed) Name() string { return "property-passed" }

type PropertySold struct {
	broadcast
	PlayerId  string `json:"playerId"`
	BlockName string `json:"blockName"`
	// SalePrice is the gross price before the fee on proceeds.
	SalePrice int `json:"salePrice"`
	Balance   int `json:"balance"`
}

func (PropertySold) Name() string { return "property-sold" }

type RentPaid struct {
	broadcast
	PayerId   string `json:"payerId"`
	OwnerId   string `json:"ownerId"`
	Amount    int    `json:"amount"`
	BlockName string `json:"blockName"`
}

func (RentPaid) Name() string { return "rent-paid" }

type InsufficientFunds struct {
	private
	PlayerId       string   `json:"playerId"`
	RentAmount     int      `json:"rentAmount"`
	CurrentBalance int      `json:"currentBalance"`
	OwnedBlocks    []string `json:"ownedBlocks"`
}

func (InsufficientFunds) Name() string { return "insufficient-funds" }

type JailChoicePrompt struct {
	private
	PlayerId      string `json:"playerId"`
	EscapePayment int    `json:"escapePayment"`
	DiceThreshold int    `json:"diceThreshold"`
}

func (JailChoicePrompt) Name() string { return "jail-choice" }

type JailRollResult struct {
	broadcast
	PlayerId string `json:"playerId"`
	Total    int    `json:"total"`
	Escaped  bool   `json:"escaped"`
	Paid     int    `json:"paid,omitempty"`
}

func (JailRollResult) Name() string { return "jail-roll-result" }

type TurnAdvanced struct {
	broadcast
	PlayerId string `json:"playerId"`
}

func (TurnAdvanced) Name() string { return "change-turn" }

type PlayerBankrupt struct {
	broadcast
	PlayerId     string `json:"playerId"`
	Rank         int    `json:"rank"`
	RewardAmount int    `json:"rewardAmount"`
}

func (PlayerBankrupt) Name() string { return "player-bankrupt" }

type GameEnded struct {
	broadcast
	Reason       string                 `json:"reason"`
	WinnerId     string                 `json:"winnerId"`
	WinnerReward int                    `json:"winnerReward"`
	Rankings     []models.PlayerRanking `json:"rankings"`
	Settlement   models.RankedPlayers   `json:"settlement"`
}

func (GameEnded) Name() string { return "game-ended" }
