package models

// Player is the in-room economic state of one participant. It is owned by
// exactly one game room and only mutated through the engine.
type Player struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Color       string   `json:"colorCode"`
	Balance     int      `json:"balance"`
	Position    int      `json:"position"`
	OwnedBlocks []string `json:"ownedBlocks"`
	InJail      bool     `json:"inJail"`
	SkipTurns   int      `json:"skipTurns"`

	// ConnRef is an opaque transport connection id. The engine never
	// resolves it, the socket layer does.
	ConnRef string `json:"-"`
}

func (p *Player) Owns(blockName string) bool {
	for _, name := range p.OwnedBlocks {
		if name == blockName {
			return true
		}
	}
	return false
}

// PendingRent is a rent obligation the current player cannot pay in full yet.
type PendingRent struct {
	Amount    int    `json:"amount"`
	OwnerId   string `json:"ownerId"`
	BlockName string `json:"blockName"`
}

// PlayerRanking is the permanent place a player finished at. Rank 1 wins.
type PlayerRanking struct {
	PlayerId string `json:"playerId"`
	Rank     int    `json:"rank"`
}

// RankedPlayers is the fixed four-slot payout list handed to settlement:
// winner, first runner-up, second runner-up, last place. When fewer than
// four players existed, the lowest-known rank repeats.
type RankedPlayers [4]string

// VerifiableRoll is a dice result plus the material needed to audit it
// after the fact.
type VerifiableRoll struct {
	Total      int    `json:"total"`
	Round      int    `json:"round"`
	Proof      string `json:"proof"`
	SeedPrefix string `json:"seed"`
	Timestamp  int64  `json:"timestamp"`
}
