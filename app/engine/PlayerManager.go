package engine

import (
	"crypto/rand"
	"encoding/hex"
	"math"
	mrand "math/rand"

	"github.com/blockopoly/blockopoly-backend/app/models"
)

// Pure operations over a single player's economic state.

func NewPlayer(name, color, id string) *models.Player {
	if id == "" {
		id = generatePlayerId()
	}
	if color == "" {
		color = DefaultPlayerColors[mrand.Intn(len(DefaultPlayerColors))]
	}
	return &models.Player{
		Id:          id,
		Name:        name,
		Color:       color,
		Balance:     StartingBalance,
		Position:    0,
		OwnedBlocks: []string{},
	}
}

func generatePlayerId() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Fee is the transaction fee charged on amount at the given rate,
// rounded down.
func Fee(amount int, rate float64) int {
	return int(math.Floor(float64(amount) * rate))
}

type MoveResult struct {
	NewPosition int
	PassedStart bool
}

// MovePlayer advances the player around the cyclic board. PassedStart is
// the strict wrap rule: true iff position+dice reached or passed the
// board length. Landing exactly on the start block wraps and therefore
// counts.
func MovePlayer(p *models.Player, diceTotal, boardLength int) MoveResult {
	wrapped := p.Position+diceTotal >= boardLength
	p.Position = (p.Position + diceTotal) % boardLength
	return MoveResult{NewPosition: p.Position, PassedStart: wrapped}
}

func CollectStartBonus(p *models.Player, amount int) {
	p.Balance += amount
}

func CanAffordProperty(p *models.Player, b *models.Block, feeRate float64) bool {
	return p.Balance >= b.Price+Fee(b.Price, feeRate)
}

func CanAffordRent(p *models.Player, amount int, feeRate float64) bool {
	return p.Balance >= amount+Fee(amount, feeRate)
}

// BuyProperty debits price plus fee and transfers ownership. Returns
// false without mutation when the player cannot afford it or the block
// is already owned.
func BuyProperty(p *models.Player, b *models.Block, feeRate float64) bool {
	if b.IsOwned() || b.Corner || !CanAffordProperty(p, b, feeRate) {
		return false
	}
	p.Balance -= b.Price + Fee(b.Price, feeRate)
	p.OwnedBlocks = append(p.OwnedBlocks, b.Name)
	b.Owner = p.Id
	return true
}

// SellProperty liquidates an owned block. The player is credited the
// gross sale price minus the fee on proceeds; the gross price is what
// gets reported to observers. Returns 0 without mutation when the block
// is not owned by the player.
func SellProperty(p *models.Player, b *models.Block, sellRate, feeRate float64) int {
	if !p.Owns(b.Name) {
		return 0
	}
	gross := int(math.Floor(float64(b.Price) * sellRate))
	p.Balance += gross - Fee(gross, feeRate)
	for i, name := range p.OwnedBlocks {
		if name == b.Name {
			p.OwnedBlocks = append(p.OwnedBlocks[:i], p.OwnedBlocks[i+1:]...)
			break
		}
	}
	b.Owner = ""
	return gross
}

// PayRent debits the payer amount plus fee and credits the owner exactly
// amount. The fee is absorbed, not forwarded.
func PayRent(payer, owner *models.Player, amount int, feeRate float64) bool {
	if !CanAffordRent(payer, amount, feeRate) {
		return false
	}
	payer.Balance -= amount + Fee(amount, feeRate)
	owner.Balance += amount
	return true
}

func GetPlayerById(players []*models.Player, id string) *models.Player {
	for _, p := range players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

func IsDuplicateId(players []*models.Player, id string) bool {
	return GetPlayerById(players, id) != nil
}

func NextIndex(current, total int) int {
	return (current + 1) % total
}

// ValidateTurn is true iff the game started and playerId is the player
// at the current turn index.
func ValidateTurn(room *GameRoom, playerId string) bool {
	if room.State != StateInProgress {
		return false
	}
	current := room.GetCurrentPlayer()
	return current != nil && current.Id == playerId
}
