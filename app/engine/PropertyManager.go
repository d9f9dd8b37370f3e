package engine

import (
	"fmt"
	"math"

	"github.com/blockopoly/blockopoly-backend/app/models"
	"github.com/blockopoly/blockopoly-backend/platform/board"
)

// Resolution of what happens when a player lands on an ownable block.

type LandingAction int

const (
	ActionBuyOrPass LandingAction = iota
	ActionPayRent
	ActionOwnProperty
)

type LandingResult struct {
	Action LandingAction
	Owner  *models.Player
	Rent   int
}

// ResolveLanding decides the outcome of landing on a non-corner block.
// A block owned by a player who is no longer in the room is a state
// bookkeeping bug, not a user error, and panics.
func ResolveLanding(p *models.Player, b *models.Block, players []*models.Player, cfg Config) LandingResult {
	if b.IsOwned() && b.Owner != p.Id {
		owner := GetPlayerById(players, b.Owner)
		if owner == nil {
			panic(fmt.Sprintf("block %q owned by %q who is not in the room", b.Name, b.Owner))
		}
		return LandingResult{Action: ActionPayRent, Owner: owner, Rent: CalculateRent(b, cfg)}
	}
	if !b.IsOwned() {
		return LandingResult{Action: ActionBuyOrPass}
	}
	return LandingResult{Action: ActionOwnProperty}
}

// CalculateRent returns the block's rent, through the configured
// per-block strategy when one is set.
func CalculateRent(b *models.Block, cfg Config) int {
	if cfg.RentStrategy != nil {
		if rent := cfg.RentStrategy(b); rent > 0 {
			return rent
		}
	}
	if b.Rent > 0 {
		return b.Rent
	}
	return DefaultRent
}

type RentPaymentResult struct {
	Success           bool
	RentAmount        int
	InsufficientFunds bool
}

// HandleRentPayment attempts the transfer. On insufficient funds nothing
// is mutated; the caller decides whether that means selling or bankruptcy.
func HandleRentPayment(payer, owner *models.Player, b *models.Block, cfg Config) RentPaymentResult {
	rent := CalculateRent(b, cfg)
	if !CanAffordRent(payer, rent, cfg.FeeRate) {
		return RentPaymentResult{RentAmount: rent, InsufficientFunds: true}
	}
	return RentPaymentResult{Success: PayRent(payer, owner, rent, cfg.FeeRate), RentAmount: rent}
}

// PropertyValue is what a block would fetch on liquidation, before the
// fee on proceeds.
func PropertyValue(b *models.Block, sellRate float64) int {
	return int(math.Floor(float64(b.Price) * sellRate))
}

func TotalOwnedValue(p *models.Player, brd *board.Board, sellRate float64) int {
	total := 0
	for _, name := range p.OwnedBlocks {
		if b := brd.GetBlockByName(name); b != nil && !b.Corner {
			total += PropertyValue(b, sellRate)
		}
	}
	return total
}

// CanCoverRentBySelling reports whether cash plus full liquidation could
// close an owed rent including its fee.
func CanCoverRentBySelling(p *models.Player, rentAmount int, brd *board.Board, cfg Config) bool {
	owed := rentAmount + Fee(rentAmount, cfg.FeeRate)
	return p.Balance+TotalOwnedValue(p, brd, cfg.SellRate) >= owed
}

func NetWorth(p *models.Player, brd *board.Board, sellRate float64) int {
	return p.Balance + TotalOwnedValue(p, brd, sellRate)
}
