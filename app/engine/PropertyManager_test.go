package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockopoly/blockopoly-backend/app/models"
	"github.com/blockopoly/blockopoly-backend/platform/board"
)

func TestResolveLanding(t *testing.T) {
	cfg := DefaultConfig()
	p1 := &models.Player{Id: "p1", Balance: 500}
	p2 := &models.Player{Id: "p2", Balance: 500}
	players := []*models.Player{p1, p2}

	unowned := &models.Block{Name: "Baltic Avenue", Price: 60, Rent: 10}
	result := ResolveLanding(p1, unowned, players, cfg)
	assert.Equal(t, ActionBuyOrPass, result.Action)

	owned := &models.Block{Name: "Oriental Avenue", Price: 100, Rent: 15, Owner: "p2"}
	result = ResolveLanding(p1, owned, players, cfg)
	assert.Equal(t, ActionPayRent, result.Action)
	require.NotNil(t, result.Owner)
	assert.Equal(t, "p2", result.Owner.Id)
	assert.Equal(t, 15, result.Rent)

	mine := &models.Block{Name: "Vermont Avenue", Price: 100, Rent: 15, Owner: "p1"}
	result = ResolveLanding(p1, mine, players, cfg)
	assert.Equal(t, ActionOwnProperty, result.Action)
}

func TestResolveLandingOrphanedOwnerPanics(t *testing.T) {
	cfg := DefaultConfig()
	p1 := &models.Player{Id: "p1"}
	ghost := &models.Block{Name: "Baltic Avenue", Price: 60, Owner: "gone"}

	assert.Panics(t, func() {
		ResolveLanding(p1, ghost, []*models.Player{p1}, cfg)
	})
}

func TestCalculateRent(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 35, CalculateRent(&models.Block{Rent: 35}, cfg))
	// Blocks without a rent fall back to the default.
	assert.Equal(t, DefaultRent, CalculateRent(&models.Block{}, cfg))

	cfg.RentStrategy = func(b *models.Block) int { return b.Price / 2 }
	assert.Equal(t, 50, CalculateRent(&models.Block{Price: 100, Rent: 35}, cfg))
}

func TestHandleRentPayment(t *testing.T) {
	cfg := DefaultConfig()
	payer := &models.Player{Id: "p1", Balance: 100}
	owner := &models.Player{Id: "p2", Balance: 0}
	b := &models.Block{Name: "New York Avenue", Rent: 35, Owner: "p2"}

	result := HandleRentPayment(payer, owner, b, cfg)
	assert.True(t, result.Success)
	assert.Equal(t, 35, result.RentAmount)
	assert.Equal(t, 64, payer.Balance)
	assert.Equal(t, 35, owner.Balance)

	payer.Balance = 35
	result = HandleRentPayment(payer, owner, b, cfg)
	assert.False(t, result.Success)
	assert.True(t, result.InsufficientFunds)
	assert.Equal(t, 35, payer.Balance)
	assert.Equal(t, 35, owner.Balance)
}

func TestPropertyValue(t *testing.T) {
	assert.Equal(t, 60, PropertyValue(&models.Block{Price: 100}, 0.6))
	assert.Equal(t, 36, PropertyValue(&models.Block{Price: 60}, 0.6))
	// 0.6 * 220 = 132.
	assert.Equal(t, 132, PropertyValue(&models.Block{Price: 220}, 0.6))
}

func TestCanCoverRentBySelling(t *testing.T) {
	cfg := DefaultConfig()
	brd := board.New()
	p := &models.Player{Id: "p1", Balance: 20, OwnedBlocks: []string{"Baltic Avenue"}}
	brd.GetBlockByName("Baltic Avenue").Owner = "p1"

	// 20 cash + 36 liquidation vs 35 rent + 1 fee.
	assert.True(t, CanCoverRentBySelling(p, 35, brd, cfg))
	// 20 + 36 < 55 + 2.
	assert.False(t, CanCoverRentBySelling(p, 55, brd, cfg))

	broke := &models.Player{Id: "p2", Balance: 10}
	assert.False(t, CanCoverRentBySelling(broke, 35, brd, cfg))
}

func TestNetWorth(t *testing.T) {
	brd := board.New()
	p := &models.Player{Id: "p1", Balance: 100, OwnedBlocks: []string{"Oriental Avenue", "Kentucky Avenue"}}
	brd.GetBlockByName("Oriental Avenue").Owner = "p1"
	brd.GetBlockByName("Kentucky Avenue").Owner = "p1"

	// 100 + floor(100*0.6) + floor(220*0.6).
	assert.Equal(t, 100+60+132, NetWorth(p, brd, 0.6))
	assert.Equal(t, 60+132, TotalOwnedValue(p, brd, 0.6))
}
