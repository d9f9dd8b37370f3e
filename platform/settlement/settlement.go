package settlement

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/blockopoly/blockopoly-backend/app/models"
)

// Settler is the boundary to the external system that actually moves
// value once a game ends. The core computes rankings and amounts; it
// never performs the payout itself.
type Settler interface {
	Distribute(ctx context.Context, gameId string, ranked models.RankedPlayers, rewards map[string]int) error
}

// LogSettler records the payout instead of executing it. Used when no
// ledger backend is configured.
type LogSettler struct{}

func (LogSettler) Distribute(ctx context.Context, gameId string, ranked models.RankedPlayers, rewards map[string]int) error {
	logrus.WithFields(logrus.Fields{
		"game_id":  gameId,
		"winner":   ranked[0],
		"runner_1": ranked[1],
		"runner_2": ranked[2],
		"last":     ranked[3],
		"rewards":  rewards,
	}).Info("settlement requested")
	return nil
}
