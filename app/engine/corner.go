package engine

import "github.com/blockopoly/blockopoly-backend/app/models"

// applyCornerEffect dispatches a corner block's tagged effect kind onto
// the landing player and returns the balance delta. The start corner
// changes nothing here: its bonus is paid on pass, not on landing.
func applyCornerEffect(kind models.CornerKind, amount int, p *models.Player) (delta int, jailed bool) {
	switch kind {
	case models.CornerSkipTurnAndPay:
		p.SkipTurns++
		p.Balance += amount
		return amount, false
	case models.CornerSendToJail:
		p.InJail = true
		return 0, true
	case models.CornerPayPenalty:
		p.Balance -= amount
		return -amount, false
	}
	return 0, false
}
