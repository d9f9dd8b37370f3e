package models

// CornerKind tags the effect a corner block triggers on landing.
type CornerKind int

const (
	CornerNone CornerKind = iota
	CornerStartBonus
	CornerSkipTurnAndPay
	CornerSendToJail
	CornerPayPenalty
)

type Block struct {
	Name     string     `json:"name"`
	Price    int        `json:"price,omitempty"`
	Rent     int        `json:"rent,omitempty"`
	ImageURL string     `json:"imageURL,omitempty"`
	Owner    string     `json:"owner,omitempty"` // player id, empty when unowned
	Corner   bool       `json:"cornerBlock"`
	Kind     CornerKind `json:"cornerKind,omitempty"`
	Amount   int        `json:"cornerAmount,omitempty"` // payment/penalty attached to the corner effect
}

func (b *Block) IsOwned() bool {
	return b.Owner != ""
}
