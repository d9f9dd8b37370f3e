package board

import "github.com/blockopoly/blockopoly-backend/app/models"

// Board is a fixed cycle of blocks. The shape never changes after
// construction; only property ownership does.
type Board struct {
	blocks []models.Block
}

func New() *Board {
	var blocks []models.Block
	for i, corner := range corners {
		blocks = append(blocks, corner)
		blocks = append(blocks, sides[i]...)
	}
	return &Board{blocks: blocks}
}

// GetBlock returns the block at position, or nil when out of range.
func (b *Board) GetBlock(position int) *models.Block {
	if position < 0 || position >= len(b.blocks) {
		return nil
	}
	return &b.blocks[position]
}

func (b *Board) GetBlockByName(name string) *models.Block {
	for i := range b.blocks {
		if b.blocks[i].Name == name {
			return &b.blocks[i]
		}
	}
	return nil
}

func (b *Board) Length() int {
	return len(b.blocks)
}

func (b *Board) Blocks() []models.Block {
	return b.blocks
}

func (b *Board) IsCorner(position int) bool {
	block := b.GetBlock(position)
	return block != nil && block.Corner
}

func (b *Board) OwnedBy(playerId string) []*models.Block {
	var owned []*models.Block
	for i := range b.blocks {
		if b.blocks[i].Owner == playerId {
			owned = append(owned, &b.blocks[i])
		}
	}
	return owned
}

func (b *Board) Unowned() []*models.Block {
	var free []*models.Block
	for i := range b.blocks {
		if !b.blocks[i].Corner && b.blocks[i].Owner == "" {
			free = append(free, &b.blocks[i])
		}
	}
	return free
}

// Reset clears all property ownership. Corner blocks are never owned.
func (b *Board) Reset() {
	for i := range b.blocks {
		if !b.blocks[i].Corner {
			b.blocks[i].Owner = ""
		}
	}
}
