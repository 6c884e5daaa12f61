package schema

import (
	"time"

	"github.com/feral-file/ff-auction-engine/internal/domain"
)

// BlockchainBlock represents the blockchain_blocks table.
// A row marks a block as processed by the escrow scanner and anchors block time estimation.
type BlockchainBlock struct {
	Network     domain.Network `gorm:"column:network;primaryKey;type:text"`
	BlockNumber uint64         `gorm:"column:block_number;primaryKey"`
	BlockHash   string         `gorm:"column:block_hash;not null;type:text"`
	// Timestamp is the block time reported by the chain
	Timestamp  time.Time `gorm:"column:created_at;not null"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null;default:now()"`
}

// TableName specifies the table name for the BlockchainBlock model
func (BlockchainBlock) TableName() string {
	return "blockchain_blocks"
}
