package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-auction-engine/internal/domain"
)

// Bid represents the bids table - a signed claim against an auction pot.
// Negative amounts are withdrawals of the bidder's settled balance.
type Bid struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	OfferID uuid.UUID `gorm:"column:offer_id;type:uuid;not null"`
	// Network is the payment network the balance transfer is settled on
	Network       domain.Network  `gorm:"column:network;not null;type:text"`
	BidderAddress string          `gorm:"column:bidder_address;not null;type:text"`
	Amount        decimal.Decimal `gorm:"column:amount;not null;type:numeric(78,0)"`
	// Balance is the bidder's pending total right after this bid
	Balance decimal.Decimal  `gorm:"column:balance;not null;type:numeric(78,0)"`
	Status  domain.BidStatus `gorm:"column:status;not null;type:text"`
	TxHash  *string          `gorm:"column:tx_hash;type:text"`
	// TxNonce is the signer nonce of TxHash, recorded for escrow-signed refunds
	TxNonce     *uint64   `gorm:"column:tx_nonce"`
	BlockNumber *uint64   `gorm:"column:block_number"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Bid model
func (Bid) TableName() string {
	return "bids"
}

// IsWithdrawal reports whether the bid reverses part of the bidder's balance
func (b *Bid) IsWithdrawal() bool {
	return b.Amount.IsNegative()
}
