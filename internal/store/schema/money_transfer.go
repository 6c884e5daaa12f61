package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-auction-engine/internal/domain"
)

// MoneyTransferExtra holds the free-form attributes of a money transfer
type MoneyTransferExtra struct {
	// Address is the payee of a withdrawal or the account credited by a deposit
	Address string `json:"address"`
	BidID   string `json:"bid_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// NewMoneyTransferExtra wraps extra attributes for the jsonb column
func NewMoneyTransferExtra(extra MoneyTransferExtra) datatypes.JSONType[MoneyTransferExtra] {
	return datatypes.NewJSONType(extra)
}

// MoneyTransfer represents the money_transfers table - a cash movement into or out of the escrow account
type MoneyTransfer struct {
	ID      uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Network domain.Network             `gorm:"column:network;not null;type:text"`
	Type    domain.MoneyTransferType   `gorm:"column:type;not null;type:text"`
	Status  domain.MoneyTransferStatus `gorm:"column:status;not null;type:text"`
	Amount  decimal.Decimal            `gorm:"column:amount;not null;type:numeric(78,0)"`
	OfferID *uuid.UUID                 `gorm:"column:offer_id;type:uuid"`
	// SourceRef makes creation idempotent (e.g., "bid:<id>", "payout:<offer id>", "withdraw_requested:<tx>:<log>")
	SourceRef    *string                                `gorm:"column:source_ref;type:text"`
	TxHash       *string                                `gorm:"column:tx_hash;type:text"`
	BlockNumber  *uint64                                `gorm:"column:block_number"`
	Extra        datatypes.JSONType[MoneyTransferExtra] `gorm:"column:extra;type:jsonb;not null"`
	ErrorMessage *string                                `gorm:"column:error_message;type:text"`
	CreatedAt    time.Time                              `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt    time.Time                              `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the MoneyTransfer model
func (MoneyTransfer) TableName() string {
	return "money_transfers"
}

// Payee returns the address a withdrawal pays or a deposit credits
func (t *MoneyTransfer) Payee() string {
	return t.Extra.Data().Address
}
