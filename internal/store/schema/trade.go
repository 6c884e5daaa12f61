package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-auction-engine/internal/domain"
)

// Trade represents the trades table - one row per completed sale
type Trade struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	OfferID       *uuid.UUID      `gorm:"column:offer_id;type:uuid"`
	Network       domain.Network  `gorm:"column:network;not null;type:text"`
	CollectionID  string          `gorm:"column:collection_id;not null;type:text"`
	TokenID       string          `gorm:"column:token_id;not null;type:text"`
	SellerAddress string          `gorm:"column:seller_address;not null;type:text"`
	BuyerAddress  string          `gorm:"column:buyer_address;not null;type:text"`
	Price         decimal.Decimal `gorm:"column:price;not null;type:numeric(78,0)"`
	MarketFee     decimal.Decimal `gorm:"column:market_fee;not null;type:numeric(78,0)"`
	// TxHash is the transaction that delivered the token to the buyer
	TxHash      string     `gorm:"column:tx_hash;not null;type:text"`
	BlockNumber uint64     `gorm:"column:block_number;not null"`
	AskedAt     *time.Time `gorm:"column:asked_at"`
	BoughtAt    time.Time  `gorm:"column:bought_at;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Trade model
func (Trade) TableName() string {
	return "trades"
}
