package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-auction-engine/internal/domain"
)

// Offer represents the offers table - one row per listing of a token, fixed price or auction
type Offer struct {
	// ID is the offer primary key
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	// Network is the market network the token lives on
	Network domain.Network `gorm:"column:network;not null;type:text"`
	// CollectionID is the token contract address
	CollectionID string `gorm:"column:collection_id;not null;type:text"`
	// TokenID is the token id within the collection (decimal string)
	TokenID string `gorm:"column:token_id;not null;type:text"`
	// SellerAddress is the address the token is returned to when the offer does not sell
	SellerAddress string             `gorm:"column:seller_address;not null;type:text"`
	Type          domain.OfferType   `gorm:"column:type;not null;type:text"`
	Status        domain.OfferStatus `gorm:"column:status;not null;type:text"`
	// Price is the fixed price, or the current pending total of the leading bidder for auctions
	Price      decimal.Decimal `gorm:"column:price;not null;type:numeric(78,0)"`
	StartPrice decimal.Decimal `gorm:"column:start_price;not null;type:numeric(78,0)"`
	PriceStep  decimal.Decimal `gorm:"column:price_step;not null;type:numeric(78,0)"`
	StopAt     *time.Time      `gorm:"column:stop_at"`
	// AuctionStatus is nil for fixed price offers
	AuctionStatus *domain.AuctionStatus `gorm:"column:auction_status;type:text"`
	// AskTxHash is the transaction that placed the token in escrow or created the ask on-chain
	AskTxHash      *string `gorm:"column:ask_tx_hash;type:text"`
	AskBlockNumber *uint64 `gorm:"column:ask_block_number"`
	// DeliveryTxHash is the latest token transfer from escrow to the auction winner
	DeliveryTxHash *string   `gorm:"column:delivery_tx_hash;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Offer model
func (Offer) TableName() string {
	return "offers"
}

// IsAuction reports whether the offer carries auction fields
func (o *Offer) IsAuction() bool {
	return o.Type == domain.OfferTypeAuction && o.AuctionStatus != nil
}

// CurrentAuctionStatus returns the auction status or the empty status for fixed price offers
func (o *Offer) CurrentAuctionStatus() domain.AuctionStatus {
	if o.AuctionStatus == nil {
		return ""
	}
	return *o.AuctionStatus
}

// Snapshot returns the offer state carried by notifications
func (o *Offer) Snapshot() domain.OfferSnapshot {
	return domain.OfferSnapshot{
		ID:            o.ID.String(),
		Network:       o.Network,
		CollectionID:  o.CollectionID,
		TokenID:       o.TokenID,
		SellerAddress: o.SellerAddress,
		Type:          o.Type,
		Status:        o.Status,
		Price:         o.Price,
		StartPrice:    o.StartPrice,
		PriceStep:     o.PriceStep,
		StopAt:        o.StopAt,
		AuctionStatus: o.CurrentAuctionStatus(),
	}
}
