package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-auction-engine/internal/bid"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// CreateAuctionRequest is the body of POST /api/v1/auctions
type CreateAuctionRequest struct {
	CollectionID      string          `json:"collection_id" binding:"required"`
	TokenID           string          `json:"token_id" binding:"required"`
	StartPrice        decimal.Decimal `json:"start_price"`
	PriceStep         decimal.Decimal `json:"price_step"`
	StopAt            time.Time       `json:"stop_at"`
	SignedTransaction string          `json:"signed_transaction" binding:"required"`
}

// PlaceBidRequest is the body of POST /api/v1/auctions/:collection_id/:token_id/bids
type PlaceBidRequest struct {
	SignedTransaction string `json:"signed_transaction" binding:"required"`
}

// WithdrawRequest is the body of POST /api/v1/auctions/:collection_id/:token_id/withdrawals
type WithdrawRequest struct {
	BidderAddress string `json:"bidder_address" binding:"required"`
}

// CancelAuctionRequest is the body of POST /api/v1/auctions/:collection_id/:token_id/cancel
type CancelAuctionRequest struct {
	RequesterAddress string `json:"requester_address" binding:"required"`
}

// CalculationQuery holds the query parameters of GET /api/v1/auctions/:collection_id/:token_id/calculation
type CalculationQuery struct {
	Bidder string `form:"bidder" binding:"required"`
}

// OfferResponse represents an offer and its auction state
type OfferResponse struct {
	ID             string                `json:"id"`
	Network        domain.Network        `json:"network"`
	CollectionID   string                `json:"collection_id"`
	TokenID        string                `json:"token_id"`
	SellerAddress  string                `json:"seller_address"`
	Type           domain.OfferType      `json:"type"`
	Status         domain.OfferStatus    `json:"status"`
	Price          decimal.Decimal       `json:"price"`
	StartPrice     decimal.Decimal       `json:"start_price"`
	PriceStep      decimal.Decimal       `json:"price_step"`
	StopAt         *time.Time            `json:"stop_at,omitempty"`
	AuctionStatus  *domain.AuctionStatus `json:"auction_status,omitempty"`
	AskTxHash      *string               `json:"ask_tx_hash,omitempty"`
	AskBlockNumber *uint64               `json:"ask_block_number,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// BidResponse represents a bid or a withdrawal
type BidResponse struct {
	ID            string           `json:"id"`
	OfferID       string           `json:"offer_id"`
	Network       domain.Network   `json:"network"`
	BidderAddress string           `json:"bidder_address"`
	Amount        decimal.Decimal  `json:"amount"`
	Balance       decimal.Decimal  `json:"balance"`
	Status        domain.BidStatus `json:"status"`
	TxHash        *string          `json:"tx_hash,omitempty"`
	BlockNumber   *uint64          `json:"block_number,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// CalculationResponse is the minimum next bid of a bidder
type CalculationResponse struct {
	bid.CalculationInfo
}

// MapOfferToResponse maps a schema.Offer to an OfferResponse
func MapOfferToResponse(offer *schema.Offer) *OfferResponse {
	return &OfferResponse{
		ID:             offer.ID.String(),
		Network:        offer.Network,
		CollectionID:   offer.CollectionID,
		TokenID:        offer.TokenID,
		SellerAddress:  offer.SellerAddress,
		Type:           offer.Type,
		Status:         offer.Status,
		Price:          offer.Price,
		StartPrice:     offer.StartPrice,
		PriceStep:      offer.PriceStep,
		StopAt:         offer.StopAt,
		AuctionStatus:  offer.AuctionStatus,
		AskTxHash:      offer.AskTxHash,
		AskBlockNumber: offer.AskBlockNumber,
		CreatedAt:      offer.CreatedAt,
		UpdatedAt:      offer.UpdatedAt,
	}
}

// MapBidToResponse maps a schema.Bid to a BidResponse
func MapBidToResponse(b *schema.Bid) *BidResponse {
	return &BidResponse{
		ID:            b.ID.String(),
		OfferID:       b.OfferID.String(),
		Network:       b.Network,
		BidderAddress: b.BidderAddress,
		Amount:        b.Amount,
		Balance:       b.Balance,
		Status:        b.Status,
		TxHash:        b.TxHash,
		BlockNumber:   b.BlockNumber,
		CreatedAt:     b.CreatedAt,
	}
}
