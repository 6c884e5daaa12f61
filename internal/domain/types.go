package domain

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Network identifies a tracked chain network by its configured name (e.g., "market", "payment")
type Network string

// NetworkKind selects which escrow handlers a network is scanned with
type NetworkKind string

const (
	// NetworkKindMarket is the network hosting the market contract and the NFT collections
	NetworkKindMarket NetworkKind = "market"
	// NetworkKindPayment is the network bids are paid on with native balance transfers
	NetworkKindPayment NetworkKind = "payment"
)

// IsValidNetworkKind checks if a network kind is supported
func IsValidNetworkKind(kind NetworkKind) bool {
	return kind == NetworkKindMarket || kind == NetworkKindPayment
}

// OfferType is the listing type of an offer
type OfferType string

const (
	OfferTypeFixedPrice OfferType = "fixed_price"
	OfferTypeAuction    OfferType = "auction"
)

// OfferStatus is the status of an offer
type OfferStatus string

const (
	OfferStatusActive         OfferStatus = "active"
	OfferStatusCancelled      OfferStatus = "cancelled"
	OfferStatusBought         OfferStatus = "bought"
	OfferStatusRemovedByAdmin OfferStatus = "removed_by_admin"
)

// AuctionStatus is the lifecycle state of an auction
//
//	created -> active -> stopped -> withdrawing -> ended
//	created -> failed
type AuctionStatus string

const (
	AuctionStatusCreated     AuctionStatus = "created"
	AuctionStatusActive      AuctionStatus = "active"
	AuctionStatusStopped     AuctionStatus = "stopped"
	AuctionStatusWithdrawing AuctionStatus = "withdrawing"
	AuctionStatusEnded       AuctionStatus = "ended"
	AuctionStatusFailed      AuctionStatus = "failed"
)

var auctionTransitions = map[AuctionStatus][]AuctionStatus{
	AuctionStatusCreated:     {AuctionStatusActive, AuctionStatusFailed},
	AuctionStatusActive:      {AuctionStatusStopped, AuctionStatusEnded},
	AuctionStatusStopped:     {AuctionStatusWithdrawing},
	AuctionStatusWithdrawing: {AuctionStatusEnded},
}

// CanTransition reports whether the auction state machine allows moving from s to next.
// active -> ended is the cancellation of an auction that received no bid.
func (s AuctionStatus) CanTransition(next AuctionStatus) bool {
	for _, allowed := range auctionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BidStatus is the chain settlement status of a bid
type BidStatus string

const (
	BidStatusMinting  BidStatus = "minting"
	BidStatusFinished BidStatus = "finished"
	BidStatusError    BidStatus = "error"
)

// MoneyTransferType is the direction of an off-ledger money movement
type MoneyTransferType string

const (
	MoneyTransferTypeDeposit  MoneyTransferType = "deposit"
	MoneyTransferTypeWithdraw MoneyTransferType = "withdraw"
)

// MoneyTransferStatus is the processing status of a money transfer
type MoneyTransferStatus string

const (
	MoneyTransferStatusPending    MoneyTransferStatus = "pending"
	MoneyTransferStatusInProgress MoneyTransferStatus = "in_progress"
	MoneyTransferStatusCompleted  MoneyTransferStatus = "completed"
	MoneyTransferStatusFailed     MoneyTransferStatus = "failed"
)

// CollectionStatus is the admin state of a collection
type CollectionStatus string

const (
	CollectionStatusEnabled  CollectionStatus = "enabled"
	CollectionStatusDisabled CollectionStatus = "disabled"
)

// BidderTotal aggregates the bids of one bidder within an auction
type BidderTotal struct {
	BidderAddress string          `json:"bidder_address"`
	Pending       decimal.Decimal `json:"pending"` // sum of minting + finished amounts
	Actual        decimal.Decimal `json:"actual"`  // sum of finished amounts
	Bids          int64           `json:"bids"`    // number of minting + finished bids
}

// NormalizeAddress returns the canonical form of a chain address.
// Hex addresses are checksummed; anything else is returned trimmed.
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if common.IsHexAddress(address) {
		return common.HexToAddress(address).Hex()
	}
	return address
}

// SameAddress compares two chain addresses in canonical form
func SameAddress(a, b string) bool {
	return NormalizeAddress(a) == NormalizeAddress(b)
}

// NormalizeTokenID strips leading zeros from a decimal token id
func NormalizeTokenID(tokenID string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(tokenID), "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// AuctionEventType is the type of a notification emitted by the engine
type AuctionEventType string

const (
	EventTypeAuctionStarted AuctionEventType = "auction_started"
	EventTypeBidPlaced      AuctionEventType = "bid_placed"
	EventTypeAuctionStopped AuctionEventType = "auction_stopped"
	EventTypeAuctionClosed  AuctionEventType = "auction_closed"
	EventTypeErrorMessage   AuctionEventType = "error_message"
)

// OfferSnapshot is the offer state carried by a notification
type OfferSnapshot struct {
	ID            string          `json:"id"`
	Network       Network         `json:"network"`
	CollectionID  string          `json:"collection_id"`
	TokenID       string          `json:"token_id"`
	SellerAddress string          `json:"seller_address"`
	Type          OfferType       `json:"type"`
	Status        OfferStatus     `json:"status"`
	Price         decimal.Decimal `json:"price"`
	StartPrice    decimal.Decimal `json:"start_price"`
	PriceStep     decimal.Decimal `json:"price_step"`
	StopAt        *time.Time      `json:"stop_at,omitempty"`
	AuctionStatus AuctionStatus   `json:"auction_status,omitempty"`
}

// AuctionEvent is a notification published to the presentation layer
type AuctionEvent struct {
	ID        string           `json:"id"` // ULID
	Type      AuctionEventType `json:"type"`
	Offer     OfferSnapshot    `json:"offer"`
	Message   string           `json:"message,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
