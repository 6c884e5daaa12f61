package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// Store defines the interface for ledger operations.
// Status updates are conditional on the current status and report whether a row changed,
// so concurrent loops and retried scans never apply the same transition twice.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore,AuctionTx=MockAuctionTx
type Store interface {
	// GetOfferByID retrieves an offer by its ID
	GetOfferByID(ctx context.Context, id uuid.UUID) (*schema.Offer, error)
	// GetActiveOffer retrieves the active offer of a token of any type
	GetActiveOffer(ctx context.Context, network domain.Network, collectionID, tokenID string) (*schema.Offer, error)
	// GetActiveAuction retrieves the active offer of a token whose auction is running
	GetActiveAuction(ctx context.Context, network domain.Network, collectionID, tokenID string) (*schema.Offer, error)
	// GetCreatedAuction retrieves the active offer of a token whose auction waits for the escrow transfer
	GetCreatedAuction(ctx context.Context, network domain.Network, collectionID, tokenID string) (*schema.Offer, error)
	// GetOfferByAskTxHash retrieves the offer created by the given transaction
	GetOfferByAskTxHash(ctx context.Context, txHash string) (*schema.Offer, error)
	// CreateOffer inserts a new offer, returning domain.ErrOfferAlreadyActive when the token is already listed
	CreateOffer(ctx context.Context, offer *schema.Offer) error
	// UpdateOfferStatus moves an offer from one status to another
	UpdateOfferStatus(ctx context.Context, offerID uuid.UUID, from, to domain.OfferStatus) (bool, error)
	// UpdateAuctionStatus moves an auction from one status to another
	UpdateAuctionStatus(ctx context.Context, offerID uuid.UUID, from, to domain.AuctionStatus) (bool, error)
	// ActivateAuction moves a created auction to active and records the escrow transfer
	ActivateAuction(ctx context.Context, offerID uuid.UUID, txHash string, blockNumber uint64) (bool, error)
	// StopExpiredAuctions moves every active auction whose deadline passed to stopped and returns them
	StopExpiredAuctions(ctx context.Context, now time.Time) ([]schema.Offer, error)
	// ListSettleableAuctions lists stopped or withdrawing auctions without any minting bid
	ListSettleableAuctions(ctx context.Context, limit int) ([]schema.Offer, error)
	// MarkOfferBought records a trade and moves its active offer to bought
	MarkOfferBought(ctx context.Context, trade *schema.Trade) (bool, error)
	// SetDeliveryTxHash records the token delivery of an active offer if its recorded delivery is still previous
	SetDeliveryTxHash(ctx context.Context, offerID uuid.UUID, previous *string, txHash string) (bool, error)
	// CreateTrade records a trade without touching offers
	CreateTrade(ctx context.Context, trade *schema.Trade) (bool, error)

	// GetBidByID retrieves a bid by its ID
	GetBidByID(ctx context.Context, id uuid.UUID) (*schema.Bid, error)
	// GetBidByTxHash retrieves the bid settled by the given transaction
	GetBidByTxHash(ctx context.Context, network domain.Network, txHash string) (*schema.Bid, error)
	// GetBidderTotals aggregates the pending and actual sums of every bidder of an auction, leader first
	GetBidderTotals(ctx context.Context, offerID uuid.UUID) ([]domain.BidderTotal, error)
	// GetFinishedTotals aggregates finished bids per bidder ranked by settled total, highest first
	GetFinishedTotals(ctx context.Context, offerID uuid.UUID) ([]domain.BidderTotal, error)
	// CountBids counts the bids of an auction in the given statuses
	CountBids(ctx context.Context, offerID uuid.UUID, statuses ...domain.BidStatus) (int64, error)
	// ListStaleMintingBids lists bids still minting that were created before the given time
	ListStaleMintingBids(ctx context.Context, before time.Time, limit int) ([]schema.Bid, error)
	// InsertBid inserts a bid outside of an auction transaction
	InsertBid(ctx context.Context, bid *schema.Bid) error
	// SetBidTransaction records the transaction and signer nonce submitted for a bid
	SetBidTransaction(ctx context.Context, bidID uuid.UUID, txHash string, nonce uint64) error
	// UpdateBidStatus moves a bid from one status to another
	UpdateBidStatus(ctx context.Context, bidID uuid.UUID, from, to domain.BidStatus, blockNumber *uint64) (bool, error)

	// CreateMoneyTransfer inserts a money transfer, skipping it when its source reference already exists
	CreateMoneyTransfer(ctx context.Context, transfer *schema.MoneyTransfer) (bool, error)
	// ClaimPendingMoneyTransfers moves up to limit pending transfers to in_progress and returns them
	ClaimPendingMoneyTransfers(ctx context.Context, networks []domain.Network, limit int) ([]schema.MoneyTransfer, error)
	// ListStaleMoneyTransfers lists in_progress transfers not updated since the given time
	ListStaleMoneyTransfers(ctx context.Context, networks []domain.Network, before time.Time, limit int) ([]schema.MoneyTransfer, error)
	// SetMoneyTransferTxHash records the transaction submitted for an in_progress transfer
	SetMoneyTransferTxHash(ctx context.Context, id uuid.UUID, txHash string) error
	// FinishMoneyTransfer moves an in_progress transfer to completed or failed
	FinishMoneyTransfer(ctx context.Context, id uuid.UUID, status domain.MoneyTransferStatus, blockNumber *uint64, errorMessage *string) (bool, error)
	// ReleaseMoneyTransfer moves an in_progress transfer back to pending
	ReleaseMoneyTransfer(ctx context.Context, id uuid.UUID) (bool, error)
	// CompleteMoneyTransferByTxHash completes the in_progress transfer of the given type settled by a transaction
	CompleteMoneyTransferByTxHash(ctx context.Context, network domain.Network, transferType domain.MoneyTransferType, txHash string, blockNumber uint64) (bool, error)

	// IsBlockRecorded checks whether a block was already processed
	IsBlockRecorded(ctx context.Context, network domain.Network, blockNumber uint64) (bool, error)
	// RecordBlock marks a block as processed
	RecordBlock(ctx context.Context, block *schema.BlockchainBlock) (bool, error)
	// GetLatestBlock retrieves the highest processed block of a network
	GetLatestBlock(ctx context.Context, network domain.Network) (*schema.BlockchainBlock, error)
	// GetNearestBlocks retrieves the closest processed blocks at-or-below and above a block number
	GetNearestBlocks(ctx context.Context, network domain.Network, blockNumber uint64) (*schema.BlockchainBlock, *schema.BlockchainBlock, error)

	// GetCollection retrieves a collection of the allow-list
	GetCollection(ctx context.Context, network domain.Network, id string) (*schema.Collection, error)
	// UpsertCollection creates or updates a collection of the allow-list
	UpsertCollection(ctx context.Context, collection *schema.Collection) error

	// WithAuctionTx runs fn in a repeatable-read transaction holding a row lock on the offer.
	// Serialization failures are retried, so fn must not have side effects outside the transaction.
	WithAuctionTx(ctx context.Context, offerID uuid.UUID, fn func(tx AuctionTx) error) error
}

// AuctionTx is the view of one auction inside WithAuctionTx
type AuctionTx interface {
	// Offer returns the locked offer as read at the start of the transaction
	Offer() *schema.Offer
	// BidderTotals aggregates the pending and actual sums of every bidder, leader first
	BidderTotals(ctx context.Context) ([]domain.BidderTotal, error)
	// CountBids counts the bids of the auction in the given statuses
	CountBids(ctx context.Context, statuses ...domain.BidStatus) (int64, error)
	// InsertBid inserts a bid for the auction
	InsertBid(ctx context.Context, bid *schema.Bid) error
	// UpdateBidStatus moves a bid of the auction from one status to another
	UpdateBidStatus(ctx context.Context, bidID uuid.UUID, from, to domain.BidStatus, blockNumber *uint64) (bool, error)
	// SetPrice updates the offer price
	SetPrice(ctx context.Context, price decimal.Decimal) error
	// SetStatus updates the offer status
	SetStatus(ctx context.Context, status domain.OfferStatus) error
	// SetAuctionStatus moves the auction to the given status, validating the transition
	SetAuctionStatus(ctx context.Context, status domain.AuctionStatus) error
}
