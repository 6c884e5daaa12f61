package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

const (
	// PostgreSQL error codes
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"

	// Unique indexes mapped to domain errors
	idxOffersActiveToken = "idx_offers_active_token"
	idxBidsNetworkTxHash = "idx_bids_network_tx_hash"

	maxSerializationRetries = 5
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to defaults: 20 open, 5 idle, 5 minute lifetime and 10 minute idle time.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	maxIdleConns = min(maxIdleConns, maxOpenConns)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// pgErrorCode returns the SQLSTATE of a PostgreSQL error and the constraint it names
func pgErrorCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// isSerializationFailure reports whether a transaction must be retried
func isSerializationFailure(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgSerializationFailure || code == pgDeadlockDetected
}

// =============================================================================
// Offers
// =============================================================================

// GetOfferByID retrieves an offer by its ID
func (s *pgStore) GetOfferByID(ctx context.Context, id uuid.UUID) (*schema.Offer, error) {
	var offer schema.Offer
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return &offer, nil
}

// GetActiveOffer retrieves the active offer of a token of any type
func (s *pgStore) GetActiveOffer(ctx context.Context, network domain.Network, collectionID, tokenID string) (*schema.Offer, error) {
	return s.findOffer(ctx, "network = ? AND collection_id = ? AND token_id = ? AND status = ?",
		network, collectionID, tokenID, domain.OfferStatusActive)
}

// GetActiveAuction retrieves the active offer of a token whose auction is running
func (s *pgStore) GetActiveAuction(ctx context.Context, network domain.Network, collectionID, tokenID string) (*schema.Offer, error) {
	return s.findOffer(ctx, "network = ? AND collection_id = ? AND token_id = ? AND status = ? AND type = ? AND auction_status = ?",
		network, collectionID, tokenID, domain.OfferStatusActive, domain.OfferTypeAuction, domain.AuctionStatusActive)
}

// GetCreatedAuction retrieves the active offer of a token whose auction waits for the escrow transfer
func (s *pgStore) GetCreatedAuction(ctx context.Context, network domain.Network, collectionID, tokenID string) (*schema.Offer, error) {
	return s.findOffer(ctx, "network = ? AND collection_id = ? AND token_id = ? AND status = ? AND type = ? AND auction_status = ?",
		network, collectionID, tokenID, domain.OfferStatusActive, domain.OfferTypeAuction, domain.AuctionStatusCreated)
}

// GetOfferByAskTxHash retrieves the offer created by the given transaction
func (s *pgStore) GetOfferByAskTxHash(ctx context.Context, txHash string) (*schema.Offer, error) {
	return s.findOffer(ctx, "ask_tx_hash = ?", txHash)
}

func (s *pgStore) findOffer(ctx context.Context, query string, args ...any) (*schema.Offer, error) {
	var offer schema.Offer
	err := s.db.WithContext(ctx).Where(query, args...).First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find offer: %w", err)
	}
	return &offer, nil
}

// CreateOffer inserts a new offer
func (s *pgStore) CreateOffer(ctx context.Context, offer *schema.Offer) error {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}

	// unique violations roll back to a savepoint so an enclosing transaction stays usable
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(offer).Error
	})
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgUniqueViolation && constraint == idxOffersActiveToken {
			return domain.ErrOfferAlreadyActive
		}
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

// UpdateOfferStatus moves an offer from one status to another
func (s *pgStore) UpdateOfferStatus(ctx context.Context, offerID uuid.UUID, from, to domain.OfferStatus) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Offer{}).
		Where("id = ? AND status = ?", offerID, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": gorm.Expr("now()"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update offer status: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// UpdateAuctionStatus moves an auction from one status to another
func (s *pgStore) UpdateAuctionStatus(ctx context.Context, offerID uuid.UUID, from, to domain.AuctionStatus) (bool, error) {
	if !from.CanTransition(to) {
		return false, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}

	result := s.db.WithContext(ctx).
		Model(&schema.Offer{}).
		Where("id = ? AND auction_status = ?", offerID, from).
		Updates(map[string]any{
			"auction_status": to,
			"updated_at":     gorm.Expr("now()"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update auction status: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// ActivateAuction moves a created auction to active and records the escrow transfer
func (s *pgStore) ActivateAuction(ctx context.Context, offerID uuid.UUID, txHash string, blockNumber uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Offer{}).
		Where("id = ? AND status = ? AND auction_status = ?", offerID, domain.OfferStatusActive, domain.AuctionStatusCreated).
		Updates(map[string]any{
			"auction_status":   domain.AuctionStatusActive,
			"ask_tx_hash":      txHash,
			"ask_block_number": blockNumber,
			"updated_at":       gorm.Expr("now()"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to activate auction: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// StopExpiredAuctions moves every active auction whose deadline passed to stopped and returns them
func (s *pgStore) StopExpiredAuctions(ctx context.Context, now time.Time) ([]schema.Offer, error) {
	var offers []schema.Offer
	err := s.db.WithContext(ctx).
		Model(&offers).
		Clauses(clause.Returning{}).
		Where("type = ? AND status = ? AND auction_status = ? AND stop_at <= ?",
			domain.OfferTypeAuction, domain.OfferStatusActive, domain.AuctionStatusActive, now).
		Updates(map[string]any{
			"auction_status": domain.AuctionStatusStopped,
			"updated_at":     now,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to stop expired auctions: %w", err)
	}
	return offers, nil
}

// ListSettleableAuctions lists stopped or withdrawing auctions without any minting bid
func (s *pgStore) ListSettleableAuctions(ctx context.Context, limit int) ([]schema.Offer, error) {
	var offers []schema.Offer
	err := s.db.WithContext(ctx).
		Where("type = ? AND auction_status IN ?", domain.OfferTypeAuction,
			[]domain.AuctionStatus{domain.AuctionStatusStopped, domain.AuctionStatusWithdrawing}).
		Where("NOT EXISTS (SELECT 1 FROM bids WHERE bids.offer_id = offers.id AND bids.status = ?)", domain.BidStatusMinting).
		Order("stop_at ASC").
		Limit(limit).
		Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list settleable auctions: %w", err)
	}
	return offers, nil
}

// MarkOfferBought records a trade and moves its active offer to bought.
// It returns false when the trade was already recorded or the offer is no longer active.
func (s *pgStore) MarkOfferBought(ctx context.Context, trade *schema.Trade) (bool, error) {
	if trade.OfferID == nil {
		return false, errors.New("trade has no offer")
	}

	var bought bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted, err := insertTrade(tx, trade)
		if err != nil {
			return err
		}
		if !inserted {
			return nil
		}

		result := tx.Model(&schema.Offer{}).
			Where("id = ? AND status = ?", *trade.OfferID, domain.OfferStatusActive).
			Updates(map[string]any{
				"status":     domain.OfferStatusBought,
				"price":      trade.Price,
				"updated_at": gorm.Expr("now()"),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to mark offer bought: %w", result.Error)
		}
		bought = result.RowsAffected == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return bought, nil
}

// SetDeliveryTxHash records the token delivery of an active offer if its recorded delivery is still previous
func (s *pgStore) SetDeliveryTxHash(ctx context.Context, offerID uuid.UUID, previous *string, txHash string) (bool, error) {
	query := s.db.WithContext(ctx).
		Model(&schema.Offer{}).
		Where("id = ? AND status = ?", offerID, domain.OfferStatusActive)
	if previous == nil {
		query = query.Where("delivery_tx_hash IS NULL")
	} else {
		query = query.Where("delivery_tx_hash = ?", *previous)
	}

	result := query.Updates(map[string]any{
		"delivery_tx_hash": txHash,
		"updated_at":       gorm.Expr("now()"),
	})
	if result.Error != nil {
		return false, fmt.Errorf("failed to set delivery tx hash: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// CreateTrade records a trade without touching offers
func (s *pgStore) CreateTrade(ctx context.Context, trade *schema.Trade) (bool, error) {
	return insertTrade(s.db.WithContext(ctx), trade)
}

func insertTrade(db *gorm.DB, trade *schema.Trade) (bool, error) {
	if trade.ID == uuid.Nil {
		trade.ID = uuid.New()
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "network"}, {Name: "tx_hash"}},
		DoNothing: true,
	}).Create(trade)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create trade: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// =============================================================================
// Bids
// =============================================================================

// bidderTotalsQuery aggregates bids per bidder. Pending counts minting and finished bids,
// actual counts finished bids only; error bids are ignored entirely.
const bidderTotalsQuery = `
SELECT bidder_address,
       COALESCE(SUM(amount) FILTER (WHERE status IN ('minting', 'finished')), 0) AS pending,
       COALESCE(SUM(amount) FILTER (WHERE status = 'finished'), 0)              AS actual,
       COUNT(*) FILTER (WHERE status IN ('minting', 'finished') AND amount > 0)  AS bids
FROM bids
WHERE offer_id = ?
GROUP BY bidder_address
ORDER BY pending DESC, MIN(created_at) ASC`

// finishedTotalsQuery ranks bidders by settled total; ties go to the earliest bidder
const finishedTotalsQuery = `
SELECT bidder_address,
       SUM(amount) AS pending,
       SUM(amount) AS actual,
       COUNT(*) FILTER (WHERE amount > 0) AS bids
FROM bids
WHERE offer_id = ? AND status = 'finished'
GROUP BY bidder_address
ORDER BY actual DESC, MIN(created_at) ASC`

// GetBidByID retrieves a bid by its ID
func (s *pgStore) GetBidByID(ctx context.Context, id uuid.UUID) (*schema.Bid, error) {
	var bid schema.Bid
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}
	return &bid, nil
}

// GetBidByTxHash retrieves the bid settled by the given transaction
func (s *pgStore) GetBidByTxHash(ctx context.Context, network domain.Network, txHash string) (*schema.Bid, error) {
	var bid schema.Bid
	err := s.db.WithContext(ctx).Where("network = ? AND tx_hash = ?", network, txHash).First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bid by tx hash: %w", err)
	}
	return &bid, nil
}

// GetBidderTotals aggregates the pending and actual sums of every bidder of an auction
func (s *pgStore) GetBidderTotals(ctx context.Context, offerID uuid.UUID) ([]domain.BidderTotal, error) {
	return scanTotals(s.db.WithContext(ctx), bidderTotalsQuery, offerID)
}

// GetFinishedTotals aggregates finished bids per bidder ranked by settled total
func (s *pgStore) GetFinishedTotals(ctx context.Context, offerID uuid.UUID) ([]domain.BidderTotal, error) {
	return scanTotals(s.db.WithContext(ctx), finishedTotalsQuery, offerID)
}

func scanTotals(db *gorm.DB, query string, offerID uuid.UUID) ([]domain.BidderTotal, error) {
	var totals []domain.BidderTotal
	if err := db.Raw(query, offerID).Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate bids: %w", err)
	}
	return totals, nil
}

// CountBids counts the bids of an auction in the given statuses
func (s *pgStore) CountBids(ctx context.Context, offerID uuid.UUID, statuses ...domain.BidStatus) (int64, error) {
	return countBids(s.db.WithContext(ctx), offerID, statuses)
}

func countBids(db *gorm.DB, offerID uuid.UUID, statuses []domain.BidStatus) (int64, error) {
	query := db.Model(&schema.Bid{}).Where("offer_id = ?", offerID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bids: %w", err)
	}
	return count, nil
}

// ListStaleMintingBids lists bids still minting that were created before the given time
func (s *pgStore) ListStaleMintingBids(ctx context.Context, before time.Time, limit int) ([]schema.Bid, error) {
	var bids []schema.Bid
	err := s.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.BidStatusMinting, before).
		Order("created_at ASC").
		Limit(limit).
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stale minting bids: %w", err)
	}
	return bids, nil
}

// InsertBid inserts a bid outside of an auction transaction
func (s *pgStore) InsertBid(ctx context.Context, bid *schema.Bid) error {
	return insertBid(s.db.WithContext(ctx), bid)
}

func insertBid(db *gorm.DB, bid *schema.Bid) error {
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(bid).Error
	})
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgUniqueViolation && constraint == idxBidsNetworkTxHash {
			return domain.ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to insert bid: %w", err)
	}
	return nil
}

// SetBidTransaction records the transaction and signer nonce submitted for a bid
func (s *pgStore) SetBidTransaction(ctx context.Context, bidID uuid.UUID, txHash string, nonce uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&schema.Bid{}).
			Where("id = ?", bidID).
			Updates(map[string]any{
				"tx_hash":    txHash,
				"tx_nonce":   nonce,
				"updated_at": gorm.Expr("now()"),
			}).Error
	})
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgUniqueViolation && constraint == idxBidsNetworkTxHash {
			return domain.ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to set bid transaction: %w", err)
	}
	return nil
}

func (s *pgStore) UpdateBidStatus(ctx context.Context, bidID uuid.UUID, from, to domain.BidStatus, blockNumber *uint64) (bool, error) {
	return updateBidStatus(s.db.WithContext(ctx), bidID, from, to, blockNumber)
}

func updateBidStatus(db *gorm.DB, bidID uuid.UUID, from, to domain.BidStatus, blockNumber *uint64) (bool, error) {
	updates := map[string]any{
		"status":     to,
		"updated_at": gorm.Expr("now()"),
	}
	if blockNumber != nil {
		updates["block_number"] = *blockNumber
	}

	result := db.Model(&schema.Bid{}).Where("id = ? AND status = ?", bidID, from).Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update bid status: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// =============================================================================
// Money transfers
// =============================================================================

// CreateMoneyTransfer inserts a money transfer, skipping it when its source reference already exists
func (s *pgStore) CreateMoneyTransfer(ctx context.Context, transfer *schema.MoneyTransfer) (bool, error) {
	if transfer.ID == uuid.Nil {
		transfer.ID = uuid.New()
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "source_ref"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "source_ref IS NOT NULL"}}},
		DoNothing:   true,
	}).Create(transfer)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create money transfer: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// claimPendingQuery skips rows locked by a concurrent claimer so two reconcilers never submit the same transfer
const claimPendingQuery = `
UPDATE money_transfers
SET status = 'in_progress', updated_at = now()
WHERE id IN (
    SELECT id FROM money_transfers
    WHERE status = 'pending' AND network IN ?
    ORDER BY created_at ASC
    LIMIT ?
    FOR UPDATE SKIP LOCKED
)
RETURNING *`

// ClaimPendingMoneyTransfers moves up to limit pending transfers to in_progress and returns them
func (s *pgStore) ClaimPendingMoneyTransfers(ctx context.Context, networks []domain.Network, limit int) ([]schema.MoneyTransfer, error) {
	var transfers []schema.MoneyTransfer
	if err := s.db.WithContext(ctx).Raw(claimPendingQuery, networks, limit).Scan(&transfers).Error; err != nil {
		return nil, fmt.Errorf("failed to claim pending money transfers: %w", err)
	}
	return transfers, nil
}

// ListStaleMoneyTransfers lists in_progress transfers not updated since the given time
func (s *pgStore) ListStaleMoneyTransfers(ctx context.Context, networks []domain.Network, before time.Time, limit int) ([]schema.MoneyTransfer, error) {
	var transfers []schema.MoneyTransfer
	err := s.db.WithContext(ctx).
		Where("status = ? AND network IN ? AND updated_at < ?", domain.MoneyTransferStatusInProgress, networks, before).
		Order("updated_at ASC").
		Limit(limit).
		Find(&transfers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stale money transfers: %w", err)
	}
	return transfers, nil
}

// SetMoneyTransferTxHash records the transaction submitted for an in_progress transfer
func (s *pgStore) SetMoneyTransferTxHash(ctx context.Context, id uuid.UUID, txHash string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.MoneyTransfer{}).
		Where("id = ? AND status = ?", id, domain.MoneyTransferStatusInProgress).
		Updates(map[string]any{
			"tx_hash":    txHash,
			"updated_at": gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to set money transfer tx hash: %w", err)
	}
	return nil
}

// FinishMoneyTransfer moves an in_progress transfer to completed or failed
func (s *pgStore) FinishMoneyTransfer(ctx context.Context, id uuid.UUID, status domain.MoneyTransferStatus, blockNumber *uint64, errorMessage *string) (bool, error) {
	if status != domain.MoneyTransferStatusCompleted && status != domain.MoneyTransferStatusFailed {
		return false, fmt.Errorf("money transfer cannot finish as %s", status)
	}

	updates := map[string]any{
		"status":        status,
		"error_message": errorMessage,
		"updated_at":    gorm.Expr("now()"),
	}
	if blockNumber != nil {
		updates["block_number"] = *blockNumber
	}

	result := s.db.WithContext(ctx).
		Model(&schema.MoneyTransfer{}).
		Where("id = ? AND status = ?", id, domain.MoneyTransferStatusInProgress).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to finish money transfer: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// ReleaseMoneyTransfer moves an in_progress transfer back to pending
func (s *pgStore) ReleaseMoneyTransfer(ctx context.Context, id uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.MoneyTransfer{}).
		Where("id = ? AND status = ?", id, domain.MoneyTransferStatusInProgress).
		Updates(map[string]any{
			"status":     domain.MoneyTransferStatusPending,
			"tx_hash":    nil,
			"updated_at": gorm.Expr("now()"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to release money transfer: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// CompleteMoneyTransferByTxHash completes the in_progress transfer of the given type settled by a transaction
func (s *pgStore) CompleteMoneyTransferByTxHash(ctx context.Context, network domain.Network, transferType domain.MoneyTransferType, txHash string, blockNumber uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.MoneyTransfer{}).
		Where("network = ? AND type = ? AND tx_hash = ? AND status = ?",
			network, transferType, txHash, domain.MoneyTransferStatusInProgress).
		Updates(map[string]any{
			"status":       domain.MoneyTransferStatusCompleted,
			"block_number": blockNumber,
			"updated_at":   gorm.Expr("now()"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to complete money transfer: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// =============================================================================
// Blocks
// =============================================================================

// IsBlockRecorded checks whether a block was already processed
func (s *pgStore) IsBlockRecorded(ctx context.Context, network domain.Network, blockNumber uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.BlockchainBlock{}).
		Where("network = ? AND block_number = ?", network, blockNumber).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check block: %w", err)
	}
	return count > 0, nil
}

// RecordBlock marks a block as processed
func (s *pgStore) RecordBlock(ctx context.Context, block *schema.BlockchainBlock) (bool, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(block)
	if result.Error != nil {
		return false, fmt.Errorf("failed to record block: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// GetLatestBlock retrieves the highest processed block of a network
func (s *pgStore) GetLatestBlock(ctx context.Context, network domain.Network) (*schema.BlockchainBlock, error) {
	var block schema.BlockchainBlock
	err := s.db.WithContext(ctx).
		Where("network = ?", network).
		Order("block_number DESC").
		First(&block).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest block: %w", err)
	}
	return &block, nil
}

// GetNearestBlocks retrieves the closest processed blocks at-or-below and above a block number
func (s *pgStore) GetNearestBlocks(ctx context.Context, network domain.Network, blockNumber uint64) (*schema.BlockchainBlock, *schema.BlockchainBlock, error) {
	var before, after schema.BlockchainBlock
	var beforePtr, afterPtr *schema.BlockchainBlock

	err := s.db.WithContext(ctx).
		Where("network = ? AND block_number <= ?", network, blockNumber).
		Order("block_number DESC").
		First(&before).Error
	switch {
	case err == nil:
		beforePtr = &before
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, fmt.Errorf("failed to get previous block: %w", err)
	}

	err = s.db.WithContext(ctx).
		Where("network = ? AND block_number > ?", network, blockNumber).
		Order("block_number ASC").
		First(&after).Error
	switch {
	case err == nil:
		afterPtr = &after
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, fmt.Errorf("failed to get next block: %w", err)
	}

	return beforePtr, afterPtr, nil
}

// =============================================================================
// Collections
// =============================================================================

// GetCollection retrieves a collection of the allow-list
func (s *pgStore) GetCollection(ctx context.Context, network domain.Network, id string) (*schema.Collection, error) {
	var collection schema.Collection
	err := s.db.WithContext(ctx).Where("network = ? AND id = ?", network, id).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

// UpsertCollection creates or updates a collection of the allow-list
func (s *pgStore) UpsertCollection(ctx context.Context, collection *schema.Collection) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "network"}, {Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":       collection.Name,
			"status":     collection.Status,
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(collection).Error
	if err != nil {
		return fmt.Errorf("failed to upsert collection: %w", err)
	}
	return nil
}

// =============================================================================
// Auction transactions
// =============================================================================

// WithAuctionTx runs fn in a repeatable-read transaction holding a row lock on the offer
func (s *pgStore) WithAuctionTx(ctx context.Context, offerID uuid.UUID, fn func(tx AuctionTx) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = time.Second
	bo := backoff.WithContext(backoff.WithMaxRetries(b, maxSerializationRetries), ctx)

	operation := func() error {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var offer schema.Offer
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", offerID).First(&offer).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrAuctionNotFound
				}
				return fmt.Errorf("failed to lock offer: %w", err)
			}
			return fn(&pgAuctionTx{tx: tx, offer: &offer})
		}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})

		if err != nil && !isSerializationFailure(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Auction transaction serialization failure, retrying",
			zap.String("offer_id", offerID.String()),
			zap.Error(err),
			zap.Duration("next_retry_in", next))
	}

	return backoff.RetryNotify(operation, bo, notify)
}

// pgAuctionTx implements AuctionTx over one database transaction
type pgAuctionTx struct {
	tx    *gorm.DB
	offer *schema.Offer
}

func (t *pgAuctionTx) Offer() *schema.Offer {
	return t.offer
}

func (t *pgAuctionTx) BidderTotals(ctx context.Context) ([]domain.BidderTotal, error) {
	return scanTotals(t.tx.WithContext(ctx), bidderTotalsQuery, t.offer.ID)
}

func (t *pgAuctionTx) CountBids(ctx context.Context, statuses ...domain.BidStatus) (int64, error) {
	return countBids(t.tx.WithContext(ctx), t.offer.ID, statuses)
}

func (t *pgAuctionTx) InsertBid(ctx context.Context, bid *schema.Bid) error {
	bid.OfferID = t.offer.ID
	return insertBid(t.tx.WithContext(ctx), bid)
}

func (t *pgAuctionTx) UpdateBidStatus(ctx context.Context, bidID uuid.UUID, from, to domain.BidStatus, blockNumber *uint64) (bool, error) {
	return updateBidStatus(t.tx.WithContext(ctx).Where("offer_id = ?", t.offer.ID), bidID, from, to, blockNumber)
}

func (t *pgAuctionTx) SetPrice(ctx context.Context, price decimal.Decimal) error {
	err := t.tx.WithContext(ctx).
		Model(&schema.Offer{}).
		Where("id = ?", t.offer.ID).
		Updates(map[string]any{
			"price":      price,
			"updated_at": gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to set offer price: %w", err)
	}
	t.offer.Price = price
	return nil
}

func (t *pgAuctionTx) SetStatus(ctx context.Context, status domain.OfferStatus) error {
	err := t.tx.WithContext(ctx).
		Model(&schema.Offer{}).
		Where("id = ?", t.offer.ID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to set offer status: %w", err)
	}
	t.offer.Status = status
	return nil
}

func (t *pgAuctionTx) SetAuctionStatus(ctx context.Context, status domain.AuctionStatus) error {
	current := t.offer.CurrentAuctionStatus()
	if !current.CanTransition(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, status)
	}

	err := t.tx.WithContext(ctx).
		Model(&schema.Offer{}).
		Where("id = ? AND auction_status = ?", t.offer.ID, current).
		Updates(map[string]any{
			"auction_status": status,
			"updated_at":     gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to set auction status: %w", err)
	}
	t.offer.AuctionStatus = &status
	return nil
}
