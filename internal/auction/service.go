package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/notify"
	"github.com/feral-file/ff-auction-engine/internal/registry"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// CreateAuctionRequest lists a token for auction with the seller's signed escrow transfer
type CreateAuctionRequest struct {
	CollectionID      string
	TokenID           string
	StartPrice        decimal.Decimal
	PriceStep         decimal.Decimal
	StopAt            time.Time
	SignedTransaction string
}

// CancelAuctionRequest asks to cancel an auction that received no bid
type CancelAuctionRequest struct {
	CollectionID     string
	TokenID          string
	RequesterAddress string
}

// Service manages the listing side of auctions
//
//go:generate mockgen -source=service.go -destination=../mocks/auction_service.go -package=mocks -mock_names=Service=MockAuctionService
type Service interface {
	// CreateAuction records an auction and moves the token into escrow.
	// The returned offer's auction is active, failed, or still created when the transfer outcome is unknown.
	CreateAuction(ctx context.Context, req CreateAuctionRequest) (*schema.Offer, error)

	// ActivateAuction moves a created auction to active once its escrow transfer is final
	ActivateAuction(ctx context.Context, offer *schema.Offer, txHash string, blockNumber uint64) error

	// CancelAuction cancels a running auction without bids on behalf of its seller
	CancelAuction(ctx context.Context, req CancelAuctionRequest) (*schema.Offer, error)

	// CancelUnsold ends a closing auction that has no winner and returns the token
	CancelUnsold(ctx context.Context, offer *schema.Offer) error

	// ReturnToken transfers the escrowed token back to the seller
	ReturnToken(ctx context.Context, offer *schema.Offer) error

	// Close waits for queued token returns
	Close()
}

// Config holds the configuration of the auction service
type Config struct {
	// ReturnWorkers bounds the concurrent token returns
	ReturnWorkers int
	// ReturnQueueSize bounds the token returns waiting for a worker
	ReturnQueueSize int
}

type service struct {
	config   Config
	store    store.Store
	market   chain.Client
	registry registry.CollectionRegistry
	notifier notify.Notifier
	clock    adapter.Clock
	returns  pond.Pool
}

// NewService creates an auction service for the market network
func NewService(
	config Config,
	st store.Store,
	market chain.Client,
	collections registry.CollectionRegistry,
	notifier notify.Notifier,
	clock adapter.Clock,
) Service {
	if config.ReturnWorkers <= 0 {
		config.ReturnWorkers = 4
	}
	if config.ReturnQueueSize <= 0 {
		config.ReturnQueueSize = 256
	}

	return &service{
		config:   config,
		store:    st,
		market:   market,
		registry: collections,
		notifier: notifier,
		clock:    clock,
		returns:  pond.NewPool(config.ReturnWorkers, pond.WithQueueSize(config.ReturnQueueSize)),
	}
}

// CreateAuction records an auction and moves the token into escrow
func (s *service) CreateAuction(ctx context.Context, req CreateAuctionRequest) (*schema.Offer, error) {
	if !req.StartPrice.IsPositive() {
		return nil, domain.NewBadRequestError("start price must be positive")
	}
	if !req.PriceStep.IsPositive() {
		return nil, domain.NewBadRequestError("price step must be positive")
	}
	if !req.StopAt.After(s.clock.Now()) {
		return nil, domain.NewBadRequestError("stop time must be in the future")
	}

	network := s.market.Network()
	collectionID := domain.NormalizeAddress(req.CollectionID)
	tokenID := domain.NormalizeTokenID(req.TokenID)

	enabled, err := s.registry.IsEnabled(ctx, network, collectionID)
	if err != nil {
		return nil, s.translate(ctx, err, "failed to check collection")
	}
	if !enabled {
		return nil, domain.NewBadRequestError("collection %s is not enabled", collectionID)
	}

	decoded, err := s.market.DecodeTransaction(req.SignedTransaction)
	if err != nil {
		return nil, domain.NewBadRequestError("invalid transaction: %v", err)
	}
	if decoded.Kind != chain.TransferKindToken {
		return nil, domain.NewBadRequestError("transaction is not a token transfer")
	}
	if !domain.SameAddress(decoded.To, s.market.EscrowAddress()) {
		return nil, domain.NewBadRequestError("transaction recipient %s is not the escrow account", decoded.To)
	}
	if !domain.SameAddress(decoded.Contract, collectionID) || domain.NormalizeTokenID(decoded.TokenID) != tokenID {
		return nil, domain.NewBadRequestError("transaction transfers %s/%s instead of %s/%s",
			decoded.Contract, decoded.TokenID, collectionID, tokenID)
	}

	created := domain.AuctionStatusCreated
	stopAt := req.StopAt.UTC()
	offer := &schema.Offer{
		Network:       network,
		CollectionID:  collectionID,
		TokenID:       tokenID,
		SellerAddress: domain.NormalizeAddress(decoded.From),
		Type:          domain.OfferTypeAuction,
		Status:        domain.OfferStatusActive,
		Price:         req.StartPrice,
		StartPrice:    req.StartPrice,
		PriceStep:     req.PriceStep,
		StopAt:        &stopAt,
		AuctionStatus: &created,
		AskTxHash:     &decoded.Hash,
	}
	if err := s.store.CreateOffer(ctx, offer); err != nil {
		if errors.Is(err, domain.ErrOfferAlreadyActive) {
			return nil, domain.NewConflictError(err, "token %s/%s already has an active offer", collectionID, tokenID)
		}
		return nil, s.translate(ctx, err, "failed to create auction")
	}

	logger.InfoCtx(ctx, "Auction created, submitting escrow transfer",
		zap.String("offer_id", offer.ID.String()),
		zap.String("collection_id", collectionID),
		zap.String("token_id", tokenID),
		zap.String("seller", offer.SellerAddress),
		zap.String("tx_hash", decoded.Hash))

	result, err := s.market.Submit(ctx, decoded.Signed)
	switch {
	case err == nil && result.IsSucceed:
		if err := s.ActivateAuction(ctx, offer, decoded.Hash, result.BlockNumber); err != nil {
			return nil, s.translate(ctx, err, "failed to activate auction")
		}

	case err == nil:
		if err := s.failAuction(ctx, offer, "escrow transfer reverted"); err != nil {
			return nil, s.translate(ctx, err, "failed to record failed auction")
		}

	case chain.IsDefinitiveFailure(err):
		if err := s.failAuction(ctx, offer, err.Error()); err != nil {
			return nil, s.translate(ctx, err, "failed to record failed auction")
		}

	default:
		// the scanner activates the auction when the transfer shows up in a final block
		logger.WarnCtx(ctx, "Escrow transfer outcome unknown, leaving auction created",
			zap.String("offer_id", offer.ID.String()),
			zap.String("tx_hash", decoded.Hash),
			zap.Error(err))
	}

	return offer, nil
}

// ActivateAuction moves a created auction to active once its escrow transfer is final
func (s *service) ActivateAuction(ctx context.Context, offer *schema.Offer, txHash string, blockNumber uint64) error {
	changed, err := s.store.ActivateAuction(ctx, offer.ID, txHash, blockNumber)
	if err != nil {
		return err
	}
	if !changed {
		logger.DebugCtx(ctx, "Auction already activated", zap.String("offer_id", offer.ID.String()))
		return nil
	}

	active := domain.AuctionStatusActive
	offer.AuctionStatus = &active
	offer.AskTxHash = &txHash
	offer.AskBlockNumber = &blockNumber

	logger.InfoCtx(ctx, "Auction started",
		zap.String("offer_id", offer.ID.String()),
		zap.Uint64("block_number", blockNumber))
	s.notifier.AuctionStarted(ctx, offer)
	return nil
}

func (s *service) failAuction(ctx context.Context, offer *schema.Offer, reason string) error {
	changed, err := s.store.UpdateAuctionStatus(ctx, offer.ID, domain.AuctionStatusCreated, domain.AuctionStatusFailed)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	// release the token so it can be listed again
	if _, err := s.store.UpdateOfferStatus(ctx, offer.ID, domain.OfferStatusActive, domain.OfferStatusCancelled); err != nil {
		return err
	}

	failed := domain.AuctionStatusFailed
	offer.AuctionStatus = &failed
	offer.Status = domain.OfferStatusCancelled

	logger.WarnCtx(ctx, "Auction failed",
		zap.String("offer_id", offer.ID.String()),
		zap.String("reason", reason))
	s.notifier.ErrorMessage(ctx, offer, fmt.Sprintf("auction %s failed: %s", offer.ID, reason))
	return nil
}

// CancelAuction cancels a running auction without bids on behalf of its seller
func (s *service) CancelAuction(ctx context.Context, req CancelAuctionRequest) (*schema.Offer, error) {
	offer, err := s.store.GetActiveAuction(ctx, s.market.Network(), domain.NormalizeAddress(req.CollectionID), domain.NormalizeTokenID(req.TokenID))
	if err != nil {
		return nil, s.translate(ctx, err, "failed to get auction")
	}
	if offer == nil {
		return nil, domain.NewNotFoundError("no running auction for %s/%s", req.CollectionID, req.TokenID)
	}
	if !domain.SameAddress(req.RequesterAddress, offer.SellerAddress) {
		return nil, domain.NewBadRequestError("only the seller can cancel the auction")
	}

	err = s.store.WithAuctionTx(ctx, offer.ID, func(tx store.AuctionTx) error {
		count, err := tx.CountBids(ctx, domain.BidStatusMinting, domain.BidStatusFinished)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.NewBadRequestError("auction already has bids")
		}
		return s.endCancelled(ctx, tx)
	})
	if err != nil {
		return nil, s.translate(ctx, err, "failed to cancel auction")
	}
	markCancelled(offer)

	logger.InfoCtx(ctx, "Auction cancelled by seller", zap.String("offer_id", offer.ID.String()))
	s.enqueueReturn(ctx, offer)
	return offer, nil
}

// CancelUnsold ends a closing auction that has no winner and returns the token
func (s *service) CancelUnsold(ctx context.Context, offer *schema.Offer) error {
	err := s.store.WithAuctionTx(ctx, offer.ID, func(tx store.AuctionTx) error {
		if tx.Offer().Status != domain.OfferStatusActive {
			return domain.ErrStatusConflict
		}
		return s.endCancelled(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("failed to cancel unsold auction: %w", err)
	}
	markCancelled(offer)

	logger.InfoCtx(ctx, "Auction ended without winner", zap.String("offer_id", offer.ID.String()))
	s.notifier.AuctionClosed(ctx, offer)
	s.enqueueReturn(ctx, offer)
	return nil
}

func (s *service) endCancelled(ctx context.Context, tx store.AuctionTx) error {
	if err := tx.SetStatus(ctx, domain.OfferStatusCancelled); err != nil {
		return err
	}
	return tx.SetAuctionStatus(ctx, domain.AuctionStatusEnded)
}

func markCancelled(offer *schema.Offer) {
	ended := domain.AuctionStatusEnded
	offer.Status = domain.OfferStatusCancelled
	offer.AuctionStatus = &ended
}

// enqueueReturn queues the token return; failures never revert the cancellation
func (s *service) enqueueReturn(ctx context.Context, offer *schema.Offer) {
	returnCtx := context.WithoutCancel(ctx)
	s.returns.Submit(func() {
		if err := s.ReturnToken(returnCtx, offer); err != nil {
			logger.ErrorCtx(returnCtx, fmt.Errorf("failed to return token: %w", err),
				zap.String("offer_id", offer.ID.String()),
				zap.String("seller", offer.SellerAddress))
			logger.CaptureError(returnCtx, err, map[string]string{
				"offer_id": offer.ID.String(),
				"action":   "return_token",
			})
		}
	})
}

// ReturnToken transfers the escrowed token back to the seller
func (s *service) ReturnToken(ctx context.Context, offer *schema.Offer) error {
	signed, err := s.market.BuildTokenTransfer(ctx, offer.CollectionID, offer.TokenID, offer.SellerAddress)
	if err != nil {
		return fmt.Errorf("failed to build token return: %w", err)
	}

	result, err := s.market.Submit(ctx, signed)
	if err != nil {
		return fmt.Errorf("failed to submit token return %s: %w", signed.Hash, err)
	}
	if !result.IsSucceed {
		return fmt.Errorf("token return %s reverted", signed.Hash)
	}

	logger.InfoCtx(ctx, "Token returned to seller",
		zap.String("offer_id", offer.ID.String()),
		zap.String("seller", offer.SellerAddress),
		zap.String("tx_hash", result.TxHash))
	return nil
}

// Close waits for queued token returns
func (s *service) Close() {
	s.returns.StopAndWait()
}

func (s *service) translate(ctx context.Context, err error, message string) error {
	if domain.KindOf(err) != "" {
		return err
	}
	if errors.Is(err, domain.ErrAuctionNotFound) {
		return domain.NewNotFoundError("auction not found")
	}

	logger.ErrorCtx(ctx, fmt.Errorf("%s: %w", message, err))
	return domain.NewConflictError(err, "%s", message)
}
