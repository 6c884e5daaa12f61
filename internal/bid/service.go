package bid

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/notify"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// PlaceBidRequest is a bid on the running auction of a token
type PlaceBidRequest struct {
	CollectionID string
	TokenID      string
	// SignedTransaction is the bidder's signed balance transfer to escrow
	SignedTransaction string
}

// Service places bids and settles their chain outcome
//
//go:generate mockgen -source=service.go -destination=../mocks/bid_service.go -package=mocks -mock_names=Service=MockBidService
type Service interface {
	// Calculate returns the minimum next bid of a bidder on the running auction of a token
	Calculate(ctx context.Context, collectionID, tokenID, bidderAddress string) (*CalculationInfo, error)

	// PlaceBid records a bid and submits its transfer.
	// The returned bid is finished or errored, or still minting when the chain outcome is unknown.
	PlaceBid(ctx context.Context, req PlaceBidRequest) (*schema.Bid, error)

	// SettleBid marks a minting bid finished and records its deposit
	SettleBid(ctx context.Context, bid *schema.Bid, blockNumber uint64) error

	// FailBid marks a minting bid errored and moves the price back to the remaining leader
	FailBid(ctx context.Context, bid *schema.Bid, reason string) error
}

// Config holds the configuration of the bid service
type Config struct {
	// MarketNetwork is the network offers are listed on
	MarketNetwork domain.Network
}

type service struct {
	config   Config
	store    store.Store
	payment  chain.Client
	notifier notify.Notifier
	clock    adapter.Clock
}

// NewService creates a bid service settling on the payment chain
func NewService(config Config, st store.Store, payment chain.Client, notifier notify.Notifier, clock adapter.Clock) Service {
	return &service{
		config:   config,
		store:    st,
		payment:  payment,
		notifier: notifier,
		clock:    clock,
	}
}

// Calculate returns the minimum next bid of a bidder on the running auction of a token
func (s *service) Calculate(ctx context.Context, collectionID, tokenID, bidderAddress string) (*CalculationInfo, error) {
	offer, err := s.activeAuction(ctx, collectionID, tokenID)
	if err != nil {
		return nil, err
	}

	var info CalculationInfo
	err = s.store.WithAuctionTx(ctx, offer.ID, func(tx store.AuctionTx) error {
		totals, err := tx.BidderTotals(ctx)
		if err != nil {
			return err
		}
		locked := tx.Offer()
		info = Calculate(CalculationInput{
			Price:         locked.Price,
			StartPrice:    locked.StartPrice,
			PriceStep:     locked.PriceStep,
			Totals:        totals,
			BidderAddress: bidderAddress,
		})
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, err, "failed to calculate bid")
	}

	return &info, nil
}

// PlaceBid records a bid and submits its transfer
func (s *service) PlaceBid(ctx context.Context, req PlaceBidRequest) (*schema.Bid, error) {
	offer, err := s.activeAuction(ctx, req.CollectionID, req.TokenID)
	if err != nil {
		return nil, err
	}
	if offer.StopAt != nil && !s.clock.Now().Before(*offer.StopAt) {
		return nil, domain.NewBadRequestError("auction has ended")
	}

	decoded, err := s.payment.DecodeTransaction(req.SignedTransaction)
	if err != nil {
		return nil, domain.NewBadRequestError("invalid transaction: %v", err)
	}
	if decoded.Kind != chain.TransferKindBalance {
		return nil, domain.NewBadRequestError("transaction is not a balance transfer")
	}
	if !domain.SameAddress(decoded.To, s.payment.EscrowAddress()) {
		return nil, domain.NewBadRequestError("transaction recipient %s is not the escrow account", decoded.To)
	}

	var placed *schema.Bid
	err = s.store.WithAuctionTx(ctx, offer.ID, func(tx store.AuctionTx) error {
		locked := tx.Offer()
		if locked.Status != domain.OfferStatusActive || locked.CurrentAuctionStatus() != domain.AuctionStatusActive {
			return domain.NewBadRequestError("auction is not running")
		}

		totals, err := tx.BidderTotals(ctx)
		if err != nil {
			return err
		}

		info := Calculate(CalculationInput{
			Price:         locked.Price,
			StartPrice:    locked.StartPrice,
			PriceStep:     locked.PriceStep,
			Totals:        totals,
			BidderAddress: decoded.From,
		})
		if err := info.Validate(decoded.Amount); err != nil {
			return err
		}

		txHash := decoded.Hash
		balance := info.BidderPendingAmount.Add(decoded.Amount)
		placed = &schema.Bid{
			Network:       s.payment.Network(),
			BidderAddress: domain.NormalizeAddress(decoded.From),
			Amount:        decoded.Amount,
			Balance:       balance,
			Status:        domain.BidStatusMinting,
			TxHash:        &txHash,
		}
		if err := tx.InsertBid(ctx, placed); err != nil {
			return err
		}

		return tx.SetPrice(ctx, decimal.Max(locked.Price, balance))
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			return nil, domain.NewBadRequestError("transaction %s was already submitted", decoded.Hash)
		}
		return nil, s.translate(ctx, err, "failed to place bid")
	}

	logger.InfoCtx(ctx, "Bid recorded, submitting transfer",
		zap.String("offer_id", offer.ID.String()),
		zap.String("bid_id", placed.ID.String()),
		zap.String("bidder", placed.BidderAddress),
		zap.String("amount", placed.Amount.String()))

	result, err := s.payment.Submit(ctx, decoded.Signed)
	switch {
	case err == nil && result.IsSucceed:
		if err := s.SettleBid(ctx, placed, result.BlockNumber); err != nil {
			return nil, s.translate(ctx, err, "failed to settle bid")
		}

	case err == nil:
		if err := s.FailBid(ctx, placed, "transfer reverted"); err != nil {
			return nil, s.translate(ctx, err, "failed to record failed bid")
		}

	case chain.IsDefinitiveFailure(err):
		if err := s.FailBid(ctx, placed, err.Error()); err != nil {
			return nil, s.translate(ctx, err, "failed to record failed bid")
		}

	default:
		// outcome unknown, the scanner or the stale bid resolver settles it
		logger.WarnCtx(ctx, "Bid transfer outcome unknown, leaving bid minting",
			zap.String("bid_id", placed.ID.String()),
			zap.String("tx_hash", decoded.Hash),
			zap.Error(err))
	}

	return placed, nil
}

// SettleBid marks a minting bid finished and records its deposit
func (s *service) SettleBid(ctx context.Context, bid *schema.Bid, blockNumber uint64) error {
	changed, err := s.store.UpdateBidStatus(ctx, bid.ID, domain.BidStatusMinting, domain.BidStatusFinished, &blockNumber)
	if err != nil {
		return err
	}
	if !changed {
		logger.DebugCtx(ctx, "Bid already resolved", zap.String("bid_id", bid.ID.String()))
		return nil
	}
	bid.Status = domain.BidStatusFinished
	bid.BlockNumber = &blockNumber

	if _, err := s.store.CreateMoneyTransfer(ctx, depositTransfer(bid, blockNumber)); err != nil {
		return err
	}

	offer, err := s.store.GetOfferByID(ctx, bid.OfferID)
	if err != nil {
		return err
	}
	if offer != nil {
		s.notifier.BidPlaced(ctx, offer)
	}

	logger.InfoCtx(ctx, "Bid finished",
		zap.String("bid_id", bid.ID.String()),
		zap.Uint64("block_number", blockNumber))
	return nil
}

// FailBid marks a minting bid errored and moves the price back to the remaining leader
func (s *service) FailBid(ctx context.Context, bid *schema.Bid, reason string) error {
	var offer *schema.Offer
	err := s.store.WithAuctionTx(ctx, bid.OfferID, func(tx store.AuctionTx) error {
		changed, err := tx.UpdateBidStatus(ctx, bid.ID, domain.BidStatusMinting, domain.BidStatusError, nil)
		if err != nil || !changed {
			return err
		}

		totals, err := tx.BidderTotals(ctx)
		if err != nil {
			return err
		}

		locked := tx.Offer()
		if err := tx.SetPrice(ctx, LeadingPrice(totals, locked.StartPrice)); err != nil {
			return err
		}
		offer = locked
		return nil
	})
	if err != nil {
		return err
	}
	if offer == nil {
		logger.DebugCtx(ctx, "Bid already resolved", zap.String("bid_id", bid.ID.String()))
		return nil
	}
	bid.Status = domain.BidStatusError

	logger.WarnCtx(ctx, "Bid failed on chain",
		zap.String("bid_id", bid.ID.String()),
		zap.String("offer_id", offer.ID.String()),
		zap.String("reason", reason),
		zap.String("price", offer.Price.String()))

	s.notifier.ErrorMessage(ctx, offer, fmt.Sprintf("bid %s failed: %s", bid.ID, reason))
	return nil
}

func (s *service) activeAuction(ctx context.Context, collectionID, tokenID string) (*schema.Offer, error) {
	offer, err := s.store.GetActiveAuction(ctx, s.config.MarketNetwork, domain.NormalizeAddress(collectionID), domain.NormalizeTokenID(tokenID))
	if err != nil {
		return nil, s.translate(ctx, err, "failed to get auction")
	}
	if offer == nil {
		return nil, domain.NewNotFoundError("no running auction for %s/%s", collectionID, tokenID)
	}
	return offer, nil
}

// translate keeps caller-visible errors and turns infrastructure failures into conflicts
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

func depositTransfer(bid *schema.Bid, blockNumber uint64) *schema.MoneyTransfer {
	sourceRef := "bid:" + bid.ID.String()
	offerID := bid.OfferID
	transfer := &schema.MoneyTransfer{
		Network:     bid.Network,
		Type:        domain.MoneyTransferTypeDeposit,
		Status:      domain.MoneyTransferStatusCompleted,
		Amount:      bid.Amount,
		OfferID:     &offerID,
		SourceRef:   &sourceRef,
		TxHash:      bid.TxHash,
		BlockNumber: &blockNumber,
	}
	transfer.Extra = schema.NewMoneyTransferExtra(schema.MoneyTransferExtra{
		Address: bid.BidderAddress,
		BidID:   bid.ID.String(),
		Reason:  "bid",
	})
	return transfer
}
