package withdrawal

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// WithdrawRequest is a bidder asking for the settled balance of an auction back
type WithdrawRequest struct {
	CollectionID  string
	TokenID       string
	BidderAddress string
}

// Service refunds settled bid balances from escrow
//
//go:generate mockgen -source=service.go -destination=../mocks/withdrawal_service.go -package=mocks -mock_names=Service=MockWithdrawalService
type Service interface {
	// Withdraw refunds the settled balance of a bidder who is not leading
	Withdraw(ctx context.Context, req WithdrawRequest) (*schema.Bid, error)

	// WithdrawByMarket refunds amount to a bidder of a closing auction without leader checks
	WithdrawByMarket(ctx context.Context, offer *schema.Offer, bidderAddress string, amount decimal.Decimal) (*schema.Bid, error)

	// SettleWithdrawal marks a minting withdrawal finished and records the completed payout
	SettleWithdrawal(ctx context.Context, bid *schema.Bid, blockNumber uint64) error

	// FailWithdrawal marks a minting withdrawal errored and records the failed payout
	FailWithdrawal(ctx context.Context, bid *schema.Bid, reason string) error
}

// Config holds the configuration of the withdrawal service
type Config struct {
	// MarketNetwork is the network offers are listed on
	MarketNetwork domain.Network
}

type service struct {
	config  Config
	store   store.Store
	payment chain.Client
}

// NewService creates a withdrawal service paying out on the payment chain
func NewService(config Config, st store.Store, payment chain.Client) Service {
	return &service{config: config, store: st, payment: payment}
}

// Withdraw refunds the settled balance of a bidder who is not leading
func (s *service) Withdraw(ctx context.Context, req WithdrawRequest) (*schema.Bid, error) {
	offer, err := s.store.GetActiveAuction(ctx, s.config.MarketNetwork, domain.NormalizeAddress(req.CollectionID), domain.NormalizeTokenID(req.TokenID))
	if err != nil {
		return nil, s.translate(ctx, err, "failed to get auction")
	}
	if offer == nil {
		return nil, domain.NewNotFoundError("no running auction for %s/%s", req.CollectionID, req.TokenID)
	}

	var (
		withdrawal *schema.Bid
		amount     decimal.Decimal
	)
	err = s.store.WithAuctionTx(ctx, offer.ID, func(tx store.AuctionTx) error {
		totals, err := tx.BidderTotals(ctx)
		if err != nil {
			return err
		}

		own, ok := findTotal(totals, req.BidderAddress)
		if !ok || !withdrawable(own).IsPositive() {
			return domain.NewBadRequestError("bidder has no settled balance to withdraw")
		}
		if isLeader(totals, req.BidderAddress) {
			return domain.NewBadRequestError("the leading bidder cannot withdraw")
		}

		amount = withdrawable(own)
		withdrawal = newWithdrawal(s.payment.Network(), req.BidderAddress, amount, own.Pending)
		return tx.InsertBid(ctx, withdrawal)
	})
	if err != nil {
		return nil, s.translate(ctx, err, "failed to withdraw")
	}

	s.submit(ctx, withdrawal, amount)
	return withdrawal, nil
}

// WithdrawByMarket refunds amount to a bidder of a closing auction without leader checks
func (s *service) WithdrawByMarket(ctx context.Context, offer *schema.Offer, bidderAddress string, amount decimal.Decimal) (*schema.Bid, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("withdrawal amount must be positive: %s", amount)
	}

	var withdrawal *schema.Bid
	err := s.store.WithAuctionTx(ctx, offer.ID, func(tx store.AuctionTx) error {
		totals, err := tx.BidderTotals(ctx)
		if err != nil {
			return err
		}

		pending := decimal.Zero
		if own, ok := findTotal(totals, bidderAddress); ok {
			pending = own.Pending
		}

		withdrawal = newWithdrawal(s.payment.Network(), bidderAddress, amount, pending)
		return tx.InsertBid(ctx, withdrawal)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert market withdrawal: %w", err)
	}

	s.submit(ctx, withdrawal, amount)
	return withdrawal, nil
}

// submit sends the refund of a recorded withdrawal and settles what the chain reports.
// An unknown or dropped outcome leaves the withdrawal minting for the scanner or the stale bid resolver.
func (s *service) submit(ctx context.Context, withdrawal *schema.Bid, amount decimal.Decimal) {
	fields := []zap.Field{
		zap.String("bid_id", withdrawal.ID.String()),
		zap.String("offer_id", withdrawal.OfferID.String()),
		zap.String("bidder", withdrawal.BidderAddress),
		zap.String("amount", amount.String()),
	}

	signed, err := s.payment.BuildBalanceTransfer(ctx, withdrawal.BidderAddress, amount)
	if err != nil {
		s.fail(ctx, withdrawal, fmt.Sprintf("failed to build refund: %v", err))
		return
	}

	if err := s.store.SetBidTransaction(ctx, withdrawal.ID, signed.Hash, signed.Nonce); err != nil {
		// nothing was broadcast yet
		s.fail(ctx, withdrawal, fmt.Sprintf("failed to record refund transaction: %v", err))
		return
	}
	withdrawal.TxHash = &signed.Hash
	withdrawal.TxNonce = &signed.Nonce

	logger.InfoCtx(ctx, "Submitting refund", append(fields, zap.String("tx_hash", signed.Hash))...)

	result, err := s.payment.Submit(ctx, signed)
	switch {
	case err == nil && result.IsSucceed:
		if err := s.SettleWithdrawal(ctx, withdrawal, result.BlockNumber); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to settle withdrawal: %w", err), fields...)
		}

	case err == nil:
		s.fail(ctx, withdrawal, "refund reverted")

	case errors.Is(err, chain.ErrDropped):
		// a dropped refund can still be rebroadcast until its nonce is used
		logger.WarnCtx(ctx, "Refund dropped, leaving withdrawal minting until its nonce is used", append(fields, zap.Error(err))...)

	case chain.IsDefinitiveFailure(err):
		s.fail(ctx, withdrawal, err.Error())

	default:
		logger.WarnCtx(ctx, "Refund outcome unknown, leaving withdrawal minting", append(fields, zap.Error(err))...)
	}
}

func (s *service) fail(ctx context.Context, withdrawal *schema.Bid, reason string) {
	if err := s.FailWithdrawal(ctx, withdrawal, reason); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to record failed withdrawal: %w", err),
			zap.String("bid_id", withdrawal.ID.String()))
	}
}

// SettleWithdrawal marks a minting withdrawal finished and records the completed payout
func (s *service) SettleWithdrawal(ctx context.Context, withdrawal *schema.Bid, blockNumber uint64) error {
	changed, err := s.store.UpdateBidStatus(ctx, withdrawal.ID, domain.BidStatusMinting, domain.BidStatusFinished, &blockNumber)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	withdrawal.Status = domain.BidStatusFinished
	withdrawal.BlockNumber = &blockNumber

	transfer := withdrawTransfer(withdrawal, domain.MoneyTransferStatusCompleted)
	transfer.BlockNumber = &blockNumber
	if _, err := s.store.CreateMoneyTransfer(ctx, transfer); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Withdrawal finished",
		zap.String("bid_id", withdrawal.ID.String()),
		zap.Uint64("block_number", blockNumber))
	return nil
}

// FailWithdrawal marks a minting withdrawal errored and records the failed payout.
// The errored bid drops out of the sums so the next closing pass issues a new refund.
func (s *service) FailWithdrawal(ctx context.Context, withdrawal *schema.Bid, reason string) error {
	changed, err := s.store.UpdateBidStatus(ctx, withdrawal.ID, domain.BidStatusMinting, domain.BidStatusError, nil)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	withdrawal.Status = domain.BidStatusError

	transfer := withdrawTransfer(withdrawal, domain.MoneyTransferStatusFailed)
	transfer.ErrorMessage = &reason
	if _, err := s.store.CreateMoneyTransfer(ctx, transfer); err != nil {
		return err
	}

	logger.WarnCtx(ctx, "Withdrawal failed",
		zap.String("bid_id", withdrawal.ID.String()),
		zap.String("reason", reason))
	return nil
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

func newWithdrawal(network domain.Network, bidderAddress string, amount, pending decimal.Decimal) *schema.Bid {
	return &schema.Bid{
		Network:       network,
		BidderAddress: domain.NormalizeAddress(bidderAddress),
		Amount:        amount.Neg(),
		Balance:       pending.Sub(amount),
		Status:        domain.BidStatusMinting,
	}
}

func withdrawTransfer(withdrawal *schema.Bid, status domain.MoneyTransferStatus) *schema.MoneyTransfer {
	sourceRef := "bid:" + withdrawal.ID.String()
	offerID := withdrawal.OfferID
	return &schema.MoneyTransfer{
		Network:   withdrawal.Network,
		Type:      domain.MoneyTransferTypeWithdraw,
		Status:    status,
		Amount:    withdrawal.Amount.Abs(),
		OfferID:   &offerID,
		SourceRef: &sourceRef,
		TxHash:    withdrawal.TxHash,
		Extra: schema.NewMoneyTransferExtra(schema.MoneyTransferExtra{
			Address: withdrawal.BidderAddress,
			BidID:   withdrawal.ID.String(),
			Reason:  "refund",
		}),
	}
}

// withdrawable is the settled balance net of refunds still minting.
// Pending counts minting withdrawals while Actual does not.
func withdrawable(total domain.BidderTotal) decimal.Decimal {
	return decimal.Min(total.Actual, total.Pending)
}

func findTotal(totals []domain.BidderTotal, bidderAddress string) (domain.BidderTotal, bool) {
	for _, total := range totals {
		if domain.SameAddress(total.BidderAddress, bidderAddress) {
			return total, true
		}
	}
	return domain.BidderTotal{}, false
}

// isLeader reports whether the bidder holds the highest pending or the highest settled total
func isLeader(totals []domain.BidderTotal, bidderAddress string) bool {
	if len(totals) == 0 {
		return false
	}

	// totals are ordered by pending total
	if domain.SameAddress(totals[0].BidderAddress, bidderAddress) && totals[0].Pending.IsPositive() {
		return true
	}

	actualLeader := totals[0]
	for _, total := range totals[1:] {
		if total.Actual.GreaterThan(actualLeader.Actual) {
			actualLeader = total
		}
	}
	return actualLeader.Actual.IsPositive() && domain.SameAddress(actualLeader.BidderAddress, bidderAddress)
}
