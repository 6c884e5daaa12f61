package scheduler

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// resolveStaleBids asks the payment chain about bids left minting past the minting timeout
func (s *scheduler) resolveStaleBids(ctx context.Context) error {
	before := s.deps.Clock.Now().Add(-s.config.MintingTimeout)
	bids, err := s.deps.Store.ListStaleMintingBids(ctx, before, s.config.BatchSize)
	if err != nil {
		return err
	}

	for i := range bids {
		if err := s.resolveBid(ctx, &bids[i]); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to resolve minting bid: %w", err),
				zap.String("bid_id", bids[i].ID.String()))
		}
	}
	return nil
}

func (s *scheduler) resolveBid(ctx context.Context, b *schema.Bid) error {
	if b.TxHash == nil {
		// nothing was broadcast
		return s.failBid(ctx, b, "no transaction recorded")
	}

	status, err := s.deps.Payment.TransactionStatus(ctx, *b.TxHash)
	if err != nil {
		return err
	}

	if status.State == chain.TxStateNotFound {
		if b.IsWithdrawal() {
			return s.resolveMissingRefund(ctx, b)
		}
		return s.failBid(ctx, b, "transaction not found")
	}
	return s.applyStatus(ctx, b, status)
}

// resolveMissingRefund fails a refund unknown to the node only once a finalized escrow
// transaction used its nonce. Until then the signed refund can still be mined.
func (s *scheduler) resolveMissingRefund(ctx context.Context, b *schema.Bid) error {
	fields := []zap.Field{
		zap.String("bid_id", b.ID.String()),
		zap.String("tx_hash", *b.TxHash),
	}

	if b.TxNonce == nil {
		logger.WarnCtx(ctx, "Missing refund has no recorded nonce, leaving it minting", fields...)
		logger.CaptureError(ctx, fmt.Errorf("refund %s of bid %s not found and has no nonce", *b.TxHash, b.ID), map[string]string{
			"bid_id":  b.ID.String(),
			"tx_hash": *b.TxHash,
		})
		return nil
	}

	consumed, err := s.deps.Payment.NonceConsumed(ctx, s.deps.Payment.EscrowAddress(), *b.TxNonce)
	if err != nil {
		return err
	}
	if !consumed {
		logger.WarnCtx(ctx, "Refund not found but its nonce is still open, leaving it minting",
			append(fields, zap.Uint64("nonce", *b.TxNonce))...)
		return nil
	}

	// the nonce was used before this lookup, so a refund still unknown here can never land
	status, err := s.deps.Payment.TransactionStatus(ctx, *b.TxHash)
	if err != nil {
		return err
	}
	if status.State == chain.TxStateNotFound {
		return s.failBid(ctx, b, "transaction not found and its nonce was used")
	}
	return s.applyStatus(ctx, b, status)
}

func (s *scheduler) applyStatus(ctx context.Context, b *schema.Bid, status *chain.TransactionStatus) error {
	switch {
	case !status.Finalized:
		logger.DebugCtx(ctx, "Minting bid not final yet",
			zap.String("bid_id", b.ID.String()),
			zap.String("state", string(status.State)))
		return nil

	case status.State == chain.TxStateSucceeded:
		if b.IsWithdrawal() {
			return s.deps.Withdrawals.SettleWithdrawal(ctx, b, status.BlockNumber)
		}
		return s.deps.Bids.SettleBid(ctx, b, status.BlockNumber)

	default:
		return s.failBid(ctx, b, "transaction failed")
	}
}

func (s *scheduler) failBid(ctx context.Context, b *schema.Bid, reason string) error {
	logger.WarnCtx(ctx, "Resolving stale minting bid as failed",
		zap.String("bid_id", b.ID.String()),
		zap.String("reason", reason))

	if b.IsWithdrawal() {
		return s.deps.Withdrawals.FailWithdrawal(ctx, b, reason)
	}
	return s.deps.Bids.FailBid(ctx, b, reason)
}
