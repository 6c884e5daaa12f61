package scanner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/bid"
	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
	"github.com/feral-file/ff-auction-engine/internal/withdrawal"
)

// paymentHandler resolves the bids and payouts settled by native transfers of the escrow account
type paymentHandler struct {
	store       store.Store
	network     domain.Network
	escrow      string
	bids        bid.Service
	withdrawals withdrawal.Service
}

// NewPaymentHandler creates the event handler of the payment network
func NewPaymentHandler(st store.Store, payment chain.Client, bids bid.Service, withdrawals withdrawal.Service) EventHandler {
	return &paymentHandler{
		store:       st,
		network:     payment.Network(),
		escrow:      payment.EscrowAddress(),
		bids:        bids,
		withdrawals: withdrawals,
	}
}

func (h *paymentHandler) Handle(ctx context.Context, blk *chain.Block, event chain.Event) error {
	e, ok := event.(*chain.BalanceTransferred)
	if !ok {
		return nil
	}
	if !domain.SameAddress(e.From, h.escrow) && !domain.SameAddress(e.To, h.escrow) {
		return nil
	}

	found, err := h.resolveBid(ctx, blk, e)
	if err != nil || found {
		return err
	}

	if e.Succeeded && domain.SameAddress(e.From, h.escrow) {
		changed, err := h.store.CompleteMoneyTransferByTxHash(ctx, h.network, domain.MoneyTransferTypeWithdraw, e.TxHash, blk.Number)
		if err != nil {
			return err
		}
		if changed {
			logger.InfoCtx(ctx, "Payout completed", zap.String("to", e.To), zap.String("tx_hash", e.TxHash))
		}
	}
	return nil
}

// resolveBid settles or fails the minting bid submitted with the transfer
func (h *paymentHandler) resolveBid(ctx context.Context, blk *chain.Block, e *chain.BalanceTransferred) (bool, error) {
	b, err := h.store.GetBidByTxHash(ctx, h.network, e.TxHash)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	if b.Status == domain.BidStatusError && !b.IsWithdrawal() && e.Succeeded && domain.SameAddress(e.To, h.escrow) {
		return true, h.refundOrphanedDeposit(ctx, blk, b, e)
	}
	if b.Status != domain.BidStatusMinting {
		return true, nil
	}

	logger.InfoCtx(ctx, "Resolving bid from chain",
		zap.String("bid_id", b.ID.String()),
		zap.String("tx_hash", e.TxHash),
		zap.Bool("succeeded", e.Succeeded))

	switch {
	case b.IsWithdrawal() && e.Succeeded:
		return true, h.withdrawals.SettleWithdrawal(ctx, b, blk.Number)
	case b.IsWithdrawal():
		return true, h.withdrawals.FailWithdrawal(ctx, b, "refund reverted")
	case e.Succeeded:
		return true, h.bids.SettleBid(ctx, b, blk.Number)
	default:
		return true, h.bids.FailBid(ctx, b, "transaction reverted")
	}
}

// refundOrphanedDeposit queues the return of funds that reached escrow for a bid already failed
func (h *paymentHandler) refundOrphanedDeposit(ctx context.Context, blk *chain.Block, b *schema.Bid, e *chain.BalanceTransferred) error {
	logger.WarnCtx(ctx, "Funds arrived for a failed bid, queueing refund",
		zap.String("bid_id", b.ID.String()),
		zap.String("from", e.From),
		zap.String("amount", e.Amount.String()),
		zap.String("tx_hash", e.TxHash))
	logger.CaptureError(ctx, fmt.Errorf("bid %s failed but %s arrived in %s", b.ID, e.Amount, e.TxHash), map[string]string{
		"bid_id":  b.ID.String(),
		"tx_hash": e.TxHash,
	})

	offerID := b.OfferID
	sourceRef := "orphan_deposit:" + e.TxHash
	created, err := h.store.CreateMoneyTransfer(ctx, &schema.MoneyTransfer{
		Network:   h.network,
		Type:      domain.MoneyTransferTypeWithdraw,
		Status:    domain.MoneyTransferStatusPending,
		Amount:    e.Amount,
		OfferID:   &offerID,
		SourceRef: &sourceRef,
		Extra: schema.NewMoneyTransferExtra(schema.MoneyTransferExtra{
			Address: domain.NormalizeAddress(e.From),
			BidID:   b.ID.String(),
			Reason:  "refund",
		}),
	})
	if err != nil {
		return err
	}
	if created {
		logger.InfoCtx(ctx, "Refund of failed bid queued",
			zap.String("bid_id", b.ID.String()),
			zap.Uint64("block_number", blk.Number))
	}
	return nil
}
