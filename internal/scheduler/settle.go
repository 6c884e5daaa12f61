package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// settleAuction refunds the losers of a stopped auction, delivers the token to the winner
// and ends the auction once both are done. Every step is conditional so the next pass resumes it.
func (s *scheduler) settleAuction(ctx context.Context, offer *schema.Offer) error {
	if offer.CurrentAuctionStatus() == domain.AuctionStatusStopped {
		changed, err := s.deps.Store.UpdateAuctionStatus(ctx, offer.ID, domain.AuctionStatusStopped, domain.AuctionStatusWithdrawing)
		if err != nil {
			return err
		}
		if !changed {
			logger.DebugCtx(ctx, "Auction taken by another pass", zap.String("offer_id", offer.ID.String()))
			return nil
		}
		withdrawing := domain.AuctionStatusWithdrawing
		offer.AuctionStatus = &withdrawing
	}

	totals, err := s.deps.Store.GetFinishedTotals(ctx, offer.ID)
	if err != nil {
		return err
	}

	if len(totals) == 0 || !totals[0].Actual.IsPositive() {
		if offer.Status != domain.OfferStatusActive {
			return fmt.Errorf("auction %s has no winner but its offer is %s", offer.ID, offer.Status)
		}
		return s.deps.Auctions.CancelUnsold(ctx, offer)
	}
	winner := totals[0]

	refunded := true
	for _, loser := range totals[1:] {
		if !loser.Actual.IsPositive() {
			continue
		}

		refund, err := s.deps.Withdrawals.WithdrawByMarket(ctx, offer, loser.BidderAddress, loser.Actual)
		if err != nil {
			refunded = false
			logger.ErrorCtx(ctx, fmt.Errorf("failed to refund losing bidder: %w", err),
				zap.String("offer_id", offer.ID.String()),
				zap.String("bidder", loser.BidderAddress))
			continue
		}
		if refund.Status != domain.BidStatusFinished {
			refunded = false
		}
	}

	if offer.Status == domain.OfferStatusActive {
		if err := s.deliver(ctx, offer, winner); err != nil {
			return err
		}
	}

	if offer.Status != domain.OfferStatusBought || !refunded {
		logger.InfoCtx(ctx, "Auction still settling",
			zap.String("offer_id", offer.ID.String()),
			zap.String("offer_status", string(offer.Status)),
			zap.Bool("refunded", refunded))
		return nil
	}

	changed, err := s.deps.Store.UpdateAuctionStatus(ctx, offer.ID, domain.AuctionStatusWithdrawing, domain.AuctionStatusEnded)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	ended := domain.AuctionStatusEnded
	offer.AuctionStatus = &ended

	logger.InfoCtx(ctx, "Auction closed",
		zap.String("offer_id", offer.ID.String()),
		zap.String("winner", winner.BidderAddress),
		zap.String("price", offer.Price.String()))
	s.deps.Notifier.AuctionClosed(ctx, offer)
	return nil
}

// deliver transfers the token to the winner, records the trade and queues the seller payout.
// A recorded delivery is looked up before a new one is built. A failed or unknown delivery
// leaves the auction withdrawing.
func (s *scheduler) deliver(ctx context.Context, offer *schema.Offer, winner domain.BidderTotal) error {
	fields := []zap.Field{
		zap.String("offer_id", offer.ID.String()),
		zap.String("winner", winner.BidderAddress),
	}

	if offer.DeliveryTxHash != nil {
		status, err := s.deps.Market.TransactionStatus(ctx, *offer.DeliveryTxHash)
		if err != nil {
			return fmt.Errorf("failed to look up token delivery %s: %w", *offer.DeliveryTxHash, err)
		}

		switch {
		case status.State == chain.TxStateSucceeded && status.Finalized:
			return s.completeDelivery(ctx, offer, winner, *offer.DeliveryTxHash, status.BlockNumber)

		case status.State == chain.TxStateNotFound, status.State == chain.TxStateFailed && status.Finalized:
			logger.WarnCtx(ctx, "Recorded token delivery did not land, delivering again",
				append(fields, zap.String("tx_hash", *offer.DeliveryTxHash), zap.String("state", string(status.State)))...)

		default:
			logger.InfoCtx(ctx, "Token delivery not final yet",
				append(fields, zap.String("tx_hash", *offer.DeliveryTxHash))...)
			return nil
		}
	}

	signed, err := s.deps.Market.BuildTokenTransfer(ctx, offer.CollectionID, offer.TokenID, winner.BidderAddress)
	if err != nil {
		return fmt.Errorf("failed to build token delivery: %w", err)
	}

	recorded, err := s.deps.Store.SetDeliveryTxHash(ctx, offer.ID, offer.DeliveryTxHash, signed.Hash)
	if err != nil {
		return err
	}
	if !recorded {
		// the scanner or another pass recorded a delivery since this offer was read
		logger.InfoCtx(ctx, "Token delivery recorded concurrently, retrying next pass", fields...)
		return nil
	}
	offer.DeliveryTxHash = &signed.Hash

	logger.InfoCtx(ctx, "Delivering token to winner", append(fields, zap.String("tx_hash", signed.Hash))...)

	result, err := s.deps.Market.Submit(ctx, signed)
	if err != nil {
		return fmt.Errorf("failed to deliver token %s: %w", signed.Hash, err)
	}
	if !result.IsSucceed {
		return fmt.Errorf("token delivery %s reverted", signed.Hash)
	}

	return s.completeDelivery(ctx, offer, winner, result.TxHash, result.BlockNumber)
}

// completeDelivery records the trade of a final delivery and queues the seller payout
func (s *scheduler) completeDelivery(ctx context.Context, offer *schema.Offer, winner domain.BidderTotal, txHash string, blockNumber uint64) error {
	price := winner.Actual
	marketFee := Commission(price, s.config.CommissionPercent)
	ownerPayout := price.Sub(marketFee)

	offerID := offer.ID
	trade := &schema.Trade{
		OfferID:       &offerID,
		Network:       offer.Network,
		CollectionID:  offer.CollectionID,
		TokenID:       offer.TokenID,
		SellerAddress: offer.SellerAddress,
		BuyerAddress:  domain.NormalizeAddress(winner.BidderAddress),
		Price:         price,
		MarketFee:     marketFee,
		TxHash:        txHash,
		BlockNumber:   blockNumber,
		AskedAt:       s.askedAt(ctx, offer),
		BoughtAt:      s.blockTime(ctx, blockNumber),
	}
	bought, err := s.deps.Store.MarkOfferBought(ctx, trade)
	if err != nil {
		return err
	}
	if !bought {
		logger.WarnCtx(ctx, "Trade already recorded", zap.String("offer_id", offer.ID.String()))
	}
	offer.Status = domain.OfferStatusBought
	offer.Price = price

	if ownerPayout.IsPositive() {
		sourceRef := "payout:" + offer.ID.String()
		_, err := s.deps.Store.CreateMoneyTransfer(ctx, &schema.MoneyTransfer{
			Network:   s.deps.Payment.Network(),
			Type:      domain.MoneyTransferTypeWithdraw,
			Status:    domain.MoneyTransferStatusPending,
			Amount:    ownerPayout,
			OfferID:   &offerID,
			SourceRef: &sourceRef,
			Extra: schema.NewMoneyTransferExtra(schema.MoneyTransferExtra{
				Address: offer.SellerAddress,
				Reason:  "payout",
			}),
		})
		if err != nil {
			return err
		}
	}

	logger.InfoCtx(ctx, "Token delivered",
		zap.String("offer_id", offer.ID.String()),
		zap.String("tx_hash", txHash),
		zap.String("price", price.String()),
		zap.String("market_fee", marketFee.String()),
		zap.String("owner_payout", ownerPayout.String()))
	return nil
}

func (s *scheduler) askedAt(ctx context.Context, offer *schema.Offer) *time.Time {
	if offer.AskBlockNumber == nil {
		return nil
	}
	askedAt := s.blockTime(ctx, *offer.AskBlockNumber)
	return &askedAt
}

// blockTime estimates a block time, falling back to now when no source is reachable
func (s *scheduler) blockTime(ctx context.Context, blockNumber uint64) time.Time {
	timestamp, err := s.deps.Estimator.EstimateTimestamp(ctx, blockNumber)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to estimate block time", zap.Uint64("block_number", blockNumber), zap.Error(err))
		return s.deps.Clock.Now()
	}
	return timestamp
}

// Commission returns floor(price * percent / 100)
func Commission(price decimal.Decimal, percent int64) decimal.Decimal {
	fee, _ := price.Mul(decimal.NewFromInt(percent)).QuoRem(decimal.NewFromInt(domain.COMMISSION_PERCENT_BASE), 0)
	return fee
}
