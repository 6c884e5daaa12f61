package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/auction"
	"github.com/feral-file/ff-auction-engine/internal/block"
	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// marketHandler mirrors market network events: escrow token transfers, asks, trades and account credits
type marketHandler struct {
	store          store.Store
	network        domain.Network
	escrow         string
	paymentNetwork domain.Network
	auctions       auction.Service
	estimator      block.TimestampEstimator
}

// NewMarketHandler creates the event handler of the market network.
// Withdraw requests are queued as payouts on the payment network.
func NewMarketHandler(
	st store.Store,
	market chain.Client,
	paymentNetwork domain.Network,
	auctions auction.Service,
	estimator block.TimestampEstimator,
) EventHandler {
	return &marketHandler{
		store:          st,
		network:        market.Network(),
		escrow:         market.EscrowAddress(),
		paymentNetwork: paymentNetwork,
		auctions:       auctions,
		estimator:      estimator,
	}
}

func (h *marketHandler) Handle(ctx context.Context, blk *chain.Block, event chain.Event) error {
	switch e := event.(type) {
	case *chain.TokenTransferred:
		return h.tokenTransferred(ctx, blk, e)
	case *chain.AskCreated:
		return h.askCreated(ctx, blk, e)
	case *chain.AskCancelled:
		return h.askCancelled(ctx, e)
	case *chain.TradeExecuted:
		return h.tradeExecuted(ctx, blk, e)
	case *chain.DepositCompleted:
		return h.depositCompleted(ctx, blk, e)
	case *chain.WithdrawRequested:
		return h.withdrawRequested(ctx, e)
	default:
		return nil
	}
}

// tokenTransferred follows the tokens entering and leaving escrow
func (h *marketHandler) tokenTransferred(ctx context.Context, blk *chain.Block, e *chain.TokenTransferred) error {
	switch {
	case domain.SameAddress(e.To, h.escrow):
		return h.tokenEscrowed(ctx, blk, e)
	case domain.SameAddress(e.From, h.escrow):
		return h.tokenReleased(ctx, e)
	default:
		return nil
	}
}

// tokenEscrowed activates the created auction waiting for a token sent to escrow
func (h *marketHandler) tokenEscrowed(ctx context.Context, blk *chain.Block, e *chain.TokenTransferred) error {
	offer, err := h.store.GetCreatedAuction(ctx, h.network, domain.NormalizeAddress(e.Contract), domain.NormalizeTokenID(e.TokenID))
	if err != nil {
		return err
	}
	if offer == nil {
		logger.DebugCtx(ctx, "Token sent to escrow without a created auction",
			zap.String("contract", e.Contract),
			zap.String("token_id", e.TokenID),
			zap.String("tx_hash", e.TxHash))
		return nil
	}

	return h.auctions.ActivateAuction(ctx, offer, e.TxHash, blk.Number)
}

// tokenReleased records a transfer from escrow to the winner of a withdrawing auction as its
// delivery. The settlement pass completes the trade and the payout from the recorded delivery.
func (h *marketHandler) tokenReleased(ctx context.Context, e *chain.TokenTransferred) error {
	offer, err := h.store.GetActiveOffer(ctx, h.network, domain.NormalizeAddress(e.Contract), domain.NormalizeTokenID(e.TokenID))
	if err != nil {
		return err
	}
	if offer == nil || !offer.IsAuction() || offer.CurrentAuctionStatus() != domain.AuctionStatusWithdrawing {
		return nil
	}
	if offer.DeliveryTxHash != nil && strings.EqualFold(*offer.DeliveryTxHash, e.TxHash) {
		return nil
	}

	fields := []zap.Field{
		zap.String("offer_id", offer.ID.String()),
		zap.String("recipient", e.To),
		zap.String("tx_hash", e.TxHash),
	}

	totals, err := h.store.GetFinishedTotals(ctx, offer.ID)
	if err != nil {
		return err
	}
	if len(totals) == 0 || !domain.SameAddress(totals[0].BidderAddress, e.To) {
		logger.WarnCtx(ctx, "Token of a closing auction left escrow for an address that did not win", fields...)
		logger.CaptureError(ctx, fmt.Errorf("token %s/%s of offer %s left escrow to %s in %s", e.Contract, e.TokenID, offer.ID, e.To, e.TxHash), map[string]string{
			"offer_id": offer.ID.String(),
			"tx_hash":  e.TxHash,
		})
		return nil
	}

	recorded, err := h.store.SetDeliveryTxHash(ctx, offer.ID, offer.DeliveryTxHash, e.TxHash)
	if err != nil {
		return err
	}
	if !recorded {
		// re-read on the block retry
		return fmt.Errorf("delivery of offer %s changed while recording %s", offer.ID, e.TxHash)
	}

	logger.InfoCtx(ctx, "Token delivery observed", fields...)
	return nil
}

// askCreated mirrors a fixed price listing
func (h *marketHandler) askCreated(ctx context.Context, blk *chain.Block, e *chain.AskCreated) error {
	existing, err := h.store.GetOfferByAskTxHash(ctx, e.TxHash)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	txHash := e.TxHash
	blockNumber := blk.Number
	offer := &schema.Offer{
		Network:        h.network,
		CollectionID:   domain.NormalizeAddress(e.Collection),
		TokenID:        domain.NormalizeTokenID(e.TokenID),
		SellerAddress:  domain.NormalizeAddress(e.Seller),
		Type:           domain.OfferTypeFixedPrice,
		Status:         domain.OfferStatusActive,
		Price:          e.Price,
		StartPrice:     e.Price,
		AskTxHash:      &txHash,
		AskBlockNumber: &blockNumber,
	}

	err = h.store.CreateOffer(ctx, offer)
	if errors.Is(err, domain.ErrOfferAlreadyActive) {
		logger.WarnCtx(ctx, "Ask for a token that already has an active offer",
			zap.String("collection_id", offer.CollectionID),
			zap.String("token_id", offer.TokenID),
			zap.String("tx_hash", txHash))
		logger.CaptureError(ctx, fmt.Errorf("ask %s for %s/%s: %w", txHash, offer.CollectionID, offer.TokenID, err), map[string]string{
			"network": string(h.network),
			"tx_hash": txHash,
		})
		return nil
	}
	if err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Fixed price offer created",
		zap.String("offer_id", offer.ID.String()),
		zap.String("collection_id", offer.CollectionID),
		zap.String("token_id", offer.TokenID),
		zap.String("price", offer.Price.String()))
	return nil
}

func (h *marketHandler) askCancelled(ctx context.Context, e *chain.AskCancelled) error {
	offer, err := h.store.GetActiveOffer(ctx, h.network, domain.NormalizeAddress(e.Collection), domain.NormalizeTokenID(e.TokenID))
	if err != nil {
		return err
	}
	if offer == nil || offer.Type != domain.OfferTypeFixedPrice || !domain.SameAddress(offer.SellerAddress, e.Seller) {
		return nil
	}

	changed, err := h.store.UpdateOfferStatus(ctx, offer.ID, domain.OfferStatusActive, domain.OfferStatusCancelled)
	if err != nil {
		return err
	}
	if changed {
		logger.InfoCtx(ctx, "Fixed price offer cancelled", zap.String("offer_id", offer.ID.String()))
	}
	return nil
}

// tradeExecuted records a fixed price sale and closes its offer
func (h *marketHandler) tradeExecuted(ctx context.Context, blk *chain.Block, e *chain.TradeExecuted) error {
	collectionID := domain.NormalizeAddress(e.Collection)
	tokenID := domain.NormalizeTokenID(e.TokenID)

	offer, err := h.store.GetActiveOffer(ctx, h.network, collectionID, tokenID)
	if err != nil {
		return err
	}

	trade := &schema.Trade{
		Network:       h.network,
		CollectionID:  collectionID,
		TokenID:       tokenID,
		SellerAddress: domain.NormalizeAddress(e.Seller),
		BuyerAddress:  domain.NormalizeAddress(e.Buyer),
		Price:         e.Price,
		MarketFee:     e.Fee,
		TxHash:        e.TxHash,
		BlockNumber:   blk.Number,
		BoughtAt:      blk.Timestamp,
	}

	if offer == nil || offer.Type != domain.OfferTypeFixedPrice {
		_, err := h.store.CreateTrade(ctx, trade)
		return err
	}

	offerID := offer.ID
	trade.OfferID = &offerID
	trade.AskedAt = h.askedAt(ctx, offer)

	bought, err := h.store.MarkOfferBought(ctx, trade)
	if err != nil {
		return err
	}
	if bought {
		logger.InfoCtx(ctx, "Fixed price offer bought",
			zap.String("offer_id", offer.ID.String()),
			zap.String("buyer", trade.BuyerAddress),
			zap.String("price", trade.Price.String()))
	}
	return nil
}

func (h *marketHandler) askedAt(ctx context.Context, offer *schema.Offer) *time.Time {
	if offer.AskBlockNumber == nil {
		return nil
	}
	askedAt, err := h.estimator.EstimateTimestamp(ctx, *offer.AskBlockNumber)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to estimate ask time", zap.Uint64("block_number", *offer.AskBlockNumber), zap.Error(err))
		return nil
	}
	return &askedAt
}

// depositCompleted completes the deposit credit sent by the reconciler
func (h *marketHandler) depositCompleted(ctx context.Context, blk *chain.Block, e *chain.DepositCompleted) error {
	changed, err := h.store.CompleteMoneyTransferByTxHash(ctx, h.network, domain.MoneyTransferTypeDeposit, e.TxHash, blk.Number)
	if err != nil {
		return err
	}
	if changed {
		logger.InfoCtx(ctx, "Deposit completed", zap.String("account", e.Account), zap.String("tx_hash", e.TxHash))
	}
	return nil
}

// withdrawRequested queues a payout of the requested credit
func (h *marketHandler) withdrawRequested(ctx context.Context, e *chain.WithdrawRequested) error {
	if !e.Amount.IsPositive() {
		logger.WarnCtx(ctx, "Ignoring withdraw request without amount", zap.String("tx_hash", e.TxHash))
		return nil
	}

	sourceRef := fmt.Sprintf("withdraw_requested:%s:%d", e.TxHash, e.LogIndex)
	created, err := h.store.CreateMoneyTransfer(ctx, &schema.MoneyTransfer{
		Network:   h.paymentNetwork,
		Type:      domain.MoneyTransferTypeWithdraw,
		Status:    domain.MoneyTransferStatusPending,
		Amount:    e.Amount,
		SourceRef: &sourceRef,
		Extra: schema.NewMoneyTransferExtra(schema.MoneyTransferExtra{
			Address: domain.NormalizeAddress(e.Account),
			Reason:  "withdraw_requested",
		}),
	})
	if err != nil {
		return err
	}
	if created {
		logger.InfoCtx(ctx, "Withdraw request queued",
			zap.String("account", e.Account),
			zap.String("amount", e.Amount.String()))
	}
	return nil
}
