package scanner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/mocks"
	"github.com/feral-file/ff-auction-engine/internal/scanner"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

const (
	collection = "0x1111111111111111111111111111111111111111"
	seller     = "0x2222222222222222222222222222222222222222"
	buyer      = "0x3333333333333333333333333333333333333333"
)

type testMarketMocks struct {
	store     *mocks.MockStore
	auctions  *mocks.MockAuctionService
	estimator *mocks.MockTimestampEstimator
	handler   scanner.EventHandler
}

func setupMarket(t *testing.T) *testMarketMocks {
	ctrl := gomock.NewController(t)
	market := mocks.NewMockChainClient(ctrl)
	market.EXPECT().Network().Return(marketNetwork).AnyTimes()
	market.EXPECT().EscrowAddress().Return(escrowAddress).AnyTimes()

	tm := &testMarketMocks{
		store:     mocks.NewMockStore(ctrl),
		auctions:  mocks.NewMockAuctionService(ctrl),
		estimator: mocks.NewMockTimestampEstimator(ctrl),
	}
	tm.handler = scanner.NewMarketHandler(tm.store, market, paymentNetwork, tm.auctions, tm.estimator)
	return tm
}

func createdAuction() *schema.Offer {
	created := domain.AuctionStatusCreated
	return &schema.Offer{
		ID:            uuid.New(),
		Network:       marketNetwork,
		CollectionID:  collection,
		TokenID:       "7",
		SellerAddress: seller,
		Type:          domain.OfferTypeAuction,
		Status:        domain.OfferStatusActive,
		AuctionStatus: &created,
	}
}

func TestMarketHandler_TokenToEscrowActivatesAuction(t *testing.T) {
	tm := setupMarket(t)
	ctx := context.Background()
	blk := testBlock(120)
	offer := createdAuction()

	event := &chain.TokenTransferred{
		EventMeta: chain.EventMeta{TxHash: "0xescrow"},
		Contract:  "0x1111111111111111111111111111111111111111",
		From:      seller,
		To:        "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee",
		TokenID:   "007",
	}

	tm.store.EXPECT().GetCreatedAuction(ctx, marketNetwork, collection, "7").Return(offer, nil)
	tm.auctions.EXPECT().ActivateAuction(ctx, offer, "0xescrow", uint64(120)).Return(nil)

	require.NoError(t, tm.handler.Handle(ctx, blk, event))
}

func TestMarketHandler_TokenTransfersIgnored(t *testing.T) {
	tm := setupMarket(t)
	ctx := context.Background()

	// out of escrow without a closing auction
	tm.store.EXPECT().GetActiveOffer(ctx, marketNetwork, collection, "7").Return(nil, nil)
	require.NoError(t, tm.handler.Handle(ctx, testBlock(1), &chain.TokenTransferred{
		Contract: collection,
		From:     escrowAddress,
		To:       buyer,
		TokenID:  "7",
	}))

	// into escrow without a waiting auction
	tm.store.EXPECT().GetCreatedAuction(ctx, marketNetwork, collection, "8").Return(nil, nil)
	require.NoError(t, tm.handler.Handle(ctx, testBlock(1), &chain.TokenTransferred{
		Contract: collection,
		From:     seller,
		To:       escrowAddress,
		TokenID:  "8",
	}))
}

func TestMarketHandler_TokenFromEscrowRecordsDelivery(t *testing.T) {
	recorded := "0xDELIVER1"
	other := "0x4444444444444444444444444444444444444444"

	tests := []struct {
		name      string
		recipient string
		recorded  *string
		expect    func(tm *testMarketMocks, ctx context.Context, offer *schema.Offer)
		wantErr   bool
	}{
		{
			name:      "winner receives the token",
			recipient: buyer,
			expect: func(tm *testMarketMocks, ctx context.Context, offer *schema.Offer) {
				tm.store.EXPECT().GetFinishedTotals(ctx, offer.ID).Return([]domain.BidderTotal{
					{BidderAddress: buyer, Actual: decimal.NewFromInt(110)},
					{BidderAddress: seller, Actual: decimal.NewFromInt(100)},
				}, nil)
				tm.store.EXPECT().SetDeliveryTxHash(ctx, offer.ID, nil, "0xdeliver1").Return(true, nil)
			},
		},
		{
			name:      "delivery already recorded",
			recipient: buyer,
			recorded:  &recorded,
			expect:    func(*testMarketMocks, context.Context, *schema.Offer) {},
		},
		{
			name:      "recipient did not win",
			recipient: other,
			expect: func(tm *testMarketMocks, ctx context.Context, offer *schema.Offer) {
				tm.store.EXPECT().GetFinishedTotals(ctx, offer.ID).Return([]domain.BidderTotal{
					{BidderAddress: buyer, Actual: decimal.NewFromInt(110)},
				}, nil)
			},
		},
		{
			name:      "delivery recorded concurrently",
			recipient: buyer,
			expect: func(tm *testMarketMocks, ctx context.Context, offer *schema.Offer) {
				tm.store.EXPECT().GetFinishedTotals(ctx, offer.ID).Return([]domain.BidderTotal{
					{BidderAddress: buyer, Actual: decimal.NewFromInt(110)},
				}, nil)
				tm.store.EXPECT().SetDeliveryTxHash(ctx, offer.ID, nil, "0xdeliver1").Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupMarket(t)
			ctx := context.Background()

			offer := createdAuction()
			withdrawing := domain.AuctionStatusWithdrawing
			offer.AuctionStatus = &withdrawing
			offer.DeliveryTxHash = tt.recorded

			tm.store.EXPECT().GetActiveOffer(ctx, marketNetwork, collection, "7").Return(offer, nil)
			tt.expect(tm, ctx, offer)

			err := tm.handler.Handle(ctx, testBlock(96), &chain.TokenTransferred{
				EventMeta: chain.EventMeta{TxHash: "0xdeliver1"},
				Contract:  collection,
				From:      escrowAddress,
				To:        tt.recipient,
				TokenID:   "7",
			})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMarketHandler_TokenFromEscrowIgnoredOutsideWithdrawing(t *testing.T) {
	tm := setupMarket(t)
	ctx := context.Background()

	offer := createdAuction()
	stopped := domain.AuctionStatusStopped
	offer.AuctionStatus = &stopped
	tm.store.EXPECT().GetActiveOffer(ctx, marketNetwork, collection, "7").Return(offer, nil)

	require.NoError(t, tm.handler.Handle(ctx, testBlock(96), &chain.TokenTransferred{
		EventMeta: chain.EventMeta{TxHash: "0xreturn"},
		Contract:  collection,
		From:      escrowAddress,
		To:        seller,
		TokenID:   "7",
	}))
}

func TestMarketHandler_AskCreated(t *testing.T) {
	ask := &chain.AskCreated{
		EventMeta:  chain.EventMeta{TxHash: "0xask"},
		Collection: collection,
		TokenID:    "9",
		Seller:     seller,
		Price:      decimal.NewFromInt(500),
	}

	t.Run("creates a fixed price offer", func(t *testing.T) {
		tm := setupMarket(t)
		ctx := context.Background()

		tm.store.EXPECT().GetOfferByAskTxHash(ctx, "0xask").Return(nil, nil)
		tm.store.EXPECT().CreateOffer(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, offer *schema.Offer) error {
				assert.Equal(t, domain.OfferTypeFixedPrice, offer.Type)
				assert.Equal(t, domain.OfferStatusActive, offer.Status)
				assert.Equal(t, "9", offer.TokenID)
				assert.Equal(t, seller, offer.SellerAddress)
				assert.True(t, offer.Price.Equal(decimal.NewFromInt(500)))
				assert.Nil(t, offer.AuctionStatus)
				require.NotNil(t, offer.AskBlockNumber)
				assert.Equal(t, uint64(30), *offer.AskBlockNumber)
				offer.ID = uuid.New()
				return nil
			})

		require.NoError(t, tm.handler.Handle(ctx, testBlock(30), ask))
	})

	t.Run("already mirrored", func(t *testing.T) {
		tm := setupMarket(t)
		ctx := context.Background()

		tm.store.EXPECT().GetOfferByAskTxHash(ctx, "0xask").Return(&schema.Offer{ID: uuid.New()}, nil)

		require.NoError(t, tm.handler.Handle(ctx, testBlock(30), ask))
	})

	t.Run("token already listed is skipped", func(t *testing.T) {
		tm := setupMarket(t)
		ctx := context.Background()

		tm.store.EXPECT().GetOfferByAskTxHash(ctx, "0xask").Return(nil, nil)
		tm.store.EXPECT().CreateOffer(ctx, gomock.Any()).Return(domain.ErrOfferAlreadyActive)

		require.NoError(t, tm.handler.Handle(ctx, testBlock(30), ask))
	})

	t.Run("store failure", func(t *testing.T) {
		tm := setupMarket(t)
		ctx := context.Background()

		tm.store.EXPECT().GetOfferByAskTxHash(ctx, "0xask").Return(nil, errors.New("db down"))

		require.Error(t, tm.handler.Handle(ctx, testBlock(30), ask))
	})
}

func TestMarketHandler_AskCancelled(t *testing.T) {
	fixed := &schema.Offer{ID: uuid.New(), Type: domain.OfferTypeFixedPrice, Status: domain.OfferStatusActive, SellerAddress: seller}
	auction := createdAuction()

	tests := []struct {
		name   string
		offer  *schema.Offer
		seller string
		cancel bool
	}{
		{name: "fixed price offer", offer: fixed, seller: seller, cancel: true},
		{name: "no active offer", offer: nil, seller: seller},
		{name: "auction is not touched", offer: auction, seller: seller},
		{name: "other seller", offer: fixed, seller: buyer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupMarket(t)
			ctx := context.Background()

			tm.store.EXPECT().GetActiveOffer(ctx, marketNetwork, collection, "7").Return(tt.offer, nil)
			if tt.cancel {
				tm.store.EXPECT().UpdateOfferStatus(ctx, tt.offer.ID, domain.OfferStatusActive, domain.OfferStatusCancelled).Return(true, nil)
			}

			require.NoError(t, tm.handler.Handle(ctx, testBlock(40), &chain.AskCancelled{
				Collection: collection,
				TokenID:    "7",
				Seller:     tt.seller,
			}))
		})
	}
}

func TestMarketHandler_TradeExecuted(t *testing.T) {
	trade := &chain.TradeExecuted{
		EventMeta:  chain.EventMeta{TxHash: "0xtrade"},
		Collection: collection,
		TokenID:    "7",
		Seller:     seller,
		Buyer:      buyer,
		Price:      decimal.NewFromInt(500),
		Fee:        decimal.NewFromInt(50),
	}

	t.Run("marks the fixed price offer bought", func(t *testing.T) {
		tm := setupMarket(t)
		ctx := context.Background()
		blk := testBlock(61)
		askBlock := uint64(20)
		askedAt := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		offer := &schema.Offer{ID: uuid.New(), Type: domain.OfferTypeFixedPrice, Status: domain.OfferStatusActive, AskBlockNumber: &askBlock}

		tm.store.EXPECT().GetActiveOffer(ctx, marketNetwork, collection, "7").Return(offer, nil)
		tm.estimator.EXPECT().EstimateTimestamp(ctx, uint64(20)).Return(askedAt, nil)
		tm.store.EXPECT().MarkOfferBought(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, tr *schema.Trade) (bool, error) {
				require.NotNil(t, tr.OfferID)
				assert.Equal(t, offer.ID, *tr.OfferID)
				assert.Equal(t, buyer, tr.BuyerAddress)
				assert.True(t, tr.MarketFee.Equal(decimal.NewFromInt(50)))
				assert.Equal(t, "0xtrade", tr.TxHash)
				assert.Equal(t, blk.Timestamp, tr.BoughtAt)
				require.NotNil(t, tr.AskedAt)
				assert.Equal(t, askedAt, *tr.AskedAt)
				return true, nil
			})

		require.NoError(t, tm.handler.Handle(ctx, blk, trade))
	})

	t.Run("trade without an offer is recorded alone", func(t *testing.T) {
		tm := setupMarket(t)
		ctx := context.Background()

		tm.store.EXPECT().GetActiveOffer(ctx, marketNetwork, collection, "7").Return(nil, nil)
		tm.store.EXPECT().CreateTrade(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, tr *schema.Trade) (bool, error) {
				assert.Nil(t, tr.OfferID)
				return true, nil
			})

		require.NoError(t, tm.handler.Handle(ctx, testBlock(61), trade))
	})
}

func TestMarketHandler_Deposited(t *testing.T) {
	tm := setupMarket(t)
	ctx := context.Background()

	tm.store.EXPECT().CompleteMoneyTransferByTxHash(ctx, marketNetwork, domain.MoneyTransferTypeDeposit, "0xdeposit", uint64(70)).Return(true, nil)

	require.NoError(t, tm.handler.Handle(ctx, testBlock(70), &chain.DepositCompleted{
		EventMeta: chain.EventMeta{TxHash: "0xdeposit"},
		Account:   buyer,
		Amount:    decimal.NewFromInt(90),
	}))
}

func TestMarketHandler_WithdrawRequested(t *testing.T) {
	tm := setupMarket(t)
	ctx := context.Background()

	tm.store.EXPECT().CreateMoneyTransfer(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, transfer *schema.MoneyTransfer) (bool, error) {
			assert.Equal(t, paymentNetwork, transfer.Network)
			assert.Equal(t, domain.MoneyTransferTypeWithdraw, transfer.Type)
			assert.Equal(t, domain.MoneyTransferStatusPending, transfer.Status)
			assert.True(t, transfer.Amount.Equal(decimal.NewFromInt(75)))
			require.NotNil(t, transfer.SourceRef)
			assert.Equal(t, "withdraw_requested:0xwithdraw:4", *transfer.SourceRef)
			assert.Equal(t, seller, transfer.Payee())
			return true, nil
		})

	require.NoError(t, tm.handler.Handle(ctx, testBlock(71), &chain.WithdrawRequested{
		EventMeta: chain.EventMeta{TxHash: "0xwithdraw", LogIndex: 4},
		Account:   seller,
		Amount:    decimal.NewFromInt(75),
	}))

	// nothing to pay
	require.NoError(t, tm.handler.Handle(ctx, testBlock(71), &chain.WithdrawRequested{
		EventMeta: chain.EventMeta{TxHash: "0xzero"},
		Account:   seller,
		Amount:    decimal.Zero,
	}))
}

type testPaymentMocks struct {
	store       *mocks.MockStore
	bids        *mocks.MockBidService
	withdrawals *mocks.MockWithdrawalService
	handler     scanner.EventHandler
}

func setupPayment(t *testing.T) *testPaymentMocks {
	ctrl := gomock.NewController(t)
	payment := mocks.NewMockChainClient(ctrl)
	payment.EXPECT().Network().Return(paymentNetwork).AnyTimes()
	payment.EXPECT().EscrowAddress().Return(escrowAddress).AnyTimes()

	tm := &testPaymentMocks{
		store:       mocks.NewMockStore(ctrl),
		bids:        mocks.NewMockBidService(ctrl),
		withdrawals: mocks.NewMockWithdrawalService(ctrl),
	}
	tm.handler = scanner.NewPaymentHandler(tm.store, payment, tm.bids, tm.withdrawals)
	return tm
}

func TestPaymentHandler_ResolvesMintingBids(t *testing.T) {
	bidAmount := decimal.NewFromInt(100)
	refundAmount := decimal.NewFromInt(-100)

	tests := []struct {
		name      string
		amount    decimal.Decimal
		succeeded bool
		expect    func(tm *testPaymentMocks, b *schema.Bid)
	}{
		{
			name:      "bid settled",
			amount:    bidAmount,
			succeeded: true,
			expect: func(tm *testPaymentMocks, b *schema.Bid) {
				tm.bids.EXPECT().SettleBid(gomock.Any(), b, uint64(80)).Return(nil)
			},
		},
		{
			name:   "bid reverted",
			amount: bidAmount,
			expect: func(tm *testPaymentMocks, b *schema.Bid) {
				tm.bids.EXPECT().FailBid(gomock.Any(), b, "transaction reverted").Return(nil)
			},
		},
		{
			name:      "refund settled",
			amount:    refundAmount,
			succeeded: true,
			expect: func(tm *testPaymentMocks, b *schema.Bid) {
				tm.withdrawals.EXPECT().SettleWithdrawal(gomock.Any(), b, uint64(80)).Return(nil)
			},
		},
		{
			name:   "refund reverted",
			amount: refundAmount,
			expect: func(tm *testPaymentMocks, b *schema.Bid) {
				tm.withdrawals.EXPECT().FailWithdrawal(gomock.Any(), b, "refund reverted").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupPayment(t)
			ctx := context.Background()
			b := &schema.Bid{ID: uuid.New(), Amount: tt.amount, Status: domain.BidStatusMinting}

			tm.store.EXPECT().GetBidByTxHash(ctx, paymentNetwork, "0xtx").Return(b, nil)
			tt.expect(tm, b)

			require.NoError(t, tm.handler.Handle(ctx, testBlock(80), &chain.BalanceTransferred{
				EventMeta: chain.EventMeta{TxHash: "0xtx"},
				From:      escrowAddress,
				To:        buyer,
				Amount:    tt.amount.Abs(),
				Succeeded: tt.succeeded,
			}))
		})
	}
}

func TestPaymentHandler_FundsForFailedBidRefunded(t *testing.T) {
	tests := []struct {
		name    string
		created bool
	}{
		{name: "refund queued", created: true},
		{name: "refund already queued"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupPayment(t)
			ctx := context.Background()
			b := &schema.Bid{ID: uuid.New(), OfferID: uuid.New(), Amount: decimal.NewFromInt(100), Status: domain.BidStatusError}

			tm.store.EXPECT().GetBidByTxHash(ctx, paymentNetwork, "0xlate").Return(b, nil)
			tm.store.EXPECT().CreateMoneyTransfer(ctx, gomock.Any()).
				DoAndReturn(func(_ context.Context, mt *schema.MoneyTransfer) (bool, error) {
					assert.Equal(t, paymentNetwork, mt.Network)
					assert.Equal(t, domain.MoneyTransferTypeWithdraw, mt.Type)
					assert.Equal(t, domain.MoneyTransferStatusPending, mt.Status)
					assert.True(t, mt.Amount.Equal(decimal.NewFromInt(100)))
					require.NotNil(t, mt.OfferID)
					assert.Equal(t, b.OfferID, *mt.OfferID)
					require.NotNil(t, mt.SourceRef)
					assert.Equal(t, "orphan_deposit:0xlate", *mt.SourceRef)
					assert.Equal(t, buyer, mt.Payee())
					assert.Equal(t, b.ID.String(), mt.Extra.Data().BidID)
					assert.Equal(t, "refund", mt.Extra.Data().Reason)
					return tt.created, nil
				})

			require.NoError(t, tm.handler.Handle(ctx, testBlock(83), &chain.BalanceTransferred{
				EventMeta: chain.EventMeta{TxHash: "0xlate"},
				From:      buyer,
				To:        escrowAddress,
				Amount:    decimal.NewFromInt(100),
				Succeeded: true,
			}))
		})
	}

	t.Run("reverted transfer of a failed bid", func(t *testing.T) {
		tm := setupPayment(t)
		ctx := context.Background()

		tm.store.EXPECT().GetBidByTxHash(ctx, paymentNetwork, "0xlate").
			Return(&schema.Bid{ID: uuid.New(), Amount: decimal.NewFromInt(100), Status: domain.BidStatusError}, nil)

		require.NoError(t, tm.handler.Handle(ctx, testBlock(83), &chain.BalanceTransferred{
			EventMeta: chain.EventMeta{TxHash: "0xlate"},
			From:      buyer,
			To:        escrowAddress,
			Amount:    decimal.NewFromInt(100),
		}))
	})
}

func TestPaymentHandler_PayoutCompleted(t *testing.T) {
	tm := setupPayment(t)
	ctx := context.Background()

	tm.store.EXPECT().GetBidByTxHash(ctx, paymentNetwork, "0xpayout").Return(nil, nil)
	tm.store.EXPECT().CompleteMoneyTransferByTxHash(ctx, paymentNetwork, domain.MoneyTransferTypeWithdraw, "0xpayout", uint64(81)).Return(true, nil)

	require.NoError(t, tm.handler.Handle(ctx, testBlock(81), &chain.BalanceTransferred{
		EventMeta: chain.EventMeta{TxHash: "0xpayout"},
		From:      escrowAddress,
		To:        seller,
		Amount:    decimal.NewFromInt(99),
		Succeeded: true,
	}))
}

func TestPaymentHandler_Ignored(t *testing.T) {
	tm := setupPayment(t)
	ctx := context.Background()

	// not involving escrow
	require.NoError(t, tm.handler.Handle(ctx, testBlock(82), &chain.BalanceTransferred{
		From:      seller,
		To:        buyer,
		Amount:    decimal.NewFromInt(1),
		Succeeded: true,
	}))

	// other event types
	require.NoError(t, tm.handler.Handle(ctx, testBlock(82), &chain.AskCreated{}))

	// bid already settled
	tm.store.EXPECT().GetBidByTxHash(ctx, paymentNetwork, "0xdone").
		Return(&schema.Bid{ID: uuid.New(), Amount: decimal.NewFromInt(5), Status: domain.BidStatusFinished}, nil)
	require.NoError(t, tm.handler.Handle(ctx, testBlock(82), &chain.BalanceTransferred{
		EventMeta: chain.EventMeta{TxHash: "0xdone"},
		From:      buyer,
		To:        escrowAddress,
		Amount:    decimal.NewFromInt(5),
		Succeeded: true,
	}))

	// failed incoming transfer without a bid
	tm.store.EXPECT().GetBidByTxHash(ctx, paymentNetwork, "0xstray").Return(nil, nil)
	require.NoError(t, tm.handler.Handle(ctx, testBlock(82), &chain.BalanceTransferred{
		EventMeta: chain.EventMeta{TxHash: "0xstray"},
		From:      buyer,
		To:        escrowAddress,
		Amount:    decimal.NewFromInt(5),
	}))
}
