package auction_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-auction-engine/internal/auction"
	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/mocks"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

const (
	marketNetwork  = domain.Network("market")
	escrowAddress  = "0x00000000000000000000000000000000000000Ee"
	testCollection = "0x1111111111111111111111111111111111111111"
	testToken      = "7"
	sellerAddress  = "0x2222222222222222222222222222222222222222"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testAuctionMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	tx       *mocks.MockAuctionTx
	market   *mocks.MockChainClient
	registry *mocks.MockCollectionRegistry
	notifier *mocks.MockNotifier
	clock    *mocks.MockClock
	service  auction.Service
	now      time.Time
}

func setupTest(t *testing.T) *testAuctionMocks {
	ctrl := gomock.NewController(t)
	tm := &testAuctionMocks{
		ctrl:     ctrl,
		store:    mocks.NewMockStore(ctrl),
		tx:       mocks.NewMockAuctionTx(ctrl),
		market:   mocks.NewMockChainClient(ctrl),
		registry: mocks.NewMockCollectionRegistry(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
		clock:    mocks.NewMockClock(ctrl),
		now:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	tm.service = auction.NewService(auction.Config{ReturnWorkers: 1}, tm.store, tm.market, tm.registry, tm.notifier, tm.clock)

	tm.clock.EXPECT().Now().Return(tm.now).AnyTimes()
	tm.market.EXPECT().Network().Return(marketNetwork).AnyTimes()
	tm.market.EXPECT().EscrowAddress().Return(escrowAddress).AnyTimes()
	return tm
}

func (tm *testAuctionMocks) runAuctionTx(offer *schema.Offer) {
	locked := *offer
	tm.tx.EXPECT().Offer().Return(&locked).AnyTimes()
	tm.store.EXPECT().WithAuctionTx(gomock.Any(), offer.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, fn func(store.AuctionTx) error) error {
			return fn(tm.tx)
		}).AnyTimes()
}

// expectReturn expects the token to be sent back to the seller from the return queue
func (tm *testAuctionMocks) expectReturn(buildErr error) {
	if buildErr != nil {
		tm.market.EXPECT().BuildTokenTransfer(gomock.Any(), testCollection, testToken, sellerAddress).Return(nil, buildErr)
		return
	}
	signed := &chain.SignedTransaction{Hash: "0xreturn"}
	tm.market.EXPECT().BuildTokenTransfer(gomock.Any(), testCollection, testToken, sellerAddress).Return(signed, nil)
	tm.market.EXPECT().Submit(gomock.Any(), signed).Return(&chain.SubmitResult{IsSucceed: true, TxHash: "0xreturn", BlockNumber: 77}, nil)
}

func createRequest() auction.CreateAuctionRequest {
	return auction.CreateAuctionRequest{
		CollectionID:      testCollection,
		TokenID:           "007",
		StartPrice:        decimal.NewFromInt(100),
		PriceStep:         decimal.NewFromInt(10),
		StopAt:            time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC),
		SignedTransaction: "0x02f8",
	}
}

func escrowTransfer() *chain.DecodedTransaction {
	return &chain.DecodedTransaction{
		Hash:     "0xask",
		Kind:     chain.TransferKindToken,
		From:     sellerAddress,
		To:       escrowAddress,
		Contract: testCollection,
		TokenID:  testToken,
		Signed:   &chain.SignedTransaction{Hash: "0xask", From: sellerAddress, Raw: "0x02f8"},
	}
}

func activeAuction() *schema.Offer {
	status := domain.AuctionStatusActive
	return &schema.Offer{
		ID:            uuid.New(),
		Network:       marketNetwork,
		CollectionID:  testCollection,
		TokenID:       testToken,
		SellerAddress: sellerAddress,
		Type:          domain.OfferTypeAuction,
		Status:        domain.OfferStatusActive,
		Price:         decimal.NewFromInt(100),
		StartPrice:    decimal.NewFromInt(100),
		PriceStep:     decimal.NewFromInt(10),
		AuctionStatus: &status,
	}
}

func TestCreateAuction_Started(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()

	tm.registry.EXPECT().IsEnabled(ctx, marketNetwork, testCollection).Return(true, nil)
	tm.market.EXPECT().DecodeTransaction("0x02f8").Return(escrowTransfer(), nil)
	tm.store.EXPECT().CreateOffer(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, offer *schema.Offer) error {
		assert.Equal(t, testToken, offer.TokenID)
		assert.Equal(t, sellerAddress, offer.SellerAddress)
		assert.Equal(t, domain.OfferTypeAuction, offer.Type)
		assert.Equal(t, domain.AuctionStatusCreated, offer.CurrentAuctionStatus())
		assert.True(t, decimal.NewFromInt(100).Equal(offer.Price))
		assert.Equal(t, "0xask", *offer.AskTxHash)
		offer.ID = uuid.New()
		return nil
	})
	tm.market.EXPECT().Submit(ctx, gomock.Any()).Return(&chain.SubmitResult{IsSucceed: true, TxHash: "0xask", BlockNumber: 30}, nil)
	tm.store.EXPECT().ActivateAuction(ctx, gomock.Any(), "0xask", uint64(30)).Return(true, nil)
	tm.notifier.EXPECT().AuctionStarted(ctx, gomock.Any())

	offer, err := tm.service.CreateAuction(ctx, createRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.AuctionStatusActive, offer.CurrentAuctionStatus())
	assert.Equal(t, uint64(30), *offer.AskBlockNumber)
}

func TestCreateAuction_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *auction.CreateAuctionRequest)
		setup  func(tm *testAuctionMocks)
		check  func(error) bool
	}{
		{
			name:   "zero start price",
			mutate: func(req *auction.CreateAuctionRequest) { req.StartPrice = decimal.Zero },
			check:  domain.IsBadRequest,
		},
		{
			name:   "stop time in the past",
			mutate: func(req *auction.CreateAuctionRequest) { req.StopAt = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) },
			check:  domain.IsBadRequest,
		},
		{
			name: "collection disabled",
			setup: func(tm *testAuctionMocks) {
				tm.registry.EXPECT().IsEnabled(gomock.Any(), marketNetwork, testCollection).Return(false, nil)
			},
			check: domain.IsBadRequest,
		},
		{
			name: "registry failure",
			setup: func(tm *testAuctionMocks) {
				tm.registry.EXPECT().IsEnabled(gomock.Any(), marketNetwork, testCollection).Return(false, errors.New("db down"))
			},
			check: domain.IsConflict,
		},
		{
			name: "transfer to another account",
			setup: func(tm *testAuctionMocks) {
				tm.registry.EXPECT().IsEnabled(gomock.Any(), marketNetwork, testCollection).Return(true, nil)
				decoded := escrowTransfer()
				decoded.To = sellerAddress
				tm.market.EXPECT().DecodeTransaction("0x02f8").Return(decoded, nil)
			},
			check: domain.IsBadRequest,
		},
		{
			name: "transfer of another token",
			setup: func(tm *testAuctionMocks) {
				tm.registry.EXPECT().IsEnabled(gomock.Any(), marketNetwork, testCollection).Return(true, nil)
				decoded := escrowTransfer()
				decoded.TokenID = "8"
				tm.market.EXPECT().DecodeTransaction("0x02f8").Return(decoded, nil)
			},
			check: domain.IsBadRequest,
		},
		{
			name: "balance transfer instead of token",
			setup: func(tm *testAuctionMocks) {
				tm.registry.EXPECT().IsEnabled(gomock.Any(), marketNetwork, testCollection).Return(true, nil)
				decoded := escrowTransfer()
				decoded.Kind = chain.TransferKindBalance
				tm.market.EXPECT().DecodeTransaction("0x02f8").Return(decoded, nil)
			},
			check: domain.IsBadRequest,
		},
		{
			name: "token already listed",
			setup: func(tm *testAuctionMocks) {
				tm.registry.EXPECT().IsEnabled(gomock.Any(), marketNetwork, testCollection).Return(true, nil)
				tm.market.EXPECT().DecodeTransaction("0x02f8").Return(escrowTransfer(), nil)
				tm.store.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).Return(domain.ErrOfferAlreadyActive)
			},
			check: domain.IsConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTest(t)
			req := createRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}
			if tt.setup != nil {
				tt.setup(tm)
			}

			offer, err := tm.service.CreateAuction(context.Background(), req)
			require.Error(t, err)
			assert.Nil(t, offer)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
		})
	}
}

func TestCreateAuction_TransferOutcome(t *testing.T) {
	tests := []struct {
		name        string
		result      *chain.SubmitResult
		err         error
		wantAuction domain.AuctionStatus
		wantOffer   domain.OfferStatus
	}{
		{
			name:        "reverted",
			result:      &chain.SubmitResult{IsSucceed: false, TxHash: "0xask"},
			wantAuction: domain.AuctionStatusFailed,
			wantOffer:   domain.OfferStatusCancelled,
		},
		{
			name:        "usurped",
			err:         chain.ErrUsurped,
			wantAuction: domain.AuctionStatusFailed,
			wantOffer:   domain.OfferStatusCancelled,
		},
		{
			name:        "finality timeout",
			err:         chain.ErrFinalityTimeout,
			wantAuction: domain.AuctionStatusCreated,
			wantOffer:   domain.OfferStatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTest(t)
			ctx := context.Background()

			tm.registry.EXPECT().IsEnabled(ctx, marketNetwork, testCollection).Return(true, nil)
			tm.market.EXPECT().DecodeTransaction("0x02f8").Return(escrowTransfer(), nil)
			tm.store.EXPECT().CreateOffer(ctx, gomock.Any()).Return(nil)
			tm.market.EXPECT().Submit(ctx, gomock.Any()).Return(tt.result, tt.err)

			if tt.wantAuction == domain.AuctionStatusFailed {
				tm.store.EXPECT().UpdateAuctionStatus(ctx, gomock.Any(), domain.AuctionStatusCreated, domain.AuctionStatusFailed).Return(true, nil)
				tm.store.EXPECT().UpdateOfferStatus(ctx, gomock.Any(), domain.OfferStatusActive, domain.OfferStatusCancelled).Return(true, nil)
				tm.notifier.EXPECT().ErrorMessage(ctx, gomock.Any(), gomock.Any())
			}

			offer, err := tm.service.CreateAuction(ctx, createRequest())
			require.NoError(t, err)
			assert.Equal(t, tt.wantAuction, offer.CurrentAuctionStatus())
			assert.Equal(t, tt.wantOffer, offer.Status)
		})
	}
}

func TestActivateAuction_AlreadyActive(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()
	offer := activeAuction()

	tm.store.EXPECT().ActivateAuction(ctx, offer.ID, "0xask", uint64(30)).Return(false, nil)

	require.NoError(t, tm.service.ActivateAuction(ctx, offer, "0xask", 30))
}

func TestCancelAuction_BySeller(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()
	offer := activeAuction()
	tm.runAuctionTx(offer)

	tm.store.EXPECT().GetActiveAuction(ctx, marketNetwork, testCollection, testToken).Return(offer, nil)
	tm.tx.EXPECT().CountBids(ctx, domain.BidStatusMinting, domain.BidStatusFinished).Return(int64(0), nil)
	tm.tx.EXPECT().SetStatus(ctx, domain.OfferStatusCancelled).Return(nil)
	tm.tx.EXPECT().SetAuctionStatus(ctx, domain.AuctionStatusEnded).Return(nil)
	tm.expectReturn(nil)

	cancelled, err := tm.service.CancelAuction(ctx, auction.CancelAuctionRequest{
		CollectionID:     testCollection,
		TokenID:          testToken,
		RequesterAddress: "0x2222222222222222222222222222222222222222",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OfferStatusCancelled, cancelled.Status)
	assert.Equal(t, domain.AuctionStatusEnded, cancelled.CurrentAuctionStatus())

	tm.service.Close()
}

func TestCancelAuction_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		requester string
		setup     func(tm *testAuctionMocks, offer *schema.Offer)
		check     func(error) bool
	}{
		{
			name:      "no running auction",
			requester: sellerAddress,
			setup: func(tm *testAuctionMocks, offer *schema.Offer) {
				tm.store.EXPECT().GetActiveAuction(gomock.Any(), marketNetwork, testCollection, testToken).Return(nil, nil)
			},
			check: domain.IsNotFound,
		},
		{
			name:      "requester is not the seller",
			requester: "0x3333333333333333333333333333333333333333",
			setup: func(tm *testAuctionMocks, offer *schema.Offer) {
				tm.store.EXPECT().GetActiveAuction(gomock.Any(), marketNetwork, testCollection, testToken).Return(offer, nil)
			},
			check: domain.IsBadRequest,
		},
		{
			name:      "auction has bids",
			requester: sellerAddress,
			setup: func(tm *testAuctionMocks, offer *schema.Offer) {
				tm.store.EXPECT().GetActiveAuction(gomock.Any(), marketNetwork, testCollection, testToken).Return(offer, nil)
				tm.tx.EXPECT().CountBids(gomock.Any(), domain.BidStatusMinting, domain.BidStatusFinished).Return(int64(1), nil)
			},
			check: domain.IsBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTest(t)
			offer := activeAuction()
			tm.runAuctionTx(offer)
			tt.setup(tm, offer)

			result, err := tm.service.CancelAuction(context.Background(), auction.CancelAuctionRequest{
				CollectionID:     testCollection,
				TokenID:          testToken,
				RequesterAddress: tt.requester,
			})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
		})
	}
}

func TestCancelAuction_ReturnFailureKeepsCancellation(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()
	offer := activeAuction()
	tm.runAuctionTx(offer)

	tm.store.EXPECT().GetActiveAuction(ctx, marketNetwork, testCollection, testToken).Return(offer, nil)
	tm.tx.EXPECT().CountBids(ctx, domain.BidStatusMinting, domain.BidStatusFinished).Return(int64(0), nil)
	tm.tx.EXPECT().SetStatus(ctx, domain.OfferStatusCancelled).Return(nil)
	tm.tx.EXPECT().SetAuctionStatus(ctx, domain.AuctionStatusEnded).Return(nil)
	tm.expectReturn(errors.New("escrow nonce unavailable"))

	cancelled, err := tm.service.CancelAuction(ctx, auction.CancelAuctionRequest{
		CollectionID:     testCollection,
		TokenID:          testToken,
		RequesterAddress: sellerAddress,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OfferStatusCancelled, cancelled.Status)

	tm.service.Close()
}

func TestCancelUnsold(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()
	offer := activeAuction()
	withdrawing := domain.AuctionStatusWithdrawing
	offer.AuctionStatus = &withdrawing
	tm.runAuctionTx(offer)

	tm.tx.EXPECT().SetStatus(ctx, domain.OfferStatusCancelled).Return(nil)
	tm.tx.EXPECT().SetAuctionStatus(ctx, domain.AuctionStatusEnded).Return(nil)
	tm.notifier.EXPECT().AuctionClosed(ctx, offer)
	tm.expectReturn(nil)

	require.NoError(t, tm.service.CancelUnsold(ctx, offer))
	assert.Equal(t, domain.AuctionStatusEnded, offer.CurrentAuctionStatus())

	tm.service.Close()
}

func TestCancelUnsold_AlreadyClosed(t *testing.T) {
	tm := setupTest(t)
	offer := activeAuction()
	offer.Status = domain.OfferStatusBought
	tm.runAuctionTx(offer)

	err := tm.service.CancelUnsold(context.Background(), offer)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStatusConflict)
}
