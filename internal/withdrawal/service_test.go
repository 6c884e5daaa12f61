package withdrawal_test

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

	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/mocks"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
	"github.com/feral-file/ff-auction-engine/internal/withdrawal"
)

const (
	marketNetwork  = domain.Network("market")
	paymentNetwork = domain.Network("payment")
	testCollection = "0x1111111111111111111111111111111111111111"
	testToken      = "7"
	bidderX        = "0x000000000000000000000000000000000000000A"
	bidderY        = "0x000000000000000000000000000000000000000b"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testWithdrawalMocks struct {
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	tx      *mocks.MockAuctionTx
	payment *mocks.MockChainClient
	service withdrawal.Service
}

func setupTest(t *testing.T) *testWithdrawalMocks {
	ctrl := gomock.NewController(t)
	tm := &testWithdrawalMocks{
		ctrl:    ctrl,
		store:   mocks.NewMockStore(ctrl),
		tx:      mocks.NewMockAuctionTx(ctrl),
		payment: mocks.NewMockChainClient(ctrl),
	}
	tm.service = withdrawal.NewService(withdrawal.Config{MarketNetwork: marketNetwork}, tm.store, tm.payment)
	tm.payment.EXPECT().Network().Return(paymentNetwork).AnyTimes()
	return tm
}

func (tm *testWithdrawalMocks) runAuctionTx(offer *schema.Offer) {
	tm.tx.EXPECT().Offer().Return(offer).AnyTimes()
	tm.store.EXPECT().WithAuctionTx(gomock.Any(), offer.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, fn func(store.AuctionTx) error) error {
			return fn(tm.tx)
		}).AnyTimes()
}

// expectInsert assigns ids to the inserted withdrawal and hands it to the caller
func (tm *testWithdrawalMocks) expectInsert(offer *schema.Offer, inserted **schema.Bid) {
	tm.tx.EXPECT().InsertBid(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *schema.Bid) error {
		b.ID = uuid.New()
		b.OfferID = offer.ID
		*inserted = b
		return nil
	})
}

func runningAuction() *schema.Offer {
	status := domain.AuctionStatusActive
	stopAt := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	return &schema.Offer{
		ID:            uuid.New(),
		Network:       marketNetwork,
		CollectionID:  testCollection,
		TokenID:       testToken,
		Type:          domain.OfferTypeAuction,
		Status:        domain.OfferStatusActive,
		Price:         decimal.NewFromInt(110),
		StartPrice:    decimal.NewFromInt(100),
		PriceStep:     decimal.NewFromInt(10),
		StopAt:        &stopAt,
		AuctionStatus: &status,
	}
}

func outbid() []domain.BidderTotal {
	return []domain.BidderTotal{
		{BidderAddress: bidderY, Pending: decimal.NewFromInt(110), Actual: decimal.NewFromInt(110), Bids: 1},
		{BidderAddress: bidderX, Pending: decimal.NewFromInt(100), Actual: decimal.NewFromInt(100), Bids: 1},
	}
}

func withdrawRequest(bidder string) withdrawal.WithdrawRequest {
	return withdrawal.WithdrawRequest{CollectionID: testCollection, TokenID: testToken, BidderAddress: bidder}
}

func TestWithdraw_OutbidBidderIsRefunded(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()
	offer := runningAuction()
	tm.runAuctionTx(offer)

	tm.store.EXPECT().GetActiveAuction(ctx, marketNetwork, testCollection, testToken).Return(offer, nil)
	tm.tx.EXPECT().BidderTotals(ctx).Return(outbid(), nil)

	var inserted *schema.Bid
	tm.expectInsert(offer, &inserted)

	signed := &chain.SignedTransaction{Hash: "0xrefund", Nonce: 4, Raw: "0x02f8"}
	tm.payment.EXPECT().BuildBalanceTransfer(ctx, domain.NormalizeAddress(bidderX), decimal.NewFromInt(100)).Return(signed, nil)
	tm.store.EXPECT().SetBidTransaction(ctx, gomock.Any(), "0xrefund", uint64(4)).Return(nil)
	tm.payment.EXPECT().Submit(ctx, signed).Return(&chain.SubmitResult{IsSucceed: true, TxHash: "0xrefund", BlockNumber: 51}, nil)
	tm.store.EXPECT().UpdateBidStatus(ctx, gomock.Any(), domain.BidStatusMinting, domain.BidStatusFinished, gomock.Any()).Return(true, nil)
	tm.store.EXPECT().CreateMoneyTransfer(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, transfer *schema.MoneyTransfer) (bool, error) {
			assert.Equal(t, domain.MoneyTransferTypeWithdraw, transfer.Type)
			assert.Equal(t, domain.MoneyTransferStatusCompleted, transfer.Status)
			assert.Equal(t, paymentNetwork, transfer.Network)
			assert.True(t, decimal.NewFromInt(100).Equal(transfer.Amount))
			assert.Equal(t, "bid:"+inserted.ID.String(), *transfer.SourceRef)
			assert.Equal(t, "0xrefund", *transfer.TxHash)
			assert.Equal(t, uint64(51), *transfer.BlockNumber)
			return true, nil
		})

	result, err := tm.service.Withdraw(ctx, withdrawRequest(bidderX))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-100).Equal(result.Amount))
	assert.True(t, result.Balance.IsZero())
	assert.True(t, domain.SameAddress(bidderX, result.BidderAddress))
	assert.Equal(t, paymentNetwork, result.Network)
	assert.Equal(t, domain.BidStatusFinished, result.Status)
	assert.True(t, result.IsWithdrawal())
	require.NotNil(t, result.TxNonce)
	assert.Equal(t, uint64(4), *result.TxNonce)
}

func TestWithdraw_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		bidder string
		setup  func(tm *testWithdrawalMocks, offer *schema.Offer)
		check  func(error) bool
	}{
		{
			name:   "no running auction",
			bidder: bidderX,
			setup: func(tm *testWithdrawalMocks, offer *schema.Offer) {
				tm.store.EXPECT().GetActiveAuction(gomock.Any(), marketNetwork, testCollection, testToken).Return(nil, nil)
			},
			check: domain.IsNotFound,
		},
		{
			name:   "no settled balance",
			bidder: "0x0000000000000000000000000000000000000C0c",
			setup: func(tm *testWithdrawalMocks, offer *schema.Offer) {
				tm.store.EXPECT().GetActiveAuction(gomock.Any(), marketNetwork, testCollection, testToken).Return(offer, nil)
				tm.tx.EXPECT().BidderTotals(gomock.Any()).Return(outbid(), nil)
			},
			check: domain.IsBadRequest,
		},
		{
			name:   "pending leader",
			bidder: bidderY,
			setup: func(tm *testWithdrawalMocks, offer *schema.Offer) {
				tm.store.EXPECT().GetActiveAuction(gomock.Any(), marketNetwork, testCollection, testToken).Return(offer, nil)
				tm.tx.EXPECT().BidderTotals(gomock.Any()).Return(outbid(), nil)
			},
			check: domain.IsBadRequest,
		},
		{
			name:   "settled leader outbid by a minting bid",
			bidder: bidderX,
			setup: func(tm *testWithdrawalMocks, offer *schema.Offer) {
				tm.store.EXPECT().GetActiveAuction(gomock.Any(), marketNetwork, testCollection, testToken).Return(offer, nil)
				tm.tx.EXPECT().BidderTotals(gomock.Any()).Return([]domain.BidderTotal{
					{BidderAddress: bidderY, Pending: decimal.NewFromInt(120), Actual: decimal.NewFromInt(0), Bids: 1},
					{BidderAddress: bidderX, Pending: decimal.NewFromInt(110), Actual: decimal.NewFromInt(110), Bids: 2},
				}, nil)
			},
			check: domain.IsBadRequest,
		},
		{
			name:   "previous refund still minting",
			bidder: bidderX,
			setup: func(tm *testWithdrawalMocks, offer *schema.Offer) {
				tm.store.EXPECT().GetActiveAuction(gomock.Any(), marketNetwork, testCollection, testToken).Return(offer, nil)
				tm.tx.EXPECT().BidderTotals(gomock.Any()).Return([]domain.BidderTotal{
					{BidderAddress: bidderY, Pending: decimal.NewFromInt(110), Actual: decimal.NewFromInt(110), Bids: 1},
					{BidderAddress: bidderX, Pending: decimal.NewFromInt(0), Actual: decimal.NewFromInt(100), Bids: 2},
				}, nil)
			},
			check: domain.IsBadRequest,
		},
		{
			name:   "store failure",
			bidder: bidderX,
			setup: func(tm *testWithdrawalMocks, offer *schema.Offer) {
				tm.store.EXPECT().GetActiveAuction(gomock.Any(), marketNetwork, testCollection, testToken).Return(offer, nil)
				tm.tx.EXPECT().BidderTotals(gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			check: domain.IsConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTest(t)
			offer := runningAuction()
			tm.runAuctionTx(offer)
			tt.setup(tm, offer)

			result, err := tm.service.Withdraw(context.Background(), withdrawRequest(tt.bidder))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
		})
	}
}

func TestWithdraw_RefundsOnlySettledBalance(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()
	offer := runningAuction()
	tm.runAuctionTx(offer)

	// a settled 100 plus a raise of 5 still minting
	tm.store.EXPECT().GetActiveAuction(ctx, marketNetwork, testCollection, testToken).Return(offer, nil)
	tm.tx.EXPECT().BidderTotals(ctx).Return([]domain.BidderTotal{
		{BidderAddress: bidderY, Pending: decimal.NewFromInt(110), Actual: decimal.NewFromInt(110), Bids: 1},
		{BidderAddress: bidderX, Pending: decimal.NewFromInt(105), Actual: decimal.NewFromInt(100), Bids: 2},
	}, nil)
	var inserted *schema.Bid
	tm.expectInsert(offer, &inserted)

	signed := &chain.SignedTransaction{Hash: "0xrefund"}
	tm.payment.EXPECT().BuildBalanceTransfer(ctx, domain.NormalizeAddress(bidderX), decimal.NewFromInt(100)).Return(signed, nil)
	tm.store.EXPECT().SetBidTransaction(ctx, gomock.Any(), "0xrefund", gomock.Any()).Return(nil)
	tm.payment.EXPECT().Submit(ctx, signed).Return(nil, chain.ErrFinalityTimeout)

	result, err := tm.service.Withdraw(ctx, withdrawRequest(bidderX))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-100).Equal(result.Amount))
	assert.True(t, decimal.NewFromInt(5).Equal(result.Balance))
	assert.Equal(t, domain.BidStatusMinting, result.Status)
}

func TestWithdraw_ChainOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		buildErr   error
		submit     *chain.SubmitResult
		submitErr  error
		wantStatus domain.BidStatus
		failed     bool
	}{
		{
			name:       "reverted refund",
			submit:     &chain.SubmitResult{IsSucceed: false, TxHash: "0xrefund", BlockNumber: 51},
			wantStatus: domain.BidStatusError,
			failed:     true,
		},
		{
			name:       "dropped refund",
			submitErr:  chain.ErrDropped,
			wantStatus: domain.BidStatusMinting,
		},
		{
			name:       "nonce usurped",
			submitErr:  chain.ErrUsurped,
			wantStatus: domain.BidStatusError,
			failed:     true,
		},
		{
			name:       "finality timeout",
			submitErr:  chain.ErrFinalityTimeout,
			wantStatus: domain.BidStatusMinting,
		},
		{
			name:       "refund cannot be built",
			buildErr:   errors.New("insufficient funds"),
			wantStatus: domain.BidStatusError,
			failed:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTest(t)
			ctx := context.Background()
			offer := runningAuction()
			tm.runAuctionTx(offer)

			tm.store.EXPECT().GetActiveAuction(ctx, marketNetwork, testCollection, testToken).Return(offer, nil)
			tm.tx.EXPECT().BidderTotals(ctx).Return(outbid(), nil)
			var inserted *schema.Bid
			tm.expectInsert(offer, &inserted)

			signed := &chain.SignedTransaction{Hash: "0xrefund"}
			if tt.buildErr != nil {
				tm.payment.EXPECT().BuildBalanceTransfer(ctx, gomock.Any(), gomock.Any()).Return(nil, tt.buildErr)
			} else {
				tm.payment.EXPECT().BuildBalanceTransfer(ctx, gomock.Any(), gomock.Any()).Return(signed, nil)
				tm.store.EXPECT().SetBidTransaction(ctx, gomock.Any(), "0xrefund", gomock.Any()).Return(nil)
				tm.payment.EXPECT().Submit(ctx, signed).Return(tt.submit, tt.submitErr)
			}

			if tt.failed {
				tm.store.EXPECT().UpdateBidStatus(ctx, gomock.Any(), domain.BidStatusMinting, domain.BidStatusError, nil).Return(true, nil)
				tm.store.EXPECT().CreateMoneyTransfer(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, transfer *schema.MoneyTransfer) (bool, error) {
						assert.Equal(t, domain.MoneyTransferStatusFailed, transfer.Status)
						require.NotNil(t, transfer.ErrorMessage)
						return true, nil
					})
			}

			result, err := tm.service.Withdraw(ctx, withdrawRequest(bidderX))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, result.Status)
		})
	}
}

func TestWithdrawByMarket_SkipsLeaderCheck(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()
	offer := runningAuction()
	tm.runAuctionTx(offer)

	tm.tx.EXPECT().BidderTotals(ctx).Return(outbid(), nil)
	var inserted *schema.Bid
	tm.expectInsert(offer, &inserted)

	signed := &chain.SignedTransaction{Hash: "0xrefund"}
	tm.payment.EXPECT().BuildBalanceTransfer(ctx, domain.NormalizeAddress(bidderY), decimal.NewFromInt(110)).Return(signed, nil)
	tm.store.EXPECT().SetBidTransaction(ctx, gomock.Any(), "0xrefund", gomock.Any()).Return(nil)
	tm.payment.EXPECT().Submit(ctx, signed).Return(nil, chain.ErrFinalityTimeout)

	result, err := tm.service.WithdrawByMarket(ctx, offer, bidderY, decimal.NewFromInt(110))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-110).Equal(result.Amount))
	assert.True(t, result.Balance.IsZero())
	assert.Equal(t, domain.BidStatusMinting, result.Status)
	assert.Equal(t, "0xrefund", *result.TxHash)
}

func TestWithdrawByMarket_RejectsNonPositiveAmount(t *testing.T) {
	tm := setupTest(t)

	_, err := tm.service.WithdrawByMarket(context.Background(), runningAuction(), bidderX, decimal.Zero)
	require.Error(t, err)
}

func TestSettleWithdrawal_AlreadySettled(t *testing.T) {
	tm := setupTest(t)
	ctx := context.Background()
	settled := &schema.Bid{ID: uuid.New(), OfferID: uuid.New(), Amount: decimal.NewFromInt(-100), Status: domain.BidStatusMinting}

	tm.store.EXPECT().UpdateBidStatus(ctx, settled.ID, domain.BidStatusMinting, domain.BidStatusFinished, gomock.Any()).Return(false, nil)

	require.NoError(t, tm.service.SettleWithdrawal(ctx, settled, 60))
	assert.Equal(t, domain.BidStatusMinting, settled.Status)
}
