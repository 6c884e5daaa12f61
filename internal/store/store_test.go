package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

const (
	testMarket     domain.Network = "market"
	testPayment    domain.Network = "payment"
	testCollection                = "0x1111111111111111111111111111111111111111"
	testSeller                    = "0x2222222222222222222222222222222222222222"
	testBidderA                   = "0xAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAa"
	testBidderB                   = "0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestAuction creates an auction offer in the given state
func buildTestAuction(tokenID string, status domain.AuctionStatus, stopAt time.Time) *schema.Offer {
	return &schema.Offer{
		Network:       testMarket,
		CollectionID:  testCollection,
		TokenID:       tokenID,
		SellerAddress: testSeller,
		Type:          domain.OfferTypeAuction,
		Status:        domain.OfferStatusActive,
		Price:         decimal.NewFromInt(100),
		StartPrice:    decimal.NewFromInt(100),
		PriceStep:     decimal.NewFromInt(10),
		StopAt:        &stopAt,
		AuctionStatus: &status,
	}
}

// buildTestBid creates a bid for an offer
func buildTestBid(offerID uuid.UUID, bidder string, amount int64, status domain.BidStatus) *schema.Bid {
	return &schema.Bid{
		OfferID:       offerID,
		Network:       testPayment,
		BidderAddress: bidder,
		Amount:        decimal.NewFromInt(amount),
		Balance:       decimal.NewFromInt(amount),
		Status:        status,
	}
}

// buildTestMoneyTransfer creates a pending money transfer
func buildTestMoneyTransfer(network domain.Network, transferType domain.MoneyTransferType, amount int64, sourceRef string) *schema.MoneyTransfer {
	ref := sourceRef
	return &schema.MoneyTransfer{
		Network:   network,
		Type:      transferType,
		Status:    domain.MoneyTransferStatusPending,
		Amount:    decimal.NewFromInt(amount),
		SourceRef: &ref,
		Extra:     datatypes.NewJSONType(schema.MoneyTransferExtra{Address: testBidderA}),
	}
}

func mustCreateOffer(t *testing.T, store Store, offer *schema.Offer) *schema.Offer {
	t.Helper()
	require.NoError(t, store.CreateOffer(context.Background(), offer))
	require.NotEqual(t, uuid.Nil, offer.ID)
	return offer
}

// =============================================================================
// Test: Offers
// =============================================================================

func testOffers(t *testing.T, store Store) {
	ctx := context.Background()
	stopAt := time.Now().UTC().Add(time.Hour)

	t.Run("create and find a created auction", func(t *testing.T) {
		offer := mustCreateOffer(t, store, buildTestAuction("1", domain.AuctionStatusCreated, stopAt))

		found, err := store.GetCreatedAuction(ctx, testMarket, testCollection, "1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, offer.ID, found.ID)
		assert.True(t, found.IsAuction())

		active, err := store.GetActiveAuction(ctx, testMarket, testCollection, "1")
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("second active offer for a token is rejected", func(t *testing.T) {
		err := store.CreateOffer(ctx, buildTestAuction("1", domain.AuctionStatusCreated, stopAt))
		assert.ErrorIs(t, err, domain.ErrOfferAlreadyActive)

		// the enclosing transaction is still usable
		offer, err := store.GetActiveOffer(ctx, testMarket, testCollection, "1")
		require.NoError(t, err)
		require.NotNil(t, offer)
	})

	t.Run("activate auction once", func(t *testing.T) {
		offer, err := store.GetCreatedAuction(ctx, testMarket, testCollection, "1")
		require.NoError(t, err)
		require.NotNil(t, offer)

		ok, err := store.ActivateAuction(ctx, offer.ID, "0xescrow1", 42)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.ActivateAuction(ctx, offer.ID, "0xescrow1", 42)
		require.NoError(t, err)
		assert.False(t, ok)

		active, err := store.GetActiveAuction(ctx, testMarket, testCollection, "1")
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, "0xescrow1", *active.AskTxHash)
		assert.Equal(t, uint64(42), *active.AskBlockNumber)

		byHash, err := store.GetOfferByAskTxHash(ctx, "0xescrow1")
		require.NoError(t, err)
		require.NotNil(t, byHash)
		assert.Equal(t, offer.ID, byHash.ID)
	})

	t.Run("invalid auction transition", func(t *testing.T) {
		offer, err := store.GetActiveAuction(ctx, testMarket, testCollection, "1")
		require.NoError(t, err)

		_, err = store.UpdateAuctionStatus(ctx, offer.ID, domain.AuctionStatusActive, domain.AuctionStatusWithdrawing)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("offer status update is conditional", func(t *testing.T) {
		offer, err := store.GetActiveAuction(ctx, testMarket, testCollection, "1")
		require.NoError(t, err)

		ok, err := store.UpdateOfferStatus(ctx, offer.ID, domain.OfferStatusBought, domain.OfferStatusCancelled)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.UpdateOfferStatus(ctx, offer.ID, domain.OfferStatusActive, domain.OfferStatusRemovedByAdmin)
		require.NoError(t, err)
		assert.True(t, ok)

		// a removed offer frees the token for a new listing
		mustCreateOffer(t, store, buildTestAuction("1", domain.AuctionStatusCreated, stopAt))
	})

	t.Run("unknown offer", func(t *testing.T) {
		offer, err := store.GetOfferByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, offer)
	})
}

// =============================================================================
// Test: StopExpiredAuctions
// =============================================================================

func testStopExpiredAuctions(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	expired := mustCreateOffer(t, store, buildTestAuction("10", domain.AuctionStatusActive, now.Add(-time.Minute)))
	mustCreateOffer(t, store, buildTestAuction("11", domain.AuctionStatusActive, now.Add(time.Hour)))
	mustCreateOffer(t, store, buildTestAuction("12", domain.AuctionStatusCreated, now.Add(-time.Minute)))

	stopped, err := store.StopExpiredAuctions(ctx, now)
	require.NoError(t, err)
	require.Len(t, stopped, 1)
	assert.Equal(t, expired.ID, stopped[0].ID)
	assert.Equal(t, domain.AuctionStatusStopped, stopped[0].CurrentAuctionStatus())

	// a second pass finds nothing
	stopped, err = store.StopExpiredAuctions(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, stopped)
}

// =============================================================================
// Test: Bids
// =============================================================================

func testBidderTotals(t *testing.T, store Store) {
	ctx := context.Background()
	offer := mustCreateOffer(t, store, buildTestAuction("20", domain.AuctionStatusActive, time.Now().UTC().Add(time.Hour)))

	bids := []*schema.Bid{
		buildTestBid(offer.ID, testBidderA, 120, domain.BidStatusFinished),
		buildTestBid(offer.ID, testBidderB, 100, domain.BidStatusFinished),
		buildTestBid(offer.ID, testBidderB, 50, domain.BidStatusMinting),
		buildTestBid(offer.ID, testBidderA, 500, domain.BidStatusError),
	}
	for i, bid := range bids {
		bid.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
		require.NoError(t, store.InsertBid(ctx, bid))
	}

	t.Run("pending totals rank the leader first", func(t *testing.T) {
		totals, err := store.GetBidderTotals(ctx, offer.ID)
		require.NoError(t, err)
		require.Len(t, totals, 2)

		assert.Equal(t, testBidderB, totals[0].BidderAddress)
		assert.True(t, decimal.NewFromInt(150).Equal(totals[0].Pending))
		assert.True(t, decimal.NewFromInt(100).Equal(totals[0].Actual))
		assert.Equal(t, int64(2), totals[0].Bids)

		assert.Equal(t, testBidderA, totals[1].BidderAddress)
		assert.True(t, decimal.NewFromInt(120).Equal(totals[1].Pending))
		assert.True(t, decimal.NewFromInt(120).Equal(totals[1].Actual))
		assert.Equal(t, int64(1), totals[1].Bids)
	})

	t.Run("finished totals ignore minting bids", func(t *testing.T) {
		totals, err := store.GetFinishedTotals(ctx, offer.ID)
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, testBidderA, totals[0].BidderAddress)
		assert.True(t, decimal.NewFromInt(120).Equal(totals[0].Actual))
	})

	t.Run("count by status", func(t *testing.T) {
		count, err := store.CountBids(ctx, offer.ID, domain.BidStatusMinting, domain.BidStatusFinished)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		count, err = store.CountBids(ctx, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("bid status update is conditional", func(t *testing.T) {
		minting := bids[2]
		block := uint64(7)

		ok, err := store.UpdateBidStatus(ctx, minting.ID, domain.BidStatusMinting, domain.BidStatusFinished, &block)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.UpdateBidStatus(ctx, minting.ID, domain.BidStatusMinting, domain.BidStatusError, nil)
		require.NoError(t, err)
		assert.False(t, ok)

		bid, err := store.GetBidByID(ctx, minting.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BidStatusFinished, bid.Status)
		assert.Equal(t, block, *bid.BlockNumber)
	})

	t.Run("duplicate tx hash is rejected", func(t *testing.T) {
		require.NoError(t, store.SetBidTransaction(ctx, bids[0].ID, "0xpay1", 12))

		found, err := store.GetBidByTxHash(ctx, testPayment, "0xpay1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, bids[0].ID, found.ID)
		require.NotNil(t, found.TxNonce)
		assert.Equal(t, uint64(12), *found.TxNonce)

		hash := "0xpay1"
		dup := buildTestBid(offer.ID, testBidderB, 10, domain.BidStatusMinting)
		dup.TxHash = &hash
		assert.ErrorIs(t, store.InsertBid(ctx, dup), domain.ErrDuplicateTransaction)
		assert.ErrorIs(t, store.SetBidTransaction(ctx, bids[1].ID, "0xpay1", 13), domain.ErrDuplicateTransaction)
	})

	t.Run("stale minting bids", func(t *testing.T) {
		stale := buildTestBid(offer.ID, testBidderA, 30, domain.BidStatusMinting)
		stale.CreatedAt = time.Now().UTC().Add(-time.Hour)
		require.NoError(t, store.InsertBid(ctx, stale))

		found, err := store.ListStaleMintingBids(ctx, time.Now().UTC().Add(-time.Minute), 10)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, stale.ID, found[0].ID)
	})
}

// =============================================================================
// Test: WithAuctionTx
// =============================================================================

func testWithAuctionTx(t *testing.T, store Store) {
	ctx := context.Background()
	offer := mustCreateOffer(t, store, buildTestAuction("30", domain.AuctionStatusActive, time.Now().UTC().Add(time.Hour)))

	t.Run("commit bid and price", func(t *testing.T) {
		err := store.WithAuctionTx(ctx, offer.ID, func(tx AuctionTx) error {
			assert.Equal(t, offer.ID, tx.Offer().ID)

			totals, err := tx.BidderTotals(ctx)
			if err != nil {
				return err
			}
			assert.Empty(t, totals)

			if err := tx.InsertBid(ctx, buildTestBid(uuid.Nil, testBidderA, 120, domain.BidStatusMinting)); err != nil {
				return err
			}
			return tx.SetPrice(ctx, decimal.NewFromInt(120))
		})
		require.NoError(t, err)

		updated, err := store.GetOfferByID(ctx, offer.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(120).Equal(updated.Price))

		count, err := store.CountBids(ctx, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("invalid transition rolls back", func(t *testing.T) {
		err := store.WithAuctionTx(ctx, offer.ID, func(tx AuctionTx) error {
			if err := tx.InsertBid(ctx, buildTestBid(uuid.Nil, testBidderB, 200, domain.BidStatusMinting)); err != nil {
				return err
			}
			return tx.SetAuctionStatus(ctx, domain.AuctionStatusWithdrawing)
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		count, err := store.CountBids(ctx, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("cancel inside the transaction", func(t *testing.T) {
		err := store.WithAuctionTx(ctx, offer.ID, func(tx AuctionTx) error {
			if err := tx.SetStatus(ctx, domain.OfferStatusCancelled); err != nil {
				return err
			}
			return tx.SetAuctionStatus(ctx, domain.AuctionStatusEnded)
		})
		require.NoError(t, err)

		updated, err := store.GetOfferByID(ctx, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OfferStatusCancelled, updated.Status)
		assert.Equal(t, domain.AuctionStatusEnded, updated.CurrentAuctionStatus())
	})

	t.Run("unknown offer", func(t *testing.T) {
		err := store.WithAuctionTx(ctx, uuid.New(), func(tx AuctionTx) error { return nil })
		assert.ErrorIs(t, err, domain.ErrAuctionNotFound)
	})
}

// =============================================================================
// Test: ListSettleableAuctions and MarkOfferBought
// =============================================================================

func testSettlement(t *testing.T, store Store) {
	ctx := context.Background()
	past := time.Now().UTC().Add(-time.Hour)

	ready := mustCreateOffer(t, store, buildTestAuction("40", domain.AuctionStatusStopped, past))
	busy := mustCreateOffer(t, store, buildTestAuction("41", domain.AuctionStatusWithdrawing, past))
	mustCreateOffer(t, store, buildTestAuction("42", domain.AuctionStatusActive, past))
	require.NoError(t, store.InsertBid(ctx, buildTestBid(busy.ID, testBidderA, 10, domain.BidStatusMinting)))

	t.Run("auctions with minting bids wait", func(t *testing.T) {
		offers, err := store.ListSettleableAuctions(ctx, 10)
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, ready.ID, offers[0].ID)
	})

	t.Run("delivery tx hash is compare and set", func(t *testing.T) {
		ok, err := store.SetDeliveryTxHash(ctx, ready.ID, nil, "0xdeliver1")
		require.NoError(t, err)
		assert.True(t, ok)

		// a writer that read no delivery loses to the first one
		ok, err = store.SetDeliveryTxHash(ctx, ready.ID, nil, "0xdeliver2")
		require.NoError(t, err)
		assert.False(t, ok)

		previous := "0xdeliver1"
		ok, err = store.SetDeliveryTxHash(ctx, ready.ID, &previous, "0xdeliver2")
		require.NoError(t, err)
		assert.True(t, ok)

		offer, err := store.GetOfferByID(ctx, ready.ID)
		require.NoError(t, err)
		require.NotNil(t, offer.DeliveryTxHash)
		assert.Equal(t, "0xdeliver2", *offer.DeliveryTxHash)
	})

	t.Run("mark bought once", func(t *testing.T) {
		offerID := ready.ID
		trade := &schema.Trade{
			OfferID:       &offerID,
			Network:       testMarket,
			CollectionID:  testCollection,
			TokenID:       "40",
			SellerAddress: testSeller,
			BuyerAddress:  testBidderA,
			Price:         decimal.NewFromInt(200),
			MarketFee:     decimal.NewFromInt(20),
			TxHash:        "0xtrade40",
			BlockNumber:   99,
			BoughtAt:      time.Now().UTC(),
		}

		ok, err := store.MarkOfferBought(ctx, trade)
		require.NoError(t, err)
		assert.True(t, ok)

		again := *trade
		again.ID = uuid.Nil
		ok, err = store.MarkOfferBought(ctx, &again)
		require.NoError(t, err)
		assert.False(t, ok)

		offer, err := store.GetOfferByID(ctx, ready.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OfferStatusBought, offer.Status)
		assert.True(t, decimal.NewFromInt(200).Equal(offer.Price))
	})
}

// =============================================================================
// Test: Money transfers
// =============================================================================

func testMoneyTransfers(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("creation is idempotent by source ref", func(t *testing.T) {
		ok, err := store.CreateMoneyTransfer(ctx, buildTestMoneyTransfer(testPayment, domain.MoneyTransferTypeWithdraw, 100, "payout:1"))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.CreateMoneyTransfer(ctx, buildTestMoneyTransfer(testPayment, domain.MoneyTransferTypeWithdraw, 100, "payout:1"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("claim, submit and finish", func(t *testing.T) {
		_, err := store.CreateMoneyTransfer(ctx, buildTestMoneyTransfer(testMarket, domain.MoneyTransferTypeDeposit, 50, "deposit:1"))
		require.NoError(t, err)

		claimed, err := store.ClaimPendingMoneyTransfers(ctx, []domain.Network{testPayment}, 10)
		require.NoError(t, err)
		require.Len(t, claimed, 1)
		transfer := claimed[0]
		assert.Equal(t, domain.MoneyTransferStatusInProgress, transfer.Status)
		assert.Equal(t, testBidderA, transfer.Extra.Data().Address)

		// claimed rows are not claimed twice
		again, err := store.ClaimPendingMoneyTransfers(ctx, []domain.Network{testPayment}, 10)
		require.NoError(t, err)
		assert.Empty(t, again)

		require.NoError(t, store.SetMoneyTransferTxHash(ctx, transfer.ID, "0xpayout1"))

		block := uint64(5)
		ok, err := store.FinishMoneyTransfer(ctx, transfer.ID, domain.MoneyTransferStatusCompleted, &block, nil)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.FinishMoneyTransfer(ctx, transfer.ID, domain.MoneyTransferStatusFailed, nil, nil)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = store.FinishMoneyTransfer(ctx, transfer.ID, domain.MoneyTransferStatusPending, nil, nil)
		assert.Error(t, err)
	})

	t.Run("complete by tx hash", func(t *testing.T) {
		claimed, err := store.ClaimPendingMoneyTransfers(ctx, []domain.Network{testMarket}, 10)
		require.NoError(t, err)
		require.Len(t, claimed, 1)
		require.NoError(t, store.SetMoneyTransferTxHash(ctx, claimed[0].ID, "0xcredit1"))

		ok, err := store.CompleteMoneyTransferByTxHash(ctx, testMarket, domain.MoneyTransferTypeWithdraw, "0xcredit1", 8)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.CompleteMoneyTransferByTxHash(ctx, testMarket, domain.MoneyTransferTypeDeposit, "0xcredit1", 8)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("stale transfers are released", func(t *testing.T) {
		_, err := store.CreateMoneyTransfer(ctx, buildTestMoneyTransfer(testPayment, domain.MoneyTransferTypeWithdraw, 70, "payout:2"))
		require.NoError(t, err)

		claimed, err := store.ClaimPendingMoneyTransfers(ctx, []domain.Network{testPayment}, 1)
		require.NoError(t, err)
		require.Len(t, claimed, 1)

		stale, err := store.ListStaleMoneyTransfers(ctx, []domain.Network{testPayment}, time.Now().UTC().Add(time.Hour), 10)
		require.NoError(t, err)
		require.Len(t, stale, 1)
		assert.Equal(t, claimed[0].ID, stale[0].ID)

		ok, err := store.ReleaseMoneyTransfer(ctx, claimed[0].ID)
		require.NoError(t, err)
		assert.True(t, ok)

		reclaimed, err := store.ClaimPendingMoneyTransfers(ctx, []domain.Network{testPayment}, 1)
		require.NoError(t, err)
		require.Len(t, reclaimed, 1)
		assert.Nil(t, reclaimed[0].TxHash)
	})
}

// =============================================================================
// Test: Blocks
// =============================================================================

func testBlocks(t *testing.T, store Store) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, n := range []uint64{100, 110, 120} {
		ok, err := store.RecordBlock(ctx, &schema.BlockchainBlock{
			Network:     testMarket,
			BlockNumber: n,
			BlockHash:   fmt.Sprintf("0xblock%d", n),
			Timestamp:   base.Add(time.Duration(n) * 12 * time.Second),
		})
		require.NoError(t, err)
		assert.True(t, ok)
	}

	t.Run("recording twice is a no-op", func(t *testing.T) {
		ok, err := store.RecordBlock(ctx, &schema.BlockchainBlock{
			Network:     testMarket,
			BlockNumber: 110,
			BlockHash:   "0xother",
			Timestamp:   base,
		})
		require.NoError(t, err)
		assert.False(t, ok)

		recorded, err := store.IsBlockRecorded(ctx, testMarket, 110)
		require.NoError(t, err)
		assert.True(t, recorded)

		recorded, err = store.IsBlockRecorded(ctx, testPayment, 110)
		require.NoError(t, err)
		assert.False(t, recorded)
	})

	t.Run("latest block", func(t *testing.T) {
		latest, err := store.GetLatestBlock(ctx, testMarket)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, uint64(120), latest.BlockNumber)

		none, err := store.GetLatestBlock(ctx, testPayment)
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("nearest blocks", func(t *testing.T) {
		prev, next, err := store.GetNearestBlocks(ctx, testMarket, 115)
		require.NoError(t, err)
		require.NotNil(t, prev)
		require.NotNil(t, next)
		assert.Equal(t, uint64(110), prev.BlockNumber)
		assert.Equal(t, uint64(120), next.BlockNumber)

		prev, next, err = store.GetNearestBlocks(ctx, testMarket, 110)
		require.NoError(t, err)
		assert.Equal(t, uint64(110), prev.BlockNumber)
		assert.Equal(t, uint64(120), next.BlockNumber)

		prev, next, err = store.GetNearestBlocks(ctx, testMarket, 130)
		require.NoError(t, err)
		assert.Equal(t, uint64(120), prev.BlockNumber)
		assert.Nil(t, next)

		prev, next, err = store.GetNearestBlocks(ctx, testMarket, 50)
		require.NoError(t, err)
		assert.Nil(t, prev)
		assert.Equal(t, uint64(100), next.BlockNumber)
	})
}

// =============================================================================
// Test: Collections
// =============================================================================

func testCollections(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertCollection(ctx, &schema.Collection{
		Network: testMarket,
		ID:      testCollection,
		Name:    "Genesis",
		Status:  domain.CollectionStatusEnabled,
	}))

	collection, err := store.GetCollection(ctx, testMarket, testCollection)
	require.NoError(t, err)
	require.NotNil(t, collection)
	assert.Equal(t, "Genesis", collection.Name)
	assert.Equal(t, domain.CollectionStatusEnabled, collection.Status)

	require.NoError(t, store.UpsertCollection(ctx, &schema.Collection{
		Network: testMarket,
		ID:      testCollection,
		Name:    "Genesis",
		Status:  domain.CollectionStatusDisabled,
	}))

	collection, err = store.GetCollection(ctx, testMarket, testCollection)
	require.NoError(t, err)
	assert.Equal(t, domain.CollectionStatusDisabled, collection.Status)

	missing, err := store.GetCollection(ctx, testPayment, testCollection)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// RunStoreTests runs all store tests against a store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Offers", testOffers},
		{"StopExpiredAuctions", testStopExpiredAuctions},
		{"BidderTotals", testBidderTotals},
		{"WithAuctionTx", testWithAuctionTx},
		{"Settlement", testSettlement},
		{"MoneyTransfers", testMoneyTransfers},
		{"Blocks", testBlocks},
		{"Collections", testCollections},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
