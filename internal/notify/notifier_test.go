package notify_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/mocks"
	"github.com/feral-file/ff-auction-engine/internal/notify"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testOffer() *schema.Offer {
	status := domain.AuctionStatusActive
	return &schema.Offer{
		ID:            uuid.New(),
		Network:       "market",
		CollectionID:  "0x1111111111111111111111111111111111111111",
		TokenID:       "7",
		SellerAddress: "0x2222222222222222222222222222222222222222",
		Type:          domain.OfferTypeAuction,
		Status:        domain.OfferStatusActive,
		Price:         decimal.NewFromInt(120),
		StartPrice:    decimal.NewFromInt(100),
		PriceStep:     decimal.NewFromInt(10),
		AuctionStatus: &status,
	}
}

func TestNotifier_PublishesTypedEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	n := notify.NewNotifier(publisher, clock)

	ctx := context.Background()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	offer := testOffer()

	clock.EXPECT().Now().Return(now).AnyTimes()

	var events []*domain.AuctionEvent
	publisher.EXPECT().PublishEvent(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, event *domain.AuctionEvent) error {
			events = append(events, event)
			return nil
		}).Times(5)

	n.AuctionStarted(ctx, offer)
	n.BidPlaced(ctx, offer)
	n.AuctionStopped(ctx, offer)
	n.AuctionClosed(ctx, offer)
	n.ErrorMessage(ctx, offer, "transfer reverted")

	require.Len(t, events, 5)
	assert.Equal(t, domain.EventTypeAuctionStarted, events[0].Type)
	assert.Equal(t, domain.EventTypeBidPlaced, events[1].Type)
	assert.Equal(t, domain.EventTypeAuctionStopped, events[2].Type)
	assert.Equal(t, domain.EventTypeAuctionClosed, events[3].Type)
	assert.Equal(t, domain.EventTypeErrorMessage, events[4].Type)
	assert.Equal(t, "transfer reverted", events[4].Message)

	for _, event := range events {
		id, err := ulid.Parse(event.ID)
		require.NoError(t, err)
		assert.Equal(t, ulid.Timestamp(now), id.Time())
		assert.Equal(t, now, event.Timestamp)
		assert.Equal(t, offer.ID.String(), event.Offer.ID)
		assert.True(t, decimal.NewFromInt(120).Equal(event.Offer.Price))
	}
	assert.NotEqual(t, events[0].ID, events[1].ID)
}

func TestNotifier_PublishFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	n := notify.NewNotifier(publisher, clock)

	clock.EXPECT().Now().Return(time.Now())
	publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(errors.New("nats: no responders"))

	assert.NotPanics(t, func() {
		n.BidPlaced(context.Background(), testOffer())
	})
}
