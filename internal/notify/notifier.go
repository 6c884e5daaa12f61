package notify

import (
	"context"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/messaging"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// Notifier emits the auction notifications consumed by the presentation layer.
// Delivery is best effort: failures are logged and never surface to the caller.
//
//go:generate mockgen -source=notifier.go -destination=../mocks/notifier.go -package=mocks -mock_names=Notifier=MockNotifier
type Notifier interface {
	AuctionStarted(ctx context.Context, offer *schema.Offer)
	BidPlaced(ctx context.Context, offer *schema.Offer)
	AuctionStopped(ctx context.Context, offer *schema.Offer)
	AuctionClosed(ctx context.Context, offer *schema.Offer)
	ErrorMessage(ctx context.Context, offer *schema.Offer, message string)
}

type notifier struct {
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewNotifier creates a Notifier publishing through publisher
func NewNotifier(publisher messaging.Publisher, clock adapter.Clock) Notifier {
	return &notifier{publisher: publisher, clock: clock}
}

func (n *notifier) AuctionStarted(ctx context.Context, offer *schema.Offer) {
	n.publish(ctx, domain.EventTypeAuctionStarted, offer, "")
}

func (n *notifier) BidPlaced(ctx context.Context, offer *schema.Offer) {
	n.publish(ctx, domain.EventTypeBidPlaced, offer, "")
}

func (n *notifier) AuctionStopped(ctx context.Context, offer *schema.Offer) {
	n.publish(ctx, domain.EventTypeAuctionStopped, offer, "")
}

func (n *notifier) AuctionClosed(ctx context.Context, offer *schema.Offer) {
	n.publish(ctx, domain.EventTypeAuctionClosed, offer, "")
}

func (n *notifier) ErrorMessage(ctx context.Context, offer *schema.Offer, message string) {
	n.publish(ctx, domain.EventTypeErrorMessage, offer, message)
}

func (n *notifier) publish(ctx context.Context, eventType domain.AuctionEventType, offer *schema.Offer, message string) {
	now := n.clock.Now()
	event := &domain.AuctionEvent{
		ID:        ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Type:      eventType,
		Offer:     offer.Snapshot(),
		Message:   message,
		Timestamp: now,
	}

	if err := n.publisher.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish auction event",
			zap.String("type", string(eventType)),
			zap.String("offer_id", event.Offer.ID),
			zap.Error(err))
	}
}
