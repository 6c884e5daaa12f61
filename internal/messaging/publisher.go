package messaging

import (
	"context"

	"github.com/feral-file/ff-auction-engine/internal/domain"
)

// Publisher defines the interface for publishing auction notifications to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes an auction event to the message broker
	PublishEvent(ctx context.Context, event *domain.AuctionEvent) error
	// Close closes the connection
	Close()
}
