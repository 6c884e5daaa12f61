package registry

import (
	"context"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// CollectionRegistry defines the interface for the collection allow-list
//
//go:generate mockgen -source=collections.go -destination=../mocks/collection_registry.go -package=mocks -mock_names=CollectionRegistry=MockCollectionRegistry
type CollectionRegistry interface {
	// IsEnabled checks if a collection may be auctioned on a network
	IsEnabled(ctx context.Context, network domain.Network, collectionID string) (bool, error)

	// SetCollection creates or updates a collection and drops its cached entry
	SetCollection(ctx context.Context, network domain.Network, collectionID, name string, status domain.CollectionStatus) (*schema.Collection, error)

	// Invalidate drops the cached entry of a collection
	Invalidate(network domain.Network, collectionID string)
}

// SeedData represents the structure of the collections seed file.
// Key format: network -> list of collection addresses, all seeded as enabled
type SeedData map[string][]string

type collectionRegistry struct {
	store store.Store
	cache *lru.Cache[string, bool]
}

// NewCollectionRegistry creates a registry over the store collections cached in an LRU of size entries
func NewCollectionRegistry(st store.Store, size int) (CollectionRegistry, error) {
	if size <= 0 {
		size = 1024
	}

	cache, err := lru.New[string, bool](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection cache: %w", err)
	}

	return &collectionRegistry{store: st, cache: cache}, nil
}

func cacheKey(network domain.Network, collectionID string) string {
	return fmt.Sprintf("%s:%s", network, domain.NormalizeAddress(collectionID))
}

// IsEnabled checks if a collection may be auctioned on a network.
// Unknown collections are cached as disabled until invalidated.
func (r *collectionRegistry) IsEnabled(ctx context.Context, network domain.Network, collectionID string) (bool, error) {
	key := cacheKey(network, collectionID)
	if enabled, ok := r.cache.Get(key); ok {
		return enabled, nil
	}

	collection, err := r.store.GetCollection(ctx, network, domain.NormalizeAddress(collectionID))
	if err != nil {
		return false, err
	}

	enabled := collection != nil && collection.Status == domain.CollectionStatusEnabled
	r.cache.Add(key, enabled)
	return enabled, nil
}

// SetCollection creates or updates a collection and drops its cached entry
func (r *collectionRegistry) SetCollection(ctx context.Context, network domain.Network, collectionID, name string, status domain.CollectionStatus) (*schema.Collection, error) {
	if status != domain.CollectionStatusEnabled && status != domain.CollectionStatusDisabled {
		return nil, domain.NewBadRequestError("invalid collection status: %s", status)
	}

	collection := &schema.Collection{
		Network: network,
		ID:      domain.NormalizeAddress(collectionID),
		Name:    name,
		Status:  status,
	}
	if err := r.store.UpsertCollection(ctx, collection); err != nil {
		return nil, err
	}

	r.Invalidate(network, collectionID)
	logger.InfoCtx(ctx, "Collection updated",
		zap.String("network", string(network)),
		zap.String("collection_id", collection.ID),
		zap.String("status", string(status)))

	return collection, nil
}

// Invalidate drops the cached entry of a collection
func (r *collectionRegistry) Invalidate(network domain.Network, collectionID string) {
	r.cache.Remove(cacheKey(network, collectionID))
}

// Seed enables every collection listed in a seed file
func Seed(ctx context.Context, registry CollectionRegistry, filePath string, jsonAdapter adapter.JSON) error {
	data, err := os.ReadFile(filePath) //nolint:gosec,G304 // operator supplied file
	if err != nil {
		return fmt.Errorf("failed to read collections file: %w", err)
	}

	var seed SeedData
	if err := jsonAdapter.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse collections JSON: %w", err)
	}

	for network, addresses := range seed {
		for _, address := range addresses {
			if _, err := registry.SetCollection(ctx, domain.Network(network), address, address, domain.CollectionStatusEnabled); err != nil {
				return fmt.Errorf("failed to seed collection %s on %s: %w", address, network, err)
			}
		}
	}

	return nil
}
