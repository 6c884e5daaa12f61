package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/logger"
)

// headInfo is the cached finalized head
type headInfo struct {
	Number    uint64
	FetchedAt time.Time
}

// BlockHeadProvider provides cached access to the finalized head.
// The scanner asks for it on every iteration; caching keeps the RPC load flat.
//
//go:generate mockgen -source=head.go -destination=../mocks/block_head_provider.go -package=mocks -mock_names=BlockHeadProvider=MockBlockHeadProvider
type BlockHeadProvider interface {
	// GetFinalizedBlock returns the latest final block number, potentially from cache
	GetFinalizedBlock(ctx context.Context) (uint64, error)

	// Invalidate drops the cached head so the next call fetches
	Invalidate()
}

// Config holds configuration for the BlockHeadProvider
type Config struct {
	// TTL is how long to cache the block number
	TTL time.Duration

	// StaleWindow is how long to use stale data if fetching fails
	StaleWindow time.Duration
}

type blockHeadProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu   sync.RWMutex
	head *headInfo
}

// NewBlockHeadProvider creates a new BlockHeadProvider with caching
func NewBlockHeadProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockHeadProvider {
	return &blockHeadProvider{
		fetcher: fetcher,
		config:  config,
		clock:   clock,
	}
}

// GetFinalizedBlock returns the latest final block number, using cache if valid
func (p *blockHeadProvider) GetFinalizedBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()
	if cached != nil && now.Sub(cached.FetchedAt) < p.config.TTL {
		return cached.Number, nil
	}

	number, err := p.fetcher.FetchFinalizedBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.FetchedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Using stale finalized head", zap.Uint64("block_number", cached.Number), zap.Error(err))
			return cached.Number, nil
		}
		return 0, fmt.Errorf("failed to fetch finalized block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	// a finalized head never moves backwards
	if p.head != nil && p.head.Number > number {
		number = p.head.Number
	}
	p.head = &headInfo{Number: number, FetchedAt: now}
	p.mu.Unlock()

	return number, nil
}

// Invalidate drops the cached head
func (p *blockHeadProvider) Invalidate() {
	p.mu.Lock()
	p.head = nil
	p.mu.Unlock()
}
