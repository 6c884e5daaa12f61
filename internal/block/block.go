package block

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// BlockFetcher is the interface for fetching block information from the blockchain
//
//go:generate mockgen -source=block.go -destination=../mocks/block.go -package=mocks -mock_names=BlockFetcher=MockBlockFetcher,TimestampEstimator=MockTimestampEstimator,AnchorStore=MockAnchorStore
type BlockFetcher interface {
	// FetchFinalizedBlock fetches the latest final block number
	FetchFinalizedBlock(ctx context.Context) (uint64, error)

	// FetchBlockTimestamp fetches the timestamp for a given block number
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// AnchorStore reads the processed blocks used as time anchors
type AnchorStore interface {
	GetNearestBlocks(ctx context.Context, network domain.Network, blockNumber uint64) (*schema.BlockchainBlock, *schema.BlockchainBlock, error)
}

// TimestampEstimator estimates the time of a block from the processed blocks around it
type TimestampEstimator interface {
	// EstimateTimestamp returns the time of a block.
	// An exact anchor is returned as is, otherwise the time is interpolated between the
	// nearest anchors, extrapolated from a single one, or fetched from the chain.
	EstimateTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// EstimatorConfig holds configuration for the TimestampEstimator
type EstimatorConfig struct {
	Network domain.Network

	// BlockTime is the average block interval used to extrapolate from a single anchor.
	// Zero disables extrapolation.
	BlockTime time.Duration

	// CacheSize bounds the number of fetched timestamps kept in memory
	CacheSize int
}

type timestampEstimator struct {
	config  EstimatorConfig
	store   AnchorStore
	fetcher BlockFetcher
	fetched *lru.Cache[uint64, time.Time]
}

// NewTimestampEstimator creates a new TimestampEstimator
func NewTimestampEstimator(config EstimatorConfig, store AnchorStore, fetcher BlockFetcher) (TimestampEstimator, error) {
	if config.CacheSize <= 0 {
		config.CacheSize = 1024
	}

	cache, err := lru.New[uint64, time.Time](config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create timestamp cache: %w", err)
	}

	return &timestampEstimator{
		config:  config,
		store:   store,
		fetcher: fetcher,
		fetched: cache,
	}, nil
}

// EstimateTimestamp returns the time of a block
func (e *timestampEstimator) EstimateTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	prev, next, err := e.store.GetNearestBlocks(ctx, e.config.Network, blockNumber)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read block anchors, fetching from chain",
			zap.String("network", string(e.config.Network)),
			zap.Uint64("block_number", blockNumber),
			zap.Error(err))
		return e.fetch(ctx, blockNumber)
	}

	switch {
	case prev != nil && prev.BlockNumber == blockNumber:
		return prev.Timestamp.UTC(), nil

	case prev != nil && next != nil:
		return interpolate(prev, next, blockNumber), nil

	case prev != nil && e.config.BlockTime > 0:
		steps := time.Duration(blockNumber - prev.BlockNumber) //nolint:gosec,G115
		return prev.Timestamp.Add(steps * e.config.BlockTime).UTC(), nil

	case next != nil && e.config.BlockTime > 0:
		steps := time.Duration(next.BlockNumber - blockNumber) //nolint:gosec,G115
		return next.Timestamp.Add(-steps * e.config.BlockTime).UTC(), nil
	}

	return e.fetch(ctx, blockNumber)
}

func (e *timestampEstimator) fetch(ctx context.Context, blockNumber uint64) (time.Time, error) {
	if timestamp, ok := e.fetched.Get(blockNumber); ok {
		return timestamp, nil
	}

	timestamp, err := e.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch timestamp of block %d: %w", blockNumber, err)
	}

	timestamp = timestamp.UTC()
	e.fetched.Add(blockNumber, timestamp)
	return timestamp, nil
}

// interpolate places a block linearly between two anchors, prev.BlockNumber < n < next.BlockNumber
func interpolate(prev, next *schema.BlockchainBlock, n uint64) time.Time {
	span := next.Timestamp.Sub(prev.Timestamp)
	ratio := float64(n-prev.BlockNumber) / float64(next.BlockNumber-prev.BlockNumber)
	return prev.Timestamp.Add(time.Duration(float64(span) * ratio)).UTC()
}
