package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/block"
	"github.com/feral-file/ff-auction-engine/internal/logger"
)

// ethereumBlockFetcher implements block.BlockFetcher for Ethereum
type ethereumBlockFetcher struct {
	client       adapter.EthClient
	safetyMargin uint64
}

// NewBlockFetcher creates a fetcher reading the finalized head.
// Nodes without the finalized tag fall back to the latest head minus the safety margin.
func NewBlockFetcher(client adapter.EthClient, safetyMargin uint64) block.BlockFetcher {
	return &ethereumBlockFetcher{client: client, safetyMargin: safetyMargin}
}

// FetchFinalizedBlock fetches the latest final block number
func (f *ethereumBlockFetcher) FetchFinalizedBlock(ctx context.Context) (uint64, error) {
	header, err := f.client.HeaderByNumber(ctx, big.NewInt(int64(rpc.FinalizedBlockNumber)))
	if err == nil && header != nil {
		return header.Number.Uint64(), nil
	}

	logger.DebugCtx(ctx, "Finalized tag unavailable, using latest head minus safety margin", zap.Error(err))

	header, err = f.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}

	latest := header.Number.Uint64()
	if latest < f.safetyMargin {
		return 0, nil
	}
	return latest - f.safetyMargin, nil
}

// FetchBlockTimestamp fetches the timestamp for a given block number
func (f *ethereumBlockFetcher) FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	header, err := f.client.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get block %d: %w", blockNumber, err)
	}
	return time.Unix(int64(header.Time), 0).UTC(), nil //nolint:gosec,G115
}
