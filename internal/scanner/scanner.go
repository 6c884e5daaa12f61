package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/block"
	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/reconciler"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// Config holds the configuration for the escrow scanner
type Config struct {
	// StartKeyword is domain.START_BLOCK_CURRENT, domain.START_BLOCK_LATEST or empty when StartHeight is set
	StartKeyword string
	StartHeight  uint64
	// SafetyMargin is subtracted from the finalized head when starting from "current"
	SafetyMargin uint64
	PollInterval time.Duration
}

// Scanner walks the finalized blocks of one network and mirrors escrow events into the store
//
//go:generate mockgen -source=scanner.go -destination=../mocks/scanner.go -package=mocks -mock_names=Scanner=MockScanner,EventHandler=MockEventHandler
type Scanner interface {
	// Run scans blocks until ctx is done or the chain reports the scan position is unreachable
	Run(ctx context.Context) error

	// ScanBlock processes one block. A block already recorded is skipped.
	ScanBlock(ctx context.Context, number uint64) error

	// Close closes the chain connection
	Close()
}

// EventHandler applies one chain event to the store. It must be safe to re-run for the same event.
type EventHandler interface {
	Handle(ctx context.Context, blk *chain.Block, event chain.Event) error
}

type scanner struct {
	config     Config
	client     chain.Client
	heads      block.BlockHeadProvider
	store      store.Store
	handler    EventHandler
	reconciler reconciler.Reconciler
	clock      adapter.Clock
}

// NewScanner creates a scanner for the network of client
func NewScanner(
	config Config,
	client chain.Client,
	heads block.BlockHeadProvider,
	st store.Store,
	handler EventHandler,
	recon reconciler.Reconciler,
	clock adapter.Clock,
) Scanner {
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	return &scanner{
		config:     config,
		client:     client,
		heads:      heads,
		store:      st,
		handler:    handler,
		reconciler: recon,
		clock:      clock,
	}
}

// Run scans blocks until ctx is done or the chain reports the scan position is unreachable
func (s *scanner) Run(ctx context.Context) error {
	network := s.client.Network()

	next, err := s.startBlock(ctx)
	if err != nil {
		return err
	}
	logger.InfoCtx(ctx, "Starting escrow scanner", zap.String("network", string(network)), zap.Uint64("block", next))

	newHeads := make(chan uint64, 1)
	subCtx, cancel := context.WithCancel(ctx)
	subDone := make(chan struct{})
	go func() {
		defer close(subDone)
		if err := s.client.SubscribeNewHeads(subCtx, newHeads); err != nil && !errors.Is(err, context.Canceled) {
			logger.WarnCtx(ctx, "New head subscription ended, polling only",
				zap.String("network", string(network)), zap.Error(err))
		}
	}()
	defer func() {
		cancel()
		<-subDone
	}()

	for {
		if ctx.Err() != nil {
			logger.InfoCtx(ctx, "Escrow scanner stopped", zap.String("network", string(network)), zap.Uint64("block", next))
			return nil
		}

		head, err := s.heads.GetFinalizedBlock(ctx)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to get finalized head", zap.String("network", string(network)), zap.Error(err))
			s.wait(ctx, newHeads)
			continue
		}
		if next > head {
			s.wait(ctx, newHeads)
			continue
		}

		if err := s.ScanBlock(ctx, next); err != nil {
			if errors.Is(err, chain.ErrBlockUnreachable) {
				return fmt.Errorf("block %d of %s is unreachable from head %d: %w", next, network, head, err)
			}
			if ctx.Err() != nil {
				continue
			}
			// the block is retried on the next iteration
			logger.ErrorCtx(ctx, fmt.Errorf("failed to scan block: %w", err),
				zap.String("network", string(network)),
				zap.Uint64("block", next))
			s.wait(ctx, newHeads)
			continue
		}
		next++
	}
}

// startBlock resolves the configured start position
func (s *scanner) startBlock(ctx context.Context) (uint64, error) {
	switch s.config.StartKeyword {
	case "":
		return s.config.StartHeight, nil

	case domain.START_BLOCK_LATEST:
		latest, err := s.store.GetLatestBlock(ctx, s.client.Network())
		if err != nil {
			return 0, fmt.Errorf("failed to get latest recorded block: %w", err)
		}
		if latest != nil {
			logger.InfoCtx(ctx, "Resuming from last recorded block",
				zap.String("network", string(s.client.Network())),
				zap.Uint64("block", latest.BlockNumber))
			return latest.BlockNumber + 1, nil
		}
		return s.currentBlock(ctx)

	case domain.START_BLOCK_CURRENT:
		return s.currentBlock(ctx)

	default:
		return 0, fmt.Errorf("unknown start block %q", s.config.StartKeyword)
	}
}

// currentBlock is the finalized head minus the safety margin
func (s *scanner) currentBlock(ctx context.Context) (uint64, error) {
	head, err := s.heads.GetFinalizedBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get finalized head: %w", err)
	}
	if head < s.config.SafetyMargin {
		return 0, nil
	}
	return head - s.config.SafetyMargin, nil
}

func (s *scanner) wait(ctx context.Context, newHeads <-chan uint64) {
	select {
	case <-ctx.Done():
	case <-newHeads:
		s.heads.Invalidate()
	case <-s.clock.After(s.config.PollInterval):
	}
}

// ScanBlock processes one block. A block already recorded is skipped.
func (s *scanner) ScanBlock(ctx context.Context, number uint64) error {
	network := s.client.Network()

	recorded, err := s.store.IsBlockRecorded(ctx, network, number)
	if err != nil {
		return fmt.Errorf("failed to check block: %w", err)
	}
	if recorded {
		logger.DebugCtx(ctx, "Block already recorded", zap.String("network", string(network)), zap.Uint64("block", number))
		return nil
	}

	blk, err := s.client.Block(ctx, number)
	if err != nil {
		return fmt.Errorf("failed to get block %d: %w", number, err)
	}

	for _, event := range blk.Events {
		if err := s.handler.Handle(ctx, blk, event); err != nil {
			return fmt.Errorf("failed to handle %T in tx %s: %w", event, event.Meta().TxHash, err)
		}
	}

	if _, err := s.store.RecordBlock(ctx, &schema.BlockchainBlock{
		Network:     network,
		BlockNumber: blk.Number,
		BlockHash:   blk.Hash,
		Timestamp:   blk.Timestamp,
	}); err != nil {
		return fmt.Errorf("failed to record block %d: %w", number, err)
	}

	if len(blk.Events) > 0 {
		logger.InfoCtx(ctx, "Block scanned",
			zap.String("network", string(network)),
			zap.Uint64("block", number),
			zap.Int("events", len(blk.Events)))
	}

	if err := s.reconciler.Drain(ctx); err != nil {
		logger.WarnCtx(ctx, "Failed to drain money transfers", zap.Uint64("block", number), zap.Error(err))
	}
	return nil
}

// Close closes the chain connection
func (s *scanner) Close() {
	s.client.Close()
}
