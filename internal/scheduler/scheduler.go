package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/auction"
	"github.com/feral-file/ff-auction-engine/internal/bid"
	"github.com/feral-file/ff-auction-engine/internal/block"
	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/notify"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/withdrawal"
)

const (
	stoppingLock    = "stopping"
	withdrawingLock = "withdrawing"
)

// Scheduler drives auctions from running to ended
//
//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler.go -package=mocks -mock_names=Scheduler=MockScheduler
type Scheduler interface {
	// Start runs the stopping and withdrawing loops until ctx is done or Stop is called
	Start(ctx context.Context) error

	// Stop signals the loops to exit and waits for the current passes
	Stop(ctx context.Context) error

	// RunStopping stops every running auction past its deadline
	RunStopping(ctx context.Context) error

	// RunWithdrawing resolves stale minting bids and settles every closing auction
	RunWithdrawing(ctx context.Context) error
}

// Config holds the configuration of the scheduler
type Config struct {
	StoppingInterval    time.Duration
	WithdrawingInterval time.Duration
	// MintingTimeout is how long a bid may stay minting before the chain is asked directly
	MintingTimeout    time.Duration
	LockTTL           time.Duration
	BatchSize         int
	WorkerPoolSize    int
	WorkerQueueSize   int
	CommissionPercent int64
}

// Deps groups the collaborators of the scheduler
type Deps struct {
	Store       store.Store
	Auctions    auction.Service
	Bids        bid.Service
	Withdrawals withdrawal.Service
	Market      chain.Client
	Payment     chain.Client
	Estimator   block.TimestampEstimator
	Notifier    notify.Notifier
	Locker      Locker
	Clock       adapter.Clock
}

type scheduler struct {
	config Config
	deps   Deps

	stopping    atomic.Bool
	withdrawing atomic.Bool
	running     atomic.Bool
	stopChan    chan struct{}
	stoppedCh   chan struct{}
}

// NewScheduler creates the auction lifecycle scheduler
func NewScheduler(config Config, deps Deps) Scheduler {
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 1
	}
	if config.WorkerQueueSize <= 0 {
		config.WorkerQueueSize = config.BatchSize
	}

	return &scheduler{
		config:    config,
		deps:      deps,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Start runs the stopping and withdrawing loops until ctx is done or Stop is called
func (s *scheduler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("scheduler already running")
	}
	defer close(s.stoppedCh)

	logger.InfoCtx(ctx, "Starting auction scheduler",
		zap.Duration("stopping_interval", s.config.StoppingInterval),
		zap.Duration("withdrawing_interval", s.config.WithdrawingInterval),
		zap.Duration("minting_timeout", s.config.MintingTimeout),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.loop(ctx, "stopping", s.config.StoppingInterval, s.RunStopping)
	}()
	go func() {
		defer wg.Done()
		s.loop(ctx, "withdrawing", s.config.WithdrawingInterval, s.RunWithdrawing)
	}()
	wg.Wait()

	logger.InfoCtx(ctx, "Auction scheduler stopped")
	return nil
}

func (s *scheduler) loop(ctx context.Context, name string, interval time.Duration, pass func(context.Context) error) {
	for {
		if err := pass(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, fmt.Errorf("%s pass failed: %w", name, err))
		}

		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-s.deps.Clock.After(interval):
		}
	}
}

// Stop signals the loops to exit and waits for the current passes
func (s *scheduler) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping auction scheduler")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Auction scheduler stop interrupted by context timeout")
		return ctx.Err()
	}
}

// guarded runs pass unless this process or another replica is already running it
func (s *scheduler) guarded(ctx context.Context, flag *atomic.Bool, lockName string, pass func(context.Context) error) error {
	if !flag.CompareAndSwap(false, true) {
		logger.DebugCtx(ctx, "Pass already running in this process", zap.String("pass", lockName))
		return nil
	}
	defer flag.Store(false)

	release, ok, err := s.deps.Locker.Acquire(ctx, lockName, s.config.LockTTL)
	if err != nil {
		return err
	}
	if !ok {
		logger.DebugCtx(ctx, "Pass held by another replica", zap.String("pass", lockName))
		return nil
	}
	defer release()

	return pass(ctx)
}

// RunStopping stops every running auction past its deadline
func (s *scheduler) RunStopping(ctx context.Context) error {
	return s.guarded(ctx, &s.stopping, stoppingLock, func(ctx context.Context) error {
		offers, err := s.deps.Store.StopExpiredAuctions(ctx, s.deps.Clock.Now())
		if err != nil {
			return err
		}

		for i := range offers {
			logger.InfoCtx(ctx, "Auction stopped",
				zap.String("offer_id", offers[i].ID.String()),
				zap.String("price", offers[i].Price.String()))
			s.deps.Notifier.AuctionStopped(ctx, &offers[i])
		}
		return nil
	})
}

// RunWithdrawing resolves stale minting bids and settles every closing auction
func (s *scheduler) RunWithdrawing(ctx context.Context) error {
	return s.guarded(ctx, &s.withdrawing, withdrawingLock, func(ctx context.Context) error {
		if err := s.resolveStaleBids(ctx); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to resolve stale minting bids: %w", err))
		}

		offers, err := s.deps.Store.ListSettleableAuctions(ctx, s.config.BatchSize)
		if err != nil {
			return err
		}
		if len(offers) == 0 {
			return nil
		}

		logger.InfoCtx(ctx, "Settling closing auctions", zap.Int("count", len(offers)))

		pool := pond.NewPool(
			s.config.WorkerPoolSize,
			pond.WithQueueSize(s.config.WorkerQueueSize),
			pond.WithContext(ctx),
		)
		for i := range offers {
			offer := &offers[i]
			pool.Submit(func() {
				if err := s.settleAuction(ctx, offer); err != nil {
					logger.ErrorCtx(ctx, fmt.Errorf("failed to settle auction: %w", err),
						zap.String("offer_id", offer.ID.String()))
					logger.CaptureError(ctx, err, map[string]string{
						"offer_id": offer.ID.String(),
						"action":   "settle_auction",
					})
				}
			})
		}
		pool.StopAndWait()
		return nil
	})
}
