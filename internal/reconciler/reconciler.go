package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/store/schema"
)

// Reconciler executes pending money transfers on chain
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Reconciler=MockReconciler
type Reconciler interface {
	// Drain submits every claimable pending transfer and re-checks stale in-progress ones.
	// A call made while another drain is running returns immediately.
	Drain(ctx context.Context) error

	// Start drains on an interval until ctx is done
	Start(ctx context.Context) error
}

// Config holds the configuration of the reconciler
type Config struct {
	Interval  time.Duration
	BatchSize int
	// StaleAfter is how long a transfer may stay in progress before its transaction is looked up
	StaleAfter time.Duration
}

type reconciler struct {
	config   Config
	store    store.Store
	clients  map[domain.Network]chain.Client
	networks []domain.Network
	clock    adapter.Clock
	draining atomic.Bool
}

// NewReconciler creates a reconciler for the networks of the given clients
func NewReconciler(config Config, st store.Store, clients []chain.Client, clock adapter.Clock) Reconciler {
	if config.BatchSize <= 0 {
		config.BatchSize = 20
	}

	byNetwork := make(map[domain.Network]chain.Client, len(clients))
	networks := make([]domain.Network, 0, len(clients))
	for _, client := range clients {
		byNetwork[client.Network()] = client
		networks = append(networks, client.Network())
	}

	return &reconciler{
		config:   config,
		store:    st,
		clients:  byNetwork,
		networks: networks,
		clock:    clock,
	}
}

// Start drains on an interval until ctx is done
func (r *reconciler) Start(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting money transfer reconciler",
		zap.Duration("interval", r.config.Interval),
		zap.Int("batch_size", r.config.BatchSize))

	for {
		if err := r.Drain(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, fmt.Errorf("reconciler pass failed: %w", err))
		}

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Money transfer reconciler stopped")
			return nil
		case <-r.clock.After(r.config.Interval):
		}
	}
}

// Drain submits every claimable pending transfer and re-checks stale in-progress ones
func (r *reconciler) Drain(ctx context.Context) error {
	if !r.draining.CompareAndSwap(false, true) {
		return nil
	}
	defer r.draining.Store(false)

	if err := r.recheckStale(ctx); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to re-check stale transfers: %w", err))
	}

	for {
		transfers, err := r.store.ClaimPendingMoneyTransfers(ctx, r.networks, r.config.BatchSize)
		if err != nil {
			return err
		}
		for i := range transfers {
			r.execute(ctx, &transfers[i])
		}
		if len(transfers) < r.config.BatchSize {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// execute submits a claimed transfer. An unknown outcome leaves it in progress for the stale check.
func (r *reconciler) execute(ctx context.Context, transfer *schema.MoneyTransfer) {
	fields := []zap.Field{
		zap.String("transfer_id", transfer.ID.String()),
		zap.String("network", string(transfer.Network)),
		zap.String("type", string(transfer.Type)),
		zap.String("payee", transfer.Payee()),
		zap.String("amount", transfer.Amount.String()),
	}

	signed, err := r.build(ctx, transfer)
	if err != nil {
		r.finish(ctx, transfer, domain.MoneyTransferStatusFailed, nil, err.Error())
		return
	}

	if err := r.store.SetMoneyTransferTxHash(ctx, transfer.ID, signed.Hash); err != nil {
		// nothing was broadcast, hand it back to the next pass
		logger.ErrorCtx(ctx, fmt.Errorf("failed to record transfer transaction: %w", err), fields...)
		if _, err := r.store.ReleaseMoneyTransfer(ctx, transfer.ID); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to release transfer: %w", err), fields...)
		}
		return
	}

	logger.InfoCtx(ctx, "Submitting money transfer", append(fields, zap.String("tx_hash", signed.Hash))...)

	client := r.clients[transfer.Network]
	result, err := client.Submit(ctx, signed)
	switch {
	case err == nil && result.IsSucceed:
		r.finish(ctx, transfer, domain.MoneyTransferStatusCompleted, &result.BlockNumber, "")

	case err == nil:
		r.finish(ctx, transfer, domain.MoneyTransferStatusFailed, &result.BlockNumber, "transaction reverted")

	case chain.IsDefinitiveFailure(err):
		r.finish(ctx, transfer, domain.MoneyTransferStatusFailed, nil, err.Error())

	default:
		logger.WarnCtx(ctx, "Money transfer outcome unknown, leaving in progress", append(fields, zap.Error(err))...)
	}
}

func (r *reconciler) build(ctx context.Context, transfer *schema.MoneyTransfer) (*chain.SignedTransaction, error) {
	client, ok := r.clients[transfer.Network]
	if !ok {
		return nil, fmt.Errorf("no client for network %s", transfer.Network)
	}

	payee := transfer.Payee()
	if payee == "" {
		return nil, errors.New("transfer has no payee")
	}
	if !transfer.Amount.IsPositive() {
		return nil, fmt.Errorf("invalid transfer amount %s", transfer.Amount)
	}

	switch transfer.Type {
	case domain.MoneyTransferTypeDeposit:
		return client.BuildDeposit(ctx, payee, transfer.Amount)
	case domain.MoneyTransferTypeWithdraw:
		return client.BuildBalanceTransfer(ctx, payee, transfer.Amount)
	default:
		return nil, fmt.Errorf("unsupported transfer type %s", transfer.Type)
	}
}

// recheckStale looks up the transactions of transfers left in progress too long
func (r *reconciler) recheckStale(ctx context.Context) error {
	if r.config.StaleAfter <= 0 {
		return nil
	}

	before := r.clock.Now().Add(-r.config.StaleAfter)
	transfers, err := r.store.ListStaleMoneyTransfers(ctx, r.networks, before, r.config.BatchSize)
	if err != nil {
		return err
	}

	for i := range transfers {
		if err := r.recheck(ctx, &transfers[i]); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to re-check transfer: %w", err),
				zap.String("transfer_id", transfers[i].ID.String()))
		}
	}
	return nil
}

func (r *reconciler) recheck(ctx context.Context, transfer *schema.MoneyTransfer) error {
	if transfer.TxHash == nil {
		_, err := r.store.ReleaseMoneyTransfer(ctx, transfer.ID)
		return err
	}

	client, ok := r.clients[transfer.Network]
	if !ok {
		return fmt.Errorf("no client for network %s", transfer.Network)
	}

	status, err := client.TransactionStatus(ctx, *transfer.TxHash)
	if err != nil {
		return err
	}

	switch {
	case status.State == chain.TxStateNotFound:
		r.finish(ctx, transfer, domain.MoneyTransferStatusFailed, nil, "transaction not found")
	case !status.Finalized:
		// still on its way
	case status.State == chain.TxStateSucceeded:
		r.finish(ctx, transfer, domain.MoneyTransferStatusCompleted, &status.BlockNumber, "")
	default:
		r.finish(ctx, transfer, domain.MoneyTransferStatusFailed, &status.BlockNumber, "transaction failed")
	}
	return nil
}

func (r *reconciler) finish(ctx context.Context, transfer *schema.MoneyTransfer, status domain.MoneyTransferStatus, blockNumber *uint64, reason string) {
	var errorMessage *string
	if reason != "" {
		errorMessage = &reason
	}

	changed, err := r.store.FinishMoneyTransfer(ctx, transfer.ID, status, blockNumber, errorMessage)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to finish transfer: %w", err), zap.String("transfer_id", transfer.ID.String()))
		return
	}
	if !changed {
		return
	}
	transfer.Status = status

	if status == domain.MoneyTransferStatusFailed {
		logger.WarnCtx(ctx, "Money transfer failed",
			zap.String("transfer_id", transfer.ID.String()),
			zap.String("reason", reason))
		logger.CaptureError(ctx, fmt.Errorf("money transfer %s failed: %s", transfer.ID, reason), map[string]string{
			"transfer_id": transfer.ID.String(),
			"network":     string(transfer.Network),
		})
		return
	}

	logger.InfoCtx(ctx, "Money transfer completed", zap.String("transfer_id", transfer.ID.String()))
}
