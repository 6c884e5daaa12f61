package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/api/rest"
	"github.com/feral-file/ff-auction-engine/internal/api/server"
	"github.com/feral-file/ff-auction-engine/internal/auction"
	"github.com/feral-file/ff-auction-engine/internal/bid"
	"github.com/feral-file/ff-auction-engine/internal/block"
	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/config"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
	"github.com/feral-file/ff-auction-engine/internal/notify"
	"github.com/feral-file/ff-auction-engine/internal/providers/ethereum"
	"github.com/feral-file/ff-auction-engine/internal/providers/jetstream"
	"github.com/feral-file/ff-auction-engine/internal/registry"
	"github.com/feral-file/ff-auction-engine/internal/scheduler"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/withdrawal"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run starts the service and blocks until shutdown, returning the process exit code
func run() int {

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAuctionEngineConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "auction-engine",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Auction Engine")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	ethDialer := adapter.NewEthClientDialer()

	// Connect to the market and payment networks
	marketCfg, err := config.FindNetwork(cfg.Networks, domain.NetworkKindMarket)
	if err != nil {
		logger.FatalCtx(ctx, "Market network not configured", zap.Error(err))
	}
	paymentCfg, err := config.FindNetwork(cfg.Networks, domain.NetworkKindPayment)
	if err != nil {
		logger.FatalCtx(ctx, "Payment network not configured", zap.Error(err))
	}

	marketClient, marketRPC, err := dialNetwork(ctx, ethDialer, marketCfg)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to market network", zap.Error(err), zap.String("network", string(marketCfg.Name)))
	}
	defer marketClient.Close()

	paymentClient, _, err := dialNetwork(ctx, ethDialer, paymentCfg)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to payment network", zap.Error(err), zap.String("network", string(paymentCfg.Name)))
	}
	defer paymentClient.Close()

	// Initialize NATS publisher
	natsPublisher, err := jetstream.NewPublisher(
		ctx,
		jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer natsPublisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS JetStream")

	notifier := notify.NewNotifier(natsPublisher, clockAdapter)

	// Load collection registry
	collections, err := registry.NewCollectionRegistry(dataStore, cfg.Registry.CacheSize)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create collection registry", zap.Error(err))
	}
	if cfg.Registry.SeedPath != "" {
		if err := registry.Seed(ctx, collections, cfg.Registry.SeedPath, jsonAdapter); err != nil {
			logger.FatalCtx(ctx, "Failed to seed collection registry", zap.Error(err), zap.String("path", cfg.Registry.SeedPath))
		}
		logger.InfoCtx(ctx, "Seeded collection registry", zap.String("path", cfg.Registry.SeedPath))
	}

	// Initialize services
	bidService := bid.NewService(bid.Config{MarketNetwork: marketCfg.Name}, dataStore, paymentClient, notifier, clockAdapter)
	withdrawalService := withdrawal.NewService(withdrawal.Config{MarketNetwork: marketCfg.Name}, dataStore, paymentClient)
	auctionService := auction.NewService(auction.Config{
		ReturnWorkers:   cfg.Worker.WorkerPoolSize,
		ReturnQueueSize: cfg.Worker.WorkerQueueSize,
	}, dataStore, marketClient, collections, notifier, clockAdapter)
	defer auctionService.Close()

	estimator, err := block.NewTimestampEstimator(block.EstimatorConfig{
		Network:   marketCfg.Name,
		BlockTime: marketCfg.BlockTime,
	}, dataStore, ethereum.NewBlockFetcher(marketRPC, marketCfg.SafetyMargin))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create timestamp estimator", zap.Error(err))
	}

	// Initialize scheduler
	locker := scheduler.NewRedisLocker(adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), "ff-auction-engine")
	auctionScheduler := scheduler.NewScheduler(scheduler.Config{
		StoppingInterval:    cfg.Scheduler.StoppingInterval,
		WithdrawingInterval: cfg.Scheduler.WithdrawingInterval,
		MintingTimeout:      cfg.Scheduler.MintingTimeout,
		LockTTL:             cfg.Scheduler.LockTTL,
		BatchSize:           cfg.Scheduler.BatchSize,
		WorkerPoolSize:      cfg.Scheduler.Worker.WorkerPoolSize,
		WorkerQueueSize:     cfg.Scheduler.Worker.WorkerQueueSize,
		CommissionPercent:   cfg.Auction.CommissionPercent,
	}, scheduler.Deps{
		Store:       dataStore,
		Auctions:    auctionService,
		Bids:        bidService,
		Withdrawals: withdrawalService,
		Market:      marketClient,
		Payment:     paymentClient,
		Estimator:   estimator,
		Notifier:    notifier,
		Locker:      locker,
		Clock:       clockAdapter,
	})

	// Create server
	srv := server.New(server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, rest.NewHandler(auctionService, bidService, withdrawalService))

	errCh := make(chan error, 2)
	go func() {
		if err := auctionScheduler.Start(ctx); err != nil {
			errCh <- fmt.Errorf("scheduler: %w", err)
		}
	}()
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- fmt.Errorf("server: %w", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	exitCode := awaitShutdown(ctx, sigCh, errCh)
	cancel()

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}
	if err := auctionScheduler.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "scheduler"))
	}

	logger.Info("Auction engine stopped")
	return exitCode
}

// dialNetwork connects to the RPC and optional WebSocket endpoints of a network.
// The returned RPC connection is owned by the chain client.
func dialNetwork(ctx context.Context, dialer adapter.EthClientDialer, n *config.NetworkConfig) (chain.Client, adapter.EthClient, error) {
	rpc, err := dialer.Dial(ctx, n.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial %s RPC: %w", n.Name, err)
	}

	var heads adapter.EthClient
	if n.WebSocketURL != "" {
		heads, err = dialer.Dial(ctx, n.WebSocketURL)
		if err != nil {
			rpc.Close()
			return nil, nil, fmt.Errorf("failed to dial %s WebSocket: %w", n.Name, err)
		}
	}

	client, err := ethereum.NewClient(ethereum.Config{
		Network:          n.Name,
		ChainID:          n.ChainID,
		EscrowAddress:    n.EscrowAddress,
		EscrowPrivateKey: n.EscrowPrivateKey,
		MarketContract:   n.MarketContract,
		SafetyMargin:     n.SafetyMargin,
		FinalityTimeout:  n.FinalityTimeout,
		PollInterval:     n.PollInterval,
		RPCRateLimit:     n.RPCRateLimit,
		RPCBurst:         n.RPCBurst,
	}, rpc, heads)
	if err != nil {
		rpc.Close()
		if heads != nil {
			heads.Close()
		}
		return nil, nil, err
	}

	logger.InfoCtx(ctx, "Connected to network",
		zap.String("network", string(n.Name)),
		zap.String("kind", string(n.Kind)),
		zap.Bool("websocket", heads != nil),
	)
	return client, rpc, nil
}

// awaitShutdown blocks until a signal or a component failure and returns the exit code for it
func awaitShutdown(ctx context.Context, sigCh <-chan os.Signal, errCh <-chan error) int {
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		return 0
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "auction-engine"))
		return 1
	}
}
