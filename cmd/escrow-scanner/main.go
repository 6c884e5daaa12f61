package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
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
	"github.com/feral-file/ff-auction-engine/internal/reconciler"
	"github.com/feral-file/ff-auction-engine/internal/registry"
	"github.com/feral-file/ff-auction-engine/internal/scanner"
	"github.com/feral-file/ff-auction-engine/internal/store"
	"github.com/feral-file/ff-auction-engine/internal/withdrawal"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

// network is a dialed network with its configuration
type network struct {
	config *config.NetworkConfig
	client chain.Client
	rpc    adapter.EthClient
}

func main() {
	flag.Parse()
	os.Exit(run())
}

// run starts the service and blocks until shutdown, returning the process exit code
func run() int {

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadEscrowScannerConfig(*configFile, *envPath)
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
			"service": "escrow-scanner",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Escrow Scanner")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	ethDialer := adapter.NewEthClientDialer()

	// Connect to every configured network
	networks := make([]network, 0, len(cfg.Networks))
	var market, payment *network
	for i := range cfg.Networks {
		n := &cfg.Networks[i]
		client, rpc, err := dialNetwork(ctx, ethDialer, n)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to network", zap.Error(err), zap.String("network", string(n.Name)))
		}
		defer client.Close()

		networks = append(networks, network{config: n, client: client, rpc: rpc})
	}
	for i := range networks {
		switch networks[i].config.Kind {
		case domain.NetworkKindMarket:
			if market == nil {
				market = &networks[i]
			}
		case domain.NetworkKindPayment:
			if payment == nil {
				payment = &networks[i]
			}
		}
	}
	if market == nil || payment == nil {
		logger.FatalCtx(ctx, "Both a market and a payment network must be configured")
	}

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

	collections, err := registry.NewCollectionRegistry(dataStore, cfg.Registry.CacheSize)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create collection registry", zap.Error(err))
	}

	// Initialize services
	bidService := bid.NewService(bid.Config{MarketNetwork: market.config.Name}, dataStore, payment.client, notifier, clockAdapter)
	withdrawalService := withdrawal.NewService(withdrawal.Config{MarketNetwork: market.config.Name}, dataStore, payment.client)
	auctionService := auction.NewService(auction.Config{}, dataStore, market.client, collections, notifier, clockAdapter)
	defer auctionService.Close()

	estimator, err := block.NewTimestampEstimator(block.EstimatorConfig{
		Network:   market.config.Name,
		BlockTime: market.config.BlockTime,
	}, dataStore, ethereum.NewBlockFetcher(market.rpc, market.config.SafetyMargin))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create timestamp estimator", zap.Error(err))
	}

	// Initialize reconciler over every network
	clients := make([]chain.Client, 0, len(networks))
	for _, n := range networks {
		clients = append(clients, n.client)
	}
	recon := reconciler.NewReconciler(reconciler.Config{
		Interval:   cfg.Reconciler.Interval,
		BatchSize:  cfg.Reconciler.BatchSize,
		StaleAfter: cfg.Reconciler.StaleAfter,
	}, dataStore, clients, clockAdapter)

	// Create a scanner per network
	scanners := make([]scanner.Scanner, 0, len(networks))
	for _, n := range networks {
		keyword, height, err := n.config.ParseStartBlock()
		if err != nil {
			logger.FatalCtx(ctx, "Invalid start block", zap.Error(err))
		}

		var handler scanner.EventHandler
		switch n.config.Kind {
		case domain.NetworkKindMarket:
			handler = scanner.NewMarketHandler(dataStore, n.client, payment.config.Name, auctionService, estimator)
		case domain.NetworkKindPayment:
			handler = scanner.NewPaymentHandler(dataStore, n.client, bidService, withdrawalService)
		default:
			logger.FatalCtx(ctx, "Unsupported network kind", zap.String("kind", string(n.config.Kind)))
		}

		heads := block.NewBlockHeadProvider(
			ethereum.NewBlockFetcher(n.rpc, n.config.SafetyMargin),
			block.Config{
				TTL:         n.config.BlockHeadTTL,
				StaleWindow: n.config.BlockHeadStaleWindow,
			},
			clockAdapter,
		)

		scanners = append(scanners, scanner.NewScanner(scanner.Config{
			StartKeyword: keyword,
			StartHeight:  height,
			SafetyMargin: n.config.SafetyMargin,
			PollInterval: n.config.PollInterval,
		}, n.client, heads, dataStore, handler, recon, clockAdapter))
	}

	errCh := make(chan error, len(scanners)+1)
	var wg sync.WaitGroup
	for i, s := range scanners {
		name := networks[i].config.Name
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("scanner %s: %w", name, err)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := recon.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("reconciler: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	exitCode := awaitShutdown(ctx, sigCh, errCh)
	cancel()

	wg.Wait()

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Escrow scanner stopped")
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
		logger.ErrorCtx(ctx, err, zap.String("component", "escrow-scanner"))
		return 1
	}
}
