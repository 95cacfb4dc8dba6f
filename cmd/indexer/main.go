package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/registrylabs/asset-indexer/internal/adapter"
	"github.com/registrylabs/asset-indexer/internal/block"
	"github.com/registrylabs/asset-indexer/internal/config"
	"github.com/registrylabs/asset-indexer/internal/ingest"
	"github.com/registrylabs/asset-indexer/internal/logger"
	"github.com/registrylabs/asset-indexer/internal/messaging"
	"github.com/registrylabs/asset-indexer/internal/providers/jetstream"
	ethsource "github.com/registrylabs/asset-indexer/internal/source/ethereum"
	"github.com/registrylabs/asset-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadIndexerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "indexer",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Asset Registry Indexer")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if cfg.Database.MaxOpenConns > 0 {
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Run migrations and seed the cursor row
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Initialize ethereum client
	ethDialer := adapter.NewEthClientDialer()
	ethClient, err := ethDialer.Dial(ctx, cfg.Ledger.WebSocketURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial ledger RPC", zap.Error(err), zap.String("websocket_url", cfg.Ledger.WebSocketURL))
	}

	// Initialize the event source for the registry contract
	src := ethsource.NewSource(ethsource.Config{
		ContractAddress: cfg.Ledger.ContractAddress,
		MaxRetryElapsed: cfg.Ledger.MaxRetryElapsed,
	}, ethClient)
	defer src.Close()
	logger.InfoCtx(ctx, "Connected to ledger WebSocket",
		zap.String("contract_address", cfg.Ledger.ContractAddress))

	// Head provider with TTL caching for catch-up planning
	headProvider := block.NewHeadProvider(src, block.Config{
		TTL:         cfg.Ledger.BlockHeadTTL,
		StaleWindow: cfg.Ledger.BlockHeadStaleWindow,
	}, clockAdapter)

	// Initialize NATS publisher when a broker is configured
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.NATS.URL != "" {
		natsJS := adapter.NewNatsJetStream()
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, natsJS, jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer publisher.Close()
		logger.InfoCtx(ctx, "Connected to NATS JetStream")
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Create the ingestion engine
	engine := ingest.NewEngine(src, dataStore, headProvider, publisher, clockAdapter, ingest.Config{
		GenesisBlock: cfg.Ledger.StartBlock,
		ChunkSize:    cfg.Ledger.ChunkSize,
		RetryBudget:  cfg.Ledger.RetryBudget,
		RetryDelay:   cfg.Ledger.RetryDelay,
	})

	// Channel for engine errors
	errCh := make(chan error, 1)

	// Start the engine
	go func() {
		if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case <-publisher.CloseChan():
		logger.InfoCtx(ctx, "NATS connection closed unexpectedly")
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "ingest"))
		cancel()
	}

	// Give some time for graceful shutdown
	time.Sleep(time.Second)

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Asset Registry Indexer stopped")
}
