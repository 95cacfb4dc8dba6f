package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/registrylabs/asset-indexer/internal/config"
	"github.com/registrylabs/asset-indexer/internal/logger"
	"github.com/registrylabs/asset-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	outFile    = flag.String("out", "", "Write the summary to a file instead of stdout")
)

// summary is the analyzer's output document
type summary struct {
	GeneratedAt     time.Time              `json:"generated_at"`
	CursorBlock     uint64                 `json:"cursor_block"`
	CursorLogIndex  uint                   `json:"cursor_log_index"`
	TotalAssets     int64                  `json:"total_assets"`
	TotalTransfers  int64                  `json:"total_transfers"`
	TopOwners       []store.OwnerHolding   `json:"top_owners"`
	TransfersPerDay []store.DailyTransfers `json:"transfers_per_day"`
}

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAnalyzerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx := context.Background()

	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "analyzer",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	dataStore := store.NewPGStore(db)

	cursor, err := dataStore.GetCursor(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to read cursor", zap.Error(err))
	}

	totalAssets, err := dataStore.CountAssets(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to count assets", zap.Error(err))
	}

	totalTransfers, err := dataStore.CountTransfers(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to count transfers", zap.Error(err))
	}

	topOwners, err := dataStore.TopOwners(ctx, cfg.TopOwners)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to compute top owners", zap.Error(err))
	}

	perDay, err := dataStore.TransfersPerDay(ctx)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to compute transfers per day", zap.Error(err))
	}

	doc := summary{
		GeneratedAt:     time.Now().UTC(),
		CursorBlock:     cursor.LastBlock,
		CursorLogIndex:  cursor.LastLogIndex,
		TotalAssets:     totalAssets,
		TotalTransfers:  totalTransfers,
		TopOwners:       topOwners,
		TransfersPerDay: perDay,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logger.FatalCtx(ctx, "Failed to marshal summary", zap.Error(err))
	}

	if *outFile != "" {
		if err := os.WriteFile(*outFile, data, 0o644); err != nil {
			logger.FatalCtx(ctx, "Failed to write summary file", zap.Error(err), zap.String("path", *outFile))
		}
		logger.InfoCtx(ctx, "Wrote registry summary", zap.String("path", *outFile))
		return
	}

	fmt.Println(string(data))
}
