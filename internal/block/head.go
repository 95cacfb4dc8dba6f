package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/registrylabs/asset-indexer/internal/adapter"
	"github.com/registrylabs/asset-indexer/internal/logger"
	"github.com/registrylabs/asset-indexer/internal/source"
)

// headInfo is one cached head observation
type headInfo struct {
	Number     uint64
	ObservedAt time.Time
}

// HeadProvider provides cached access to the chain head. The catch-up
// coordinator re-reads the head after every chunk; caching keeps that from
// turning into one RPC call per chunk.
//
//go:generate mockgen -source=head.go -destination=../mocks/head_provider.go -package=mocks -mock_names=HeadProvider=MockHeadProvider
type HeadProvider interface {
	// ChainHead returns the latest block number, potentially from cache
	ChainHead(ctx context.Context) (uint64, error)
}

// Config holds configuration for the HeadProvider
type Config struct {
	// TTL is how long a head observation stays fresh
	TTL time.Duration

	// StaleWindow is how long a stale observation may still serve as a fallback
	// when fetching fails; beyond it the error is returned
	StaleWindow time.Duration
}

type headProvider struct {
	src    source.Source
	config Config
	clock  adapter.Clock

	mu   sync.RWMutex
	head *headInfo
}

// NewHeadProvider creates a HeadProvider with TTL-based caching over a source
func NewHeadProvider(src source.Source, config Config, clock adapter.Clock) HeadProvider {
	return &headProvider{
		src:    src,
		config: config,
		clock:  clock,
	}
}

// ChainHead returns the latest block number, using cache if valid
func (p *headProvider) ChainHead(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.ObservedAt) < p.config.TTL {
		return cached.Number, nil
	}

	head, err := p.src.ChainHead(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.ObservedAt) < p.config.StaleWindow {
			logger.DebugCtx(ctx, "Using stale chain head", zap.Uint64("head", cached.Number))
			return cached.Number, nil
		}
		return 0, fmt.Errorf("failed to fetch chain head and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.head = &headInfo{Number: head, ObservedAt: now}
	p.mu.Unlock()

	return head, nil
}
