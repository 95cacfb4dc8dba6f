package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/registrylabs/asset-indexer/internal/adapter"
	"github.com/registrylabs/asset-indexer/internal/domain"
	"github.com/registrylabs/asset-indexer/internal/logger"
	"github.com/registrylabs/asset-indexer/internal/messaging"
	"github.com/registrylabs/asset-indexer/internal/normalizer"
	"github.com/registrylabs/asset-indexer/internal/source"
	"github.com/registrylabs/asset-indexer/internal/store"
	"github.com/registrylabs/asset-indexer/internal/store/schema"
)

// State identifies the engine's position in its lifecycle
type State string

const (
	// StateBootstrapping: reading the durable cursor, nothing processed yet
	StateBootstrapping State = "bootstrapping"
	// StateCatchingUp: replaying historical ranges from the cursor to the head
	StateCatchingUp State = "catching_up"
	// StateLive: consuming the live subscription stream
	StateLive State = "live"
	// StateDegraded: the last event handled was recorded as a reconciliation gap;
	// ingestion of independent events continues
	StateDegraded State = "degraded"
)

// Config holds the configuration for the ingestion engine
type Config struct {
	// GenesisBlock is where ingestion starts when no cursor exists yet
	GenesisBlock uint64
	// ChunkSize bounds the block span of a single historical fetch
	ChunkSize uint64
	// RetryBudget is how many times a transfer rejected for an unknown asset is
	// retried before it is recorded as a referential gap
	RetryBudget int
	// RetryDelay is the pause between referential retries
	RetryDelay time.Duration
}

// Engine is the reconciliation core: it consumes normalized events in
// (block, logIndex) order and applies them to the store exactly once.
// A single Engine processes one event at a time; transfer application must
// observe a causally-prior asset state, so event application never runs
// in parallel.
type Engine struct {
	src       source.Source
	store     store.Store
	head      HeadProvider
	publisher messaging.Publisher
	clock     adapter.Clock
	cfg       Config

	mu    sync.RWMutex
	state State
	phase State // CatchingUp or Live; what state returns to after Degraded
}

// HeadProvider is the engine's view of the chain head
type HeadProvider interface {
	ChainHead(ctx context.Context) (uint64, error)
}

// NewEngine creates an ingestion engine
func NewEngine(
	src source.Source,
	st store.Store,
	head HeadProvider,
	pub messaging.Publisher,
	clock adapter.Clock,
	cfg Config,
) *Engine {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 2000
	}
	if cfg.RetryBudget == 0 {
		cfg.RetryBudget = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	return &Engine{
		src:       src,
		store:     st,
		head:      head,
		publisher: pub,
		clock:     clock,
		cfg:       cfg,
		state:     StateBootstrapping,
		phase:     StateBootstrapping,
	}
}

// State returns the engine's current lifecycle state
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s
	if s != StateDegraded {
		e.phase = s
	}
}

func (e *Engine) recover() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateDegraded {
		e.state = e.phase
	}
}

// Run drives the engine: catch up from the durable cursor, then consume the
// live stream. A lost subscription re-enters catch-up from the cursor rather
// than trusting the stream's continuity; a store failure is fatal, leaving the
// cursor at the last durably applied event so a restart resumes safely.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if err := e.catchUp(ctx); err != nil {
			return err
		}

		err := e.live(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !errors.Is(err, domain.ErrSubscriptionLost) {
			return err
		}

		logger.WarnCtx(ctx, "Subscription lost, re-syncing from cursor", zap.Error(err))
	}
}

// live consumes the subscription stream from just past the durable cursor
func (e *Engine) live(ctx context.Context) error {
	cursor, err := e.store.GetCursor(ctx)
	if err != nil {
		return fmt.Errorf("failed to read cursor: %w", err)
	}

	e.setState(StateLive)
	logger.InfoCtx(ctx, "Entering live ingestion",
		zap.Uint64("cursor_block", cursor.LastBlock),
		zap.Uint("cursor_log_index", cursor.LastLogIndex))

	return e.src.Subscribe(ctx, cursor.LastBlock+1, func(raw source.RawEvent) error {
		return e.processRaw(ctx, raw)
	})
}

// processRaw normalizes and applies one raw event. Only a store failure
// returns an error; everything else is handled and ingestion continues.
func (e *Engine) processRaw(ctx context.Context, raw source.RawEvent) error {
	event, err := normalizer.Normalize(raw)
	if err != nil {
		var decodeErr *normalizer.DecodeError
		if errors.As(err, &decodeErr) {
			return e.recordGap(ctx, store.GapInput{
				Kind:   schema.GapKindDecode,
				Origin: decodeErr.Origin,
				Reason: decodeErr.Error(),
				Raw:    marshalRaw(raw),
			})
		}
		return err
	}

	switch event.Kind {
	case domain.EventKindRegistered:
		return e.applyRegistration(ctx, event)
	case domain.EventKindTransferred:
		return e.applyTransfer(ctx, event, raw)
	default:
		return e.recordGap(ctx, store.GapInput{
			Kind:   schema.GapKindDecode,
			Origin: event.Origin,
			Reason: fmt.Sprintf("unknown event kind %q", event.Kind),
			Raw:    marshalRaw(raw),
		})
	}
}

func (e *Engine) applyRegistration(ctx context.Context, event domain.Event) error {
	result, err := e.store.ApplyRegistration(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to apply registration %s: %w", event.Origin, err)
	}

	switch result.Status {
	case domain.ApplyStatusApplied:
		e.recover()
		logger.InfoCtx(ctx, "Asset registered",
			zap.Uint64("asset_id", event.AssetID),
			zap.String("owner", event.Owner),
			zap.String("origin", event.Origin.String()))
		e.publish(ctx, &event)
	case domain.ApplyStatusAlreadyApplied:
		logger.DebugCtx(ctx, "Duplicate registration skipped",
			zap.Uint64("asset_id", event.AssetID),
			zap.String("origin", event.Origin.String()))
	}

	return nil
}

func (e *Engine) applyTransfer(ctx context.Context, event domain.Event, raw source.RawEvent) error {
	for attempt := 0; ; attempt++ {
		result, err := e.store.ApplyTransfer(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to apply transfer %s: %w", event.Origin, err)
		}

		switch result.Status {
		case domain.ApplyStatusApplied:
			e.recover()
			logger.InfoCtx(ctx, "Ownership transferred",
				zap.Uint64("asset_id", event.AssetID),
				zap.String("from", event.FromOwner),
				zap.String("to", event.ToOwner),
				zap.String("origin", event.Origin.String()))
			e.publish(ctx, &event)
			return nil

		case domain.ApplyStatusAlreadyApplied:
			logger.DebugCtx(ctx, "Duplicate transfer skipped",
				zap.Uint64("asset_id", event.AssetID),
				zap.String("origin", event.Origin.String()))
			return nil

		case domain.ApplyStatusRejected:
			if errors.Is(result.Reason, domain.ErrUnknownAsset) && attempt < e.cfg.RetryBudget {
				// The registration may still be pending later in the same batch
				logger.DebugCtx(ctx, "Transfer references unknown asset, retrying",
					zap.Uint64("asset_id", event.AssetID),
					zap.Int("attempt", attempt+1))
				e.clock.Sleep(e.cfg.RetryDelay)
				continue
			}

			kind := schema.GapKindOrdering
			if errors.Is(result.Reason, domain.ErrUnknownAsset) {
				kind = schema.GapKindReferential
			}
			assetID := event.AssetID
			return e.recordGap(ctx, store.GapInput{
				Kind:    kind,
				AssetID: &assetID,
				Origin:  event.Origin,
				Reason:  result.Reason.Error(),
				Raw:     marshalRaw(raw),
			})
		}
	}
}

// recordGap durably records a skipped event; the cursor advances past the
// dedup key so the event is not retried forever, and the engine reports
// Degraded until the next successful apply
func (e *Engine) recordGap(ctx context.Context, gap store.GapInput) error {
	if err := e.store.RecordGap(ctx, gap); err != nil {
		return fmt.Errorf("failed to record reconciliation gap at %s: %w", gap.Origin, err)
	}

	e.setState(StateDegraded)
	logger.WarnCtx(ctx, "Event skipped, materialized view is knowingly incomplete",
		zap.String("kind", string(gap.Kind)),
		zap.String("origin", gap.Origin.String()),
		zap.String("reason", gap.Reason))

	return nil
}

// publish notifies downstream consumers; best effort, never affects correctness
func (e *Engine) publish(ctx context.Context, event *domain.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.PublishEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to publish applied event"),
			zap.String("origin", event.Origin.String()))
	}
}

func marshalRaw(raw source.RawEvent) []byte {
	data, err := json.Marshal(raw.Log)
	if err != nil {
		return nil
	}
	return data
}
