package source

import (
	"context"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/registrylabs/asset-indexer/internal/domain"
)

// RawEvent is one ledger log as delivered by the adapter, before normalization
type RawEvent struct {
	Log types.Log
}

// Origin returns the event's dedup key
func (e RawEvent) Origin() domain.Origin {
	return domain.Origin{
		BlockNumber: e.Log.BlockNumber,
		LogIndex:    e.Log.Index,
		TxHash:      e.Log.TxHash.Hex(),
	}
}

// Handler is called for each raw event delivered by a live subscription
type Handler func(event RawEvent) error

// Source is the boundary over the ledger: historical range fetches, live
// subscription, and the chain head used for catch-up planning. Delivery is
// at-least-once; ordering within a fetch is (block, logIndex).
//
//go:generate mockgen -source=source.go -destination=../mocks/source.go -package=mocks -mock_names=Source=MockSource
type Source interface {
	// ChainHead returns the adapter's notion of the current chain head
	ChainHead(ctx context.Context) (uint64, error)

	// FetchRange returns all registry events in [fromBlock, toBlock], ordered by
	// (block, logIndex). Transient provider errors are retried internally.
	FetchRange(ctx context.Context, fromBlock, toBlock uint64) ([]RawEvent, error)

	// Subscribe delivers live registry events from fromBlock until ctx is
	// canceled or the stream breaks; a broken stream is an error, the caller
	// re-syncs from its durable cursor.
	Subscribe(ctx context.Context, fromBlock uint64, handler Handler) error

	// Close closes the underlying connection
	Close()
}
