package messaging

import (
	"context"

	"github.com/registrylabs/asset-indexer/internal/domain"
)

// Publisher defines the interface for publishing applied registry events to a
// message broker so downstream consumers can react without polling the store
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes an applied registry event
	PublishEvent(ctx context.Context, event *domain.Event) error
	// Close closes the connection
	Close()
	// CloseChan returns a channel that is closed when the publisher is closed
	CloseChan() <-chan struct{}
}

// NopPublisher discards events; used when no broker is configured
type NopPublisher struct{}

func (NopPublisher) PublishEvent(ctx context.Context, event *domain.Event) error { return nil }
func (NopPublisher) Close()                                                      {}
func (NopPublisher) CloseChan() <-chan struct{}                                  { return nil }
