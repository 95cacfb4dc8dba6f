package domain

import (
	"fmt"
	"time"
)

// EventKind identifies the type of registry event
type EventKind string

const (
	// EventKindRegistered is emitted once when an asset is registered on the ledger
	EventKindRegistered EventKind = "asset_registered"
	// EventKindTransferred is emitted on every ownership transfer
	EventKindTransferred EventKind = "ownership_transferred"
)

// Origin is the dedup key of a ledger event occurrence.
// Two deliveries of the same on-chain event always carry the same Origin.
type Origin struct {
	BlockNumber uint64 `json:"block_number"`
	LogIndex    uint   `json:"log_index"`
	TxHash      string `json:"tx_hash"`
}

// After reports whether o is strictly newer than other in ledger order.
// Ordering is (block, logIndex); the tx hash is carried for observability only.
func (o Origin) After(other Origin) bool {
	if o.BlockNumber != other.BlockNumber {
		return o.BlockNumber > other.BlockNumber
	}
	return o.LogIndex > other.LogIndex
}

func (o Origin) String() string {
	return fmt.Sprintf("%d:%d", o.BlockNumber, o.LogIndex)
}

// Event is a normalized registry event.
// This is the standard format flowing from the normalizer into the ingestion
// engine and published to NATS after a successful apply.
type Event struct {
	Kind        EventKind `json:"kind"`
	AssetID     uint64    `json:"asset_id"`
	Owner       string    `json:"owner,omitempty"`       // registrant (registration only)
	FromOwner   string    `json:"from_owner,omitempty"`  // transfer only
	ToOwner     string    `json:"to_owner,omitempty"`    // transfer only
	Description string    `json:"description,omitempty"` // registration only
	Timestamp   time.Time `json:"timestamp"`             // ledger-reported event time
	Origin      Origin    `json:"origin"`
}

// Valid reports whether the event carries the fields its kind requires
func (e *Event) Valid() bool {
	if e.Origin.TxHash == "" {
		return false
	}

	switch e.Kind {
	case EventKindRegistered:
		return e.Owner != ""
	case EventKindTransferred:
		return e.FromOwner != "" && e.ToOwner != ""
	default:
		return false
	}
}

// ApplyStatus is the outcome of applying an event to the store
type ApplyStatus string

const (
	// ApplyStatusApplied means the event mutated the store and advanced the cursor
	ApplyStatusApplied ApplyStatus = "applied"
	// ApplyStatusAlreadyApplied means the dedup key was seen before; the store is unchanged
	ApplyStatusAlreadyApplied ApplyStatus = "already_applied"
	// ApplyStatusRejected means the event violates a store invariant and was not applied
	ApplyStatusRejected ApplyStatus = "rejected"
)

// ApplyResult reports the outcome of a store apply operation.
// Reason is set only for rejected applies.
type ApplyResult struct {
	Status ApplyStatus
	Reason error
}

// Applied is a convenience result for successful applies
func Applied() ApplyResult {
	return ApplyResult{Status: ApplyStatusApplied}
}

// AlreadyApplied is the result for duplicate deliveries; a no-op, not a failure
func AlreadyApplied() ApplyResult {
	return ApplyResult{Status: ApplyStatusAlreadyApplied}
}

// Rejected wraps an invariant violation into an apply result
func Rejected(reason error) ApplyResult {
	return ApplyResult{Status: ApplyStatusRejected, Reason: reason}
}
