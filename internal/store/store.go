package store

import (
	"context"

	"github.com/registrylabs/asset-indexer/internal/domain"
	"github.com/registrylabs/asset-indexer/internal/store/schema"
)

// GapInput is the payload for recording a reconciliation gap
type GapInput struct {
	Kind    schema.GapKind
	AssetID *uint64
	Origin  domain.Origin
	Reason  string
	Raw     []byte
}

// OwnerHolding is a rollup row: how many assets an address currently holds
type OwnerHolding struct {
	Owner string `json:"owner"`
	Count int64  `json:"count"`
}

// DailyTransfers is a rollup row: transfer volume for one calendar day
type DailyTransfers struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// Store defines the interface for database operations.
// Mutating operations are each a single transaction covering the domain row and
// the cursor; readers see a fully-applied event or none of it.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// ApplyRegistration materializes an AssetRegistered event.
	// Idempotent on the asset id: a duplicate yields AlreadyApplied and still
	// advances the cursor past the event's dedup key without overwriting fields.
	ApplyRegistration(ctx context.Context, event domain.Event) (domain.ApplyResult, error)

	// ApplyTransfer materializes an OwnershipTransferred event.
	// Rejects with ErrUnknownAsset when no asset row exists and with
	// ErrStaleTransfer when the origin does not advance the asset's latest
	// transfer; duplicates on the dedup key yield AlreadyApplied.
	ApplyTransfer(ctx context.Context, event domain.Event) (domain.ApplyResult, error)

	// RecordGap durably records a skipped event and advances the cursor past its
	// dedup key in the same transaction
	RecordGap(ctx context.Context, gap GapInput) error

	// GetAsset retrieves one asset by its ledger id
	GetAsset(ctx context.Context, id uint64) (*schema.Asset, error)
	// ListAssets retrieves all materialized assets ordered by id
	ListAssets(ctx context.Context) ([]schema.Asset, error)
	// GetTransfers retrieves an asset's transfers ordered by timestamp then local id
	GetTransfers(ctx context.Context, assetID uint64) ([]schema.Transfer, error)
	// GetAssetsByOwner retrieves assets held by an address, compared case-insensitively
	GetAssetsByOwner(ctx context.Context, owner string) ([]schema.Asset, error)
	// GetCursor retrieves the ingestion cursor
	GetCursor(ctx context.Context) (schema.Cursor, error)

	// GetAssetWithCursor retrieves one asset together with the cursor position
	// the read reflects; both come from one snapshot so a concurrent apply
	// cannot skew the pairing
	GetAssetWithCursor(ctx context.Context, id uint64) (*schema.Asset, schema.Cursor, error)
	// ListAssetsWithCursor retrieves all assets with the cursor position the read reflects
	ListAssetsWithCursor(ctx context.Context) ([]schema.Asset, schema.Cursor, error)
	// GetAssetsByOwnerWithCursor retrieves an owner's assets with the cursor
	// position the read reflects
	GetAssetsByOwnerWithCursor(ctx context.Context, owner string) ([]schema.Asset, schema.Cursor, error)
	// GetTransfersWithCursor retrieves an asset's transfers with the cursor
	// position the read reflects; ErrAssetNotFound when the asset is not materialized
	GetTransfersWithCursor(ctx context.Context, assetID uint64) ([]schema.Transfer, schema.Cursor, error)

	// CountAssets returns the total number of materialized assets
	CountAssets(ctx context.Context) (int64, error)
	// CountTransfers returns the total number of materialized transfers
	CountTransfers(ctx context.Context) (int64, error)
	// TopOwners returns the addresses holding the most assets
	TopOwners(ctx context.Context, limit int) ([]OwnerHolding, error)
	// TransfersPerDay returns transfer volume bucketed by calendar day
	TransfersPerDay(ctx context.Context) ([]DailyTransfers, error)
}
