package domain

import "errors"

var (
	// ErrAssetNotFound is returned by read accessors when an asset is not materialized
	ErrAssetNotFound = errors.New("asset not found")

	// ErrUnknownAsset is returned when a transfer references an asset with no registration row
	ErrUnknownAsset = errors.New("transfer references unknown asset")

	// ErrStaleTransfer is returned when a transfer's origin is not newer than the
	// latest transfer already recorded for the asset
	ErrStaleTransfer = errors.New("transfer origin not newer than latest applied")

	// ErrSubscriptionLost is returned when the live event stream disconnects or
	// reports a gap; the engine re-syncs from the durable cursor
	ErrSubscriptionLost = errors.New("event subscription lost")
)
