package rest

import (
	"time"

	"github.com/registrylabs/asset-indexer/internal/store/schema"
)

// CursorResponse reports the materialized position of the view
type CursorResponse struct {
	BlockNumber uint64    `json:"block_number"`
	LogIndex    uint      `json:"log_index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssetResponse represents one materialized asset
type AssetResponse struct {
	ID           uint64    `json:"id"`
	Owner        string    `json:"owner"`
	Description  string    `json:"description"`
	RegisteredAt time.Time `json:"registered_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TransferResponse represents one materialized ownership transfer
type TransferResponse struct {
	AssetID     uint64    `json:"asset_id"`
	FromOwner   string    `json:"from_owner"`
	ToOwner     string    `json:"to_owner"`
	Timestamp   time.Time `json:"timestamp"`
	BlockNumber uint64    `json:"block_number"`
	LogIndex    uint      `json:"log_index"`
	TxHash      string    `json:"tx_hash"`
}

// AssetEnvelope wraps a single asset with the view's cursor position
type AssetEnvelope struct {
	Cursor CursorResponse `json:"cursor"`
	Asset  AssetResponse  `json:"asset"`
}

// AssetListEnvelope wraps an asset list with the view's cursor position
type AssetListEnvelope struct {
	Cursor CursorResponse  `json:"cursor"`
	Assets []AssetResponse `json:"assets"`
}

// TransferListEnvelope wraps a transfer list with the view's cursor position
type TransferListEnvelope struct {
	Cursor    CursorResponse     `json:"cursor"`
	AssetID   uint64             `json:"asset_id"`
	Transfers []TransferResponse `json:"transfers"`
}

func toCursorResponse(cursor schema.Cursor) CursorResponse {
	return CursorResponse{
		BlockNumber: cursor.LastBlock,
		LogIndex:    cursor.LastLogIndex,
		UpdatedAt:   cursor.UpdatedAt,
	}
}

func toAssetResponse(asset schema.Asset) AssetResponse {
	return AssetResponse{
		ID:           asset.ID,
		Owner:        asset.Owner,
		Description:  asset.Description,
		RegisteredAt: asset.RegisteredAt,
		UpdatedAt:    asset.UpdatedAt,
	}
}

func toAssetResponses(assets []schema.Asset) []AssetResponse {
	responses := make([]AssetResponse, 0, len(assets))
	for _, asset := range assets {
		responses = append(responses, toAssetResponse(asset))
	}
	return responses
}

func toTransferResponses(transfers []schema.Transfer) []TransferResponse {
	responses := make([]TransferResponse, 0, len(transfers))
	for _, transfer := range transfers {
		responses = append(responses, TransferResponse{
			AssetID:     transfer.AssetID,
			FromOwner:   transfer.FromOwner,
			ToOwner:     transfer.ToOwner,
			Timestamp:   transfer.Timestamp,
			BlockNumber: transfer.BlockNumber,
			LogIndex:    transfer.LogIndex,
			TxHash:      transfer.TxHash,
		})
	}
	return responses
}
