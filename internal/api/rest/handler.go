package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/registrylabs/asset-indexer/internal/domain"
	"github.com/registrylabs/asset-indexer/internal/store"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListAssets retrieves all materialized assets
	// GET /api/v1/assets
	ListAssets(c *gin.Context)

	// GetAsset retrieves a single asset by its ledger id
	// GET /api/v1/assets/:id
	GetAsset(c *gin.Context)

	// GetAssetTransfers retrieves an asset's transfer history in ledger order
	// GET /api/v1/assets/:id/transfers
	GetAssetTransfers(c *gin.Context)

	// GetOwnerAssets retrieves the assets currently held by an address
	// GET /api/v1/owners/:address/assets
	GetOwnerAssets(c *gin.Context)

	// GetCursor reports how far the materialized view has been applied
	// GET /api/v1/cursor
	GetCursor(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store store.Store
}

// NewHandler creates a new REST API handler over the materialized store
func NewHandler(st store.Store) Handler {
	return &handler{store: st}
}

// ListAssets retrieves all materialized assets
func (h *handler) ListAssets(c *gin.Context) {
	assets, cursor, err := h.store.ListAssetsWithCursor(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list assets")
		return
	}

	c.JSON(http.StatusOK, AssetListEnvelope{
		Cursor: toCursorResponse(cursor),
		Assets: toAssetResponses(assets),
	})
}

// GetAsset retrieves a single asset by its ledger id
func (h *handler) GetAsset(c *gin.Context) {
	id, ok := parseAssetID(c)
	if !ok {
		return
	}

	asset, cursor, err := h.store.GetAssetWithCursor(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			respondNotFound(c, "Asset not found")
			return
		}
		respondInternalError(c, err, "Failed to get asset")
		return
	}

	c.JSON(http.StatusOK, AssetEnvelope{
		Cursor: toCursorResponse(cursor),
		Asset:  toAssetResponse(*asset),
	})
}

// GetAssetTransfers retrieves an asset's transfer history in ledger order.
// The asset must exist; an empty history for a known asset is a valid answer.
func (h *handler) GetAssetTransfers(c *gin.Context) {
	id, ok := parseAssetID(c)
	if !ok {
		return
	}

	transfers, cursor, err := h.store.GetTransfersWithCursor(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			respondNotFound(c, "Asset not found")
			return
		}
		respondInternalError(c, err, "Failed to get transfers")
		return
	}

	c.JSON(http.StatusOK, TransferListEnvelope{
		Cursor:    toCursorResponse(cursor),
		AssetID:   id,
		Transfers: toTransferResponses(transfers),
	})
}

// GetOwnerAssets retrieves the assets currently held by an address
func (h *handler) GetOwnerAssets(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		respondBadRequest(c, "Invalid owner address", address)
		return
	}

	assets, cursor, err := h.store.GetAssetsByOwnerWithCursor(c.Request.Context(), common.HexToAddress(address).Hex())
	if err != nil {
		respondInternalError(c, err, "Failed to get assets by owner")
		return
	}

	c.JSON(http.StatusOK, AssetListEnvelope{
		Cursor: toCursorResponse(cursor),
		Assets: toAssetResponses(assets),
	})
}

// GetCursor reports how far the materialized view has been applied
func (h *handler) GetCursor(c *gin.Context) {
	cursor, err := h.store.GetCursor(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to read cursor")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cursor": toCursorResponse(cursor)})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// parseAssetID extracts and validates the :id path parameter; on failure it has
// already written the 400 response
func parseAssetID(c *gin.Context) (uint64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid asset id", raw)
		return 0, false
	}
	return id, true
}
