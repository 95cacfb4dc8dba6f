package rest_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrylabs/asset-indexer/internal/api/rest"
	"github.com/registrylabs/asset-indexer/internal/domain"
	"github.com/registrylabs/asset-indexer/internal/logger"
	"github.com/registrylabs/asset-indexer/internal/mocks"
	"github.com/registrylabs/asset-indexer/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

func setupTestRouter(t *testing.T) (*gin.Engine, *mocks.MockStore) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(mockStore))
	return router, mockStore
}

func doRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func testCursor() schema.Cursor {
	return schema.Cursor{
		ID:           schema.CursorRowID,
		LastBlock:    120,
		LastLogIndex: 4,
		UpdatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetAsset(t *testing.T) {
	router, mockStore := setupTestRouter(t)

	asset := &schema.Asset{
		ID:           42,
		Owner:        "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
		Description:  "deed 42",
		RegisteredAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	mockStore.EXPECT().GetAssetWithCursor(gomock.Any(), uint64(42)).Return(asset, testCursor(), nil)

	w := doRequest(router, "/api/v1/assets/42")
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.AssetEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(42), resp.Asset.ID)
	assert.Equal(t, asset.Owner, resp.Asset.Owner)
	assert.Equal(t, "deed 42", resp.Asset.Description)
	assert.Equal(t, uint64(120), resp.Cursor.BlockNumber)
	assert.Equal(t, uint(4), resp.Cursor.LogIndex)
}

func TestGetAssetNotFound(t *testing.T) {
	router, mockStore := setupTestRouter(t)

	mockStore.EXPECT().GetAssetWithCursor(gomock.Any(), uint64(7)).
		Return(nil, schema.Cursor{}, domain.ErrAssetNotFound)

	w := doRequest(router, "/api/v1/assets/7")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAssetInvalidID(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "/api/v1/assets/not-a-number")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAssetTransfers(t *testing.T) {
	router, mockStore := setupTestRouter(t)

	transfers := []schema.Transfer{
		{
			AssetID:     42,
			FromOwner:   "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
			ToOwner:     "0x00000000219ab540356cBB839Cbe05303d7705Fa",
			Timestamp:   time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
			BlockNumber: 110,
			LogIndex:    2,
			TxHash:      "0x02",
		},
	}
	mockStore.EXPECT().GetTransfersWithCursor(gomock.Any(), uint64(42)).Return(transfers, testCursor(), nil)

	w := doRequest(router, "/api/v1/assets/42/transfers")
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.TransferListEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(42), resp.AssetID)
	require.Len(t, resp.Transfers, 1)
	assert.Equal(t, uint64(110), resp.Transfers[0].BlockNumber)
	assert.Equal(t, transfers[0].ToOwner, resp.Transfers[0].ToOwner)
}

func TestGetAssetTransfersUnknownAsset(t *testing.T) {
	router, mockStore := setupTestRouter(t)

	mockStore.EXPECT().GetTransfersWithCursor(gomock.Any(), uint64(99)).
		Return(nil, schema.Cursor{}, domain.ErrAssetNotFound)

	w := doRequest(router, "/api/v1/assets/99/transfers")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOwnerAssets(t *testing.T) {
	router, mockStore := setupTestRouter(t)

	checksummed := "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"
	// The handler normalizes whatever casing the caller used
	mockStore.EXPECT().GetAssetsByOwnerWithCursor(gomock.Any(), checksummed).
		Return([]schema.Asset{{ID: 1, Owner: checksummed}}, testCursor(), nil)

	w := doRequest(router, "/api/v1/owners/0xab5801a7d398351b8be11c439e05c5b3259aec9b/assets")
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.AssetListEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Assets, 1)
	assert.Equal(t, uint64(1), resp.Assets[0].ID)
}

func TestGetOwnerAssetsInvalidAddress(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "/api/v1/owners/zzzz/assets")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAssetsEmptyView(t *testing.T) {
	router, mockStore := setupTestRouter(t)

	mockStore.EXPECT().ListAssetsWithCursor(gomock.Any()).
		Return(nil, schema.Cursor{ID: schema.CursorRowID}, nil)

	w := doRequest(router, "/api/v1/assets")
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.AssetListEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Assets)
	assert.Equal(t, uint64(0), resp.Cursor.BlockNumber)
}

func TestGetCursor(t *testing.T) {
	router, mockStore := setupTestRouter(t)

	mockStore.EXPECT().GetCursor(gomock.Any()).Return(testCursor(), nil)

	w := doRequest(router, "/api/v1/cursor")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cursor rest.CursorResponse `json:"cursor"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(120), resp.Cursor.BlockNumber)
}

func TestListAssetsStoreFailure(t *testing.T) {
	router, mockStore := setupTestRouter(t)

	mockStore.EXPECT().ListAssetsWithCursor(gomock.Any()).
		Return(nil, schema.Cursor{}, errors.New("connection reset"))

	w := doRequest(router, "/api/v1/assets")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
