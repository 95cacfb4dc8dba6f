package block_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrylabs/asset-indexer/internal/block"
	"github.com/registrylabs/asset-indexer/internal/logger"
	"github.com/registrylabs/asset-indexer/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func TestHeadProvider_CachesWithinTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := mocks.NewMockSource(ctrl)
	clock := mocks.NewMockClock(ctrl)
	provider := block.NewHeadProvider(src, block.Config{TTL: 12 * time.Second, StaleWindow: time.Minute}, clock)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	gomock.InOrder(
		clock.EXPECT().Now().Return(base),
		src.EXPECT().ChainHead(gomock.Any()).Return(uint64(100), nil),
		clock.EXPECT().Now().Return(base.Add(5*time.Second)),
		clock.EXPECT().Now().Return(base.Add(15*time.Second)),
		src.EXPECT().ChainHead(gomock.Any()).Return(uint64(101), nil),
	)

	head, err := provider.ChainHead(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), head)

	// Second call within the TTL must not hit the source
	head, err = provider.ChainHead(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), head)

	// Past the TTL the source is consulted again
	head, err = provider.ChainHead(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(101), head)
}

func TestHeadProvider_ServesStaleOnFetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := mocks.NewMockSource(ctrl)
	clock := mocks.NewMockClock(ctrl)
	provider := block.NewHeadProvider(src, block.Config{TTL: 12 * time.Second, StaleWindow: time.Minute}, clock)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	rpcErr := errors.New("connection refused")

	gomock.InOrder(
		clock.EXPECT().Now().Return(base),
		src.EXPECT().ChainHead(gomock.Any()).Return(uint64(100), nil),
		// Stale but within the window: fall back to the cached head
		clock.EXPECT().Now().Return(base.Add(30*time.Second)),
		src.EXPECT().ChainHead(gomock.Any()).Return(uint64(0), rpcErr),
		// Beyond the window: the error surfaces
		clock.EXPECT().Now().Return(base.Add(2*time.Minute)),
		src.EXPECT().ChainHead(gomock.Any()).Return(uint64(0), rpcErr),
	)

	head, err := provider.ChainHead(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), head)

	head, err = provider.ChainHead(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), head)

	_, err = provider.ChainHead(ctx)
	assert.ErrorIs(t, err, rpcErr)
}

func TestHeadProvider_NoCacheAndFetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := mocks.NewMockSource(ctrl)
	clock := mocks.NewMockClock(ctrl)
	provider := block.NewHeadProvider(src, block.Config{TTL: 12 * time.Second, StaleWindow: time.Minute}, clock)

	rpcErr := errors.New("connection refused")
	clock.EXPECT().Now().Return(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	src.EXPECT().ChainHead(gomock.Any()).Return(uint64(0), rpcErr)

	_, err := provider.ChainHead(context.Background())
	assert.ErrorIs(t, err, rpcErr)
}
