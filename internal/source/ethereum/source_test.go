package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrylabs/asset-indexer/internal/domain"
	"github.com/registrylabs/asset-indexer/internal/logger"
	"github.com/registrylabs/asset-indexer/internal/mocks"
	"github.com/registrylabs/asset-indexer/internal/source"
	"github.com/registrylabs/asset-indexer/internal/source/ethereum"
)

const testContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

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

func newTestSource(t *testing.T) (source.Source, *mocks.MockEthClient) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthClient(ctrl)
	src := ethereum.NewSource(ethereum.Config{
		ContractAddress: testContract,
		MaxRetryElapsed: 2 * time.Second,
	}, client)
	return src, client
}

// fakeSubscription satisfies ethereum.Subscription for subscribe tests
type fakeSubscription struct {
	errCh chan error
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{errCh: make(chan error, 1)}
}

func (s *fakeSubscription) Unsubscribe()      {}
func (s *fakeSubscription) Err() <-chan error { return s.errCh }

func TestChainHead(t *testing.T) {
	src, client := newTestSource(t)

	client.EXPECT().HeaderByNumber(gomock.Any(), nil).
		Return(&types.Header{Number: big.NewInt(1234)}, nil)

	head, err := src.ChainHead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), head)
}

func TestChainHeadRetriesTransientFailure(t *testing.T) {
	src, client := newTestSource(t)

	gomock.InOrder(
		client.EXPECT().HeaderByNumber(gomock.Any(), nil).
			Return(nil, errors.New("connection reset by peer")),
		client.EXPECT().HeaderByNumber(gomock.Any(), nil).
			Return(&types.Header{Number: big.NewInt(99)}, nil),
	)

	head, err := src.ChainHead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(99), head)
}

func TestFetchRangeOrdersLogs(t *testing.T) {
	src, client := newTestSource(t)

	// Provider returns logs out of ledger order
	logs := []types.Log{
		{BlockNumber: 12, Index: 0},
		{BlockNumber: 10, Index: 3},
		{BlockNumber: 10, Index: 1},
	}
	client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query goethereum.FilterQuery) ([]types.Log, error) {
			assert.Equal(t, uint64(10), query.FromBlock.Uint64())
			assert.Equal(t, uint64(12), query.ToBlock.Uint64())
			assert.Equal(t, []common.Address{common.HexToAddress(testContract)}, query.Addresses)
			return logs, nil
		})

	events, err := src.FetchRange(context.Background(), 10, 12)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, uint64(10), events[0].Log.BlockNumber)
	assert.Equal(t, uint(1), events[0].Log.Index)
	assert.Equal(t, uint(3), events[1].Log.Index)
	assert.Equal(t, uint64(12), events[2].Log.BlockNumber)
}

func TestFetchRangeSplitsOnTooManyResults(t *testing.T) {
	src, client := newTestSource(t)

	tooMany := errors.New("query returned more than 10000 results")

	gomock.InOrder(
		// Full window rejected, both halves succeed
		client.EXPECT().FilterLogs(gomock.Any(), rangeQuery(10, 13)).Return(nil, tooMany),
		client.EXPECT().FilterLogs(gomock.Any(), rangeQuery(10, 11)).
			Return([]types.Log{{BlockNumber: 11, Index: 0}}, nil),
		client.EXPECT().FilterLogs(gomock.Any(), rangeQuery(12, 13)).
			Return([]types.Log{{BlockNumber: 12, Index: 0}}, nil),
	)

	events, err := src.FetchRange(context.Background(), 10, 13)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(11), events[0].Log.BlockNumber)
	assert.Equal(t, uint64(12), events[1].Log.BlockNumber)
}

func TestFetchRangeSingleBlockTooManyResults(t *testing.T) {
	src, client := newTestSource(t)

	tooMany := errors.New("too many results")
	client.EXPECT().FilterLogs(gomock.Any(), rangeQuery(5, 5)).Return(nil, tooMany)

	_, err := src.FetchRange(context.Background(), 5, 5)
	assert.ErrorIs(t, err, tooMany)
}

func TestSubscribeDeliversUntilStreamBreaks(t *testing.T) {
	src, client := newTestSource(t)

	sub := newFakeSubscription()
	subscribed := make(chan chan<- types.Log, 1)
	client.EXPECT().SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query goethereum.FilterQuery, ch chan<- types.Log) (goethereum.Subscription, error) {
			assert.Equal(t, uint64(100), query.FromBlock.Uint64())
			subscribed <- ch
			return sub, nil
		})

	received := make(chan source.RawEvent, 1)
	done := make(chan error, 1)
	go func() {
		done <- src.Subscribe(context.Background(), 100, func(raw source.RawEvent) error {
			received <- raw
			return nil
		})
	}()

	// Wait for the subscription before pushing a log
	logCh := <-subscribed
	logCh <- types.Log{BlockNumber: 101, Index: 2}

	raw := <-received
	assert.Equal(t, uint64(101), raw.Log.BlockNumber)

	sub.errCh <- errors.New("websocket: close 1006")
	err := <-done
	assert.ErrorIs(t, err, domain.ErrSubscriptionLost)
}

func TestSubscribeHandlerErrorStopsStream(t *testing.T) {
	src, client := newTestSource(t)

	sub := newFakeSubscription()
	subscribed := make(chan chan<- types.Log, 1)
	client.EXPECT().SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ goethereum.FilterQuery, ch chan<- types.Log) (goethereum.Subscription, error) {
			subscribed <- ch
			return sub, nil
		})

	handlerErr := errors.New("apply failed")
	done := make(chan error, 1)
	go func() {
		done <- src.Subscribe(context.Background(), 1, func(source.RawEvent) error {
			return handlerErr
		})
	}()

	logCh := <-subscribed
	logCh <- types.Log{BlockNumber: 2}

	assert.ErrorIs(t, <-done, handlerErr)
}

// rangeQuery matches a FilterQuery by its block window
func rangeQuery(from, to uint64) gomock.Matcher {
	return filterQueryMatcher{from: from, to: to}
}

type filterQueryMatcher struct {
	from, to uint64
}

func (m filterQueryMatcher) Matches(x interface{}) bool {
	query, ok := x.(goethereum.FilterQuery)
	if !ok {
		return false
	}
	return query.FromBlock.Uint64() == m.from && query.ToBlock.Uint64() == m.to
}

func (m filterQueryMatcher) String() string {
	return "filter query over the expected block window"
}
