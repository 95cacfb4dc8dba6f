package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/registrylabs/asset-indexer/internal/adapter"
	"github.com/registrylabs/asset-indexer/internal/domain"
	"github.com/registrylabs/asset-indexer/internal/logger"
	"github.com/registrylabs/asset-indexer/internal/normalizer"
	"github.com/registrylabs/asset-indexer/internal/source"
)

// Config holds the configuration for the Ethereum event source
type Config struct {
	// ContractAddress is the deployed AssetRegistry contract
	ContractAddress string
	// MaxRetryElapsed bounds the total backoff time for a single RPC call
	MaxRetryElapsed time.Duration
}

type ethSource struct {
	client   adapter.EthClient
	contract common.Address
	cfg      Config
}

// NewSource creates an Ethereum-backed event source for the registry contract
func NewSource(cfg Config, client adapter.EthClient) source.Source {
	if cfg.MaxRetryElapsed == 0 {
		cfg.MaxRetryElapsed = 2 * time.Minute
	}
	return &ethSource{
		client:   client,
		contract: common.HexToAddress(cfg.ContractAddress),
		cfg:      cfg,
	}
}

// ChainHead returns the latest block number
func (s *ethSource) ChainHead(ctx context.Context) (uint64, error) {
	var head uint64
	err := s.retry(ctx, func() error {
		header, err := s.client.HeaderByNumber(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to get latest header: %w", err)
		}
		head = header.Number.Uint64()
		return nil
	})
	return head, err
}

// FetchRange returns all registry events in [fromBlock, toBlock] ordered by
// (block, logIndex). The window is halved on provider "too many results"
// responses, matching the behavior of rate-limited RPC endpoints.
func (s *ethSource) FetchRange(ctx context.Context, fromBlock, toBlock uint64) ([]source.RawEvent, error) {
	logs, err := s.filterWindow(ctx, fromBlock, toBlock)
	if err != nil {
		return nil, err
	}

	sort.Slice(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})

	events := make([]source.RawEvent, 0, len(logs))
	for _, l := range logs {
		events = append(events, source.RawEvent{Log: l})
	}
	return events, nil
}

func (s *ethSource) filterWindow(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{s.contract},
		Topics:    [][]common.Hash{normalizer.EventSignatures()},
	}

	var logs []types.Log
	err := s.retry(ctx, func() error {
		var err error
		logs, err = s.client.FilterLogs(ctx, query)
		return err
	})
	if err == nil {
		return logs, nil
	}

	if !isTooManyResultsError(err) || fromBlock >= toBlock {
		return nil, fmt.Errorf("failed to filter logs %d-%d: %w", fromBlock, toBlock, err)
	}

	// Split the window and fetch both halves
	mid := fromBlock + (toBlock-fromBlock)/2
	logger.Warn("Too many results, splitting fetch window",
		zap.Uint64("from_block", fromBlock),
		zap.Uint64("to_block", toBlock),
		zap.Uint64("mid", mid))

	lower, err := s.filterWindow(ctx, fromBlock, mid)
	if err != nil {
		return nil, err
	}
	upper, err := s.filterWindow(ctx, mid+1, toBlock)
	if err != nil {
		return nil, err
	}
	return append(lower, upper...), nil
}

// Subscribe delivers live registry events until ctx is canceled or the stream breaks
func (s *ethSource) Subscribe(ctx context.Context, fromBlock uint64, handler source.Handler) error {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{s.contract},
		Topics:    [][]common.Hash{normalizer.EventSignatures()},
	}

	logs := make(chan types.Log)
	sub, err := s.client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return fmt.Errorf("failed to subscribe to filter logs: %w", err)
	}
	defer sub.Unsubscribe()

	logger.InfoCtx(ctx, "Subscribed to registry events",
		zap.String("contract", s.contract.Hex()),
		zap.Uint64("from_block", fromBlock))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("%w: %v", domain.ErrSubscriptionLost, err)
		case vLog := <-logs:
			if err := handler(source.RawEvent{Log: vLog}); err != nil {
				return err
			}
		}
	}
}

// Close closes the underlying connection
func (s *ethSource) Close() {
	if s.client == nil {
		return
	}
	s.client.Close()
	logger.Info("Ethereum connection closed")
}

// retry runs op with exponential backoff until it succeeds, the elapsed budget
// is spent, or ctx is canceled
func (s *ethSource) retry(ctx context.Context, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = s.cfg.MaxRetryElapsed

	return backoff.Retry(func() error {
		err := op()
		if err != nil && isTooManyResultsError(err) {
			// Not transient: the window must shrink instead
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(policy, ctx))
}

// isTooManyResultsError checks if the error is a provider result-size limit
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum")
}
