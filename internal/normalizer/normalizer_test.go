package normalizer_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrylabs/asset-indexer/internal/domain"
	"github.com/registrylabs/asset-indexer/internal/normalizer"
	"github.com/registrylabs/asset-indexer/internal/source"
)

var (
	registeredTopic  = crypto.Keccak256Hash([]byte("AssetRegistered(uint256,address,string,uint256)"))
	transferredTopic = crypto.Keccak256Hash([]byte("OwnershipTransferred(uint256,address,address,uint256)"))

	ownerAddr = common.HexToAddress("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B")
	otherAddr = common.HexToAddress("0x00000000219ab540356cBB839Cbe05303d7705Fa")
)

func packRegisteredData(t *testing.T, description string, timestamp int64) []byte {
	t.Helper()

	stringTy, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	uint256Ty, err := abi.NewType("uint256", "", nil)
	require.NoError(t, err)

	data, err := abi.Arguments{{Type: stringTy}, {Type: uint256Ty}}.
		Pack(description, big.NewInt(timestamp))
	require.NoError(t, err)
	return data
}

func packTransferredData(t *testing.T, timestamp int64) []byte {
	t.Helper()

	uint256Ty, err := abi.NewType("uint256", "", nil)
	require.NoError(t, err)

	data, err := abi.Arguments{{Type: uint256Ty}}.Pack(big.NewInt(timestamp))
	require.NoError(t, err)
	return data
}

func rawEvent(log types.Log) source.RawEvent {
	return source.RawEvent{Log: log}
}

func TestNormalizeAssetRegistered(t *testing.T) {
	ts := time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC)

	raw := rawEvent(types.Log{
		Topics: []common.Hash{
			registeredTopic,
			common.BigToHash(big.NewInt(42)),
			common.BytesToHash(ownerAddr.Bytes()),
		},
		Data:        packRegisteredData(t, "first edition print", ts.Unix()),
		BlockNumber: 120,
		Index:       3,
		TxHash:      common.HexToHash("0xabc"),
	})

	event, err := normalizer.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, domain.EventKindRegistered, event.Kind)
	assert.Equal(t, uint64(42), event.AssetID)
	assert.Equal(t, ownerAddr.Hex(), event.Owner)
	assert.Equal(t, "first edition print", event.Description)
	assert.Equal(t, ts, event.Timestamp)
	assert.Equal(t, uint64(120), event.Origin.BlockNumber)
	assert.Equal(t, uint(3), event.Origin.LogIndex)
	assert.True(t, event.Valid())
}

func TestNormalizeOwnershipTransferred(t *testing.T) {
	ts := time.Date(2026, 2, 11, 9, 0, 0, 0, time.UTC)

	raw := rawEvent(types.Log{
		Topics: []common.Hash{
			transferredTopic,
			common.BigToHash(big.NewInt(42)),
			common.BytesToHash(ownerAddr.Bytes()),
			common.BytesToHash(otherAddr.Bytes()),
		},
		Data:        packTransferredData(t, ts.Unix()),
		BlockNumber: 121,
		Index:       0,
		TxHash:      common.HexToHash("0xdef"),
	})

	event, err := normalizer.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, domain.EventKindTransferred, event.Kind)
	assert.Equal(t, uint64(42), event.AssetID)
	assert.Equal(t, ownerAddr.Hex(), event.FromOwner)
	assert.Equal(t, otherAddr.Hex(), event.ToOwner)
	assert.Equal(t, ts, event.Timestamp)
	assert.True(t, event.Valid())
}

func TestNormalizeMalformedEvents(t *testing.T) {
	tests := []struct {
		name string
		log  types.Log
	}{
		{
			name: "no topics",
			log:  types.Log{BlockNumber: 10, Index: 1},
		},
		{
			name: "unknown signature",
			log: types.Log{
				Topics:      []common.Hash{crypto.Keccak256Hash([]byte("SomethingElse()"))},
				BlockNumber: 10,
				Index:       1,
			},
		},
		{
			name: "registration with missing indexed topics",
			log: types.Log{
				Topics:      []common.Hash{registeredTopic, common.BigToHash(big.NewInt(1))},
				Data:        packRegisteredData(t, "x", 1),
				BlockNumber: 10,
				Index:       1,
			},
		},
		{
			name: "transfer with truncated data",
			log: types.Log{
				Topics: []common.Hash{
					transferredTopic,
					common.BigToHash(big.NewInt(1)),
					common.BytesToHash(ownerAddr.Bytes()),
					common.BytesToHash(otherAddr.Bytes()),
				},
				Data:        []byte{0x01, 0x02},
				BlockNumber: 10,
				Index:       1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizer.Normalize(rawEvent(tt.log))
			require.Error(t, err)

			var decodeErr *normalizer.DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, uint64(10), decodeErr.Origin.BlockNumber)
			assert.Equal(t, uint(1), decodeErr.Origin.LogIndex)
		})
	}
}

func TestEventSignatures(t *testing.T) {
	sigs := normalizer.EventSignatures()
	require.Len(t, sigs, 2)
	assert.Contains(t, sigs, registeredTopic)
	assert.Contains(t, sigs, transferredTopic)
}
