package normalizer

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/registrylabs/asset-indexer/internal/domain"
	"github.com/registrylabs/asset-indexer/internal/source"
)

// Event signatures of the AssetRegistry contract
var (
	// AssetRegistered(uint256 indexed id, address indexed owner, string description, uint256 timestamp)
	assetRegisteredSignature = crypto.Keccak256Hash([]byte("AssetRegistered(uint256,address,string,uint256)"))

	// OwnershipTransferred(uint256 indexed assetId, address indexed previousOwner, address indexed newOwner, uint256 timestamp)
	ownershipTransferredSignature = crypto.Keccak256Hash([]byte("OwnershipTransferred(uint256,address,address,uint256)"))
)

const registryABI = `[
  {"type":"event","name":"AssetRegistered","inputs":[
    {"name":"id","type":"uint256","indexed":true},
    {"name":"owner","type":"address","indexed":true},
    {"name":"description","type":"string","indexed":false},
    {"name":"timestamp","type":"uint256","indexed":false}]},
  {"type":"event","name":"OwnershipTransferred","inputs":[
    {"name":"assetId","type":"uint256","indexed":true},
    {"name":"previousOwner","type":"address","indexed":true},
    {"name":"newOwner","type":"address","indexed":true},
    {"name":"timestamp","type":"uint256","indexed":false}]}
]`

var parsedABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(registryABI))
	if err != nil {
		panic(fmt.Sprintf("invalid registry ABI: %v", err))
	}
	return parsed
}()

// EventSignatures returns the topic hashes of the registry events, used by the
// source adapter to filter logs
func EventSignatures() []common.Hash {
	return []common.Hash{assetRegisteredSignature, ownershipTransferredSignature}
}

// DecodeError reports a malformed event payload together with the dedup key of
// the offending occurrence, so a skipped event is traceable, never silent.
type DecodeError struct {
	Origin domain.Origin
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at %s: %v", e.Origin, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Normalize converts a raw ledger log into a typed domain event.
// Pure: no side effects, no I/O. Failures return a *DecodeError.
func Normalize(raw source.RawEvent) (domain.Event, error) {
	vLog := raw.Log
	origin := raw.Origin()

	if len(vLog.Topics) == 0 {
		return domain.Event{}, &DecodeError{Origin: origin, Err: fmt.Errorf("log has no topics")}
	}

	switch vLog.Topics[0] {
	case assetRegisteredSignature:
		if len(vLog.Topics) != 3 {
			return domain.Event{}, &DecodeError{Origin: origin,
				Err: fmt.Errorf("AssetRegistered: expected 3 topics, got %d", len(vLog.Topics))}
		}

		values, err := parsedABI.Unpack("AssetRegistered", vLog.Data)
		if err != nil {
			return domain.Event{}, &DecodeError{Origin: origin,
				Err: fmt.Errorf("AssetRegistered: failed to unpack data: %w", err)}
		}

		description, ok := values[0].(string)
		if !ok {
			return domain.Event{}, &DecodeError{Origin: origin,
				Err: fmt.Errorf("AssetRegistered: description is not a string")}
		}
		timestamp, ok := values[1].(*big.Int)
		if !ok {
			return domain.Event{}, &DecodeError{Origin: origin,
				Err: fmt.Errorf("AssetRegistered: timestamp is not a uint256")}
		}

		return domain.Event{
			Kind:        domain.EventKindRegistered,
			AssetID:     new(big.Int).SetBytes(vLog.Topics[1].Bytes()).Uint64(),
			Owner:       common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
			Description: description,
			Timestamp:   time.Unix(timestamp.Int64(), 0).UTC(),
			Origin:      origin,
		}, nil

	case ownershipTransferredSignature:
		if len(vLog.Topics) != 4 {
			return domain.Event{}, &DecodeError{Origin: origin,
				Err: fmt.Errorf("OwnershipTransferred: expected 4 topics, got %d", len(vLog.Topics))}
		}

		values, err := parsedABI.Unpack("OwnershipTransferred", vLog.Data)
		if err != nil {
			return domain.Event{}, &DecodeError{Origin: origin,
				Err: fmt.Errorf("OwnershipTransferred: failed to unpack data: %w", err)}
		}

		timestamp, ok := values[0].(*big.Int)
		if !ok {
			return domain.Event{}, &DecodeError{Origin: origin,
				Err: fmt.Errorf("OwnershipTransferred: timestamp is not a uint256")}
		}

		return domain.Event{
			Kind:      domain.EventKindTransferred,
			AssetID:   new(big.Int).SetBytes(vLog.Topics[1].Bytes()).Uint64(),
			FromOwner: common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
			ToOwner:   common.BytesToAddress(vLog.Topics[3].Bytes()).Hex(),
			Timestamp: time.Unix(timestamp.Int64(), 0).UTC(),
			Origin:    origin,
		}, nil

	default:
		return domain.Event{}, &DecodeError{Origin: origin,
			Err: fmt.Errorf("unknown event signature %s", vLog.Topics[0].Hex())}
	}
}
