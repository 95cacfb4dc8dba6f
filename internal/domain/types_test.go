package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOriginAfter(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Origin
		after bool
	}{
		{
			name:  "later block",
			a:     Origin{BlockNumber: 11, LogIndex: 0},
			b:     Origin{BlockNumber: 10, LogIndex: 9},
			after: true,
		},
		{
			name:  "same block later index",
			a:     Origin{BlockNumber: 10, LogIndex: 3},
			b:     Origin{BlockNumber: 10, LogIndex: 2},
			after: true,
		},
		{
			name:  "equal origins",
			a:     Origin{BlockNumber: 10, LogIndex: 3},
			b:     Origin{BlockNumber: 10, LogIndex: 3},
			after: false,
		},
		{
			name:  "earlier block wins over index",
			a:     Origin{BlockNumber: 9, LogIndex: 50},
			b:     Origin{BlockNumber: 10, LogIndex: 0},
			after: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.after, tt.a.After(tt.b))
		})
	}
}

func TestEventValid(t *testing.T) {
	origin := Origin{BlockNumber: 1, LogIndex: 0, TxHash: "0xabc"}
	ts := time.Now()

	tests := []struct {
		name  string
		event Event
		valid bool
	}{
		{
			name: "valid registration",
			event: Event{
				Kind:    EventKindRegistered,
				AssetID: 1,
				Owner:   "0x1",
				Origin:  origin, Timestamp: ts,
			},
			valid: true,
		},
		{
			name: "registration without owner",
			event: Event{
				Kind:    EventKindRegistered,
				AssetID: 1,
				Origin:  origin, Timestamp: ts,
			},
			valid: false,
		},
		{
			name: "valid transfer",
			event: Event{
				Kind:      EventKindTransferred,
				AssetID:   1,
				FromOwner: "0x1", ToOwner: "0x2",
				Origin: origin, Timestamp: ts,
			},
			valid: true,
		},
		{
			name: "transfer missing recipient",
			event: Event{
				Kind:      EventKindTransferred,
				AssetID:   1,
				FromOwner: "0x1",
				Origin:    origin, Timestamp: ts,
			},
			valid: false,
		},
		{
			name: "missing tx hash",
			event: Event{
				Kind:    EventKindRegistered,
				AssetID: 1,
				Owner:   "0x1",
				Origin:  Origin{BlockNumber: 1}, Timestamp: ts,
			},
			valid: false,
		},
		{
			name:  "unknown kind",
			event: Event{Kind: "burned", AssetID: 1, Origin: origin},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.event.Valid())
		})
	}
}
