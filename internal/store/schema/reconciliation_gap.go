package schema

import (
	"time"

	"gorm.io/datatypes"
)

// GapKind classifies why an event could not be materialized
type GapKind string

const (
	// GapKindDecode indicates a malformed event payload that could not be normalized
	GapKindDecode GapKind = "decode"
	// GapKindReferential indicates a transfer whose asset never resolved within the retry budget
	GapKindReferential GapKind = "referential"
	// GapKindOrdering indicates a transfer rejected for regressing ledger order
	GapKindOrdering GapKind = "ordering"
)

// ReconciliationGap represents the reconciliation_gaps table - durable record of
// every event the indexer skipped. A skipped event means the materialized view is
// knowingly incomplete; operators distinguish "no events" from "events we couldn't
// apply" by querying this table.
type ReconciliationGap struct {
	// ID is a ULID assigned at record time
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Kind classifies the failure (decode, referential, ordering)
	Kind GapKind `gorm:"column:kind;not null;type:text;index"`
	// AssetID is the referenced asset, when the payload decoded far enough to know it
	AssetID *uint64 `gorm:"column:asset_id"`
	// BlockNumber and LogIndex identify the skipped event
	BlockNumber uint64 `gorm:"column:block_number;not null;uniqueIndex:idx_gaps_origin,priority:1"`
	LogIndex    uint   `gorm:"column:log_index;not null;uniqueIndex:idx_gaps_origin,priority:2"`
	// Reason is the human-readable failure description
	Reason string `gorm:"column:reason;not null;type:text"`
	// Raw contains the raw event payload as JSON for later reconciliation
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when the gap was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ReconciliationGap model
func (ReconciliationGap) TableName() string {
	return "reconciliation_gaps"
}
