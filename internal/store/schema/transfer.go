package schema

import "time"

// Transfer represents the transfers table - append-only ownership change log.
// The unique (block_number, log_index) index is the dedup key guarding against
// duplicate delivery; the autoincrement id is local ordering only and carries
// no ledger meaning.
type Transfer struct {
	// ID is the local, monotonically increasing primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetID references the asset this transfer belongs to
	AssetID uint64 `gorm:"column:asset_id;not null;index"`
	// FromOwner is the holder before this transfer
	FromOwner string `gorm:"column:from_owner;not null;type:text"`
	// ToOwner is the holder after this transfer
	ToOwner string `gorm:"column:to_owner;not null;type:text"`
	// Timestamp is the ledger-reported event time
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// BlockNumber and LogIndex form the event's dedup key
	BlockNumber uint64 `gorm:"column:block_number;not null;uniqueIndex:idx_transfers_origin,priority:1"`
	LogIndex    uint   `gorm:"column:log_index;not null;uniqueIndex:idx_transfers_origin,priority:2"`
	// TxHash is the transaction that emitted the event
	TxHash string `gorm:"column:tx_hash;not null;type:text"`
	// CreatedAt is the timestamp when this record was indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Asset Asset `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Transfer model
func (Transfer) TableName() string {
	return "transfers"
}
