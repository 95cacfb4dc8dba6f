package schema

import "time"

// Asset represents the assets table - one row per registered asset.
// The primary key is assigned by the ledger at registration time, never locally.
type Asset struct {
	// ID is the ledger-assigned asset identifier
	ID uint64 `gorm:"column:id;primaryKey"`
	// Owner is the current holder's address; updated on every applied transfer.
	// Original casing is preserved; lookups compare case-insensitively.
	Owner string `gorm:"column:owner;not null;type:text;index:idx_assets_owner_lower,expression:lower(owner)"`
	// Description is immutable free-text metadata captured at registration
	Description string `gorm:"column:description;not null;type:text"`
	// RegisteredAt is the ledger-reported registration time
	RegisteredAt time.Time `gorm:"column:registered_at;not null;type:timestamptz"`
	// RegisteredBlock and RegisteredLogIndex record the registration event's dedup key
	RegisteredBlock    uint64 `gorm:"column:registered_block;not null"`
	RegisteredLogIndex uint   `gorm:"column:registered_log_index;not null"`
	// CreatedAt is the timestamp when this record was first indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Transfers []Transfer `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}
