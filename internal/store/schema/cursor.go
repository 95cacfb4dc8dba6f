package schema

import "time"

// CursorRowID is the primary key of the singleton cursor row
const CursorRowID = 1

// Cursor represents the cursor table - a single row tracking ingestion progress.
// It is updated only inside the same transaction as the domain write it
// accompanies, so transfer presence and cursor position can never diverge.
type Cursor struct {
	ID uint `gorm:"column:id;primaryKey"`
	// LastBlock and LastLogIndex form the dedup key of the last applied event
	LastBlock    uint64 `gorm:"column:last_block;not null;default:0"`
	LastLogIndex uint   `gorm:"column:last_log_index;not null;default:0"`
	// UpdatedAt is the timestamp of the last cursor advance
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Cursor model
func (Cursor) TableName() string {
	return "cursor"
}
