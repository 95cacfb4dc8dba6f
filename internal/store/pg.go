package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/registrylabs/asset-indexer/internal/domain"
	"github.com/registrylabs/asset-indexer/internal/logger"
	"github.com/registrylabs/asset-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates the schema and seeds the singleton cursor row
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&schema.Asset{},
		&schema.Transfer{},
		&schema.Cursor{},
		&schema.ReconciliationGap{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	cursor := schema.Cursor{ID: schema.CursorRowID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cursor).Error; err != nil {
		return fmt.Errorf("failed to seed cursor row: %w", err)
	}

	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return nil
}

// ApplyRegistration materializes an AssetRegistered event in a single transaction
func (s *pgStore) ApplyRegistration(ctx context.Context, event domain.Event) (domain.ApplyResult, error) {
	var result domain.ApplyResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		asset := schema.Asset{
			ID:                 event.AssetID,
			Owner:              event.Owner,
			Description:        event.Description,
			RegisteredAt:       event.Timestamp,
			RegisteredBlock:    event.Origin.BlockNumber,
			RegisteredLogIndex: event.Origin.LogIndex,
		}

		// Duplicate delivery of the same registration must not overwrite fields
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&asset)
		if res.Error != nil {
			return fmt.Errorf("failed to create asset: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			result = domain.AlreadyApplied()
		} else {
			result = domain.Applied()
		}

		// Cursor advances in both cases so a replay does not reprocess the key
		if err := advanceCursor(tx, event.Origin); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return domain.ApplyResult{}, err
	}

	return result, nil
}

// ApplyTransfer materializes an OwnershipTransferred event in a single transaction
func (s *pgStore) ApplyTransfer(ctx context.Context, event domain.Event) (domain.ApplyResult, error) {
	var result domain.ApplyResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The asset must be registered before any transfer is applied; the engine
		// retries this rejection in case the registration is pending in the batch.
		var asset schema.Asset
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", event.AssetID).
			First(&asset).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = domain.Rejected(domain.ErrUnknownAsset)
				return nil
			}
			return fmt.Errorf("failed to load asset %d: %w", event.AssetID, err)
		}

		// Duplicate delivery: the dedup key is already materialized
		var existing int64
		if err := tx.Model(&schema.Transfer{}).
			Where("block_number = ? AND log_index = ?", event.Origin.BlockNumber, event.Origin.LogIndex).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check transfer dedup key: %w", err)
		}
		if existing > 0 {
			result = domain.AlreadyApplied()
			return advanceCursor(tx, event.Origin)
		}

		// A replayed or reordered transfer must never regress the current owner
		var latest schema.Transfer
		err = tx.Where("asset_id = ?", event.AssetID).
			Order("block_number DESC, log_index DESC").
			First(&latest).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load latest transfer: %w", err)
		}
		if err == nil {
			latestOrigin := domain.Origin{BlockNumber: latest.BlockNumber, LogIndex: latest.LogIndex}
			if !event.Origin.After(latestOrigin) {
				result = domain.Rejected(domain.ErrStaleTransfer)
				return nil
			}
		}

		if !strings.EqualFold(asset.Owner, event.FromOwner) {
			// Applied anyway: the ledger is authoritative, but the mismatch is
			// worth surfacing since it means a prior event was skipped.
			logger.WarnCtx(ctx, "transfer fromOwner does not match materialized owner",
				zap.Uint64("asset_id", event.AssetID),
				zap.String("materialized_owner", asset.Owner),
				zap.String("event_from_owner", event.FromOwner))
		}

		transfer := schema.Transfer{
			AssetID:     event.AssetID,
			FromOwner:   event.FromOwner,
			ToOwner:     event.ToOwner,
			Timestamp:   event.Timestamp,
			BlockNumber: event.Origin.BlockNumber,
			LogIndex:    event.Origin.LogIndex,
			TxHash:      event.Origin.TxHash,
		}
		if err := tx.Create(&transfer).Error; err != nil {
			return fmt.Errorf("failed to create transfer: %w", err)
		}

		if err := tx.Model(&schema.Asset{}).
			Where("id = ?", event.AssetID).
			Updates(map[string]interface{}{"owner": event.ToOwner, "updated_at": gorm.Expr("now()")}).Error; err != nil {
			return fmt.Errorf("failed to update asset owner: %w", err)
		}

		if err := advanceCursor(tx, event.Origin); err != nil {
			return err
		}

		result = domain.Applied()
		return nil
	})
	if err != nil {
		return domain.ApplyResult{}, err
	}

	return result, nil
}

// RecordGap durably records a skipped event and advances the cursor past it
func (s *pgStore) RecordGap(ctx context.Context, gap GapInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := schema.ReconciliationGap{
			ID:          ulid.MustNewDefault(time.Now()).String(),
			Kind:        gap.Kind,
			AssetID:     gap.AssetID,
			BlockNumber: gap.Origin.BlockNumber,
			LogIndex:    gap.Origin.LogIndex,
			Reason:      gap.Reason,
			Raw:         gap.Raw,
		}

		// A replay may record the same gap twice; keep the first occurrence
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "block_number"}, {Name: "log_index"}},
			DoNothing: true,
		}).Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record reconciliation gap: %w", err)
		}

		return advanceCursor(tx, gap.Origin)
	})
}

// advanceCursor moves the singleton cursor forward to origin.
// The guard keeps the cursor monotonically non-decreasing under replays.
func advanceCursor(tx *gorm.DB, origin domain.Origin) error {
	err := tx.Model(&schema.Cursor{}).
		Where("id = ?", schema.CursorRowID).
		Where("last_block < ? OR (last_block = ? AND last_log_index < ?)",
			origin.BlockNumber, origin.BlockNumber, origin.LogIndex).
		Updates(map[string]interface{}{
			"last_block":     origin.BlockNumber,
			"last_log_index": origin.LogIndex,
			"updated_at":     gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to advance cursor: %w", err)
	}
	return nil
}

// GetAsset retrieves one asset by its ledger id
func (s *pgStore) GetAsset(ctx context.Context, id uint64) (*schema.Asset, error) {
	return getAsset(s.db.WithContext(ctx), id)
}

// ListAssets retrieves all materialized assets ordered by id
func (s *pgStore) ListAssets(ctx context.Context) ([]schema.Asset, error) {
	return listAssets(s.db.WithContext(ctx))
}

// GetTransfers retrieves an asset's transfers ordered by timestamp then local id
func (s *pgStore) GetTransfers(ctx context.Context, assetID uint64) ([]schema.Transfer, error) {
	return getTransfers(s.db.WithContext(ctx), assetID)
}

// GetAssetsByOwner retrieves assets held by an address, compared case-insensitively
func (s *pgStore) GetAssetsByOwner(ctx context.Context, owner string) ([]schema.Asset, error) {
	return getAssetsByOwner(s.db.WithContext(ctx), owner)
}

// GetCursor retrieves the ingestion cursor
func (s *pgStore) GetCursor(ctx context.Context) (schema.Cursor, error) {
	return getCursor(s.db.WithContext(ctx))
}

// GetAssetWithCursor retrieves one asset and the cursor position the read reflects
func (s *pgStore) GetAssetWithCursor(ctx context.Context, id uint64) (*schema.Asset, schema.Cursor, error) {
	var asset *schema.Asset
	var cursor schema.Cursor
	err := s.readSnapshot(ctx, func(tx *gorm.DB) error {
		var err error
		if cursor, err = getCursor(tx); err != nil {
			return err
		}
		asset, err = getAsset(tx, id)
		return err
	})
	if err != nil {
		return nil, schema.Cursor{}, err
	}
	return asset, cursor, nil
}

// ListAssetsWithCursor retrieves all assets and the cursor position the read reflects
func (s *pgStore) ListAssetsWithCursor(ctx context.Context) ([]schema.Asset, schema.Cursor, error) {
	var assets []schema.Asset
	var cursor schema.Cursor
	err := s.readSnapshot(ctx, func(tx *gorm.DB) error {
		var err error
		if cursor, err = getCursor(tx); err != nil {
			return err
		}
		assets, err = listAssets(tx)
		return err
	})
	if err != nil {
		return nil, schema.Cursor{}, err
	}
	return assets, cursor, nil
}

// GetAssetsByOwnerWithCursor retrieves an owner's assets and the cursor position
// the read reflects
func (s *pgStore) GetAssetsByOwnerWithCursor(ctx context.Context, owner string) ([]schema.Asset, schema.Cursor, error) {
	var assets []schema.Asset
	var cursor schema.Cursor
	err := s.readSnapshot(ctx, func(tx *gorm.DB) error {
		var err error
		if cursor, err = getCursor(tx); err != nil {
			return err
		}
		assets, err = getAssetsByOwner(tx, owner)
		return err
	})
	if err != nil {
		return nil, schema.Cursor{}, err
	}
	return assets, cursor, nil
}

// GetTransfersWithCursor retrieves an asset's transfers and the cursor position
// the read reflects. The asset must exist; an empty history for a known asset
// is a valid answer.
func (s *pgStore) GetTransfersWithCursor(ctx context.Context, assetID uint64) ([]schema.Transfer, schema.Cursor, error) {
	var transfers []schema.Transfer
	var cursor schema.Cursor
	err := s.readSnapshot(ctx, func(tx *gorm.DB) error {
		var err error
		if cursor, err = getCursor(tx); err != nil {
			return err
		}
		if _, err = getAsset(tx, assetID); err != nil {
			return err
		}
		transfers, err = getTransfers(tx, assetID)
		return err
	})
	if err != nil {
		return nil, schema.Cursor{}, err
	}
	return transfers, cursor, nil
}

// readSnapshot runs fn in a repeatable-read transaction so the cursor and the
// rows it describes come from one snapshot even under a concurrent apply
func (s *pgStore) readSnapshot(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
}

func getAsset(db *gorm.DB, id uint64) (*schema.Asset, error) {
	var asset schema.Asset
	err := db.Where("id = ?", id).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

func listAssets(db *gorm.DB) ([]schema.Asset, error) {
	var assets []schema.Asset
	if err := db.Order("id ASC").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

func getTransfers(db *gorm.DB, assetID uint64) ([]schema.Transfer, error) {
	var transfers []schema.Transfer
	err := db.Where("asset_id = ?", assetID).
		Order("timestamp ASC, id ASC").
		Find(&transfers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transfers: %w", err)
	}
	return transfers, nil
}

func getAssetsByOwner(db *gorm.DB, owner string) ([]schema.Asset, error) {
	var assets []schema.Asset
	err := db.Where("lower(owner) = lower(?)", owner).
		Order("id ASC").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get assets by owner: %w", err)
	}
	return assets, nil
}

func getCursor(db *gorm.DB) (schema.Cursor, error) {
	var cursor schema.Cursor
	err := db.Where("id = ?", schema.CursorRowID).First(&cursor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return schema.Cursor{ID: schema.CursorRowID}, nil
		}
		return schema.Cursor{}, fmt.Errorf("failed to get cursor: %w", err)
	}
	return cursor, nil
}

// CountAssets returns the total number of materialized assets
func (s *pgStore) CountAssets(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.Asset{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count assets: %w", err)
	}
	return count, nil
}

// CountTransfers returns the total number of materialized transfers
func (s *pgStore) CountTransfers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.Transfer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transfers: %w", err)
	}
	return count, nil
}

// TopOwners returns the addresses holding the most assets
func (s *pgStore) TopOwners(ctx context.Context, limit int) ([]OwnerHolding, error) {
	var holdings []OwnerHolding
	err := s.db.WithContext(ctx).Model(&schema.Asset{}).
		Select("owner, count(*) AS count").
		Group("owner").
		Order("count DESC, owner ASC").
		Limit(limit).
		Scan(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute top owners: %w", err)
	}
	return holdings, nil
}

// TransfersPerDay returns transfer volume bucketed by calendar day
func (s *pgStore) TransfersPerDay(ctx context.Context) ([]DailyTransfers, error) {
	var rows []DailyTransfers
	err := s.db.WithContext(ctx).Model(&schema.Transfer{}).
		Select("to_char(timestamp, 'YYYY-MM-DD') AS day, count(*) AS count").
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute transfers per day: %w", err)
	}
	return rows, nil
}
