package store

import (
	"context"
	"errors"
	"fmt"

	"locale-manager/core/database"
	"locale-manager/core/reconcile"
	"locale-manager/core/record"

	"gorm.io/gorm"
)

const insertBatchSize = 500

// Store is the gorm implementation of reconcile.Store.
type Store struct {
	db *gorm.DB
}

var _ reconcile.Store = (*Store)(nil)

// New creates a store on db. The connection should be opened with
// TranslateError enabled so unique violations can be recognised.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the records table and its indexes.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Model{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}
	return nil
}

// VerifySchema checks that the records table exists with every expected column.
func (s *Store) VerifySchema(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if !db.Migrator().HasTable(&Model{}) {
		return &SchemaError{Table: TableName}
	}

	missing, err := database.HasColumns(db, TableName, Columns...)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &SchemaError{Table: TableName, Missing: missing}
	}
	if !db.Migrator().HasIndex(&Model{}, IdentityIndex) {
		return fmt.Errorf("table %s is missing unique index %s", TableName, IdentityIndex)
	}
	return nil
}

// Load returns the stored records matching filter, ordered by uniqueness tuple.
func (s *Store) Load(ctx context.Context, filter reconcile.Filter) ([]record.Record, error) {
	if filter.AppID == "" {
		return nil, fmt.Errorf("load requires an app id")
	}
	return s.load(ctx, filter)
}

// Unassigned returns the stored rows that have no app id.
// Such rows break the record invariants; they are only read for reporting.
func (s *Store) Unassigned(ctx context.Context) ([]record.Record, error) {
	return s.load(ctx, reconcile.Filter{})
}

func (s *Store) load(ctx context.Context, filter reconcile.Filter) ([]record.Record, error) {
	q := s.db.WithContext(ctx).Where("app_id = ?", filter.AppID)
	if filter.Lang != "" {
		q = q.Where("lang = ?", filter.Lang)
	}
	if filter.HasTerritory {
		q = q.Where("territory = ?", filter.Territory)
	}

	var rows []Model
	if err := q.Order("lang, territory, text_key").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load records for %s: %w", filter.AppID, err)
	}

	records := make([]record.Record, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
	}
	return records, nil
}

// Write persists a merged set of one application atomically.
// Records whose id is already stored get their texts updated; the tuple of a
// stored record never changes. Other records are inserted. Stored records
// missing from the set are left untouched.
func (s *Store) Write(ctx context.Context, appID string, records []record.Record) error {
	for _, r := range records {
		if r.AppID != appID {
			return fmt.Errorf("record %s does not belong to app %s", r.Key(), appID)
		}
		if r.ID == "" {
			return fmt.Errorf("record %s has no id", r.Key())
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&Model{}).Where("app_id = ?", appID).Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("failed to read stored ids: %w", err)
		}
		stored := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			stored[id] = struct{}{}
		}

		var inserts []Model
		for _, r := range records {
			if _, ok := stored[r.ID]; !ok {
				inserts = append(inserts, fromRecord(r))
				continue
			}
			err := tx.Model(&Model{}).Where("id = ?", r.ID).Updates(map[string]any{
				"text_original":  r.TextOriginal,
				"text_localized": r.TextLocalized,
				"text_comment":   r.TextComment,
			}).Error
			if err != nil {
				return err
			}
		}

		if len(inserts) > 0 {
			if err := tx.CreateInBatches(inserts, insertBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &KeyConflictError{AppID: appID, Err: err}
	}
	if err != nil {
		return fmt.Errorf("failed to write records for %s: %w", appID, err)
	}
	return nil
}

// Purge deletes the records with the given keys in one transaction.
// Returns the number of deleted rows.
func (s *Store) Purge(ctx context.Context, keys []record.Key) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			res := tx.Where("app_id = ? AND lang = ? AND territory = ? AND text_key = ?",
				k.AppID, k.Lang, k.Territory, k.TextKey).Delete(&Model{})
			if res.Error != nil {
				return fmt.Errorf("failed to delete %s: %w", k, res.Error)
			}
			deleted += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// PartitionStats counts the records of one language and territory.
type PartitionStats struct {
	Lang      string `json:"lang"`
	Territory string `json:"territory"`
	Total     int64  `json:"total"`
	Pending   int64  `json:"pending"`
}

// Stats returns per-partition counts of an application.
func (s *Store) Stats(ctx context.Context, appID string) ([]PartitionStats, error) {
	var stats []PartitionStats
	err := s.db.WithContext(ctx).Model(&Model{}).
		Select("lang, territory, COUNT(*) AS total, " +
			"SUM(CASE WHEN text_localized IS NULL OR text_localized = '' OR text_localized = text_original THEN 1 ELSE 0 END) AS pending").
		Where("app_id = ?", appID).
		Group("lang, territory").
		Order("lang, territory").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count records for %s: %w", appID, err)
	}
	return stats, nil
}

// Apps lists the application ids present in the store.
func (s *Store) Apps(ctx context.Context) ([]string, error) {
	var apps []string
	if err := s.db.WithContext(ctx).Model(&Model{}).Distinct("app_id").Order("app_id").Pluck("app_id", &apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}
	return apps, nil
}
