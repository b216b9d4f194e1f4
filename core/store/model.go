package store

import (
	"time"

	"locale-manager/core/record"
)

// TableName is the table holding localization records.
const TableName = "localization_records"

// IdentityIndex is the unique index over the uniqueness tuple.
const IdentityIndex = "idx_localization_identity"

// Model is the database row of a record.
type Model struct {
	ID            string    `gorm:"column:id;primaryKey;size:36"`
	AppID         string    `gorm:"column:app_id;size:64;not null;uniqueIndex:idx_localization_identity,priority:1"`
	Lang          string    `gorm:"column:lang;size:16;not null;uniqueIndex:idx_localization_identity,priority:2"`
	Territory     string    `gorm:"column:territory;size:16;not null;uniqueIndex:idx_localization_identity,priority:3"`
	TextKey       string    `gorm:"column:text_key;size:255;not null;uniqueIndex:idx_localization_identity,priority:4"`
	TextOriginal  string    `gorm:"column:text_original;type:text;not null"`
	TextLocalized string    `gorm:"column:text_localized;type:text"`
	TextComment   string    `gorm:"column:text_comment;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (Model) TableName() string {
	return TableName
}

// Columns lists the columns VerifySchema expects.
var Columns = []string{
	"id", "app_id", "lang", "territory", "text_key",
	"text_original", "text_localized", "text_comment",
	"created_at", "updated_at",
}

func fromRecord(r record.Record) Model {
	return Model{
		ID:            r.ID,
		AppID:         r.AppID,
		Lang:          r.Lang,
		Territory:     r.Territory,
		TextKey:       r.TextKey,
		TextOriginal:  r.TextOriginal,
		TextLocalized: r.TextLocalized,
		TextComment:   r.TextComment,
	}
}

func (m Model) toRecord() record.Record {
	return record.Record{
		ID:            m.ID,
		AppID:         m.AppID,
		Lang:          m.Lang,
		Territory:     m.Territory,
		TextKey:       m.TextKey,
		TextOriginal:  m.TextOriginal,
		TextLocalized: m.TextLocalized,
		TextComment:   m.TextComment,
	}
}
