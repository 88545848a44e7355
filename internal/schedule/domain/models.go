// Package domain contains the percent-good schedule reference model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
)

// Entry is one row of a jurisdiction's percent-good table.
// PercentGood is the fraction of original cost retained as FMV, 0-100,
// two decimal places.
type Entry struct {
	ID           snowflake.ID         `gorm:"primaryKey"`
	Jurisdiction string               `gorm:"type:text;not null;index:ix_schedule_lookup,priority:1;uniqueIndex:ux_schedule_entry,priority:1"`
	Category     assetdomain.Category `gorm:"type:text;not null;index:ix_schedule_lookup,priority:2;uniqueIndex:ux_schedule_entry,priority:2"`
	YearOfLife   int                  `gorm:"not null;uniqueIndex:ux_schedule_entry,priority:3"`
	PercentGood  decimal.Decimal      `gorm:"type:numeric(5,2);not null"`

	// Provenance of the published table this row was transcribed from.
	SourceDoc  string `gorm:"type:text;not null"`
	SourceYear int    `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "schedule_entries" }

// Warning flags a degraded-data condition the lookup worked around.
// It is reporting, never a failure.
type Warning struct {
	Jurisdiction string               `json:"jurisdiction"`
	Category     assetdomain.Category `json:"category"`
	Code         string               `json:"code"`
	Message      string               `json:"message"`
}

const (
	// WarnCategoryScheduleMissing: a category has no schedule for the
	// jurisdiction; the lookup failed open to 100%.
	WarnCategoryScheduleMissing = "category_schedule_missing"
)
