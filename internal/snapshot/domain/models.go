// Package domain contains the immutable per-tax-year asset snapshots.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
)

// Snapshot freezes an asset's valuation attributes for one tax year.
// Created once per (asset, tax year) at rollover and never updated; later
// edits or deletion of the live asset cannot reach it.
type Snapshot struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	AssetID    snowflake.ID `gorm:"not null;uniqueIndex:ux_snapshot_asset_year,priority:1"`
	LocationID snowflake.ID `gorm:"not null;index"`
	TaxYear    int          `gorm:"not null;uniqueIndex:ux_snapshot_asset_year,priority:2;index"`

	Description     string               `gorm:"type:text;not null"`
	Category        assetdomain.Category `gorm:"type:text;not null"`
	OriginalCost    decimal.Decimal      `gorm:"type:numeric(14,2);not null"`
	AcquisitionDate time.Time            `gorm:"type:date;not null"`
	DisposalDate    *time.Time           `gorm:"type:date"`
	Quantity        int                  `gorm:"not null;default:1"`
	Leased          bool                 `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Snapshot) TableName() string { return "asset_snapshots" }

// RolloverRun records one executed rollover, keyed by firm and target year.
// The unique index is the duplicate-execution guard.
type RolloverRun struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	FirmID  snowflake.ID `gorm:"not null;uniqueIndex:ux_rollover_firm_year,priority:1"`
	TaxYear int          `gorm:"not null;uniqueIndex:ux_rollover_firm_year,priority:2"`

	SnapshotCount int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (RolloverRun) TableName() string { return "rollover_runs" }

// FromAsset freezes a live asset for the target tax year.
func FromAsset(id snowflake.ID, a assetdomain.Asset, taxYear int) Snapshot {
	return Snapshot{
		ID:              id,
		AssetID:         a.ID,
		LocationID:      a.LocationID,
		TaxYear:         taxYear,
		Description:     a.Description,
		Category:        a.Category,
		OriginalCost:    a.OriginalCost,
		AcquisitionDate: a.AcquisitionDate,
		DisposalDate:    a.DisposalDate,
		Quantity:        a.Quantity,
		Leased:          a.Leased,
	}
}

// ToValuationInput reduces the snapshot to calculator input.
func (s Snapshot) ToValuationInput() calcdomain.ValuationInput {
	return calcdomain.ValuationInput{
		AssetID:         s.AssetID,
		Description:     s.Description,
		Category:        s.Category,
		UnitCost:        s.OriginalCost,
		AcquisitionDate: s.AcquisitionDate,
		DisposalDate:    s.DisposalDate,
		Quantity:        s.Quantity,
		Leased:          s.Leased,
	}
}
