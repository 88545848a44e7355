// Package domain contains the rendition filing unit: one per location and
// tax year, owning a calculation result, an override map, and a status
// lifecycle that gates mutability.
package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	overridedomain "github.com/propworks/rendition/internal/override/domain"
	"gorm.io/datatypes"
)

// Status represents rendition lifecycle states. FILED freezes the
// calculation and overrides.
type Status string

const (
	StatusDraft Status = "DRAFT"
	StatusReady Status = "READY"
	StatusFiled Status = "FILED"
	StatusVoid  Status = "VOID"
)

// Rendition is the filing unit for one location and tax year.
type Rendition struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	FirmID     snowflake.ID `gorm:"not null;index"`
	LocationID snowflake.ID `gorm:"not null;uniqueIndex:ux_rendition_location_year,priority:1"`
	TaxYear    int          `gorm:"not null;uniqueIndex:ux_rendition_location_year,priority:2"`

	Jurisdiction    string `gorm:"type:text;not null"`
	SubJurisdiction string `gorm:"type:text"`

	Status Status `gorm:"type:text;not null;default:'DRAFT'"`

	// Calculation holds the base (pre-override) result. The effective
	// result is always re-derived by laying Overrides on top, so filed
	// numbers freeze the moment both columns stop changing.
	Calculation datatypes.JSON `gorm:"type:jsonb"`
	Overrides   datatypes.JSON `gorm:"type:jsonb"`

	// Owner/contact metadata the form strategies print.
	Owner datatypes.JSON `gorm:"type:jsonb"`

	// Exemption facts supplied by the filer, not computed.
	RelatedEntityAggregation bool `gorm:"not null;default:false"`
	ElectNotToFile           bool `gorm:"not null;default:false"`

	CalculatedAt *time.Time `gorm:""`
	FiledAt      *time.Time `gorm:""`
	CreatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Rendition) TableName() string { return "renditions" }

// Mutable reports whether calculation and overrides may still change.
func (r *Rendition) Mutable() bool {
	return r.Status == StatusDraft || r.Status == StatusReady
}

// DecodeCalculation unmarshals the stored base result.
func (r *Rendition) DecodeCalculation() (*calcdomain.CalculationResult, error) {
	if len(r.Calculation) == 0 {
		return nil, ErrNoCalculation
	}
	var result calcdomain.CalculationResult
	if err := json.Unmarshal(r.Calculation, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DecodeOwner unmarshals the stored owner metadata. Missing owner data is
// an empty OwnerInfo, not an error.
func (r *Rendition) DecodeOwner() (OwnerInfo, error) {
	if len(r.Owner) == 0 {
		return OwnerInfo{}, nil
	}
	var owner OwnerInfo
	if err := json.Unmarshal(r.Owner, &owner); err != nil {
		return OwnerInfo{}, err
	}
	return owner, nil
}

// DecodeOverrides unmarshals the stored override map. No overrides is an
// empty map, not an error.
func (r *Rendition) DecodeOverrides() (overridedomain.Map, error) {
	if len(r.Overrides) == 0 {
		return overridedomain.Map{}, nil
	}
	var overrides overridedomain.Map
	if err := json.Unmarshal(r.Overrides, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}
