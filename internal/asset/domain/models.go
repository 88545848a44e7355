// Package domain contains persistence models for depreciable assets.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category is the closed set of asset classes the schedule tables know.
type Category string

const (
	CategoryComputerEquipment     Category = "computer_equipment"
	CategoryFurnitureFixtures     Category = "furniture_fixtures"
	CategoryMachineryEquipment    Category = "machinery_equipment"
	CategoryOfficeEquipment       Category = "office_equipment"
	CategoryVehicles              Category = "vehicles"
	CategoryLeaseholdImprovements Category = "leasehold_improvements"
	CategoryTools                 Category = "tools"
	CategoryInventory             Category = "inventory"
	CategorySupplies              Category = "supplies"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryComputerEquipment,
	CategoryFurnitureFixtures,
	CategoryMachineryEquipment,
	CategoryOfficeEquipment,
	CategoryVehicles,
	CategoryLeaseholdImprovements,
	CategoryTools,
	CategoryInventory,
	CategorySupplies,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ReportsAtFullValue reports whether the category is valued at 100%
// regardless of age. Inventory and supplies never depreciate.
func (c Category) ReportsAtFullValue() bool {
	return c == CategoryInventory || c == CategorySupplies
}

// DisplayName returns a human-readable label for form output.
func (c Category) DisplayName() string {
	switch c {
	case CategoryComputerEquipment:
		return "Computer Equipment"
	case CategoryFurnitureFixtures:
		return "Furniture & Fixtures"
	case CategoryMachineryEquipment:
		return "Machinery & Equipment"
	case CategoryOfficeEquipment:
		return "Office Equipment"
	case CategoryVehicles:
		return "Vehicles"
	case CategoryLeaseholdImprovements:
		return "Leasehold Improvements"
	case CategoryTools:
		return "Tools"
	case CategoryInventory:
		return "Inventory"
	case CategorySupplies:
		return "Supplies"
	default:
		return string(c)
	}
}

// Asset represents a depreciable item at a business location.
// Mutable until soft-deleted; prior-year valuations are frozen by snapshots,
// never by the asset row itself.
type Asset struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	LocationID snowflake.ID `gorm:"not null;index"`

	Description     string          `gorm:"type:text;not null"`
	Category        Category        `gorm:"type:text;not null;index"`
	OriginalCost    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	AcquisitionDate time.Time       `gorm:"type:date;not null"`
	DisposalDate    *time.Time      `gorm:"type:date"`
	Quantity        int             `gorm:"not null;default:1"`
	Leased          bool            `gorm:"not null;default:false"`
	LessorName      *string         `gorm:"type:text"`
	Notes           string          `gorm:"type:text"`

	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName sets the database table name.
func (Asset) TableName() string { return "assets" }
