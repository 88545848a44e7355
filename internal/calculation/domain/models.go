// Package domain contains the calculation result model. Results are value
// snapshots: produced fresh by every calculator run, mutated only by the
// override engine, and serialized onto the owning rendition.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	scheduledomain "github.com/propworks/rendition/internal/schedule/domain"
)

// ValuationInput is the attribute subset the calculator consumes. Live
// assets and frozen snapshots both reduce to this shape.
type ValuationInput struct {
	AssetID         snowflake.ID
	Description     string
	Category        assetdomain.Category
	UnitCost        decimal.Decimal
	AcquisitionDate time.Time
	DisposalDate    *time.Time
	Quantity        int
	Leased          bool
}

// InputFromAsset reduces a live asset to its valuation attributes.
func InputFromAsset(a assetdomain.Asset) ValuationInput {
	return ValuationInput{
		AssetID:         a.ID,
		Description:     a.Description,
		Category:        a.Category,
		UnitCost:        a.OriginalCost,
		AcquisitionDate: a.AcquisitionDate,
		DisposalDate:    a.DisposalDate,
		Quantity:        a.Quantity,
		Leased:          a.Leased,
	}
}

// AssetCalculation is the per-asset line of a calculation result.
type AssetCalculation struct {
	AssetID         snowflake.ID         `json:"assetId"`
	Description     string               `json:"description"`
	Category        assetdomain.Category `json:"category"`
	Quantity        int                  `json:"quantity"`
	Leased          bool                 `json:"leased"`
	AcquisitionYear int                  `json:"acquisitionYear"`
	YearOfLife      int                  `json:"yearOfLife"`
	EffectiveCost   decimal.Decimal      `json:"effectiveCost"`
	PercentGood     decimal.Decimal      `json:"percentGood"`

	// DepreciatedValue is the value carried into every aggregate. When an
	// override is applied it holds the override value and the computed
	// value moves to OriginalDepreciatedValue for audit.
	DepreciatedValue         decimal.Decimal  `json:"depreciatedValue"`
	IsOverridden             bool             `json:"isOverridden,omitempty"`
	OverrideValue            *decimal.Decimal `json:"overrideValue,omitempty"`
	OriginalDepreciatedValue *decimal.Decimal `json:"originalDepreciatedValue,omitempty"`
}

// YearGroup subtotals one acquisition year inside a category.
type YearGroup struct {
	Year             int             `json:"year"`
	Count            int             `json:"count"`
	OriginalCost     decimal.Decimal `json:"originalCost"`
	DepreciatedValue decimal.Decimal `json:"depreciatedValue"`
}

// CategorySummary subtotals one category, with per-acquisition-year groups.
type CategorySummary struct {
	Category         assetdomain.Category `json:"category"`
	Count            int                  `json:"count"`
	OriginalCost     decimal.Decimal      `json:"originalCost"`
	DepreciatedValue decimal.Decimal      `json:"depreciatedValue"`
	Years            []YearGroup          `json:"years"`
}

// Totals are the grand totals across all categories.
type Totals struct {
	AssetCount       int             `json:"assetCount"`
	OriginalCost     decimal.Decimal `json:"originalCost"`
	DepreciatedValue decimal.Decimal `json:"depreciatedValue"`
}

// ExemptionBlock carries the statutory threshold computation. The two
// booleans are caller-supplied facts the calculator only passes through.
type ExemptionBlock struct {
	Threshold                decimal.Decimal `json:"threshold"`
	IsExempt                 bool            `json:"isExempt"`
	NetTaxableValue          decimal.Decimal `json:"netTaxableValue"`
	RelatedEntityAggregation bool            `json:"relatedEntityAggregation"`
	ElectNotToFile           bool            `json:"electNotToFile"`
}

// Recompute re-derives the exempt flag and net taxable value from a new
// grand total. The pass-through booleans stay untouched.
func (e *ExemptionBlock) Recompute(grandTotal decimal.Decimal) {
	net := grandTotal.Sub(e.Threshold)
	if net.IsNegative() {
		net = decimal.Zero
	}
	e.NetTaxableValue = net.Round(2)
	e.IsExempt = grandTotal.LessThanOrEqual(e.Threshold)
}

// CalculationResult is the full output of one calculator run.
type CalculationResult struct {
	TaxYear      int                      `json:"taxYear"`
	Jurisdiction string                   `json:"jurisdiction"`
	ComputedAt   time.Time                `json:"computedAt"`
	Assets       []AssetCalculation       `json:"assets"`
	Categories   []CategorySummary        `json:"categories"`
	Totals       Totals                   `json:"totals"`
	Exemption    *ExemptionBlock          `json:"exemption,omitempty"`
	Warnings     []scheduledomain.Warning `json:"warnings,omitempty"`
}

// Category returns the summary for a category, or nil.
func (r *CalculationResult) Category(category assetdomain.Category) *CategorySummary {
	for i := range r.Categories {
		if r.Categories[i].Category == category {
			return &r.Categories[i]
		}
	}
	return nil
}

// Clone deep-copies the result so overrides can preserve the pre-override
// values for audit. Decimal values are immutable and safe to share.
func (r CalculationResult) Clone() CalculationResult {
	out := r
	out.Assets = make([]AssetCalculation, len(r.Assets))
	copy(out.Assets, r.Assets)
	out.Categories = make([]CategorySummary, len(r.Categories))
	for i, category := range r.Categories {
		copied := category
		copied.Years = make([]YearGroup, len(category.Years))
		copy(copied.Years, category.Years)
		out.Categories[i] = copied
	}
	if r.Exemption != nil {
		exemption := *r.Exemption
		out.Exemption = &exemption
	}
	if r.Warnings != nil {
		out.Warnings = make([]scheduledomain.Warning, len(r.Warnings))
		copy(out.Warnings, r.Warnings)
	}
	return out
}
