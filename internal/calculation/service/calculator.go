package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	"github.com/propworks/rendition/internal/exemption"
	"github.com/propworks/rendition/internal/jurisdiction"
	"github.com/propworks/rendition/internal/observability/metrics"
	scheduledomain "github.com/propworks/rendition/internal/schedule/domain"
	snapshotdomain "github.com/propworks/rendition/internal/snapshot/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var oneHundred = decimal.NewFromInt(100)

type ServiceParam struct {
	fx.In

	Log       *zap.Logger
	Schedule  scheduledomain.Table
	Assets    assetdomain.Source
	Snapshots snapshotdomain.Service
	Metrics   *metrics.Metrics `optional:"true"`
}

type Service struct {
	log       *zap.Logger
	schedule  scheduledomain.Table
	assets    assetdomain.Source
	snapshots snapshotdomain.Service
	metrics   *metrics.Metrics
}

func NewService(p ServiceParam) calcdomain.Calculator {
	return &Service{
		log:       p.Log.Named("calculation.service"),
		schedule:  p.Schedule,
		assets:    p.Assets,
		snapshots: p.Snapshots,
		metrics:   p.Metrics,
	}
}

func (s *Service) Calculate(ctx context.Context, inputs []calcdomain.ValuationInput, taxYear int, jurisdictionCode string) (calcdomain.CalculationResult, error) {
	_ = ctx

	if taxYear < 1900 {
		return calcdomain.CalculationResult{}, calcdomain.ErrInvalidTaxYear
	}
	if !jurisdiction.Supported(jurisdictionCode) {
		return calcdomain.CalculationResult{}, calcdomain.ErrMissingJurisdiction
	}

	result := calcdomain.CalculationResult{
		TaxYear:      taxYear,
		Jurisdiction: jurisdictionCode,
		ComputedAt:   time.Now().UTC(),
	}

	yearStart := time.Date(taxYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	seenWarnings := make(map[assetdomain.Category]bool)

	for _, input := range inputs {
		// Assets disposed before January 1 of the tax year contribute
		// nothing, not even to counts.
		if input.DisposalDate != nil && input.DisposalDate.Before(yearStart) {
			continue
		}

		line, warning, err := s.valueAsset(input, taxYear, jurisdictionCode)
		if err != nil {
			return calcdomain.CalculationResult{}, err
		}
		if warning != nil && !seenWarnings[warning.Category] {
			seenWarnings[warning.Category] = true
			result.Warnings = append(result.Warnings, *warning)
		}
		result.Assets = append(result.Assets, line)
	}

	result.Categories, result.Totals = calcdomain.FoldAssets(result.Assets)

	if rule, ok := exemption.ForJurisdiction(jurisdictionCode, taxYear); ok {
		isExempt, netTaxable := rule.Evaluate(result.Totals.DepreciatedValue)
		result.Exemption = &calcdomain.ExemptionBlock{
			Threshold:       rule.Threshold,
			IsExempt:        isExempt,
			NetTaxableValue: netTaxable,
		}
	}

	if s.metrics != nil {
		s.metrics.CalculationAssets.Observe(float64(len(result.Assets)))
	}
	return result, nil
}

func (s *Service) CalculateForLocation(ctx context.Context, locationID snowflake.ID, taxYear int, jurisdictionCode string) (calcdomain.CalculationResult, error) {
	// Frozen snapshots are authoritative for a rolled-over year. Only when
	// none exist (the current, not-yet-rolled year) do live assets feed
	// the calculation.
	snapshots, err := s.snapshots.ListForYear(ctx, locationID, taxYear)
	if err != nil {
		return calcdomain.CalculationResult{}, err
	}

	source := "snapshot"
	var inputs []calcdomain.ValuationInput
	if len(snapshots) > 0 {
		inputs = make([]calcdomain.ValuationInput, 0, len(snapshots))
		for _, frozen := range snapshots {
			inputs = append(inputs, frozen.ToValuationInput())
		}
	} else {
		source = "live"
		assets, err := s.assets.ListByLocation(ctx, locationID)
		if err != nil {
			return calcdomain.CalculationResult{}, err
		}
		inputs = make([]calcdomain.ValuationInput, 0, len(assets))
		for _, asset := range assets {
			inputs = append(inputs, calcdomain.InputFromAsset(asset))
		}
	}

	result, err := s.Calculate(ctx, inputs, taxYear, jurisdictionCode)
	if err != nil {
		return calcdomain.CalculationResult{}, err
	}

	if s.metrics != nil {
		s.metrics.Calculations.WithLabelValues(jurisdictionCode, source).Inc()
	}
	s.log.Debug("calculation complete",
		zap.String("location_id", locationID.String()),
		zap.Int("tax_year", taxYear),
		zap.String("source", source),
		zap.Int("assets", len(result.Assets)),
	)
	return result, nil
}

func (s *Service) valueAsset(input calcdomain.ValuationInput, taxYear int, jurisdictionCode string) (calcdomain.AssetCalculation, *scheduledomain.Warning, error) {
	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}
	effectiveCost := input.UnitCost.Mul(decimal.NewFromInt(int64(quantity))).Round(2)

	acquisitionYear := input.AcquisitionDate.Year()
	// Clamped to 1 so a future-dated acquisition never produces a zero or
	// negative age bucket.
	yearOfLife := taxYear - acquisitionYear + 1
	if yearOfLife < 1 {
		yearOfLife = 1
	}

	percentGood, warning, err := s.schedule.PercentGood(jurisdictionCode, input.Category, yearOfLife)
	if err != nil {
		return calcdomain.AssetCalculation{}, nil, err
	}

	depreciated := effectiveCost.Mul(percentGood).Div(oneHundred).Round(2)

	return calcdomain.AssetCalculation{
		AssetID:          input.AssetID,
		Description:      input.Description,
		Category:         input.Category,
		Quantity:         quantity,
		Leased:           input.Leased,
		AcquisitionYear:  acquisitionYear,
		YearOfLife:       yearOfLife,
		EffectiveCost:    effectiveCost,
		PercentGood:      percentGood,
		DepreciatedValue: depreciated,
	}, warning, nil
}
