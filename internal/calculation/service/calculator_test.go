package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	"github.com/propworks/rendition/internal/jurisdiction"
	scheduleservice "github.com/propworks/rendition/internal/schedule/service"
	snapshotdomain "github.com/propworks/rendition/internal/snapshot/domain"
)

type assetSourceStub struct {
	assets []assetdomain.Asset
	err    error
}

func (s *assetSourceStub) ListByLocation(ctx context.Context, locationID snowflake.ID) ([]assetdomain.Asset, error) {
	return s.assets, s.err
}

type snapshotStub struct {
	snapshots []snapshotdomain.Snapshot
	err       error
}

func (s *snapshotStub) ListForYear(ctx context.Context, locationID snowflake.ID, taxYear int) ([]snapshotdomain.Snapshot, error) {
	return s.snapshots, s.err
}

func (s *snapshotStub) RollForward(ctx context.Context, firmID snowflake.ID, locationIDs []snowflake.ID, taxYear int) (*snapshotdomain.RolloverRun, error) {
	return nil, s.err
}

func newCalculator(t *testing.T, assets *assetSourceStub, snapshots *snapshotStub) (*Service, *snowflake.Node) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	schedule := scheduleservice.NewService(scheduleservice.ServiceParam{
		Log:   zap.NewNop(),
		GenID: node,
	})
	if assets == nil {
		assets = &assetSourceStub{}
	}
	if snapshots == nil {
		snapshots = &snapshotStub{}
	}
	return &Service{
		log:       zap.NewNop(),
		schedule:  schedule,
		assets:    assets,
		snapshots: snapshots,
	}, node
}

func computerInput(node *snowflake.Node, cost string, acquired int) calcdomain.ValuationInput {
	return calcdomain.ValuationInput{
		AssetID:         node.Generate(),
		Description:     "Workstation",
		Category:        assetdomain.CategoryComputerEquipment,
		UnitCost:        decimal.RequireFromString(cost),
		AcquisitionDate: time.Date(acquired, time.June, 15, 0, 0, 0, 0, time.UTC),
		Quantity:        1,
	}
}

func TestCalculateDepreciatesOnSchedule(t *testing.T) {
	svc, node := newCalculator(t, nil, nil)

	inputs := []calcdomain.ValuationInput{computerInput(node, "10000.00", 2023)}

	result, err := svc.Calculate(context.Background(), inputs, 2025, jurisdiction.CodeTexas)
	require.NoError(t, err)
	require.Len(t, result.Assets, 1)

	line := result.Assets[0]
	assert.Equal(t, 3, line.YearOfLife)
	assert.True(t, line.PercentGood.Equal(decimal.NewFromInt(52)))
	assert.True(t, line.DepreciatedValue.Equal(decimal.RequireFromString("5200.00")),
		"10k computer in year 3 should value at 5200, got %s", line.DepreciatedValue)
}

func TestCalculateClampsOldAssetsToFloor(t *testing.T) {
	svc, node := newCalculator(t, nil, nil)

	inputs := []calcdomain.ValuationInput{computerInput(node, "10000.00", 2023)}

	result, err := svc.Calculate(context.Background(), inputs, 2031, jurisdiction.CodeTexas)
	require.NoError(t, err)
	require.Len(t, result.Assets, 1)

	line := result.Assets[0]
	assert.Equal(t, 9, line.YearOfLife)
	assert.True(t, line.DepreciatedValue.Equal(decimal.RequireFromString("1800.00")),
		"beyond the table the floor percent applies, got %s", line.DepreciatedValue)
}

func TestCalculateIsDeterministic(t *testing.T) {
	svc, node := newCalculator(t, nil, nil)

	inputs := []calcdomain.ValuationInput{
		computerInput(node, "10000.00", 2023),
		computerInput(node, "2500.50", 2024),
		{
			AssetID:         node.Generate(),
			Category:        assetdomain.CategoryFurnitureFixtures,
			UnitCost:        decimal.RequireFromString("899.99"),
			AcquisitionDate: time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
			Quantity:        4,
		},
	}

	first, err := svc.Calculate(context.Background(), inputs, 2025, jurisdiction.CodeTexas)
	require.NoError(t, err)
	second, err := svc.Calculate(context.Background(), inputs, 2025, jurisdiction.CodeTexas)
	require.NoError(t, err)

	assert.True(t, first.Totals.DepreciatedValue.Equal(second.Totals.DepreciatedValue))
	assert.Equal(t, len(first.Categories), len(second.Categories))
	for i := range first.Categories {
		assert.Equal(t, first.Categories[i].Category, second.Categories[i].Category)
		assert.True(t, first.Categories[i].DepreciatedValue.Equal(second.Categories[i].DepreciatedValue))
	}
}

func TestCalculateSumInvariant(t *testing.T) {
	svc, node := newCalculator(t, nil, nil)

	inputs := []calcdomain.ValuationInput{
		computerInput(node, "3333.33", 2022),
		computerInput(node, "6666.67", 2023),
		{
			AssetID:         node.Generate(),
			Category:        assetdomain.CategoryVehicles,
			UnitCost:        decimal.RequireFromString("41999.95"),
			AcquisitionDate: time.Date(2021, time.November, 3, 0, 0, 0, 0, time.UTC),
			Quantity:        1,
		},
	}

	result, err := svc.Calculate(context.Background(), inputs, 2025, jurisdiction.CodeTexas)
	require.NoError(t, err)

	// Per-asset values are rounded first; every aggregate is an exact sum
	// of already-rounded values.
	lineSum := decimal.Zero
	for _, line := range result.Assets {
		lineSum = lineSum.Add(line.DepreciatedValue)
	}
	assert.True(t, result.Totals.DepreciatedValue.Equal(lineSum))

	categorySum := decimal.Zero
	for _, summary := range result.Categories {
		categorySum = categorySum.Add(summary.DepreciatedValue)

		yearSum := decimal.Zero
		for _, group := range summary.Years {
			yearSum = yearSum.Add(group.DepreciatedValue)
		}
		assert.True(t, summary.DepreciatedValue.Equal(yearSum))
	}
	assert.True(t, result.Totals.DepreciatedValue.Equal(categorySum))
}

func TestCalculateExcludesDisposedAssets(t *testing.T) {
	svc, node := newCalculator(t, nil, nil)

	disposedBefore := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	disposedDuring := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	gone := computerInput(node, "5000.00", 2022)
	gone.DisposalDate = &disposedBefore

	kept := computerInput(node, "5000.00", 2022)
	kept.DisposalDate = &disposedDuring

	result, err := svc.Calculate(context.Background(), []calcdomain.ValuationInput{gone, kept}, 2025, jurisdiction.CodeTexas)
	require.NoError(t, err)

	require.Len(t, result.Assets, 1)
	assert.Equal(t, kept.AssetID, result.Assets[0].AssetID)
	assert.Equal(t, 1, result.Totals.AssetCount)
}

func TestCalculateQuantityMultipliesCost(t *testing.T) {
	svc, node := newCalculator(t, nil, nil)

	input := computerInput(node, "1000.00", 2024)
	input.Quantity = 3

	result, err := svc.Calculate(context.Background(), []calcdomain.ValuationInput{input}, 2025, jurisdiction.CodeTexas)
	require.NoError(t, err)
	require.Len(t, result.Assets, 1)

	assert.True(t, result.Assets[0].EffectiveCost.Equal(decimal.RequireFromString("3000.00")))
}

func TestCalculateInventoryReportsAtFullValue(t *testing.T) {
	svc, node := newCalculator(t, nil, nil)

	input := calcdomain.ValuationInput{
		AssetID:         node.Generate(),
		Category:        assetdomain.CategoryInventory,
		UnitCost:        decimal.RequireFromString("50000.00"),
		AcquisitionDate: time.Date(2015, time.January, 2, 0, 0, 0, 0, time.UTC),
		Quantity:        1,
	}

	result, err := svc.Calculate(context.Background(), []calcdomain.ValuationInput{input}, 2025, jurisdiction.CodeTexas)
	require.NoError(t, err)
	require.Len(t, result.Assets, 1)
	assert.True(t, result.Assets[0].DepreciatedValue.Equal(decimal.RequireFromString("50000.00")))
	assert.Empty(t, result.Warnings)
}

func TestCalculateUnknownCategoryWarnsOnce(t *testing.T) {
	svc, node := newCalculator(t, nil, nil)

	odd := func() calcdomain.ValuationInput {
		return calcdomain.ValuationInput{
			AssetID:         node.Generate(),
			Category:        assetdomain.Category("signage"),
			UnitCost:        decimal.RequireFromString("100.00"),
			AcquisitionDate: time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
			Quantity:        1,
		}
	}

	result, err := svc.Calculate(context.Background(), []calcdomain.ValuationInput{odd(), odd(), odd()}, 2025, jurisdiction.CodeTexas)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1, "one warning per category, not per asset")
	for _, line := range result.Assets {
		assert.True(t, line.DepreciatedValue.Equal(decimal.RequireFromString("100.00")))
	}
}

func TestCalculateExemptionBlock(t *testing.T) {
	svc, node := newCalculator(t, nil, nil)

	t.Run("under threshold", func(t *testing.T) {
		input := calcdomain.ValuationInput{
			AssetID:         node.Generate(),
			Category:        assetdomain.CategoryInventory,
			UnitCost:        decimal.RequireFromString("98450.00"),
			AcquisitionDate: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			Quantity:        1,
		}
		result, err := svc.Calculate(context.Background(), []calcdomain.ValuationInput{input}, 2025, jurisdiction.CodeTexas)
		require.NoError(t, err)
		require.NotNil(t, result.Exemption)
		assert.True(t, result.Exemption.IsExempt)
		assert.True(t, result.Exemption.NetTaxableValue.IsZero())
	})

	t.Run("over threshold", func(t *testing.T) {
		input := calcdomain.ValuationInput{
			AssetID:         node.Generate(),
			Category:        assetdomain.CategoryInventory,
			UnitCost:        decimal.RequireFromString("140000.00"),
			AcquisitionDate: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			Quantity:        1,
		}
		result, err := svc.Calculate(context.Background(), []calcdomain.ValuationInput{input}, 2025, jurisdiction.CodeTexas)
		require.NoError(t, err)
		require.NotNil(t, result.Exemption)
		assert.False(t, result.Exemption.IsExempt)
		assert.True(t, result.Exemption.NetTaxableValue.Equal(decimal.RequireFromString("15000.00")))
	})

	t.Run("before statute", func(t *testing.T) {
		input := computerInput(node, "10000.00", 2023)
		result, err := svc.Calculate(context.Background(), []calcdomain.ValuationInput{input}, 2024, jurisdiction.CodeTexas)
		require.NoError(t, err)
		assert.Nil(t, result.Exemption)
	})
}

func TestCalculateRejectsBadArguments(t *testing.T) {
	svc, node := newCalculator(t, nil, nil)
	inputs := []calcdomain.ValuationInput{computerInput(node, "100.00", 2024)}

	_, err := svc.Calculate(context.Background(), inputs, 1500, jurisdiction.CodeTexas)
	assert.ErrorIs(t, err, calcdomain.ErrInvalidTaxYear)

	_, err = svc.Calculate(context.Background(), inputs, 2025, "US_ZZ")
	assert.ErrorIs(t, err, calcdomain.ErrMissingJurisdiction)
}

func TestCalculateForLocationPrefersSnapshots(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	liveAsset := assetdomain.Asset{
		ID:              node.Generate(),
		LocationID:      node.Generate(),
		Description:     "Live-only asset",
		Category:        assetdomain.CategoryComputerEquipment,
		OriginalCost:    decimal.RequireFromString("9999.00"),
		AcquisitionDate: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		Quantity:        1,
	}
	frozen := snapshotdomain.Snapshot{
		ID:              node.Generate(),
		AssetID:         node.Generate(),
		LocationID:      liveAsset.LocationID,
		TaxYear:         2025,
		Description:     "Frozen asset",
		Category:        assetdomain.CategoryComputerEquipment,
		OriginalCost:    decimal.RequireFromString("4000.00"),
		AcquisitionDate: time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC),
		Quantity:        1,
	}

	assets := &assetSourceStub{assets: []assetdomain.Asset{liveAsset}}

	svc, _ := newCalculator(t, assets, &snapshotStub{snapshots: []snapshotdomain.Snapshot{frozen}})
	result, err := svc.CalculateForLocation(context.Background(), liveAsset.LocationID, 2025, jurisdiction.CodeTexas)
	require.NoError(t, err)
	require.Len(t, result.Assets, 1)
	assert.Equal(t, frozen.AssetID, result.Assets[0].AssetID)

	svc, _ = newCalculator(t, assets, &snapshotStub{})
	result, err = svc.CalculateForLocation(context.Background(), liveAsset.LocationID, 2025, jurisdiction.CodeTexas)
	require.NoError(t, err)
	require.Len(t, result.Assets, 1)
	assert.Equal(t, liveAsset.ID, result.Assets[0].AssetID)
}
