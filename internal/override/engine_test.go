package override

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	overridedomain "github.com/propworks/rendition/internal/override/domain"
)

func baseResult(t *testing.T) (calcdomain.CalculationResult, []snowflake.ID) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	lines := []calcdomain.AssetCalculation{
		{
			AssetID:          node.Generate(),
			Category:         assetdomain.CategoryComputerEquipment,
			AcquisitionYear:  2023,
			YearOfLife:       3,
			EffectiveCost:    decimal.RequireFromString("10000.00"),
			PercentGood:      decimal.NewFromInt(52),
			DepreciatedValue: decimal.RequireFromString("5200.00"),
		},
		{
			AssetID:          node.Generate(),
			Category:         assetdomain.CategoryComputerEquipment,
			AcquisitionYear:  2024,
			YearOfLife:       2,
			EffectiveCost:    decimal.RequireFromString("2000.00"),
			PercentGood:      decimal.NewFromInt(69),
			DepreciatedValue: decimal.RequireFromString("1380.00"),
		},
		{
			AssetID:          node.Generate(),
			Category:         assetdomain.CategoryVehicles,
			AcquisitionYear:  2022,
			YearOfLife:       4,
			EffectiveCost:    decimal.RequireFromString("30000.00"),
			PercentGood:      decimal.NewFromInt(50),
			DepreciatedValue: decimal.RequireFromString("15000.00"),
		},
	}

	result := calcdomain.CalculationResult{
		TaxYear:      2025,
		Jurisdiction: "US_TX",
		Assets:       lines,
	}
	result.Categories, result.Totals = calcdomain.FoldAssets(result.Assets)
	result.Exemption = &calcdomain.ExemptionBlock{Threshold: decimal.NewFromInt(125_000)}
	result.Exemption.Recompute(result.Totals.DepreciatedValue)

	ids := make([]snowflake.ID, len(lines))
	for i, line := range lines {
		ids[i] = line.AssetID
	}
	return result, ids
}

func validOverride(value string) overridedomain.Override {
	return overridedomain.Override{
		Value:         decimal.RequireFromString(value),
		Justification: "lightning damage, insurer appraisal on file",
		AppliedBy:     "jmorales",
		AppliedAt:     time.Now().UTC(),
	}
}

func TestApplyReplacesValueAndKeepsOriginal(t *testing.T) {
	result, ids := baseResult(t)

	out, err := Apply(result, overridedomain.Map{
		ids[0].String(): validOverride("1500.00"),
	})
	require.NoError(t, err)

	line := out.Assets[0]
	assert.True(t, line.IsOverridden)
	assert.True(t, line.DepreciatedValue.Equal(decimal.RequireFromString("1500.00")))
	require.NotNil(t, line.OriginalDepreciatedValue)
	assert.True(t, line.OriginalDepreciatedValue.Equal(decimal.RequireFromString("5200.00")))

	// Aggregates refold from the full asset list.
	computers := out.Category(assetdomain.CategoryComputerEquipment)
	require.NotNil(t, computers)
	assert.True(t, computers.DepreciatedValue.Equal(decimal.RequireFromString("2880.00")))
	assert.True(t, out.Totals.DepreciatedValue.Equal(decimal.RequireFromString("17880.00")))

	// Input untouched.
	assert.False(t, result.Assets[0].IsOverridden)
	assert.True(t, result.Totals.DepreciatedValue.Equal(decimal.RequireFromString("21580.00")))
}

func TestApplyZeroOverrideIsValid(t *testing.T) {
	result, ids := baseResult(t)

	out, err := Apply(result, overridedomain.Map{
		ids[2].String(): validOverride("0"),
	})
	require.NoError(t, err)
	assert.True(t, out.Assets[2].DepreciatedValue.IsZero())
	assert.True(t, out.Totals.DepreciatedValue.Equal(decimal.RequireFromString("6580.00")))
}

func TestApplyEmptyMapIsNoop(t *testing.T) {
	result, _ := baseResult(t)

	out, err := Apply(result, overridedomain.Map{})
	require.NoError(t, err)
	assert.True(t, out.Totals.DepreciatedValue.Equal(result.Totals.DepreciatedValue))
}

func TestApplyRejectsWholeBatchOnOneBadEntry(t *testing.T) {
	result, ids := baseResult(t)

	bad := validOverride("100.00")
	bad.Justification = "  "

	_, err := Apply(result, overridedomain.Map{
		ids[0].String(): validOverride("1500.00"),
		ids[1].String(): bad,
	})
	assert.ErrorIs(t, err, overridedomain.ErrMissingJustification)

	// Nothing leaked into the input result.
	for _, line := range result.Assets {
		assert.False(t, line.IsOverridden)
	}
}

func TestApplyRejectsNegativeValue(t *testing.T) {
	result, ids := baseResult(t)

	bad := validOverride("100.00")
	bad.Value = decimal.RequireFromString("-0.01")

	_, err := Apply(result, overridedomain.Map{ids[0].String(): bad})
	assert.ErrorIs(t, err, overridedomain.ErrNegativeValue)
}

func TestApplyRejectsUnknownAsset(t *testing.T) {
	result, _ := baseResult(t)

	_, err := Apply(result, overridedomain.Map{
		"424242424242": validOverride("1500.00"),
	})
	assert.ErrorIs(t, err, overridedomain.ErrUnknownAsset)
}

func TestApplyRecomputesExemption(t *testing.T) {
	result, ids := baseResult(t)
	require.False(t, result.Exemption.IsExempt == false && result.Totals.DepreciatedValue.GreaterThan(result.Exemption.Threshold))

	// Pushing one asset's value past the threshold flips the exempt flag.
	out, err := Apply(result, overridedomain.Map{
		ids[2].String(): validOverride("130000.00"),
	})
	require.NoError(t, err)
	require.NotNil(t, out.Exemption)
	assert.False(t, out.Exemption.IsExempt)
	assert.True(t, out.Exemption.NetTaxableValue.Equal(out.Totals.DepreciatedValue.Sub(out.Exemption.Threshold)))
}

func TestApplyRemovalRestoresComputedValues(t *testing.T) {
	result, ids := baseResult(t)

	withOverride, err := Apply(result, overridedomain.Map{
		ids[0].String(): validOverride("1500.00"),
	})
	require.NoError(t, err)
	require.False(t, withOverride.Totals.DepreciatedValue.Equal(result.Totals.DepreciatedValue))

	// Clearing means re-applying the base result with an empty map: the
	// base was never mutated, so the original numbers come straight back.
	restored, err := Apply(result, overridedomain.Map{})
	require.NoError(t, err)
	assert.True(t, restored.Totals.DepreciatedValue.Equal(decimal.RequireFromString("21580.00")))
	assert.False(t, restored.Assets[0].IsOverridden)
}
