package strategies

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	formdomain "github.com/propworks/rendition/internal/form/domain"
	"github.com/propworks/rendition/internal/form/template"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
)

var testOwner = renditiondomain.OwnerInfo{
	Name:    "Lone Star Widgets LLC",
	Address: "500 Congress Ave",
	City:    "Austin",
	State:   "TX",
	Zip:     "78701",
	Phone:   "512-555-0100",
	Contact: "K. Chen",
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

type testLine struct {
	category assetdomain.Category
	year     int
	cost     string
	value    string
}

func buildResult(t *testing.T, taxYear int, lines []testLine) calcdomain.CalculationResult {
	t.Helper()
	node := mustNode(t)

	result := calcdomain.CalculationResult{
		TaxYear:      taxYear,
		Jurisdiction: "US_TX",
	}
	for _, line := range lines {
		result.Assets = append(result.Assets, calcdomain.AssetCalculation{
			AssetID:          node.Generate(),
			Description:      "Test asset",
			Category:         line.category,
			Quantity:         1,
			AcquisitionYear:  line.year,
			YearOfLife:       taxYear - line.year + 1,
			EffectiveCost:    decimal.RequireFromString(line.cost),
			PercentGood:      decimal.NewFromInt(50),
			DepreciatedValue: decimal.RequireFromString(line.value),
		})
	}
	result.Categories, result.Totals = calcdomain.FoldAssets(result.Assets)
	result.Exemption = &calcdomain.ExemptionBlock{Threshold: decimal.NewFromInt(125_000)}
	result.Exemption.Recompute(result.Totals.DepreciatedValue)
	return result
}

func findWrite(t *testing.T, writes []formdomain.FieldWrite, field string) formdomain.FieldWrite {
	t.Helper()
	for _, write := range writes {
		if write.Field == field {
			return write
		}
	}
	t.Fatalf("no write recorded for field %q", field)
	return formdomain.FieldWrite{}
}

func TestTexasStandardCollapsesCategories(t *testing.T) {
	strategy, err := NewTexasStandard(template.NewStaticSource())
	require.NoError(t, err)

	result := buildResult(t, 2025, []testLine{
		{assetdomain.CategoryFurnitureFixtures, 2023, "2000.00", "1000.00"},
		{assetdomain.CategoryOfficeEquipment, 2022, "1000.00", "400.00"},
		{assetdomain.CategoryComputerEquipment, 2023, "10000.00", "5200.00"},
		{assetdomain.CategoryInventory, 2025, "30000.00", "30000.00"},
	})

	doc, err := strategy.Fill(testOwner, result)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Bytes)
	assert.Contains(t, doc.DisplayName, "TX_50-144")

	// Furniture and office equipment collapse into one form line.
	assert.Equal(t, "1,400", findWrite(t, doc.FieldWrites, "line_ffe_value").Value)
	assert.Equal(t, "5,200", findWrite(t, doc.FieldWrites, "line_computers_value").Value)
	assert.Equal(t, "30,000", findWrite(t, doc.FieldWrites, "line_inventory_value").Value)
	assert.Equal(t, "36,600", findWrite(t, doc.FieldWrites, "total_market_value").Value)
	assert.Equal(t, "X", findWrite(t, doc.FieldWrites, "exempt_check").Value)
	assert.Equal(t, "0", findWrite(t, doc.FieldWrites, "net_taxable_value").Value)

	for _, write := range doc.FieldWrites {
		assert.Equal(t, formdomain.WriteOK, write.Status, "50-144 carries every field the engine writes: %s", write.Field)
	}
}

func TestHarrisCountySkipsDroppedOwnerFields(t *testing.T) {
	strategy, err := NewHarrisCounty(template.NewStaticSource())
	require.NoError(t, err)

	result := buildResult(t, 2025, []testLine{
		{assetdomain.CategoryComputerEquipment, 2024, "4000.00", "2760.00"},
	})

	doc, err := strategy.Fill(testOwner, result)
	require.NoError(t, err)

	// The current Harris revision has no phone or contact fields; the
	// writes are recorded as skipped, never fatal.
	assert.Equal(t, formdomain.WriteFieldMissing, findWrite(t, doc.FieldWrites, "owner_phone").Status)
	assert.Equal(t, formdomain.WriteFieldMissing, findWrite(t, doc.FieldWrites, "contact_name").Status)
	assert.Equal(t, formdomain.WriteOK, findWrite(t, doc.FieldWrites, "owner_name").Status)
}

func TestHarrisCountyFoldsYearsBeyondRowCapacity(t *testing.T) {
	strategy, err := NewHarrisCounty(template.NewStaticSource())
	require.NoError(t, err)

	// Six acquisition years against a four-row section.
	lines := make([]testLine, 0, 6)
	for year := 2020; year <= 2025; year++ {
		lines = append(lines, testLine{assetdomain.CategoryComputerEquipment, year, "1000.00", "500.00"})
	}
	result := buildResult(t, 2025, lines)

	doc, err := strategy.Fill(testOwner, result)
	require.NoError(t, err)

	// Rows 1-3 itemize the newest years, row 4 absorbs the rest.
	assert.Equal(t, "2025", findWrite(t, doc.FieldWrites, "sec_computers_row1_year").Value)
	assert.Equal(t, "2024", findWrite(t, doc.FieldWrites, "sec_computers_row2_year").Value)
	assert.Equal(t, "2023", findWrite(t, doc.FieldWrites, "sec_computers_row3_year").Value)
	assert.Equal(t, "2022 and prior", findWrite(t, doc.FieldWrites, "sec_computers_row4_year").Value)
	assert.Equal(t, "3,000", findWrite(t, doc.FieldWrites, "sec_computers_row4_cost").Value)
	assert.Equal(t, "1,500", findWrite(t, doc.FieldWrites, "sec_computers_row4_value").Value)

	// The fold loses no value: section total still covers all six years.
	assert.Equal(t, "3,000", findWrite(t, doc.FieldWrites, "sec_computers_total_value").Value)
	assert.Equal(t, "3,000", findWrite(t, doc.FieldWrites, "grand_total_value").Value)
}

func TestHarrisCountyInventoryIsSingleLine(t *testing.T) {
	strategy, err := NewHarrisCounty(template.NewStaticSource())
	require.NoError(t, err)

	result := buildResult(t, 2025, []testLine{
		{assetdomain.CategoryInventory, 2025, "20000.00", "20000.00"},
		{assetdomain.CategorySupplies, 2024, "500.00", "500.00"},
	})

	doc, err := strategy.Fill(testOwner, result)
	require.NoError(t, err)

	assert.Equal(t, "20,500", findWrite(t, doc.FieldWrites, "sec_inventory_cost").Value)
	assert.Equal(t, "20,500", findWrite(t, doc.FieldWrites, "sec_inventory_value").Value)
}

func TestOklahomaSectionsPerCategory(t *testing.T) {
	strategy, err := NewOklahoma(template.NewStaticSource())
	require.NoError(t, err)

	result := buildResult(t, 2025, []testLine{
		{assetdomain.CategoryComputerEquipment, 2024, "4000.00", "2800.00"},
		{assetdomain.CategoryVehicles, 2022, "30000.00", "15000.00"},
	})

	doc, err := strategy.Fill(testOwner, result)
	require.NoError(t, err)

	assert.Equal(t, "2024", findWrite(t, doc.FieldWrites, "sec_computer_equipment_row1_year").Value)
	assert.Equal(t, "2,800", findWrite(t, doc.FieldWrites, "sec_computer_equipment_subtotal_value").Value)
	assert.Equal(t, "15,000", findWrite(t, doc.FieldWrites, "sec_vehicles_subtotal_value").Value)
	assert.Equal(t, "34,000", findWrite(t, doc.FieldWrites, "grand_total_cost").Value)
	assert.Equal(t, "17,800", findWrite(t, doc.FieldWrites, "grand_total_value").Value)

	for _, write := range doc.FieldWrites {
		assert.Equal(t, formdomain.WriteOK, write.Status)
	}
}

func TestGeorgiaGridPlacement(t *testing.T) {
	strategy, err := NewGeorgia(template.NewStaticSource())
	require.NoError(t, err)

	result := buildResult(t, 2025, []testLine{
		// Row 1: acquired in the tax year.
		{assetdomain.CategoryComputerEquipment, 2025, "1000.00", "900.00"},
		// Row 3.
		{assetdomain.CategoryComputerEquipment, 2023, "2000.00", "1000.00"},
		// Older than the window: clamps into row 8.
		{assetdomain.CategoryComputerEquipment, 2010, "5000.00", "500.00"},
		{assetdomain.CategoryComputerEquipment, 2005, "3000.00", "300.00"},
	})

	doc, err := strategy.Fill(testOwner, result)
	require.NoError(t, err)

	assert.Equal(t, "900", findWrite(t, doc.FieldWrites, "grid_group3_y1_value").Value)
	assert.Equal(t, "1,000", findWrite(t, doc.FieldWrites, "grid_group3_y3_value").Value)
	assert.Equal(t, "8,000", findWrite(t, doc.FieldWrites, "grid_group3_y8_cost").Value)
	assert.Equal(t, "800", findWrite(t, doc.FieldWrites, "grid_group3_y8_value").Value)
	assert.Equal(t, "2,700", findWrite(t, doc.FieldWrites, "grid_group3_total_value").Value)
}

func TestGeorgiaHasNoInventoryLine(t *testing.T) {
	strategy, err := NewGeorgia(template.NewStaticSource())
	require.NoError(t, err)

	result := buildResult(t, 2025, []testLine{
		{assetdomain.CategoryInventory, 2025, "20000.00", "20000.00"},
		{assetdomain.CategoryMachineryEquipment, 2024, "10000.00", "8000.00"},
	})

	doc, err := strategy.Fill(testOwner, result)
	require.NoError(t, err)

	// Inventory has no home on the PT-50P; the attempted write documents
	// the skip in the audit trail.
	assert.Equal(t, formdomain.WriteFieldMissing, findWrite(t, doc.FieldWrites, "line_inventory_value").Status)
	// The grand total still reports everything.
	assert.Equal(t, "28,000", findWrite(t, doc.FieldWrites, "grand_total_value").Value)
}

func TestCapYearRows(t *testing.T) {
	groups := []calcdomain.YearGroup{
		{Year: 2025, Count: 1, OriginalCost: decimal.NewFromInt(100), DepreciatedValue: decimal.NewFromInt(90)},
		{Year: 2024, Count: 1, OriginalCost: decimal.NewFromInt(100), DepreciatedValue: decimal.NewFromInt(70)},
		{Year: 2023, Count: 2, OriginalCost: decimal.NewFromInt(100), DepreciatedValue: decimal.NewFromInt(50)},
		{Year: 2022, Count: 1, OriginalCost: decimal.NewFromInt(100), DepreciatedValue: decimal.NewFromInt(30)},
	}

	capped := capYearRows(groups, 2)
	require.Len(t, capped, 2)
	assert.Equal(t, 2025, capped[0].Year)
	assert.Equal(t, 2024, capped[1].Year)
	assert.Equal(t, 4, capped[1].Count)
	assert.True(t, capped[1].DepreciatedValue.Equal(decimal.NewFromInt(150)))

	// Under capacity passes through untouched.
	assert.Len(t, capYearRows(groups, 10), 4)
}

func TestExemptionCertRequiresExemptResult(t *testing.T) {
	strategy := NewExemptionCert()

	exempt := buildResult(t, 2025, []testLine{
		{assetdomain.CategoryInventory, 2025, "90000.00", "90000.00"},
	})
	exempt.Exemption.ElectNotToFile = true

	doc, err := strategy.Fill(testOwner, exempt)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Bytes)

	taxable := buildResult(t, 2025, []testLine{
		{assetdomain.CategoryInventory, 2025, "200000.00", "200000.00"},
	})
	_, err = strategy.Fill(testOwner, taxable)
	assert.Error(t, err)
}

func TestAssetReportListsEveryLine(t *testing.T) {
	strategy := NewAssetReport()

	result := buildResult(t, 2025, []testLine{
		{assetdomain.CategoryComputerEquipment, 2023, "10000.00", "5200.00"},
		{assetdomain.CategoryVehicles, 2022, "30000.00", "15000.00"},
	})

	doc, err := strategy.Fill(testOwner, result)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Bytes)
	assert.Contains(t, doc.DisplayName, "Asset_Detail")
}

func TestRenderCoverSheet(t *testing.T) {
	summary := formdomain.BatchSummary{
		BatchID: "test-batch",
		TaxYear: 2025,
		Items: []formdomain.BatchItem{
			{RenditionID: "1", OwnerName: "A", Jurisdiction: "US_TX", FormName: "x.pdf", TotalValue: decimal.NewFromInt(1000), NetTaxableValue: decimal.Zero, Exempt: true},
			{RenditionID: "2", OwnerName: "B", Jurisdiction: "US_OK", Error: "rendition_not_calculated"},
		},
	}

	doc, err := RenderCoverSheet(summary)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Bytes)
	assert.Equal(t, 1, summary.Succeeded())
	assert.Equal(t, 1, summary.Failed())
}
