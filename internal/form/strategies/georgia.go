package strategies

import (
	"fmt"

	"github.com/shopspring/decimal"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	formdomain "github.com/propworks/rendition/internal/form/domain"
	"github.com/propworks/rendition/internal/form/format"
	"github.com/propworks/rendition/internal/form/template"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
)

// georgiaGroups maps internal categories onto the three PT-50P asset
// groups. Row index inside a group is years since acquisition; the last
// row of the grid absorbs everything older than the window.
var georgiaGroups = []struct {
	key        string
	label      string
	categories []assetdomain.Category
}{
	{"group1", "Group 1: Machinery, equipment and vehicles", []assetdomain.Category{
		assetdomain.CategoryMachineryEquipment,
		assetdomain.CategoryTools,
		assetdomain.CategoryVehicles,
		assetdomain.CategoryLeaseholdImprovements,
	}},
	{"group2", "Group 2: Furniture and office equipment", []assetdomain.Category{
		assetdomain.CategoryFurnitureFixtures,
		assetdomain.CategoryOfficeEquipment,
	}},
	{"group3", "Group 3: Computer equipment", []assetdomain.Category{
		assetdomain.CategoryComputerEquipment,
	}},
}

// Georgia fills the PT-50P grid layout. Inventory and supplies have no
// home on this revision; their writes are recorded as skipped.
type Georgia struct {
	catalog template.Catalog
}

func NewGeorgia(src template.Source) (*Georgia, error) {
	catalog, err := src.Catalog(template.FormGeorgia)
	if err != nil {
		return nil, err
	}
	return &Georgia{catalog: catalog}, nil
}

func (g *Georgia) ID() string { return template.FormGeorgia }

func (g *Georgia) DisplayName() string {
	return "Georgia Business Personal Property Return PT-50P"
}

func (g *Georgia) Fill(owner renditiondomain.OwnerInfo, result calcdomain.CalculationResult) (formdomain.Document, error) {
	w := template.NewWriter(g.catalog)
	window := template.GeorgiaYearWindow()

	w.Set("owner_name", owner.Name)
	w.Set("owner_address", owner.Address)
	w.Set("owner_city_state_zip", cityStateZip(owner))
	w.Set("tax_year", format.Year(result.TaxYear))

	m := newDoc()
	addTitle(m, "Business Personal Property Return", "Georgia Department of Revenue Form PT-50P")
	addOwnerBlock(m, owner, format.Year(result.TaxYear))

	for _, group := range georgiaGroups {
		// Accumulate into the fixed grid rows: row 1 is the tax year,
		// the last row absorbs every older acquisition year.
		costs := make([]decimal.Decimal, window)
		values := make([]decimal.Decimal, window)
		for i := range costs {
			costs[i] = decimal.Zero
			values[i] = decimal.Zero
		}
		total := decimal.Zero

		for _, yg := range mergeYearGroups(result, group.categories) {
			row := result.TaxYear - yg.Year + 1
			if row < 1 {
				row = 1
			}
			if row > window {
				row = window
			}
			costs[row-1] = costs[row-1].Add(yg.OriginalCost)
			values[row-1] = values[row-1].Add(yg.DepreciatedValue)
			total = total.Add(yg.DepreciatedValue)
		}

		for row := 1; row <= window; row++ {
			if costs[row-1].IsZero() && values[row-1].IsZero() {
				continue
			}
			w.Set(fmt.Sprintf("grid_%s_y%d_cost", group.key, row), format.WholeDollars(costs[row-1]))
			w.Set(fmt.Sprintf("grid_%s_y%d_value", group.key, row), format.WholeDollars(values[row-1]))
		}
		w.Set(fmt.Sprintf("grid_%s_total_value", group.key), format.WholeDollars(total))

		addSectionHeader(m, group.label)
		for row := 1; row <= window; row++ {
			if costs[row-1].IsZero() && values[row-1].IsZero() {
				continue
			}
			label := fmt.Sprintf("Year %d  (cost %s)", result.TaxYear-row+1, format.WholeDollars(costs[row-1]))
			if row == window {
				label = fmt.Sprintf("Year %d and prior  (cost %s)", result.TaxYear-row+1, format.WholeDollars(costs[row-1]))
			}
			addLine(m, label, format.WholeDollars(values[row-1]))
		}
		addBoldLine(m, "Group total", format.WholeDollars(total))
	}

	// The PT-50P property return has no inventory or supplies lines;
	// these writes document the skip in the field audit.
	for _, category := range []assetdomain.Category{assetdomain.CategoryInventory, assetdomain.CategorySupplies} {
		if summary := result.Category(category); summary != nil {
			w.Set(fmt.Sprintf("line_%s_value", category), format.WholeDollars(summary.DepreciatedValue))
		}
	}

	w.Set("grand_total_value", format.WholeDollars(result.Totals.DepreciatedValue))
	addBoldLine(m, "Total reported value", format.WholeDollars(result.Totals.DepreciatedValue))

	doc, err := m.Generate()
	if err != nil {
		return formdomain.Document{}, err
	}

	return formdomain.Document{
		Bytes:       doc.GetBytes(),
		DisplayName: documentName(result.TaxYear, "GA_PT-50P", owner.Name),
		FieldWrites: w.Writes(),
	}, nil
}
