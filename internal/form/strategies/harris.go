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

// harrisSections maps internal categories onto the bespoke Harris County
// 22.15 section layout. Each section carries a bounded set of year rows;
// the last row is the "prior years" catch-all.
var harrisSections = []struct {
	key        string
	label      string
	categories []assetdomain.Category
}{
	{"computers", "Computers and peripherals", []assetdomain.Category{assetdomain.CategoryComputerEquipment}},
	{"furniture", "Furniture, fixtures and office equipment", []assetdomain.Category{assetdomain.CategoryFurnitureFixtures, assetdomain.CategoryOfficeEquipment}},
	{"machinery", "Machinery, equipment and tools", []assetdomain.Category{assetdomain.CategoryMachineryEquipment, assetdomain.CategoryTools}},
	{"vehicles", "Vehicles and trailers", []assetdomain.Category{assetdomain.CategoryVehicles}},
	{"leasehold", "Leasehold improvements", []assetdomain.Category{assetdomain.CategoryLeaseholdImprovements}},
}

// HarrisCounty fills the Harris County bespoke 22.15 layout: year-grouped
// rows per section instead of the statewide single-line schedule.
type HarrisCounty struct {
	catalog template.Catalog
}

func NewHarrisCounty(src template.Source) (*HarrisCounty, error) {
	catalog, err := src.Catalog(template.FormHarrisCounty)
	if err != nil {
		return nil, err
	}
	return &HarrisCounty{catalog: catalog}, nil
}

func (h *HarrisCounty) ID() string { return template.FormHarrisCounty }

func (h *HarrisCounty) DisplayName() string {
	return "Harris County Rendition Form 22.15"
}

func (h *HarrisCounty) Fill(owner renditiondomain.OwnerInfo, result calcdomain.CalculationResult) (formdomain.Document, error) {
	w := template.NewWriter(h.catalog)
	capacity := template.HarrisRowCapacity()

	w.Set("owner_name", owner.Name)
	w.Set("owner_address", owner.Address)
	w.Set("owner_city_state_zip", cityStateZip(owner))
	// Dropped from the current Harris revision; recorded as skipped.
	w.Set("owner_phone", owner.Phone)
	w.Set("contact_name", owner.Contact)
	w.Set("tax_year", format.Year(result.TaxYear))

	type renderedSection struct {
		label string
		rows  []calcdomain.YearGroup
		last  bool
		total decimal.Decimal
	}
	sections := make([]renderedSection, 0, len(harrisSections))

	for _, section := range harrisSections {
		groups := mergeYearGroups(result, section.categories)
		folded := len(groups) > capacity
		rows := capYearRows(groups, capacity)

		for i, group := range rows {
			prefix := fmt.Sprintf("sec_%s_row%d", section.key, i+1)
			yearLabel := format.Year(group.Year)
			if folded && i == len(rows)-1 {
				yearLabel = format.Year(group.Year) + " and prior"
			}
			w.Set(prefix+"_year", yearLabel)
			w.Set(prefix+"_cost", format.WholeDollars(group.OriginalCost))
			w.Set(prefix+"_value", format.WholeDollars(group.DepreciatedValue))
		}

		_, total := sumGroups(groups)
		w.Set(fmt.Sprintf("sec_%s_total_value", section.key), format.WholeDollars(total))
		sections = append(sections, renderedSection{
			label: section.label,
			rows:  rows,
			last:  folded,
			total: total,
		})
	}

	// Inventory and supplies report as one line, no year itemization.
	invCost := decimal.Zero
	invValue := decimal.Zero
	for _, category := range []assetdomain.Category{assetdomain.CategoryInventory, assetdomain.CategorySupplies} {
		if summary := result.Category(category); summary != nil {
			invCost = invCost.Add(summary.OriginalCost)
			invValue = invValue.Add(summary.DepreciatedValue)
		}
	}
	w.Set("sec_inventory_cost", format.WholeDollars(invCost))
	w.Set("sec_inventory_value", format.WholeDollars(invValue))

	w.Set("grand_total_value", format.WholeDollars(result.Totals.DepreciatedValue))

	m := newDoc()
	addTitle(m, "Business Personal Property Rendition", "Harris County Appraisal District Form 22.15")
	addOwnerBlock(m, owner, format.Year(result.TaxYear))

	for _, section := range sections {
		addSectionHeader(m, section.label)
		for i, group := range section.rows {
			yearLabel := format.Year(group.Year)
			if section.last && i == len(section.rows)-1 {
				yearLabel += " and prior"
			}
			addLine(m,
				fmt.Sprintf("Acquired %s  (cost %s)", yearLabel, format.WholeDollars(group.OriginalCost)),
				format.WholeDollars(group.DepreciatedValue),
			)
		}
		addBoldLine(m, "Section total", format.WholeDollars(section.total))
	}

	addSectionHeader(m, "Inventory and supplies")
	addLine(m, fmt.Sprintf("Inventory and supplies (cost %s)", format.WholeDollars(invCost)), format.WholeDollars(invValue))

	addBoldLine(m, "Total market value", format.WholeDollars(result.Totals.DepreciatedValue))

	doc, err := m.Generate()
	if err != nil {
		return formdomain.Document{}, err
	}

	return formdomain.Document{
		Bytes:       doc.GetBytes(),
		DisplayName: documentName(result.TaxYear, "TX_Harris_22-15", owner.Name),
		FieldWrites: w.Writes(),
	}, nil
}
