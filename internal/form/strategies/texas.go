package strategies

import (
	"github.com/shopspring/decimal"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	formdomain "github.com/propworks/rendition/internal/form/domain"
	"github.com/propworks/rendition/internal/form/format"
	"github.com/propworks/rendition/internal/form/template"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
)

// texasLines is the 50-144 report-line catalog. Several internal categories
// collapse into one line; the form has fewer lines than the engine has
// categories.
var texasLines = []struct {
	field      string
	label      string
	categories []assetdomain.Category
}{
	{"line_inventory_value", "Inventory held for sale", []assetdomain.Category{assetdomain.CategoryInventory}},
	{"line_supplies_value", "Consumable supplies", []assetdomain.Category{assetdomain.CategorySupplies}},
	{"line_ffe_value", "Furniture, fixtures and office equipment", []assetdomain.Category{assetdomain.CategoryFurnitureFixtures, assetdomain.CategoryOfficeEquipment}},
	{"line_machinery_value", "Machinery, equipment and tools", []assetdomain.Category{assetdomain.CategoryMachineryEquipment, assetdomain.CategoryTools}},
	{"line_computers_value", "Computer equipment", []assetdomain.Category{assetdomain.CategoryComputerEquipment}},
	{"line_vehicles_value", "Vehicles and trailers", []assetdomain.Category{assetdomain.CategoryVehicles}},
	{"line_leasehold_value", "Leasehold improvements", []assetdomain.Category{assetdomain.CategoryLeaseholdImprovements}},
}

// TexasStandard fills the statewide 50-144 rendition layout: one total per
// report line, categories collapsed per the line catalog.
type TexasStandard struct {
	catalog template.Catalog
}

func NewTexasStandard(src template.Source) (*TexasStandard, error) {
	catalog, err := src.Catalog(template.FormTexasStandard)
	if err != nil {
		return nil, err
	}
	return &TexasStandard{catalog: catalog}, nil
}

func (t *TexasStandard) ID() string { return template.FormTexasStandard }

func (t *TexasStandard) DisplayName() string {
	return "Texas Form 50-144 Business Personal Property Rendition"
}

func (t *TexasStandard) Fill(owner renditiondomain.OwnerInfo, result calcdomain.CalculationResult) (formdomain.Document, error) {
	w := template.NewWriter(t.catalog)

	w.Set("owner_name", owner.Name)
	w.Set("owner_address", owner.Address)
	w.Set("owner_city_state_zip", cityStateZip(owner))
	w.Set("owner_phone", owner.Phone)
	w.Set("contact_name", owner.Contact)
	w.Set("tax_year", format.Year(result.TaxYear))

	for _, line := range texasLines {
		value := decimal.Zero
		for _, category := range line.categories {
			if summary := result.Category(category); summary != nil {
				value = value.Add(summary.DepreciatedValue)
			}
		}
		w.Set(line.field, format.WholeDollars(value))
	}
	w.Set("total_market_value", format.WholeDollars(result.Totals.DepreciatedValue))

	if result.Exemption != nil {
		w.Set("exempt_check", checkbox(result.Exemption.IsExempt))
		w.Set("net_taxable_value", format.WholeDollars(result.Exemption.NetTaxableValue))
		w.Set("related_entity_check", checkbox(result.Exemption.RelatedEntityAggregation))
		w.Set("elect_not_render_check", checkbox(result.Exemption.ElectNotToFile))
	}

	bytes, err := t.render(owner, result, w)
	if err != nil {
		return formdomain.Document{}, err
	}

	return formdomain.Document{
		Bytes:       bytes,
		DisplayName: documentName(result.TaxYear, "TX_50-144", owner.Name),
		FieldWrites: w.Writes(),
	}, nil
}

func (t *TexasStandard) render(owner renditiondomain.OwnerInfo, result calcdomain.CalculationResult, w *template.Writer) ([]byte, error) {
	m := newDoc()

	addTitle(m, "Business Personal Property Rendition", "Texas Comptroller Form 50-144")
	addOwnerBlock(m, owner, w.Value("tax_year"))

	addSectionHeader(m, "Schedule: market value by property type")
	for _, line := range texasLines {
		addLine(m, line.label, w.Value(line.field))
	}
	addBoldLine(m, "Total market value", w.Value("total_market_value"))

	if result.Exemption != nil {
		addSectionHeader(m, "Statutory exemption")
		addLine(m, "Value at or below exemption threshold", w.Value("exempt_check"))
		addLine(m, "Net taxable value", w.Value("net_taxable_value"))
		addLine(m, "Aggregating related-entity property", w.Value("related_entity_check"))
		addLine(m, "Electing not to render (exempt)", w.Value("elect_not_render_check"))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
