package strategies

import (
	"fmt"

	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	formdomain "github.com/propworks/rendition/internal/form/domain"
	"github.com/propworks/rendition/internal/form/format"
	"github.com/propworks/rendition/internal/form/template"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
)

// Oklahoma fills the OTC 901 layout: one section per property class, each
// itemized by acquisition year within a fixed row budget.
type Oklahoma struct {
	catalog template.Catalog
}

func NewOklahoma(src template.Source) (*Oklahoma, error) {
	catalog, err := src.Catalog(template.FormOklahoma)
	if err != nil {
		return nil, err
	}
	return &Oklahoma{catalog: catalog}, nil
}

func (o *Oklahoma) ID() string { return template.FormOklahoma }

func (o *Oklahoma) DisplayName() string {
	return "Oklahoma Business Personal Property Rendition OTC 901"
}

func (o *Oklahoma) Fill(owner renditiondomain.OwnerInfo, result calcdomain.CalculationResult) (formdomain.Document, error) {
	w := template.NewWriter(o.catalog)
	capacity := template.OklahomaRowCapacity()

	w.Set("owner_name", owner.Name)
	w.Set("owner_address", owner.Address)
	w.Set("owner_city_state_zip", cityStateZip(owner))
	w.Set("owner_phone", owner.Phone)
	w.Set("tax_year", format.Year(result.TaxYear))

	m := newDoc()
	addTitle(m, "Business Personal Property Rendition", "Oklahoma Tax Commission Form OTC 901")
	addOwnerBlock(m, owner, format.Year(result.TaxYear))

	for _, category := range assetdomain.Categories {
		summary := result.Category(category)
		if summary == nil {
			continue
		}

		groups := mergeYearGroups(result, []assetdomain.Category{category})
		folded := len(groups) > capacity
		rows := capYearRows(groups, capacity)

		for i, group := range rows {
			prefix := fmt.Sprintf("sec_%s_row%d", category, i+1)
			yearLabel := format.Year(group.Year)
			if folded && i == len(rows)-1 {
				yearLabel += " and prior"
			}
			w.Set(prefix+"_year", yearLabel)
			w.Set(prefix+"_cost", format.WholeDollars(group.OriginalCost))
			w.Set(prefix+"_value", format.WholeDollars(group.DepreciatedValue))
		}
		w.Set(fmt.Sprintf("sec_%s_subtotal_value", category), format.WholeDollars(summary.DepreciatedValue))

		addSectionHeader(m, category.DisplayName())
		for i, group := range rows {
			yearLabel := format.Year(group.Year)
			if folded && i == len(rows)-1 {
				yearLabel += " and prior"
			}
			addLine(m,
				fmt.Sprintf("Acquired %s  (cost %s)", yearLabel, format.WholeDollars(group.OriginalCost)),
				format.WholeDollars(group.DepreciatedValue),
			)
		}
		addBoldLine(m, "Subtotal", format.WholeDollars(summary.DepreciatedValue))
	}

	w.Set("grand_total_cost", format.WholeDollars(result.Totals.OriginalCost))
	w.Set("grand_total_value", format.WholeDollars(result.Totals.DepreciatedValue))

	addBoldLine(m, "Total original cost", format.WholeDollars(result.Totals.OriginalCost))
	addBoldLine(m, "Total rendered value", format.WholeDollars(result.Totals.DepreciatedValue))

	doc, err := m.Generate()
	if err != nil {
		return formdomain.Document{}, err
	}

	return formdomain.Document{
		Bytes:       doc.GetBytes(),
		DisplayName: documentName(result.TaxYear, "OK_OTC-901", owner.Name),
		FieldWrites: w.Writes(),
	}, nil
}
