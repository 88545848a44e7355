package template

import (
	"fmt"

	formdomain "github.com/propworks/rendition/internal/form/domain"
)

// Form IDs are the stable template identifiers the resolver hands out.
const (
	FormTexasStandard  = "tx-50-144"
	FormHarrisCounty   = "tx-harris-22-15"
	FormOklahoma       = "ok-otc-901"
	FormGeorgia        = "ga-pt-50p"
	FormAssetReport    = "asset-report"
	FormExemptionCert  = "exemption-cert"
	FormBatchCoverPage = "batch-cover"
)

// staticSource serves the built-in catalogs transcribed from the current
// template revisions. Swapping in a remote source changes retrieval, not
// the contract.
type staticSource struct {
	catalogs map[string]Catalog
}

// NewStaticSource builds the built-in catalog source.
func NewStaticSource() Source {
	return &staticSource{catalogs: map[string]Catalog{
		FormTexasStandard: texasStandardCatalog(),
		FormHarrisCounty:  harrisCountyCatalog(),
		FormOklahoma:      oklahomaCatalog(),
		FormGeorgia:       georgiaCatalog(),
	}}
}

func (s *staticSource) Catalog(formID string) (Catalog, error) {
	catalog, ok := s.catalogs[formID]
	if !ok {
		return Catalog{}, formdomain.ErrTemplateUnavailable
	}
	return catalog, nil
}

func fieldSet(fields ...string) map[string]bool {
	set := make(map[string]bool, len(fields))
	for _, field := range fields {
		set[field] = true
	}
	return set
}

func texasStandardCatalog() Catalog {
	fields := fieldSet(
		"owner_name",
		"owner_address",
		"owner_city_state_zip",
		"owner_phone",
		"contact_name",
		"tax_year",
		"location_county",
		"line_inventory_value",
		"line_supplies_value",
		"line_ffe_value",
		"line_machinery_value",
		"line_computers_value",
		"line_vehicles_value",
		"line_leasehold_value",
		"total_market_value",
		"exempt_check",
		"net_taxable_value",
		"related_entity_check",
		"elect_not_render_check",
	)
	return Catalog{FormID: FormTexasStandard, Fields: fields}
}

func harrisCountyCatalog() Catalog {
	// The 2024 Harris revision dropped the contact/phone block from the
	// owner header; writes to those fields are expected to skip.
	fields := fieldSet(
		"owner_name",
		"owner_address",
		"owner_city_state_zip",
		"tax_year",
		"grand_total_value",
		"sec_inventory_cost",
		"sec_inventory_value",
	)
	sections := []string{"computers", "furniture", "machinery", "vehicles", "leasehold"}
	for _, section := range sections {
		for row := 1; row <= harrisRowCapacity; row++ {
			fields[fmt.Sprintf("sec_%s_row%d_year", section, row)] = true
			fields[fmt.Sprintf("sec_%s_row%d_cost", section, row)] = true
			fields[fmt.Sprintf("sec_%s_row%d_value", section, row)] = true
		}
		fields[fmt.Sprintf("sec_%s_total_value", section)] = true
	}
	return Catalog{FormID: FormHarrisCounty, Fields: fields}
}

const harrisRowCapacity = 4

// HarrisRowCapacity is the per-section row budget of the Harris layout.
func HarrisRowCapacity() int { return harrisRowCapacity }

func oklahomaCatalog() Catalog {
	fields := fieldSet(
		"owner_name",
		"owner_address",
		"owner_city_state_zip",
		"owner_phone",
		"tax_year",
		"grand_total_cost",
		"grand_total_value",
	)
	sections := []string{
		"computer_equipment",
		"furniture_fixtures",
		"machinery_equipment",
		"office_equipment",
		"vehicles",
		"leasehold_improvements",
		"tools",
		"inventory",
		"supplies",
	}
	for _, section := range sections {
		for row := 1; row <= oklahomaRowCapacity; row++ {
			fields[fmt.Sprintf("sec_%s_row%d_year", section, row)] = true
			fields[fmt.Sprintf("sec_%s_row%d_cost", section, row)] = true
			fields[fmt.Sprintf("sec_%s_row%d_value", section, row)] = true
		}
		fields[fmt.Sprintf("sec_%s_subtotal_value", section)] = true
	}
	return Catalog{FormID: FormOklahoma, Fields: fields}
}

const oklahomaRowCapacity = 5

// OklahomaRowCapacity is the per-section row budget of the OTC 901 layout.
func OklahomaRowCapacity() int { return oklahomaRowCapacity }

func georgiaCatalog() Catalog {
	fields := fieldSet(
		"owner_name",
		"owner_address",
		"owner_city_state_zip",
		"tax_year",
		"grand_total_value",
	)
	for _, group := range []string{"group1", "group2", "group3"} {
		for row := 1; row <= georgiaYearWindow; row++ {
			fields[fmt.Sprintf("grid_%s_y%d_cost", group, row)] = true
			fields[fmt.Sprintf("grid_%s_y%d_value", group, row)] = true
		}
		fields[fmt.Sprintf("grid_%s_total_value", group)] = true
	}
	return Catalog{FormID: FormGeorgia, Fields: fields}
}

const georgiaYearWindow = 8

// GeorgiaYearWindow is the calendar-year row count of the PT-50P grid.
// Row 1 is the tax year; the last row absorbs everything older.
func GeorgiaYearWindow() int { return georgiaYearWindow }
