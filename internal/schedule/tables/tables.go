// Package tables holds the transcribed percent-good schedules, one file per
// jurisdiction. The data is declarative input to the lookup service; adding a
// jurisdiction means adding a file, not touching the algorithm.
package tables

import (
	"github.com/shopspring/decimal"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	"github.com/propworks/rendition/internal/jurisdiction"
)

// Provenance records the published document a table was transcribed from.
type Provenance struct {
	SourceDoc  string
	SourceYear int
}

type jurisdictionTable struct {
	provenance Provenance
	// index 0 holds year-of-life 1; the last value is the floor.
	categories map[assetdomain.Category][]string
}

var byJurisdiction = map[string]jurisdictionTable{
	jurisdiction.CodeTexas:    texas,
	jurisdiction.CodeOklahoma: oklahoma,
	jurisdiction.CodeGeorgia:  georgia,
}

// ForJurisdiction returns the parsed schedule for a jurisdiction code.
func ForJurisdiction(code string) (map[assetdomain.Category][]decimal.Decimal, Provenance, bool) {
	table, ok := byJurisdiction[code]
	if !ok {
		return nil, Provenance{}, false
	}

	parsed := make(map[assetdomain.Category][]decimal.Decimal, len(table.categories))
	for category, values := range table.categories {
		row := make([]decimal.Decimal, 0, len(values))
		for _, value := range values {
			row = append(row, decimal.RequireFromString(value))
		}
		parsed[category] = row
	}
	return parsed, table.provenance, true
}

// Jurisdictions lists every code with a transcribed table.
func Jurisdictions() []string {
	return []string{
		jurisdiction.CodeTexas,
		jurisdiction.CodeOklahoma,
		jurisdiction.CodeGeorgia,
	}
}
