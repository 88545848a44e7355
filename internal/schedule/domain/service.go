package domain

import (
	"github.com/shopspring/decimal"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
)

// Table resolves percent-good values for the calculator.
type Table interface {
	// PercentGood resolves (jurisdiction, category, yearOfLife).
	// Years beyond the table's maximum clamp to the floor value.
	// A category with no schedule fails open to 100 and returns a warning.
	// A jurisdiction with no rows at all returns ErrNoScheduleForJurisdiction.
	PercentGood(jurisdiction string, category assetdomain.Category, yearOfLife int) (decimal.Decimal, *Warning, error)

	// Entries lists every row for a jurisdiction, for seeding and reporting.
	Entries(jurisdiction string) []Entry
}
