// Package exemption encodes statutory threshold relief. One rule per
// jurisdiction, gated by the first tax year the statute applies.
package exemption

import (
	"github.com/shopspring/decimal"
	"github.com/propworks/rendition/internal/jurisdiction"
)

// Rule is a threshold exemption on grand total depreciated value.
type Rule struct {
	Jurisdiction string
	FirstTaxYear int
	Threshold    decimal.Decimal
}

var rules = []Rule{
	{
		Jurisdiction: jurisdiction.CodeTexas,
		FirstTaxYear: 2025,
		Threshold:    decimal.NewFromInt(125_000),
	},
}

// ForJurisdiction returns the rule in effect for a jurisdiction and tax
// year, if any.
func ForJurisdiction(code string, taxYear int) (Rule, bool) {
	for _, rule := range rules {
		if rule.Jurisdiction == code && taxYear >= rule.FirstTaxYear {
			return rule, true
		}
	}
	return Rule{}, false
}

// Evaluate computes the exempt flag and net taxable value. Net taxable is
// always computed, exempt or not, and never goes below zero.
func (r Rule) Evaluate(grandTotal decimal.Decimal) (bool, decimal.Decimal) {
	net := grandTotal.Sub(r.Threshold)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return grandTotal.LessThanOrEqual(r.Threshold), net.Round(2)
}
