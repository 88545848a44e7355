// Package format renders values the way paper forms expect them.
package format

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// WholeDollars renders a currency amount as the nearest whole dollar,
// comma-grouped, no decimals. Internal computation keeps cents; forms
// never show them.
func WholeDollars(value decimal.Decimal) string {
	rounded := value.Round(0)
	raw := rounded.StringFixed(0)

	negative := strings.HasPrefix(raw, "-")
	digits := strings.TrimPrefix(raw, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if negative {
		out = "-" + out
	}
	return out
}

// Cents renders a currency amount with two decimals for narrative output.
func Cents(value decimal.Decimal) string {
	return value.StringFixed(2)
}

// Year renders a calendar year.
func Year(year int) string {
	return strconv.Itoa(year)
}
