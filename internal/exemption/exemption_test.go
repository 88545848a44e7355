package exemption

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propworks/rendition/internal/jurisdiction"
)

func TestForJurisdiction(t *testing.T) {
	rule, ok := ForJurisdiction(jurisdiction.CodeTexas, 2025)
	require.True(t, ok)
	assert.True(t, rule.Threshold.Equal(decimal.NewFromInt(125_000)))

	_, ok = ForJurisdiction(jurisdiction.CodeTexas, 2024)
	assert.False(t, ok, "statute applies from 2025")

	_, ok = ForJurisdiction(jurisdiction.CodeOklahoma, 2025)
	assert.False(t, ok)
}

func TestEvaluate(t *testing.T) {
	rule, ok := ForJurisdiction(jurisdiction.CodeTexas, 2025)
	require.True(t, ok)

	cases := []struct {
		name       string
		total      string
		exempt     bool
		netTaxable string
	}{
		{"under threshold", "98450.00", true, "0"},
		{"exactly at threshold", "125000.00", true, "0"},
		{"over threshold", "140000.00", false, "15000.00"},
		{"one cent over", "125000.01", false, "0.01"},
		{"zero", "0", true, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exempt, net := rule.Evaluate(decimal.RequireFromString(tc.total))
			assert.Equal(t, tc.exempt, exempt)
			assert.True(t, net.Equal(decimal.RequireFromString(tc.netTaxable)),
				"net taxable should be %s, got %s", tc.netTaxable, net)
		})
	}
}
