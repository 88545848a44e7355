package form

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	formdomain "github.com/propworks/rendition/internal/form/domain"
	"github.com/propworks/rendition/internal/form/template"
	"github.com/propworks/rendition/internal/jurisdiction"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	resolver, err := NewResolver(zap.NewNop())
	require.NoError(t, err)
	return resolver
}

func TestResolveStatewideForms(t *testing.T) {
	resolver := newTestResolver(t)
	value := decimal.NewFromInt(50_000)

	cases := []struct {
		jurisdiction string
		sub          string
		formID       string
	}{
		{jurisdiction.CodeTexas, "", template.FormTexasStandard},
		{jurisdiction.CodeTexas, "Travis", template.FormTexasStandard},
		{jurisdiction.CodeOklahoma, "Tulsa", template.FormOklahoma},
		{jurisdiction.CodeGeorgia, "Fulton", template.FormGeorgia},
	}
	for _, tc := range cases {
		strategy, err := resolver.Resolve(tc.jurisdiction, tc.sub, value)
		require.NoError(t, err, tc.jurisdiction)
		assert.Equal(t, tc.formID, strategy.ID())
	}
}

func TestResolveHarrisCountyOverride(t *testing.T) {
	resolver := newTestResolver(t)
	value := decimal.NewFromInt(50_000)

	for _, sub := range []string{"Harris", "harris", " Harris County "} {
		strategy, err := resolver.Resolve(jurisdiction.CodeTexas, sub, value)
		require.NoError(t, err, sub)
		assert.Equal(t, template.FormHarrisCounty, strategy.ID())
	}

	// Other Texas counties fall back to the statewide layout.
	strategy, err := resolver.Resolve(jurisdiction.CodeTexas, "Harrison", value)
	require.NoError(t, err)
	assert.Equal(t, template.FormTexasStandard, strategy.ID())
}

func TestResolveUnsupportedJurisdiction(t *testing.T) {
	resolver := newTestResolver(t)

	_, err := resolver.Resolve("US_ZZ", "", decimal.Zero)
	assert.ErrorIs(t, err, formdomain.ErrUnsupportedJurisdiction)
}
