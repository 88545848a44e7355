package service

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	"github.com/propworks/rendition/internal/jurisdiction"
	scheduledomain "github.com/propworks/rendition/internal/schedule/domain"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return &Service{log: zap.NewNop(), genID: node}
}

func TestPercentGoodLookup(t *testing.T) {
	svc := newTestService(t)

	pct, warning, err := svc.PercentGood(jurisdiction.CodeTexas, assetdomain.CategoryComputerEquipment, 3)
	require.NoError(t, err)
	assert.Nil(t, warning)
	assert.True(t, pct.Equal(decimal.NewFromInt(52)), "year 3 computers should be 52, got %s", pct)
}

func TestPercentGoodClampsToFloor(t *testing.T) {
	svc := newTestService(t)

	floor, _, err := svc.PercentGood(jurisdiction.CodeTexas, assetdomain.CategoryComputerEquipment, 6)
	require.NoError(t, err)

	for _, yearOfLife := range []int{7, 9, 25, 100} {
		pct, warning, err := svc.PercentGood(jurisdiction.CodeTexas, assetdomain.CategoryComputerEquipment, yearOfLife)
		require.NoError(t, err)
		assert.Nil(t, warning)
		assert.True(t, pct.Equal(floor), "year %d should clamp to floor %s, got %s", yearOfLife, floor, pct)
	}
}

func TestPercentGoodInvalidYearOfLife(t *testing.T) {
	svc := newTestService(t)

	for _, yearOfLife := range []int{0, -1} {
		_, _, err := svc.PercentGood(jurisdiction.CodeTexas, assetdomain.CategoryComputerEquipment, yearOfLife)
		assert.ErrorIs(t, err, scheduledomain.ErrInvalidYearOfLife)
	}
}

func TestPercentGoodInventoryAndSuppliesFullValue(t *testing.T) {
	svc := newTestService(t)

	for _, category := range []assetdomain.Category{assetdomain.CategoryInventory, assetdomain.CategorySupplies} {
		for _, yearOfLife := range []int{1, 5, 30} {
			pct, warning, err := svc.PercentGood(jurisdiction.CodeTexas, category, yearOfLife)
			require.NoError(t, err)
			assert.Nil(t, warning)
			assert.True(t, pct.Equal(decimal.NewFromInt(100)), "%s never depreciates", category)
		}
	}
}

func TestPercentGoodUnknownJurisdiction(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.PercentGood("US_ZZ", assetdomain.CategoryComputerEquipment, 1)
	assert.ErrorIs(t, err, scheduledomain.ErrNoScheduleForJurisdiction)
}

func TestPercentGoodMissingCategoryFailsOpen(t *testing.T) {
	svc := newTestService(t)

	// An unrecognized category has no row anywhere; the lookup values it
	// at 100% and surfaces a warning instead of failing.
	pct, warning, err := svc.PercentGood(jurisdiction.CodeTexas, assetdomain.Category("signage"), 4)
	require.NoError(t, err)
	require.NotNil(t, warning)
	assert.Equal(t, scheduledomain.WarnCategoryScheduleMissing, warning.Code)
	assert.Equal(t, jurisdiction.CodeTexas, warning.Jurisdiction)
	assert.True(t, pct.Equal(decimal.NewFromInt(100)))
}

func TestEntriesCarryProvenance(t *testing.T) {
	svc := newTestService(t)

	entries := svc.Entries(jurisdiction.CodeTexas)
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.Equal(t, jurisdiction.CodeTexas, entry.Jurisdiction)
		assert.NotEmpty(t, entry.SourceDoc)
		assert.NotZero(t, entry.SourceYear)
		assert.GreaterOrEqual(t, entry.YearOfLife, 1)
	}

	assert.Empty(t, svc.Entries("US_ZZ"))
}
