package tables

import (
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
)

// Texas percent-good table, transcribed from the comptroller's general
// business personal property depreciation guide. Inventory and supplies are
// deliberately absent: they report at 100% by policy, not lookup.
var texas = jurisdictionTable{
	provenance: Provenance{
		SourceDoc:  "Texas Comptroller BPP Depreciation Guide",
		SourceYear: 2025,
	},
	categories: map[assetdomain.Category][]string{
		assetdomain.CategoryComputerEquipment: {
			"85", "69", "52", "34", "23", "18",
		},
		assetdomain.CategoryFurnitureFixtures: {
			"95", "90", "84", "78", "71", "64", "57", "49", "41", "33",
		},
		assetdomain.CategoryMachineryEquipment: {
			"92", "85", "78", "70", "63", "55", "48", "40", "33", "26",
		},
		assetdomain.CategoryOfficeEquipment: {
			"90", "80", "70", "60", "50", "40", "30", "25",
		},
		assetdomain.CategoryVehicles: {
			"85", "71", "59", "49", "40", "33", "27", "22",
		},
		assetdomain.CategoryLeaseholdImprovements: {
			"97", "93", "89", "84", "79", "74", "68", "62", "56", "50",
		},
		assetdomain.CategoryTools: {
			"90", "75", "60", "45", "35", "30",
		},
	},
}
