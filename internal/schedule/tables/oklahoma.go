package tables

import (
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
)

// Oklahoma percent-good table, transcribed from the OTC Form 901
// valuation schedule.
var oklahoma = jurisdictionTable{
	provenance: Provenance{
		SourceDoc:  "Oklahoma Tax Commission Form 901 Valuation Schedule",
		SourceYear: 2025,
	},
	categories: map[assetdomain.Category][]string{
		assetdomain.CategoryComputerEquipment: {
			"80", "62", "45", "30", "20", "15",
		},
		assetdomain.CategoryFurnitureFixtures: {
			"93", "86", "79", "72", "65", "58", "51", "44", "37", "30",
		},
		assetdomain.CategoryMachineryEquipment: {
			"90", "81", "73", "65", "57", "50", "43", "36", "30", "25",
		},
		assetdomain.CategoryOfficeEquipment: {
			"88", "76", "64", "53", "43", "34", "27", "22",
		},
		assetdomain.CategoryVehicles: {
			"82", "68", "56", "46", "38", "31", "25", "20",
		},
		assetdomain.CategoryLeaseholdImprovements: {
			"96", "91", "86", "81", "76", "70", "64", "58", "52", "46",
		},
		assetdomain.CategoryTools: {
			"87", "71", "56", "42", "32", "27",
		},
	},
}
