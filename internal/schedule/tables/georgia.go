package tables

import (
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
)

// Georgia percent-good table, transcribed from the PT-50P composite
// conversion factors. Values carry the published half-percent precision.
var georgia = jurisdictionTable{
	provenance: Provenance{
		SourceDoc:  "Georgia DOR PT-50P Composite Conversion Factors",
		SourceYear: 2025,
	},
	categories: map[assetdomain.Category][]string{
		assetdomain.CategoryComputerEquipment: {
			"86.5", "70", "53.5", "36", "24.5", "19",
		},
		assetdomain.CategoryFurnitureFixtures: {
			"94", "88.5", "82", "75.5", "69", "62", "55", "47.5", "40", "32.5",
		},
		assetdomain.CategoryMachineryEquipment: {
			"91", "83.5", "76", "68.5", "61", "53.5", "46", "38.5", "31.5", "25",
		},
		assetdomain.CategoryOfficeEquipment: {
			"89", "78", "67.5", "57", "47", "37.5", "29", "23.5",
		},
		assetdomain.CategoryVehicles: {
			"84", "70", "58", "48", "39.5", "32.5", "26.5", "21.5",
		},
		assetdomain.CategoryLeaseholdImprovements: {
			"96.5", "92", "87.5", "82.5", "77.5", "72", "66.5", "60.5", "54.5", "48.5",
		},
		assetdomain.CategoryTools: {
			"88.5", "73", "58", "44", "33.5", "28.5",
		},
	},
}
