package strategies

import (
	"sort"

	"github.com/shopspring/decimal"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
)

// mergeYearGroups combines the per-year subgroups of several categories
// into one series, newest acquisition year first.
func mergeYearGroups(result calcdomain.CalculationResult, categories []assetdomain.Category) []calcdomain.YearGroup {
	byYear := make(map[int]*calcdomain.YearGroup)
	for _, category := range categories {
		summary := result.Category(category)
		if summary == nil {
			continue
		}
		for _, group := range summary.Years {
			merged, ok := byYear[group.Year]
			if !ok {
				merged = &calcdomain.YearGroup{
					Year:             group.Year,
					OriginalCost:     decimal.Zero,
					DepreciatedValue: decimal.Zero,
				}
				byYear[group.Year] = merged
			}
			merged.Count += group.Count
			merged.OriginalCost = merged.OriginalCost.Add(group.OriginalCost)
			merged.DepreciatedValue = merged.DepreciatedValue.Add(group.DepreciatedValue)
		}
	}

	out := make([]calcdomain.YearGroup, 0, len(byYear))
	for _, group := range byYear {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

// capYearRows fits year groups into a bounded row budget. The first
// capacity-1 rows itemize the newest years; everything older folds into the
// final catch-all row so totals never lose cost data.
func capYearRows(groups []calcdomain.YearGroup, capacity int) []calcdomain.YearGroup {
	if capacity <= 0 || len(groups) <= capacity {
		return groups
	}

	kept := make([]calcdomain.YearGroup, capacity)
	copy(kept, groups[:capacity-1])

	catchAll := calcdomain.YearGroup{
		Year:             groups[capacity-1].Year,
		OriginalCost:     decimal.Zero,
		DepreciatedValue: decimal.Zero,
	}
	for _, group := range groups[capacity-1:] {
		catchAll.Count += group.Count
		catchAll.OriginalCost = catchAll.OriginalCost.Add(group.OriginalCost)
		catchAll.DepreciatedValue = catchAll.DepreciatedValue.Add(group.DepreciatedValue)
	}
	kept[capacity-1] = catchAll
	return kept
}

// sumGroups totals cost and value across year groups.
func sumGroups(groups []calcdomain.YearGroup) (decimal.Decimal, decimal.Decimal) {
	cost := decimal.Zero
	value := decimal.Zero
	for _, group := range groups {
		cost = cost.Add(group.OriginalCost)
		value = value.Add(group.DepreciatedValue)
	}
	return cost, value
}
