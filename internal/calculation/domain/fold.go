package domain

import (
	"sort"

	"github.com/shopspring/decimal"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
)

// FoldAssets rebuilds every aggregate from the per-asset lines. Aggregates
// are always re-derived from scratch, never patched incrementally, so
// repeated override edits cannot compound rounding drift.
//
// Per-asset depreciated values are already rounded to 2 decimals, and every
// aggregate is a sum of those rounded values. That makes the per-year,
// per-category, and grand totals agree exactly.
func FoldAssets(assets []AssetCalculation) ([]CategorySummary, Totals) {
	type yearKey struct {
		category assetdomain.Category
		year     int
	}

	summaries := make(map[assetdomain.Category]*CategorySummary)
	years := make(map[yearKey]*YearGroup)
	totals := Totals{
		OriginalCost:     decimal.Zero,
		DepreciatedValue: decimal.Zero,
	}

	for i := range assets {
		line := &assets[i]

		summary, ok := summaries[line.Category]
		if !ok {
			summary = &CategorySummary{
				Category:         line.Category,
				OriginalCost:     decimal.Zero,
				DepreciatedValue: decimal.Zero,
			}
			summaries[line.Category] = summary
		}
		summary.Count++
		summary.OriginalCost = summary.OriginalCost.Add(line.EffectiveCost)
		summary.DepreciatedValue = summary.DepreciatedValue.Add(line.DepreciatedValue)

		key := yearKey{category: line.Category, year: line.AcquisitionYear}
		group, ok := years[key]
		if !ok {
			group = &YearGroup{
				Year:             line.AcquisitionYear,
				OriginalCost:     decimal.Zero,
				DepreciatedValue: decimal.Zero,
			}
			years[key] = group
		}
		group.Count++
		group.OriginalCost = group.OriginalCost.Add(line.EffectiveCost)
		group.DepreciatedValue = group.DepreciatedValue.Add(line.DepreciatedValue)

		totals.AssetCount++
		totals.OriginalCost = totals.OriginalCost.Add(line.EffectiveCost)
		totals.DepreciatedValue = totals.DepreciatedValue.Add(line.DepreciatedValue)
	}

	// Deterministic ordering: categories in enum order, years ascending.
	// Re-running the fold on identical inputs is bit-identical.
	out := make([]CategorySummary, 0, len(summaries))
	for _, category := range assetdomain.Categories {
		summary, ok := summaries[category]
		if !ok {
			continue
		}
		for key, group := range years {
			if key.category == category {
				rounded := *group
				rounded.OriginalCost = rounded.OriginalCost.Round(2)
				rounded.DepreciatedValue = rounded.DepreciatedValue.Round(2)
				summary.Years = append(summary.Years, rounded)
			}
		}
		sort.Slice(summary.Years, func(i, j int) bool {
			return summary.Years[i].Year < summary.Years[j].Year
		})
		summary.OriginalCost = summary.OriginalCost.Round(2)
		summary.DepreciatedValue = summary.DepreciatedValue.Round(2)
		out = append(out, *summary)
	}

	totals.OriginalCost = totals.OriginalCost.Round(2)
	totals.DepreciatedValue = totals.DepreciatedValue.Round(2)
	return out, totals
}
