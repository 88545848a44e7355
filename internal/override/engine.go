// Package override applies manual FMV corrections to a calculation result
// and re-derives every aggregate deterministically.
package override

import (
	"fmt"

	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	overridedomain "github.com/propworks/rendition/internal/override/domain"
)

// Apply lays the override map over a calculation result.
//
// The input result is never mutated: overrides work on a deep copy so the
// pre-override numbers stay available for audit. Every category summary,
// year subgroup, and grand total is recomputed from scratch by refolding
// the full asset list; aggregates are never patched with deltas. The whole
// batch validates before anything is touched — one bad entry rejects all.
func Apply(result calcdomain.CalculationResult, overrides overridedomain.Map) (calcdomain.CalculationResult, error) {
	if len(overrides) == 0 {
		return result, nil
	}

	known := make(map[string]int, len(result.Assets))
	for i, line := range result.Assets {
		known[line.AssetID.String()] = i
	}

	for assetID, entry := range overrides {
		if err := entry.Validate(); err != nil {
			return calcdomain.CalculationResult{}, fmt.Errorf("override for asset %s: %w", assetID, err)
		}
		if _, ok := known[assetID]; !ok {
			return calcdomain.CalculationResult{}, fmt.Errorf("override for asset %s: %w", assetID, overridedomain.ErrUnknownAsset)
		}
	}

	out := result.Clone()
	for assetID, entry := range overrides {
		line := &out.Assets[known[assetID]]

		original := line.DepreciatedValue
		value := entry.Value.Round(2)

		line.OriginalDepreciatedValue = &original
		line.OverrideValue = &value
		line.DepreciatedValue = value
		line.IsOverridden = true
	}

	out.Categories, out.Totals = calcdomain.FoldAssets(out.Assets)
	if out.Exemption != nil {
		out.Exemption.Recompute(out.Totals.DepreciatedValue)
	}
	return out, nil
}
