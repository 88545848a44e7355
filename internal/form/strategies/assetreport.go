package strategies

import (
	"fmt"
	"sort"

	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	formdomain "github.com/propworks/rendition/internal/form/domain"
	"github.com/propworks/rendition/internal/form/format"
	"github.com/propworks/rendition/internal/form/template"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
)

// AssetReport is the supporting itemization attached behind a rendition:
// every asset line, grouped by category, newest acquisitions first. It has
// no template catalog; the layout is ours.
type AssetReport struct{}

func NewAssetReport() *AssetReport { return &AssetReport{} }

func (a *AssetReport) ID() string { return template.FormAssetReport }

func (a *AssetReport) DisplayName() string {
	return "Asset Detail Report"
}

func (a *AssetReport) Fill(owner renditiondomain.OwnerInfo, result calcdomain.CalculationResult) (formdomain.Document, error) {
	m := newDoc()
	addTitle(m, "Asset Detail Report", fmt.Sprintf("Tax year %s", format.Year(result.TaxYear)))
	addOwnerBlock(m, owner, format.Year(result.TaxYear))

	byCategory := make(map[assetdomain.Category][]calcdomain.AssetCalculation)
	for _, line := range result.Assets {
		byCategory[line.Category] = append(byCategory[line.Category], line)
	}

	for _, category := range assetdomain.Categories {
		lines := byCategory[category]
		if len(lines) == 0 {
			continue
		}
		sort.SliceStable(lines, func(i, j int) bool {
			return lines[i].AcquisitionYear > lines[j].AcquisitionYear
		})

		summary := result.Category(category)
		addSectionHeader(m, fmt.Sprintf("%s (%d assets)", category.DisplayName(), len(lines)))
		for _, line := range lines {
			label := line.Description
			if label == "" {
				label = fmt.Sprintf("Asset %s", line.AssetID)
			}
			if line.Quantity > 1 {
				label = fmt.Sprintf("%s x%d", label, line.Quantity)
			}
			detail := fmt.Sprintf("%s, acquired %s, cost %s, %s%% good",
				label, format.Year(line.AcquisitionYear),
				format.WholeDollars(line.EffectiveCost), line.PercentGood.StringFixed(0))
			if line.IsOverridden && line.OriginalDepreciatedValue != nil {
				detail += fmt.Sprintf(", override (was %s)", format.WholeDollars(*line.OriginalDepreciatedValue))
			}
			if line.Leased {
				detail += ", leased"
			}
			addLine(m, detail, format.WholeDollars(line.DepreciatedValue))
		}
		if summary != nil {
			addBoldLine(m, "Category subtotal", format.WholeDollars(summary.DepreciatedValue))
		}
	}

	addBoldLine(m, fmt.Sprintf("Grand total (%d assets)", result.Totals.AssetCount),
		format.WholeDollars(result.Totals.DepreciatedValue))

	if len(result.Warnings) > 0 {
		addSectionHeader(m, "Schedule warnings")
		for _, warning := range result.Warnings {
			addLine(m, warning.Message, "")
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return formdomain.Document{}, err
	}

	return formdomain.Document{
		Bytes:       doc.GetBytes(),
		DisplayName: documentName(result.TaxYear, "Asset_Detail", owner.Name),
	}, nil
}
