package strategies

import (
	"fmt"

	"github.com/shopspring/decimal"
	formdomain "github.com/propworks/rendition/internal/form/domain"
	"github.com/propworks/rendition/internal/form/format"
)

// RenderCoverSheet builds the summary page that fronts a batch of
// generated renditions. It is not a Strategy: its input is the batch, not
// a single calculation.
func RenderCoverSheet(batch formdomain.BatchSummary) (formdomain.Document, error) {
	m := newDoc()
	addTitle(m, "Rendition Batch Summary", fmt.Sprintf("Tax year %s  •  Batch %s", format.Year(batch.TaxYear), batch.BatchID))

	addSectionHeader(m, fmt.Sprintf("Renditions (%d generated, %d failed)", batch.Succeeded(), batch.Failed()))

	total := decimal.Zero
	taxable := decimal.Zero
	for _, item := range batch.Items {
		if item.Error != "" {
			addLine(m, fmt.Sprintf("%s — %s — FAILED: %s", item.OwnerName, item.Jurisdiction, item.Error), "")
			continue
		}
		label := fmt.Sprintf("%s — %s — %s", item.OwnerName, item.Jurisdiction, item.FormName)
		if item.Exempt {
			label += " (exempt)"
		}
		addLine(m, label, format.WholeDollars(item.TotalValue))
		total = total.Add(item.TotalValue)
		taxable = taxable.Add(item.NetTaxableValue)
	}

	addBoldLine(m, "Combined market value", format.WholeDollars(total))
	addBoldLine(m, "Combined net taxable value", format.WholeDollars(taxable))

	doc, err := m.Generate()
	if err != nil {
		return formdomain.Document{}, err
	}

	return formdomain.Document{
		Bytes:       doc.GetBytes(),
		DisplayName: fmt.Sprintf("%d_Batch_Summary_%s.pdf", batch.TaxYear, batch.BatchID),
	}, nil
}
