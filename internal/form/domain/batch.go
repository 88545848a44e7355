package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchItem is the per-rendition row of a batch run.
type BatchItem struct {
	RenditionID     string          `json:"renditionId"`
	OwnerName       string          `json:"ownerName"`
	Jurisdiction    string          `json:"jurisdiction"`
	FormName        string          `json:"formName"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	NetTaxableValue decimal.Decimal `json:"netTaxableValue"`
	Exempt          bool            `json:"exempt"`
	Error           string          `json:"error,omitempty"`
}

// BatchSummary aggregates one document-generation batch for the cover
// sheet and the API response. Failed items stay in the list with their
// error; the batch itself never aborts.
type BatchSummary struct {
	BatchID     string      `json:"batchId"`
	TaxYear     int         `json:"taxYear"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Items       []BatchItem `json:"items"`
}

// Succeeded counts the items that produced a document.
func (b BatchSummary) Succeeded() int {
	n := 0
	for _, item := range b.Items {
		if item.Error == "" {
			n++
		}
	}
	return n
}

// Failed counts the items that did not produce a document.
func (b BatchSummary) Failed() int {
	return len(b.Items) - b.Succeeded()
}
