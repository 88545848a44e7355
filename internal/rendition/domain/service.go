package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	overridedomain "github.com/propworks/rendition/internal/override/domain"
)

// CreateRequest opens a rendition for a location and tax year.
type CreateRequest struct {
	FirmID     snowflake.ID
	LocationID snowflake.ID
	TaxYear    int
	State      string
	County     string
	Owner      OwnerInfo
}

// OwnerInfo is the filer metadata printed on every form.
type OwnerInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone"`
	Contact string `json:"contact"`
}

// Service owns the rendition lifecycle.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Rendition, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Rendition, error)

	// Recalculate reruns the calculator for the rendition's location and
	// tax year and stores the fresh base result. Rejected once filed.
	Recalculate(ctx context.Context, id snowflake.ID) (*Rendition, error)

	// ApplyOverrides validates and merges a batch of overrides. The whole
	// batch is rejected if any entry is invalid. Rejected once filed.
	ApplyOverrides(ctx context.Context, id snowflake.ID, entries overridedomain.Map) (*Rendition, error)

	// ClearOverrides removes the named overrides, or all when none named.
	ClearOverrides(ctx context.Context, id snowflake.ID, assetIDs []string) (*Rendition, error)

	// SetExemptionFlags records the filer-supplied exemption facts.
	SetExemptionFlags(ctx context.Context, id snowflake.ID, relatedEntity, electNotToFile bool) (*Rendition, error)

	// MarkFiled transitions READY → FILED, freezing the numbers.
	MarkFiled(ctx context.Context, id snowflake.ID) (*Rendition, error)

	// Effective decodes the stored base result, lays the stored overrides
	// on top, and stamps the filer-supplied exemption facts.
	Effective(rendition *Rendition) (calcdomain.CalculationResult, error)
}
