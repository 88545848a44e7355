// Package form selects the paper-form strategy for a rendition. Selection
// is jurisdiction plus sub-jurisdiction; counties with bespoke layouts
// override the statewide form.
package form

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	formdomain "github.com/propworks/rendition/internal/form/domain"
	"github.com/propworks/rendition/internal/form/strategies"
	"github.com/propworks/rendition/internal/form/template"
	"github.com/propworks/rendition/internal/jurisdiction"
)

// Resolver hands out form strategies. Strategies are stateless and built
// once against the static template catalogs.
type Resolver struct {
	log *zap.Logger

	texas    *strategies.TexasStandard
	harris   *strategies.HarrisCounty
	oklahoma *strategies.Oklahoma
	georgia  *strategies.Georgia

	assetReport   *strategies.AssetReport
	exemptionCert *strategies.ExemptionCert
}

func NewResolver(log *zap.Logger) (*Resolver, error) {
	src := template.NewStaticSource()

	texas, err := strategies.NewTexasStandard(src)
	if err != nil {
		return nil, err
	}
	harris, err := strategies.NewHarrisCounty(src)
	if err != nil {
		return nil, err
	}
	oklahoma, err := strategies.NewOklahoma(src)
	if err != nil {
		return nil, err
	}
	georgia, err := strategies.NewGeorgia(src)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		log:           log.Named("form.resolver"),
		texas:         texas,
		harris:        harris,
		oklahoma:      oklahoma,
		georgia:       georgia,
		assetReport:   strategies.NewAssetReport(),
		exemptionCert: strategies.NewExemptionCert(),
	}, nil
}

// Resolve picks the strategy for a jurisdiction and sub-jurisdiction.
// assessedValue is part of the contract so value-dependent form variants
// can be added without changing callers; no current variant uses it.
func (r *Resolver) Resolve(code, subJurisdiction string, assessedValue decimal.Decimal) (formdomain.Strategy, error) {
	_ = assessedValue

	switch code {
	case jurisdiction.CodeTexas:
		if isHarrisCounty(subJurisdiction) {
			return r.harris, nil
		}
		return r.texas, nil
	case jurisdiction.CodeOklahoma:
		return r.oklahoma, nil
	case jurisdiction.CodeGeorgia:
		return r.georgia, nil
	default:
		r.log.Warn("no form strategy for jurisdiction", zap.String("jurisdiction", code))
		return nil, formdomain.ErrUnsupportedJurisdiction
	}
}

// AssetReport returns the supporting itemization renderer.
func (r *Resolver) AssetReport() formdomain.Strategy { return r.assetReport }

// ExemptionCert returns the under-threshold certification renderer.
func (r *Resolver) ExemptionCert() formdomain.Strategy { return r.exemptionCert }

func isHarrisCounty(sub string) bool {
	switch strings.ToLower(strings.TrimSpace(sub)) {
	case "harris", "harris county":
		return true
	}
	return false
}
