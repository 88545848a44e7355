package strategies

import (
	"fmt"

	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	formdomain "github.com/propworks/rendition/internal/form/domain"
	"github.com/propworks/rendition/internal/form/format"
	"github.com/propworks/rendition/internal/form/template"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
)

// ExemptionCert is the short certification filed in place of a full
// rendition when the owner is under threshold and elects not to file.
type ExemptionCert struct{}

func NewExemptionCert() *ExemptionCert { return &ExemptionCert{} }

func (e *ExemptionCert) ID() string { return template.FormExemptionCert }

func (e *ExemptionCert) DisplayName() string {
	return "Exemption Certification"
}

func (e *ExemptionCert) Fill(owner renditiondomain.OwnerInfo, result calcdomain.CalculationResult) (formdomain.Document, error) {
	if result.Exemption == nil || !result.Exemption.IsExempt {
		return formdomain.Document{}, fmt.Errorf("exemption certification requires an exempt result")
	}

	m := newDoc()
	addTitle(m, "Business Personal Property Exemption Certification", fmt.Sprintf("Tax year %s", format.Year(result.TaxYear)))
	addOwnerBlock(m, owner, format.Year(result.TaxYear))

	addSectionHeader(m, "Certification")
	addLine(m, "Total market value of business personal property", format.WholeDollars(result.Totals.DepreciatedValue))
	addLine(m, "Statutory exemption threshold", format.WholeDollars(result.Exemption.Threshold))
	addLine(m, "Net taxable value", format.WholeDollars(result.Exemption.NetTaxableValue))
	addLine(m, "Values aggregated across related entities", checkbox(result.Exemption.RelatedEntityAggregation))
	addLine(m, "Owner elects not to file a full rendition", checkbox(result.Exemption.ElectNotToFile))

	addSectionHeader(m, "Statement")
	addLine(m, fmt.Sprintf(
		"The owner certifies that the total market value of business personal property at this location for tax year %s does not exceed the statutory exemption threshold of %s.",
		format.Year(result.TaxYear), format.WholeDollars(result.Exemption.Threshold)), "")

	doc, err := m.Generate()
	if err != nil {
		return formdomain.Document{}, err
	}

	return formdomain.Document{
		Bytes:       doc.GetBytes(),
		DisplayName: documentName(result.TaxYear, "Exemption_Cert", owner.Name),
	}, nil
}
