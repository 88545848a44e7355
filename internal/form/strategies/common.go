// Package strategies implements one form layout per file. Strategies place
// already-computed values onto named fields and render the filled layout;
// no arithmetic beyond sums of lines already present in the result.
package strategies

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
)

func newDoc() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

func addTitle(m core.Maroto, title, subtitle string) {
	m.AddRow(12,
		text.NewCol(12, title, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	if subtitle != "" {
		m.AddRow(8,
			text.NewCol(12, subtitle, props.Text{
				Size:  10,
				Align: align.Center,
			}),
		)
	}
}

func addOwnerBlock(m core.Maroto, owner renditiondomain.OwnerInfo, taxYear string) {
	m.AddRow(28,
		col.New(8).Add(
			text.New("Owner", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(owner.Name, props.Text{Top: 5, Size: 9}),
			text.New(owner.Address, props.Text{Top: 10, Size: 9}),
			text.New(cityStateZip(owner), props.Text{Top: 15, Size: 9}),
		),
		col.New(4).Add(
			text.New("Tax year", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(taxYear, props.Text{Top: 5, Size: 12, Style: fontstyle.Bold}),
		),
	)
}

func addSectionHeader(m core.Maroto, label string) {
	m.AddRow(9,
		text.NewCol(12, label, props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Top:   2,
		}),
	)
}

func addLine(m core.Maroto, label, value string) {
	m.AddRow(7,
		text.NewCol(8, label, props.Text{Size: 9}),
		text.NewCol(4, value, props.Text{Size: 9, Align: align.Right}),
	)
}

func addBoldLine(m core.Maroto, label, value string) {
	m.AddRow(8,
		text.NewCol(8, label, props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(4, value, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
}

func cityStateZip(owner renditiondomain.OwnerInfo) string {
	parts := []string{}
	if strings.TrimSpace(owner.City) != "" {
		parts = append(parts, strings.TrimSpace(owner.City))
	}
	if strings.TrimSpace(owner.State) != "" {
		parts = append(parts, strings.TrimSpace(owner.State))
	}
	out := strings.Join(parts, ", ")
	if strings.TrimSpace(owner.Zip) != "" {
		out = strings.TrimSpace(out + " " + owner.Zip)
	}
	return out
}

func documentName(taxYear int, formLabel, ownerName string) string {
	return fmt.Sprintf("%d_%s_%s.pdf", taxYear, formLabel, sanitizeName(ownerName))
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "owner"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "owner"
	}
	return b.String()
}

func checkbox(checked bool) string {
	if checked {
		return "X"
	}
	return ""
}
