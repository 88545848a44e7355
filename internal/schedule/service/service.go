package service

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	scheduledomain "github.com/propworks/rendition/internal/schedule/domain"
	"github.com/propworks/rendition/internal/schedule/tables"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var fullValue = decimal.NewFromInt(100)

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
}

// Service resolves percent-good values from the transcribed tables.
type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p ServiceParam) scheduledomain.Table {
	return &Service{
		log:   p.Log.Named("schedule.service"),
		genID: p.GenID,
	}
}

func (s *Service) PercentGood(jurisdiction string, category assetdomain.Category, yearOfLife int) (decimal.Decimal, *scheduledomain.Warning, error) {
	if yearOfLife < 1 {
		return decimal.Zero, nil, scheduledomain.ErrInvalidYearOfLife
	}

	// Inventory and supplies report at full value by policy, never lookup.
	if category.ReportsAtFullValue() {
		return fullValue, nil, nil
	}

	schedule, _, ok := tables.ForJurisdiction(jurisdiction)
	if !ok || len(schedule) == 0 {
		return decimal.Zero, nil, scheduledomain.ErrNoScheduleForJurisdiction
	}

	row, ok := schedule[category]
	if !ok || len(row) == 0 {
		// Fail open: an unknown category values at 100% rather than
		// silently zeroing. Surfaced as a warning, not an error.
		warning := &scheduledomain.Warning{
			Jurisdiction: jurisdiction,
			Category:     category,
			Code:         scheduledomain.WarnCategoryScheduleMissing,
			Message:      fmt.Sprintf("no %s schedule for %s, valued at 100%%", category, jurisdiction),
		}
		s.log.Warn("category schedule missing",
			zap.String("jurisdiction", jurisdiction),
			zap.String("category", string(category)),
		)
		return fullValue, warning, nil
	}

	// Depreciation stops at the published floor: years beyond the table
	// clamp to the last entry.
	index := yearOfLife - 1
	if index >= len(row) {
		index = len(row) - 1
	}
	return row[index], nil, nil
}

func (s *Service) Entries(jurisdiction string) []scheduledomain.Entry {
	schedule, provenance, ok := tables.ForJurisdiction(jurisdiction)
	if !ok {
		return nil
	}

	entries := make([]scheduledomain.Entry, 0, len(schedule)*8)
	for _, category := range assetdomain.Categories {
		row, ok := schedule[category]
		if !ok {
			continue
		}
		for i, percent := range row {
			entries = append(entries, scheduledomain.Entry{
				ID:           s.genID.Generate(),
				Jurisdiction: jurisdiction,
				Category:     category,
				YearOfLife:   i + 1,
				PercentGood:  percent,
				SourceDoc:    provenance.SourceDoc,
				SourceYear:   provenance.SourceYear,
			})
		}
	}
	return entries
}
