// Package seed loads the reference schedule tables into the database on
// startup. Seeding is idempotent: rows already present are left alone.
package seed

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	scheduledomain "github.com/propworks/rendition/internal/schedule/domain"
	"github.com/propworks/rendition/internal/schedule/tables"
)

const seedChunkSize = 100

// EnsureScheduleEntries inserts every transcribed schedule row that is not
// already present, keyed on (jurisdiction, category, year_of_life).
func EnsureScheduleEntries(db *gorm.DB, table scheduledomain.Table, log *zap.Logger) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, jurisdiction := range tables.Jurisdictions() {
			entries := table.Entries(jurisdiction)
			if len(entries) == 0 {
				continue
			}
			err := tx.
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "jurisdiction"}, {Name: "category"}, {Name: "year_of_life"}},
					DoNothing: true,
				}).
				CreateInBatches(entries, seedChunkSize).Error
			if err != nil {
				return err
			}
			log.Info("schedule seeded",
				zap.String("jurisdiction", jurisdiction),
				zap.Int("entries", len(entries)),
			)
		}
		return nil
	})
}
