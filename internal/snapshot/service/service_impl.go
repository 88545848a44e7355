package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	"github.com/propworks/rendition/internal/config"
	"github.com/propworks/rendition/internal/observability/metrics"
	snapshotdomain "github.com/propworks/rendition/internal/snapshot/domain"
	"github.com/propworks/rendition/pkg/db"
	"github.com/propworks/rendition/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Config  config.Config
	Assets  assetdomain.Source
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	assets    assetdomain.Source
	metrics   *metrics.Metrics
	chunkSize int

	snapshots repository.Repository[snapshotdomain.Snapshot]
}

func NewService(p ServiceParam) snapshotdomain.Service {
	chunkSize := p.Config.SnapshotBatchSize
	if chunkSize <= 0 {
		chunkSize = 500
	}
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("snapshot.service"),
		genID:     p.GenID,
		assets:    p.Assets,
		metrics:   p.Metrics,
		chunkSize: chunkSize,
		snapshots: repository.ProvideStore[snapshotdomain.Snapshot](p.DB),
	}
}

func (s *Service) ListForYear(ctx context.Context, locationID snowflake.ID, taxYear int) ([]snapshotdomain.Snapshot, error) {
	rows, err := s.snapshots.Find(ctx, &snapshotdomain.Snapshot{
		LocationID: locationID,
		TaxYear:    taxYear,
	})
	if err != nil {
		return nil, err
	}

	out := make([]snapshotdomain.Snapshot, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		out = append(out, *row)
	}
	return out, nil
}

func (s *Service) RollForward(ctx context.Context, firmID snowflake.ID, locationIDs []snowflake.ID, taxYear int) (*snapshotdomain.RolloverRun, error) {
	if taxYear < 1900 {
		return nil, snapshotdomain.ErrInvalidTargetYear
	}
	if len(locationIDs) == 0 {
		return nil, snapshotdomain.ErrNoLocations
	}

	run := snapshotdomain.RolloverRun{
		ID:        s.genID.Generate(),
		FirmID:    firmID,
		TaxYear:   taxYear,
		CreatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The run row is the atomic guard: two concurrent rollovers for
		// the same (firm, year) race on the unique index and the loser
		// gets a conflict, not duplicate snapshots.
		if err := tx.Create(&run).Error; err != nil {
			if db.IsDuplicateKeyErr(err) {
				return snapshotdomain.ErrAlreadyRolled
			}
			return err
		}

		store := s.snapshots.WithTrx(tx)
		total := 0
		for _, locationID := range locationIDs {
			assets, err := s.assets.ListByLocation(ctx, locationID)
			if err != nil {
				return err
			}

			batch := make([]*snapshotdomain.Snapshot, 0, len(assets))
			for _, asset := range assets {
				frozen := snapshotdomain.FromAsset(s.genID.Generate(), asset, taxYear)
				batch = append(batch, &frozen)
			}
			if err := store.BatchCreate(ctx, batch, s.chunkSize); err != nil {
				return err
			}
			total += len(batch)
		}

		run.SnapshotCount = total
		return tx.Model(&snapshotdomain.RolloverRun{}).
			Where("id = ?", run.ID).
			Update("snapshot_count", total).Error
	})
	if err != nil {
		if err == snapshotdomain.ErrAlreadyRolled && s.metrics != nil {
			s.metrics.RolloverConflicts.Inc()
		}
		return nil, err
	}

	s.log.Info("rollover complete",
		zap.String("firm_id", firmID.String()),
		zap.Int("tax_year", taxYear),
		zap.Int("snapshots", run.SnapshotCount),
	)
	return &run, nil
}
