package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	assetdomain "github.com/propworks/rendition/internal/asset/domain"
	"github.com/propworks/rendition/pkg/db/option"
	"github.com/propworks/rendition/pkg/repository"
	"gorm.io/gorm"
)

type assetRepository struct {
	db    *gorm.DB
	store repository.Repository[assetdomain.Asset]
}

// NewRepository builds the gorm-backed asset store.
func NewRepository(db *gorm.DB) assetdomain.Repository {
	return &assetRepository{
		db:    db,
		store: repository.ProvideStore[assetdomain.Asset](db),
	}
}

func (r *assetRepository) ListByLocation(ctx context.Context, locationID snowflake.ID) ([]assetdomain.Asset, error) {
	rows, err := r.store.Find(ctx,
		&assetdomain.Asset{LocationID: locationID},
		option.WithSortBy(option.QuerySortBy{
			Allow: map[string]bool{"acquisition_date": true},
			Field: "acquisition_date",
		}),
	)
	if err != nil {
		return nil, err
	}

	assets := make([]assetdomain.Asset, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		assets = append(assets, *row)
	}
	return assets, nil
}

func (r *assetRepository) Create(ctx context.Context, asset *assetdomain.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}
	return r.store.Create(ctx, asset)
}

func (r *assetRepository) FindByID(ctx context.Context, id snowflake.ID) (*assetdomain.Asset, error) {
	found, err := r.store.FindOne(ctx, &assetdomain.Asset{ID: id})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, assetdomain.ErrNotFound
	}
	return found, nil
}

func (r *assetRepository) Update(ctx context.Context, asset *assetdomain.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(asset).Error
}

func (r *assetRepository) SoftDelete(ctx context.Context, id snowflake.ID) error {
	return r.store.Delete(ctx, id.String())
}
