package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Source is the read-only asset stream the calculator consumes.
// Implementations must exclude soft-deleted rows.
type Source interface {
	ListByLocation(ctx context.Context, locationID snowflake.ID) ([]Asset, error)
}

// Repository persists assets.
type Repository interface {
	Source
	Create(ctx context.Context, asset *Asset) error
	FindByID(ctx context.Context, id snowflake.ID) (*Asset, error)
	Update(ctx context.Context, asset *Asset) error
	SoftDelete(ctx context.Context, id snowflake.ID) error
}

// Validate checks invariants before an asset is accepted.
func (a *Asset) Validate() error {
	if !a.Category.Valid() {
		return ErrInvalidCategory
	}
	if a.OriginalCost.IsNegative() {
		return ErrInvalidCost
	}
	if a.Quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}
