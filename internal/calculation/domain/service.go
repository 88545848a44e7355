package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Calculator turns valuation inputs into a calculation result.
type Calculator interface {
	// Calculate runs the depreciation algorithm over explicit inputs.
	Calculate(ctx context.Context, inputs []ValuationInput, taxYear int, jurisdiction string) (CalculationResult, error)

	// CalculateForLocation prefers the tax year's frozen snapshots and
	// falls back to live assets when the year has not rolled over.
	CalculateForLocation(ctx context.Context, locationID snowflake.ID, taxYear int, jurisdiction string) (CalculationResult, error)
}
