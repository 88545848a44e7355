package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	// ErrAlreadyRolled is the expected outcome of a duplicate rollover
	// for the same (firm, tax year). It is a conflict, not a race to
	// tolerate silently.
	ErrAlreadyRolled    = errors.New("rollover_already_executed")
	ErrNoLocations      = errors.New("rollover_requires_locations")
	ErrInvalidTargetYear = errors.New("invalid_target_year")
)

// Source is the snapshot read path the calculator consumes. Snapshots are
// historical fact: implementations never filter by asset deletion state.
type Source interface {
	ListForYear(ctx context.Context, locationID snowflake.ID, taxYear int) ([]Snapshot, error)
}

// Service owns rollover execution and snapshot reads.
type Service interface {
	Source

	// RollForward freezes every live asset at the given locations for the
	// target tax year. A second run for the same (firm, year) fails with
	// ErrAlreadyRolled and inserts nothing.
	RollForward(ctx context.Context, firmID snowflake.ID, locationIDs []snowflake.ID, taxYear int) (*RolloverRun, error)
}
