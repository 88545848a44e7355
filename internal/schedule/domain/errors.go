package domain

import "errors"

var (
	// ErrNoScheduleForJurisdiction means the jurisdiction has zero rows;
	// nothing meaningful can be computed against it.
	ErrNoScheduleForJurisdiction = errors.New("no_schedule_for_jurisdiction")
	ErrInvalidYearOfLife         = errors.New("invalid_year_of_life")
)
