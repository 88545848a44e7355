package domain

import "errors"

var (
	ErrMissingJurisdiction = errors.New("missing_jurisdiction")
	ErrInvalidTaxYear      = errors.New("invalid_tax_year")
)
