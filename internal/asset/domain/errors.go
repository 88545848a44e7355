package domain

import "errors"

var (
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidCost     = errors.New("invalid_cost")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrNotFound        = errors.New("not_found")
)
