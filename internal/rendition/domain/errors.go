package domain

import "errors"

var (
	ErrNotFound       = errors.New("rendition_not_found")
	ErrAlreadyExists  = errors.New("rendition_already_exists")
	ErrAlreadyFiled   = errors.New("rendition_already_filed")
	ErrNotReady       = errors.New("rendition_not_ready")
	ErrNoCalculation  = errors.New("rendition_not_calculated")
	ErrInvalidRequest = errors.New("invalid_rendition_request")
)
