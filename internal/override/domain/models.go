// Package domain contains the manual FMV override model.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeValue        = errors.New("override_value_negative")
	ErrMissingJustification = errors.New("override_justification_required")
	ErrMissingApplier       = errors.New("override_applier_required")
	ErrUnknownAsset         = errors.New("override_unknown_asset")
)

// Override replaces one asset's computed depreciated value. The
// justification is mandatory: every manual correction must be explainable
// in an audit.
type Override struct {
	Value         decimal.Decimal `json:"value"`
	Justification string          `json:"justification"`
	AppliedBy     string          `json:"appliedBy"`
	AppliedAt     time.Time       `json:"appliedAt"`
}

// Validate checks a single override entry.
func (o Override) Validate() error {
	if o.Value.IsNegative() {
		return ErrNegativeValue
	}
	if strings.TrimSpace(o.Justification) == "" {
		return ErrMissingJustification
	}
	if strings.TrimSpace(o.AppliedBy) == "" {
		return ErrMissingApplier
	}
	return nil
}

// Map keys overrides by asset ID. Keys are the snowflake's decimal string
// so the map round-trips through JSON storage unchanged.
type Map map[string]Override
