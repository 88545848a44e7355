// Package domain defines the form strategy contract: a flat interface plus
// per-variant static field catalogs, selected by a pure resolver.
package domain

import (
	"errors"

	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
)

var (
	ErrUnsupportedJurisdiction = errors.New("form_unsupported_jurisdiction")
	ErrTemplateUnavailable     = errors.New("form_template_unavailable")
)

// WriteStatus is the outcome of one field write.
type WriteStatus string

const (
	// WriteOK: the field exists in the template revision and was set.
	WriteOK WriteStatus = "written"
	// WriteFieldMissing: the named field is absent from this template
	// revision; the write was skipped, never fatal.
	WriteFieldMissing WriteStatus = "field_missing"
)

// FieldWrite records one best-effort field population.
type FieldWrite struct {
	Field  string      `json:"field"`
	Value  string      `json:"value"`
	Status WriteStatus `json:"status"`
}

// Document is a filled form plus the audit of what was actually written.
type Document struct {
	Bytes       []byte
	DisplayName string
	FieldWrites []FieldWrite
}

// Strategy maps a calculation result onto one paper form layout. All
// arithmetic happened upstream; strategies only place values.
type Strategy interface {
	ID() string
	DisplayName() string
	Fill(owner renditiondomain.OwnerInfo, result calcdomain.CalculationResult) (Document, error)
}
