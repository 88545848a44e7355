// Package template models the named-field inventory of a jurisdiction form
// template. Government templates vary by revision; the catalog is the set of
// fields a given revision actually carries, and every write is checked
// against it.
package template

import (
	formdomain "github.com/propworks/rendition/internal/form/domain"
)

// Catalog is one template revision's field inventory.
type Catalog struct {
	FormID string
	Fields map[string]bool
}

// Has reports whether the revision carries the named field.
func (c Catalog) Has(field string) bool {
	return c.Fields[field]
}

// Source supplies field catalogs by form ID. Template storage and retrieval
// are external; this is the stable contract the strategies consume.
type Source interface {
	Catalog(formID string) (Catalog, error)
}

// Writer collects best-effort field writes against one catalog. A write to
// a field the revision does not carry is recorded and skipped, never fatal.
type Writer struct {
	catalog Catalog
	writes  []formdomain.FieldWrite
}

// NewWriter opens a writer over a template catalog.
func NewWriter(catalog Catalog) *Writer {
	return &Writer{catalog: catalog}
}

// Set writes one field value, recording the outcome.
func (w *Writer) Set(field, value string) formdomain.FieldWrite {
	status := formdomain.WriteOK
	if !w.catalog.Has(field) {
		status = formdomain.WriteFieldMissing
	}
	write := formdomain.FieldWrite{Field: field, Value: value, Status: status}
	w.writes = append(w.writes, write)
	return write
}

// Writes returns every recorded write in order.
func (w *Writer) Writes() []formdomain.FieldWrite {
	return w.writes
}

// Value returns the written value for a field, empty when the write was
// skipped or never attempted.
func (w *Writer) Value(field string) string {
	for i := len(w.writes) - 1; i >= 0; i-- {
		if w.writes[i].Field == field && w.writes[i].Status == formdomain.WriteOK {
			return w.writes[i].Value
		}
	}
	return ""
}
