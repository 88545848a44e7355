// Package option provides composable query modifiers for the generic store.
package option

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Operator is a comparison operator for filter conditions.
type Operator string

const (
	EQ  Operator = "="
	NEQ Operator = "<>"
	GT  Operator = ">"
	GTE Operator = ">="
	LT  Operator = "<"
	LTE Operator = "<="
)

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Condition is a single field comparison.
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

type operatorOption struct {
	cond Condition
}

func (o operatorOption) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s %s ?", o.cond.Field, o.cond.Operator), o.cond.Value)
}

// ApplyOperator filters on a field with the given operator.
func ApplyOperator(cond Condition) QueryOption {
	return operatorOption{cond: cond}
}

// QuerySortBy declares the sortable columns and the requested order.
type QuerySortBy struct {
	Allow map[string]bool
	Field string
	Desc  bool
}

type sortByOption struct {
	sort QuerySortBy
}

func (o sortByOption) Apply(db *gorm.DB) *gorm.DB {
	field := strings.TrimSpace(o.sort.Field)
	if field == "" || !o.sort.Allow[field] {
		return db
	}
	if o.sort.Desc {
		return db.Order(field + " DESC")
	}
	return db.Order(field)
}

// WithSortBy orders results by an allow-listed column.
func WithSortBy(sort QuerySortBy) QueryOption {
	return sortByOption{sort: sort}
}

type limitOption struct {
	limit int
}

func (o limitOption) Apply(db *gorm.DB) *gorm.DB {
	if o.limit <= 0 {
		return db
	}
	return db.Limit(o.limit)
}

// WithLimit caps the number of returned rows.
func WithLimit(limit int) QueryOption {
	return limitOption{limit: limit}
}
