// Package resource describes every ERP entity declaratively: its table, the
// columns clients may read and write, how lists are searched, filtered and
// ordered, which related records enrich responses, and which business rules
// apply on create and delete. Stores and handlers are generic over Entity.
package resource

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"dicel-erp/internal/errs"
	"dicel-erp/internal/hr"
	"dicel-erp/internal/money"

	"github.com/samber/lo"
)

type Kind int

const (
	Text Kind = iota
	Enum
	Decimal
	Int
	Date
	Time
	Bool
	Ref
)

type Column struct {
	Field      string
	Name       string
	Kind       Kind
	Values     []string
	Required   bool
	ReadOnly   bool
	CreateOnly bool
}

// Attr projects one column of a related table.
type Attr struct {
	Field string
	Name  string
}

// Include is a belongs-to enrichment: ForeignKey lives on this entity and
// points at Table.id.
type Include struct {
	Field      string
	Table      string
	ForeignKey string
	Attrs      []Attr
}

// HasMany nests the newest Limit active children whose ForeignKey points
// back at this entity.
type HasMany struct {
	Field      string
	Table      string
	ForeignKey string
	Attrs      []Attr
	Order      string
	Limit      int
}

// Computed is a literal SQL fragment evaluated per row; the entity's own
// table is aliased as t.
type Computed struct {
	Field string
	SQL   string
}

// Guard blocks soft delete while Table has active rows referencing the
// record through ForeignKey.
type Guard struct {
	Table      string
	ForeignKey string
	Label      string
}

// Recompute rewrites Column on update whenever Source is written. SQL is a
// format string taking the placeholder of the new Source value; any other
// column it names reads the row as it was before the update.
type Recompute struct {
	Column string
	Source string
	SQL    string
}

type Order struct {
	Field string
	Desc  bool
}

type Stats struct {
	GroupBy []string
	Sums    []string
}

type Entity struct {
	Name           string
	Path           string
	Table          string
	Columns        []Column
	Search         []string
	Filters        map[string]string
	Order          []Order
	Includes       []Include
	DetailIncludes []Include
	HasMany        []HasMany
	Computed       []Computed
	Owner          string
	Guards         []Guard
	Stats          Stats
	UniqueMessage  string
	BeforeCreate   func(values map[string]any) error
	Recompute      []Recompute
}

func (e *Entity) Column(field string) (Column, bool) {
	return lo.Find(e.Columns, func(c Column) bool { return c.Field == field })
}

func (e *Entity) MustColumn(field string) Column {
	column, ok := e.Column(field)
	if !ok {
		panic(fmt.Sprintf("%s has no field %q", e.Name, field))
	}
	return column
}

// Bind validates a decoded JSON body and returns the values to persist keyed
// by SQL column. On create, required columns must be present and the
// BeforeCreate hook runs; on update, create-only columns are rejected.
func (e *Entity) Bind(body map[string]any, create bool) (map[string]any, error) {
	values := make(map[string]any, len(body))
	for field, raw := range body {
		column, ok := e.Column(field)
		if !ok || column.ReadOnly {
			return nil, errs.Validationf("field %s cannot be set", field)
		}
		if !create && column.CreateOnly {
			return nil, errs.Validationf("field %s cannot be changed", field)
		}
		value, err := column.Coerce(raw)
		if err != nil {
			return nil, err
		}
		if value == nil && column.Required {
			return nil, errs.Validationf("%s is required", field)
		}
		values[column.Name] = value
	}
	if !create {
		if len(values) == 0 {
			return nil, errs.Validation("no fields to update")
		}
		return values, nil
	}
	for _, column := range e.Columns {
		if !column.Required {
			continue
		}
		if _, ok := values[column.Name]; !ok {
			return nil, errs.Validationf("%s is required", column.Field)
		}
	}
	if e.BeforeCreate != nil {
		if err := e.BeforeCreate(values); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// Coerce converts a JSON value into the SQL argument for this column. JSON
// null maps to SQL NULL.
func (c Column) Coerce(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch c.Kind {
	case Text, Ref:
		value, ok := raw.(string)
		if !ok {
			return nil, errs.Validationf("%s must be a string", c.Field)
		}
		value = strings.TrimSpace(value)
		if c.Kind == Ref && value == "" {
			return nil, errs.Validationf("%s must be a record id", c.Field)
		}
		return value, nil
	case Enum:
		value, ok := raw.(string)
		if !ok || !lo.Contains(c.Values, value) {
			return nil, errs.Validationf("%s must be one of: %s", c.Field, strings.Join(c.Values, ", "))
		}
		return value, nil
	case Decimal:
		amount, err := money.ParseNonNegative(raw)
		if err != nil {
			return nil, errs.Validationf("%s: %v", c.Field, err)
		}
		return money.Format(amount), nil
	case Int:
		value, err := toInt(raw)
		if err != nil {
			return nil, errs.Validationf("%s must be an integer", c.Field)
		}
		return value, nil
	case Date:
		value, ok := raw.(string)
		if !ok {
			return nil, errs.Validationf("%s must be a date", c.Field)
		}
		parsed, err := hr.ParseDate(value)
		if err != nil {
			return nil, errs.Validationf("%s: %v", c.Field, err)
		}
		return parsed.Format(hr.DateLayout), nil
	case Time:
		value, ok := raw.(string)
		if !ok {
			return nil, errs.Validationf("%s must be a time", c.Field)
		}
		normalized, err := hr.NormalizeClock(value)
		if err != nil {
			return nil, errs.Validationf("%s: %v", c.Field, err)
		}
		return normalized, nil
	case Bool:
		value, ok := raw.(bool)
		if !ok {
			return nil, errs.Validationf("%s must be a boolean", c.Field)
		}
		return value, nil
	}
	return nil, errs.Validationf("%s has an unsupported type", c.Field)
}

// ParseFilter converts a query-string value into the SQL argument for an
// equality filter on this column.
func (c Column) ParseFilter(raw string) (any, error) {
	switch c.Kind {
	case Int:
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errs.Validationf("%s must be an integer", c.Field)
		}
		return value, nil
	case Bool:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errs.Validationf("%s must be a boolean", c.Field)
		}
		return value, nil
	}
	return c.Coerce(raw)
}

func toInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		return v.Int64()
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("not an integer")
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	}
	return 0, fmt.Errorf("not an integer")
}
