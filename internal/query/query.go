// Package query turns list request parameters into typed options and shapes
// paginated results.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"dicel-erp/internal/errs"
	"dicel-erp/internal/resource"
	"dicel-erp/internal/validator"
)

type Defaults struct {
	Limit    int
	MaxLimit int
}

// Filter is an exact-match condition on one SQL column.
type Filter struct {
	Column string
	Value  any
}

type ListOptions struct {
	Page            int    `json:"page" validate:"min=1"`
	Limit           int    `json:"limit" validate:"min=1"`
	Search          string `json:"search" validate:"max=100"`
	Filters         []Filter
	IncludeInactive bool
}

func (o ListOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

type Page struct {
	Items       []map[string]any `json:"items"`
	Total       int              `json:"total"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
	Limit       int              `json:"limit"`
}

func NewPage(items []map[string]any, total int, opts ListOptions) Page {
	if items == nil {
		items = []map[string]any{}
	}
	return Page{
		Items:       items,
		Total:       total,
		CurrentPage: opts.Page,
		TotalPages:  TotalPages(total, opts.Limit),
		Limit:       opts.Limit,
	}
}

func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// ParseList reads page, limit, search and the entity's whitelisted filters.
// Unknown parameters are ignored; limit above the maximum is clamped.
func ParseList(values url.Values, entity *resource.Entity, defaults Defaults) (ListOptions, error) {
	opts := ListOptions{Page: 1, Limit: defaults.Limit}
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	var err error
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		if opts.Page, err = strconv.Atoi(raw); err != nil {
			return ListOptions{}, errs.Validation("page must be a positive integer")
		}
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		if opts.Limit, err = strconv.Atoi(raw); err != nil {
			return ListOptions{}, errs.Validation("limit must be a positive integer")
		}
	}
	opts.Search = strings.TrimSpace(values.Get("search"))
	if err := validator.Struct(opts); err != nil {
		return ListOptions{}, err
	}
	if defaults.MaxLimit > 0 && opts.Limit > defaults.MaxLimit {
		opts.Limit = defaults.MaxLimit
	}

	params := make([]string, 0, len(entity.Filters))
	for param := range entity.Filters {
		params = append(params, param)
	}
	sort.Strings(params)
	for _, param := range params {
		raw := strings.TrimSpace(values.Get(param))
		if raw == "" {
			continue
		}
		column := entity.MustColumn(entity.Filters[param])
		value, err := column.ParseFilter(raw)
		if err != nil {
			return ListOptions{}, errs.Validationf("invalid %s filter: %s", param, errs.Message(err))
		}
		opts.Filters = append(opts.Filters, Filter{Column: column.Name, Value: value})
	}
	return opts, nil
}

// ParsePage reads page and limit for listings that have no entity, such as
// the audit log.
func ParsePage(values url.Values, defaults Defaults) (ListOptions, error) {
	return ParseList(values, &resource.Entity{}, defaults)
}

// LikePattern escapes LIKE metacharacters and wraps term for a substring
// match.
func LikePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(term) + "%"
}
