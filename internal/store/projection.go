package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"dicel-erp/internal/resource"

	"github.com/jmoiron/sqlx/types"
	"github.com/samber/lo"
)

// args collects positional parameters while a statement is assembled.
type args struct {
	values []any
}

func (a *args) add(value any) string {
	a.values = append(a.values, value)
	return "$" + strconv.Itoa(len(a.values))
}

// camel maps a snake_case column to its API field name.
func camel(name string) string {
	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// columnExpr renders alias.name, casting decimals to text so amounts leave
// the database as exact strings.
func columnExpr(alias string, kind resource.Kind, name string) string {
	if kind == resource.Decimal {
		return fmt.Sprintf("%s.%s::text", alias, name)
	}
	return alias + "." + name
}

func kindOf(table, name string) resource.Kind {
	entity, ok := lo.Find(resource.All(), func(e *resource.Entity) bool { return e.Table == table })
	if !ok {
		return resource.Text
	}
	column, ok := lo.Find(entity.Columns, func(c resource.Column) bool { return c.Name == name })
	if !ok {
		return resource.Text
	}
	return column.Kind
}

func buildObject(pairs []string) string {
	return "jsonb_build_object(" + strings.Join(pairs, ", ") + ")"
}

func attrPairs(alias, table string, attrs []resource.Attr) []string {
	pairs := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		pairs = append(pairs, fmt.Sprintf("'%s', %s", attr.Field, columnExpr(alias, kindOf(table, attr.Name), attr.Name)))
	}
	return pairs
}

// document renders the JSON projection of one row of entity aliased as t.
// Detail documents use the richer includes and nest has-many children.
func document(entity *resource.Entity, detail bool) string {
	base := []string{"'id', t.id"}
	for _, column := range entity.Columns {
		base = append(base, fmt.Sprintf("'%s', %s", column.Field, columnExpr("t", column.Kind, column.Name)))
	}
	base = append(base, "'isActive', t.is_active", "'createdAt', t.created_at", "'updatedAt', t.updated_at")
	if entity.Owner != "" {
		base = append(base, fmt.Sprintf("'%s', t.%s", camel(entity.Owner), entity.Owner))
	}

	var extra []string
	includes := entity.Includes
	if detail && len(entity.DetailIncludes) > 0 {
		includes = entity.DetailIncludes
	}
	for i, include := range includes {
		alias := fmt.Sprintf("r%d", i)
		extra = append(extra, fmt.Sprintf("'%s', (SELECT %s FROM %s %s WHERE %s.id = t.%s)",
			include.Field, buildObject(attrPairs(alias, include.Table, include.Attrs)), include.Table, alias, alias, include.ForeignKey))
	}
	if detail {
		for i, many := range entity.HasMany {
			alias := fmt.Sprintf("c%d", i)
			extra = append(extra, fmt.Sprintf(
				"'%s', (SELECT COALESCE(jsonb_agg(sub.doc ORDER BY sub.ord), '[]'::jsonb) FROM (SELECT %s AS doc, ROW_NUMBER() OVER (ORDER BY %s, %s.id) AS ord FROM %s %s WHERE %s.%s = t.id AND %s.is_active ORDER BY ord LIMIT %d) sub)",
				many.Field, buildObject(attrPairs(alias, many.Table, many.Attrs)), many.Order, alias, many.Table, alias, alias, many.ForeignKey, alias, many.Limit))
		}
	}
	for _, computed := range entity.Computed {
		extra = append(extra, fmt.Sprintf("'%s', %s", computed.Field, computed.SQL))
	}
	if len(extra) == 0 {
		return buildObject(base)
	}
	return buildObject(base) + " || " + buildObject(extra)
}

func decodeDocument(raw types.JSONText) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeDocuments(raws []types.JSONText) ([]map[string]any, error) {
	docs := make([]map[string]any, 0, len(raws))
	for _, raw := range raws {
		doc, err := decodeDocument(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
