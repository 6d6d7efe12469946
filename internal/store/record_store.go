package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"dicel-erp/internal/query"
	"dicel-erp/internal/resource"

	"github.com/jmoiron/sqlx/types"
)

// RecordStore persists one catalog entity. Every read filters on
// is_active unless the caller explicitly asks for inactive rows.
type RecordStore struct {
	db     DB
	entity *resource.Entity
}

func NewRecordStore(db DB, entity *resource.Entity) *RecordStore {
	return &RecordStore{db: db, entity: entity}
}

func (s *RecordStore) Entity() *resource.Entity {
	return s.entity
}

func (s *RecordStore) where(opts query.ListOptions, a *args) string {
	var clauses []string
	if !opts.IncludeInactive {
		clauses = append(clauses, "t.is_active")
	}
	for _, filter := range opts.Filters {
		clauses = append(clauses, fmt.Sprintf("t.%s = %s", filter.Column, a.add(filter.Value)))
	}
	if opts.Search != "" && len(s.entity.Search) > 0 {
		placeholder := a.add(query.LikePattern(opts.Search))
		ors := make([]string, 0, len(s.entity.Search))
		for _, field := range s.entity.Search {
			ors = append(ors, fmt.Sprintf("t.%s ILIKE %s", s.entity.MustColumn(field).Name, placeholder))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}
	if len(clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}

func (s *RecordStore) orderBy() string {
	terms := make([]string, 0, len(s.entity.Order)+1)
	for _, order := range s.entity.Order {
		direction := "ASC"
		if order.Desc {
			direction = "DESC"
		}
		terms = append(terms, fmt.Sprintf("t.%s %s NULLS LAST", s.entity.MustColumn(order.Field).Name, direction))
	}
	terms = append(terms, "t.id ASC")
	return " ORDER BY " + strings.Join(terms, ", ")
}

func (s *RecordStore) List(ctx context.Context, opts query.ListOptions) ([]map[string]any, error) {
	a := &args{}
	where := s.where(opts, a)
	limit := a.add(opts.Limit)
	offset := a.add(opts.Offset())
	statement := "SELECT " + document(s.entity, false) + " AS doc FROM " + s.entity.Table + " t" +
		where + s.orderBy() + " LIMIT " + limit + " OFFSET " + offset

	var rows []types.JSONText
	if err := s.db.SelectContext(ctx, &rows, statement, a.values...); err != nil {
		return nil, err
	}
	return decodeDocuments(rows)
}

func (s *RecordStore) Count(ctx context.Context, opts query.ListOptions) (int, error) {
	a := &args{}
	statement := "SELECT COUNT(*) FROM " + s.entity.Table + " t" + s.where(opts, a)
	var total int
	err := s.db.GetContext(ctx, &total, statement, a.values...)
	return total, err
}

// Get returns the detail document of an active record or sql.ErrNoRows.
func (s *RecordStore) Get(ctx context.Context, id string) (map[string]any, error) {
	return s.get(ctx, s.db, id)
}

func (s *RecordStore) GetTx(ctx context.Context, tx Getter, id string) (map[string]any, error) {
	return s.get(ctx, tx, id)
}

func (s *RecordStore) get(ctx context.Context, q Getter, id string) (map[string]any, error) {
	var raw types.JSONText
	statement := "SELECT " + document(s.entity, true) + " AS doc FROM " + s.entity.Table + " t WHERE t.id = $1 AND t.is_active"
	if err := q.GetContext(ctx, &raw, statement, id); err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

func sortedColumns(values map[string]any) []string {
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}

// Create inserts values and returns the stored document. owner is written
// to the entity's owner column when it has one.
func (s *RecordStore) Create(ctx context.Context, tx Getter, id string, values map[string]any, owner *string) (map[string]any, error) {
	a := &args{}
	columns := []string{"id"}
	placeholders := []string{a.add(id)}
	for _, column := range sortedColumns(values) {
		columns = append(columns, column)
		placeholders = append(placeholders, a.add(values[column]))
	}
	if s.entity.Owner != "" {
		columns = append(columns, s.entity.Owner)
		placeholders = append(placeholders, a.add(owner))
	}
	statement := "WITH t AS (INSERT INTO " + s.entity.Table + " (" + strings.Join(columns, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ") RETURNING *) SELECT " + document(s.entity, true) + " AS doc FROM t"

	var raw types.JSONText
	if err := tx.GetContext(ctx, &raw, statement, a.values...); err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// Update merges values into an active record. A missing or inactive record
// yields sql.ErrNoRows.
func (s *RecordStore) Update(ctx context.Context, tx Getter, id string, values map[string]any) (map[string]any, error) {
	a := &args{}
	idPlaceholder := a.add(id)
	sets := make([]string, 0, len(values)+1)
	placeholders := make(map[string]string, len(values))
	for _, column := range sortedColumns(values) {
		placeholders[column] = a.add(values[column])
		sets = append(sets, column+" = "+placeholders[column])
	}
	for _, derived := range s.entity.Recompute {
		if placeholder, ok := placeholders[derived.Source]; ok {
			sets = append(sets, derived.Column+" = "+fmt.Sprintf(derived.SQL, placeholder))
		}
	}
	sets = append(sets, "updated_at = NOW()")
	statement := "WITH t AS (UPDATE " + s.entity.Table + " SET " + strings.Join(sets, ", ") +
		" WHERE id = " + idPlaceholder + " AND is_active RETURNING *) SELECT " + document(s.entity, true) + " AS doc FROM t"

	var raw types.JSONText
	if err := tx.GetContext(ctx, &raw, statement, a.values...); err != nil {
		return nil, err
	}
	return decodeDocument(raw)
}

// Lock takes a row lock on an active record for the rest of tx.
func (s *RecordStore) Lock(ctx context.Context, tx Getter, id string) error {
	var locked string
	return tx.GetContext(ctx, &locked, "SELECT id FROM "+s.entity.Table+" WHERE id = $1 AND is_active FOR UPDATE", id)
}

func (s *RecordStore) SoftDelete(ctx context.Context, tx Execer, id string) (bool, error) {
	result, err := tx.ExecContext(ctx, "UPDATE "+s.entity.Table+" SET is_active = false, updated_at = NOW() WHERE id = $1 AND is_active", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *RecordStore) CountDependents(ctx context.Context, tx Getter, guard resource.Guard, id string) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+guard.Table+" WHERE "+guard.ForeignKey+" = $1 AND is_active", id)
	return count, err
}

type Bucket struct {
	Key   string            `json:"key"`
	Count int               `json:"count"`
	Sums  map[string]string `json:"sums,omitempty"`
}

type Stats struct {
	Total int                 `json:"total"`
	Sums  map[string]string   `json:"sums,omitempty"`
	By    map[string][]Bucket `json:"by"`
}

func (s *RecordStore) sumPairs() []string {
	pairs := make([]string, 0, len(s.entity.Stats.Sums))
	for _, field := range s.entity.Stats.Sums {
		pairs = append(pairs, fmt.Sprintf("'%s', COALESCE(SUM(t.%s), 0)::text", field, s.entity.MustColumn(field).Name))
	}
	return pairs
}

// Stats aggregates active records in SQL: the overall count and sums, then
// one bucket per distinct value of every group-by column. NULL values are
// reported under "unspecified".
func (s *RecordStore) Stats(ctx context.Context) (Stats, error) {
	sums := s.sumPairs()
	var raw types.JSONText
	statement := "SELECT " + buildObject([]string{"'total', COUNT(*)", "'sums', " + buildObject(sums)}) +
		" FROM " + s.entity.Table + " t WHERE t.is_active"
	if err := s.db.GetContext(ctx, &raw, statement); err != nil {
		return Stats{}, err
	}
	var out Stats
	if err := json.Unmarshal(raw, &out); err != nil {
		return Stats{}, err
	}
	if len(sums) == 0 {
		out.Sums = nil
	}
	out.By = make(map[string][]Bucket, len(s.entity.Stats.GroupBy))

	for _, field := range s.entity.Stats.GroupBy {
		column := s.entity.MustColumn(field).Name
		pairs := []string{
			fmt.Sprintf("'key', COALESCE(t.%s::text, 'unspecified')", column),
			"'count', COUNT(*)",
		}
		if len(sums) > 0 {
			pairs = append(pairs, "'sums', "+buildObject(sums))
		}
		var rows []types.JSONText
		statement := "SELECT " + buildObject(pairs) + " FROM " + s.entity.Table + " t WHERE t.is_active GROUP BY t." + column +
			" ORDER BY COUNT(*) DESC, t." + column + " NULLS LAST"
		if err := s.db.SelectContext(ctx, &rows, statement); err != nil {
			return Stats{}, err
		}
		buckets := make([]Bucket, 0, len(rows))
		for _, row := range rows {
			var bucket Bucket
			if err := json.Unmarshal(row, &bucket); err != nil {
				return Stats{}, err
			}
			buckets = append(buckets, bucket)
		}
		out.By[field] = buckets
	}
	return out, nil
}
