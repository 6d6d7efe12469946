package services

import (
	"context"
	"fmt"
	"strings"

	"dicel-erp/internal/db"
	"dicel-erp/internal/errs"
	"dicel-erp/internal/query"
	"dicel-erp/internal/resource"
	"dicel-erp/internal/store"
	"dicel-erp/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type RecordStore interface {
	Entity() *resource.Entity
	List(ctx context.Context, opts query.ListOptions) ([]map[string]any, error)
	Count(ctx context.Context, opts query.ListOptions) (int, error)
	Get(ctx context.Context, id string) (map[string]any, error)
	GetTx(ctx context.Context, tx store.Getter, id string) (map[string]any, error)
	Create(ctx context.Context, tx store.Getter, id string, values map[string]any, owner *string) (map[string]any, error)
	Update(ctx context.Context, tx store.Getter, id string, values map[string]any) (map[string]any, error)
	SoftDelete(ctx context.Context, tx store.Execer, id string) (bool, error)
	CountDependents(ctx context.Context, tx store.Getter, guard resource.Guard, id string) (int, error)
	Stats(ctx context.Context) (store.Stats, error)
}

// Hooks run inside the mutation's transaction. AfterCreate sees the stored
// document; BeforeDelete sees the document about to be deactivated.
// Touches names other resources whose cached stats the hooks change.
type Hooks struct {
	AfterCreate  func(ctx context.Context, tx store.Tx, doc map[string]any) error
	BeforeDelete func(ctx context.Context, tx store.Tx, doc map[string]any) error
	Touches      []string
}

type RecordService struct {
	txRunner db.TxRunner
	records  RecordStore
	audit    AuditStore
	cache    StatsCache
	hub      EventHub
	hooks    Hooks
}

func NewRecordService(txRunner db.TxRunner, records RecordStore, audit AuditStore, cache StatsCache, hub EventHub) *RecordService {
	return &RecordService{txRunner: txRunner, records: records, audit: audit, cache: cache, hub: hub}
}

func (s *RecordService) WithHooks(hooks Hooks) *RecordService {
	s.hooks = hooks
	return s
}

func (s *RecordService) Entity() *resource.Entity {
	return s.records.Entity()
}

func (s *RecordService) translate(err error, op string) error {
	entity := s.records.Entity()
	switch {
	case err == nil:
		return nil
	case errs.IsUniqueViolation(err):
		if entity.UniqueMessage != "" {
			return errs.BusinessRule(entity.UniqueMessage)
		}
		return errs.BusinessRule(entity.Name + " already exists")
	case errs.IsForeignKeyViolation(err):
		return errs.Validation("referenced record does not exist")
	}
	return classified(notFound(err, entity.Name), entity.Path+": "+op)
}

func (s *RecordService) List(ctx context.Context, opts query.ListOptions) (query.Page, error) {
	items, err := s.records.List(ctx, opts)
	if err != nil {
		return query.Page{}, s.translate(err, "list")
	}
	total, err := s.records.Count(ctx, opts)
	if err != nil {
		return query.Page{}, s.translate(err, "count")
	}
	return query.NewPage(items, total, opts), nil
}

func (s *RecordService) Get(ctx context.Context, id string) (map[string]any, error) {
	doc, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, s.translate(err, "get")
	}
	return doc, nil
}

// Create binds body against the entity, stamps the owner and stores the
// record with its audit entry.
func (s *RecordService) Create(ctx context.Context, actorID string, body map[string]any) (map[string]any, error) {
	entity := s.records.Entity()
	values, err := entity.Bind(body, true)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	var doc map[string]any
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		created, err := s.records.Create(ctx, tx, id, values, actor(actorID))
		if err != nil {
			return err
		}
		if s.hooks.AfterCreate != nil {
			if err := s.hooks.AfterCreate(ctx, tx, created); err != nil {
				return err
			}
		}
		doc = created
		return s.audit.Log(ctx, tx, actor(actorID), "create", entity.Path, id, auditData(values))
	})
	if err != nil {
		return nil, s.translate(err, "create")
	}
	s.changed(websocket.EventCreated, id)
	return doc, nil
}

// Update merges the writable fields of body into an active record.
func (s *RecordService) Update(ctx context.Context, actorID, id string, body map[string]any) (map[string]any, error) {
	entity := s.records.Entity()
	values, err := entity.Bind(body, false)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		updated, err := s.records.Update(ctx, tx, id, values)
		if err != nil {
			return err
		}
		doc = updated
		return s.audit.Log(ctx, tx, actor(actorID), "update", entity.Path, id, auditData(values))
	})
	if err != nil {
		return nil, s.translate(err, "update")
	}
	s.changed(websocket.EventUpdated, id)
	return doc, nil
}

// Delete deactivates a record unless a guarded dependent is still active.
func (s *RecordService) Delete(ctx context.Context, actorID, id string) error {
	entity := s.records.Entity()
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		doc, err := s.records.GetTx(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, guard := range entity.Guards {
			count, err := s.records.CountDependents(ctx, tx, guard, id)
			if err != nil {
				return err
			}
			if count > 0 {
				return errs.BusinessRule(fmt.Sprintf("Cannot delete %s with active %s", strings.ToLower(entity.Name), guard.Label))
			}
		}
		if s.hooks.BeforeDelete != nil {
			if err := s.hooks.BeforeDelete(ctx, tx, doc); err != nil {
				return err
			}
		}
		deleted, err := s.records.SoftDelete(ctx, tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return errs.NotFound(entity.Name)
		}
		return s.audit.Log(ctx, tx, actor(actorID), "delete", entity.Path, id, "{}")
	})
	if err != nil {
		return s.translate(err, "delete")
	}
	s.changed(websocket.EventDeleted, id)
	return nil
}

// Stats serves the aggregate from cache while no mutation has touched the
// entity since it was computed.
func (s *RecordService) Stats(ctx context.Context) (store.Stats, error) {
	path := s.records.Entity().Path
	if cached, ok := s.cache.Get(path); ok {
		if stats, ok := cached.(store.Stats); ok {
			return stats, nil
		}
	}
	stats, err := s.records.Stats(ctx)
	if err != nil {
		return store.Stats{}, s.translate(err, "stats")
	}
	s.cache.Set(path, stats)
	return stats, nil
}

func (s *RecordService) changed(eventType, id string) {
	path := s.records.Entity().Path
	s.cache.Invalidate(path)
	for _, other := range s.hooks.Touches {
		s.cache.Invalidate(other)
	}
	s.hub.Broadcast(websocket.Event{Type: eventType, Resource: path, ID: id})
}
