package services

import (
	"context"
	"sync"

	"dicel-erp/internal/query"
	"dicel-erp/internal/resource"
	"dicel-erp/internal/store"
	"dicel-erp/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type stubRecordStore struct {
	entity            *resource.Entity
	listFn            func(ctx context.Context, opts query.ListOptions) ([]map[string]any, error)
	countFn           func(ctx context.Context, opts query.ListOptions) (int, error)
	getFn             func(ctx context.Context, id string) (map[string]any, error)
	getTxFn           func(ctx context.Context, id string) (map[string]any, error)
	createFn          func(ctx context.Context, id string, values map[string]any, owner *string) (map[string]any, error)
	updateFn          func(ctx context.Context, id string, values map[string]any) (map[string]any, error)
	softDeleteFn      func(ctx context.Context, id string) (bool, error)
	countDependentsFn func(ctx context.Context, guard resource.Guard, id string) (int, error)
	statsFn           func(ctx context.Context) (store.Stats, error)
}

func (s stubRecordStore) Entity() *resource.Entity { return s.entity }

func (s stubRecordStore) List(ctx context.Context, opts query.ListOptions) ([]map[string]any, error) {
	return s.listFn(ctx, opts)
}

func (s stubRecordStore) Count(ctx context.Context, opts query.ListOptions) (int, error) {
	return s.countFn(ctx, opts)
}

func (s stubRecordStore) Get(ctx context.Context, id string) (map[string]any, error) {
	return s.getFn(ctx, id)
}

func (s stubRecordStore) GetTx(ctx context.Context, _ store.Getter, id string) (map[string]any, error) {
	return s.getTxFn(ctx, id)
}

func (s stubRecordStore) Create(ctx context.Context, _ store.Getter, id string, values map[string]any, owner *string) (map[string]any, error) {
	return s.createFn(ctx, id, values, owner)
}

func (s stubRecordStore) Update(ctx context.Context, _ store.Getter, id string, values map[string]any) (map[string]any, error) {
	return s.updateFn(ctx, id, values)
}

func (s stubRecordStore) SoftDelete(ctx context.Context, _ store.Execer, id string) (bool, error) {
	return s.softDeleteFn(ctx, id)
}

func (s stubRecordStore) CountDependents(ctx context.Context, _ store.Getter, guard resource.Guard, id string) (int, error) {
	if s.countDependentsFn == nil {
		return 0, nil
	}
	return s.countDependentsFn(ctx, guard, id)
}

func (s stubRecordStore) Stats(ctx context.Context) (store.Stats, error) {
	return s.statsFn(ctx)
}

type stubReader struct {
	getTxFn func(ctx context.Context, id string) (map[string]any, error)
}

func (s stubReader) GetTx(ctx context.Context, _ store.Getter, id string) (map[string]any, error) {
	if s.getTxFn == nil {
		return map[string]any{"id": id}, nil
	}
	return s.getTxFn(ctx, id)
}

type auditCall struct {
	actorID    *string
	action     string
	entityType string
	entityID   string
	data       string
}

type recordingAudit struct {
	mu    sync.Mutex
	calls []auditCall
	err   error
}

func (a *recordingAudit) Log(_ context.Context, _ store.Execer, actorID *string, action, entityType, entityID, data string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.calls = append(a.calls, auditCall{actorID, action, entityType, entityID, data})
	return nil
}

type recordingCache struct {
	mu          sync.Mutex
	items       map[string]any
	invalidated []string
	dashboard   any
}

func newRecordingCache() *recordingCache {
	return &recordingCache{items: map[string]any{}}
}

func (c *recordingCache) Get(resource string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.items[resource]
	return value, ok
}

func (c *recordingCache) Set(resource string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[resource] = value
}

func (c *recordingCache) Invalidate(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, resource)
	c.dashboard = nil
	c.invalidated = append(c.invalidated, resource)
}

func (c *recordingCache) Dashboard() (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dashboard, c.dashboard != nil
}

func (c *recordingCache) SetDashboard(value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dashboard = value
}

type published struct {
	userID string
	event  websocket.Event
}

type recordingHub struct {
	mu        sync.Mutex
	published []published
	broadcast []websocket.Event
}

func (h *recordingHub) Publish(userID string, event websocket.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.published = append(h.published, published{userID, event})
}

func (h *recordingHub) Broadcast(event websocket.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcast = append(h.broadcast, event)
}

type stubEmployees struct {
	idByUserFn func(ctx context.Context, userID string) (string, error)
	existsFn   func(ctx context.Context, employeeID string) (bool, error)
}

func (s stubEmployees) IDByUser(ctx context.Context, userID string) (string, error) {
	return s.idByUserFn(ctx, userID)
}

func (s stubEmployees) Exists(ctx context.Context, _ store.Getter, employeeID string) (bool, error) {
	if s.existsFn == nil {
		return true, nil
	}
	return s.existsFn(ctx, employeeID)
}
