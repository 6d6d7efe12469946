// Package services holds the transactional business operations. Every
// mutation runs inside one serializable transaction together with its
// audit entry; cache invalidation and websocket events follow a commit.
package services

import (
	"context"
	"database/sql"
	"encoding/json"

	"dicel-erp/internal/errs"
	"dicel-erp/internal/store"
	"dicel-erp/internal/websocket"

	"github.com/cockroachdb/errors"
)

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID *string, action, entityType, entityID, data string) error
}

type StatsCache interface {
	Get(resource string) (any, bool)
	Set(resource string, value any)
	Invalidate(resource string)
}

type EventHub interface {
	Publish(userID string, event websocket.Event)
	Broadcast(event websocket.Event)
}

// RecordReader loads the full document of a record inside a transaction so
// workflow operations can answer with the same shape as the detail route.
type RecordReader interface {
	GetTx(ctx context.Context, tx store.Getter, id string) (map[string]any, error)
}

// EmployeeLookup resolves and checks employees for the workflow actions.
type EmployeeLookup interface {
	IDByUser(ctx context.Context, userID string) (string, error)
	Exists(ctx context.Context, tx store.Getter, employeeID string) (bool, error)
}

func actor(userID string) *string {
	if userID == "" {
		return nil
	}
	return &userID
}

func auditData(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// notFound maps a missing row to the entity's 404 and passes everything
// else through.
func notFound(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errs.NotFound(entity)
	}
	return err
}

// classified keeps taxonomy errors intact and wraps the rest with op so the
// log line names the failing step.
func classified(err error, op string) error {
	if err == nil || !errs.IsInternal(err) {
		return err
	}
	return errs.Wrap(err, op)
}
