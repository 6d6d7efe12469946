package services

import (
	"context"
	"fmt"
	"strings"

	"dicel-erp/internal/db"
	"dicel-erp/internal/errs"
	"dicel-erp/internal/models"
	"dicel-erp/internal/resource"
	"dicel-erp/internal/store"
	"dicel-erp/internal/websocket"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

const (
	LeavePending   = "Pending"
	LeaveApproved  = "Approved"
	LeaveRejected  = "Rejected"
	LeaveCancelled = "Cancelled"
)

type LeaveStore interface {
	GetForUpdate(ctx context.Context, tx store.Getter, id string) (models.LeaveRequest, error)
	UpdateStatus(ctx context.Context, tx store.Execer, id, status string, approvedBy, comments *string) error
	GetBalanceForUpdate(ctx context.Context, tx store.Getter, leaveTypeID string) (models.LeaveBalance, error)
	AdjustBalance(ctx context.Context, tx store.Execer, leaveTypeID string, days int) error
}

type LeaveService struct {
	txRunner db.TxRunner
	leave    LeaveStore
	records  RecordReader
	audit    AuditStore
	cache    StatsCache
	hub      EventHub
}

func NewLeaveService(txRunner db.TxRunner, leave LeaveStore, records RecordReader, audit AuditStore, cache StatsCache, hub EventHub) *LeaveService {
	return &LeaveService{txRunner: txRunner, leave: leave, records: records, audit: audit, cache: cache, hub: hub}
}

type LeaveStatusRequest struct {
	ActorID   string
	RequestID string
	Status    string
	Comments  *string
}

// UpdateStatus moves a request to a new status. Entering Approved books the
// days against the leave type; leaving Approved gives them back. Both
// happen in the same transaction as the status change.
func (s *LeaveService) UpdateStatus(ctx context.Context, req LeaveStatusRequest) (map[string]any, error) {
	if !lo.Contains(resource.LeaveStatuses, req.Status) {
		return nil, errs.Validationf("status must be one of: %s", strings.Join(resource.LeaveStatuses, ", "))
	}
	var (
		doc       map[string]any
		requester *string
	)
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := s.leave.GetForUpdate(ctx, tx, req.RequestID)
		if err != nil {
			return notFound(err, resource.LeaveRequests.Name)
		}
		if current.Status == req.Status {
			return errs.BusinessRule(fmt.Sprintf("Leave request is already %s", strings.ToLower(req.Status)))
		}
		switch {
		case req.Status == LeaveApproved:
			balance, err := s.leave.GetBalanceForUpdate(ctx, tx, current.LeaveTypeID)
			if err != nil {
				return notFound(err, resource.LeaveTypes.Name)
			}
			if balance.DaysRemaining < current.Days {
				return errs.BusinessRule("Insufficient leave balance")
			}
			if err := s.leave.AdjustBalance(ctx, tx, current.LeaveTypeID, current.Days); err != nil {
				return notFound(err, resource.LeaveTypes.Name)
			}
		case current.Status == LeaveApproved:
			if err := s.leave.AdjustBalance(ctx, tx, current.LeaveTypeID, -current.Days); err != nil {
				return notFound(err, resource.LeaveTypes.Name)
			}
		}
		var approvedBy *string
		if req.Status == LeaveApproved || req.Status == LeaveRejected {
			approvedBy = actor(req.ActorID)
		}
		if err := s.leave.UpdateStatus(ctx, tx, current.ID, req.Status, approvedBy, req.Comments); err != nil {
			return err
		}
		if err := s.audit.Log(ctx, tx, actor(req.ActorID), "status", resource.LeaveRequests.Path, current.ID, auditData(map[string]any{
			"from": current.Status,
			"to":   req.Status,
			"days": current.Days,
		})); err != nil {
			return err
		}
		requester = current.CreatedBy
		doc, err = s.records.GetTx(ctx, tx, current.ID)
		return err
	})
	if err != nil {
		return nil, classified(err, "leave: update status")
	}

	s.cache.Invalidate(resource.LeaveRequests.Path)
	s.cache.Invalidate(resource.LeaveTypes.Path)
	event := websocket.Event{Type: websocket.EventLeaveStatus, Resource: resource.LeaveRequests.Path, ID: req.RequestID, Status: req.Status}
	if requester != nil && *requester != "" {
		s.hub.Publish(*requester, event)
	}
	s.hub.Broadcast(websocket.Event{Type: websocket.EventUpdated, Resource: resource.LeaveRequests.Path, ID: req.RequestID})
	return doc, nil
}
