package services

import (
	"context"
	"database/sql"
	"time"

	"dicel-erp/internal/db"
	"dicel-erp/internal/errs"
	"dicel-erp/internal/hr"
	"dicel-erp/internal/models"
	"dicel-erp/internal/resource"
	"dicel-erp/internal/store"
	"dicel-erp/internal/websocket"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type AttendanceStore interface {
	GetDayForUpdate(ctx context.Context, tx store.Getter, employeeID, date string) (models.AttendanceDay, error)
	InsertCheckIn(ctx context.Context, tx store.Execer, id, employeeID, date, checkIn string, location *string) error
	SetCheckIn(ctx context.Context, tx store.Execer, id, checkIn string, location *string) error
	SetCheckOut(ctx context.Context, tx store.Execer, id, checkOut, totalHours string, overtime *string) error
}

// AttendanceService runs the daily check-in/check-out cycle. Dates and
// clock times are taken in the configured time zone.
type AttendanceService struct {
	txRunner   db.TxRunner
	attendance AttendanceStore
	records    RecordReader
	employees  EmployeeLookup
	audit      AuditStore
	cache      StatsCache
	hub        EventHub
	loc        *time.Location
	now        func() time.Time
}

func NewAttendanceService(txRunner db.TxRunner, attendance AttendanceStore, records RecordReader, employees EmployeeLookup, audit AuditStore, cache StatsCache, hub EventHub, loc *time.Location) *AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{
		txRunner:   txRunner,
		attendance: attendance,
		records:    records,
		employees:  employees,
		audit:      audit,
		cache:      cache,
		hub:        hub,
		loc:        loc,
		now:        time.Now,
	}
}

type CheckInRequest struct {
	UserID     string
	EmployeeID string
	Location   *string
}

type CheckOutRequest struct {
	UserID     string
	EmployeeID string
}

// resolveEmployee falls back to the employee linked to the caller.
func (s *AttendanceService) resolveEmployee(ctx context.Context, userID, employeeID string) (string, error) {
	if employeeID != "" {
		return employeeID, nil
	}
	id, err := s.employees.IDByUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errs.Validation("employeeId is required: no employee is linked to this user")
	}
	return id, err
}

func (s *AttendanceService) clock() (string, string) {
	now := s.now().In(s.loc)
	return now.Format(hr.DateLayout), now.Format(hr.TimeLayout)
}

// CheckIn opens today's record, or fills the check-in time of a record
// created ahead of time. A second check-in on the same day is refused.
func (s *AttendanceService) CheckIn(ctx context.Context, req CheckInRequest) (map[string]any, error) {
	employeeID, err := s.resolveEmployee(ctx, req.UserID, req.EmployeeID)
	if err != nil {
		return nil, classified(err, "attendance: resolve employee")
	}
	date, now := s.clock()
	var doc map[string]any
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := s.employees.Exists(ctx, tx, employeeID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NotFound("Employee")
		}
		day, err := s.attendance.GetDayForUpdate(ctx, tx, employeeID, date)
		var id string
		switch {
		case errors.Is(err, sql.ErrNoRows):
			id = uuid.NewString()
			if err := s.attendance.InsertCheckIn(ctx, tx, id, employeeID, date, now, req.Location); err != nil {
				return err
			}
		case err != nil:
			return err
		case day.CheckInTime != nil:
			return errs.BusinessRule("Already checked in today")
		default:
			id = day.ID
			if err := s.attendance.SetCheckIn(ctx, tx, id, now, req.Location); err != nil {
				return err
			}
		}
		if err := s.audit.Log(ctx, tx, actor(req.UserID), "check_in", resource.AttendanceRecords.Path, id, auditData(map[string]string{"employeeId": employeeID, "checkInTime": now})); err != nil {
			return err
		}
		doc, err = s.records.GetTx(ctx, tx, id)
		return err
	})
	if errs.IsUniqueViolation(err) {
		return nil, errs.BusinessRule("Already checked in today")
	}
	if err != nil {
		return nil, classified(err, "attendance: check in")
	}
	s.changed(websocket.EventUpdated, doc)
	return doc, nil
}

// CheckOut closes today's record and derives the worked hours and any
// overtime beyond the standard day.
func (s *AttendanceService) CheckOut(ctx context.Context, req CheckOutRequest) (map[string]any, error) {
	employeeID, err := s.resolveEmployee(ctx, req.UserID, req.EmployeeID)
	if err != nil {
		return nil, classified(err, "attendance: resolve employee")
	}
	date, now := s.clock()
	var doc map[string]any
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		day, err := s.attendance.GetDayForUpdate(ctx, tx, employeeID, date)
		if err != nil {
			return notFound(err, "Check-in record")
		}
		if day.CheckInTime == nil {
			return errs.NotFound("Check-in record")
		}
		if day.CheckOutTime != nil {
			return errs.BusinessRule("Already checked out today")
		}
		total, overtime, err := hr.WorkedHours(*day.CheckInTime, now)
		if err != nil {
			return errs.BusinessRule(err.Error())
		}
		if err := s.attendance.SetCheckOut(ctx, tx, day.ID, now, total, overtime); err != nil {
			return err
		}
		if err := s.audit.Log(ctx, tx, actor(req.UserID), "check_out", resource.AttendanceRecords.Path, day.ID, auditData(map[string]any{"employeeId": employeeID, "checkOutTime": now, "totalHours": total, "overtime": overtime})); err != nil {
			return err
		}
		doc, err = s.records.GetTx(ctx, tx, day.ID)
		return err
	})
	if err != nil {
		return nil, classified(err, "attendance: check out")
	}
	s.changed(websocket.EventUpdated, doc)
	return doc, nil
}

func (s *AttendanceService) changed(eventType string, doc map[string]any) {
	id, _ := doc["id"].(string)
	s.cache.Invalidate(resource.AttendanceRecords.Path)
	s.hub.Broadcast(websocket.Event{Type: eventType, Resource: resource.AttendanceRecords.Path, ID: id})
}
