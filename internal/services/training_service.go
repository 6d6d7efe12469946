package services

import (
	"context"
	"time"

	"dicel-erp/internal/db"
	"dicel-erp/internal/errs"
	"dicel-erp/internal/hr"
	"dicel-erp/internal/models"
	"dicel-erp/internal/resource"
	"dicel-erp/internal/store"
	"dicel-erp/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type EnrollmentStore interface {
	CourseForUpdate(ctx context.Context, tx store.Getter, courseID string) (models.CourseCapacity, error)
	IsEnrolled(ctx context.Context, tx store.Getter, courseID, employeeID string) (bool, error)
	Insert(ctx context.Context, tx store.Execer, id, courseID, employeeID, enrollmentDate string) error
}

var closedCourseStatuses = map[string]bool{"Completed": true, "Cancelled": true}

type TrainingService struct {
	txRunner    db.TxRunner
	enrollments EnrollmentStore
	records     RecordReader
	employees   EmployeeLookup
	audit       AuditStore
	cache       StatsCache
	hub         EventHub
	loc         *time.Location
	now         func() time.Time
}

func NewTrainingService(txRunner db.TxRunner, enrollments EnrollmentStore, records RecordReader, employees EmployeeLookup, audit AuditStore, cache StatsCache, hub EventHub, loc *time.Location) *TrainingService {
	if loc == nil {
		loc = time.UTC
	}
	return &TrainingService{
		txRunner:    txRunner,
		enrollments: enrollments,
		records:     records,
		employees:   employees,
		audit:       audit,
		cache:       cache,
		hub:         hub,
		loc:         loc,
		now:         time.Now,
	}
}

type EnrollRequest struct {
	ActorID    string
	CourseID   string
	EmployeeID string
}

// Enroll adds an employee to an open course with free seats. The course row
// stays locked until commit so two enrollments cannot take the last seat.
func (s *TrainingService) Enroll(ctx context.Context, req EnrollRequest) (map[string]any, error) {
	if req.CourseID == "" || req.EmployeeID == "" {
		return nil, errs.Validation("courseId and employeeId are required")
	}
	id := uuid.NewString()
	var doc map[string]any
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		course, err := s.enrollments.CourseForUpdate(ctx, tx, req.CourseID)
		if err != nil {
			return notFound(err, resource.TrainingCourses.Name)
		}
		if closedCourseStatuses[course.Status] {
			return errs.BusinessRule("Training course is not open for enrollment")
		}
		exists, err := s.employees.Exists(ctx, tx, req.EmployeeID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NotFound("Employee")
		}
		enrolled, err := s.enrollments.IsEnrolled(ctx, tx, req.CourseID, req.EmployeeID)
		if err != nil {
			return err
		}
		if enrolled {
			return errs.BusinessRule(resource.TrainingEnrollments.UniqueMessage)
		}
		if course.MaxParticipants != nil && course.Enrolled >= *course.MaxParticipants {
			return errs.BusinessRule("Training course is full")
		}
		today := s.now().In(s.loc).Format(hr.DateLayout)
		if err := s.enrollments.Insert(ctx, tx, id, req.CourseID, req.EmployeeID, today); err != nil {
			return err
		}
		if err := s.audit.Log(ctx, tx, actor(req.ActorID), "enroll", resource.TrainingEnrollments.Path, id, auditData(map[string]string{
			"courseId":   req.CourseID,
			"employeeId": req.EmployeeID,
		})); err != nil {
			return err
		}
		doc, err = s.records.GetTx(ctx, tx, id)
		return err
	})
	if errs.IsUniqueViolation(err) {
		return nil, errs.BusinessRule(resource.TrainingEnrollments.UniqueMessage)
	}
	if err != nil {
		return nil, classified(err, "training: enroll")
	}
	s.cache.Invalidate(resource.TrainingEnrollments.Path)
	s.cache.Invalidate(resource.TrainingCourses.Path)
	s.hub.Broadcast(websocket.Event{Type: websocket.EventCreated, Resource: resource.TrainingEnrollments.Path, ID: id})
	return doc, nil
}
