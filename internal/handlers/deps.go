package handlers

import (
	"context"

	"dicel-erp/internal/models"
	"dicel-erp/internal/query"
	"dicel-erp/internal/resource"
	"dicel-erp/internal/services"
	"dicel-erp/internal/store"
)

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, input store.UserInput) error
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, userID string) (models.User, error)
}

type AdminStore interface {
	HasAnyAdmin(ctx context.Context, tx store.Getter) (bool, error)
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	CountUsers(ctx context.Context) (int, error)
	SetRole(ctx context.Context, tx store.Execer, userID, role string) error
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID *string, action, entityType, entityID, data string) error
	List(ctx context.Context, limit, offset int) ([]models.AuditEntry, error)
	Count(ctx context.Context) (int, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type RecordService interface {
	Entity() *resource.Entity
	List(ctx context.Context, opts query.ListOptions) (query.Page, error)
	Get(ctx context.Context, id string) (map[string]any, error)
	Create(ctx context.Context, actorID string, body map[string]any) (map[string]any, error)
	Update(ctx context.Context, actorID, id string, body map[string]any) (map[string]any, error)
	Delete(ctx context.Context, actorID, id string) error
	Stats(ctx context.Context) (store.Stats, error)
}

type AttendanceService interface {
	CheckIn(ctx context.Context, req services.CheckInRequest) (map[string]any, error)
	CheckOut(ctx context.Context, req services.CheckOutRequest) (map[string]any, error)
}

type LeaveService interface {
	UpdateStatus(ctx context.Context, req services.LeaveStatusRequest) (map[string]any, error)
}

type PayrollService interface {
	Process(ctx context.Context, actorID string, month, year int) (services.PayrollRun, error)
}

type TrainingService interface {
	Enroll(ctx context.Context, req services.EnrollRequest) (map[string]any, error)
}

type DashboardService interface {
	Summary(ctx context.Context) (models.DashboardSummary, error)
}
