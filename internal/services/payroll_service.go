package services

import (
	"context"
	"fmt"

	"dicel-erp/internal/db"
	"dicel-erp/internal/errs"
	"dicel-erp/internal/hr"
	"dicel-erp/internal/models"
	"dicel-erp/internal/money"
	"dicel-erp/internal/resource"
	"dicel-erp/internal/store"
	"dicel-erp/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PayrollStore interface {
	PendingEmployees(ctx context.Context, tx store.Selecter, month, year, limit int) ([]models.PayrollCandidate, error)
	CountPending(ctx context.Context, tx store.Getter, month, year int) (int, error)
	Insert(ctx context.Context, tx store.Execer, input store.PayrollInput) (bool, error)
}

type PayrollService struct {
	txRunner  db.TxRunner
	payroll   PayrollStore
	audit     AuditStore
	cache     StatsCache
	hub       EventHub
	batchSize int
}

func NewPayrollService(txRunner db.TxRunner, payroll PayrollStore, audit AuditStore, cache StatsCache, hub EventHub, batchSize int) *PayrollService {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &PayrollService{txRunner: txRunner, payroll: payroll, audit: audit, cache: cache, hub: hub, batchSize: batchSize}
}

type PayrollRun struct {
	Month     int `json:"month"`
	Year      int `json:"year"`
	Processed int `json:"processed"`
	Remaining int `json:"remaining"`
}

// Process writes payroll records for up to one batch of active employees
// that have none for the period. Calling it again picks up where the
// previous batch stopped; employees already paid are never duplicated.
func (s *PayrollService) Process(ctx context.Context, actorID string, month, year int) (PayrollRun, error) {
	if month < 1 || month > 12 {
		return PayrollRun{}, errs.Validation("month must be between 1 and 12")
	}
	if year < 1900 || year > 9999 {
		return PayrollRun{}, errs.Validation("year must be between 1900 and 9999")
	}
	run := PayrollRun{Month: month, Year: year}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		run.Processed = 0
		candidates, err := s.payroll.PendingEmployees(ctx, tx, month, year, s.batchSize)
		if err != nil {
			return err
		}
		for _, candidate := range candidates {
			basic, err := money.Parse(candidate.BasicSalary)
			if err != nil {
				return errs.Wrap(err, "payroll: basic salary of "+candidate.EmployeeID)
			}
			amounts := hr.ComputePayroll(basic)
			inserted, err := s.payroll.Insert(ctx, tx, store.PayrollInput{
				ID:          uuid.NewString(),
				EmployeeID:  candidate.EmployeeID,
				Month:       month,
				Year:        year,
				BasicSalary: money.Format(amounts.BasicSalary),
				Allowances:  money.Format(amounts.Allowances),
				Deductions:  money.Format(amounts.Deductions),
				NetSalary:   money.Format(amounts.NetSalary),
				CreatedBy:   actorID,
			})
			if err != nil {
				return err
			}
			if inserted {
				run.Processed++
			}
		}
		run.Remaining, err = s.payroll.CountPending(ctx, tx, month, year)
		if err != nil {
			return err
		}
		return s.audit.Log(ctx, tx, actor(actorID), "process", resource.PayrollRecords.Path, fmt.Sprintf("%04d-%02d", year, month), auditData(run))
	})
	if err != nil {
		return PayrollRun{}, classified(err, "payroll: process")
	}
	if run.Processed > 0 {
		s.cache.Invalidate(resource.PayrollRecords.Path)
		s.hub.Broadcast(websocket.Event{Type: websocket.EventPayroll, Resource: resource.PayrollRecords.Path})
	}
	return run, nil
}
