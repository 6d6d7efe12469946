package services

import (
	"context"
	"testing"

	"dicel-erp/internal/errs"
	"dicel-erp/internal/models"
	"dicel-erp/internal/store"
	"dicel-erp/internal/websocket"
)

// stubPayrollStore keeps the set of paid employees so repeated runs behave
// like the real ON CONFLICT insert.
type stubPayrollStore struct {
	employees []models.PayrollCandidate
	paid      map[string]store.PayrollInput
	limits    []int
}

func (s *stubPayrollStore) pending() []models.PayrollCandidate {
	var out []models.PayrollCandidate
	for _, employee := range s.employees {
		if _, ok := s.paid[employee.EmployeeID]; !ok {
			out = append(out, employee)
		}
	}
	return out
}

func (s *stubPayrollStore) PendingEmployees(_ context.Context, _ store.Selecter, _, _, limit int) ([]models.PayrollCandidate, error) {
	s.limits = append(s.limits, limit)
	pending := s.pending()
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *stubPayrollStore) CountPending(context.Context, store.Getter, int, int) (int, error) {
	return len(s.pending()), nil
}

func (s *stubPayrollStore) Insert(_ context.Context, _ store.Execer, input store.PayrollInput) (bool, error) {
	if _, ok := s.paid[input.EmployeeID]; ok {
		return false, nil
	}
	s.paid[input.EmployeeID] = input
	return true, nil
}

func TestPayrollProcessComputesAmounts(t *testing.T) {
	payroll := &stubPayrollStore{
		employees: []models.PayrollCandidate{{EmployeeID: "emp-1", BasicSalary: "100000.00"}},
		paid:      map[string]store.PayrollInput{},
	}
	hub := &recordingHub{}
	svc := NewPayrollService(fakeTxRunner{}, payroll, &recordingAudit{}, newRecordingCache(), hub, 500)
	run, err := svc.Process(context.Background(), "admin-1", 3, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Processed != 1 || run.Remaining != 0 {
		t.Fatalf("unexpected run: %#v", run)
	}
	record := payroll.paid["emp-1"]
	if record.Allowances != "10000.00" || record.Deductions != "15000.00" || record.NetSalary != "95000.00" {
		t.Fatalf("unexpected amounts: %#v", record)
	}
	if record.CreatedBy != "admin-1" || record.Month != 3 || record.Year != 2024 {
		t.Fatalf("unexpected record: %#v", record)
	}
	if len(hub.broadcast) != 1 || hub.broadcast[0].Type != websocket.EventPayroll {
		t.Fatalf("unexpected events: %#v", hub.broadcast)
	}
}

func TestPayrollProcessIsIdempotent(t *testing.T) {
	payroll := &stubPayrollStore{
		employees: []models.PayrollCandidate{
			{EmployeeID: "emp-1", BasicSalary: "1000.00"},
			{EmployeeID: "emp-2", BasicSalary: "2000.00"},
		},
		paid: map[string]store.PayrollInput{},
	}
	hub := &recordingHub{}
	svc := NewPayrollService(fakeTxRunner{}, payroll, &recordingAudit{}, newRecordingCache(), hub, 500)
	ctx := context.Background()
	if _, err := svc.Process(ctx, "admin-1", 3, 2024); err != nil {
		t.Fatalf("first run: %v", err)
	}
	run, err := svc.Process(ctx, "admin-1", 3, 2024)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if run.Processed != 0 || len(payroll.paid) != 2 {
		t.Fatalf("second run must not duplicate: %#v %d", run, len(payroll.paid))
	}
	if len(hub.broadcast) != 1 {
		t.Fatalf("empty run must not broadcast")
	}
}

func TestPayrollProcessBatches(t *testing.T) {
	payroll := &stubPayrollStore{paid: map[string]store.PayrollInput{}}
	for _, id := range []string{"emp-1", "emp-2", "emp-3", "emp-4", "emp-5"} {
		payroll.employees = append(payroll.employees, models.PayrollCandidate{EmployeeID: id, BasicSalary: "500"})
	}
	svc := NewPayrollService(fakeTxRunner{}, payroll, &recordingAudit{}, newRecordingCache(), &recordingHub{}, 2)
	ctx := context.Background()

	run, err := svc.Process(ctx, "admin-1", 1, 2025)
	if err != nil || run.Processed != 2 || run.Remaining != 3 {
		t.Fatalf("unexpected first batch: %#v %v", run, err)
	}
	for run.Remaining > 0 {
		if run, err = svc.Process(ctx, "admin-1", 1, 2025); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(payroll.paid) != 5 {
		t.Fatalf("expected every employee paid once, got %d", len(payroll.paid))
	}
	for _, limit := range payroll.limits {
		if limit != 2 {
			t.Fatalf("batch size not applied: %v", payroll.limits)
		}
	}
}

func TestPayrollProcessValidatesPeriod(t *testing.T) {
	svc := NewPayrollService(fakeTxRunner{}, &stubPayrollStore{}, &recordingAudit{}, newRecordingCache(), &recordingHub{}, 10)
	for _, month := range []int{0, 13} {
		if _, err := svc.Process(context.Background(), "admin-1", month, 2024); errs.Kind(err) != errs.KindValidation {
			t.Fatalf("month %d: expected validation error, got %v", month, err)
		}
	}
	if _, err := svc.Process(context.Background(), "admin-1", 5, 0); errs.Kind(err) != errs.KindValidation {
		t.Fatalf("expected validation error for year, got %v", err)
	}
}
