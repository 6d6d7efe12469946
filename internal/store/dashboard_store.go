package store

import (
	"context"
	"fmt"
	"sort"
	"time"
)

type metric struct {
	sql   string
	dated bool
}

// Dashboard metrics are single scalar queries rendered as text so counts
// and decimal totals travel the same way. Dated metrics take the reference
// day as $1.
var dashboardMetrics = map[string]metric{
	"employees":           {sql: `SELECT COUNT(*)::text FROM employees WHERE is_active`},
	"departments":         {sql: `SELECT COUNT(*)::text FROM departments WHERE is_active`},
	"activeProjects":      {sql: `SELECT COUNT(*)::text FROM projects WHERE is_active AND status = 'Active'`},
	"openTasks":           {sql: `SELECT COUNT(*)::text FROM tasks WHERE is_active AND status <> 'Done'`},
	"pendingLeave":        {sql: `SELECT COUNT(*)::text FROM leave_requests WHERE is_active AND status = 'Pending'`},
	"presentToday":        {sql: `SELECT COUNT(*)::text FROM attendance_records WHERE is_active AND date = $1::date AND check_in_time IS NOT NULL`, dated: true},
	"outstandingInvoices": {sql: `SELECT COALESCE(SUM(total_amount - COALESCE(paid_amount, 0)), 0)::numeric(14,2)::text FROM invoices WHERE is_active AND status IN ('Sent', 'Overdue')`},
	"unpaidBills":         {sql: `SELECT COALESCE(SUM(total_amount - COALESCE(paid_amount, 0)), 0)::numeric(14,2)::text FROM bills WHERE is_active AND status IN ('Pending', 'Overdue')`},
	"monthExpenses":       {sql: `SELECT COALESCE(SUM(amount), 0)::numeric(14,2)::text FROM expenses WHERE is_active AND date_trunc('month', expense_date) = date_trunc('month', $1::date)`, dated: true},
	"lowStockItems":       {sql: `SELECT COUNT(*)::text FROM inventory_items WHERE is_active AND quantity <= COALESCE(reorder_level, 0)`},
	"openLeads":           {sql: `SELECT COUNT(*)::text FROM leads WHERE is_active AND status NOT IN ('Won', 'Lost')`},
	"pipelineValue":       {sql: `SELECT COALESCE(SUM(estimated_value), 0)::numeric(14,2)::text FROM leads WHERE is_active AND status NOT IN ('Won', 'Lost')`},
}

type DashboardStore struct {
	db DB
}

func NewDashboardStore(db DB) *DashboardStore {
	return &DashboardStore{db: db}
}

func (s *DashboardStore) Metrics() []string {
	names := make([]string, 0, len(dashboardMetrics))
	for name := range dashboardMetrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *DashboardStore) Metric(ctx context.Context, name string, day time.Time) (string, error) {
	m, ok := dashboardMetrics[name]
	if !ok {
		return "", fmt.Errorf("unknown dashboard metric %q", name)
	}
	var value string
	if m.dated {
		err := s.db.GetContext(ctx, &value, m.sql, day.Format(time.DateOnly))
		return value, err
	}
	err := s.db.GetContext(ctx, &value, m.sql)
	return value, err
}

// Ping is used by the health check.
func (s *DashboardStore) Ping(ctx context.Context) error {
	var one int
	return s.db.GetContext(ctx, &one, `SELECT 1`)
}
