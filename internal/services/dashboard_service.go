package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"dicel-erp/internal/hr"
	"dicel-erp/internal/models"

	"github.com/sourcegraph/conc/pool"
)

type DashboardStore interface {
	Metrics() []string
	Metric(ctx context.Context, name string, day time.Time) (string, error)
}

type DashboardCache interface {
	Dashboard() (any, bool)
	SetDashboard(value any)
}

const dashboardConcurrency = 4

type DashboardService struct {
	dashboard DashboardStore
	cache     DashboardCache
	loc       *time.Location
	now       func() time.Time
}

func NewDashboardService(dashboard DashboardStore, cache DashboardCache, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{dashboard: dashboard, cache: cache, loc: loc, now: time.Now}
}

// Summary evaluates every dashboard metric concurrently. The first failing
// query cancels the rest.
func (s *DashboardService) Summary(ctx context.Context) (models.DashboardSummary, error) {
	if cached, ok := s.cache.Dashboard(); ok {
		if summary, ok := cached.(models.DashboardSummary); ok {
			return summary, nil
		}
	}
	day := s.now().In(s.loc)
	var (
		mu      sync.Mutex
		metrics = make(map[string]any)
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(dashboardConcurrency)
	for _, name := range s.dashboard.Metrics() {
		p.Go(func(ctx context.Context) error {
			value, err := s.dashboard.Metric(ctx, name, day)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			metrics[name] = metricValue(value)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return models.DashboardSummary{}, classified(err, "dashboard: summary")
	}
	summary := models.DashboardSummary{AsOf: day.Format(hr.DateLayout), Metrics: metrics}
	s.cache.SetDashboard(summary)
	return summary, nil
}

// metricValue renders counts as numbers and leaves decimal totals as
// strings.
func metricValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return raw
}
