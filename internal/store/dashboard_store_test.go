package store

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestDashboardStoreMetricsSorted(t *testing.T) {
	store := NewDashboardStore(stubDB{})
	names := store.Metrics()
	if len(names) != len(dashboardMetrics) {
		t.Fatalf("unexpected metric count: %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("metrics not sorted: %v", names)
		}
	}
}

func TestDashboardStoreDatedMetric(t *testing.T) {
	store := NewDashboardStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM attendance_records") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != "2024-03-01" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*string) = "12"
			return nil
		},
	})
	value, err := store.Metric(context.Background(), "presentToday", time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC))
	if err != nil || value != "12" {
		t.Fatalf("unexpected value: %s %v", value, err)
	}
}

func TestDashboardStoreUndatedMetric(t *testing.T) {
	store := NewDashboardStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if len(args) != 0 {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*string) = "1500.00"
			return nil
		},
	})
	value, err := store.Metric(context.Background(), "outstandingInvoices", time.Now())
	if err != nil || value != "1500.00" {
		t.Fatalf("unexpected value: %s %v", value, err)
	}
}

func TestDashboardStoreUnknownMetric(t *testing.T) {
	store := NewDashboardStore(stubDB{})
	if _, err := store.Metric(context.Background(), "revenue", time.Now()); err == nil {
		t.Fatalf("expected error for unknown metric")
	}
}
