package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetGetInvalidate(t *testing.T) {
	c := New(time.Minute)
	c.Set("invoices", 42)
	c.SetDashboard("summary")

	got, ok := c.Get("invoices")
	require.True(t, ok)
	require.Equal(t, 42, got)

	c.Invalidate("invoices")
	_, ok = c.Get("invoices")
	require.False(t, ok)
	_, ok = c.Dashboard()
	require.False(t, ok)
}

func TestInvalidateLeavesOtherResources(t *testing.T) {
	c := New(time.Minute)
	c.Set("invoices", 1)
	c.Set("bills", 2)
	c.Invalidate("invoices")
	got, ok := c.Get("bills")
	require.True(t, ok)
	require.Equal(t, 2, got)
}

func TestDisabledCache(t *testing.T) {
	c := New(0)
	c.Set("invoices", 1)
	_, ok := c.Get("invoices")
	require.False(t, ok)
	c.Invalidate("invoices")

	var nilCache *StatsCache
	_, ok = nilCache.Get("invoices")
	require.False(t, ok)
}

func TestEntriesExpire(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Set("invoices", 1)
	time.Sleep(40 * time.Millisecond)
	_, ok := c.Get("invoices")
	require.False(t, ok)
}
