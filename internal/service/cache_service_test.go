package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheServiceHitMissAndMetrics(t *testing.T) {
	repo := newCacheRepoStub()
	metrics := NewMetricsService()
	svc := NewCacheService(repo, metrics, 0, nil, true)

	var out map[string]int
	hit, err := svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "k", map[string]int{"a": 1}, 0))
	hit, err = svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, 1, out["a"])

	snap := metrics.Snapshot()
	require.Equal(t, uint64(1), snap.CacheHits)
	require.Equal(t, uint64(1), snap.CacheMisses)
	require.InDelta(t, 0.5, snap.CacheHitRatio, 0.0001)

	require.NoError(t, svc.Invalidate(context.Background(), "k"))
	require.False(t, repo.has("k"))
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newCacheRepoStub()
	svc := NewCacheService(repo, nil, 0, nil, false)
	require.False(t, svc.Enabled())
	require.NoError(t, svc.Set(context.Background(), "k", 1, 0))
	require.False(t, repo.has("k"))

	var nilSvc *CacheService
	hit, err := nilSvc.Get(context.Background(), "k", new(int))
	require.NoError(t, err)
	require.False(t, hit)
}
