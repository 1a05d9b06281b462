package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

func TestApplicationServiceVerifyInvalidatesDashboards(t *testing.T) {
	repo := &dashboardUpstreamStub{ero: &models.ERODashboard{}}
	cacheRepo := newCacheRepoStub()
	cache := NewCacheService(cacheRepo, nil, 0, nil, true)
	dashboards := NewDashboardService(repo, cache, nil, DashboardServiceConfig{})
	journal := &journalStub{}
	svc := NewApplicationService(ApplicationServiceParams{Repo: repo, Dashboards: dashboards, Journal: journal})

	_, _, err := dashboards.ERO(context.Background(), callerFor(roSource), "")
	require.NoError(t, err)
	key := eroCacheKey(roSource)
	require.True(t, cacheRepo.has(key))

	resp, err := svc.Verify(context.Background(), callerFor(roSource), "APP-7")
	require.NoError(t, err)
	assert.Equal(t, "APP-7", resp.ID)
	assert.Equal(t, "Application verified successfully.", resp.Message)
	assert.Equal(t, []string{"APP-7"}, repo.verified)
	assert.False(t, cacheRepo.has(key))

	require.Len(t, journal.entries, 1)
	assert.Equal(t, "application", journal.entries[0].TargetType)
	assert.Equal(t, "verify", journal.entries[0].Action)
}

func TestApplicationServiceRejectRules(t *testing.T) {
	repo := &dashboardUpstreamStub{}
	svc := NewApplicationService(ApplicationServiceParams{Repo: repo})

	_, err := svc.Reject(context.Background(), callerFor(roSource), "APP-1", "short")
	require.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
	require.Empty(t, repo.rejectReasons)

	_, err = svc.Reject(context.Background(), callerFor(ceoKarnataka), "APP-1", "Documents are illegible")
	require.True(t, appErrors.IsCode(err, appErrors.ErrForbidden.Code))

	resp, err := svc.Reject(context.Background(), callerFor(deoBengaluru), "APP-1", " Documents are illegible ")
	require.NoError(t, err)
	assert.Equal(t, "Application rejected", resp.Message)
	assert.Equal(t, "Documents are illegible", repo.rejectReasons["APP-1"])
}

func TestApplicationServiceSharesGuard(t *testing.T) {
	guard := NewInFlightGuard()
	release, ok := guard.Acquire("application:APP-9")
	require.True(t, ok)
	defer release()

	svc := NewApplicationService(ApplicationServiceParams{Repo: &dashboardUpstreamStub{}, Guard: guard})
	_, err := svc.Verify(context.Background(), callerFor(roSource), "APP-9")
	require.True(t, appErrors.IsCode(err, appErrors.ErrActionInFlight.Code))
}
