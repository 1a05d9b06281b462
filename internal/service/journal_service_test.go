package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

type journalRepoStub struct {
	mu       sync.Mutex
	inserted []models.JournalEntry
	failures int
	filter   models.JournalFilter
}

func (r *journalRepoStub) Insert(ctx context.Context, entry *models.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.New("connection reset")
	}
	r.inserted = append(r.inserted, *entry)
	return nil
}

func (r *journalRepoStub) List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = filter
	return append([]models.JournalEntry(nil), r.inserted...), nil
}

func (r *journalRepoStub) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inserted)
}

func TestJournalServicePersistsAsynchronously(t *testing.T) {
	repo := &journalRepoStub{failures: 1}
	svc := NewJournalService(repo, NewMetricsService(), nil, JournalConfig{Enabled: true, Workers: 1, RetryDelay: 5 * time.Millisecond})
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Record(context.Background(), models.JournalEntry{ActorID: "ro-src", TargetType: "migration", TargetID: "mig-1", Action: "approve", Outcome: models.OutcomeSucceeded})

	require.Eventually(t, func() bool { return repo.count() == 1 }, time.Second, 5*time.Millisecond)
	entry := repo.inserted[0]
	require.NotEmpty(t, entry.ID)
	require.False(t, entry.CreatedAt.IsZero())
}

func TestJournalServiceStopFlushes(t *testing.T) {
	repo := &journalRepoStub{}
	svc := NewJournalService(repo, nil, nil, JournalConfig{Enabled: true, Workers: 1, BufferSize: 16})
	svc.Start(context.Background())
	for i := 0; i < 5; i++ {
		svc.Record(context.Background(), models.JournalEntry{TargetID: "mig-1", Action: "reject"})
	}
	svc.Stop()
	require.Equal(t, 5, repo.count())
}

func TestJournalServiceDisabledOnlyLogs(t *testing.T) {
	repo := &journalRepoStub{}
	svc := NewJournalService(repo, nil, nil, JournalConfig{Enabled: false})
	require.False(t, svc.Enabled())
	svc.Start(context.Background())
	svc.Record(context.Background(), models.JournalEntry{TargetID: "mig-1"})
	svc.Stop()
	require.Zero(t, repo.count())
}

func TestJournalServiceListRequiresNationalRole(t *testing.T) {
	repo := &journalRepoStub{}
	svc := NewJournalService(repo, nil, nil, JournalConfig{Enabled: true})

	_, err := svc.List(context.Background(), callerFor(roSource), models.JournalFilter{})
	require.True(t, appErrors.IsCode(err, appErrors.ErrForbidden.Code))

	entries, err := svc.List(context.Background(), callerFor(models.Actor{ID: "cec", Role: models.RoleCEC}), models.JournalFilter{TargetID: "mig-1"})
	require.NoError(t, err)
	require.Empty(t, entries)
	require.Equal(t, "mig-1", repo.filter.TargetID)
}
