package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

type migrationUpstreamStub struct {
	mu          sync.Mutex
	records     []models.MigrationRecord
	counts      *models.StatusCounts
	listCalls   int
	lastStatus  models.MigrationStatus
	approved    []string
	rejected    map[string]string
	actionErr   error
	approveHook func()
}

func newMigrationUpstreamStub(records ...models.MigrationRecord) *migrationUpstreamStub {
	return &migrationUpstreamStub{records: records, rejected: map[string]string{}}
}

func (s *migrationUpstreamStub) List(ctx context.Context, token string, status models.MigrationStatus) ([]models.MigrationRecord, *models.StatusCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	s.lastStatus = status
	out := make([]models.MigrationRecord, len(s.records))
	copy(out, s.records)
	return out, s.counts, nil
}

func (s *migrationUpstreamStub) Approve(ctx context.Context, token, id string) (string, error) {
	if s.approveHook != nil {
		s.approveHook()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.actionErr != nil {
		return "", s.actionErr
	}
	s.approved = append(s.approved, id)
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].SourceRoApproved = true
			s.records[i].Status = models.MigrationCompleted
		}
	}
	return "Migration approved by source RO", nil
}

func (s *migrationUpstreamStub) Reject(ctx context.Context, token, id, reason string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.actionErr != nil {
		return "", s.actionErr
	}
	s.rejected[id] = reason
	return "", nil
}

func (s *migrationUpstreamStub) calls() (list int, approved int, rejected int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls, len(s.approved), len(s.rejected)
}

type journalStub struct {
	mu      sync.Mutex
	entries []models.JournalEntry
}

func (j *journalStub) Record(ctx context.Context, entry models.JournalEntry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

func newWorkflowService(repo migrationUpstream, journal actionJournal) *MigrationWorkflowService {
	return NewMigrationWorkflowService(repo, nil, MigrationWorkflowConfig{}, WithWorkflowJournal(journal),
		WithWorkflowClock(func() time.Time { return transitionAt }))
}

func callerFor(actor models.Actor) models.Caller {
	return models.Caller{Actor: actor, Token: "token-" + actor.ID, RequestID: "req-1"}
}

func TestMigrationWorkflowListAttachesDecisions(t *testing.T) {
	completed := intrastateRecord(models.MigrationCompleted)
	completed.ID = "mig-done"
	repo := newMigrationUpstreamStub(intrastateRecord(models.MigrationPending), interstateRecord(models.MigrationPending), completed)
	svc := newWorkflowService(repo, nil)

	resp, err := svc.List(context.Background(), callerFor(roSource), "all")
	require.NoError(t, err)
	require.Equal(t, "all", resp.Filter)
	require.Len(t, resp.Migrations, 3)
	assert.Equal(t, models.StatusCounts{All: 3, Pending: 2, Completed: 1}, resp.StatusCounts)

	byID := map[string]models.Decision{}
	for _, item := range resp.Migrations {
		byID[item.Migration.ID] = item.Actions
	}
	assert.True(t, byID["mig-1"].CanApproveAsSource)
	assert.True(t, byID["mig-2"].CanApproveAsSource)
	assert.True(t, resp.Migrations[1].Interstate)
	assert.False(t, byID["mig-done"].CanApprove)
	assert.False(t, byID["mig-done"].CanReject)
}

func TestMigrationWorkflowListFiltersLocally(t *testing.T) {
	partial := interstateRecord(models.MigrationPartial)
	partial.SourceRoApproved = true
	repo := newMigrationUpstreamStub(intrastateRecord(models.MigrationPending), partial)
	repo.counts = &models.StatusCounts{All: 10, Pending: 6, Partial: 4}
	svc := newWorkflowService(repo, nil)

	resp, err := svc.List(context.Background(), callerFor(roDest), "in_progress")
	require.NoError(t, err)
	require.Equal(t, models.MigrationPartial, repo.lastStatus)
	require.Equal(t, "partial", resp.Filter)
	require.Len(t, resp.Migrations, 1)
	assert.True(t, resp.Migrations[0].Actions.CanApproveAsDestination)
	assert.Equal(t, 10, resp.StatusCounts.All)
}

func TestMigrationWorkflowListRejectsInvalidFilterAndCitizen(t *testing.T) {
	svc := newWorkflowService(newMigrationUpstreamStub(), nil)

	_, err := svc.List(context.Background(), callerFor(roSource), "archived")
	require.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))

	_, err = svc.List(context.Background(), callerFor(models.Actor{ID: "c-1", Role: models.RoleCitizen}), "all")
	require.True(t, appErrors.IsCode(err, appErrors.ErrForbidden.Code))
}

func TestMigrationWorkflowApproveForwardsAndRefreshes(t *testing.T) {
	repo := newMigrationUpstreamStub(intrastateRecord(models.MigrationPending))
	journal := &journalStub{}
	svc := newWorkflowService(repo, journal)

	resp, err := svc.Approve(context.Background(), callerFor(roSource), "mig-1")
	require.NoError(t, err)
	require.Equal(t, "Migration approved by source RO", resp.Message)
	require.NotNil(t, resp.Migration)
	assert.Equal(t, models.MigrationCompleted, resp.Migration.Migration.Status)
	assert.False(t, resp.Migration.Actions.CanApprove)

	list, approved, _ := repo.calls()
	assert.Equal(t, 2, list)
	assert.Equal(t, 1, approved)

	require.Len(t, journal.entries, 1)
	entry := journal.entries[0]
	assert.Equal(t, "ro-src", entry.ActorID)
	assert.Equal(t, "migration", entry.TargetType)
	assert.Equal(t, models.OutcomeSucceeded, entry.Outcome)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Contains(t, entry.Decision, `"approveLeg":"source"`)
}

func TestMigrationWorkflowShortReasonMakesNoCalls(t *testing.T) {
	repo := newMigrationUpstreamStub(intrastateRecord(models.MigrationPending))
	journal := &journalStub{}
	svc := newWorkflowService(repo, journal)

	_, err := svc.Reject(context.Background(), callerFor(roSource), "mig-1", "  too short ")
	require.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))

	list, _, rejected := repo.calls()
	assert.Zero(t, list)
	assert.Zero(t, rejected)
	assert.Empty(t, journal.entries)
}

func TestMigrationWorkflowRejectTrimsReason(t *testing.T) {
	repo := newMigrationUpstreamStub(interstateRecord(models.MigrationPending))
	svc := newWorkflowService(repo, nil)

	resp, err := svc.Reject(context.Background(), callerFor(roDest), "mig-2", "  Address proof does not match  ")
	require.NoError(t, err)
	assert.Equal(t, "Migration rejected successfully.", resp.Message)
	assert.Equal(t, "Address proof does not match", repo.rejected["mig-2"])
}

func TestMigrationWorkflowPreflightRefusesWithoutUpstreamCall(t *testing.T) {
	repo := newMigrationUpstreamStub(interstateRecord(models.MigrationPending))
	journal := &journalStub{}
	svc := newWorkflowService(repo, journal)

	_, err := svc.Approve(context.Background(), callerFor(roDest), "mig-2")
	require.True(t, appErrors.IsCode(err, appErrors.ErrInvalidTransition.Code))

	_, approved, _ := repo.calls()
	assert.Zero(t, approved)
	assert.Empty(t, journal.entries)

	_, err = svc.Approve(context.Background(), callerFor(ceoKarnataka), "mig-2")
	require.True(t, appErrors.IsCode(err, appErrors.ErrInvalidTransition.Code))
}

func TestMigrationWorkflowForbiddenRolesSkipFetch(t *testing.T) {
	repo := newMigrationUpstreamStub(intrastateRecord(models.MigrationPending))
	svc := newWorkflowService(repo, nil)

	_, err := svc.Approve(context.Background(), callerFor(models.Actor{ID: "cec", Role: models.RoleCEC}), "mig-1")
	require.True(t, appErrors.IsCode(err, appErrors.ErrForbidden.Code))
	require.Contains(t, err.Error(), "CEC role doesn't have permission to approve migrations")

	list, _, _ := repo.calls()
	assert.Zero(t, list)
}

func TestMigrationWorkflowUnknownRecord(t *testing.T) {
	svc := newWorkflowService(newMigrationUpstreamStub(), nil)
	_, err := svc.Approve(context.Background(), callerFor(roSource), "missing")
	require.True(t, appErrors.IsCode(err, appErrors.ErrNotFound.Code))
}

func TestMigrationWorkflowUpstreamDetailJournaled(t *testing.T) {
	repo := newMigrationUpstreamStub(intrastateRecord(models.MigrationPending))
	repo.actionErr = appErrors.Upstream(409, "Migration already processed")
	journal := &journalStub{}
	svc := newWorkflowService(repo, journal)

	_, err := svc.Approve(context.Background(), callerFor(roSource), "mig-1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, "Migration already processed", appErr.Message)

	require.Len(t, journal.entries, 1)
	assert.Equal(t, models.OutcomeFailed, journal.entries[0].Outcome)
	assert.Equal(t, "Migration already processed", journal.entries[0].Detail)
}

func TestMigrationWorkflowJournalsDecision(t *testing.T) {
	repo := newMigrationUpstreamStub(intrastateRecord(models.MigrationPending))
	journal := &journalStub{}
	svc := newWorkflowService(repo, journal)

	_, err := svc.Approve(context.Background(), callerFor(roSource), "mig-1")
	require.NoError(t, err)
	require.Len(t, journal.entries, 1)
	assert.Contains(t, journal.entries[0].Decision, `"canApproveAsSource":true`)
}

func TestMigrationWorkflowUnencodableDecisionStillJournaled(t *testing.T) {
	original := marshalDecision
	marshalDecision = func(interface{}) ([]byte, error) { return nil, errors.New("encoder unavailable") }
	t.Cleanup(func() { marshalDecision = original })

	core, logs := observer.New(zapcore.DebugLevel)
	repo := newMigrationUpstreamStub(intrastateRecord(models.MigrationPending))
	journal := &journalStub{}
	svc := NewMigrationWorkflowService(repo, zap.New(core), MigrationWorkflowConfig{}, WithWorkflowJournal(journal),
		WithWorkflowClock(func() time.Time { return transitionAt }))

	_, err := svc.Approve(context.Background(), callerFor(roSource), "mig-1")
	require.NoError(t, err)

	require.Len(t, journal.entries, 1)
	assert.Empty(t, journal.entries[0].Decision)
	assert.Equal(t, models.OutcomeSucceeded, journal.entries[0].Outcome)

	dropped := logs.FilterMessage("decision left out of journal entry").All()
	require.Len(t, dropped, 1)
	assert.Equal(t, zapcore.DebugLevel, dropped[0].Level)
	assert.Equal(t, "mig-1", dropped[0].ContextMap()["migration_id"])
}

func TestMigrationWorkflowInFlightGuard(t *testing.T) {
	repo := newMigrationUpstreamStub(intrastateRecord(models.MigrationPending))
	entered := make(chan struct{})
	release := make(chan struct{})
	repo.approveHook = func() {
		close(entered)
		<-release
	}
	svc := newWorkflowService(repo, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Approve(context.Background(), callerFor(roSource), "mig-1")
		done <- err
	}()
	<-entered

	_, err := svc.Reject(context.Background(), callerFor(roSource), "mig-1", "Duplicate application filed")
	require.True(t, appErrors.IsCode(err, appErrors.ErrActionInFlight.Code))
	assert.Equal(t, 409, appErrors.FromError(err).Status)

	close(release)
	require.NoError(t, <-done)

	_, _, rejected := repo.calls()
	assert.Zero(t, rejected)
}
