package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

const (
	targetMigration   = "migration"
	targetApplication = "application"

	defaultApproveMessage = "Migration approved successfully."
	defaultRejectMessage  = "Migration rejected successfully."
)

var marshalDecision = json.Marshal

type migrationUpstream interface {
	List(ctx context.Context, token string, status models.MigrationStatus) ([]models.MigrationRecord, *models.StatusCounts, error)
	Approve(ctx context.Context, token, id string) (string, error)
	Reject(ctx context.Context, token, id, reason string) (string, error)
}

type actionJournal interface {
	Record(ctx context.Context, entry models.JournalEntry)
}

// MigrationWorkflowConfig tunes rule evaluation.
type MigrationWorkflowConfig struct {
	Policy          PolicyOptions
	MinReasonLength int
}

// MigrationWorkflowService lists migrations with per-actor decisions and
// forwards approve/reject actions to the backend after a local pre-flight.
type MigrationWorkflowService struct {
	repo    migrationUpstream
	guard   *InFlightGuard
	journal actionJournal
	metrics *MetricsService
	logger  *zap.Logger
	cfg     MigrationWorkflowConfig
	now     func() time.Time
}

// MigrationWorkflowOption configures the service.
type MigrationWorkflowOption func(*MigrationWorkflowService)

// WithWorkflowJournal sets the action journal.
func WithWorkflowJournal(journal actionJournal) MigrationWorkflowOption {
	return func(s *MigrationWorkflowService) {
		if journal != nil {
			s.journal = journal
		}
	}
}

// WithWorkflowMetrics attaches instrumentation.
func WithWorkflowMetrics(metrics *MetricsService) MigrationWorkflowOption {
	return func(s *MigrationWorkflowService) {
		s.metrics = metrics
	}
}

// WithWorkflowGuard shares an in-flight guard with other services.
func WithWorkflowGuard(guard *InFlightGuard) MigrationWorkflowOption {
	return func(s *MigrationWorkflowService) {
		if guard != nil {
			s.guard = guard
		}
	}
}

// WithWorkflowClock overrides the time source.
func WithWorkflowClock(now func() time.Time) MigrationWorkflowOption {
	return func(s *MigrationWorkflowService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMigrationWorkflowService constructs the service with defaults.
func NewMigrationWorkflowService(repo migrationUpstream, logger *zap.Logger, cfg MigrationWorkflowConfig, opts ...MigrationWorkflowOption) *MigrationWorkflowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinReasonLength <= 0 {
		cfg.MinReasonLength = DefaultMinReasonLength
	}
	svc := &MigrationWorkflowService{
		repo:   repo,
		guard:  NewInFlightGuard(),
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// ParseStatusFilter accepts "all", an empty string or any backend spelling.
func ParseStatusFilter(raw string) (models.MigrationStatus, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return "", nil
	}
	status := models.ParseMigrationStatus(trimmed)
	if status == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid status filter %q", raw))
	}
	return status, nil
}

// List fetches migrations for the caller and attaches their decisions.
func (s *MigrationWorkflowService) List(ctx context.Context, caller models.Caller, filter string) (*dto.WorkflowListResponse, error) {
	if !models.CapabilitiesOf(caller.Actor.Role).CanView {
		return nil, forbiddenView(caller.Actor.Role)
	}
	status, err := ParseStatusFilter(filter)
	if err != nil {
		return nil, err
	}

	records, counts, err := s.repo.List(ctx, caller.Token, status)
	if err != nil {
		return nil, err
	}

	items := make([]dto.WorkflowItem, 0, len(records))
	for _, record := range records {
		if status != "" && record.Status != status {
			continue
		}
		item := s.item(caller.Actor, record)
		if !item.Actions.Visible {
			continue
		}
		items = append(items, item)
	}

	resp := &dto.WorkflowListResponse{Filter: "all", Migrations: items}
	if status != "" {
		resp.Filter = string(status)
	}
	if counts != nil {
		resp.StatusCounts = *counts
	} else {
		resp.StatusCounts = models.CountStatuses(records)
	}
	return resp, nil
}

// Approve forwards an approval after the local rules allow it.
func (s *MigrationWorkflowService) Approve(ctx context.Context, caller models.Caller, id string) (*dto.WorkflowActionResponse, error) {
	return s.act(ctx, caller, id, models.ActionApprove, "")
}

// Reject forwards a rejection. The reason is validated before any backend
// call is made.
func (s *MigrationWorkflowService) Reject(ctx context.Context, caller models.Caller, id, reason string) (*dto.WorkflowActionResponse, error) {
	if err := ValidateRejectionReason(reason, s.cfg.MinReasonLength); err != nil {
		return nil, err
	}
	return s.act(ctx, caller, id, models.ActionReject, strings.TrimSpace(reason))
}

func (s *MigrationWorkflowService) act(ctx context.Context, caller models.Caller, id string, action models.WorkflowAction, reason string) (*dto.WorkflowActionResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "migration id is required")
	}
	caps := models.CapabilitiesOf(caller.Actor.Role)
	if !caps.CanView {
		return nil, forbiddenView(caller.Actor.Role)
	}
	if (action == models.ActionApprove && !caps.CanApprove) || (action == models.ActionReject && !caps.CanReject) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s role doesn't have permission to %s migrations", roleName(caller.Actor.Role), action))
	}

	record, err := s.locate(ctx, caller.Token, id)
	if err != nil {
		return nil, err
	}

	decision := EvaluateMigration(caller.Actor, *record, s.cfg.Policy)
	if _, err := TransitionMigration(*record, TransitionInput{
		Actor:           caller.Actor,
		Action:          action,
		Reason:          reason,
		At:              s.now(),
		Policy:          s.cfg.Policy,
		MinReasonLength: s.cfg.MinReasonLength,
	}); err != nil {
		s.logger.Info("workflow action refused",
			zap.String("migration_id", id),
			zap.String("action", string(action)),
			zap.String("actor_id", caller.Actor.ID),
			zap.String("actor_role", string(caller.Actor.Role)),
			zap.Error(err),
		)
		return nil, err
	}

	release, ok := s.guard.Acquire(targetMigration + ":" + id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrActionInFlight, "")
	}
	defer release()

	var message string
	switch action {
	case models.ActionApprove:
		message, err = s.repo.Approve(ctx, caller.Token, id)
		if message == "" {
			message = defaultApproveMessage
		}
	case models.ActionReject:
		message, err = s.repo.Reject(ctx, caller.Token, id, reason)
		if message == "" {
			message = defaultRejectMessage
		}
	}
	s.record(ctx, caller, id, action, decision, err)
	if err != nil {
		return nil, err
	}

	resp := &dto.WorkflowActionResponse{Message: message}
	refreshed, err := s.locate(ctx, caller.Token, id)
	if err != nil {
		s.logger.Warn("migration refresh after action failed", zap.String("migration_id", id), zap.Error(err))
		return resp, nil
	}
	item := s.item(caller.Actor, *refreshed)
	resp.Migration = &item
	return resp, nil
}

func (s *MigrationWorkflowService) locate(ctx context.Context, token, id string) (*models.MigrationRecord, error) {
	records, _, err := s.repo.List(ctx, token, "")
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("migration %s not found", id))
}

func (s *MigrationWorkflowService) item(actor models.Actor, record models.MigrationRecord) dto.WorkflowItem {
	return dto.WorkflowItem{
		Migration:   record,
		Actions:     EvaluateMigration(actor, record, s.cfg.Policy),
		StatusLabel: record.Status.Label(),
		Interstate:  record.IsInterstate(),
	}
}

func (s *MigrationWorkflowService) record(ctx context.Context, caller models.Caller, id string, action models.WorkflowAction, decision models.Decision, err error) {
	outcome := models.OutcomeSucceeded
	detail := ""
	if err != nil {
		outcome = models.OutcomeFailed
		detail = appErrors.FromError(err).Message
	}
	s.metrics.RecordWorkflowAction(targetMigration, string(action), outcome)
	if s.journal == nil {
		return
	}
	entry := models.JournalEntry{
		ActorID:    caller.Actor.ID,
		ActorRole:  string(caller.Actor.Role),
		TargetType: targetMigration,
		TargetID:   id,
		Action:     string(action),
		Outcome:    outcome,
		Detail:     detail,
		RequestID:  caller.RequestID,
	}
	if raw, err := marshalDecision(decision); err != nil {
		s.logger.Debug("decision left out of journal entry",
			zap.String("migration_id", id),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	} else {
		entry.Decision = string(raw)
	}
	s.journal.Record(ctx, entry)
}

func forbiddenView(role models.RoleID) error {
	return appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s role doesn't have permission to view migrations", roleName(role)))
}
