package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/erolls-portal/internal/dto"
	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

type applicationUpstream interface {
	VerifyApplication(ctx context.Context, token, id string) (string, error)
	RejectApplication(ctx context.Context, token, id, reason string) (string, error)
}

type dashboardInvalidator interface {
	InvalidateScope(ctx context.Context, actor models.Actor)
}

// ApplicationService verifies or rejects elector applications from the
// registration queue.
type ApplicationService struct {
	repo            applicationUpstream
	dashboards      dashboardInvalidator
	guard           *InFlightGuard
	journal         actionJournal
	metrics         *MetricsService
	logger          *zap.Logger
	minReasonLength int
}

// ApplicationServiceParams groups constructor dependencies.
type ApplicationServiceParams struct {
	Repo            applicationUpstream
	Dashboards      dashboardInvalidator
	Guard           *InFlightGuard
	Journal         actionJournal
	Metrics         *MetricsService
	Logger          *zap.Logger
	MinReasonLength int
}

// NewApplicationService constructs the service.
func NewApplicationService(params ApplicationServiceParams) *ApplicationService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	guard := params.Guard
	if guard == nil {
		guard = NewInFlightGuard()
	}
	minLen := params.MinReasonLength
	if minLen <= 0 {
		minLen = DefaultMinReasonLength
	}
	return &ApplicationService{
		repo:            params.Repo,
		dashboards:      params.Dashboards,
		guard:           guard,
		journal:         params.Journal,
		metrics:         params.Metrics,
		logger:          logger,
		minReasonLength: minLen,
	}
}

// Verify marks an application verified.
func (s *ApplicationService) Verify(ctx context.Context, caller models.Caller, id string) (*dto.ApplicationActionResponse, error) {
	return s.act(ctx, caller, id, "verify", "")
}

// Reject rejects an application with a reason.
func (s *ApplicationService) Reject(ctx context.Context, caller models.Caller, id, reason string) (*dto.ApplicationActionResponse, error) {
	if err := ValidateRejectionReason(reason, s.minReasonLength); err != nil {
		return nil, err
	}
	return s.act(ctx, caller, id, string(models.ActionReject), strings.TrimSpace(reason))
}

func (s *ApplicationService) act(ctx context.Context, caller models.Caller, id, action, reason string) (*dto.ApplicationActionResponse, error) {
	actor := caller.Actor
	if actor.Role != models.RoleDEO && actor.Role != models.RoleRO {
		return nil, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s role cannot %s applications", roleName(actor.Role), action))
	}
	if missing := actor.MissingJurisdiction(); len(missing) > 0 {
		return nil, missingScope(missing)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "application id is required")
	}

	release, ok := s.guard.Acquire(targetApplication + ":" + id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrActionInFlight, "")
	}
	defer release()

	var (
		message string
		err     error
	)
	if action == "verify" {
		message, err = s.repo.VerifyApplication(ctx, caller.Token, id)
		if message == "" {
			message = "Application verified successfully."
		}
	} else {
		message, err = s.repo.RejectApplication(ctx, caller.Token, id, reason)
		if message == "" {
			message = "Application rejected successfully."
		}
	}

	outcome := models.OutcomeSucceeded
	detail := ""
	if err != nil {
		outcome = models.OutcomeFailed
		detail = appErrors.FromError(err).Message
	}
	s.metrics.RecordWorkflowAction(targetApplication, action, outcome)
	if s.journal != nil {
		s.journal.Record(ctx, models.JournalEntry{
			ActorID:    actor.ID,
			ActorRole:  string(actor.Role),
			TargetType: targetApplication,
			TargetID:   id,
			Action:     action,
			Outcome:    outcome,
			Detail:     detail,
			RequestID:  caller.RequestID,
		})
	}
	if err != nil {
		return nil, err
	}

	if s.dashboards != nil {
		s.dashboards.InvalidateScope(ctx, actor)
	}
	return &dto.ApplicationActionResponse{ID: id, Message: message}, nil
}
