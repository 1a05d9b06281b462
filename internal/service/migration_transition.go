package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

// DefaultMinReasonLength is the shortest rejection reason accepted.
const DefaultMinReasonLength = 10

// TransitionInput carries everything the transition depends on besides the
// record itself. At is supplied by the caller so the function stays pure.
type TransitionInput struct {
	Actor           models.Actor
	Action          models.WorkflowAction
	Reason          string
	At              time.Time
	Policy          PolicyOptions
	MinReasonLength int
}

// ValidateRejectionReason enforces the minimum reason length.
func ValidateRejectionReason(reason string, minLength int) error {
	if minLength <= 0 {
		minLength = DefaultMinReasonLength
	}
	if utf8.RuneCountInString(strings.TrimSpace(reason)) < minLength {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("please provide a detailed reason (minimum %d characters)", minLength))
	}
	return nil
}

// TransitionMigration computes the record that results from the action. The
// input record is never modified. Combinations outside the workflow return
// an authorization error instead of being applied.
func TransitionMigration(record models.MigrationRecord, in TransitionInput) (models.MigrationRecord, error) {
	if in.Action == models.ActionReject {
		if err := ValidateRejectionReason(in.Reason, in.MinReasonLength); err != nil {
			return record, err
		}
	}

	decision := EvaluateMigration(in.Actor, record, in.Policy)
	if !decision.Visible {
		return record, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s role doesn't have permission to view migrations", roleName(in.Actor.Role)))
	}
	if record.Status.Terminal() {
		return record, appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("migration is already %s", record.Status))
	}

	caps := models.CapabilitiesOf(in.Actor.Role)
	at := in.At.UTC()
	out := record.Clone()

	switch in.Action {
	case models.ActionReject:
		if !caps.CanReject {
			return record, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s role doesn't have permission to reject migrations", roleName(in.Actor.Role)))
		}
		if !decision.CanReject {
			return record, invalidTransition("reject", decision)
		}
		out.Status = models.MigrationRejected
		out.RejectionReason = strings.TrimSpace(in.Reason)
		out.RejectedBy = in.Actor.ID
		out.RejectedAt = &at
		return out, nil

	case models.ActionApprove:
		if !caps.CanApprove {
			return record, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s role doesn't have permission to approve migrations", roleName(in.Actor.Role)))
		}
		if !decision.CanApprove {
			return record, invalidTransition("approve", decision)
		}
		switch decision.ApproveLeg {
		case models.LegAuthority:
			switch record.Status {
			case models.MigrationPending:
				out.Status = models.MigrationPartial
				out.ProgressedBy = in.Actor.ID
			case models.MigrationPartial:
				out.Status = models.MigrationCompleted
				out.CompletedDate = &at
			default:
				return record, invalidTransition("approve", decision)
			}
		case models.LegSource:
			out.SourceRoApproved = true
			out.SourceRoApprovedAt = &at
			if record.IsInterstate() {
				out.Status = models.MigrationPartial
			} else {
				out.Status = models.MigrationCompleted
				out.CompletedDate = &at
			}
		case models.LegDestination:
			out.DestinationRoApproved = true
			out.DestinationRoApprovedAt = &at
			out.Status = models.MigrationCompleted
			out.CompletedDate = &at
		default:
			return record, invalidTransition("approve", decision)
		}
		return out, nil
	}

	return record, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported workflow action %q", in.Action))
}

func invalidTransition(action string, decision models.Decision) error {
	msg := fmt.Sprintf("cannot %s this migration", action)
	if len(decision.Reasons) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(decision.Reasons, "; "))
	}
	return appErrors.Clone(appErrors.ErrInvalidTransition, msg)
}
