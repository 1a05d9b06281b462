package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

var transitionAt = time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC)

func approveBy(actor models.Actor) TransitionInput {
	return TransitionInput{Actor: actor, Action: models.ActionApprove, At: transitionAt}
}

func TestTransitionDEOAdvancesPending(t *testing.T) {
	record := intrastateRecord(models.MigrationPending)

	out, err := TransitionMigration(record, approveBy(deoBengaluru))
	require.NoError(t, err)
	assert.Equal(t, models.MigrationPartial, out.Status)
	assert.Equal(t, deoBengaluru.ID, out.ProgressedBy)
	assert.Equal(t, models.MigrationPending, record.Status)
}

func TestTransitionCEOCompletesPartial(t *testing.T) {
	record := intrastateRecord(models.MigrationPartial)
	record.ProgressedBy = deoBengaluru.ID

	out, err := TransitionMigration(record, approveBy(ceoKarnataka))
	require.NoError(t, err)
	assert.Equal(t, models.MigrationCompleted, out.Status)
	require.NotNil(t, out.CompletedDate)
	assert.True(t, out.CompletedDate.Equal(transitionAt))
}

func TestTransitionInterstateSourceThenDestination(t *testing.T) {
	record := interstateRecord(models.MigrationPending)

	afterSource, err := TransitionMigration(record, approveBy(roSource))
	require.NoError(t, err)
	assert.True(t, afterSource.SourceRoApproved)
	assert.False(t, afterSource.DestinationRoApproved)
	assert.Equal(t, models.MigrationPartial, afterSource.Status)
	assert.True(t, afterSource.Consistent())

	afterDest, err := TransitionMigration(afterSource, approveBy(roDest))
	require.NoError(t, err)
	assert.True(t, afterDest.DestinationRoApproved)
	assert.Equal(t, models.MigrationCompleted, afterDest.Status)
	assert.True(t, afterDest.Consistent())
}

func TestTransitionIntrastateSourceROCompletes(t *testing.T) {
	out, err := TransitionMigration(intrastateRecord(models.MigrationPending), approveBy(roSource))
	require.NoError(t, err)
	assert.Equal(t, models.MigrationCompleted, out.Status)
	assert.True(t, out.SourceRoApproved)
	assert.False(t, out.DestinationRoApproved)
}

func TestTransitionDestinationBeforeSourceRejected(t *testing.T) {
	_, err := TransitionMigration(interstateRecord(models.MigrationPending), approveBy(roDest))
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrInvalidTransition.Code))
}

func TestTransitionShortReasonRejected(t *testing.T) {
	record := intrastateRecord(models.MigrationPending)
	in := TransitionInput{Actor: deoBengaluru, Action: models.ActionReject, Reason: "no", At: transitionAt}

	out, err := TransitionMigration(record, in)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, record, out)
}

func TestTransitionReject(t *testing.T) {
	in := TransitionInput{Actor: roDest, Action: models.ActionReject, Reason: "  documents do not match  ", At: transitionAt}

	out, err := TransitionMigration(interstateRecord(models.MigrationPending), in)
	require.NoError(t, err)
	assert.Equal(t, models.MigrationRejected, out.Status)
	assert.Equal(t, "documents do not match", out.RejectionReason)
	assert.Equal(t, roDest.ID, out.RejectedBy)
	require.NotNil(t, out.RejectedAt)
}

func TestTransitionForbiddenForViewOnlyRoles(t *testing.T) {
	_, err := TransitionMigration(intrastateRecord(models.MigrationPending), approveBy(models.Actor{ID: "cec", Role: models.RoleCEC}))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Contains(t, err.Error(), "CEC role")

	_, err = TransitionMigration(intrastateRecord(models.MigrationPending), approveBy(models.Actor{ID: "cit", Role: models.RoleCitizen}))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestTransitionTerminalRecord(t *testing.T) {
	_, err := TransitionMigration(intrastateRecord(models.MigrationCompleted), approveBy(ceoKarnataka))
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrInvalidTransition.Code))
}

func TestTransitionRepeatedApprovalRejected(t *testing.T) {
	first, err := TransitionMigration(intrastateRecord(models.MigrationPending), approveBy(ceoKarnataka))
	require.NoError(t, err)

	_, err = TransitionMigration(first, approveBy(ceoKarnataka))
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrInvalidTransition.Code))
}

func TestTransitionAnonymousAuthorityCannotAdvanceTwice(t *testing.T) {
	anonymous := models.Actor{Role: models.RoleCEO, State: "Karnataka"}

	first, err := TransitionMigration(intrastateRecord(models.MigrationPending), approveBy(anonymous))
	require.NoError(t, err)
	assert.Equal(t, models.MigrationPartial, first.Status)

	second, err := TransitionMigration(first, approveBy(anonymous))
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrInvalidTransition.Code))
	assert.Equal(t, models.MigrationPartial, second.Status)
}

func TestTransitionInconsistentRecordRefused(t *testing.T) {
	record := interstateRecord(models.MigrationPartial)
	record.DestinationRoApproved = true

	out, err := TransitionMigration(record, approveBy(roSource))
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrInvalidTransition.Code))
	assert.Equal(t, record, out)

	reject := TransitionInput{Actor: roSource, Action: models.ActionReject, Reason: "approvals recorded out of order", At: transitionAt}
	_, err = TransitionMigration(record, reject)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrInvalidTransition.Code))
}

func TestTransitionUnknownAction(t *testing.T) {
	in := TransitionInput{Actor: ceoKarnataka, Action: "escalate", At: transitionAt}
	_, err := TransitionMigration(intrastateRecord(models.MigrationPending), in)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestValidateRejectionReason(t *testing.T) {
	assert.Error(t, ValidateRejectionReason("   short   ", 10))
	assert.NoError(t, ValidateRejectionReason("address proof invalid", 10))
	assert.Error(t, ValidateRejectionReason("123456789", 0))
}
