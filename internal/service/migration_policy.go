package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/erolls-portal/internal/models"
	"github.com/noah-isme/erolls-portal/pkg/config"
)

// ROMatch selects how an RO's jurisdiction is compared with a migration's
// origin and destination.
type ROMatch string

const (
	ROMatchConstituency ROMatch = config.MatchConstituency
	ROMatchDistrict     ROMatch = config.MatchDistrict
)

// PolicyOptions tunes migration authorization.
type PolicyOptions struct {
	Match ROMatch
}

// EvaluateMigration decides what actor may do on record. It is pure and must
// be recomputed whenever either input changes.
func EvaluateMigration(actor models.Actor, record models.MigrationRecord, opts PolicyOptions) models.Decision {
	caps := models.CapabilitiesOf(actor.Role)
	if !caps.CanView {
		return models.Decision{Reasons: []string{fmt.Sprintf("%s role has no access to the migration workflow", roleName(actor.Role))}}
	}

	d := models.Decision{Visible: true}
	if record.Status.Terminal() {
		d.Reasons = append(d.Reasons, fmt.Sprintf("migration is %s", record.Status))
		return d
	}
	if record.Status == "" {
		d.Reasons = append(d.Reasons, "migration status is not recognised")
		return d
	}
	if !record.Consistent() {
		d.Reasons = append(d.Reasons, "migration approvals are inconsistent and need correction in the electoral roll system")
		return d
	}
	if missing := actor.MissingJurisdiction(); len(missing) > 0 {
		d.Reasons = append(d.Reasons, fmt.Sprintf("%s role requires a %s assignment", roleName(actor.Role), strings.Join(missing, " and ")))
		return d
	}

	switch {
	case actor.Role == models.RoleRO:
		evaluateRO(&d, actor, record, opts)
	case actor.Role.IsSingleAuthority():
		evaluateAuthority(&d, caps, actor, record)
	default:
		d.Reasons = append(d.Reasons, fmt.Sprintf("%s role has view-only access to migrations", roleName(actor.Role)))
	}
	return d
}

func evaluateRO(d *models.Decision, actor models.Actor, record models.MigrationRecord, opts PolicyOptions) {
	if opts.Match != ROMatchDistrict && actor.Constituency == "" {
		d.Reasons = append(d.Reasons, "RO role requires a constituency assignment")
		return
	}
	interstate := record.IsInterstate()
	d.UserIsSourceRo = matchesSide(actor, record.OldState, record.OldDistrict, record.OldConstituency, opts.Match)
	d.UserIsDestinationRo = matchesSide(actor, record.NewState, record.NewDistrict, record.NewConstituency, opts.Match)

	d.CanApproveAsSource = d.UserIsSourceRo && !record.SourceRoApproved
	d.CanApproveAsDestination = interstate && d.UserIsDestinationRo && record.SourceRoApproved && !record.DestinationRoApproved
	d.CanApprove = d.CanApproveAsSource || d.CanApproveAsDestination
	d.CanReject = d.UserIsSourceRo || d.UserIsDestinationRo

	switch {
	case d.CanApproveAsSource:
		d.ApproveLeg = models.LegSource
		d.ApproveLabel = "Approve as Source RO"
	case d.CanApproveAsDestination:
		d.ApproveLeg = models.LegDestination
		d.ApproveLabel = "Approve as Destination RO"
	}

	if !d.UserIsSourceRo && !d.UserIsDestinationRo {
		d.Reasons = append(d.Reasons, "migration is outside your constituency")
		return
	}
	if d.UserIsSourceRo && record.SourceRoApproved {
		d.Reasons = append(d.Reasons, "source RO approval already recorded")
	}
	if d.UserIsDestinationRo {
		switch {
		case !interstate && !d.UserIsSourceRo:
			d.Reasons = append(d.Reasons, "destination RO sign-off is not required for intrastate migrations")
		case interstate && !record.SourceRoApproved:
			d.Reasons = append(d.Reasons, "destination RO approval waits for source RO approval")
		case record.DestinationRoApproved:
			d.Reasons = append(d.Reasons, "destination RO approval already recorded")
		}
	}
}

func evaluateAuthority(d *models.Decision, caps models.Capabilities, actor models.Actor, record models.MigrationRecord) {
	if record.ROGated() {
		d.Reasons = append(d.Reasons, "interstate migration requires source and destination RO sign-off")
		return
	}
	if !withinAuthority(actor, record) {
		d.Reasons = append(d.Reasons, "migration is outside your jurisdiction")
		return
	}
	d.CanApprove = caps.CanApprove
	d.CanReject = caps.CanReject
	if d.CanApprove && record.Status == models.MigrationPartial {
		switch {
		case actor.ID == "":
			d.CanApprove = false
			d.Reasons = append(d.Reasons, "an officer without an identity cannot complete a migration")
		case record.ProgressedBy == actor.ID:
			d.CanApprove = false
			d.Reasons = append(d.Reasons, "the officer who advanced this migration cannot also complete it")
		}
	}
	if d.CanApprove {
		d.ApproveLeg = models.LegAuthority
		d.ApproveLabel = authorityLabel(actor.Role, record.Status)
	}
}

func authorityLabel(role models.RoleID, status models.MigrationStatus) string {
	if role == models.RoleDEO {
		return "Recommend"
	}
	switch status {
	case models.MigrationPending:
		return "Approve & Move to Progress"
	case models.MigrationPartial:
		return "Complete Migration"
	}
	return "Approve"
}

// withinAuthority checks that a CEO/DEO covers either end of the migration.
func withinAuthority(actor models.Actor, record models.MigrationRecord) bool {
	covers := func(state, district string) bool {
		if !models.SameJurisdiction(actor.State, state) {
			return false
		}
		if actor.Role == models.RoleDEO {
			return models.SameJurisdiction(actor.District, district)
		}
		return true
	}
	return covers(record.OldState, record.OldDistrict) || covers(record.NewState, record.NewDistrict)
}

func matchesSide(actor models.Actor, state, district, constituency string, match ROMatch) bool {
	if actor.State != "" && state != "" && !models.SameJurisdiction(actor.State, state) {
		return false
	}
	if match == ROMatchDistrict {
		return models.SameJurisdiction(actor.District, district)
	}
	return models.SameJurisdiction(actor.Constituency, constituency)
}

func roleName(role models.RoleID) string {
	if role == models.RoleUnknown {
		return "Unknown"
	}
	return string(role)
}
