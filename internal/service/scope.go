package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
)

// oversightScope pins a requested state/district to what the officer may
// see. National roles keep the request as is.
func oversightScope(actor models.Actor, feature, state, district string) (string, string, error) {
	switch actor.Role {
	case models.RoleCEC, models.RoleEC:
		return strings.TrimSpace(state), strings.TrimSpace(district), nil
	case models.RoleCEO:
		if missing := actor.MissingJurisdiction(); len(missing) > 0 {
			return "", "", missingScope(missing)
		}
		return actor.State, strings.TrimSpace(district), nil
	case models.RoleDEO, models.RoleRO:
		if missing := actor.MissingJurisdiction(); len(missing) > 0 {
			return "", "", missingScope(missing)
		}
		return actor.State, actor.District, nil
	}
	return "", "", appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s role cannot access %s", roleName(actor.Role), feature))
}

func missingScope(missing []string) error {
	return appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("no %s assigned to this account", strings.Join(missing, " or ")))
}
