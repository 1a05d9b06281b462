package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	cases := map[string]RoleID{
		"cec":      RoleCEC,
		" RO ":     RoleRO,
		"citizen":  RoleCitizen,
		"CITIZEN":  RoleCitizen,
		"Deo":      RoleDEO,
		"admin":    RoleUnknown,
		"":         RoleUnknown,
		"Citizens": RoleUnknown,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseRole(raw), raw)
	}
}

func TestCapabilitiesOf(t *testing.T) {
	assert.Equal(t, Capabilities{CanView: true}, CapabilitiesOf(RoleCEC))
	assert.Equal(t, Capabilities{CanView: true}, CapabilitiesOf(RoleBLO))
	assert.Equal(t, Capabilities{CanView: true, CanApprove: true, CanReject: true}, CapabilitiesOf(RoleRO))
	assert.Equal(t, Capabilities{}, CapabilitiesOf(RoleCitizen))
	assert.Equal(t, Capabilities{}, CapabilitiesOf(RoleID("ADMIN")))
	assert.False(t, RoleID("ADMIN").Valid())
}

func TestRequiresJurisdiction(t *testing.T) {
	assert.Equal(t, JurisdictionRequirement{State: true}, RequiresJurisdiction(RoleCEO))
	assert.Equal(t, JurisdictionRequirement{State: true, District: true}, RequiresJurisdiction(RoleDEO))
	assert.Equal(t, JurisdictionRequirement{}, RequiresJurisdiction(RoleEC))

	missing := Actor{Role: RoleRO, State: "Kerala"}.MissingJurisdiction()
	assert.Equal(t, []string{"district"}, missing)
	assert.Empty(t, Actor{Role: RoleCEC}.MissingJurisdiction())
}

func TestLandingViewAndMenu(t *testing.T) {
	assert.Equal(t, ViewCitizenPortal, LandingView(RoleCitizen))
	assert.Equal(t, ViewBLOEntry, LandingView(RoleBLO))
	assert.Equal(t, ViewDashboard, LandingView(RoleUnknown))

	assert.Len(t, DefaultMenu(RoleCEC), 6)
	assert.Len(t, DefaultMenu(RoleDEO), 5)
	assert.Equal(t, ViewCitizenPortal, DefaultMenu(RoleCitizen)[0].ID)
	assert.Len(t, DefaultMenu(RoleUnknown), 1)
}

func TestActorClaimsFallsBackToSubject(t *testing.T) {
	claims := &ActorClaims{Role: "ro", State: " Goa "}
	claims.Subject = "user-9"
	actor := claims.Actor()
	assert.Equal(t, "user-9", actor.ID)
	assert.Equal(t, RoleRO, actor.Role)
	assert.Equal(t, "Goa", actor.State)
}
