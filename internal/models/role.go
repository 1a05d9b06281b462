package models

import "strings"

// RoleID identifies an electoral administration role. The set is closed.
type RoleID string

const (
	RoleCEC     RoleID = "CEC"
	RoleEC      RoleID = "EC"
	RoleCEO     RoleID = "CEO"
	RoleDEO     RoleID = "DEO"
	RoleRO      RoleID = "RO"
	RoleBLO     RoleID = "BLO"
	RoleCitizen RoleID = "Citizen"
	RoleUnknown RoleID = ""
)

// AllRoles lists every known role in seniority order.
var AllRoles = []RoleID{RoleCEC, RoleEC, RoleCEO, RoleDEO, RoleRO, RoleBLO, RoleCitizen}

// ParseRole maps a raw role string onto the closed set. Unrecognised input
// yields RoleUnknown.
func ParseRole(raw string) RoleID {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, string(RoleCitizen)) {
		return RoleCitizen
	}
	switch RoleID(strings.ToUpper(trimmed)) {
	case RoleCEC:
		return RoleCEC
	case RoleEC:
		return RoleEC
	case RoleCEO:
		return RoleCEO
	case RoleDEO:
		return RoleDEO
	case RoleRO:
		return RoleRO
	case RoleBLO:
		return RoleBLO
	}
	return RoleUnknown
}

// Valid reports whether the role belongs to the closed set.
func (r RoleID) Valid() bool {
	_, ok := registry[r]
	return ok
}

// Capabilities describes what a role may do in the migration workflow.
type Capabilities struct {
	CanView    bool `json:"canView"`
	CanApprove bool `json:"canApprove"`
	CanReject  bool `json:"canReject"`
}

// JurisdictionRequirement names the scope a role must carry to act.
type JurisdictionRequirement struct {
	State    bool `json:"state"`
	District bool `json:"district"`
}

type roleEntry struct {
	label        string
	capabilities Capabilities
	jurisdiction JurisdictionRequirement
	landingView  string
}

var (
	viewOnly   = Capabilities{CanView: true}
	approver   = Capabilities{CanView: true, CanApprove: true, CanReject: true}
	noAccess   = Capabilities{}
	stateScope = JurisdictionRequirement{State: true}
	fullScope  = JurisdictionRequirement{State: true, District: true}
)

var registry = map[RoleID]roleEntry{
	RoleCEC:     {label: "Chief Election Commissioner", capabilities: viewOnly, landingView: ViewDashboard},
	RoleEC:      {label: "Election Commissioner", capabilities: viewOnly, landingView: ViewDashboard},
	RoleCEO:     {label: "Chief Electoral Officer (State)", capabilities: approver, jurisdiction: stateScope, landingView: ViewDashboard},
	RoleDEO:     {label: "District Election Officer", capabilities: approver, jurisdiction: fullScope, landingView: ViewDashboard},
	RoleRO:      {label: "Returning Officer", capabilities: approver, jurisdiction: fullScope, landingView: ViewDashboard},
	RoleBLO:     {label: "Booth Level Officer", capabilities: viewOnly, jurisdiction: fullScope, landingView: ViewBLOEntry},
	RoleCitizen: {label: "Citizen / Elector", capabilities: noAccess, landingView: ViewCitizenPortal},
}

// CapabilitiesOf returns the workflow capabilities of a role. Unknown roles
// get no capability at all.
func CapabilitiesOf(role RoleID) Capabilities {
	return registry[role].capabilities
}

// RequiresJurisdiction reports which scope a role must hold before acting.
func RequiresJurisdiction(role RoleID) JurisdictionRequirement {
	return registry[role].jurisdiction
}

// Label returns the human readable title of a role.
func (r RoleID) Label() string {
	if entry, ok := registry[r]; ok {
		return entry.label
	}
	return "Unknown"
}

// LandingView is the first portal view shown after login.
func LandingView(role RoleID) string {
	if entry, ok := registry[role]; ok {
		return entry.landingView
	}
	return ViewDashboard
}

// IsSingleAuthority reports whether the role approves without the RO
// dual-party rule.
func (r RoleID) IsSingleAuthority() bool {
	return r == RoleCEO || r == RoleDEO
}

// IsNational reports whether the role has nationwide oversight.
func (r RoleID) IsNational() bool {
	return r == RoleCEC || r == RoleEC
}
