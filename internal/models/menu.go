package models

// Portal view identifiers.
const (
	ViewDashboard       = "dashboard"
	ViewElectorSearch   = "elector-search"
	ViewMigration       = "migration"
	ViewPollingStations = "polling-stations"
	ViewAuditLog        = "audit-log"
	ViewAnomalyAnalysis = "anomaly-analysis"
	ViewBLOEntry        = "blo-entry"
	ViewCitizenPortal   = "citizen-portal"
)

// MenuItem is one sidebar entry.
type MenuItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// DefaultMenu is the sidebar served when the menu service cannot be reached.
func DefaultMenu(role RoleID) []MenuItem {
	dashboard := MenuItem{ID: ViewDashboard, Label: "Dashboard", Icon: "LayoutDashboard"}
	search := MenuItem{ID: ViewElectorSearch, Label: "Elector Search", Icon: "Search"}
	migration := MenuItem{ID: ViewMigration, Label: "Migration Workflow", Icon: "FileText"}
	stations := MenuItem{ID: ViewPollingStations, Label: "Polling Stations", Icon: "MapPin"}
	audit := MenuItem{ID: ViewAuditLog, Label: "Audit & Activity", Icon: "Activity"}

	switch role {
	case RoleCEC, RoleEC:
		return []MenuItem{dashboard, search, migration, stations, audit,
			{ID: ViewAnomalyAnalysis, Label: "Anomaly Analysis", Icon: "Shield"}}
	case RoleCEO, RoleDEO, RoleRO:
		return []MenuItem{dashboard, search, migration, stations, audit}
	case RoleBLO:
		return []MenuItem{dashboard, search,
			{ID: ViewBLOEntry, Label: "Data Entry", Icon: "Users"}, migration}
	case RoleCitizen:
		return []MenuItem{
			{ID: ViewCitizenPortal, Label: "My Dashboard", Icon: "LayoutDashboard"},
			{ID: ViewElectorSearch, Label: "Check Status", Icon: "Search"},
		}
	default:
		return []MenuItem{dashboard}
	}
}
