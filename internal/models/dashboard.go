package models

// NationalCards are the headline counters of the national dashboard.
type NationalCards struct {
	TotalElectors     int64 `json:"totalElectors"`
	PendingMigrations int64 `json:"pendingMigrations"`
	DuplicateAlerts   int64 `json:"duplicateAlerts"`
	PollingStations   int64 `json:"pollingStations"`
}

// StateCount is the elector count of one state.
type StateCount struct {
	State string `json:"state"`
	Count int64  `json:"count"`
}

// NationalDashboard is the backend payload for CEC/EC.
type NationalDashboard struct {
	Cards             NationalCards `json:"cards"`
	StateDistribution []StateCount  `json:"stateDistribution"`
}

// StateCards are the headline counters of the state dashboard.
type StateCards struct {
	TotalElectors     int64 `json:"totalElectors"`
	PendingMigrations int64 `json:"pendingMigrations"`
	PollingStations   int64 `json:"pollingStations"`
	VerificationQueue int64 `json:"verificationQueue"`
}

// DistrictStat is one district row of the state dashboard.
type DistrictStat struct {
	District string `json:"district"`
	Electors int64  `json:"electors"`
	Pending  int64  `json:"pending"`
	Stations int64  `json:"stations"`
}

// ConstituencyStat is one constituency row of the state dashboard.
type ConstituencyStat struct {
	Name     string `json:"name"`
	District string `json:"district"`
	Electors int64  `json:"electors"`
	Pending  int64  `json:"pending"`
	Verified int64  `json:"verified"`
	Station  string `json:"station"`
}

// StateDashboard is the backend payload for CEO/DEO/RO.
type StateDashboard struct {
	SelectedState    string             `json:"selectedState"`
	SelectedDistrict string             `json:"selectedDistrict"`
	States           []string           `json:"states"`
	Districts        []string           `json:"districts"`
	Cards            StateCards         `json:"cards"`
	DistrictData     []DistrictStat     `json:"districtData"`
	Constituencies   []ConstituencyStat `json:"constituencies"`
}

// EROCards are the headline counters of the electoral registration dashboard.
type EROCards struct {
	TotalElectors        int64 `json:"totalElectors"`
	PendingApplications  int64 `json:"pendingApplications"`
	TodaysVerifications  int64 `json:"todaysVerifications"`
	RejectedApplications int64 `json:"rejectedApplications"`
}

// Application is an elector application awaiting verification.
type Application struct {
	ID              string `json:"id"`
	ApplicantName   string `json:"applicantName"`
	FormType        string `json:"formType"`
	ApplicationDate string `json:"applicationDate,omitempty"`
	SubmittedDate   string `json:"submittedDate,omitempty"`
	Status          string `json:"status,omitempty"`
	Priority        string `json:"priority,omitempty"`
	Constituency    string `json:"constituency"`
	Mobile          string `json:"mobile,omitempty"`
}

// ConstituencyProgress summarises verification progress of a constituency.
type ConstituencyProgress struct {
	Constituency  string `json:"constituency"`
	TotalElectors int64  `json:"totalElectors"`
	Pending       int64  `json:"pending"`
	Verified      int64  `json:"verified"`
}

// ERODashboard is the backend payload for DEO/RO application queues.
type ERODashboard struct {
	Cards              EROCards               `json:"cards"`
	RecentApplications []Application          `json:"recentApplications"`
	VerificationQueue  []Application          `json:"verificationQueue"`
	ConstituencyStats  []ConstituencyProgress `json:"constituencyStats"`
}
