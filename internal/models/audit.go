package models

// AuditEntry is one activity record kept by the backend.
type AuditEntry struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"`
	User       string `json:"user"`
	UserID     string `json:"userId"`
	Action     string `json:"action"`
	ActionType string `json:"actionType"`
	Details    string `json:"details"`
	IPAddress  string `json:"ipAddress"`
	Location   string `json:"location"`
}

// AuditFilter narrows an audit listing.
type AuditFilter struct {
	User       string
	ActionType string
	State      string
	District   string
	Page       int
	PageSize   int
}
