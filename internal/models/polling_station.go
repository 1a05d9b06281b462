package models

// PollingStation is a booth with its elector counts.
type PollingStation struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NameLocal     string `json:"nameLocal,omitempty"`
	Constituency  string `json:"constituency"`
	Address       string `json:"address"`
	Electors      int64  `json:"electors"`
	Male          int64  `json:"male"`
	Female        int64  `json:"female"`
	Status        string `json:"status"`
	Accessibility string `json:"accessibility,omitempty"`
}

// PollingStationFilter narrows a polling station listing.
type PollingStationFilter struct {
	State        string
	District     string
	Constituency string
	Query        string
}
