package models

// ElectorSearchType selects the field an elector search matches on.
type ElectorSearchType string

const (
	SearchByEPIC   ElectorSearchType = "epic"
	SearchByName   ElectorSearchType = "name"
	SearchByMobile ElectorSearchType = "mobile"
)

// Elector is a roll entry returned by search.
type Elector struct {
	ID             string   `json:"id"`
	EpicNumber     string   `json:"epicNumber"`
	Name           string   `json:"name"`
	NameLocal      string   `json:"nameLocal,omitempty"`
	RelationName   string   `json:"relationName,omitempty"`
	Gender         string   `json:"gender,omitempty"`
	Age            int      `json:"age,omitempty"`
	Mobile         string   `json:"mobile,omitempty"`
	Email          string   `json:"email,omitempty"`
	State          string   `json:"state"`
	District       string   `json:"district"`
	Constituency   string   `json:"constituency"`
	PartNumber     string   `json:"partNumber,omitempty"`
	PollingStation string   `json:"pollingStation,omitempty"`
	Status         string   `json:"status,omitempty"`
	Address        *Address `json:"address,omitempty"`
}

// CitizenProfile is the self-service view of the logged-in elector.
type CitizenProfile struct {
	Elector
	RegistrationStatus string   `json:"registrationStatus"`
	Verified           bool     `json:"verified"`
	PendingRequests    []string `json:"pendingRequests,omitempty"`
}

// BLOEntryAction distinguishes drafts from final submissions.
type BLOEntryAction string

const (
	BLOEntryDraft  BLOEntryAction = "draft"
	BLOEntrySubmit BLOEntryAction = "submit"
)

// BLOEntryResult is the backend acknowledgement of a data-entry form.
type BLOEntryResult struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DocumentUploadResult is the backend acknowledgement of a document upload.
type DocumentUploadResult struct {
	ID           string `json:"id"`
	ElectorID    string `json:"electorId"`
	DocumentType string `json:"documentType"`
	Message      string `json:"message,omitempty"`
}
