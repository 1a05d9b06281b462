package models

import (
	"encoding/json"
	"strings"
	"time"
)

// MigrationStatus is the overall state of a Form-6 migration.
type MigrationStatus string

const (
	MigrationPending   MigrationStatus = "pending"
	MigrationPartial   MigrationStatus = "partial"
	MigrationCompleted MigrationStatus = "completed"
	MigrationRejected  MigrationStatus = "rejected"
)

// MigrationStatuses lists the statuses in display order.
var MigrationStatuses = []MigrationStatus{MigrationPending, MigrationPartial, MigrationCompleted, MigrationRejected}

// ParseMigrationStatus normalises backend spellings. Unknown values map to "".
func ParseMigrationStatus(raw string) MigrationStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return MigrationPending
	case "partial", "in_progress", "in-progress", "inprogress":
		return MigrationPartial
	case "completed", "complete", "approved":
		return MigrationCompleted
	case "rejected":
		return MigrationRejected
	}
	return ""
}

// UnmarshalJSON normalises backend spellings such as "IN_PROGRESS".
func (s *MigrationStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseMigrationStatus(raw)
	return nil
}

// Terminal reports whether no further transition is possible.
func (s MigrationStatus) Terminal() bool {
	return s == MigrationCompleted || s == MigrationRejected
}

// UpstreamFilter is the status value the backend expects in list queries.
func (s MigrationStatus) UpstreamFilter() string {
	if s == MigrationPartial {
		return "in_progress"
	}
	return string(s)
}

// Label is the badge text shown for the status.
func (s MigrationStatus) Label() string {
	switch s {
	case MigrationPending:
		return "Pending Review"
	case MigrationPartial:
		return "In Progress"
	case MigrationCompleted:
		return "Completed"
	case MigrationRejected:
		return "Rejected"
	}
	return "Unknown"
}

// Address is a postal address attached to an elector record.
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	District string `json:"district"`
	State    string `json:"state"`
}

// MigrationRecord is one Form-6 jurisdiction change application.
type MigrationRecord struct {
	ID string `json:"id"`

	ApplicantName   string `json:"applicantName"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Age             int    `json:"age,omitempty"`
	DateOfBirth     string `json:"dateOfBirth,omitempty"`
	Mobile          string `json:"mobile,omitempty"`
	Email           string `json:"email,omitempty"`
	RelationType    string `json:"relationType,omitempty"`
	RelationName    string `json:"relationName,omitempty"`
	EpicNumber      string `json:"epicNumber"`
	ElectorIDNumber string `json:"electorIdNumber,omitempty"`
	ElectorStatus   string `json:"electorStatus,omitempty"`

	OldConstituency   string   `json:"oldConstituency"`
	OldDistrict       string   `json:"oldDistrict"`
	OldState          string   `json:"oldState"`
	OldPartNumber     string   `json:"oldPartNumber,omitempty"`
	OldPollingStation string   `json:"oldPollingStation,omitempty"`
	OldAddress        *Address `json:"oldAddress,omitempty"`

	NewConstituency   string `json:"newConstituency"`
	NewDistrict       string `json:"newDistrict"`
	NewState          string `json:"newState"`
	NewPartNumber     string `json:"newPartNumber,omitempty"`
	NewPollingStation string `json:"newPollingStation,omitempty"`

	AppliedDate   string     `json:"appliedDate,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	CurrentStage  string     `json:"currentStage,omitempty"`

	Status MigrationStatus `json:"status"`

	SourceRoApproved        bool       `json:"sourceRoApproved"`
	SourceRoApprovedAt      *time.Time `json:"sourceRoApprovedAt,omitempty"`
	SourceRoNotes           *string    `json:"sourceRoNotes,omitempty"`
	DestinationRoApproved   bool       `json:"destinationRoApproved"`
	DestinationRoApprovedAt *time.Time `json:"destinationRoApprovedAt,omitempty"`
	DestinationRoNotes      *string    `json:"destinationRoNotes,omitempty"`

	ProgressedBy    string     `json:"progressedBy,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	RejectedBy      string     `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
}

// IsInterstate reports whether origin and destination states differ.
func (m MigrationRecord) IsInterstate() bool {
	return !sameJurisdiction(m.OldState, m.NewState)
}

// ROGated reports whether the record advances only through source and
// destination RO sign-off.
func (m MigrationRecord) ROGated() bool {
	return m.IsInterstate() || m.SourceRoApproved || m.DestinationRoApproved
}

// Consistent checks the sub-approval invariants.
func (m MigrationRecord) Consistent() bool {
	if m.DestinationRoApproved && !m.SourceRoApproved {
		return false
	}
	if m.SourceRoApproved && m.DestinationRoApproved && m.Status != MigrationCompleted {
		return false
	}
	if m.Status == MigrationCompleted && m.IsInterstate() {
		return m.SourceRoApproved && m.DestinationRoApproved
	}
	return true
}

// Clone returns a deep copy so callers can derive new states without
// touching the original.
func (m MigrationRecord) Clone() MigrationRecord {
	out := m
	out.OldAddress = cloneAddress(m.OldAddress)
	out.CompletedDate = cloneTime(m.CompletedDate)
	out.SourceRoApprovedAt = cloneTime(m.SourceRoApprovedAt)
	out.DestinationRoApprovedAt = cloneTime(m.DestinationRoApprovedAt)
	out.RejectedAt = cloneTime(m.RejectedAt)
	out.SourceRoNotes = cloneString(m.SourceRoNotes)
	out.DestinationRoNotes = cloneString(m.DestinationRoNotes)
	return out
}

// StatusCounts tallies migrations per status.
type StatusCounts struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Partial   int `json:"partial"`
	Completed int `json:"completed"`
	Rejected  int `json:"rejected"`
}

// CountStatuses tallies the given records.
func CountStatuses(records []MigrationRecord) StatusCounts {
	counts := StatusCounts{All: len(records)}
	for _, r := range records {
		switch r.Status {
		case MigrationPending:
			counts.Pending++
		case MigrationPartial:
			counts.Partial++
		case MigrationCompleted:
			counts.Completed++
		case MigrationRejected:
			counts.Rejected++
		}
	}
	return counts
}

func sameJurisdiction(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// SameJurisdiction compares two jurisdiction names ignoring case and
// surrounding whitespace. Empty names never match.
func SameJurisdiction(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	return sameJurisdiction(a, b)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneAddress(a *Address) *Address {
	if a == nil {
		return nil
	}
	v := *a
	return &v
}
