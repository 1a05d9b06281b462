package models

import "time"

// JournalOutcome records how an attempted action ended.
type JournalOutcome string

const (
	OutcomeSucceeded JournalOutcome = "succeeded"
	OutcomeFailed    JournalOutcome = "failed"
)

// JournalEntry is one attempted workflow action that reached the backend.
type JournalEntry struct {
	ID         string         `db:"id" json:"id"`
	ActorID    string         `db:"actor_id" json:"actorId"`
	ActorRole  string         `db:"actor_role" json:"actorRole"`
	TargetType string         `db:"target_type" json:"targetType"`
	TargetID   string         `db:"target_id" json:"targetId"`
	Action     string         `db:"action" json:"action"`
	Outcome    JournalOutcome `db:"outcome" json:"outcome"`
	Detail     string         `db:"detail" json:"detail"`
	RequestID  string         `db:"request_id" json:"requestId"`
	Decision   string         `db:"decision" json:"decision,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
}

// JournalFilter narrows a journal listing.
type JournalFilter struct {
	ActorID    string
	TargetType string
	TargetID   string
	Limit      int
}
