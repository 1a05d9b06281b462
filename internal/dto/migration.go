package dto

import "github.com/noah-isme/erolls-portal/internal/models"

// WorkflowItem pairs a migration with what the caller may do on it.
type WorkflowItem struct {
	Migration   models.MigrationRecord `json:"migration"`
	Actions     models.Decision        `json:"actions"`
	StatusLabel string                 `json:"statusLabel"`
	Interstate  bool                   `json:"isInterstate"`
}

// WorkflowListResponse is the migration workflow listing.
type WorkflowListResponse struct {
	Filter       string              `json:"filter"`
	Migrations   []WorkflowItem      `json:"migrations"`
	StatusCounts models.StatusCounts `json:"statusCounts"`
}

// WorkflowActionResponse reports the outcome of an approve or reject.
type WorkflowActionResponse struct {
	Message   string        `json:"message"`
	Migration *WorkflowItem `json:"migration,omitempty"`
}

// RejectRequest carries a rejection reason.
type RejectRequest struct {
	Reason string `json:"reason" form:"reason"`
}

// ApplicationActionResponse reports the outcome of a verify or reject.
type ApplicationActionResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
