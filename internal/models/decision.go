package models

// WorkflowAction is an action an actor may take on a migration.
type WorkflowAction string

const (
	ActionApprove WorkflowAction = "approve"
	ActionReject  WorkflowAction = "reject"
)

// ApprovalLeg identifies which RO sign-off an approval satisfies.
type ApprovalLeg string

const (
	LegNone        ApprovalLeg = ""
	LegAuthority   ApprovalLeg = "authority"
	LegSource      ApprovalLeg = "source"
	LegDestination ApprovalLeg = "destination"
)

// Decision is the evaluator's verdict for one actor on one record. It is
// derived per request and never stored.
type Decision struct {
	Visible                 bool        `json:"visible"`
	CanApprove              bool        `json:"canApprove"`
	CanReject               bool        `json:"canReject"`
	CanApproveAsSource      bool        `json:"canApproveAsSource"`
	CanApproveAsDestination bool        `json:"canApproveAsDestination"`
	UserIsSourceRo          bool        `json:"userIsSourceRo"`
	UserIsDestinationRo     bool        `json:"userIsDestinationRo"`
	ApproveLeg              ApprovalLeg `json:"approveLeg,omitempty"`
	ApproveLabel            string      `json:"approveLabel,omitempty"`
	Reasons                 []string    `json:"reasons,omitempty"`
}

// ViewOnly reports whether the record is visible without any action.
func (d Decision) ViewOnly() bool {
	return d.Visible && !d.CanApprove && !d.CanReject
}
