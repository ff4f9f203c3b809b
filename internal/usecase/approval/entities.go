package approval

import (
	"time"

	domainApproval "timesheet-backend/internal/domain/approval"
)

// DecideInput is one approver's decision on a pending submission.
type DecideInput struct {
	ApproverID string
	Decision   domainApproval.Decision
	Comment    string
	Signature  string // data URL or stored image key
}

type RecordInput struct {
	SubmissionID string
	DecideInput
}

type ApprovalDTO struct {
	ID               string                  `json:"id"`
	FormSubmissionID string                  `json:"formSubmissionId"`
	SignedBy         string                  `json:"signedBy"`
	Approver         string                  `json:"approver"`
	Signature        string                  `json:"signature"`
	Comment          string                  `json:"comment"`
	Decision         domainApproval.Decision `json:"decision"`
	SubmittedAt      time.Time               `json:"submittedAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

func toDTO(a domainApproval.Approval) ApprovalDTO {
	return ApprovalDTO{
		ID:               a.ID,
		FormSubmissionID: a.FormSubmissionID,
		SignedBy:         a.SignedBy,
		Approver:         a.Approver,
		Signature:        a.Signature,
		Comment:          a.Comment,
		Decision:         a.Decision,
		SubmittedAt:      a.SubmittedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
