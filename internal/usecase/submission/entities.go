package submission

import (
	"time"

	domainApproval "timesheet-backend/internal/domain/approval"
	domainSubmission "timesheet-backend/internal/domain/submission"
)

type CreateDraftInput struct {
	TemplateID string         `json:"formTemplateId" validate:"required"`
	UserID     string         `json:"-"`
	Title      string         `json:"title" validate:"max=255"`
	Data       map[string]any `json:"data"`
}

// SaveDraftInput is an autosave patch. Data is merged key-by-key into the
// stored draft; Title is only changed when set.
type SaveDraftInput struct {
	SubmissionID string         `json:"-"`
	UserID       string         `json:"-"`
	Title        *string        `json:"title,omitempty" validate:"omitempty,max=255"`
	Data         map[string]any `json:"data"`
}

type SubmitInput struct {
	SubmissionID string         `json:"-"`
	UserID       string         `json:"-"`
	Data         map[string]any `json:"data,omitempty"`
	Signed       bool           `json:"signed"`
}

// AdminEditInput updates data in any status. A Decision on a PENDING
// submission is recorded through the approval workflow.
type AdminEditInput struct {
	SubmissionID string                  `json:"-"`
	EditorID     string                  `json:"-"`
	Data         map[string]any          `json:"data"`
	Decision     domainApproval.Decision `json:"decision,omitempty" validate:"omitempty,oneof=APPROVED DENIED"`
	Signature    string                  `json:"signature,omitempty"`
	Comment      string                  `json:"comment,omitempty"`
}

type SubmissionDTO struct {
	ID             string                  `json:"id"`
	FormTemplateID string                  `json:"formTemplateId"`
	UserID         string                  `json:"userId"`
	Title          string                  `json:"title"`
	Status         domainSubmission.Status `json:"status"`
	Signed         bool                    `json:"signed"`
	Data           map[string]any          `json:"data"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
	SubmittedAt    *time.Time              `json:"submittedAt"`
}
