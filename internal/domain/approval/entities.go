package approval

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrNotFound            = errors.New("approval not found")
	ErrCommentRequired     = errors.New("approval comment is required")
	ErrSignatureRequired   = errors.New("approval signature is required")
	ErrApprovalNotRequired = errors.New("form template does not require approval")
	ErrAlreadyDecided      = errors.New("submission already has a final decision")
	ErrInvalidDecision     = errors.New("decision must be APPROVED or DENIED")
)

type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionDenied   Decision = "DENIED"
)

func (d Decision) Valid() bool { return d == DecisionApproved || d == DecisionDenied }

// Table: approvals
type Approval struct {
	ID               string    `gorm:"column:id;primaryKey;size:32" json:"id"`
	FormSubmissionID string    `gorm:"column:form_submission_id;size:32;not null;index" json:"formSubmissionId"`
	SignedBy         string    `gorm:"column:signed_by;size:32;not null" json:"signedBy"`
	Approver         string    `gorm:"column:approver;size:255" json:"approver"`
	Signature        string    `gorm:"column:signature;type:text" json:"signature"`
	Comment          string    `gorm:"column:comment;type:text;not null" json:"comment"`
	Decision         Decision  `gorm:"column:decision;size:16;not null" json:"decision"`
	SubmittedAt      time.Time `gorm:"column:submitted_at;not null" json:"submittedAt"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Approval) TableName() string { return "approvals" }

// SortRecent orders approvals by UpdatedAt, newest first.
func SortRecent(list []Approval) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].UpdatedAt.After(list[j].UpdatedAt)
	})
}

// Current returns the approval that represents the present decision context:
// the most recently updated one.
func Current(list []Approval) (*Approval, bool) {
	if len(list) == 0 {
		return nil, false
	}
	best := 0
	for i := 1; i < len(list); i++ {
		if list[i].UpdatedAt.After(list[best].UpdatedAt) {
			best = i
		}
	}
	a := list[best]
	return &a, true
}
