package submission

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

var (
	ErrNotFound          = errors.New("form submission not found")
	ErrInvalidTransition = errors.New("invalid submission status transition")
	ErrNotDraft          = errors.New("submission is not a draft")
	ErrForbidden         = errors.New("submission belongs to another user")
	ErrValidation        = errors.New("submission validation failed")
)

type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusDenied   Status = "DENIED"
)

func (s Status) Terminal() bool { return s == StatusApproved || s == StatusDenied }

// CanTransition reports whether the lifecycle allows from -> to.
// APPROVED and DENIED are terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusPending
	case StatusPending:
		return to == StatusApproved || to == StatusDenied
	}
	return false
}

// Table: form_submissions
type Submission struct {
	ID             string            `gorm:"column:id;primaryKey;size:32" json:"id"`
	FormTemplateID string            `gorm:"column:form_template_id;size:32;not null;index" json:"formTemplateId"`
	UserID         string            `gorm:"column:user_id;size:32;not null;index" json:"userId"`
	Title          string            `gorm:"column:title;size:255" json:"title"`
	Data           datatypes.JSONMap `gorm:"column:data" json:"data"`
	Signed         bool              `gorm:"column:signed;not null;default:false" json:"signed"`
	Status         Status            `gorm:"column:status;size:16;not null;default:'DRAFT';index" json:"status"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	SubmittedAt    *time.Time        `gorm:"column:submitted_at" json:"submittedAt"`
}

func (Submission) TableName() string { return "form_submissions" }

// Transition moves the submission to status `to` when the lifecycle allows it.
func (s *Submission) Transition(to Status, at time.Time) error {
	if !CanTransition(s.Status, to) {
		return ErrInvalidTransition
	}
	s.Status = to
	if to == StatusPending {
		submitted := at
		s.SubmittedAt = &submitted
	}
	return nil
}
