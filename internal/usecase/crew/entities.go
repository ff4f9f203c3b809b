package crew

import domain "timesheet-backend/internal/domain/crew"

type CreateInput struct {
	Name      string      `json:"name" validate:"required,max=100"`
	CrewType  domain.Type `json:"crewType" validate:"required,crewtype"`
	LeadID    string      `json:"leadId"`
	MemberIDs []string    `json:"memberIds"`
}

// UpdateInput leaves nil fields untouched.
type UpdateInput struct {
	Name      *string      `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	CrewType  *domain.Type `json:"crewType,omitempty" validate:"omitempty,crewtype"`
	LeadID    *string      `json:"leadId,omitempty"`
	MemberIDs []string     `json:"memberIds,omitempty"`
}
