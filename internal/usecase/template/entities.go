package template

import "timesheet-backend/internal/domain/form"

type OptionInput struct {
	Value string `json:"value" validate:"required,max=255"`
}

type FieldInput struct {
	Label       string         `json:"label" validate:"required,max=255"`
	Type        form.FieldType `json:"type" validate:"required,fieldtype"`
	Required    bool           `json:"required"`
	Order       int            `json:"order"`
	Placeholder *string        `json:"placeholder,omitempty"`
	MinLength   *int           `json:"minLength,omitempty" validate:"omitempty,gte=0"`
	MaxLength   *int           `json:"maxLength,omitempty" validate:"omitempty,gte=0"`
	Multiple    bool           `json:"multiple"`
	Content     *string        `json:"content,omitempty"`
	Filter      *string        `json:"filter,omitempty" validate:"omitempty,oneof=equipment jobsite costCode client"`
	Options     []OptionInput  `json:"options" validate:"dive"`
}

type GroupingInput struct {
	Title  string       `json:"title" validate:"max=255"`
	Order  int          `json:"order"`
	Fields []FieldInput `json:"fields" validate:"dive"`
}

type CreateTemplateInput struct {
	Name                string          `json:"name" validate:"required,max=255"`
	FormType            string          `json:"formType" validate:"max=64"`
	Status              form.Status     `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE ARCHIVED"`
	IsSignatureRequired bool            `json:"isSignatureRequired"`
	IsApprovalRequired  bool            `json:"isApprovalRequired"`
	Groupings           []GroupingInput `json:"groupings" validate:"dive"`
}

type SetStatusInput struct {
	Status form.Status `json:"status" validate:"required,oneof=DRAFT ACTIVE ARCHIVED"`
}

// Summary is the list view of a template, without its layout.
type Summary struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	FormType            string      `json:"formType"`
	Status              form.Status `json:"status"`
	IsSignatureRequired bool        `json:"isSignatureRequired"`
	IsApprovalRequired  bool        `json:"isApprovalRequired"`
}
