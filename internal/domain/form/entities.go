package form

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("form template not found")
	ErrFieldNotFound   = errors.New("form field not found")
	ErrUnknownType     = errors.New("unknown field type")
	ErrTemplateInvalid = errors.New("form template is invalid")
	ErrNotActive       = errors.New("form template is not active")
)

type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusActive   Status = "ACTIVE"
	StatusArchived Status = "ARCHIVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

// Table: form_templates
type Template struct {
	ID                  string     `gorm:"column:id;primaryKey;size:32" json:"id"`
	Name                string     `gorm:"column:name;size:255;not null" json:"name"`
	FormType            string     `gorm:"column:form_type;size:64" json:"formType"`
	Status              Status     `gorm:"column:status;size:16;not null;default:'DRAFT'" json:"status"`
	IsSignatureRequired bool       `gorm:"column:is_signature_required;not null;default:false" json:"isSignatureRequired"`
	IsApprovalRequired  bool       `gorm:"column:is_approval_required;not null;default:false" json:"isApprovalRequired"`
	Groupings           []Grouping `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"groupings"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Template) TableName() string { return "form_templates" }

// Table: form_groupings
type Grouping struct {
	ID         string  `gorm:"column:id;primaryKey;size:32" json:"id"`
	TemplateID string  `gorm:"column:template_id;size:32;not null;index" json:"templateId"`
	Title      string  `gorm:"column:title;size:255" json:"title"`
	Order      int     `gorm:"column:sort_order;not null;default:0" json:"order"`
	Fields     []Field `gorm:"foreignKey:GroupingID;constraint:OnDelete:CASCADE" json:"fields"`
}

func (Grouping) TableName() string { return "form_groupings" }

// Table: form_fields
type Field struct {
	ID          string    `gorm:"column:id;primaryKey;size:32" json:"id"`
	GroupingID  string    `gorm:"column:grouping_id;size:32;not null;index" json:"groupingId"`
	Label       string    `gorm:"column:label;size:255;not null" json:"label"`
	Type        FieldType `gorm:"column:type;size:32;not null" json:"type"`
	Required    bool      `gorm:"column:required;not null;default:false" json:"required"`
	Order       int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	Placeholder *string   `gorm:"column:placeholder;size:255" json:"placeholder,omitempty"`
	MinLength   *int      `gorm:"column:min_length" json:"minLength,omitempty"`
	MaxLength   *int      `gorm:"column:max_length" json:"maxLength,omitempty"`
	Multiple    bool      `gorm:"column:multiple;not null;default:false" json:"multiple"`
	Content     *string   `gorm:"column:content;type:text" json:"content,omitempty"`
	Filter      *string   `gorm:"column:filter;size:32" json:"filter,omitempty"`
	Options     []Option  `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE" json:"options"`
}

func (Field) TableName() string { return "form_fields" }

// FilterValue returns the SEARCH_ASSET sub-kind selector, or "" when unset.
func (f Field) FilterValue() string {
	if f.Filter == nil {
		return ""
	}
	return *f.Filter
}

// Table: form_field_options
type Option struct {
	ID      string `gorm:"column:id;primaryKey;size:32" json:"id"`
	FieldID string `gorm:"column:field_id;size:32;not null;index" json:"fieldId"`
	Value   string `gorm:"column:value;size:255;not null" json:"value"`
}

func (Option) TableName() string { return "form_field_options" }

// InputFields returns the template's non-presentational fields in declared order.
// The template is sorted first, so callers may pass raw storage order.
func (t Template) InputFields() []Field {
	sorted := Sort(t)
	var out []Field
	for _, g := range sorted.Groupings {
		for _, f := range g.Fields {
			if IsInput(f.Type) {
				out = append(out, f)
			}
		}
	}
	return out
}

// FindField looks a field up by id across all groupings.
func (t Template) FindField(fieldID string) (Field, error) {
	for _, g := range t.Groupings {
		for _, f := range g.Fields {
			if f.ID == fieldID {
				return f, nil
			}
		}
	}
	return Field{}, ErrFieldNotFound
}
