package reference

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("reference record not found")
	ErrProtectedTag    = errors.New(`the "All" tag cannot be deleted`)
	ErrDuplicateAllTag = errors.New(`an "All" tag already exists`)
	ErrInvalidInput    = errors.New("invalid reference input")
)

// AllTagName names the singleton tag every jobsite should keep.
const AllTagName = "All"

func IsAllTag(name string) bool { return strings.EqualFold(strings.TrimSpace(name), AllTagName) }

// ConfirmationError is a soft warning: the action is allowed once the caller
// repeats it with confirmation.
type ConfirmationError struct {
	Warning string
}

func (e *ConfirmationError) Error() string { return e.Warning }

// Table: tags
type Tag struct {
	ID          string     `gorm:"column:id;primaryKey;size:32" json:"id"`
	Name        string     `gorm:"column:name;size:50;not null;uniqueIndex" json:"name"`
	Description string     `gorm:"column:description;size:255" json:"description"`
	Jobsites    []Jobsite  `gorm:"many2many:tag_jobsites" json:"jobsites,omitempty"`
	CostCodes   []CostCode `gorm:"many2many:tag_cost_codes" json:"costCodes,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Tag) TableName() string { return "tags" }

func (t Tag) Protected() bool { return IsAllTag(t.Name) }

// Table: cost_codes
type CostCode struct {
	ID        string    `gorm:"column:id;primaryKey;size:32" json:"id"`
	Code      string    `gorm:"column:code;size:20;not null;uniqueIndex" json:"code"`
	Name      string    `gorm:"column:name;size:100;not null" json:"name"`
	IsActive  bool      `gorm:"column:is_active;not null" json:"isActive"`
	Tags      []Tag     `gorm:"many2many:tag_cost_codes" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (CostCode) TableName() string { return "cost_codes" }

// DisplayName is the "code name" label used in pickers.
func (c CostCode) DisplayName() string { return strings.TrimSpace(c.Code + " " + c.Name) }

// Table: jobsites
type Jobsite struct {
	ID          string    `gorm:"column:id;primaryKey;size:32" json:"id"`
	Name        string    `gorm:"column:name;size:100;not null" json:"name"`
	Code        string    `gorm:"column:code;size:32" json:"code"`
	Description string    `gorm:"column:description;size:255" json:"description"`
	IsActive    bool      `gorm:"column:is_active;not null" json:"isActive"`
	Tags        []Tag     `gorm:"many2many:tag_jobsites" json:"tags,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Jobsite) TableName() string { return "jobsites" }

// Table: equipment
type Equipment struct {
	ID        string    `gorm:"column:id;primaryKey;size:32" json:"id"`
	Name      string    `gorm:"column:name;size:100;not null" json:"name"`
	Code      string    `gorm:"column:code;size:32" json:"code"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Equipment) TableName() string { return "equipment" }
