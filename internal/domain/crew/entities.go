package crew

import (
	"context"
	"errors"
	"time"

	"timesheet-backend/internal/domain/user"
)

var (
	ErrNotFound    = errors.New("crew not found")
	ErrInvalidType = errors.New("invalid crew type")
	ErrLeadMissing = errors.New("crew lead is required")
)

type Type string

const (
	TypeMechanic    Type = "MECHANIC"
	TypeTruckDriver Type = "TRUCK_DRIVER"
	TypeLabor       Type = "LABOR"
	TypeTasco       Type = "TASCO"
)

func (t Type) Valid() bool {
	switch t {
	case TypeMechanic, TypeTruckDriver, TypeLabor, TypeTasco:
		return true
	}
	return false
}

// Table: crews
type Crew struct {
	ID        string      `gorm:"column:id;primaryKey;size:32" json:"id"`
	Name      string      `gorm:"column:name;size:100;not null" json:"name"`
	CrewType  Type        `gorm:"column:crew_type;size:16;not null" json:"crewType"`
	LeadID    string      `gorm:"column:lead_id;size:32;not null" json:"leadId"`
	Members   []user.User `gorm:"many2many:crew_members" json:"members"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Crew) TableName() string { return "crews" }

// WithLead returns memberIDs de-duplicated in first-seen order with leadID
// present. The lead is appended when missing.
func WithLead(leadID string, memberIDs []string) []string {
	seen := make(map[string]struct{}, len(memberIDs)+1)
	out := make([]string, 0, len(memberIDs)+1)
	for _, id := range memberIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if _, ok := seen[leadID]; !ok && leadID != "" {
		out = append(out, leadID)
	}
	return out
}

type Repository interface {
	// Create inserts the crew and its members in one transaction.
	Create(ctx context.Context, c *Crew, members []user.User) error
	// GetByID preloads members.
	GetByID(ctx context.Context, id string) (*Crew, error)
	List(ctx context.Context) ([]Crew, error)
	// Save updates the row and, unless members is nil, replaces the
	// membership in the same transaction.
	Save(ctx context.Context, c *Crew, members []user.User) error
	Delete(ctx context.Context, id string) error
}
