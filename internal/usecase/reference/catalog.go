package reference

import (
	"context"

	"timesheet-backend/internal/domain/form"
	domain "timesheet-backend/internal/domain/reference"
	"timesheet-backend/internal/domain/user"
)

var _ form.Catalog = (*Catalog)(nil)

// Catalog serves SEARCH_PERSON and SEARCH_ASSET options.
type Catalog struct {
	users     user.Repository
	sites     domain.JobsiteRepository
	codes     domain.CostCodeRepository
	equipment domain.EquipmentRepository
}

func NewCatalog(users user.Repository, sites domain.JobsiteRepository, codes domain.CostCodeRepository, equipment domain.EquipmentRepository) *Catalog {
	return &Catalog{users: users, sites: sites, codes: codes, equipment: equipment}
}

func (c *Catalog) People(ctx context.Context) ([]form.Ref, error) {
	list, err := c.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]form.Ref, 0, len(list))
	for _, u := range list {
		name := u.FullName()
		if name == "" {
			name = u.Username
		}
		out = append(out, form.Ref{ID: u.ID, Name: name})
	}
	return out, nil
}

// Assets lists active records for filter. Unknown filters yield an empty list.
func (c *Catalog) Assets(ctx context.Context, filter string) ([]form.Ref, error) {
	out := []form.Ref{}
	switch filter {
	case "jobsite":
		list, err := c.sites.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, j := range list {
			if j.IsActive {
				out = append(out, form.Ref{ID: j.ID, Name: j.Name, Type: filter})
			}
		}
	case "costCode":
		list, err := c.codes.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, cc := range list {
			if cc.IsActive {
				out = append(out, form.Ref{ID: cc.ID, Name: cc.DisplayName(), Type: filter})
			}
		}
	case "equipment":
		if c.equipment == nil {
			return out, nil
		}
		list, err := c.equipment.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range list {
			out = append(out, form.Ref{ID: e.ID, Name: e.Name, Type: filter})
		}
	}
	return out, nil
}
