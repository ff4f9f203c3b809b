package crew

import (
	"context"
	"fmt"
	"strings"

	domain "timesheet-backend/internal/domain/crew"
	"timesheet-backend/internal/domain/user"
	"timesheet-backend/pkg/id"

	"go.uber.org/zap"
)

type Usecase struct {
	crews domain.Repository
	users user.Repository
	log   *zap.Logger
}

func NewUsecase(crews domain.Repository, users user.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{crews: crews, users: users, log: log}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domain.Crew, error) {
	if !in.CrewType.Valid() {
		return nil, domain.ErrInvalidType
	}
	lead := strings.TrimSpace(in.LeadID)
	if lead == "" {
		return nil, domain.ErrLeadMissing
	}
	members, err := u.members(ctx, lead, in.MemberIDs)
	if err != nil {
		return nil, err
	}

	c := &domain.Crew{ID: id.NewID32(), Name: strings.TrimSpace(in.Name), CrewType: in.CrewType, LeadID: lead}
	if err := u.crews.Create(ctx, c, members); err != nil {
		return nil, err
	}
	u.log.Info("crew created", zap.String("crew_id", c.ID), zap.Int("members", len(members)))
	return u.crews.GetByID(ctx, c.ID)
}

// Update re-injects the lead whenever the lead or the member list changes.
func (u *Usecase) Update(ctx context.Context, crewID string, in UpdateInput) (*domain.Crew, error) {
	c, err := u.crews.GetByID(ctx, crewID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.CrewType != nil {
		if !in.CrewType.Valid() {
			return nil, domain.ErrInvalidType
		}
		c.CrewType = *in.CrewType
	}

	reseat := in.LeadID != nil || in.MemberIDs != nil
	if in.LeadID != nil {
		lead := strings.TrimSpace(*in.LeadID)
		if lead == "" {
			return nil, domain.ErrLeadMissing
		}
		c.LeadID = lead
	}
	ids := in.MemberIDs
	if ids == nil {
		for _, m := range c.Members {
			ids = append(ids, m.ID)
		}
	}

	var members []user.User
	if reseat {
		members, err = u.members(ctx, c.LeadID, ids)
		if err != nil {
			return nil, err
		}
	}

	// members stays nil unless reseating, which keeps the membership as is
	if err := u.crews.Save(ctx, c, members); err != nil {
		return nil, err
	}
	return u.crews.GetByID(ctx, c.ID)
}

func (u *Usecase) Get(ctx context.Context, crewID string) (*domain.Crew, error) {
	return u.crews.GetByID(ctx, crewID)
}

func (u *Usecase) List(ctx context.Context) ([]domain.Crew, error) { return u.crews.List(ctx) }

func (u *Usecase) Delete(ctx context.Context, crewID string) error {
	if _, err := u.crews.GetByID(ctx, crewID); err != nil {
		return err
	}
	return u.crews.Delete(ctx, crewID)
}

func (u *Usecase) members(ctx context.Context, leadID string, memberIDs []string) ([]user.User, error) {
	ids := domain.WithLead(leadID, memberIDs)
	list, err := u.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(list) != len(ids) {
		return nil, fmt.Errorf("%w: unknown crew member in %v", user.ErrNotFound, ids)
	}
	return list, nil
}
