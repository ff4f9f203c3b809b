package usermock

import (
	"context"

	domain "timesheet-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies user.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, u *domain.User) error
	GetByIDFn            func(ctx context.Context, id string) (*domain.User, error)
	GetByIDsFn           func(ctx context.Context, ids []string) ([]domain.User, error)
	ListFn               func(ctx context.Context) ([]domain.User, error)
	UpdatePasswordHashFn func(ctx context.Context, id, hash string) error
}

// Static returns a Repo answering reads from users.
func Static(users ...domain.User) *Repo {
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &Repo{
		GetByIDFn: func(_ context.Context, id string) (*domain.User, error) {
			u, ok := byID[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return &u, nil
		},
		GetByIDsFn: func(_ context.Context, ids []string) ([]domain.User, error) {
			var out []domain.User
			for _, id := range ids {
				if u, ok := byID[id]; ok {
					out = append(out, u)
				}
			}
			return out, nil
		},
		ListFn: func(context.Context) ([]domain.User, error) { return users, nil },
	}
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ctx, ids)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	if m.UpdatePasswordHashFn != nil {
		return m.UpdatePasswordHashFn(ctx, id, hash)
	}
	return nil
}
