package templatemock

import (
	"context"

	domain "timesheet-backend/internal/domain/form"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies form.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, t *domain.Template) error
	GetByIDFn      func(ctx context.Context, id string) (*domain.Template, error)
	ListFn         func(ctx context.Context) ([]domain.Template, error)
	UpdateStatusFn func(ctx context.Context, id string, s domain.Status) error
}

// Fixed returns a Repo whose GetByID always yields a copy of t.
func Fixed(t domain.Template) *Repo {
	return &Repo{GetByIDFn: func(_ context.Context, id string) (*domain.Template, error) {
		if id != t.ID {
			return nil, domain.ErrNotFound
		}
		cp := t
		return &cp, nil
	}}
}

func (m *Repo) Create(ctx context.Context, t *domain.Template) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.Template, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) UpdateStatus(ctx context.Context, id string, s domain.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, s)
	}
	return nil
}
