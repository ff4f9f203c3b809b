package submissionmock

import (
	"context"

	domain "timesheet-backend/internal/domain/submission"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writes are no-ops; unset reads return context.Canceled.
type Repo struct {
	CreateFn           func(ctx context.Context, s *domain.Submission) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Submission, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Submission, error)
	SaveFn             func(ctx context.Context, s *domain.Submission) error
	DeleteFn           func(ctx context.Context, id string) error
	ListByTemplateFn   func(ctx context.Context, templateID string, f domain.ListFilter) ([]domain.Submission, error)
	ListByUserFn       func(ctx context.Context, userID string) ([]domain.Submission, error)
}

func (m *Repo) Create(ctx context.Context, s *domain.Submission) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Submission, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, s *domain.Submission) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) ListByTemplate(ctx context.Context, templateID string, f domain.ListFilter) ([]domain.Submission, error) {
	if m.ListByTemplateFn != nil {
		return m.ListByTemplateFn(ctx, templateID, f)
	}
	return nil, nil
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Submission, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}
