package approvalmock

import (
	"context"

	domain "timesheet-backend/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset writes are no-ops; unset reads return context.Canceled.
type Repo struct {
	CreateFn             func(ctx context.Context, a *domain.Approval) error
	ListBySubmissionIDFn func(ctx context.Context, submissionID string) ([]domain.Approval, error)
	GetByIDFn            func(ctx context.Context, id string) (*domain.Approval, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListBySubmissionID(ctx context.Context, submissionID string) ([]domain.Approval, error) {
	if m.ListBySubmissionIDFn != nil {
		return m.ListBySubmissionIDFn(ctx, submissionID)
	}
	return nil, nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Approval, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
