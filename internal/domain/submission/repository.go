package submission

import (
	"context"
	"time"
)

type ListFilter struct {
	Statuses []Status
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	Create(ctx context.Context, s *Submission) error
	GetByID(ctx context.Context, id string) (*Submission, error)

	// Lock the row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*Submission, error)

	Save(ctx context.Context, s *Submission) error
	Delete(ctx context.Context, id string) error

	ListByTemplate(ctx context.Context, templateID string, f ListFilter) ([]Submission, error)
	ListByUser(ctx context.Context, userID string) ([]Submission, error)
}
