package approval

import "context"

type Repository interface {
	Create(ctx context.Context, a *Approval) error

	// ListBySubmissionID returns every approval recorded against the submission, newest first.
	ListBySubmissionID(ctx context.Context, submissionID string) ([]Approval, error)

	GetByID(ctx context.Context, id string) (*Approval, error)
}
