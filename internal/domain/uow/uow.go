package uow

import (
	"context"

	"timesheet-backend/internal/domain/approval"
	"timesheet-backend/internal/domain/form"
	"timesheet-backend/internal/domain/submission"
	"timesheet-backend/internal/domain/user"
)

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	Templates   form.Repository
	Submissions submission.Repository
	Approvals   approval.Repository
	Users       user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the submission first, then pass it in
	WithinSubmissionTx(ctx context.Context, submissionID string, fn func(r Repos, s *submission.Submission) error) error
}
