package gormrepo

import (
	"context"

	"timesheet-backend/internal/domain/submission"
	"timesheet-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Templates:   &TemplateRepository{db: tx},
		Submissions: &SubmissionRepository{db: tx},
		Approvals:   &ApprovalRepository{db: tx},
		Users:       &UserRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinSubmissionTx(ctx context.Context, submissionID string, fn func(r uow.Repos, s *submission.Submission) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the submission row up-front so concurrent decisions serialize
		s, err := r.Submissions.GetByIDForUpdate(ctx, submissionID)
		if err != nil {
			return err
		}
		return fn(r, s)
	})
}
