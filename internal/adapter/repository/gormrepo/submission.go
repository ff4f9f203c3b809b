package gormrepo

import (
	"context"
	"errors"

	submissionDomain "timesheet-backend/internal/domain/submission"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionRepository struct{ db *gorm.DB }

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *submissionDomain.Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SubmissionRepository) Save(ctx context.Context, s *submissionDomain.Submission) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*submissionDomain.Submission, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *SubmissionRepository) GetByIDForUpdate(ctx context.Context, id string) (*submissionDomain.Submission, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *SubmissionRepository) first(q *gorm.DB, id string) (*submissionDomain.Submission, error) {
	var out submissionDomain.Submission
	res := q.Where("id = ?", id).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, submissionDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&submissionDomain.Submission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return submissionDomain.ErrNotFound
	}
	return nil
}

func (r *SubmissionRepository) ListByTemplate(ctx context.Context, templateID string, f submissionDomain.ListFilter) ([]submissionDomain.Submission, error) {
	q := r.db.WithContext(ctx).Where("form_template_id = ?", templateID)
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}
	var out []submissionDomain.Submission
	err := q.Order("created_at ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, userID string) ([]submissionDomain.Submission, error) {
	var out []submissionDomain.Submission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
