package gormrepo

import (
	"context"
	"errors"

	approvalDomain "timesheet-backend/internal/domain/approval"

	"gorm.io/gorm"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

// Tx binds a copy of the repo to a transaction for the duration of fn.
func (r *ApprovalRepository) Tx(ctx context.Context, fn func(repo *ApprovalRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ApprovalRepository{db: tx})
	})
}

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) ListBySubmissionID(ctx context.Context, submissionID string) ([]approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	err := r.db.WithContext(ctx).
		Where("form_submission_id = ?", submissionID).
		Order("updated_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ApprovalRepository) GetByID(ctx context.Context, id string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, approvalDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
