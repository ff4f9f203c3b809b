package gormrepo

import (
	"context"
	"errors"

	formDomain "timesheet-backend/internal/domain/form"

	"gorm.io/gorm"
)

type TemplateRepository struct{ db *gorm.DB }

func NewTemplateRepository(db *gorm.DB) *TemplateRepository { return &TemplateRepository{db: db} }

// Create inserts the template and, through gorm associations, its groupings, fields and options.
func (r *TemplateRepository) Create(ctx context.Context, t *formDomain.Template) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*formDomain.Template, error) {
	var out formDomain.Template
	res := r.db.WithContext(ctx).
		Preload("Groupings.Fields.Options").
		Where("id = ?", id).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, formDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]formDomain.Template, error) {
	var out []formDomain.Template
	err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *TemplateRepository) UpdateStatus(ctx context.Context, id string, status formDomain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&formDomain.Template{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return formDomain.ErrNotFound
	}
	return nil
}
