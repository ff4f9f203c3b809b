package gormrepo

import (
	"context"
	"errors"

	refDomain "timesheet-backend/internal/domain/reference"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ---- tags ----

type TagRepository struct{ db *gorm.DB }

func NewTagRepository(db *gorm.DB) *TagRepository { return &TagRepository{db: db} }

func (r *TagRepository) Create(ctx context.Context, t *refDomain.Tag) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TagRepository) GetByID(ctx context.Context, id string) (*refDomain.Tag, error) {
	var out refDomain.Tag
	res := r.db.WithContext(ctx).
		Preload("Jobsites").
		Preload("CostCodes").
		Where("id = ?", id).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, refDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

// GetByName matches case-insensitively.
func (r *TagRepository) GetByName(ctx context.Context, name string) (*refDomain.Tag, error) {
	var out refDomain.Tag
	res := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, refDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *TagRepository) GetByIDs(ctx context.Context, ids []string) ([]refDomain.Tag, error) {
	var out []refDomain.Tag
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *TagRepository) List(ctx context.Context) ([]refDomain.Tag, error) {
	var out []refDomain.Tag
	err := r.db.WithContext(ctx).
		Preload("Jobsites").
		Preload("CostCodes").
		Order("name ASC").
		Find(&out).Error
	return out, err
}

// Save updates scalar columns only; associations go through the Replace* methods.
func (r *TagRepository) Save(ctx context.Context, t *refDomain.Tag) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error
}

func (r *TagRepository) ReplaceCostCodes(ctx context.Context, t *refDomain.Tag, codes []refDomain.CostCode) error {
	assoc := r.db.WithContext(ctx).Model(t).Association("CostCodes")
	if len(codes) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(codes)
}

func (r *TagRepository) ReplaceJobsites(ctx context.Context, t *refDomain.Tag, jobsites []refDomain.Jobsite) error {
	assoc := r.db.WithContext(ctx).Model(t).Association("Jobsites")
	if len(jobsites) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(jobsites)
}

// Delete removes the tag and its join rows.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Select(clause.Associations).Delete(&refDomain.Tag{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return refDomain.ErrNotFound
	}
	return nil
}

// ---- cost codes ----

type CostCodeRepository struct{ db *gorm.DB }

func NewCostCodeRepository(db *gorm.DB) *CostCodeRepository { return &CostCodeRepository{db: db} }

func (r *CostCodeRepository) Create(ctx context.Context, c *refDomain.CostCode) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CostCodeRepository) GetByID(ctx context.Context, id string) (*refDomain.CostCode, error) {
	var out refDomain.CostCode
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, refDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *CostCodeRepository) GetByIDs(ctx context.Context, ids []string) ([]refDomain.CostCode, error) {
	var out []refDomain.CostCode
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *CostCodeRepository) List(ctx context.Context) ([]refDomain.CostCode, error) {
	var out []refDomain.CostCode
	err := r.db.WithContext(ctx).Order("code ASC").Find(&out).Error
	return out, err
}

func (r *CostCodeRepository) CountTags(ctx context.Context, id string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("tag_cost_codes").
		Where("cost_code_id = ?", id).
		Count(&n).Error
	return n, err
}

func (r *CostCodeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Select(clause.Associations).Delete(&refDomain.CostCode{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return refDomain.ErrNotFound
	}
	return nil
}

// ---- jobsites ----

type JobsiteRepository struct{ db *gorm.DB }

func NewJobsiteRepository(db *gorm.DB) *JobsiteRepository { return &JobsiteRepository{db: db} }

func (r *JobsiteRepository) Create(ctx context.Context, j *refDomain.Jobsite, tags []refDomain.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(j).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		return tx.Model(j).Association("Tags").Replace(tags)
	})
}

func (r *JobsiteRepository) GetByID(ctx context.Context, id string) (*refDomain.Jobsite, error) {
	var out refDomain.Jobsite
	res := r.db.WithContext(ctx).Preload("Tags").Where("id = ?", id).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, refDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *JobsiteRepository) GetByIDs(ctx context.Context, ids []string) ([]refDomain.Jobsite, error) {
	var out []refDomain.Jobsite
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *JobsiteRepository) List(ctx context.Context) ([]refDomain.Jobsite, error) {
	var out []refDomain.Jobsite
	err := r.db.WithContext(ctx).Preload("Tags").Order("name ASC").Find(&out).Error
	return out, err
}

func (r *JobsiteRepository) ReplaceTags(ctx context.Context, j *refDomain.Jobsite, tags []refDomain.Tag) error {
	assoc := r.db.WithContext(ctx).Model(j).Association("Tags")
	if len(tags) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(tags)
}

// ---- equipment ----

type EquipmentRepository struct{ db *gorm.DB }

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository { return &EquipmentRepository{db: db} }

func (r *EquipmentRepository) List(ctx context.Context) ([]refDomain.Equipment, error) {
	var out []refDomain.Equipment
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}
