package gormrepo

import (
	"context"
	"errors"

	crewDomain "timesheet-backend/internal/domain/crew"
	userDomain "timesheet-backend/internal/domain/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CrewRepository struct{ db *gorm.DB }

func NewCrewRepository(db *gorm.DB) *CrewRepository { return &CrewRepository{db: db} }

func (r *CrewRepository) Create(ctx context.Context, c *crewDomain.Crew, members []userDomain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return err
		}
		return replaceMembers(tx, c, members)
	})
}

func (r *CrewRepository) GetByID(ctx context.Context, id string) (*crewDomain.Crew, error) {
	var out crewDomain.Crew
	res := r.db.WithContext(ctx).Preload("Members").Where("id = ?", id).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, crewDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *CrewRepository) List(ctx context.Context) ([]crewDomain.Crew, error) {
	var out []crewDomain.Crew
	err := r.db.WithContext(ctx).Preload("Members").Order("name ASC").Find(&out).Error
	return out, err
}

func (r *CrewRepository) Save(ctx context.Context, c *crewDomain.Crew, members []userDomain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(c).Error; err != nil {
			return err
		}
		if members == nil {
			return nil
		}
		return replaceMembers(tx, c, members)
	})
}

func replaceMembers(tx *gorm.DB, c *crewDomain.Crew, members []userDomain.User) error {
	assoc := tx.Model(c).Association("Members")
	if len(members) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(members)
}

func (r *CrewRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Select(clause.Associations).Delete(&crewDomain.Crew{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return crewDomain.ErrNotFound
	}
	return nil
}
