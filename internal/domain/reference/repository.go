package reference

import "context"

type TagRepository interface {
	Create(ctx context.Context, t *Tag) error
	// GetByID preloads jobsites and cost codes.
	GetByID(ctx context.Context, id string) (*Tag, error)
	GetByName(ctx context.Context, name string) (*Tag, error)
	GetByIDs(ctx context.Context, ids []string) ([]Tag, error)
	List(ctx context.Context) ([]Tag, error)
	Save(ctx context.Context, t *Tag) error
	ReplaceCostCodes(ctx context.Context, t *Tag, codes []CostCode) error
	ReplaceJobsites(ctx context.Context, t *Tag, jobsites []Jobsite) error
	Delete(ctx context.Context, id string) error
}

type CostCodeRepository interface {
	Create(ctx context.Context, c *CostCode) error
	GetByID(ctx context.Context, id string) (*CostCode, error)
	GetByIDs(ctx context.Context, ids []string) ([]CostCode, error)
	List(ctx context.Context) ([]CostCode, error)
	// CountTags reports how many tags still reference the cost code.
	CountTags(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type JobsiteRepository interface {
	// Create inserts the jobsite and attaches tags in one transaction.
	Create(ctx context.Context, j *Jobsite, tags []Tag) error
	// GetByID preloads tags.
	GetByID(ctx context.Context, id string) (*Jobsite, error)
	GetByIDs(ctx context.Context, ids []string) ([]Jobsite, error)
	List(ctx context.Context) ([]Jobsite, error)
	ReplaceTags(ctx context.Context, j *Jobsite, tags []Tag) error
}

type EquipmentRepository interface {
	List(ctx context.Context) ([]Equipment, error)
}
