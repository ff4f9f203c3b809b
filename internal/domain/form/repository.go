package form

import "context"

type Repository interface {
	// Create persists the template together with its groupings, fields and options.
	Create(ctx context.Context, t *Template) error

	// GetByID loads the full template tree. Storage order is not guaranteed; use Sort.
	GetByID(ctx context.Context, id string) (*Template, error)

	List(ctx context.Context) ([]Template, error)

	UpdateStatus(ctx context.Context, id string, status Status) error
}
