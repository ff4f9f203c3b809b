package reference

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	domain "timesheet-backend/internal/domain/reference"
	"timesheet-backend/pkg/id"

	"go.uber.org/zap"
)

type Usecase struct {
	tags  domain.TagRepository
	codes domain.CostCodeRepository
	sites domain.JobsiteRepository
	log   *zap.Logger
}

func NewUsecase(tags domain.TagRepository, codes domain.CostCodeRepository, sites domain.JobsiteRepository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{tags: tags, codes: codes, sites: sites, log: log}
}

func checkLen(field, v string, min, max int) error {
	n := utf8.RuneCountInString(v)
	if n < min || n > max {
		return fmt.Errorf("%w: %s must be %d to %d characters", domain.ErrInvalidInput, field, min, max)
	}
	return nil
}

// ---- tags ----

func (u *Usecase) CreateTag(ctx context.Context, in TagInput) (*domain.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if err := checkLen("name", name, 1, 50); err != nil {
		return nil, err
	}
	if err := checkLen("description", in.Description, 0, 255); err != nil {
		return nil, err
	}

	existing, err := u.tags.GetByName(ctx, name)
	switch {
	case err == nil && existing.Protected():
		return nil, domain.ErrDuplicateAllTag
	case err == nil:
		return nil, fmt.Errorf("%w: tag %q already exists", domain.ErrInvalidInput, name)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	t := &domain.Tag{ID: id.NewID32(), Name: name, Description: in.Description}
	if err := u.tags.Create(ctx, t); err != nil {
		return nil, err
	}
	if len(in.CostCodeIDs) > 0 {
		codes, err := u.costCodes(ctx, in.CostCodeIDs)
		if err != nil {
			return nil, err
		}
		if err := u.tags.ReplaceCostCodes(ctx, t, codes); err != nil {
			return nil, err
		}
	}
	u.log.Info("tag created", zap.String("tag_id", t.ID), zap.String("name", t.Name))
	return u.tags.GetByID(ctx, t.ID)
}

// UpdateTag changes name, description and cost codes. On the protected
// "All" tag all three are locked and the payload is ignored.
func (u *Usecase) UpdateTag(ctx context.Context, tagID string, in TagInput) (*domain.Tag, error) {
	t, err := u.tags.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if t.Protected() {
		u.log.Info("ignoring update of protected tag", zap.String("tag_id", t.ID))
		return t, nil
	}

	name := strings.TrimSpace(in.Name)
	if err := checkLen("name", name, 1, 50); err != nil {
		return nil, err
	}
	if err := checkLen("description", in.Description, 0, 255); err != nil {
		return nil, err
	}
	if !strings.EqualFold(name, t.Name) {
		existing, err := u.tags.GetByName(ctx, name)
		switch {
		case err == nil && existing.Protected():
			return nil, domain.ErrDuplicateAllTag
		case err == nil:
			return nil, fmt.Errorf("%w: tag %q already exists", domain.ErrInvalidInput, name)
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	t.Name = name
	t.Description = in.Description
	if err := u.tags.Save(ctx, t); err != nil {
		return nil, err
	}
	codes, err := u.costCodes(ctx, in.CostCodeIDs)
	if err != nil {
		return nil, err
	}
	if err := u.tags.ReplaceCostCodes(ctx, t, codes); err != nil {
		return nil, err
	}
	return u.tags.GetByID(ctx, t.ID)
}

func (u *Usecase) DeleteTag(ctx context.Context, tagID string) error {
	t, err := u.tags.GetByID(ctx, tagID)
	if err != nil {
		return err
	}
	if t.Protected() {
		return domain.ErrProtectedTag
	}
	if err := u.tags.Delete(ctx, tagID); err != nil {
		return err
	}
	u.log.Info("tag deleted", zap.String("tag_id", tagID))
	return nil
}

func (u *Usecase) GetTag(ctx context.Context, tagID string) (*domain.Tag, error) {
	return u.tags.GetByID(ctx, tagID)
}

func (u *Usecase) ListTags(ctx context.Context) ([]domain.Tag, error) { return u.tags.List(ctx) }

func (u *Usecase) costCodes(ctx context.Context, ids []string) ([]domain.CostCode, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	codes, err := u.codes.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(codes) != len(ids) {
		return nil, fmt.Errorf("%w: unknown cost code in %v", domain.ErrNotFound, ids)
	}
	return codes, nil
}

// ---- cost codes ----

func (u *Usecase) CreateCostCode(ctx context.Context, in CostCodeInput) (*domain.CostCode, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if err := checkLen("code", code, 1, 20); err != nil {
		return nil, err
	}
	if err := checkLen("name", name, 1, 100); err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	c := &domain.CostCode{ID: id.NewID32(), Code: code, Name: name, IsActive: active}
	if err := u.codes.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *Usecase) ListCostCodes(ctx context.Context) ([]domain.CostCode, error) {
	return u.codes.List(ctx)
}

// DeleteCostCode asks for confirmation while tags still reference the code.
func (u *Usecase) DeleteCostCode(ctx context.Context, codeID string, confirm bool) error {
	c, err := u.codes.GetByID(ctx, codeID)
	if err != nil {
		return err
	}
	n, err := u.codes.CountTags(ctx, codeID)
	if err != nil {
		return err
	}
	if n > 0 && !confirm {
		return &domain.ConfirmationError{
			Warning: fmt.Sprintf("Cost code %s is assigned to %d tag(s). Delete it anyway?", c.DisplayName(), n),
		}
	}
	if err := u.codes.Delete(ctx, codeID); err != nil {
		return err
	}
	u.log.Info("cost code deleted", zap.String("cost_code_id", codeID), zap.Int64("tags", n))
	return nil
}

// ---- jobsites ----

// CreateJobsite attaches the "All" tag when one exists.
func (u *Usecase) CreateJobsite(ctx context.Context, in JobsiteInput) (*domain.Jobsite, error) {
	name := strings.TrimSpace(in.Name)
	if err := checkLen("name", name, 1, 100); err != nil {
		return nil, err
	}
	var tags []domain.Tag
	all, err := u.tags.GetByName(ctx, domain.AllTagName)
	switch {
	case err == nil:
		tags = []domain.Tag{*all}
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	j := &domain.Jobsite{ID: id.NewID32(), Name: name, Code: strings.TrimSpace(in.Code), Description: in.Description, IsActive: true}
	if err := u.sites.Create(ctx, j, tags); err != nil {
		return nil, err
	}
	u.log.Info("jobsite created", zap.String("jobsite_id", j.ID), zap.Int("tags", len(tags)))
	return u.sites.GetByID(ctx, j.ID)
}

func (u *Usecase) ListJobsites(ctx context.Context) ([]domain.Jobsite, error) {
	return u.sites.List(ctx)
}

// SetJobsiteTags replaces the jobsite's tags. Dropping "All" needs confirm.
func (u *Usecase) SetJobsiteTags(ctx context.Context, jobsiteID string, in JobsiteTagsInput) (*domain.Jobsite, error) {
	j, err := u.sites.GetByID(ctx, jobsiteID)
	if err != nil {
		return nil, err
	}
	ids := dedupe(in.TagIDs)
	var tags []domain.Tag
	if len(ids) > 0 {
		tags, err = u.tags.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if len(tags) != len(ids) {
			return nil, fmt.Errorf("%w: unknown tag in %v", domain.ErrNotFound, ids)
		}
	}

	hasAll := false
	for _, t := range tags {
		if t.Protected() {
			hasAll = true
			break
		}
	}
	if !hasAll && !in.Confirm {
		return nil, &domain.ConfirmationError{
			Warning: fmt.Sprintf(`Jobsite %s will no longer have the "All" tag. Continue?`, j.Name),
		}
	}

	if err := u.sites.ReplaceTags(ctx, j, tags); err != nil {
		return nil, err
	}
	u.log.Info("jobsite tags replaced", zap.String("jobsite_id", j.ID), zap.Int("tags", len(tags)))
	return u.sites.GetByID(ctx, j.ID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
