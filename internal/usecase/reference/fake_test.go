package reference

import (
	"context"
	"strings"

	domain "timesheet-backend/internal/domain/reference"
)

// memStore backs all reference repositories with maps.
type memStore struct {
	tags      map[string]*domain.Tag
	codes     map[string]*domain.CostCode
	sites     map[string]*domain.Jobsite
	tagCodes  map[string][]string // tag id -> cost code ids
	siteTags  map[string][]string // jobsite id -> tag ids
	equipment []domain.Equipment
}

func newMemStore() *memStore {
	return &memStore{
		tags:     map[string]*domain.Tag{},
		codes:    map[string]*domain.CostCode{},
		sites:    map[string]*domain.Jobsite{},
		tagCodes: map[string][]string{},
		siteTags: map[string][]string{},
	}
}

type memTags struct{ s *memStore }

func (r memTags) Create(_ context.Context, t *domain.Tag) error {
	cp := *t
	r.s.tags[t.ID] = &cp
	return nil
}

func (r memTags) GetByID(_ context.Context, id string) (*domain.Tag, error) {
	t, ok := r.s.tags[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	cp.CostCodes = nil
	for _, cid := range r.s.tagCodes[id] {
		cp.CostCodes = append(cp.CostCodes, *r.s.codes[cid])
	}
	return &cp, nil
}

func (r memTags) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	for id, t := range r.s.tags {
		if strings.EqualFold(t.Name, name) {
			return r.GetByID(ctx, id)
		}
	}
	return nil, domain.ErrNotFound
}

func (r memTags) GetByIDs(_ context.Context, ids []string) ([]domain.Tag, error) {
	var out []domain.Tag
	for _, id := range ids {
		if t, ok := r.s.tags[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r memTags) List(context.Context) ([]domain.Tag, error) {
	var out []domain.Tag
	for _, t := range r.s.tags {
		out = append(out, *t)
	}
	return out, nil
}

func (r memTags) Save(_ context.Context, t *domain.Tag) error {
	cp := *t
	r.s.tags[t.ID] = &cp
	return nil
}

func (r memTags) ReplaceCostCodes(_ context.Context, t *domain.Tag, codes []domain.CostCode) error {
	ids := make([]string, 0, len(codes))
	for _, c := range codes {
		ids = append(ids, c.ID)
	}
	r.s.tagCodes[t.ID] = ids
	return nil
}

func (r memTags) ReplaceJobsites(context.Context, *domain.Tag, []domain.Jobsite) error { return nil }

func (r memTags) Delete(_ context.Context, id string) error {
	delete(r.s.tags, id)
	delete(r.s.tagCodes, id)
	return nil
}

type memCodes struct{ s *memStore }

func (r memCodes) Create(_ context.Context, c *domain.CostCode) error {
	cp := *c
	r.s.codes[c.ID] = &cp
	return nil
}

func (r memCodes) GetByID(_ context.Context, id string) (*domain.CostCode, error) {
	c, ok := r.s.codes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r memCodes) GetByIDs(_ context.Context, ids []string) ([]domain.CostCode, error) {
	var out []domain.CostCode
	for _, id := range ids {
		if c, ok := r.s.codes[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r memCodes) List(context.Context) ([]domain.CostCode, error) {
	var out []domain.CostCode
	for _, c := range r.s.codes {
		out = append(out, *c)
	}
	return out, nil
}

func (r memCodes) CountTags(_ context.Context, id string) (int64, error) {
	var n int64
	for _, ids := range r.s.tagCodes {
		for _, cid := range ids {
			if cid == id {
				n++
			}
		}
	}
	return n, nil
}

func (r memCodes) Delete(_ context.Context, id string) error {
	delete(r.s.codes, id)
	return nil
}

type memSites struct{ s *memStore }

func (r memSites) Create(ctx context.Context, j *domain.Jobsite, tags []domain.Tag) error {
	cp := *j
	r.s.sites[j.ID] = &cp
	return r.ReplaceTags(ctx, j, tags)
}

func (r memSites) GetByID(_ context.Context, id string) (*domain.Jobsite, error) {
	j, ok := r.s.sites[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *j
	cp.Tags = nil
	for _, tid := range r.s.siteTags[id] {
		cp.Tags = append(cp.Tags, *r.s.tags[tid])
	}
	return &cp, nil
}

func (r memSites) GetByIDs(_ context.Context, ids []string) ([]domain.Jobsite, error) {
	var out []domain.Jobsite
	for _, id := range ids {
		if j, ok := r.s.sites[id]; ok {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r memSites) List(context.Context) ([]domain.Jobsite, error) {
	var out []domain.Jobsite
	for _, j := range r.s.sites {
		out = append(out, *j)
	}
	return out, nil
}

func (r memSites) ReplaceTags(_ context.Context, j *domain.Jobsite, tags []domain.Tag) error {
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	r.s.siteTags[j.ID] = ids
	return nil
}

type memEquipment struct{ s *memStore }

func (r memEquipment) List(context.Context) ([]domain.Equipment, error) { return r.s.equipment, nil }
